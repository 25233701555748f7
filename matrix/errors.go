// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Functions return these sentinels (optionally wrapped with call-site
// context via %w) and tests check them via errors.Is. No exported function
// panics on a user-triggered error condition.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Context is attached at the detection site with
// fmt.Errorf("ctx: %w", ErrX); callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index or an index range lies outside the
	// valid bounds, or that a range is malformed (start >= end).
	// Public accessors (At/Set/Submatrix) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	// The wrapping message always carries the observed shape.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrDimensionMismatch indicates a backing buffer whose length does not match
	// the declared rows×cols shape.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
