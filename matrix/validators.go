// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels and accessors minimal by delegating shape/range/symmetry checks here.
//  - Return sentinel errors wrapped with a validator tag so call sites can match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// AI-Hints:
//  - Call ValidateSquare once before a scan; accessors call ValidateRange on every extraction.

package matrix

import (
	"fmt"
	"math"
)

// zeroTol is the lower bound for user tolerances.
const zeroTol = 0.0

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// shape is the subset of Accessor the validators need.
type shape interface {
	Rows() int
	Cols() int
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Inputs: any value reporting Rows/Cols (Dense, ldstore.Store, Accessor).
// Errors: ErrNilMatrix if nil, ErrNonSquare (message carries observed dims).
// Complexity: O(1).
// AI-Hints: Use before scanning or factorizing.
func ValidateSquare(m shape) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return fmt.Errorf("ValidateSquare: %d x %d: %w", m.Rows(), m.Cols(), ErrNonSquare)
	}

	return nil
}

// ValidateRange checks the half-open diagonal range [i, j) against m:
// 0 ≤ i < j ≤ min(Rows, Cols).
//
// Errors: ErrOutOfRange (message carries the range and the shape).
// Complexity: O(1).
// AI-Hints: Shared by every Accessor implementation for identical bound semantics.
func ValidateRange(m shape, i, j int) error {
	limit := m.Rows()
	if c := m.Cols(); c < limit {
		limit = c
	}
	if i < 0 || j > limit || i >= j {
		return fmt.Errorf("ValidateRange: [%d, %d) over %d x %d: %w", i, j, m.Rows(), m.Cols(), ErrOutOfRange)
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Inputs: Dense m, tolerance tol (negative values are normalized to |tol|).
// Complexity: O(n^2) where n = Rows(A). Space: O(1).
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation. A NaN pair (both mirrored cells NaN) is symmetric;
// a NaN facing a number is not.
func ValidateSymmetric(m *Dense, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	if tol < zeroTol {
		tol = -tol
	}

	n := m.r
	var i, j int
	for i = 0; i < n; i++ { // fixed row loop
		for j = i + 1; j < n; j++ { // scan only upper triangle
			a, b := m.data[i*n+j], m.data[j*n+i]
			if math.IsNaN(a) && math.IsNaN(b) {
				continue
			}
			// !(diff <= tol) also rejects a one-sided NaN.
			if !(math.Abs(a-b) <= tol) {
				return fmt.Errorf("ValidateSymmetric: (%d,%d): %w", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateFinite reports the first NaN/±Inf cell of m as ErrNaNInf.
// Complexity: O(r*c).
func ValidateFinite(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	for off, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("ValidateFinite: (%d,%d): %w", off/m.c, off%m.c, ErrNaNInf)
		}
	}

	return nil
}
