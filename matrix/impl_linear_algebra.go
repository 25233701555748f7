// SPDX-License-Identifier: MIT
// Package matrix: LU-based determinant kernels.
//
// Purpose:
//   - Provide a sign/log-magnitude determinant (SlogDetTol) that never forms the
//     raw determinant, so large LD blocks neither overflow nor underflow.
//   - Detect exact singularity (a zero pivot after partial pivoting) and report
//     it as sign 0 instead of an error.
//
// Determinism:
//   - Fixed k→i→j loop order; pivot ties resolve to the lowest row index.

package matrix

import (
	"fmt"
	"math"
)

// ZeroPivot is the sentinel for detecting a zero pivot in LU routines.
const ZeroPivot = 0.0

// opSlogDet tags errors raised by SlogDetTol.
const opSlogDet = "SlogDetTol"

// matrixErrorf wraps err with an operation tag ("Op: underlying").
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// SlogDetTol computes the sign and natural log of |det(A)| for a square matrix.
// MAIN DESCRIPTION:
//   - Doolittle-style Gaussian elimination with partial (row) pivoting on a
//     private copy; det(A) = (-1)^swaps * Π U[k,k].
//
// Implementation:
//   - Stage 1: validate non-nil and square; empty matrix → (1, 0).
//   - Stage 2: for each column k pick the row with max |A[i,k]| (i ≥ k), swap.
//   - Stage 3: pivot magnitude ≤ tol (the whole remaining column is that
//     small) → return (0, -Inf): the matrix is numerically singular.
//     tol == ZeroPivot is the exact zero-pivot rule.
//   - Stage 4: eliminate below the pivot; accumulate sign and log|pivot|.
//
// Behavior highlights:
//   - Singular input is NOT an error: sign 0 is a legitimate answer.
//   - Input is read-only; the elimination runs on a copy.
//
// Inputs:
//   - m: square *Dense (k×k).
//   - tol: absolute pivot tolerance, ≥ 0.
//
// Returns:
//   - sign: -1, 0 or +1.
//   - logdet: ln|det(A)|; -Inf when sign == 0.
//
// Errors:
//   - ErrNaNInf for a negative or NaN tol.
//   - ErrNilMatrix, ErrNonSquare (Stage 1).
//   - ErrNaNInf when a pivot becomes NaN (non-finite input).
//
// Determinism:
//   - Fixed loop orders; identical inputs give bitwise identical results.
//
// Complexity:
//   - Time O(k^3), Space O(k^2) for the working copy.
//
// AI-Hints:
//   - Package det wraps this as the Native evaluator; gonum's LU is the default.
func SlogDetTol(m *Dense, tol float64) (sign int, logdet float64, err error) {
	if math.IsNaN(tol) || tol < ZeroPivot {
		return 0, 0, matrixErrorf(opSlogDet, ErrNaNInf)
	}
	if m == nil {
		return 0, 0, matrixErrorf(opSlogDet, ErrNilMatrix)
	}
	if err = ValidateSquare(m); err != nil {
		return 0, 0, matrixErrorf(opSlogDet, err)
	}
	n := m.r
	if n == 0 {
		return 1, 0, nil // det of the empty matrix is 1
	}

	a := make([]float64, len(m.data))
	copy(a, m.data)

	sign = 1
	var (
		i, j, k, p   int
		pivot, best  float64
		factor, absV float64
	)
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below the diagonal.
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if absV = math.Abs(a[i*n+k]); absV > best {
				p, best = i, absV
			}
		}
		pivot = a[p*n+k]
		if math.IsNaN(pivot) {
			return 0, 0, matrixErrorf(opSlogDet, ErrNaNInf)
		}
		if best <= tol {
			return 0, math.Inf(-1), nil
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			sign = -sign
		}
		if pivot < 0 {
			sign = -sign
		}
		logdet += math.Log(math.Abs(pivot))

		for i = k + 1; i < n; i++ {
			factor = a[i*n+k] / pivot
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= factor * a[k*n+j]
			}
			a[i*n+k] = 0
		}
	}

	return sign, logdet, nil
}
