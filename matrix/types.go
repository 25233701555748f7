// SPDX-License-Identifier: MIT

// Package matrix: the read-only accessor contract shared by every matrix backing.
// This file intentionally contains ONLY the Accessor interface; concrete
// backings live in impl_dense.go (in-memory) and in package ldstore (mmap, lazy).
package matrix

// Accessor is a read-only view over an N×N symmetric matrix that can hand out
// any contiguous diagonal block without materializing the whole matrix.
//
// Contract:
//   - Rows/Cols report the declared shape; callers check squareness once via
//     ValidateSquare before scanning.
//   - Submatrix(i, j) returns an independent (j-i)×(j-i) copy of rows and
//     columns [i, j). It requires 0 ≤ i < j ≤ min(Rows, Cols) and returns
//     ErrOutOfRange (wrapped with the offending range) otherwise.
//   - Implementations never mutate their backing storage.
//
// Complexity notes: Rows/Cols O(1); Submatrix O(k²) time and space for k = j-i.
type Accessor interface {
	// Rows returns the number of rows of the backing matrix.
	Rows() int

	// Cols returns the number of columns of the backing matrix.
	Cols() int

	// Submatrix copies the square diagonal block [i, j)×[i, j).
	Submatrix(i, j int) (*Dense, error)
}
