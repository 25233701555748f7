// SPDX-License-Identifier: MIT
// Package matrix: NaN sanitization for raw LD matrices.
//
// LD tools emit NaN for markers that are monomorphic in the sample; such a
// marker has an all-NaN row and column. DropNaN removes them so the
// partitioner can rely on a finite matrix.

package matrix

import "math"

// CleanResult describes the outcome of DropNaN.
type CleanResult struct {
	// Matrix is the cleaned square matrix. It is the input itself when
	// nothing was removed.
	Matrix *Dense
	// Kept lists the original indices that survived, ascending.
	Kept []int
	// Removed is the number of dropped rows (and, equally, columns).
	Removed int
	// RemainingNaN counts NaN cells still present after the drop.
	RemainingNaN int
}

// DropNaN removes every row whose values are all NaN, together with the
// column of the same index.
// Implementation:
//   - Stage 1: ValidateSquare.
//   - Stage 2: classify each row (all NaN or not) in one pass.
//   - Stage 3: Induced(kept, kept) when at least one row is dropped.
//   - Stage 4: count leftover NaN cells.
//
// Errors:
//   - ErrNonSquare.
//
// Complexity:
//   - Time O(n²), Space O(n²) for the cleaned copy.
//
// AI-Hints:
//   - Kept maps cleaned indices back to annotation rows (bim/snp lists).
func DropNaN(m *Dense) (*CleanResult, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("DropNaN", err)
	}
	n := m.r
	kept := make([]int, 0, n)
	var i, j int
	for i = 0; i < n; i++ {
		allNaN := true
		for j = 0; j < n; j++ {
			if !math.IsNaN(m.data[i*n+j]) {
				allNaN = false
				break
			}
		}
		if !allNaN {
			kept = append(kept, i)
		}
	}

	res := &CleanResult{Matrix: m, Kept: kept, Removed: n - len(kept)}
	if res.Removed > 0 {
		cleaned, err := m.Induced(kept, kept)
		if err != nil {
			return nil, matrixErrorf("DropNaN", err)
		}
		res.Matrix = cleaned
	}
	for _, v := range res.Matrix.data {
		if math.IsNaN(v) {
			res.RemainingNaN++
		}
	}

	return res, nil
}
