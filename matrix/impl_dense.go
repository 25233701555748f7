// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Submatrix return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Serve as the fully in-memory Accessor backing.
//
// AI-Hints:
//   - Use Submatrix(i, j) for diagonal LD blocks; it is what the partitioner calls.
//   - Use Induced(rows, cols) to materialize an arbitrary (possibly non-contiguous) selection.
//   - NewDenseFrom adopts a caller buffer without copying; do not mutate it afterwards.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Submatrix: O(k²); Induced: O(r'*c').

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"        // method tag used in error wrappers
	ctxSet       = "Set"       // method tag used in error wrappers
	ctxInduce    = "Induced"   // method tag for Dense.Induced
	ctxSubmatrix = "Submatrix" // method tag for Dense.Submatrix
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//
// Cells loaded from storage may hold NaN (see DropNaN); Set never writes one.
type Dense struct {
	r, c int       // row and column counts (>=0; zero allowed only for empty selections)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Accessor     = (*Dense)(nil) // *Dense is the in-memory Accessor backing
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:    rows,
		c:    cols,
		data: make([]float64, rows*cols), // make() zero-fills deterministically
	}, nil
}

// NewDenseFrom wraps an existing row-major buffer as a rows×cols Dense.
// MAIN DESCRIPTION:
//   - Zero-copy constructor used by loaders (text parser, mmap store, cleaners).
//
// Implementation:
//   - Stage 1: validate rows>0, cols>0 and len(data) == rows*cols.
//   - Stage 2: adopt the slice as backing storage.
//
// Behavior highlights:
//   - Values are NOT screened for NaN/Inf: raw LD matrices legitimately carry
//     NaN until DropNaN has run. Use ValidateFinite when finiteness matters.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - The caller hands over ownership; mutate through Set only.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom: %d values for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseRows builds a Dense from a rectangular [][]float64 literal (copy).
// Handy for fixtures and small hand-made LD blocks.
// Errors: ErrInvalidDimensions (empty), ErrDimensionMismatch (ragged rows).
// Complexity: Time O(r*c), Space O(r*c).
func NewDenseRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	buf := make([]float64, 0, r*c)
	for i := range rows {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("NewDenseRows: row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrDimensionMismatch)
		}
		buf = append(buf, rows[i]...)
	}

	return &Dense{r: r, c: c, data: buf}, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// RawRowMajor exposes the backing buffer (len == Rows*Cols) for kernels that
// hand the data to external factorizations. The slice is shared: read only.
// Complexity: O(1).
func (m *Dense) RawRowMajor() []float64 { return m.data }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Implementation:
//   - Stage 1: validate 0 ≤ row < m.r and 0 ≤ col < m.c.
//   - Stage 2: compute row*m.c + col.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Behavior highlights:
//   - Never panics on out-of-range; returns a wrapped sentinel error.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or non-finite v).
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: reject NaN/±Inf.
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v // direct flat write

	return nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Behavior highlights:
//   - Not for hot paths; intended for logs and debugging.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}

// Submatrix copies the diagonal block [i, j)×[i, j) into a fresh Dense.
// MAIN DESCRIPTION:
//   - Accessor implementation for the in-memory backing; the block is what the
//     determinant evaluator factorizes.
//
// Implementation:
//   - Stage 1: ValidateRange(m, i, j) (0 ≤ i < j ≤ min(r, c)).
//   - Stage 2: copy k = j-i row segments of length k with copy().
//
// Behavior highlights:
//   - Result is independent of m (factorizations may scribble on it freely).
//   - Numeric policy is preserved.
//
// Errors:
//   - ErrOutOfRange (wrapped with the offending range).
//
// Determinism:
//   - Fixed row order; one copy per row.
//
// Complexity:
//   - Time O(k²), Space O(k²).
//
// AI-Hints:
//   - Callers scanning a growing block re-extract each step; k stays small for LD.
func (m *Dense) Submatrix(i, j int) (*Dense, error) {
	if err := ValidateRange(m, i, j); err != nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxSubmatrix, err)
	}
	k := j - i
	out := make([]float64, k*k)
	var row int
	for row = 0; row < k; row++ { // copy one contiguous row segment at a time
		src := (i+row)*m.c + i
		copy(out[row*k:(row+1)*k], m.data[src:src+k])
	}

	return &Dense{r: k, c: k, data: out}, nil
}

// Induced materializes a copy submatrix using explicit index sets.
// MAIN DESCRIPTION:
//   - Copy rows/cols at the given index lists (duplicates allowed).
//
// Implementation:
//   - Stage 1: handle zero-sized result (legal).
//   - Stage 2: allocate result.
//   - Stage 3: nested loops with direct offset math; bounds-check each index.
//
// Errors:
//   - ErrOutOfRange (index outside bounds).
//
// Determinism:
//   - Fixed nested loops i→j.
//
// Complexity:
//   - Time O(rp*cp), Space O(rp*cp).
//
// AI-Hints:
//   - DropNaN uses it with identical row/col lists to keep the kept-marker square.
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	rp := len(rowsIdx) // result rows
	cp := len(colsIdx) // result cols
	// Zero-area: legal Dense
	if rp == 0 || cp == 0 {
		return &Dense{r: rp, c: cp, data: make([]float64, 0)}, nil
	}

	res := &Dense{r: rp, c: cp, data: make([]float64, rp*cp)}

	// Deterministic double loop; direct offset math in both matrices.
	var i, j int
	var ri, cj int
	for i = 0; i < rp; i++ {
		ri = rowsIdx[i]
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", ctxInduce, ri, ErrOutOfRange)
		}
		for j = 0; j < cp; j++ {
			cj = colsIdx[j]
			if cj < 0 || cj >= m.c {
				return nil, fmt.Errorf("Dense.%s: col index %d: %w", ctxInduce, cj, ErrOutOfRange)
			}
			res.data[i*cp+j] = m.data[ri*m.c+cj]
		}
	}

	return res, nil
}

// UpperTriangle returns the strict upper-triangle values (i < j) of a square
// matrix in row-major order: the k(k-1)/2 pairwise LD values of a block.
// Errors: ErrNonSquare.
// Complexity: Time O(k²), Space O(k²).
func (m *Dense) UpperTriangle() ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, err
	}
	n := m.r
	out := make([]float64, 0, n*(n-1)/2)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			out = append(out, m.data[i*n+j])
		}
	}

	return out, nil
}
