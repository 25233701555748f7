// SPDX-License-Identifier: MIT

package det

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ldblocks/matrix"
)

// DefaultPivotTolerance is the relative pivot tolerance: a pivot whose
// magnitude is ≤ DefaultPivotTolerance * max|A| marks the block singular.
const DefaultPivotTolerance = 1e-12

// ErrNotFinite indicates a NaN log-determinant, i.e. non-finite input that
// slipped past the NaN cleaning stage.
var ErrNotFinite = errors.New("det: non-finite determinant")

// Result is the (sign, log|det|) pair of one block.
//   - Sign: -1, 0 or +1.
//   - LogDet: natural log of |det|; -Inf when Sign == 0.
type Result struct {
	Sign   int
	LogDet float64
}

// Singular reports whether the block was found numerically singular.
func (r Result) Singular() bool { return r.Sign == 0 }

// String renders the result for logs.
func (r Result) String() string { return fmt.Sprintf("sign=%d logdet=%g", r.Sign, r.LogDet) }

// singular is the canonical Sign == 0 result.
var singular = Result{Sign: 0, LogDet: math.Inf(-1)}

// Evaluator computes the determinant of a square block.
//
// Implementations must not mutate m and must report singularity via
// Result.Sign == 0 rather than an error.
type Evaluator interface {
	Evaluate(m *matrix.Dense) (Result, error)
}

// Option configures an evaluator.
type Option func(*options)

type options struct {
	pivotTol float64
}

func defaultOptions() options {
	return options{pivotTol: DefaultPivotTolerance}
}

// WithPivotTolerance sets the relative pivot tolerance. 0 restores the exact
// zero-pivot rule. Panics on a negative or NaN value (programmer error).
func WithPivotTolerance(rel float64) Option {
	if math.IsNaN(rel) || rel < 0 || math.IsInf(rel, 0) {
		panic("det: WithPivotTolerance: tolerance must be finite and non-negative")
	}
	return func(o *options) { o.pivotTol = rel }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// maxAbs returns max|a_ij| over a row-major buffer.
func maxAbs(data []float64) float64 {
	var best float64
	for _, v := range data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}
	return best
}

// checkSquare validates the block shape, screens NaN/Inf and handles the
// empty block.
// It returns done == true when the result is already known.
func checkSquare(m *matrix.Dense) (res Result, done bool, err error) {
	if m == nil {
		return Result{}, true, matrix.ErrNilMatrix
	}
	if err = matrix.ValidateSquare(m); err != nil {
		return Result{}, true, err
	}
	if m.Rows() == 0 {
		return Result{Sign: 1, LogDet: 0}, true, nil
	}
	if matrix.ValidateFinite(m) != nil {
		return Result{}, true, ErrNotFinite
	}
	return Result{}, false, nil
}
