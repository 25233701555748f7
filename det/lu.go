// SPDX-License-Identifier: MIT

package det

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ldblocks/matrix"
)

// LU evaluates determinants through gonum's LU factorization with partial
// pivoting. The zero value is not usable; build it with NewLU.
type LU struct {
	opts options
}

var _ Evaluator = (*LU)(nil)

// NewLU returns the default evaluator.
func NewLU(opts ...Option) *LU {
	return &LU{opts: gatherOptions(opts)}
}

// Evaluate factorizes m = P·L·U and reads sign and ln|det| off the U diagonal
// and the permutation parity (gonum's LogDet).
//
// A diagonal entry of U with magnitude ≤ tol·max|m| turns the result into
// Sign == 0. The input is wrapped without copying; gonum copies it into its
// own factorization storage, so m is never mutated.
//
// Complexity: O(k³) time, O(k²) space.
func (e *LU) Evaluate(m *matrix.Dense) (Result, error) {
	res, done, err := checkSquare(m)
	if done {
		if err != nil && !errors.Is(err, ErrNotFinite) {
			err = fmt.Errorf("det: LU: %w", err)
		}
		return res, err
	}
	k := m.Rows()
	data := m.RawRowMajor()

	var lu mat.LU
	lu.Factorize(mat.NewDense(k, k, data))

	var u mat.TriDense
	lu.UTo(&u)
	tol := e.opts.pivotTol * maxAbs(data)
	for i := 0; i < k; i++ {
		if math.Abs(u.At(i, i)) <= tol {
			return singular, nil
		}
	}

	logdet, sign := lu.LogDet()
	if math.IsNaN(logdet) {
		return Result{}, ErrNotFinite
	}
	if math.IsInf(logdet, -1) {
		return singular, nil
	}

	return Result{Sign: int(sign), LogDet: logdet}, nil
}
