// SPDX-License-Identifier: MIT

package det

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ldblocks/matrix"
)

// Native evaluates determinants with the in-house kernel matrix.SlogDetTol.
type Native struct {
	opts options
}

var _ Evaluator = (*Native)(nil)

// NewNative returns an evaluator backed by matrix.SlogDetTol.
func NewNative(opts ...Option) *Native {
	return &Native{opts: gatherOptions(opts)}
}

// Evaluate implements Evaluator.
func (e *Native) Evaluate(m *matrix.Dense) (Result, error) {
	res, done, err := checkSquare(m)
	if done {
		if err != nil && !errors.Is(err, ErrNotFinite) {
			err = fmt.Errorf("det: Native: %w", err)
		}
		return res, err
	}

	sign, logdet, err := matrix.SlogDetTol(m, e.opts.pivotTol*maxAbs(m.RawRowMajor()))
	if err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return Result{}, ErrNotFinite
		}
		return Result{}, fmt.Errorf("det: Native: %w", err)
	}
	if sign == 0 {
		return singular, nil
	}

	return Result{Sign: sign, LogDet: logdet}, nil
}
