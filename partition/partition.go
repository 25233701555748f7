// SPDX-License-Identifier: MIT

package partition

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ldblocks/det"
	"github.com/katalvlaran/ldblocks/matrix"
)

// Run partitions the square matrix behind acc into determinant-bounded
// blocks, evaluating every candidate with eval.
//
// Implementation:
//   - Stage 1: validate inputs (nil, MinDet, squareness); N == 0 → empty Result.
//   - Stage 2: label index 0 with block 1, then fold over n = 1..N-1 keeping
//     only the open block start m, the current ID b and the last accepted
//     evaluation of [m, n). When n == m (the first index of a block opened by
//     the previous step) n is labeled b without an evaluation: a block never
//     closes at size 1 for being too sparse, whatever MinDet is. Only a
//     singular extension produces a size-1 block.
//   - Stage 3: close the trailing open block [m, N).
//
// Behavior highlights:
//   - Accept:    sign > 0 && logdet > ln(MinDet) → n joins block b.
//   - Backtrack: sign ≤ 0 → close [m, n), n opens block b+1.
//   - Too sparse: otherwise → n closes block b as its last member.
//   - The evaluation of [m, n) needed by a backtrack is the one accepted at
//     the previous step when there is one; it is not recomputed.
//
// Errors:
//   - ErrNilInput, ErrInvalidMinDet, matrix.ErrNonSquare (before scanning).
//   - ErrInternal wrapping matrix.ErrOutOfRange from the accessor.
//   - Accessor and evaluator errors, wrapped with the candidate range.
//
// Complexity:
//   - Time O(Σ k³), Space O(N + k²).
func Run(acc matrix.Accessor, eval det.Evaluator, opts ...Option) (*Result, error) {
	if acc == nil || eval == nil {
		return nil, ErrNilInput
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := matrix.ValidateSquare(acc); err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	s := &scan{acc: acc, eval: eval, opts: o, threshold: math.Log(o.MinDet), n: acc.Rows()}
	if err := s.run(); err != nil {
		return nil, err
	}

	return &Result{labels: s.labels, blocks: s.blocks, minDet: o.MinDet}, nil
}

// scan holds the fold state of one Run.
type scan struct {
	acc       matrix.Accessor
	eval      det.Evaluator
	opts      Options
	threshold float64
	n         int

	labels []Label
	blocks []Block

	// open is the accepted evaluation of [start, openEnd).
	open    det.Result
	openEnd int
}

func (s *scan) run() error {
	if s.n == 0 {
		return nil
	}
	s.labels = make([]Label, s.n)

	var (
		m    int // start of the open block
		b    = 1
		cand det.Result
		err  error
	)
	s.label(0, b)
	for k := 1; k < s.n; k++ {
		if k == m {
			s.label(k, b)
			continue
		}

		if cand, err = s.evaluate(m, k+1); err != nil {
			return err
		}
		switch {
		case cand.Sign > 0 && cand.LogDet > s.threshold:
			s.label(k, b)
			s.open, s.openEnd = cand, k+1

		case cand.Sign <= 0:
			prev, err := s.evaluateCached(m, k)
			if err != nil {
				return err
			}
			s.close(b, m, k, prev, "singular extension")
			b++
			s.label(k, b)
			m = k

		default:
			s.label(k, b)
			s.close(b, m, k+1, cand, "below threshold")
			b++
			m = k + 1
		}
	}

	if m < s.n {
		last, err := s.evaluateCached(m, s.n)
		if err != nil {
			return err
		}
		s.close(b, m, s.n, last, "end of matrix")
	}

	return nil
}

func (s *scan) label(k, b int) {
	s.labels[k] = Label{Index: k, Block: b}
	if s.opts.Progress != nil {
		s.opts.Progress(k+1, s.n)
	}
}

func (s *scan) close(id, start, end int, r det.Result, why string) {
	blk := blockOf(id, start, end, r)
	s.blocks = append(s.blocks, blk)
	s.openEnd = -1
	s.opts.Logger.Debugw("block closed",
		"block", id, "start", start, "end", end, "size", blk.Size(),
		"sign", r.Sign, "logdet", r.LogDet, "reason", why)
}

// evaluateCached reuses the accepted evaluation of [start, end) when the
// previous step produced it. openEnd is reset on every close, so a hit always
// belongs to the open block.
func (s *scan) evaluateCached(start, end int) (det.Result, error) {
	if s.openEnd == end {
		return s.open, nil
	}
	return s.evaluate(start, end)
}

// evaluate extracts [start, end) and computes its determinant.
func (s *scan) evaluate(start, end int) (det.Result, error) {
	sub, err := s.acc.Submatrix(start, end)
	if err != nil {
		if errors.Is(err, matrix.ErrOutOfRange) {
			return det.Result{}, fmt.Errorf("%w: [%d, %d): %w", ErrInternal, start, end, err)
		}
		return det.Result{}, fmt.Errorf("partition: submatrix [%d, %d): %w", start, end, err)
	}
	r, err := s.eval.Evaluate(sub)
	if err != nil {
		return det.Result{}, fmt.Errorf("partition: determinant [%d, %d): %w", start, end, err)
	}

	return r, nil
}
