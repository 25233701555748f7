// SPDX-License-Identifier: MIT

package partition

import "fmt"

// Verify checks that labels form a partition of 0..n-1: one label per index
// in index order, the first in block 1, and every next label either in the
// same block or in the next one.
//
// Errors: ErrBrokenPartition naming the first offending index.
// Complexity: O(n).
func Verify(labels []Label, n int) error {
	if len(labels) != n {
		return fmt.Errorf("%d labels for %d indices: %w", len(labels), n, ErrBrokenPartition)
	}
	for i, l := range labels {
		if l.Index != i {
			return fmt.Errorf("position %d holds index %d: %w", i, l.Index, ErrBrokenPartition)
		}
		switch {
		case i == 0 && l.Block != 1:
			return fmt.Errorf("index 0 in block %d, want 1: %w", l.Block, ErrBrokenPartition)
		case i > 0 && (l.Block < labels[i-1].Block || l.Block > labels[i-1].Block+1):
			return fmt.Errorf("index %d jumps from block %d to %d: %w", i, labels[i-1].Block, l.Block, ErrBrokenPartition)
		}
	}

	return nil
}

// SpansFromLabels rebuilds the block ranges of a verified label table.
func SpansFromLabels(labels []Label) ([]Span, error) {
	if err := Verify(labels, len(labels)); err != nil {
		return nil, err
	}
	var spans []Span
	for i, l := range labels {
		if i == 0 || l.Block != labels[i-1].Block {
			spans = append(spans, Span{ID: l.Block, Start: i, End: i + 1})
			continue
		}
		spans[len(spans)-1].End = i + 1
	}

	return spans, nil
}

// Verify checks the result's labels and that its blocks are exactly the
// spans the labels describe.
func (r *Result) Verify() error {
	spans, err := SpansFromLabels(r.labels)
	if err != nil {
		return err
	}
	if len(spans) != len(r.blocks) {
		return fmt.Errorf("%d blocks, labels describe %d: %w", len(r.blocks), len(spans), ErrBrokenPartition)
	}
	for i, s := range spans {
		if r.blocks[i].Span != s {
			return fmt.Errorf("%v, labels describe %v: %w", r.blocks[i].Span, s, ErrBrokenPartition)
		}
	}

	return nil
}
