// SPDX-License-Identifier: MIT

// Package partition splits a square LD (r²) matrix into contiguous diagonal
// blocks whose determinant stays above a density threshold.
//
// The scan walks the diagonal once. Each step asks the Evaluator for the
// determinant of the open block extended by one marker:
//
//	– sign > 0 and ln|det| > ln(minDet): the marker joins the block.
//	– sign ≤ 0 (singular or indefinite): back off one step; the block ends
//	  before the marker, which opens the next block.
//	– otherwise (too sparse): the marker is the last one of the block.
//
// Only a strict ">" keeps a block open, so a candidate whose determinant
// equals minDet closes its block. Blocks have at least one marker.
//
// Complexity:
//
//	– Time:  O(Σ k³) determinant work over all candidates, k = open block size.
//	– Space: O(N) labels + O(k²) for the largest candidate submatrix.
//
// Options:
//
//	– MinDet:   density threshold, finite and > 0 (default DefaultMinDet).
//	– Progress: callback invoked after every labeled index.
//	– Logger:   zap logger for per-block debug records (default no-op).
//
// Errors (sentinel):
//
//	– ErrInvalidMinDet   if MinDet is not finite or ≤ 0.
//	– ErrNilInput        if the accessor or the evaluator is nil.
//	– ErrInternal        if the accessor rejects a range the scan computed.
//	– ErrBrokenPartition if a label table violates the partition invariant.
//	– matrix.ErrNonSquare if the accessor is not square.
//
// Example usage:
//
//	res, err := partition.Run(store, det.NewLU(), partition.WithMinDet(0.001))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range res.Blocks() {
//	    fmt.Println(b.ID, b.Start, b.Last())
//	}
package partition

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/ldblocks/det"
)

// DefaultMinDet is the density threshold used when WithMinDet is not given.
const DefaultMinDet = 0.001

// Sentinel errors returned by the partitioner.
var (
	// ErrInvalidMinDet indicates a threshold that is NaN, infinite or ≤ 0.
	ErrInvalidMinDet = errors.New("partition: min-det must be finite and > 0")

	// ErrNilInput indicates a nil accessor or evaluator.
	ErrNilInput = errors.New("partition: nil accessor or evaluator")

	// ErrInternal indicates an internal consistency failure: the accessor
	// rejected a range the scan computed.
	ErrInternal = errors.New("partition: internal consistency failure")

	// ErrBrokenPartition indicates labels that are not a gap-free,
	// non-decreasing cover of 0..N-1.
	ErrBrokenPartition = errors.New("partition: broken partition")
)

// Label assigns one matrix index to a block.
type Label struct {
	Index int // 0-based marker index
	Block int // 1-based block ID
}

// Span is the half-open index range [Start, End) of block ID.
type Span struct {
	ID    int
	Start int
	End   int
}

// Size returns the number of markers in the span.
func (s Span) Size() int { return s.End - s.Start }

// Last returns the inclusive last index of the span.
func (s Span) Last() int { return s.End - 1 }

func (s Span) String() string { return fmt.Sprintf("block %d [%d, %d)", s.ID, s.Start, s.End) }

// Block is a closed block together with the determinant of its submatrix.
type Block struct {
	Span
	Sign   int     // sign of det(submatrix[Start, End))
	LogDet float64 // ln|det|, -Inf when Sign == 0
}

// Det returns the determinant as a plain number (may underflow to 0).
func (b Block) Det() float64 {
	return float64(b.Sign) * math.Exp(b.LogDet)
}

// Result is the outcome of one scan. It is immutable: accessors return copies.
type Result struct {
	labels []Label
	blocks []Block
	minDet float64
}

// Len returns N, the number of labeled indices.
func (r *Result) Len() int { return len(r.labels) }

// NumBlocks returns the number of blocks.
func (r *Result) NumBlocks() int { return len(r.blocks) }

// MinDet returns the threshold the scan ran with.
func (r *Result) MinDet() float64 { return r.minDet }

// Labels returns one label per index, in index order.
func (r *Result) Labels() []Label { return append([]Label(nil), r.labels...) }

// Blocks returns the blocks in ID order.
func (r *Result) Blocks() []Block { return append([]Block(nil), r.blocks...) }

// Options configures Run.
//
// MinDet   – density threshold; Run fails with ErrInvalidMinDet unless it is
//
//	finite and > 0. Default DefaultMinDet.
//
// Progress – optional callback, called with (done, total) after every index.
// Logger   – receives one debug record per closed block.
type Options struct {
	MinDet   float64
	Progress func(done, total int)
	Logger   *zap.SugaredLogger
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithMinDet sets the density threshold.
func WithMinDet(v float64) Option {
	return func(o *Options) {
		o.MinDet = v
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn func(done, total int)) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// WithLogger routes per-block debug records to l.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns the defaults: DefaultMinDet, no progress, no-op logger.
func DefaultOptions() Options {
	return Options{
		MinDet: DefaultMinDet,
		Logger: zap.NewNop().Sugar(),
	}
}

// validate checks option values before the scan starts.
func (o Options) validate() error {
	if math.IsNaN(o.MinDet) || math.IsInf(o.MinDet, 0) || o.MinDet <= 0 {
		return fmt.Errorf("%v: %w", o.MinDet, ErrInvalidMinDet)
	}
	return nil
}

// blockOf builds a closed Block from its evaluation.
func blockOf(id, start, end int, r det.Result) Block {
	return Block{Span: Span{ID: id, Start: start, End: end}, Sign: r.Sign, LogDet: r.LogDet}
}
