// SPDX-License-Identifier: MIT

// Package features summarizes the blocks of a partition: how dense the LD
// inside each block is and, given marker coordinates, how long it is.
package features

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/matrix"
	"github.com/katalvlaran/ldblocks/partition"
)

const (
	// DefaultR2 is the r² cut-off used for the density share.
	DefaultR2 = 0.7

	// places is the number of decimals kept for Rho and Mean.
	places = 4
)

// ErrInvalidR2 indicates an r² cut-off outside [0, 1].
var ErrInvalidR2 = errors.New("features: r2 must lie in [0, 1]")

// Feature describes one block.
//
// Rho is the share of pairwise values ≥ the r² cut-off and Mean their
// average, both over the strict upper triangle and rounded to 4 decimals.
// A single-marker block has no pairs: Pairs == 0 and Rho/Mean are NaN.
// Length is Coordinate(last) - Coordinate(first) when annotation is given.
type Feature struct {
	partition.Span
	Pairs     int
	Rho       float64
	Mean      float64
	Length    int64
	HasLength bool
}

// Compute derives the features of every span from the matrix behind acc.
// rows is optional; when non-nil it must hold one row per matrix index.
//
// Errors: ErrInvalidR2, annotation.ErrShapeMismatch, accessor errors.
// Complexity: O(Σ k²) over blocks.
func Compute(acc matrix.Accessor, spans []partition.Span, r2 float64, rows []annotation.BIMRow) ([]Feature, error) {
	if math.IsNaN(r2) || r2 < 0 || r2 > 1 {
		return nil, fmt.Errorf("%v: %w", r2, ErrInvalidR2)
	}
	if rows != nil {
		if err := annotation.CheckRows(rows, acc.Rows()); err != nil {
			return nil, err
		}
	}

	out := make([]Feature, 0, len(spans))
	for _, s := range spans {
		f := Feature{Span: s, Rho: math.NaN(), Mean: math.NaN()}
		if s.Size() > 1 {
			block, err := acc.Submatrix(s.Start, s.End)
			if err != nil {
				return nil, fmt.Errorf("features: %v: %w", s, err)
			}
			v, err := block.UpperTriangle()
			if err != nil {
				return nil, fmt.Errorf("features: %v: %w", s, err)
			}
			f.Pairs = len(v)
			f.Rho, f.Mean = density(v, r2)
		}
		if rows != nil {
			f.Length = rows[s.Last()].Coordinate - rows[s.Start].Coordinate
			f.HasLength = true
		}
		out = append(out, f)
	}

	return out, nil
}

// density returns the rounded share of v at or above r2 and the rounded mean.
// NaN values count as below the cut-off and turn the mean into NaN.
func density(v []float64, r2 float64) (rho, mean float64) {
	var hits int
	for _, x := range v {
		if x >= r2 {
			hits++
		}
	}
	rho = round(float64(hits) / float64(len(v)))
	m, err := stats.Mean(v)
	if err != nil {
		return rho, math.NaN()
	}

	return rho, round(m)
}

func round(x float64) float64 {
	r, err := stats.Round(x, places)
	if err != nil {
		return math.NaN()
	}
	return r
}
