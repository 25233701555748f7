// SPDX-License-Identifier: MIT

// Package matrixtest builds deterministic LD-like fixtures for tests and
// benchmarks across the module. Every builder returns a symmetric *Dense with
// a unit diagonal unless its doc says otherwise.
package matrixtest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldblocks/matrix"
)

// MustRows builds a Dense from a literal or fails the test.
func MustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseRows(rows)
	if err != nil {
		tb.Fatalf("NewDenseRows: %v", err)
	}

	return m
}

// Identity returns I_n: n markers with no pairwise LD.
func Identity(tb testing.TB, n int) *matrix.Dense {
	tb.Helper()
	return Equicorrelation(tb, n, 0)
}

// AllOnes returns the n×n matrix of ones (complete collinearity).
func AllOnes(tb testing.TB, n int) *matrix.Dense {
	tb.Helper()
	return Equicorrelation(tb, n, 1)
}

// Equicorrelation returns the n×n matrix with 1 on the diagonal and rho
// everywhere else. Its determinant is (1-rho)^(n-1) * (1+(n-1)rho).
func Equicorrelation(tb testing.TB, n int, rho float64) *matrix.Dense {
	tb.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i == j {
				rows[i][j] = 1
			} else {
				rows[i][j] = rho
			}
		}
	}

	return MustRows(tb, rows)
}

// EquicorrelationDet is the closed-form determinant of Equicorrelation(n, rho).
func EquicorrelationDet(n int, rho float64) float64 {
	return math.Pow(1-rho, float64(n-1)) * (1 + float64(n-1)*rho)
}

// SeamedBlocks lays out len(sizes) equicorrelated blocks (within-block value
// rho, cross-block value 0) along the diagonal, then makes the first marker
// of every block after the first an exact copy of the last marker of the
// previous block as seen from that block: same LD with the previous block's
// markers and r² = 1 with its last marker. Extending a block across a seam
// is therefore exactly singular, which forces a boundary there.
func SeamedBlocks(tb testing.TB, rho float64, sizes ...int) *matrix.Dense {
	tb.Helper()
	n := 0
	for _, s := range sizes {
		n += s
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	start := 0
	for _, s := range sizes {
		for i := start; i < start+s; i++ {
			for j := start; j < start+s; j++ {
				if i != j {
					rows[i][j] = rho
				}
			}
		}
		if start > 0 {
			prevLast := start - 1
			first := start
			for j := 0; j < prevLast; j++ {
				if rows[prevLast][j] != 0 {
					rows[first][j] = rows[prevLast][j]
					rows[j][first] = rows[prevLast][j]
				}
			}
			rows[first][prevLast] = 1
			rows[prevLast][first] = 1
		}
		start += s
	}

	return MustRows(tb, rows)
}

// RandomLD returns a positive semi-definite r²-like matrix: squared Pearson
// correlations of random genotype-like columns with local structure.
// Values lie in [0, 1] with a unit diagonal.
func RandomLD(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	const samples = 64
	rng := rand.New(rand.NewSource(seed))
	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		cols[j] = make([]float64, samples)
		for s := 0; s < samples; s++ {
			v := rng.NormFloat64()
			if j > 0 {
				v += 0.8 * cols[j-1][s] // local LD with the previous marker
			}
			cols[j][s] = v
		}
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		rows[i][i] = 1
		for j := i + 1; j < n; j++ {
			r := pearson(cols[i], cols[j])
			rows[i][j] = r * r
			rows[j][i] = r * r
		}
	}

	return MustRows(tb, rows)
}

func pearson(a, b []float64) float64 {
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= float64(len(a))
	mb /= float64(len(b))
	var sab, saa, sbb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}

	return sab / math.Sqrt(saa*sbb)
}
