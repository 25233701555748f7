// Package matrix_test provides benchmarks for block extraction and the
// determinant kernel, using deterministic LD-like fixtures.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/ldblocks/matrix"
	"github.com/katalvlaran/ldblocks/matrix/matrixtest"
)

// benchSizes are the block sizes to benchmark.
var benchSizes = []int{16, 64, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkF float64
)

func BenchmarkSubmatrix(b *testing.B) {
	b.ReportAllocs()
	base := matrixtest.RandomLD(b, 512, 1337)
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("k=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := base.Submatrix(0, n)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkSlogDet(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("k=%d", n), func(b *testing.B) {
			m := matrixtest.RandomLD(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, logdet, err := matrix.SlogDetTol(m, matrix.ZeroPivot)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = logdet
			}
		})
	}
}
