// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ldblocks/matrix"
	"github.com/katalvlaran/ldblocks/matrix/matrixtest"
	"github.com/stretchr/testify/require"
)

// TestValidateSquare covers nil, square and rectangular inputs.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateSquare(matrixtest.Identity(t, 3)))

	err = matrix.ValidateSquare(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.Contains(t, err.Error(), "2 x 3") // observed dims are reported
}

// TestValidateRange checks the half-open range contract.
func TestValidateRange(t *testing.T) {
	t.Parallel()

	m := matrixtest.Identity(t, 4)
	tests := []struct {
		name    string
		i, j    int
		wantErr bool
	}{
		{"whole", 0, 4, false},
		{"single", 3, 4, false},
		{"negative", -1, 1, true},
		{"past end", 1, 5, true},
		{"empty", 1, 1, true},
		{"reversed", 2, 1, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateRange(m, tc.i, tc.j)
			if tc.wantErr {
				require.ErrorIs(t, err, matrix.ErrOutOfRange)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestValidateSymmetric covers tolerance handling and NaN cells.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	sym := matrixtest.Equicorrelation(t, 3, 0.4)
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	asym, err := matrix.NewDenseFrom(3, 3, append([]float64(nil), sym.RawRowMajor()...))
	require.NoError(t, err)
	require.NoError(t, asym.Set(0, 1, 0.41))
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 0), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, -0.02)) // |tol| is used

	require.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)

	nanPair, err := matrix.NewDenseFrom(2, 2, []float64{1, math.NaN(), math.NaN(), 1})
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(nanPair, 0))

	oneSided, err := matrix.NewDenseFrom(2, 2, []float64{1, math.NaN(), 0.5, 1})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSymmetric(oneSided, 1), matrix.ErrAsymmetry)
}

// TestValidateFinite reports the first non-finite cell.
func TestValidateFinite(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateFinite(matrixtest.Identity(t, 2)))

	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 0, math.Inf(1), 1})
	require.NoError(t, err)
	err = matrix.ValidateFinite(m)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.Contains(t, err.Error(), "(1,0)")
}
