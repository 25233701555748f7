// SPDX-License-Identifier: MIT

package ldstore_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldblocks/ldstore"
	"github.com/katalvlaran/ldblocks/matrix"
	"github.com/katalvlaran/ldblocks/matrix/matrixtest"
)

// writeStore persists m under a temp dir and opens it.
func writeStore(t *testing.T, m *matrix.Dense, opts ...ldstore.WriteOption) (*ldstore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "m.ldm")
	require.NoError(t, ldstore.WriteFile(path, m, opts...))
	s, err := ldstore.Open(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_Float64Exact(t *testing.T) {
	m := matrixtest.RandomLD(t, 9, 3)
	s, _ := writeStore(t, m, ldstore.WithDType(ldstore.Float64))

	assert.Equal(t, 9, s.Rows())
	assert.Equal(t, 9, s.Cols())
	h := s.Header()
	assert.Equal(t, ldstore.Float64, h.DType)

	all, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, m.RawRowMajor(), all.RawRowMajor())
}

func TestStore_Float32Default(t *testing.T) {
	m := matrixtest.RandomLD(t, 6, 5)
	s, _ := writeStore(t, m)
	assert.Equal(t, ldstore.Float32, s.Header().DType)

	all, err := s.Load()
	require.NoError(t, err)
	assert.InDeltaSlice(t, m.RawRowMajor(), all.RawRowMajor(), 1e-7)
}

func TestStore_SubmatrixMatchesDense(t *testing.T) {
	m := matrixtest.RandomLD(t, 10, 11)
	s, _ := writeStore(t, m, ldstore.WithDType(ldstore.Float64))

	for _, r := range [][2]int{{0, 1}, {0, 10}, {3, 7}, {9, 10}} {
		want, err := m.Submatrix(r[0], r[1])
		require.NoError(t, err)
		got, err := s.Submatrix(r[0], r[1])
		require.NoError(t, err)
		assert.Equal(t, want.RawRowMajor(), got.RawRowMajor(), "range %v", r)
	}
}

func TestStore_SubmatrixOutOfRange(t *testing.T) {
	s, _ := writeStore(t, matrixtest.Identity(t, 4))
	for _, r := range [][2]int{{-1, 2}, {2, 2}, {3, 1}, {0, 5}} {
		_, err := s.Submatrix(r[0], r[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfRange, "range %v", r)
	}
}

func TestStore_NaNSurvives(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, math.NaN(), math.NaN(), 1})
	require.NoError(t, err)
	for _, dt := range []ldstore.DType{ldstore.Float32, ldstore.Float64} {
		s, _ := writeStore(t, m, ldstore.WithDType(dt))
		got, err := s.Load()
		require.NoError(t, err)
		v, err := got.At(0, 1)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v), "%v", dt)
	}
}

func TestStore_NonSquareIsReadable(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	s, _ := writeStore(t, m, ldstore.WithDType(ldstore.Float64))
	assert.ErrorIs(t, matrix.ValidateSquare(s), matrix.ErrNonSquare)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, m.RawRowMajor(), got.RawRowMajor())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ldstore.Open(filepath.Join(dir, "missing.ldm"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)

	short := filepath.Join(dir, "short.ldm")
	require.NoError(t, os.WriteFile(short, []byte("LDM1"), 0o644))
	_, err = ldstore.Open(short, "")
	assert.ErrorIs(t, err, ldstore.ErrTruncated)

	named := filepath.Join(dir, "named.ldm")
	require.NoError(t, ldstore.WriteFile(named, matrixtest.Identity(t, 3), ldstore.WithDataset("other")))
	_, err = ldstore.Open(named, "r2")
	assert.ErrorIs(t, err, ldstore.ErrDatasetNotFound)
	s, err := ldstore.Open(named, "other")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	full := filepath.Join(dir, "full.ldm")
	require.NoError(t, ldstore.WriteFile(full, matrixtest.Identity(t, 3)))
	raw, err := os.ReadFile(full)
	require.NoError(t, err)
	cut := filepath.Join(dir, "cut.ldm")
	require.NoError(t, os.WriteFile(cut, raw[:len(raw)-4], 0o644))
	_, err = ldstore.Open(cut, "")
	assert.ErrorIs(t, err, ldstore.ErrTruncated)
}

func TestOpen_OverflowingHeader(t *testing.T) {
	h := &ldstore.Header{DType: ldstore.Float64, Rows: 1 << 31, Cols: 1 << 31}
	require.NoError(t, h.SetDatasetName(ldstore.DefaultDataset))
	b, err := ldstore.EncodeHeader(h)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "huge.ldm")
	require.NoError(t, os.WriteFile(path, append(b, make([]byte, 64)...), 0o644))

	s, err := ldstore.Open(path, "")
	assert.ErrorIs(t, err, ldstore.ErrBadHeader)
	assert.Nil(t, s)
}

func TestStore_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.ldm")
	require.NoError(t, ldstore.WriteFile(path, matrixtest.Identity(t, 2)))
	s, err := ldstore.Open(path, ldstore.DefaultDataset)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = s.Submatrix(0, 1)
	assert.ErrorIs(t, err, ldstore.ErrClosed)
	_, err = s.Load()
	assert.ErrorIs(t, err, ldstore.ErrClosed)
}
