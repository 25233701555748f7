// SPDX-License-Identifier: MIT

package ldstore_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldblocks/ldstore"
)

func TestReadText(t *testing.T) {
	in := "1 0.5\tnan\n\n0.5  1 -nan\nNaN 0.25 1\n"
	m, err := ldstore.ReadText(strings.NewReader(in))
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)

	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
	v, err = m.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
	for _, ij := range [][2]int{{0, 2}, {1, 2}, {2, 0}} {
		v, err = m.At(ij[0], ij[1])
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v), "cell %v", ij)
	}
}

func TestReadText_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     "\n\n",
		"ragged":    "1 2\n3\n",
		"bad token": "1 x\n0 1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ldstore.ReadText(strings.NewReader(in))
			assert.ErrorIs(t, err, ldstore.ErrParse)
		})
	}
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.ld")
	require.NoError(t, os.WriteFile(path, []byte("1 0\n0 1\n"), 0o644))
	m, err := ldstore.ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1}, m.RawRowMajor())

	_, err = ldstore.ReadTextFile(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
