// SPDX-License-Identifier: MIT

package annotation_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/det"
	"github.com/katalvlaran/ldblocks/matrix/matrixtest"
	"github.com/katalvlaran/ldblocks/partition"
)

// bimLines renders n markers on chromosome 22, 100 bp apart.
func bimLines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "22\trs%d\t0\t%d\tA\tG\n", i+1, 16050000+100*i)
	}
	return sb.String()
}

func TestReadBIM(t *testing.T) {
	rows, err := annotation.ReadBIM(strings.NewReader("1 rs1 0.01 752566 G A\n\n1\trs2\t0\t776546\tAC\tT\textra\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, annotation.BIMRow{
		Chromosome: "1", VariantID: "rs1", Morgans: "0.01", Coordinate: 752566, Allele1: "G", Allele2: "A",
	}, rows[0])
	assert.Equal(t, "AC", rows[1].Allele1)
	assert.Equal(t, []string{"rs1", "rs2"}, annotation.VariantIDs(rows))
}

func TestReadBIM_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"short":        "1 rs1 0 752566 G\n",
		"bad position": "1 rs1 0 abc G A\n",
		"overflow":     "1 rs1 0 99999999999999999999 G A\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := annotation.ReadBIM(strings.NewReader(in))
			assert.ErrorIs(t, err, annotation.ErrMalformedBIM)
		})
	}
}

func TestReadBIM_ExcludedVariant(t *testing.T) {
	rows, err := annotation.ReadBIM(strings.NewReader("1 rs1 0 752566 G A\n1 rs2 0 -752721 A G\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(-752721), rows[1].Coordinate)
}

func TestLoadBIM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bim")
	require.NoError(t, os.WriteFile(path, []byte(bimLines(3)), 0o644))
	rows, err := annotation.LoadBIM(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, int64(16050200), rows[2].Coordinate)

	_, err = annotation.LoadBIM(filepath.Join(t.TempDir(), "none.bim"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnnotate_RoundTrip(t *testing.T) {
	res, err := partition.Run(matrixtest.SeamedBlocks(t, 0.3, 3, 3), det.NewLU(), partition.WithMinDet(0.1))
	require.NoError(t, err)
	require.Equal(t, 2, res.NumBlocks())

	rows, err := annotation.ReadBIM(strings.NewReader(bimLines(6)))
	require.NoError(t, err)
	ann, err := annotation.Annotate(res.Labels(), rows)
	require.NoError(t, err)
	require.Len(t, ann, 6)
	for i, r := range ann {
		want := 1
		if i >= 3 {
			want = 2
		}
		assert.Equal(t, want, r.Block, "row %d", i)
		assert.Equal(t, fmt.Sprintf("rs%d", i+1), r.VariantID)
		assert.Equal(t, "22", r.Chromosome)
	}

	_, err = annotation.Annotate(res.Labels(), rows[:5])
	require.ErrorIs(t, err, annotation.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "5 annotation rows, 6 matrix indices")
}

func TestBoundaries(t *testing.T) {
	rows := []annotation.Row{
		{VariantID: "a", Block: 1},
		{VariantID: "b", Block: 1},
		{VariantID: "c", Block: 1},
		{VariantID: "d", Block: 2},
		{VariantID: "e", Block: 3},
		{VariantID: "f", Block: 3},
	}
	var ids []string
	for _, r := range annotation.Boundaries(rows) {
		ids = append(ids, r.VariantID)
	}
	assert.Equal(t, []string{"a", "c", "d", "e", "f"}, ids)
	assert.Empty(t, annotation.Boundaries(nil))
}
