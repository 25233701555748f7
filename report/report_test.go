// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/features"
	"github.com/katalvlaran/ldblocks/partition"
	"github.com/katalvlaran/ldblocks/report"
)

func TestLabels_RoundTrip(t *testing.T) {
	labels := []partition.Label{{Index: 0, Block: 1}, {Index: 1, Block: 1}, {Index: 2, Block: 2}}
	var buf bytes.Buffer
	require.NoError(t, report.WriteLabels(&buf, labels))
	assert.Equal(t, "0 1\n1 1\n2 2\n", buf.String())

	got, err := report.ReadLabels(&buf)
	require.NoError(t, err)
	assert.Equal(t, labels, got)
}

func TestReadLabels_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"one field":   "0\n",
		"three":       "0 1 2\n",
		"not a label": "0 x\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := report.ReadLabels(strings.NewReader(in))
			assert.ErrorIs(t, err, report.ErrMalformedLabels)
		})
	}
}

func TestWriteBlocks(t *testing.T) {
	blocks := []partition.Block{
		{Span: partition.Span{ID: 1, Start: 0, End: 2}, Sign: 1, LogDet: math.Log(0.75)},
		{Span: partition.Span{ID: 2, Start: 2, End: 3}, Sign: 1, LogDet: 0},
		{Span: partition.Span{ID: 3, Start: 3, End: 5}, Sign: 0, LogDet: math.Inf(-1)},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteBlocks(&buf, blocks))
	assert.Equal(t, "1 0 1 1 -0.2876820724517809\n2 2 2 1 0\n3 3 4 0 -inf\n", buf.String())
}

func TestWriteAnnotated(t *testing.T) {
	rows := []annotation.Row{
		{Chromosome: "22", Coordinate: 16050075, VariantID: "rs587697622", Block: 1},
		{Chromosome: "22", Coordinate: 16050115, VariantID: "rs587755077", Block: 2},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteAnnotated(&buf, rows))
	assert.Equal(t, "chr,pos,rs,cl\n22,16050075,rs587697622,1\n22,16050115,rs587755077,2\n", buf.String())
}

func TestWriteFeatures(t *testing.T) {
	feats := []features.Feature{
		{Span: partition.Span{ID: 1, Start: 0, End: 3}, Pairs: 3, Rho: 0.6667, Mean: 0.6333, Length: 1100, HasLength: true},
		{Span: partition.Span{ID: 2, Start: 3, End: 4}, Rho: math.NaN(), Mean: math.NaN(), HasLength: true},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteFeatures(&buf, feats))
	assert.Equal(t, "block start end size rho mean length\n1 0 2 3 0.6667 0.6333 1100\n2 3 3 1 NA NA 0\n", buf.String())

	feats[0].HasLength = false
	buf.Reset()
	require.NoError(t, report.WriteFeatures(&buf, feats[:1]))
	assert.Equal(t, "block start end size rho mean\n1 0 2 3 0.6667 0.6333\n", buf.String())
}

func TestWriteMarkerIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkerIDs(&buf, []string{"rs1", "rs2"}))
	assert.Equal(t, "rs1\nrs2\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, report.WriteFile(path, func(w io.Writer) error {
		return report.WriteLabels(w, []partition.Label{{Index: 0, Block: 1}})
	}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 1\n", string(raw))

	labels, err := report.ReadLabelsFile(path)
	require.NoError(t, err)
	assert.Len(t, labels, 1)

	boom := errors.New("boom")
	err = report.WriteFile(path, func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = report.WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.txt"), func(io.Writer) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
