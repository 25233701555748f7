// SPDX-License-Identifier: MIT

// Package report renders partition results as the plain-text tables the
// rest of the toolchain consumes.
//
//	labels     "index label" per line, no header
//	blocks     "block start end sign logdet" per line, end inclusive, no header
//	annotated  CSV "chr,pos,rs,cl"
//	features   "block start end size rho mean [length]" with header
//	markers    one marker ID per line
//
// Every writer takes an io.Writer; WriteFile wraps one in a buffered file.
package report

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/features"
	"github.com/katalvlaran/ldblocks/partition"
)

// ErrMalformedLabels indicates a label table line that is not two integers.
var ErrMalformedLabels = errors.New("report: malformed label line")

// na marks a value that does not exist (features of a single-marker block).
const na = "NA"

// WriteFile creates path and hands a buffered writer to render.
func WriteFile(path string, render func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	bw := bufio.NewWriter(f)
	if err = render(bw); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteLabels writes one "index label" line per label.
func WriteLabels(w io.Writer, labels []partition.Label) error {
	for _, l := range labels {
		if _, err := fmt.Fprintf(w, "%d %d\n", l.Index, l.Block); err != nil {
			return err
		}
	}
	return nil
}

// ReadLabels parses a label table written by WriteLabels. Blank lines are
// skipped; the table itself is not verified (see partition.Verify).
func ReadLabels(r io.Reader) ([]partition.Label, error) {
	sc := bufio.NewScanner(r)
	var (
		out  []partition.Label
		line int
	)
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) != 2 {
			return nil, fmt.Errorf("line %d: %d fields: %w", line, len(f), ErrMalformedLabels)
		}
		idx, err1 := strconv.Atoi(f[0])
		blk, err2 := strconv.Atoi(f[1])
		if err := multierr.Combine(err1, err2); err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrMalformedLabels)
		}
		out = append(out, partition.Label{Index: idx, Block: blk})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadLabelsFile is ReadLabels over the file at path.
func ReadLabelsFile(path string) ([]partition.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	labels, err := ReadLabels(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return labels, nil
}

// WriteBlocks writes one "block start end sign logdet" line per block.
func WriteBlocks(w io.Writer, blocks []partition.Block) error {
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%d %d %d %d %s\n", b.ID, b.Start, b.Last(), b.Sign, formatFloat(b.LogDet)); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnnotated writes the annotated report as CSV with header chr,pos,rs,cl.
func WriteAnnotated(w io.Writer, rows []annotation.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"chr", "pos", "rs", "cl"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Chromosome,
			strconv.FormatInt(r.Coordinate, 10),
			r.VariantID,
			strconv.Itoa(r.Block),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteFeatures writes the feature table with a header line. The length
// column is present when the first feature carries one.
func WriteFeatures(w io.Writer, feats []features.Feature) error {
	withLength := len(feats) > 0 && feats[0].HasLength
	header := "block start end size rho mean"
	if withLength {
		header += " length"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, f := range feats {
		rho, mean := na, na
		if f.Pairs > 0 {
			rho, mean = formatFloat(f.Rho), formatFloat(f.Mean)
		}
		line := fmt.Sprintf("%d %d %d %d %s %s", f.ID, f.Start, f.Last(), f.Size(), rho, mean)
		if withLength {
			line += " " + strconv.FormatInt(f.Length, 10)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// WriteMarkerIDs writes one marker ID per line.
func WriteMarkerIDs(w io.Writer, ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}

// formatFloat prints the shortest exact representation, with lower-case
// inf/nan so the tables stay readable by numpy and pandas.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
