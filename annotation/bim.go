// SPDX-License-Identifier: MIT

// Package annotation joins partition labels with PLINK marker annotations.
//
// A .bim file has one line per marker, in matrix order, with six
// whitespace-separated columns: chromosome, variant ID, genetic distance
// (morgans), coordinate, allele 1, allele 2. Row i describes matrix index i;
// the only validation performed is that the row count matches N.
package annotation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Map columns in the BIM file to their positions
const (
	Chromosome int = iota
	VariantID
	Morgans
	Coordinate
	Allele1
	Allele2

	numColumns
)

var (
	// ErrShapeMismatch indicates an annotation whose row count differs from
	// the number of matrix indices.
	ErrShapeMismatch = errors.New("annotation: row count does not match matrix")

	// ErrMalformedBIM indicates a .bim line that cannot be parsed.
	ErrMalformedBIM = errors.New("annotation: malformed bim line")
)

// BIMRow is one marker of a .bim file.
type BIMRow struct {
	Chromosome string
	VariantID  string // E.g., RSID
	Morgans    string // kept verbatim; never used in arithmetic
	Coordinate int64  // Labeled "position" by most applications; negative marks an excluded variant
	Allele1    string // Can contain > 1 character
	Allele2    string // Can contain > 1 character
}

// ReadBIM parses .bim lines from r. Blank lines are skipped; extra columns
// are ignored.
func ReadBIM(r io.Reader) ([]BIMRow, error) {
	sc := bufio.NewScanner(r)
	var (
		rows []BIMRow
		line int
	)
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < numColumns {
			return nil, fmt.Errorf("line %d: %d columns, want %d: %w", line, len(f), numColumns, ErrMalformedBIM)
		}
		pos, err := strconv.ParseInt(f[Coordinate], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: coordinate %q: %w", line, f[Coordinate], ErrMalformedBIM)
		}
		rows = append(rows, BIMRow{
			Chromosome: f[Chromosome],
			VariantID:  f[VariantID],
			Morgans:    f[Morgans],
			Coordinate: pos,
			Allele1:    f[Allele1],
			Allele2:    f[Allele2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

// LoadBIM reads the .bim file at path.
func LoadBIM(path string) ([]BIMRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadBIM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// CheckRows fails with ErrShapeMismatch unless there is one row per index.
func CheckRows(rows []BIMRow, n int) error {
	if len(rows) != n {
		return fmt.Errorf("%d annotation rows, %d matrix indices: %w", len(rows), n, ErrShapeMismatch)
	}
	return nil
}

// VariantIDs returns the marker IDs in row order.
func VariantIDs(rows []BIMRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.VariantID
	}
	return out
}
