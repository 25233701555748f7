// SPDX-License-Identifier: MIT

package ldstore

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/ldblocks/matrix"
)

// maxLine bounds one text row: ~100k markers at 16 bytes per value.
const maxLine = 1 << 24

// ReadText parses a whitespace-separated matrix, one row per line.
// Blank lines are skipped; "nan" in any case and sign parses as NaN.
//
// Errors: ErrParse (bad token, ragged row, empty input) wrapped with the
// line number.
func ReadText(r io.Reader) (*matrix.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		data []float64
		cols int
		rows int
		line int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("line %d: %d values, want %d: %w", line, len(fields), cols, ErrParse)
		}
		for _, tok := range fields {
			v, err := parseValue(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, tok, ErrParse)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrParse)
	}

	return matrix.NewDenseFrom(rows, cols, data)
}

// ReadTextFile is ReadText over the file at path.
func ReadTextFile(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadText(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func parseValue(tok string) (float64, error) {
	if strings.EqualFold(strings.TrimLeft(tok, "+-"), "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(tok, 64)
}
