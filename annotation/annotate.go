// SPDX-License-Identifier: MIT

package annotation

import "github.com/katalvlaran/ldblocks/partition"

// Row is one annotated index: where the marker sits and which block it
// belongs to.
type Row struct {
	Chromosome string
	Coordinate int64
	VariantID  string
	Block      int
}

// Annotate joins labels with rows positionally: row i describes index i.
// Errors: ErrShapeMismatch (both counts in the message).
func Annotate(labels []partition.Label, rows []BIMRow) ([]Row, error) {
	if err := CheckRows(rows, len(labels)); err != nil {
		return nil, err
	}
	out := make([]Row, len(labels))
	for i, l := range labels {
		r := rows[i]
		out[i] = Row{Chromosome: r.Chromosome, Coordinate: r.Coordinate, VariantID: r.VariantID, Block: l.Block}
	}

	return out, nil
}

// Boundaries keeps the first and the last row of every block; a single-marker
// block contributes one row. Input must be in index order.
func Boundaries(rows []Row) []Row {
	var out []Row
	for i, r := range rows {
		first := i == 0 || rows[i-1].Block != r.Block
		last := i == len(rows)-1 || rows[i+1].Block != r.Block
		if first || last {
			out = append(out, r)
		}
	}
	return out
}
