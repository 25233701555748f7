// SPDX-License-Identifier: MIT

package ldstore

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/katalvlaran/ldblocks/matrix"
)

// WriteOption configures Write / WriteFile.
type WriteOption func(*writeOptions)

type writeOptions struct {
	dtype   DType
	dataset string
}

// WithDType selects the on-disk element type (default Float32).
func WithDType(d DType) WriteOption { return func(o *writeOptions) { o.dtype = d } }

// WithDataset names the stored dataset (default DefaultDataset).
func WithDataset(name string) WriteOption { return func(o *writeOptions) { o.dataset = name } }

// Write serializes m (header, then row-major values) to w.
//
// Float32 output rounds every value to single precision; NaN survives the
// conversion so raw matrices can be stored before cleaning.
func Write(w io.Writer, m *matrix.Dense, opts ...WriteOption) error {
	if m == nil {
		return fmt.Errorf("ldstore: Write: %w", matrix.ErrNilMatrix)
	}
	o := writeOptions{dtype: Float32, dataset: DefaultDataset}
	for _, fn := range opts {
		fn(&o)
	}

	h := &Header{DType: o.dtype, Rows: uint64(m.Rows()), Cols: uint64(m.Cols())}
	if err := h.SetDatasetName(o.dataset); err != nil {
		return fmt.Errorf("ldstore: Write: %w", err)
	}
	hdr, err := EncodeHeader(h)
	if err != nil {
		return fmt.Errorf("ldstore: Write: %w", err)
	}
	if _, err = w.Write(hdr); err != nil {
		return err
	}

	size := o.dtype.Size()
	cols := m.Cols()
	data := m.RawRowMajor()
	row := make([]byte, cols*size)
	for r := 0; r < m.Rows(); r++ {
		for c, v := range data[r*cols : (r+1)*cols] {
			o.dtype.encode(row[c*size:], v)
		}
		if _, err = w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes m to path, replacing any existing file.
func WriteFile(path string, m *matrix.Dense, opts ...WriteOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	bw := bufio.NewWriterSize(f, 1<<20)
	if err = Write(bw, m, opts...); err != nil {
		return err
	}

	return bw.Flush()
}
