// SPDX-License-Identifier: MIT

package ldstore

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/multierr"

	"github.com/katalvlaran/ldblocks/matrix"
)

// Store is a read-only, memory-mapped ldstore file.
//
// Submatrix and Load may be called concurrently; Close must not race with
// them. Returned matrices are independent copies.
type Store struct {
	f      *os.File
	data   mmap.MMap
	header Header
}

var _ matrix.Accessor = (*Store)(nil)

// Open maps the file at path and checks that it holds dataset.
// An empty dataset means DefaultDataset.
//
// Errors: os errors for missing/unreadable files, ErrTruncated, ErrBadHeader,
// ErrUnsupportedDType, ErrDatasetNotFound.
func Open(path, dataset string) (*Store, error) {
	if dataset == "" {
		dataset = DefaultDataset
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	if st.Size() < HeaderSize {
		return nil, multierr.Append(fmt.Errorf("%s: %d bytes: %w", path, st.Size(), ErrTruncated), f.Close())
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	s := &Store{f: f, data: m}

	h, err := DecodeHeader(m)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("%s: %w", path, err), s.Close())
	}
	if name := h.DatasetName(); name != dataset {
		return nil, multierr.Append(fmt.Errorf("%s: want %q, file holds %q: %w", path, dataset, name, ErrDatasetNotFound), s.Close())
	}
	if need := h.DataOffset + h.DataSize(); uint64(len(m)) < need {
		return nil, multierr.Append(fmt.Errorf("%s: %d bytes, header needs %d: %w", path, len(m), need, ErrTruncated), s.Close())
	}
	s.header = *h
	// Hints are best effort; a refused madvise leaves the mapping usable.
	_ = advise(m, false)

	return s, nil
}

// Header returns a copy of the file header.
func (s *Store) Header() Header { return s.header }

// Rows returns the stored row count.
func (s *Store) Rows() int { return int(s.header.Rows) }

// Cols returns the stored column count.
func (s *Store) Cols() int { return int(s.header.Cols) }

// Submatrix decodes rows/cols [i, j) into a fresh Dense.
//
// Only (j-i)² values are touched; pages outside the block stay unmapped in
// practice. Errors: ErrClosed, matrix.ErrOutOfRange.
// Complexity: O(k²) time and heap, k = j-i.
func (s *Store) Submatrix(i, j int) (*matrix.Dense, error) {
	if s.data == nil {
		return nil, ErrClosed
	}
	if err := matrix.ValidateRange(s, i, j); err != nil {
		return nil, fmt.Errorf("ldstore: Submatrix: %w", err)
	}

	return s.rect(i, i, j-i, j-i)
}

// Load decodes the whole matrix into memory.
func (s *Store) Load() (*matrix.Dense, error) {
	if s.data == nil {
		return nil, ErrClosed
	}
	if s.Rows() == 0 || s.Cols() == 0 {
		return nil, fmt.Errorf("ldstore: Load: %w", matrix.ErrInvalidDimensions)
	}
	_ = advise(s.data, true)

	return s.rect(0, 0, s.Rows(), s.Cols())
}

// rect decodes the nr×nc window whose top-left cell is (r0, c0).
func (s *Store) rect(r0, c0, nr, nc int) (*matrix.Dense, error) {
	var (
		size   = s.header.DType.Size()
		stride = s.Cols() * size
		base   = int(s.header.DataOffset)
		out    = make([]float64, nr*nc)
		off, r int
	)
	for r = 0; r < nr; r++ {
		off = base + (r0+r)*stride + c0*size
		row := out[r*nc : (r+1)*nc]
		for c := range row {
			row[c] = s.header.DType.decode(s.data[off:])
			off += size
		}
	}

	return matrix.NewDenseFrom(nr, nc, out)
}

// Close unmaps and closes the file. Safe to call twice.
func (s *Store) Close() error {
	var err error
	if s.data != nil {
		err = s.data.Unmap()
		s.data = nil
	}
	if s.f != nil {
		err = multierr.Append(err, s.f.Close())
		s.f = nil
	}

	return err
}
