// SPDX-License-Identifier: MIT

package ldstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
)

const (
	// HeaderSize is the fixed header size; values start right after it.
	HeaderSize = 64

	// Magic identifies an ldstore file.
	Magic = "LDM1"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// DefaultDataset is the dataset name the partitioner reads.
	DefaultDataset = "r2"

	datasetLen = 32
)

// DType is the on-disk element size in bytes.
type DType uint16

const (
	Float32 DType = 4
	Float64 DType = 8
)

// Size returns the element size in bytes.
func (d DType) Size() int { return int(d) }

// Valid reports whether d is a supported element type.
func (d DType) Valid() bool { return d == Float32 || d == Float64 }

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", uint16(d))
	}
}

// decode reads one little-endian element from b.
func (d DType) decode(b []byte) float64 {
	if d == Float32 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// encode writes v into b as one little-endian element.
func (d DType) encode(b []byte, v float64) {
	if d == Float32 {
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		return
	}
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// Header holds the persisted matrix metadata. Its binary form is exactly
// HeaderSize bytes.
type Header struct {
	Magic      [4]byte
	Version    uint16
	DType      DType
	Rows       uint64
	Cols       uint64
	DataOffset uint64
	Dataset    [datasetLen]byte
}

// DatasetName returns the dataset name without its NUL padding.
func (h *Header) DatasetName() string {
	return string(bytes.TrimRight(h.Dataset[:], "\x00"))
}

// SetDatasetName stores name NUL padded. Errors: ErrDatasetName.
func (h *Header) SetDatasetName(name string) error {
	if len(name) == 0 || len(name) > datasetLen {
		return fmt.Errorf("%q: %w", name, ErrDatasetName)
	}
	h.Dataset = [datasetLen]byte{}
	copy(h.Dataset[:], name)
	return nil
}

// DataSize is the number of value bytes the header promises. Only meaningful
// for headers accepted by DecodeHeader, which rejects sizes that overflow.
func (h *Header) DataSize() uint64 {
	return h.Rows * h.Cols * uint64(h.DType.Size())
}

// checkExtent reports whether the shape and the data range [DataOffset,
// DataOffset+DataSize) are addressable with int offsets.
func (h *Header) checkExtent() bool {
	if h.Rows > math.MaxInt || h.Cols > math.MaxInt {
		return false
	}
	hi, cells := bits.Mul64(h.Rows, h.Cols)
	if hi != 0 {
		return false
	}
	hi, size := bits.Mul64(cells, uint64(h.DType.Size()))
	if hi != 0 {
		return false
	}
	end, carry := bits.Add64(h.DataOffset, size, 0)

	return carry == 0 && end <= math.MaxInt
}

// EncodeHeader stamps magic and version into h and returns its binary form.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, fmt.Errorf("EncodeHeader: nil header: %w", ErrBadHeader)
	}
	if !h.DType.Valid() {
		return nil, fmt.Errorf("EncodeHeader: %v: %w", h.DType, ErrUnsupportedDType)
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	if h.DataOffset == 0 {
		h.DataOffset = HeaderSize
	}
	var w bytes.Buffer
	w.Grow(HeaderSize)
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// DecodeHeader reads the header from src and checks magic, version and dtype.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, fmt.Errorf("DecodeHeader: %d bytes: %w", len(src), ErrTruncated)
	}
	var h Header
	if err := binary.Read(bytes.NewReader(src[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != Magic {
		return nil, fmt.Errorf("DecodeHeader: magic %q: %w", h.Magic[:], ErrBadHeader)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("DecodeHeader: version %d: %w", h.Version, ErrBadHeader)
	}
	if !h.DType.Valid() {
		return nil, fmt.Errorf("DecodeHeader: %v: %w", h.DType, ErrUnsupportedDType)
	}
	if h.DataOffset < HeaderSize {
		return nil, fmt.Errorf("DecodeHeader: data offset %d: %w", h.DataOffset, ErrBadHeader)
	}
	if !h.checkExtent() {
		return nil, fmt.Errorf("DecodeHeader: %d x %d %v at offset %d overflows: %w",
			h.Rows, h.Cols, h.DType, h.DataOffset, ErrBadHeader)
	}

	return &h, nil
}
