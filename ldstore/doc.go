// SPDX-License-Identifier: MIT

// Package ldstore persists square LD matrices in a flat little-endian file
// and serves them back lazily through a read-only memory map.
//
// File layout:
//
//	offset  size  field
//	0       4     magic "LDM1"
//	4       2     format version (1)
//	6       2     element size: 4 (float32) or 8 (float64)
//	8       8     rows
//	16      8     cols
//	24      8     data offset (64)
//	32      32    dataset name, NUL padded ("r2")
//	64      ...   row-major values
//
// A *Store satisfies matrix.Accessor: Submatrix decodes only the (j-i)² values
// of the requested diagonal block, so the partitioner can walk a
// chromosome-scale matrix with O(k²) heap.
//
// ReadText parses the whitespace-separated text dumps produced by PLINK
// (`--r2 square`), which is what `ldblocks convert` turns into store files.
package ldstore
