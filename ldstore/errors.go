// SPDX-License-Identifier: MIT

package ldstore

import "errors"

var (
	// ErrBadHeader indicates a file whose magic or format version is not ours.
	ErrBadHeader = errors.New("ldstore: invalid header")

	// ErrTruncated indicates a file shorter than its header promises.
	ErrTruncated = errors.New("ldstore: truncated file")

	// ErrUnsupportedDType indicates an element size other than 4 or 8 bytes.
	ErrUnsupportedDType = errors.New("ldstore: unsupported element type")

	// ErrDatasetNotFound indicates the file does not hold the requested dataset.
	ErrDatasetNotFound = errors.New("ldstore: dataset not found")

	// ErrDatasetName indicates a dataset name that does not fit the header.
	ErrDatasetName = errors.New("ldstore: dataset name too long")

	// ErrClosed indicates use of a Store after Close.
	ErrClosed = errors.New("ldstore: store is closed")

	// ErrParse indicates malformed text matrix input.
	ErrParse = errors.New("ldstore: malformed text matrix")
)
