// SPDX-License-Identifier: MIT

// Package matrix offers the dense storage and numeric kernels used to scan
// linkage-disequilibrium (LD) matrices.
//
// The matrix package provides:
//
//   - Accessor, the read-only contract every matrix backing satisfies
//     (in-memory *Dense here, mmap-backed *ldstore.Store elsewhere).
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and
//     copy-based diagonal block extraction (Submatrix, Induced).
//   - Centralized validators (square shape, index ranges, symmetry, finiteness).
//   - SlogDetTol, a sign/log-magnitude determinant computed from an LU
//     factorization with partial pivoting.
//   - DropNaN, the NaN cleaning pass that removes markers whose LD row is
//     entirely undefined.
//
// Dense is best when O(N²) memory is acceptable; for chromosome-scale LD
// matrices prefer the lazy backing in package ldstore, which satisfies the
// same Accessor contract.
package matrix
