// SPDX-License-Identifier: MIT

// Package det evaluates the determinant of square LD blocks as a
// (sign, log-magnitude) pair.
//
// 🚀 Why sign + log?
//
//	The determinant of a k×k block of r² values shrinks geometrically with
//	k; for chromosome-scale blocks it underflows float64 long before the
//	block stops being interesting. Working with ln|det| keeps the
//	comparison against ln(minDet) exact and overflow-free.
//
// ✨ Evaluators:
//   - LU: gonum's LU with partial pivoting (LAPACK getrf); the default.
//   - Native: the in-house kernel matrix.SlogDetTol; no gonum allocation,
//     handy as a cross-check.
//
// Both report a numerically singular block (a pivot that vanishes relative
// to the largest entry) as Sign == 0. That is an answer, not an error: the
// partitioner turns it into a block boundary.
//
// ⚙️ Usage:
//
//	ev := det.NewLU()
//	res, err := ev.Evaluate(block)
//	if res.Singular() { /* back off */ }
package det
