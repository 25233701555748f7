// SPDX-License-Identifier: MIT

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package ldstore

func advise([]byte, bool) error { return nil }
