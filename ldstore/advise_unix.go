// SPDX-License-Identifier: MIT

//go:build linux || darwin || freebsd || netbsd || openbsd

package ldstore

import "golang.org/x/sys/unix"

// advise passes an access-pattern hint for a mapped region to the kernel:
// MADV_SEQUENTIAL when sequential is set, MADV_RANDOM otherwise.
func advise(b []byte, sequential bool) error {
	if len(b) == 0 {
		return nil
	}
	hint := unix.MADV_RANDOM
	if sequential {
		hint = unix.MADV_SEQUENTIAL
	}

	return unix.Madvise(b, hint)
}
