// SPDX-License-Identifier: MIT

// Package fsutil holds the small filesystem chores every command starts and
// ends with.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
)

// ErrMissingInputFile indicates an input path that does not name a regular file.
var ErrMissingInputFile = errors.New("input file wasn't found")

// CheckInputFiles reports every path that is not an existing regular file.
// Empty paths (optional inputs left unset) are skipped.
func CheckInputFiles(paths ...string) error {
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		st, statErr := os.Stat(p)
		if statErr != nil || !st.Mode().IsRegular() {
			err = multierr.Append(err, fmt.Errorf("%s: %w", p, ErrMissingInputFile))
		}
	}
	return err
}

// EnsureOutputDir creates the parent directory of every non-empty path.
func EnsureOutputDir(paths ...string) error {
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		err = multierr.Append(err, os.MkdirAll(filepath.Dir(p), 0o755))
	}
	return err
}

// FormatElapsed renders d as HH:MM:SS, truncated to whole seconds.
func FormatElapsed(d time.Duration) string {
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
