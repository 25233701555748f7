// SPDX-License-Identifier: MIT

package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/katalvlaran/ldblocks/internal/fsutil"
)

func TestCheckInputFiles(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	require.NoError(t, os.WriteFile(ok, nil, 0o644))

	require.NoError(t, fsutil.CheckInputFiles(ok, ""))

	err := fsutil.CheckInputFiles(ok, filepath.Join(dir, "a"), dir, filepath.Join(dir, "b"))
	require.ErrorIs(t, err, fsutil.ErrMissingInputFile)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), filepath.Join(dir, "b"))
}

func TestEnsureOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x", "y", "out.txt")
	require.NoError(t, fsutil.EnsureOutputDir(out, ""))
	st, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", fsutil.FormatElapsed(999*time.Millisecond))
	assert.Equal(t, "01:02:03", fsutil.FormatElapsed(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26:00:00", fsutil.FormatElapsed(26*time.Hour))
}
