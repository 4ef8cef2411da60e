package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzml2isa/mzml2isa/internal/testutils/fstest"
)

func TestFileGlobReturnsOnlyFiles(t *testing.T) {
	dir := t.TempDir()

	fstest.WriteToFile(t, []byte("1"), filepath.Join(dir, "a.mzML"))
	fstest.WriteToFile(t, []byte("2"), filepath.Join(dir, "sub", "b.mzML"))

	paths, err := FileGlob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "a.mzML", filepath.Base(paths[0]))
}

func TestFileGlobRecursive(t *testing.T) {
	dir := t.TempDir()

	fstest.WriteToFile(t, []byte("1"), filepath.Join(dir, "a.mzML"))
	fstest.WriteToFile(t, []byte("2"), filepath.Join(dir, "sub", "b.mzML"))

	paths, err := FileGlob(filepath.Join(dir, "**", "*"))
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestFileGlobFailsOnMissingPath(t *testing.T) {
	_, err := FileGlob(filepath.Join(t.TempDir(), "missing", "*"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
