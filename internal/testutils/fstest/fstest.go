// Package fstest provides test utilities to operate with files and directories.
package fstest

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory that is removed when the test
// finished.
func TempDir(t *testing.T) string {
	t.Helper()

	return t.TempDir()
}

// WriteToFile writes data to a file.
// Directories that are in the path but do not exist are created.
// If an error happens, t.Fatal() is called.
func WriteToFile(t *testing.T, data []byte, path string) {
	t.Helper()

	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, 0775)
	if err != nil {
		t.Fatal(err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		t.Fatal(err)
	}
}

// ReadFile reads the content of the file, on error t.Fatal() is called.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return data
}
