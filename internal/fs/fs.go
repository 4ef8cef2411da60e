// Package fs provides filesystem helper functions.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsFile returns true if path is a regular file.
// If the path does not exist an error is returned.
func IsFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.Mode().IsRegular(), nil
}

// FileExists returns true if path exist and is a file.
func FileExists(path string) bool {
	ret, _ := IsFile(path)

	return ret
}

// IsDir returns true if the path is a directory.
// If the directory does not exist, the error from os.Stat() is returned.
func IsDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.IsDir(), nil
}

// DirsExist runs IsDir for multiple paths.
func DirsExist(paths ...string) error {
	for _, path := range paths {
		isDir, err := IsDir(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("'%s' does not exist: %w", path, err)
			}

			return fmt.Errorf("%s: %w", path, err)
		}

		if !isDir {
			return fmt.Errorf("'%s' is not a directory", path)
		}
	}

	return nil
}

// FileSize returns the size of a file in Bytes.
func FileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return -1, err
	}

	return stat.Size(), nil
}

// Mkdir creates recursively directories.
func Mkdir(path string) error {
	return os.MkdirAll(path, os.FileMode(0755))
}

// AbsPath ensures that path is an absolute path.
// If it isn't, it is joined with rootPath.
func AbsPath(rootPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(rootPath, path)
}

// RealPath resolves all symlinks and returns the absolute path.
func RealPath(path string) (string, error) {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks in path failed: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("computing absolute path of %q failed: %w", path, err)
	}

	return absPath, nil
}
