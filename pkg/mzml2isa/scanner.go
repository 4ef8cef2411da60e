package mzml2isa

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/fs"
)

// FindFiles returns the mzML files in dir, sorted by file name.
// The file extension is matched case-insensitively. If recursive is true,
// subdirectories are searched too.
func FindFiles(dir string, recursive bool) ([]string, error) {
	pattern := filepath.Join(dir, "*")
	if recursive {
		pattern = filepath.Join(dir, "**", "*")
	}

	paths, err := fs.FileGlob(pattern)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".mzml") {
			result = append(result, path)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%s: directory contains no mzML files: %w",
			dir, os.ErrNotExist)
	}

	sort.Slice(result, func(i, j int) bool {
		return filepath.Base(result[i]) < filepath.Base(result[j])
	})

	return result, nil
}
