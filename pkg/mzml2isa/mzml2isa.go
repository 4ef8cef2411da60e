// Package mzml2isa converts directories of mzML mass spectrometry files
// into ISA-Tab studies.
//
// The metadata of each mzML file is extracted via the PSI-MS controlled
// vocabulary and rendered into investigation, study and assay files.
package mzml2isa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/digest"
	"github.com/mzml2isa/mzml2isa/internal/digest/sha256"
	"github.com/mzml2isa/mzml2isa/internal/routines"
	"github.com/mzml2isa/mzml2isa/pkg/isatab"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
	"github.com/mzml2isa/mzml2isa/pkg/obo"
)

// Result is the outcome of extracting the metadata of one mzML file.
type Result struct {
	// Path is the path of the mzML file.
	Path string
	// Meta is the extracted metadata, nil if Err is set.
	Meta *mzml.Metadata
	// Digest is the SHA-256 digest of the mzML file.
	Digest *digest.Digest
	// Err is set if parsing or extraction failed.
	Err error
}

// Converter extracts the metadata of mzML files in parallel.
type Converter struct {
	// Ontology is the controlled vocabulary used for the extraction, if it
	// is nil the embedded PSI-MS vocabulary is used.
	Ontology *obo.Ontology
	// Jobs is the number of files processed in parallel, 0 means one per
	// CPU.
	Jobs uint
}

func (c *Converter) ontology() *obo.Ontology {
	if c.Ontology != nil {
		return c.Ontology
	}

	return obo.Builtin()
}

func (c *Converter) jobs() uint {
	if c.Jobs > 0 {
		return c.Jobs
	}

	return uint(runtime.NumCPU())
}

// Run extracts the metadata of the given mzML files.
// The returned results are in the same order as paths. Extraction errors
// are recorded per result, they do not abort the run.
func (c *Converter) Run(paths []string) []*Result {
	ont := c.ontology()

	results := make([]*Result, len(paths))

	pool := routines.NewPool(c.jobs())
	for i, path := range paths {
		i, path := i, path
		pool.Queue(func() {
			results[i] = c.runFile(path, ont)
		})
	}
	pool.Wait()

	return results
}

func (c *Converter) runFile(path string, ont *obo.Ontology) *Result {
	result := Result{Path: path}

	result.Meta, result.Err = mzml.ExtractFile(path, ont)
	if result.Err != nil {
		return &result
	}

	result.Digest, result.Err = sha256.File(path)

	return &result
}

// Convert extracts the metadata of the given mzML files and writes them as
// ISA-Tab study.
// If the extraction of a file fails, no study is written and an error is
// returned.
func (c *Converter) Convert(env *isatab.Env, paths []string) ([]*Result, error) {
	results := c.Run(paths)

	metas := make([]*mzml.Metadata, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			return results, fmt.Errorf("%s: %w", result.Path, result.Err)
		}

		metas = append(metas, result.Meta)
	}

	if _, err := isatab.Write(env, metas); err != nil {
		return results, err
	}

	return results, nil
}

// WriteJSON writes the metadata of a result as JSON file into dir, named
// after the mzML file.
func (r *Result) WriteJSON(dir string) error {
	name := strings.TrimSuffix(filepath.Base(r.Path),
		filepath.Ext(r.Path)) + ".json"

	data, err := json.MarshalIndent(r.Meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, name), append(data, '\n'), 0644)
}
