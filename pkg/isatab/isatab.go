// Package isatab renders extracted mzML metadata into an ISA-Tab study:
// an investigation file, a study sample file and one or more assay files.
//
// The layout of the generated files follows the MetaboLights ISA-Tab
// configuration for metabolite profiling by mass spectrometry.
package isatab

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/fs"
	"github.com/mzml2isa/mzml2isa/pkg/cfg"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
)

const assayFileSuffix = "_metabolite_profiling_mass_spectrometry"

// Env describes the study that is written.
type Env struct {
	// OutDir is the directory the study directory is created in.
	OutDir string
	// StudyID is the study identifier, it is used as directory name and in
	// the names of the generated files.
	StudyID string
	// SplitPolarity writes one assay file per scan polarity instead of a
	// single assay file.
	SplitPolarity bool
	// UserMeta holds the user provided study metadata, nil is equivalent
	// to an empty configuration.
	UserMeta *cfg.UserMeta
}

// StudyDir returns the directory the study files are written to.
func (e *Env) StudyDir() string {
	return filepath.Join(e.OutDir, e.StudyID)
}

func (e *Env) investigationFileName() string {
	return "i_" + e.StudyID + ".txt"
}

func (e *Env) studyFileName() string {
	return "s_" + e.StudyID + ".txt"
}

func (e *Env) assayFileName(polarity string) string {
	name := "a_" + e.StudyID + assayFileSuffix

	if polarity != "" {
		name += "_" + polaritySuffix(polarity)
	}

	return name + ".txt"
}

// polaritySuffix derives the assay file name suffix from a scan polarity
// value ("positive" -> "POS").
func polaritySuffix(polarity string) string {
	if len(polarity) > 3 {
		polarity = polarity[:3]
	}

	return strings.ToUpper(polarity)
}

// Write renders the metadata of the study's mzML files into an ISA-Tab
// directory <OutDir>/<StudyID>/ and returns the names of the written
// files.
func Write(env *Env, metas []*mzml.Metadata) ([]string, error) {
	if len(metas) == 0 {
		return nil, fmt.Errorf("study contains no metadata records")
	}

	if env.UserMeta == nil {
		env.UserMeta = &cfg.UserMeta{}
	}

	if err := fs.Mkdir(env.StudyDir()); err != nil {
		return nil, err
	}

	assayNames, platform, err := writeAssays(env, metas)
	if err != nil {
		return nil, err
	}

	if err := writeStudyFile(env, metas); err != nil {
		return nil, err
	}

	if err := writeInvestigation(env, assayNames, platform); err != nil {
		return nil, err
	}

	written := []string{env.investigationFileName(), env.studyFileName()}
	written = append(written, assayNames...)

	return written, nil
}

// writeRow writes a tab separated row with every cell in double quotes.
func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}

	_, err := fmt.Fprintln(w, strings.Join(quoted, "\t"))

	return err
}

func writeRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeRow(f, row); err != nil {
			f.Close()
			return err
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file failed: %w", err)
	}

	return nil
}
