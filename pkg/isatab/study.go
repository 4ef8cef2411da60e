package isatab

import (
	"path/filepath"

	"github.com/mzml2isa/mzml2isa/pkg/cfg"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
)

var studyHeader = []string{
	"Source Name",
	"Characteristics[Organism]",
	"Term Source REF",
	"Term Accession Number",
	"Characteristics[Variant]",
	"Term Source REF",
	"Term Accession Number",
	"Characteristics[Organism part]",
	"Term Source REF",
	"Term Accession Number",
	"Protocol REF",
	"Sample Name",
}

func characteristicCells(a *cfg.OntologyAnnotation) []string {
	return []string{a.Value, a.Ref, a.Accession}
}

// writeStudyFile writes the study sample file, one row per mzML file.
func writeStudyFile(env *Env, metas []*mzml.Metadata) error {
	chars := &env.UserMeta.Characteristics

	rows := [][]string{studyHeader}

	for _, meta := range metas {
		sample := meta.Value("Sample Name")

		row := []string{sample}
		row = append(row, characteristicCells(&chars.Organism)...)
		row = append(row, characteristicCells(&chars.Variant)...)
		row = append(row, characteristicCells(&chars.OrganismPart)...)
		row = append(row, "Sample collection", sample)

		rows = append(rows, row)
	}

	return writeRows(
		filepath.Join(env.StudyDir(), env.studyFileName()), rows)
}
