package isatab

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/internal/testutils/fstest"
	"github.com/mzml2isa/mzml2isa/pkg/cfg"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
)

func testMeta(name, polarity string) *mzml.Metadata {
	meta := mzml.NewMetadata()

	meta.Set("Instrument",
		mzml.Value{Accession: "MS:1001911", Name: "Q Exactive"})
	meta.Set("Instrument manufacturer", mzml.Value{
		Accession: "MS:1000483",
		Name:      "Thermo Fisher Scientific instrument model",
	})
	meta.Set("Ion source",
		mzml.Value{Accession: "MS:1000073", Name: "electrospray ionization"})
	meta.Append("Mass analyzer",
		mzml.Value{Accession: "MS:1000484", Name: "orbitrap"})
	meta.Append("Data file content",
		mzml.Value{Accession: "MS:1000579", Name: "MS1 spectrum"})
	meta.Append("Data file content",
		mzml.Value{Accession: "MS:1000580", Name: "MSn spectrum"})

	meta.Set("Sample Name", mzml.Value{Value: name})
	meta.Set("MS Assay Name", mzml.Value{Value: name})
	meta.Set("Raw Spectral Data File", mzml.Value{Value: name + ".raw"})
	meta.Set("Derived Spectral Data File", mzml.Value{Value: name + ".mzML"})
	meta.Set("Number of scans", mzml.Value{Value: "3"})
	meta.Set("Scan polarity", mzml.Value{Value: polarity})

	return meta
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	content := strings.TrimRight(string(fstest.ReadFile(t, path)), "\n")

	var rows [][]string
	for _, line := range strings.Split(content, "\n") {
		cells := strings.Split(line, "\t")
		for i, c := range cells {
			cells[i] = strings.Trim(c, `"`)
		}

		rows = append(rows, cells)
	}

	return rows
}

func cellAt(t *testing.T, rows [][]string, header []string, rowIdx int, label string) string {
	t.Helper()

	for i, h := range header {
		if h == label {
			return rows[rowIdx][i]
		}
	}

	t.Fatalf("column %q not found in header", label)

	return ""
}

func TestWriteSingleAssay(t *testing.T) {
	log.RedirectToTestingLog(t)

	outDir := t.TempDir()
	env := Env{
		OutDir:        outDir,
		StudyID:       "MTBLS1",
		SplitPolarity: true,
	}

	metas := []*mzml.Metadata{
		testMeta("serum1", "positive"),
		testMeta("serum2", "positive"),
	}

	written, err := Write(&env, metas)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"i_MTBLS1.txt",
		"s_MTBLS1.txt",
		"a_MTBLS1_metabolite_profiling_mass_spectrometry.txt",
	}, written)

	studyDir := filepath.Join(outDir, "MTBLS1")
	rows := readRows(t, filepath.Join(studyDir,
		"a_MTBLS1_metabolite_profiling_mass_spectrometry.txt"))
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Sample Name", header[0])

	assert.Equal(t, "serum1",
		cellAt(t, rows, header, 1, "Sample Name"))
	assert.Equal(t, "Q Exactive",
		cellAt(t, rows, header, 1, "Parameter Value[Instrument]"))
	assert.Equal(t, "serum2.raw",
		cellAt(t, rows, header, 2, "Raw Spectral Data File"))
	assert.Equal(t, "positive",
		cellAt(t, rows, header, 1, "Parameter Value[Scan polarity]"))

	// unused parameter columns must be removed
	assert.NotContains(t, header, "Parameter Value[wavelength]")
	assert.NotContains(t, header, "Parameter Value[Detector]")

	// repeatable columns appear once per entry
	assert.Equal(t, 2, strings.Count(
		strings.Join(header, "\t"), "Parameter Value[Data file content]"))
}

func TestWriteSplitsAssaysByPolarity(t *testing.T) {
	log.RedirectToTestingLog(t)

	outDir := t.TempDir()
	env := Env{
		OutDir:        outDir,
		StudyID:       "MTBLS2",
		SplitPolarity: true,
	}

	metas := []*mzml.Metadata{
		testMeta("a1", "negative"),
		testMeta("a2", "positive"),
		testMeta("a3", "positive"),
	}

	written, err := Write(&env, metas)
	require.NoError(t, err)

	assert.Contains(t, written,
		"a_MTBLS2_metabolite_profiling_mass_spectrometry_NEG.txt")
	assert.Contains(t, written,
		"a_MTBLS2_metabolite_profiling_mass_spectrometry_POS.txt")

	studyDir := filepath.Join(outDir, "MTBLS2")

	negRows := readRows(t, filepath.Join(studyDir,
		"a_MTBLS2_metabolite_profiling_mass_spectrometry_NEG.txt"))
	require.Len(t, negRows, 2)
	assert.Equal(t, "a1", negRows[1][0])

	posRows := readRows(t, filepath.Join(studyDir,
		"a_MTBLS2_metabolite_profiling_mass_spectrometry_POS.txt"))
	require.Len(t, posRows, 3)
}

func TestWriteDisabledPolaritySplit(t *testing.T) {
	log.RedirectToTestingLog(t)

	env := Env{
		OutDir:        t.TempDir(),
		StudyID:       "MTBLS3",
		SplitPolarity: false,
	}

	metas := []*mzml.Metadata{
		testMeta("a1", "negative"),
		testMeta("a2", "positive"),
	}

	written, err := Write(&env, metas)
	require.NoError(t, err)

	assert.Contains(t, written,
		"a_MTBLS3_metabolite_profiling_mass_spectrometry.txt")
	assert.Len(t, written, 3)
}

func TestWriteStudyFile(t *testing.T) {
	log.RedirectToTestingLog(t)

	outDir := t.TempDir()
	env := Env{
		OutDir:  outDir,
		StudyID: "MTBLS4",
		UserMeta: &cfg.UserMeta{
			Characteristics: cfg.Characteristics{
				Organism: cfg.OntologyAnnotation{
					Value:     "Homo sapiens",
					Accession: "http://purl.obolibrary.org/obo/NCBITaxon_9606",
					Ref:       "NCBITaxon",
				},
			},
		},
	}

	_, err := Write(&env, []*mzml.Metadata{testMeta("a1", "positive")})
	require.NoError(t, err)

	rows := readRows(t,
		filepath.Join(outDir, "MTBLS4", "s_MTBLS4.txt"))
	require.Len(t, rows, 2)

	assert.Equal(t, "Source Name", rows[0][0])
	assert.Equal(t, "a1", rows[1][0])
	assert.Equal(t, "Homo sapiens", rows[1][1])
	assert.Equal(t, "NCBITaxon", rows[1][2])
	assert.Equal(t, "a1", rows[1][len(rows[1])-1])
}

func TestWriteInvestigation(t *testing.T) {
	log.RedirectToTestingLog(t)

	outDir := t.TempDir()
	env := Env{
		OutDir:        outDir,
		StudyID:       "MTBLS5",
		SplitPolarity: true,
		UserMeta: &cfg.UserMeta{
			Study: cfg.Study{Title: "serum profiling"},
			StudyContacts: []*cfg.Contact{
				{FirstName: "Jane", LastName: "Doe"},
				{FirstName: "John", LastName: "Smith"},
			},
		},
	}

	metas := []*mzml.Metadata{
		testMeta("a1", "negative"),
		testMeta("a2", "positive"),
	}

	_, err := Write(&env, metas)
	require.NoError(t, err)

	content := string(fstest.ReadFile(t,
		filepath.Join(outDir, "MTBLS5", "i_MTBLS5.txt")))

	assert.Contains(t, content, "Study Identifier\t\"MTBLS5\"")
	assert.Contains(t, content, "Study Title\t\"serum profiling\"")
	assert.Contains(t, content, "Study File Name\t\"s_MTBLS5.txt\"")

	// both assay files referenced in one row
	assert.Contains(t, content, "Study Assay File Name\t"+
		"\"a_MTBLS5_metabolite_profiling_mass_spectrometry_NEG.txt\"\t"+
		"\"a_MTBLS5_metabolite_profiling_mass_spectrometry_POS.txt\"")

	// the platform names the most common instrument
	assert.Contains(t, content,
		"Study Assay Technology Platform\t\"Q Exactive\"\t\"Q Exactive\"")

	assert.Contains(t, content,
		"Study Person Last Name\t\"Doe\"\t\"Smith\"")
}

func TestWriteFailsWithoutMetadata(t *testing.T) {
	env := Env{OutDir: t.TempDir(), StudyID: "MTBLS6"}

	_, err := Write(&env, nil)
	require.Error(t, err)
}
