package mzml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/internal/testutils/fstest"
	"github.com/mzml2isa/mzml2isa/pkg/obo"
)

func extractTestFile(t *testing.T) *Metadata {
	t.Helper()

	meta, err := ExtractFile(
		filepath.Join("testdata", "serum1.mzML"), obo.Builtin())
	require.NoError(t, err)

	return meta
}

func fieldValue(t *testing.T, meta *Metadata, key string) Value {
	t.Helper()

	f, exist := meta.Get(key)
	require.True(t, exist, "field %q does not exist", key)
	require.Nil(t, f.Entries, "field %q is a repeatable field", key)

	return f.Value
}

func fieldEntries(t *testing.T, meta *Metadata, key string) []Value {
	t.Helper()

	f, exist := meta.Get(key)
	require.True(t, exist, "field %q does not exist", key)
	require.NotNil(t, f.Entries, "field %q is not a repeatable field", key)

	return f.Entries
}

func TestExtractInstrument(t *testing.T) {
	meta := extractTestFile(t)

	assert.Equal(t,
		Value{Accession: "MS:1001911", Name: "Q Exactive"},
		fieldValue(t, meta, "Instrument"))

	assert.Equal(t,
		Value{
			Accession: "MS:1000483",
			Name:      "Thermo Fisher Scientific instrument model",
		},
		fieldValue(t, meta, "Instrument manufacturer"))

	assert.Equal(t,
		Value{Value: "Exactive Series slot #300"},
		fieldValue(t, meta, "Instrument serial number"))

	assert.Equal(t,
		Value{Accession: "MS:1000532", Name: "Xcalibur"},
		fieldValue(t, meta, "Instrument software"))
	assert.Equal(t, "2.8-280502/2.8.1.2806",
		meta.Value("Instrument software version"))
}

func TestExtractComponents(t *testing.T) {
	meta := extractTestFile(t)

	assert.Equal(t,
		Value{Accession: "MS:1000073", Name: "electrospray ionization"},
		fieldValue(t, meta, "Ion source"))

	potentials := fieldEntries(t, meta, "source potential")
	require.Len(t, potentials, 1)
	assert.Equal(t,
		Value{
			Accession: "MS:1000486",
			Name:      "source potential",
			Value:     "3.5",
		},
		potentials[0])

	analyzers := fieldEntries(t, meta, "Mass analyzer")
	require.Len(t, analyzers, 1)
	assert.Equal(t,
		Value{Accession: "MS:1000484", Name: "orbitrap"}, analyzers[0])

	detector := fieldValue(t, meta, "Detector")
	assert.Equal(t,
		Value{Accession: "MS:1000624", Name: "inductive detector"}, detector)
}

func TestExtractFileDescription(t *testing.T) {
	meta := extractTestFile(t)

	contents := fieldEntries(t, meta, "Data file content")
	require.Len(t, contents, 1)
	assert.Equal(t,
		Value{Accession: "MS:1000579", Name: "MS1 spectrum"}, contents[0])

	assert.Equal(t,
		Value{Accession: "MS:1000128", Name: "profile spectrum"},
		fieldValue(t, meta, "Spectrum representation"))

	assert.Equal(t,
		Value{Accession: "MS:1000768", Name: "Thermo nativeID format"},
		fieldValue(t, meta, "Native spectrum identifier format"))

	checksums := fieldEntries(t, meta, "Raw data file checksum type")
	require.Len(t, checksums, 1)
	assert.Equal(t,
		Value{
			Accession: "MS:1000569",
			Name:      "SHA-1",
			Value:     "5c78af34b394bcd0dbfcd35e441ba7b9a1936e6f",
		},
		checksums[0])

	assert.Equal(t,
		Value{Accession: "MS:1000563", Name: "Thermo RAW format"},
		fieldValue(t, meta, "Raw data file format"))
}

func TestExtractDataProcessing(t *testing.T) {
	meta := extractTestFile(t)

	transformations := fieldEntries(t, meta, "data transformation")
	require.Len(t, transformations, 1)
	assert.Equal(t,
		Value{Accession: "MS:1000544", Name: "Conversion to mzML"},
		transformations[0])

	assert.Equal(t,
		Value{Accession: "MS:1000615", Name: "ProteoWizard software"},
		fieldValue(t, meta, "data transformation software"))
	assert.Equal(t, "3.0.9134",
		meta.Value("data transformation software version"))
}

func TestExtractDerivedFields(t *testing.T) {
	meta := extractTestFile(t)

	assert.Equal(t, "MS", meta.Value("term_source"))
	assert.Equal(t, "serum1.raw", meta.Value("Raw Spectral Data File"))
	assert.Equal(t, "serum1", meta.Value("MS Assay Name"))
	assert.Equal(t, "serum1", meta.Value("Sample Name"))
	assert.Equal(t, "3", meta.Value("Number of scans"))
	assert.Equal(t, "50 - 1000", meta.Value("Scan m/z range"))
	assert.Equal(t, "positive/negative", meta.Value("Scan polarity"))
	assert.Equal(t, "0.5085 - 10.1", meta.Value("Time range"))
	assert.Equal(t, "serum1.mzML", meta.Value("Derived Spectral Data File"))
}

func TestExtractAssayNameDerivesFromSourceFile(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "serum1.mzML"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "converted.mzML")
	fstest.WriteToFile(t, content, path)

	meta, err := ExtractFile(path, obo.Builtin())
	require.NoError(t, err)

	assert.Equal(t, "serum1.raw", meta.Value("Raw Spectral Data File"))
	assert.Equal(t, "serum1", meta.Value("MS Assay Name"))
	assert.Equal(t, "serum1", meta.Value("Sample Name"))
	assert.Equal(t, "converted.mzML",
		meta.Value("Derived Spectral Data File"))
}

func TestExtractSkipsEmptySoftwareVersion(t *testing.T) {
	log.RedirectToTestingLog(t)

	doc := Document{
		CVs: []CV{{ID: "MS"}},
		Softwares: []Software{
			{
				ID: "acq",
				CVParams: []CVParam{
					{Accession: "MS:1000532", Name: "Xcalibur"},
				},
			},
		},
		InstrumentConfigurations: []InstrumentConfiguration{
			{
				ID: "IC1",
				CVParams: []CVParam{
					{Accession: "MS:1001911", Name: "Q Exactive"},
				},
				SoftwareRef: ref{Ref: "acq"},
			},
		},
	}

	meta, err := Extract(&doc, obo.Builtin())
	require.NoError(t, err)

	assert.Equal(t,
		Value{Accession: "MS:1000532", Name: "Xcalibur"},
		fieldValue(t, meta, "Instrument software"))

	_, exist := meta.Get("Instrument software version")
	assert.False(t, exist, "version field set despite empty version attribute")
}

func TestExtractFailsWithoutMSControlledVocab(t *testing.T) {
	doc := Document{
		CVs: []CV{{ID: "UO", FullName: "Unit Ontology"}},
	}

	_, err := Extract(&doc, obo.Builtin())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controlled vocabulary")
}
