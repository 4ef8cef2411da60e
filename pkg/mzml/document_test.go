package mzml

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestFile(t *testing.T) *Document {
	t.Helper()

	doc, err := ParseFile(filepath.Join("testdata", "serum1.mzML"))
	require.NoError(t, err)

	return doc
}

func TestParseFile(t *testing.T) {
	doc := parseTestFile(t)

	assert.True(t, doc.HasMSControlledVocab())
	assert.Equal(t, 3, doc.SpectrumCount)

	require.Len(t, doc.FileDescription.SourceFiles, 1)
	assert.Equal(t, "serum1.raw", doc.FileDescription.SourceFiles[0].Name)

	require.Len(t, doc.Softwares, 2)
	assert.Equal(t, "2.8-280502/2.8.1.2806", doc.Softwares[0].Version)

	require.Len(t, doc.InstrumentConfigurations, 1)
	ic := doc.InstrumentConfigurations[0]
	assert.Equal(t, "CommonInstrumentParams", ic.ParamGroupRef.Ref)
	assert.Equal(t, "Xcalibur", ic.SoftwareRef.Ref)
	require.Len(t, ic.Sources, 1)
	require.Len(t, ic.Analyzers, 1)
	require.Len(t, ic.Detectors, 1)
	assert.Equal(t, "orbitrap", ic.Analyzers[0].CVParams[0].Name)

	require.Len(t, doc.DataProcessings, 1)
	require.Len(t, doc.DataProcessings[0].Methods, 1)
	assert.Equal(t, "pwiz", doc.DataProcessings[0].Methods[0].SoftwareRef)
}

func TestRunStatistics(t *testing.T) {
	doc := parseTestFile(t)

	assert.Equal(t, "positive/negative", doc.Polarity())
	assert.Equal(t, "50 - 1000", doc.MZRange())
	assert.Equal(t, "0.5085 - 10.1", doc.TimeRange())
}

func TestParseFailsOnNonMzMLDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(
		`<?xml version="1.0"?><foo><bar/></foo>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mzML element")
}

func TestSpectrumCountFallsBackToCountedSpectra(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<?xml version="1.0"?>
<mzML>
  <cvList count="1">
    <cv id="MS" fullName="PSI-MS" URI="http://example.org/psi-ms.obo"/>
  </cvList>
  <run id="r">
    <spectrum index="0">
      <cvParam cvRef="MS" accession="MS:1000130" name="positive scan" value=""/>
    </spectrum>
    <spectrum index="1">
      <cvParam cvRef="MS" accession="MS:1000130" name="positive scan" value=""/>
    </spectrum>
  </run>
</mzML>`))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.SpectrumCount)
	assert.Equal(t, "positive", doc.Polarity())
	assert.Equal(t, "", doc.MZRange())
	assert.Equal(t, "", doc.TimeRange())
}

func TestPolarityWithoutScansIsNotDetermined(t *testing.T) {
	var doc Document

	assert.Equal(t, "Not determined", doc.Polarity())
}
