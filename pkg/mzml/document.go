// Package mzml parses mzML mass spectrometry documents and extracts the
// metadata that is described via PSI-MS controlled vocabulary parameters.
//
// Spectra are processed in a streaming manner, only aggregated statistics
// (polarity, m/z range, time range, spectrum count) are kept in memory.
// Binary peak data is never decoded.
package mzml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// CVParam is a cvParam element, a reference into a controlled vocabulary
// plus an optional value.
type CVParam struct {
	CVRef     string `xml:"cvRef,attr"`
	Accession string `xml:"accession,attr"`
	Name      string `xml:"name,attr"`
	Value     string `xml:"value,attr"`
	UnitName  string `xml:"unitName,attr"`
}

// CV is a controlled vocabulary that the document references.
type CV struct {
	ID       string `xml:"id,attr"`
	FullName string `xml:"fullName,attr"`
	URI      string `xml:"URI,attr"`
}

// SourceFile describes a file that the mzML document was generated from.
type SourceFile struct {
	ID       string    `xml:"id,attr"`
	Name     string    `xml:"name,attr"`
	Location string    `xml:"location,attr"`
	CVParams []CVParam `xml:"cvParam"`
}

// FileDescription is the fileDescription element of an mzML document.
type FileDescription struct {
	FileContent struct {
		CVParams []CVParam `xml:"cvParam"`
	} `xml:"fileContent"`
	SourceFiles []SourceFile `xml:"sourceFileList>sourceFile"`
}

// ReferenceableParamGroup is a reusable group of cvParams that other
// elements refer to via referenceableParamGroupRef.
type ReferenceableParamGroup struct {
	ID       string    `xml:"id,attr"`
	CVParams []CVParam `xml:"cvParam"`
}

// Software is a software element of the softwareList.
type Software struct {
	ID       string    `xml:"id,attr"`
	Version  string    `xml:"version,attr"`
	CVParams []CVParam `xml:"cvParam"`
}

// Component is a source, analyzer or detector of an instrument
// configuration.
type Component struct {
	Order    int       `xml:"order,attr"`
	CVParams []CVParam `xml:"cvParam"`
}

type ref struct {
	Ref string `xml:"ref,attr"`
}

// InstrumentConfiguration describes the instrument that acquired the run.
type InstrumentConfiguration struct {
	ID            string      `xml:"id,attr"`
	ParamGroupRef ref         `xml:"referenceableParamGroupRef"`
	CVParams      []CVParam   `xml:"cvParam"`
	Sources       []Component `xml:"componentList>source"`
	Analyzers     []Component `xml:"componentList>analyzer"`
	Detectors     []Component `xml:"componentList>detector"`
	SoftwareRef   ref         `xml:"softwareRef"`
}

// ProcessingMethod is a processingMethod element of a dataProcessing entry.
type ProcessingMethod struct {
	Order       int       `xml:"order,attr"`
	SoftwareRef string    `xml:"softwareRef,attr"`
	CVParams    []CVParam `xml:"cvParam"`
}

// DataProcessing describes the processing that was applied to the raw data.
type DataProcessing struct {
	ID      string             `xml:"id,attr"`
	Methods []ProcessingMethod `xml:"processingMethod"`
}

// Document holds the metadata sections of a parsed mzML file.
type Document struct {
	// Path is the filesystem path the document was read from, empty if it
	// was parsed from a reader.
	Path string

	CVs                      []CV
	FileDescription          FileDescription
	ParamGroups              []ReferenceableParamGroup
	Softwares                []Software
	InstrumentConfigurations []InstrumentConfiguration
	DataProcessings          []DataProcessing

	// SpectrumCount is the count attribute of the spectrumList element or,
	// if the attribute is missing, the number of spectrum elements.
	SpectrumCount int

	stats runStats
}

// runStats are aggregated over all spectra while parsing.
type runStats struct {
	positive bool
	negative bool

	minMZ float64
	maxMZ float64
	mzSet bool

	minRT float64
	maxRT float64
	rtSet bool

	spectra int
}

// spectrum is the subset of a spectrum element needed for the run
// statistics.
type spectrum struct {
	CVParams []CVParam `xml:"cvParam"`
	Scans    []struct {
		CVParams []CVParam `xml:"cvParam"`
		Windows  []struct {
			CVParams []CVParam `xml:"cvParam"`
		} `xml:"scanWindowList>scanWindow"`
	} `xml:"scanList>scan"`
}

// ParseFile opens and parses an mzML file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %q failed: %w", path, err)
	}

	doc.Path = path

	return doc, nil
}

// Parse parses an mzML document from r.
// Spectra are decoded one by one and folded into the run statistics, the
// binary data of a spectrum is discarded. Index wrappers (indexedmzML) are
// handled transparently.
func Parse(r io.Reader) (*Document, error) {
	var doc Document

	dec := xml.NewDecoder(r)
	sawMzML := false
	countedSpectra := 0
	spectrumCount := -1

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "mzML":
			sawMzML = true

		case "cvList":
			var l struct {
				CVs []CV `xml:"cv"`
			}
			if err := dec.DecodeElement(&l, &start); err != nil {
				return nil, err
			}
			doc.CVs = l.CVs

		case "fileDescription":
			if err := dec.DecodeElement(&doc.FileDescription, &start); err != nil {
				return nil, err
			}

		case "referenceableParamGroupList":
			var l struct {
				Groups []ReferenceableParamGroup `xml:"referenceableParamGroup"`
			}
			if err := dec.DecodeElement(&l, &start); err != nil {
				return nil, err
			}
			doc.ParamGroups = l.Groups

		case "softwareList":
			var l struct {
				Softwares []Software `xml:"software"`
			}
			if err := dec.DecodeElement(&l, &start); err != nil {
				return nil, err
			}
			doc.Softwares = l.Softwares

		case "instrumentConfigurationList":
			var l struct {
				Configurations []InstrumentConfiguration `xml:"instrumentConfiguration"`
			}
			if err := dec.DecodeElement(&l, &start); err != nil {
				return nil, err
			}
			doc.InstrumentConfigurations = l.Configurations

		case "dataProcessingList":
			var l struct {
				Processings []DataProcessing `xml:"dataProcessing"`
			}
			if err := dec.DecodeElement(&l, &start); err != nil {
				return nil, err
			}
			doc.DataProcessings = l.Processings

		case "spectrumList":
			for _, attr := range start.Attr {
				if attr.Name.Local == "count" {
					if cnt, err := strconv.Atoi(attr.Value); err == nil {
						spectrumCount = cnt
					}
				}
			}

		case "spectrum":
			var sp spectrum
			if err := dec.DecodeElement(&sp, &start); err != nil {
				return nil, err
			}

			doc.stats.fold(&sp)
			countedSpectra++

		case "indexList", "chromatogramList":
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		}
	}

	if !sawMzML {
		return nil, errors.New("document contains no mzML element")
	}

	if spectrumCount >= 0 {
		doc.SpectrumCount = spectrumCount
	} else {
		doc.SpectrumCount = countedSpectra
	}

	return &doc, nil
}

func (s *runStats) fold(sp *spectrum) {
	s.spectra++

	for _, p := range sp.CVParams {
		switch p.Accession {
		case accPositiveScan:
			s.positive = true
		case accNegativeScan:
			s.negative = true
		}
	}

	for _, scan := range sp.Scans {
		for _, p := range scan.CVParams {
			switch p.Accession {
			case accPositiveScan:
				s.positive = true
			case accNegativeScan:
				s.negative = true
			case accScanStartTime:
				s.accScanStartTime(p.Value)
			}
		}

		for _, win := range scan.Windows {
			for _, p := range win.CVParams {
				switch p.Accession {
				case accScanWindowLower:
					s.accScanWindowLower(p.Value)
				case accScanWindowUpper:
					s.accScanWindowUpper(p.Value)
				}
			}
		}
	}
}

func (s *runStats) accScanStartTime(val string) {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return
	}

	if !s.rtSet {
		s.minRT, s.maxRT = v, v
		s.rtSet = true

		return
	}

	s.minRT = math.Min(s.minRT, v)
	s.maxRT = math.Max(s.maxRT, v)
}

func (s *runStats) accScanWindowLower(val string) {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return
	}

	if !s.mzSet {
		s.minMZ, s.maxMZ = v, v
		s.mzSet = true

		return
	}

	s.minMZ = math.Min(s.minMZ, v)
}

func (s *runStats) accScanWindowUpper(val string) {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return
	}

	if !s.mzSet {
		s.minMZ, s.maxMZ = v, v
		s.mzSet = true

		return
	}

	s.maxMZ = math.Max(s.maxMZ, v)
}

// Polarity returns the scan polarity of the run, "positive/negative" if
// both polarities were found, "Not determined" if none were found.
func (d *Document) Polarity() string {
	switch {
	case d.stats.positive && d.stats.negative:
		return "positive/negative"
	case d.stats.positive:
		return "positive"
	case d.stats.negative:
		return "negative"
	default:
		return "Not determined"
	}
}

// MZRange returns the m/z scan range of the run as "<low> - <high>" or an
// empty string if no scan windows were found.
func (d *Document) MZRange() string {
	if !d.stats.mzSet {
		return ""
	}

	return fmt.Sprintf("%d - %d", int(d.stats.minMZ), int(d.stats.maxMZ))
}

// TimeRange returns the scan start time range of the run as
// "<first> - <last>", rounded to 4 decimal places, or an empty string if no
// scan start times were found.
func (d *Document) TimeRange() string {
	if !d.stats.rtSet {
		return ""
	}

	return round4(d.stats.minRT) + " - " + round4(d.stats.maxRT)
}

func round4(v float64) string {
	return strconv.FormatFloat(math.Round(v*10000)/10000, 'f', -1, 64)
}

// HasMSControlledVocab returns true if the document references the PSI-MS
// controlled vocabulary.
func (d *Document) HasMSControlledVocab() bool {
	for _, cv := range d.CVs {
		if cv.ID == "MS" || cv.ID == "PSI-MS" {
			return true
		}
	}

	return false
}

func (d *Document) software(id string) *Software {
	for i := range d.Softwares {
		if d.Softwares[i].ID == id {
			return &d.Softwares[i]
		}
	}

	return nil
}

func (d *Document) paramGroup(id string) *ReferenceableParamGroup {
	for i := range d.ParamGroups {
		if d.ParamGroups[i].ID == id {
			return &d.ParamGroups[i]
		}
	}

	return nil
}
