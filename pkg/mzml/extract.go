package mzml

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/internal/set"
	"github.com/mzml2isa/mzml2isa/pkg/obo"
)

// maxManufacturerSteps bounds the ontology walk from an instrument model
// towards its vendor branch.
const maxManufacturerSteps = 10

// param is a cvParam plus the softwareRef of the element it was found in.
type param struct {
	CVParam

	softwareRef string
}

// ExtractFile parses an mzML file and extracts its metadata.
func ExtractFile(path string, ont *obo.Ontology) (*Metadata, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	return Extract(doc, ont)
}

// Extract extracts the metadata of a parsed mzML document by matching its
// cvParams against the ontology.
func Extract(doc *Document, ont *obo.Ontology) (*Metadata, error) {
	if !doc.HasMSControlledVocab() {
		return nil, fmt.Errorf("document does not reference the MS controlled vocabulary")
	}

	meta := NewMetadata()

	for _, loc := range extractionTable {
		extractLocation(doc, meta, ont, loc)
	}

	extractInstrument(doc, meta, ont)
	extractDerived(doc, meta)

	return meta, nil
}

func extractLocation(doc *Document, meta *Metadata, ont *obo.Ontology, loc location) {
	descendants := make([]set.Set[string], len(loc.rules))
	for i, rule := range loc.rules {
		descendants[i] = ont.Descendants(rule.accession)
	}

	for _, p := range doc.locationParams(loc.name) {
		for i, rule := range loc.rules {
			if !descendants[i].Contains(p.Accession) {
				continue
			}

			val := Value{Accession: p.Accession, Name: p.Name}
			if rule.value {
				val.Value = p.Value
			}

			name := rule.name
			if rule.attribute {
				// value-carrying attribute terms keep their own name
				name = p.Name
			}

			if rule.multiple {
				meta.Append(name, val)
			} else {
				meta.Set(name, val)
			}

			if rule.software && p.softwareRef != "" {
				extractSoftware(doc, meta, rule.name, p.softwareRef)
			}

			break
		}
	}
}

// locationParams returns the cvParams of the document section named by the
// extraction table.
func (d *Document) locationParams(name string) []param {
	var result []param

	add := func(softwareRef string, params ...CVParam) {
		for _, p := range params {
			result = append(result, param{CVParam: p, softwareRef: softwareRef})
		}
	}

	switch name {
	case "file_content":
		add("", d.FileDescription.FileContent.CVParams...)

	case "source_file":
		for _, sf := range d.FileDescription.SourceFiles {
			add("", sf.CVParams...)
		}

	case "ionization":
		for _, ic := range d.InstrumentConfigurations {
			for _, c := range ic.Sources {
				add("", c.CVParams...)
			}
		}

	case "analyzer":
		for _, ic := range d.InstrumentConfigurations {
			for _, c := range ic.Analyzers {
				add("", c.CVParams...)
			}
		}

	case "detector":
		for _, ic := range d.InstrumentConfigurations {
			for _, c := range ic.Detectors {
				add("", c.CVParams...)
			}
		}

	case "data_processing":
		for _, dp := range d.DataProcessings {
			for _, m := range dp.Methods {
				add(m.SoftwareRef, m.CVParams...)
			}
		}
	}

	return result
}

func extractInstrument(doc *Document, meta *Metadata, ont *obo.Ontology) {
	if len(doc.InstrumentConfigurations) == 0 {
		log.Warnf("%s: document contains no instrument configuration\n", doc.Path)
		return
	}

	ic := &doc.InstrumentConfigurations[0]

	var params []CVParam
	if ic.ParamGroupRef.Ref != "" {
		group := doc.paramGroup(ic.ParamGroupRef.Ref)
		if group == nil {
			log.Warnf("%s: referenceable param group %q not found\n",
				doc.Path, ic.ParamGroupRef.Ref)
		} else {
			params = append(params, group.CVParams...)
		}
	}
	params = append(params, ic.CVParams...)

	instruments := ont.Descendants(accInstrumentModel)

	foundModel := false
	for _, p := range params {
		switch {
		case instruments.Contains(p.Accession) && p.Accession != accInstrumentModel:
			meta.Set("Instrument", Value{Accession: p.Accession, Name: p.Name})
			extractManufacturer(meta, ont, p.Accession)
			foundModel = true

		case p.Accession == accInstrumentSerial:
			meta.Set("Instrument serial number", Value{Value: p.Value})
		}
	}

	if !foundModel {
		// common for Waters files, the configuration only carries the
		// generic "instrument model" term
		log.Warnf("%s: no instrument model found\n", doc.Path)
	}

	if ic.SoftwareRef.Ref != "" {
		extractSoftware(doc, meta, "Instrument", ic.SoftwareRef.Ref)
	}
}

// extractManufacturer walks the ontology from the instrument model towards
// the root until it reaches a direct child of the instrument model term,
// which names the vendor.
func extractManufacturer(meta *Metadata, ont *obo.Ontology, accession string) {
	vendors := set.From(ont.Children(accInstrumentModel))

	cur := accession
	for step := 0; step < maxManufacturerSteps; step++ {
		if vendors.Contains(cur) {
			meta.Set("Instrument manufacturer",
				Value{Accession: cur, Name: ont.Name(cur)})
			return
		}

		parents := ont.Parents(cur)
		if len(parents) == 0 {
			return
		}
		cur = parents[0]
	}
}

func extractSoftware(doc *Document, meta *Metadata, name, softwareRef string) {
	sw := doc.software(softwareRef)
	if sw == nil {
		log.Warnf("%s: software %q not found\n", doc.Path, softwareRef)
		return
	}

	if sw.Version != "" {
		meta.Set(name+" software version", Value{Value: sw.Version})
	}

	for _, p := range sw.CVParams {
		meta.Set(name+" software", Value{Accession: p.Accession, Name: p.Name})
	}
}

func extractDerived(doc *Document, meta *Metadata) {
	meta.Set("term_source", Value{Value: "MS"})

	// the assay and sample names derive from the raw source file, the mzML
	// file name is only a fallback
	assayName := strings.TrimSuffix(filepath.Base(doc.Path),
		filepath.Ext(doc.Path))

	if len(doc.FileDescription.SourceFiles) > 0 {
		rawName := doc.FileDescription.SourceFiles[0].Name
		meta.Set("Raw Spectral Data File", Value{Value: rawName})

		if rawName != "" {
			assayName = strings.TrimSuffix(rawName, filepath.Ext(rawName))
		}
	} else {
		log.Warnf("%s: document contains no source file\n", doc.Path)
		meta.Set("Raw Spectral Data File", Value{Value: assayName})
	}

	meta.Set("MS Assay Name", Value{Value: assayName})
	meta.Set("Sample Name", Value{Value: assayName})

	meta.Set("Number of scans", Value{Value: strconv.Itoa(doc.SpectrumCount)})
	meta.Set("Scan m/z range", Value{Value: doc.MZRange()})
	meta.Set("Scan polarity", Value{Value: doc.Polarity()})
	meta.Set("Time range", Value{Value: doc.TimeRange()})

	meta.Set("Derived Spectral Data File",
		Value{Value: filepath.Base(doc.Path)})
}
