package isatab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mzml2isa/mzml2isa/pkg/cfg"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
)

// termSource is an ontology that the investigation file declares.
type termSource struct {
	name        string
	file        string
	version     string
	description string
}

var termSources = []termSource{
	{
		name:        "MS",
		file:        "http://purl.obolibrary.org/obo/ms.obo",
		version:     "4.1.30",
		description: "PSI Mass Spectrometry Ontology",
	},
	{
		name:        "OBI",
		file:        "http://purl.obolibrary.org/obo/obi.owl",
		description: "Ontology for Biomedical Investigations",
	},
	{
		name:        "NCBITaxon",
		file:        "http://purl.obolibrary.org/obo/ncbitaxon.owl",
		description: "NCBI organismal classification",
	},
	{
		name:        "PSO",
		file:        "http://purl.org/spar/pso",
		description: "Publishing Status Ontology",
	},
}

// protocol is a study protocol declared in the investigation file.
type protocol struct {
	name       string
	parameters []string
}

var protocols = []protocol{
	{name: "Sample collection"},
	{
		name:       "Extraction",
		parameters: []string{"Post Extraction", "Derivatization"},
	},
	{
		name: "Chromatography",
		parameters: []string{
			"Chromatography Instrument", "Column type", "Column model",
		},
	},
	{
		name: "Mass spectrometry",
		parameters: []string{
			"Instrument", "Instrument manufacturer",
			"Instrument serial number", "Instrument software",
			"Ion source", "Inlet type", "Mass analyzer", "Detector",
			"Detector mode", "Scan polarity", "Scan m/z range",
			"Time range", "Number of scans",
		},
	},
	{name: "Data transformation"},
	{name: "Metabolite identification"},
}

// invBuilder collects the label/value rows of an investigation file.
type invBuilder struct {
	rows [][]string
}

func (b *invBuilder) section(name string) {
	b.rows = append(b.rows, []string{name})
}

func (b *invBuilder) row(label string, values ...string) {
	if len(values) == 0 {
		values = []string{""}
	}

	b.rows = append(b.rows, append([]string{label}, values...))
}

// repeated returns the value repeated n times, used for rows that span
// multiple assay columns.
func repeated(value string, n int) []string {
	result := make([]string, n)
	for i := range result {
		result[i] = value
	}

	return result
}

func publicationRows(b *invBuilder, prefix string, p *cfg.Publication) {
	b.row(prefix+" PubMed ID", p.PubMedID)
	b.row(prefix+" Publication DOI", p.DOI)
	b.row(prefix+" Publication Author List", p.AuthorList)
	b.row(prefix+" Publication Title", p.Title)
	b.row(prefix+" Publication Status", p.Status.Value)
	b.row(prefix+" Publication Status Term Accession Number", p.Status.Accession)
	b.row(prefix+" Publication Status Term Source REF", p.Status.Ref)
}

func contactRows(b *invBuilder, prefix string, contacts []*cfg.Contact) {
	column := func(fn func(*cfg.Contact) string) []string {
		if len(contacts) == 0 {
			return nil
		}

		result := make([]string, len(contacts))
		for i, c := range contacts {
			result[i] = fn(c)
		}

		return result
	}

	b.row(prefix+" Person Last Name", column(func(c *cfg.Contact) string { return c.LastName })...)
	b.row(prefix+" Person First Name", column(func(c *cfg.Contact) string { return c.FirstName })...)
	b.row(prefix+" Person Mid Initials", column(func(c *cfg.Contact) string { return c.MidInitials })...)
	b.row(prefix+" Person Email", column(func(c *cfg.Contact) string { return c.Email })...)
	b.row(prefix+" Person Phone", column(func(c *cfg.Contact) string { return c.Phone })...)
	b.row(prefix+" Person Fax", column(func(c *cfg.Contact) string { return c.Fax })...)
	b.row(prefix+" Person Address", column(func(c *cfg.Contact) string { return c.Address })...)
	b.row(prefix+" Person Affiliation", column(func(c *cfg.Contact) string { return c.Affiliation })...)
	b.row(prefix+" Person Roles", column(func(c *cfg.Contact) string { return c.Roles.Value })...)
	b.row(prefix+" Person Roles Term Accession Number", column(func(c *cfg.Contact) string { return c.Roles.Accession })...)
	b.row(prefix+" Person Roles Term Source REF", column(func(c *cfg.Contact) string { return c.Roles.Ref })...)
}

// writeInvestigation writes the investigation file, referencing the
// written assay files and the selected instrument platform.
func writeInvestigation(env *Env, assayNames []string, platform mzml.Value) error {
	meta := env.UserMeta
	b := invBuilder{}

	b.section("ONTOLOGY SOURCE REFERENCE")

	sourceColumn := func(fn func(*termSource) string) []string {
		result := make([]string, len(termSources))
		for i := range termSources {
			result[i] = fn(&termSources[i])
		}

		return result
	}

	b.row("Term Source Name", sourceColumn(func(s *termSource) string { return s.name })...)
	b.row("Term Source File", sourceColumn(func(s *termSource) string { return s.file })...)
	b.row("Term Source Version", sourceColumn(func(s *termSource) string { return s.version })...)
	b.row("Term Source Description", sourceColumn(func(s *termSource) string { return s.description })...)

	b.section("INVESTIGATION")
	b.row("Investigation Identifier", meta.Investigation.Identifier)
	b.row("Investigation Title", meta.Investigation.Title)
	b.row("Investigation Description", meta.Investigation.Description)
	b.row("Investigation Submission Date", meta.Investigation.SubmissionDate)
	b.row("Investigation Public Release Date", meta.Investigation.ReleaseDate)

	b.section("INVESTIGATION PUBLICATIONS")
	publicationRows(&b, "Investigation", &meta.InvestigationPublication)

	b.section("INVESTIGATION CONTACTS")
	contactRows(&b, "Investigation", meta.InvestigationContacts)

	b.section("STUDY")
	b.row("Study Identifier", env.StudyID)
	b.row("Study Title", meta.Study.Title)
	b.row("Study Description", meta.Study.Description)
	b.row("Study Submission Date", meta.Study.SubmissionDate)
	b.row("Study Public Release Date", meta.Study.ReleaseDate)
	b.row("Study File Name", env.studyFileName())

	b.section("STUDY DESIGN DESCRIPTORS")
	b.row("Study Design Type")
	b.row("Study Design Type Term Accession Number")
	b.row("Study Design Type Term Source REF")

	b.section("STUDY PUBLICATIONS")
	publicationRows(&b, "Study", &meta.StudyPublication)

	b.section("STUDY FACTORS")

	factorColumn := func(fn func(*cfg.Factor) string) []string {
		if len(meta.Factors) == 0 {
			return nil
		}

		result := make([]string, len(meta.Factors))
		for i, f := range meta.Factors {
			result[i] = fn(f)
		}

		return result
	}

	b.row("Study Factor Name", factorColumn(func(f *cfg.Factor) string { return f.Name })...)
	b.row("Study Factor Type", factorColumn(func(f *cfg.Factor) string { return f.Type.Value })...)
	b.row("Study Factor Type Term Accession Number", factorColumn(func(f *cfg.Factor) string { return f.Type.Accession })...)
	b.row("Study Factor Type Term Source REF", factorColumn(func(f *cfg.Factor) string { return f.Type.Ref })...)

	b.section("STUDY ASSAYS")

	assayCnt := len(assayNames)
	b.row("Study Assay File Name", assayNames...)
	b.row("Study Assay Measurement Type", repeated("metabolite profiling", assayCnt)...)
	b.row("Study Assay Measurement Type Term Accession Number", repeated("", assayCnt)...)
	b.row("Study Assay Measurement Type Term Source REF", repeated("OBI", assayCnt)...)
	b.row("Study Assay Technology Type", repeated("mass spectrometry", assayCnt)...)
	b.row("Study Assay Technology Type Term Accession Number", repeated("", assayCnt)...)
	b.row("Study Assay Technology Type Term Source REF", repeated("OBI", assayCnt)...)
	b.row("Study Assay Technology Platform", repeated(platform.Name, assayCnt)...)

	b.section("STUDY PROTOCOLS")

	descriptions := map[string]string{
		"Sample collection":         meta.Descriptions.SampleCollection,
		"Extraction":                meta.Descriptions.Extraction,
		"Chromatography":            meta.Descriptions.Chromatography,
		"Mass spectrometry":         meta.Descriptions.MassSpectrometry,
		"Data transformation":       meta.Descriptions.DataTransformation,
		"Metabolite identification": meta.Descriptions.MetaboliteIdentification,
	}

	protocolColumn := func(fn func(*protocol) string) []string {
		result := make([]string, len(protocols))
		for i := range protocols {
			result[i] = fn(&protocols[i])
		}

		return result
	}

	b.row("Study Protocol Name", protocolColumn(func(p *protocol) string { return p.name })...)
	b.row("Study Protocol Type", protocolColumn(func(p *protocol) string { return p.name })...)
	b.row("Study Protocol Type Term Accession Number", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Type Term Source REF", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Description", protocolColumn(func(p *protocol) string { return descriptions[p.name] })...)
	b.row("Study Protocol URI", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Version", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Parameters Name", protocolColumn(func(p *protocol) string { return strings.Join(p.parameters, ";") })...)
	b.row("Study Protocol Parameters Name Term Accession Number", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Parameters Name Term Source REF", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Components Name", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Components Type", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Components Type Term Accession Number", protocolColumn(func(*protocol) string { return "" })...)
	b.row("Study Protocol Components Type Term Source REF", protocolColumn(func(*protocol) string { return "" })...)

	b.section("STUDY CONTACTS")
	contactRows(&b, "Study", meta.StudyContacts)

	return writeLabeledRows(
		filepath.Join(env.StudyDir(), env.investigationFileName()), b.rows)
}

// writeLabeledRows writes investigation rows, the row label is written
// verbatim, the values are double quoted.
func writeLabeledRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		line := row[0]
		for _, val := range row[1:] {
			line += "\t\"" + strings.ReplaceAll(val, `"`, `""`) + `"`
		}

		if _, err := fmt.Fprintln(f, line); err != nil {
			f.Close()
			return err
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file failed: %w", err)
	}

	return nil
}
