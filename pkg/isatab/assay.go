package isatab

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
)

// colGroup describes one column group of the assay file.
// A group is either a fixed Protocol REF column, a plain value column or an
// ontology annotation spanning a value, a Term Source REF and a Term
// Accession Number column, optionally followed by a plain value column.
type colGroup struct {
	// label is the column label and the metadata field it is filled from.
	label string
	// annotated groups span label, "Term Source REF" and "Term Accession
	// Number" columns.
	annotated bool
	// valueLabel adds a plain column holding the value of the matched
	// annotation, e.g. the checksum next to the checksum type.
	valueLabel string
	// repeat replicates the group for repeatable metadata fields.
	repeat int
	// fixed groups are kept even if they are empty in every row.
	fixed bool
	// protocol makes the group a "Protocol REF" column with the given
	// fixed cell value.
	protocol string
}

func (g *colGroup) count() int {
	if g.repeat > 1 {
		return g.repeat
	}

	return 1
}

func (g *colGroup) width() int {
	w := 1
	if g.annotated {
		w = 3
	}
	if g.valueLabel != "" {
		w++
	}

	return w
}

func (g *colGroup) header() []string {
	if g.protocol != "" {
		return []string{"Protocol REF"}
	}

	cells := []string{g.label}
	if g.annotated {
		cells = append(cells, "Term Source REF", "Term Accession Number")
	}
	if g.valueLabel != "" {
		cells = append(cells, g.valueLabel)
	}

	return cells
}

// assayColumns is the column layout of the generated assay files.
// Groups that stay empty for all rows are removed before writing, except
// the fixed and the Protocol REF groups.
var assayColumns = []colGroup{
	{label: "Sample Name", fixed: true},
	{protocol: "Extraction"},
	{label: "Parameter Value[Post Extraction]", fixed: true},
	{label: "Parameter Value[Derivatization]", fixed: true},
	{label: "Extract Name", fixed: true},
	{protocol: "Chromatography"},
	{label: "Parameter Value[Chromatography Instrument]", fixed: true},
	{label: "Parameter Value[Column type]", fixed: true},
	{label: "Parameter Value[Column model]", fixed: true},
	{label: "Labeled Extract Name", fixed: true},
	{label: "Label", fixed: true},
	{protocol: "Mass spectrometry"},

	{label: "Parameter Value[Instrument]", annotated: true},
	{label: "Parameter Value[Instrument manufacturer]", annotated: true},
	{label: "Parameter Value[Instrument serial number]"},
	{label: "Parameter Value[Instrument software]", annotated: true},
	{label: "Parameter Value[Instrument software version]"},
	{label: "Parameter Value[Ion source]", annotated: true},
	{label: "Parameter Value[Inlet type]", annotated: true},
	{label: "Parameter Value[source potential]"},
	{label: "Parameter Value[wavelength]"},
	{label: "Parameter Value[Mass analyzer]", annotated: true, repeat: 2},
	{label: "Parameter Value[accuracy]"},
	{label: "Parameter Value[magnetic field strength]"},
	{label: "Parameter Value[Detector]", annotated: true},
	{label: "Parameter Value[Detector mode]", annotated: true, repeat: 2},
	{label: "Parameter Value[detector resolution]"},
	{label: "Parameter Value[sampling frequency]"},
	{label: "Parameter Value[Data file content]", annotated: true, repeat: 2},
	{label: "Parameter Value[Spectrum representation]", annotated: true},
	{label: "Parameter Value[Native spectrum identifier format]", annotated: true},
	{
		label:      "Parameter Value[Raw data file checksum type]",
		annotated:  true,
		valueLabel: "Parameter Value[Raw data file checksum]",
		repeat:     2,
	},
	{label: "Parameter Value[Raw data file format]", annotated: true},
	{label: "Parameter Value[inclusive low intensity threshold]"},
	{label: "Parameter Value[inclusive high intensity threshold]"},
	{label: "Parameter Value[Scan polarity]"},
	{label: "Parameter Value[Scan m/z range]"},
	{label: "Parameter Value[Time range]"},
	{label: "Parameter Value[Number of scans]"},

	{label: "MS Assay Name", fixed: true},
	{label: "Raw Spectral Data File", fixed: true},
	{protocol: "Data transformation"},
	{label: "Normalization Name", fixed: true},
	{label: "Derived Spectral Data File", fixed: true},
	{protocol: "Metabolite identification"},
	{label: "Data Transformation Name", fixed: true},
	{label: "Metabolite Assignment File", fixed: true},
}

// assayRow is one assay file row, cells grouped per column group
// occurrence.
type assayRow struct {
	cells    [][]string
	polarity string
}

// fieldValues returns the values of a metadata field, repeatable fields
// contribute one value per entry.
func fieldValues(meta *mzml.Metadata, key string) []mzml.Value {
	f, exist := meta.Get(key)
	if !exist {
		return nil
	}

	if f.Entries != nil {
		return f.Entries
	}

	return []mzml.Value{f.Value}
}

// termSourceRef derives the term source of an accession
// ("MS:1000031" -> "MS").
func termSourceRef(accession string) string {
	ref, _, found := strings.Cut(accession, ":")
	if !found {
		return ""
	}

	return ref
}

func buildAssayRow(meta *mzml.Metadata) *assayRow {
	isa := meta.ISA()
	row := assayRow{polarity: isa.Value("Parameter Value[Scan polarity]")}

	for i := range assayColumns {
		group := &assayColumns[i]

		if group.protocol != "" {
			row.cells = append(row.cells, []string{group.protocol})
			continue
		}

		values := fieldValues(isa, group.label)

		for occurrence := 0; occurrence < group.count(); occurrence++ {
			cells := make([]string, group.width())

			if occurrence < len(values) {
				val := values[occurrence]

				if group.annotated {
					cells[0] = val.Name
					cells[1] = termSourceRef(val.Accession)
					cells[2] = val.Accession
					if group.valueLabel != "" {
						cells[3] = val.Value
					}
				} else {
					cells[0] = val.Value
				}
			}

			row.cells = append(row.cells, cells)
		}
	}

	return &row
}

// groupOccurrences maps column group occurrences to their index in the
// row's cell slices.
func groupOccurrences() []*colGroup {
	var result []*colGroup
	for i := range assayColumns {
		for n := 0; n < assayColumns[i].count(); n++ {
			result = append(result, &assayColumns[i])
		}
	}

	return result
}

// removeBlankGroups returns the occurrence indices that hold a value in at
// least one row, plus all fixed and protocol occurrences.
func removeBlankGroups(rows []*assayRow) []int {
	groups := groupOccurrences()

	var keep []int
	for i, group := range groups {
		if group.fixed || group.protocol != "" {
			keep = append(keep, i)
			continue
		}

		empty := true
	rows:
		for _, row := range rows {
			for _, cell := range row.cells[i] {
				if cell != "" {
					empty = false
					break rows
				}
			}
		}

		if !empty {
			keep = append(keep, i)
		}
	}

	return keep
}

func assayHeader(keep []int) []string {
	groups := groupOccurrences()

	var header []string
	for _, i := range keep {
		header = append(header, groups[i].header()...)
	}

	return header
}

func flattenRow(row *assayRow, keep []int) []string {
	var cells []string
	for _, i := range keep {
		cells = append(cells, row.cells[i]...)
	}

	return cells
}

// selectPlatform returns the most common instrument of the study. It is
// used as technology platform in the investigation file.
func selectPlatform(metas []*mzml.Metadata) mzml.Value {
	type count struct {
		val mzml.Value
		n   int
	}

	var counts []*count

	for _, meta := range metas {
		f, exist := meta.Get("Instrument")
		if !exist {
			continue
		}

		found := false
		for _, c := range counts {
			if c.val == f.Value {
				c.n++
				found = true
				break
			}
		}

		if !found {
			counts = append(counts, &count{val: f.Value, n: 1})
		}
	}

	if len(counts) == 0 {
		return mzml.Value{}
	}

	if len(counts) > 1 {
		log.Warnf("study uses more than one instrument platform, "+
			"the investigation file will name the most common one\n")
	}

	best := counts[0]
	for _, c := range counts[1:] {
		if c.n > best.n {
			best = c
		}
	}

	return best.val
}

// writeAssays writes the assay files of the study, one per polarity if
// polarity splitting is enabled and multiple polarities were found.
// It returns the names of the written assay files and the selected
// instrument platform.
func writeAssays(env *Env, metas []*mzml.Metadata) ([]string, mzml.Value, error) {
	platform := selectPlatform(metas)

	rows := make([]*assayRow, 0, len(metas))
	for _, meta := range metas {
		rows = append(rows, buildAssayRow(meta))
	}

	keep := removeBlankGroups(rows)
	header := assayHeader(keep)

	polarities := map[string][]*assayRow{}
	for _, row := range rows {
		polarities[row.polarity] = append(polarities[row.polarity], row)
	}

	split := env.SplitPolarity && len(polarities) > 1

	var written []string

	writeFile := func(name string, rows []*assayRow) error {
		fileRows := [][]string{header}
		for _, row := range rows {
			fileRows = append(fileRows, flattenRow(row, keep))
		}

		written = append(written, name)

		return writeRows(filepath.Join(env.StudyDir(), name), fileRows)
	}

	if !split {
		err := writeFile(env.assayFileName(""), rows)
		if err != nil {
			return nil, mzml.Value{}, err
		}

		return written, platform, nil
	}

	keys := make([]string, 0, len(polarities))
	for polarity := range polarities {
		keys = append(keys, polarity)
	}
	sort.Strings(keys)

	for _, polarity := range keys {
		err := writeFile(env.assayFileName(polarity), polarities[polarity])
		if err != nil {
			return nil, mzml.Value{}, err
		}
	}

	return written, platform, nil
}
