package mzml

// Accessions of PSI-MS terms that are matched directly during extraction.
const (
	accInstrumentModel  = "MS:1000031"
	accInstrumentSerial = "MS:1000529"

	accPositiveScan = "MS:1000130"
	accNegativeScan = "MS:1000129"

	accScanStartTime = "MS:1000016"

	accScanWindowLower = "MS:1000501"
	accScanWindowUpper = "MS:1000500"
)

// termRule describes how cvParams that are descendants of a vocabulary
// term are turned into metadata fields.
type termRule struct {
	// accession is the ancestor term whose descendants the rule matches.
	accession string
	// name is the metadata field the matched params are stored under.
	name string
	// attribute stores a matched param under the param's own name instead
	// of the rule name. Used for value-carrying attribute terms.
	attribute bool
	// multiple collects matches into an entry list instead of overwriting.
	multiple bool
	// value keeps the value attribute of the matched param.
	value bool
	// software resolves the softwareRef of the enclosing element into
	// "<name> software" and "<name> software version" fields.
	software bool
}

// location is a section of an mzML document together with the rules
// applied to its cvParams.
type location struct {
	name  string
	rules []termRule
}

var extractionTable = []location{
	{
		name: "file_content",
		rules: []termRule{
			{accession: "MS:1000524", name: "Data file content", multiple: true},
			{accession: "MS:1000525", name: "Spectrum representation"},
		},
	},
	{
		name: "source_file",
		rules: []termRule{
			{accession: "MS:1000767", name: "Native spectrum identifier format"},
			{accession: "MS:1000561", name: "Raw data file checksum type", multiple: true, value: true},
			{accession: "MS:1000560", name: "Raw data file format"},
		},
	},
	{
		name: "ionization",
		rules: []termRule{
			{accession: "MS:1000482", name: "source attribute", attribute: true, multiple: true, value: true},
			{accession: "MS:1000008", name: "Ion source"},
			{accession: "MS:1000007", name: "Inlet type"},
		},
	},
	{
		name: "analyzer",
		rules: []termRule{
			{accession: "MS:1000480", name: "analyzer attribute", attribute: true, multiple: true, value: true},
			{accession: "MS:1000443", name: "Mass analyzer", multiple: true},
		},
	},
	{
		name: "detector",
		rules: []termRule{
			{accession: "MS:1000481", name: "detector attribute", attribute: true, multiple: true, value: true},
			{accession: "MS:1000026", name: "Detector"},
			{accession: "MS:1000027", name: "Detector mode", multiple: true},
		},
	},
	{
		name: "data_processing",
		rules: []termRule{
			{accession: "MS:1000630", name: "data processing parameter", attribute: true, multiple: true, value: true, software: true},
			{accession: "MS:1000452", name: "data transformation", multiple: true, software: true},
		},
	},
}
