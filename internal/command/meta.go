package command

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzml2isa/mzml2isa/internal/command/flag"
	"github.com/mzml2isa/mzml2isa/internal/command/term"
	"github.com/mzml2isa/mzml2isa/internal/format"
	"github.com/mzml2isa/mzml2isa/internal/format/csv"
	"github.com/mzml2isa/mzml2isa/internal/format/table"
	"github.com/mzml2isa/mzml2isa/pkg/mzml"
	"github.com/mzml2isa/mzml2isa/pkg/obo"
)

const metaLongHelp = `
Show the metadata of mzML files without writing an ISA-Tab study.

The metadata of every file is extracted via the PSI-MS controlled
vocabulary and printed to stdout.
`

const (
	formatFlagName = "format"

	formatCSV   = "csv"
	formatJSON  = "json"
	formatTable = "table"
)

func init() {
	rootCmd.AddCommand(&newMetaCmd().Command)
}

type metaCmd struct {
	cobra.Command

	format       *flag.OneOf
	ontologyFile string
}

func newMetaCmd() *metaCmd {
	cmd := metaCmd{
		Command: cobra.Command{
			Use:   "meta FILE...",
			Short: "show the metadata of mzML files",
			Long:  strings.TrimSpace(metaLongHelp),
			Args:  cobra.MinimumNArgs(1),
		},

		format: flag.NewOneOfFlag(
			formatFlagName,
			formatTable,
			"output format",
			formatCSV, formatJSON, formatTable,
		),
	}

	cmd.Flags().VarP(cmd.format, formatFlagName, "f",
		cmd.format.Usage(term.Highlight))
	cmd.Flags().StringVar(&cmd.ontologyFile, "ontology", "",
		"path to an OBO file used instead of the built-in PSI-MS vocabulary")

	cmd.Run = cmd.run

	return &cmd
}

func (c *metaCmd) run(_ *cobra.Command, args []string) {
	ontology := obo.Builtin()

	if c.ontologyFile != "" {
		var err error
		ontology, err = obo.FromFile(c.ontologyFile)
		exitOnErr(err)
	}

	for i, path := range args {
		meta, err := mzml.ExtractFile(path, ontology)
		exitOnErrf(err, "extracting metadata of %q failed", path)

		if c.format.Val == formatJSON {
			c.printJSON(meta)
			continue
		}

		if i > 0 && c.format.Val == formatTable {
			stdout.PrintSep()
		}

		c.printFields(path, meta)
	}
}

func (c *metaCmd) printJSON(meta *mzml.Metadata) {
	data, err := json.MarshalIndent(meta, "", "  ")
	exitOnErr(err)

	stdout.Println(string(data))
}

func (c *metaCmd) printFields(path string, meta *mzml.Metadata) {
	var formatter format.Formatter

	headers := []string{"File", "Field", "Name", "Accession", "Value"}
	if c.format.Val == formatCSV {
		formatter = csv.New(headers, stdout)
	} else {
		formatter = table.New(headers, stdout)
	}

	writeValue := func(field string, val *mzml.Value) {
		mustWriteRow(formatter,
			path, field, val.Name, val.Accession, val.Value)
	}

	for _, key := range meta.Keys() {
		field, _ := meta.Get(key)

		if field.Entries == nil {
			writeValue(key, &field.Value)
			continue
		}

		for i := range field.Entries {
			writeValue(key, &field.Entries[i])
		}
	}

	exitOnErr(formatter.Flush())
}
