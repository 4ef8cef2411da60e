package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzml2isa/mzml2isa/internal/command/term"
	"github.com/mzml2isa/mzml2isa/internal/format/table"
	"github.com/mzml2isa/mzml2isa/internal/fs"
	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/pkg/cfg"
	"github.com/mzml2isa/mzml2isa/pkg/isatab"
	"github.com/mzml2isa/mzml2isa/pkg/mzml2isa"
	"github.com/mzml2isa/mzml2isa/pkg/obo"
)

const convertLongHelp = `
Convert a directory of mzML files into an ISA-Tab study.

The metadata of every mzML file in the input directory is extracted and
written as ISA-Tab study into the directory <OUTPUT-DIR>/<STUDY-ID>/.
If files with different scan polarities are found, one assay file per
polarity is written.

Exit Codes:
  0 - Success
  1 - Error
  4 - Input directory or a file does not exist
`

func init() {
	rootCmd.AddCommand(&newConvertCmd().Command)
}

type convertCmd struct {
	cobra.Command

	inputDir        string
	outputDir       string
	studyID         string
	usermetaFile    string
	ontologyFile    string
	noSplitPolarity bool
	writeJSON       bool
	recursive       bool
	jobs            uint
	quiet           bool
}

func newConvertCmd() *convertCmd {
	cmd := convertCmd{
		Command: cobra.Command{
			Use:   "convert -i INPUT-DIR -o OUTPUT-DIR -s STUDY-ID",
			Short: "convert mzML files into an ISA-Tab study",
			Long:  strings.TrimSpace(convertLongHelp),
			Args:  cobra.NoArgs,
		},
	}

	cmd.Flags().StringVarP(&cmd.inputDir, "input", "i", "",
		"directory containing the mzML files (required)")
	cmd.Flags().StringVarP(&cmd.outputDir, "output", "o", "",
		"directory the study directory is created in (required)")
	cmd.Flags().StringVarP(&cmd.studyID, "study", "s", "",
		"study identifier, e.g. MTBLS267 (required)")
	cmd.Flags().StringVarP(&cmd.usermetaFile, "usermeta", "m", "",
		"path to a study metadata file, see 'mzml2isa init usermeta'")
	cmd.Flags().StringVar(&cmd.ontologyFile, "ontology", "",
		"path to an OBO file used instead of the built-in PSI-MS vocabulary")
	cmd.Flags().BoolVar(&cmd.noSplitPolarity, "no-split-polarity", false,
		"write a single assay file instead of one per scan polarity")
	cmd.Flags().BoolVar(&cmd.writeJSON, "json", false,
		"additionally write the metadata of every mzML file as JSON file")
	cmd.Flags().BoolVarP(&cmd.recursive, "recursive", "r", false,
		"also convert mzML files in subdirectories of the input directory")
	cmd.Flags().UintVarP(&cmd.jobs, "jobs", "j", 0,
		"number of files processed in parallel, 0 means one per CPU")
	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"do not print the per-file summary")

	for _, flag := range []string{"input", "output", "study"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *convertCmd) run(_ *cobra.Command, _ []string) {
	err := fs.DirsExist(c.inputDir)
	exitOnErr(err)

	var userMeta *cfg.UserMeta
	if c.usermetaFile != "" {
		userMeta, err = cfg.UserMetaFromFile(c.usermetaFile)
		exitOnErr(err)
	}

	ontology := obo.Builtin()
	if c.ontologyFile != "" {
		ontology, err = obo.FromFile(c.ontologyFile)
		exitOnErr(err)
	}

	paths, err := mzml2isa.FindFiles(c.inputDir, c.recursive)
	exitOnErr(err)

	log.Debugf("found %d mzML files in %s\n", len(paths), c.inputDir)

	env := isatab.Env{
		OutDir:        c.outputDir,
		StudyID:       c.studyID,
		SplitPolarity: !c.noSplitPolarity,
		UserMeta:      userMeta,
	}

	converter := mzml2isa.Converter{
		Ontology: ontology,
		Jobs:     c.jobs,
	}

	results, err := converter.Convert(&env, paths)
	exitOnErr(err)

	if c.writeJSON {
		for _, result := range results {
			err = result.WriteJSON(env.StudyDir())
			exitOnErrf(err, "writing JSON metadata of %q failed", result.Path)
		}
	}

	if !c.quiet {
		c.printSummary(results)
	}

	stdout.Printf("\nISA-Tab study %s written to %s\n",
		term.Highlight(c.studyID), term.Highlight(env.StudyDir()))
}

func (c *convertCmd) printSummary(results []*mzml2isa.Result) {
	formatter := table.New(
		[]string{"File", "Scans", "Polarity", "Digest"}, stdout)

	for _, result := range results {
		mustWriteRow(formatter,
			result.Path,
			result.Meta.Value("Number of scans"),
			term.ColoredPolarity(result.Meta.Value("Scan polarity")),
			result.Digest.String(),
		)
	}

	exitOnErr(formatter.Flush())
}
