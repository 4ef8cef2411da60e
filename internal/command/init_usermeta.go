package command

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzml2isa/mzml2isa/internal/command/term"
	"github.com/mzml2isa/mzml2isa/pkg/cfg"
)

// UserMetaCfgFile is the default file name of the study metadata
// configuration.
const UserMetaCfgFile = "usermeta.toml"

const initUserMetaLongHelp = `
Create a study metadata configuration file.

The file describes the study information that can not be extracted from
mzML files: investigation and study titles, publications, contacts,
factors and sample characteristics.
All entries are commented out, uncomment and adapt the ones you need and
pass the file to 'mzml2isa convert --usermeta'.
`

func init() {
	initCmd.AddCommand(&newInitUserMetaCmd().Command)
}

type initUserMetaCmd struct {
	cobra.Command
}

func newInitUserMetaCmd() *initUserMetaCmd {
	cmd := initUserMetaCmd{
		Command: cobra.Command{
			Use:   "usermeta [DIR]",
			Short: "create a study metadata config file",
			Long:  strings.TrimSpace(initUserMetaLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *initUserMetaCmd) run(_ *cobra.Command, args []string) {
	var dir string
	var err error

	if len(args) == 1 {
		dir = args[0]
	} else {
		dir, err = os.Getwd()
		exitOnErr(err)
	}

	cfgPath := filepath.Join(dir, UserMetaCfgFile)

	err = cfg.ExampleUserMeta().ToFile(cfgPath, cfg.ToFileOptCommented())
	if err != nil {
		if os.IsExist(err) {
			stderr.Printf("%s already exists\n", cfgPath)
			exitFunc(exitCodeExist)
		}

		exitOnErr(err)
	}

	stdout.Printf("study metadata configuration written to %s\n",
		term.Highlight(cfgPath))
}
