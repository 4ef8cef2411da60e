package command

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "create configuration files",
}

func init() {
	rootCmd.AddCommand(initCmd)
}
