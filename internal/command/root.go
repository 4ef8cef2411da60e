package command

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mzml2isa/mzml2isa/internal/command/term"
	"github.com/mzml2isa/mzml2isa/internal/log"
	"github.com/mzml2isa/mzml2isa/internal/version"
)

var rootCmd = &cobra.Command{
	Use:              "mzml2isa",
	Short:            "mzml2isa converts mzML mass spectrometry files into ISA-Tab studies.",
	PersistentPreRun: initSb,
}

var verboseFlag bool
var cpuProfilingFlag bool
var noColorFlag bool

var defCPUProfFile = filepath.Join(os.TempDir(), "mzml2isa-cpu.prof")

var stdout = term.NewStream(os.Stdout)
var stderr = term.NewStream(os.Stderr)

var exitFunc = func(code int) { os.Exit(code) }

func initSb(_ *cobra.Command, _ []string) {
	if verboseFlag {
		log.StdLogger.EnableDebug(verboseFlag)
	}

	if noColorFlag {
		color.NoColor = true
	}

	if cpuProfilingFlag {
		cpuProfFile, err := os.Create(defCPUProfFile)
		exitOnErr(err)

		err = pprof.StartCPUProfile(cpuProfFile)
		exitOnErr(err)
	}
}

// Execute parses commandline flags and execute their actions
func Execute() {
	if err := version.LoadPackageVars(); err != nil {
		stderr.Printf("setting version failed: %s\n", err)
	}
	rootCmd.Version = version.CurSemVer.String()

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&cpuProfilingFlag, "cpu-prof", false,
		fmt.Sprintf("enable cpu profiling, result is written to %q", defCPUProfFile))
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color output")

	err := rootCmd.Execute()
	exitOnErr(err)

	if cpuProfilingFlag {
		stdout.Printf("\ncpu profile written to %q\n", defCPUProfFile)
		pprof.StopCPUProfile()
	}
}
