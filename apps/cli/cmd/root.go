package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "unitspec",
	Short: "Embeddable unit-test suites with printf-style messages.",
	Long: `unitspec runs test suites registered by the host binary. Suites are
plain Go callbacks built around equality and typeof assertions, with
messages rendered through a C-style formatter.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errTestsFailed) {
		return ExitTestFailure
	}
	if errors.Is(err, errBadConfig) {
		return ExitConfigError
	}
	return ExitUsageError
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
