package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/unitspec/packages/core/config"
	"github.com/abdul-hamid-achik/unitspec/packages/history"
	"github.com/abdul-hamid-achik/unitspec/packages/output"
	"github.com/abdul-hamid-achik/unitspec/packages/registry"
	"github.com/abdul-hamid-achik/unitspec/packages/suite"
	"github.com/abdul-hamid-achik/unitspec/packages/timing"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [suite...]",
	Short: "Run registered test suites",
	Long: `Run the suites the host binary registered, in registration order.

Examples:
  unitspec run
  unitspec run formatter
  unitspec run --name "format*"
  unitspec run --output json --output-file report.json
  unitspec run --history runs.db --timings`,
	RunE: runCommand,
}

var (
	nameFlag       string
	outputFlag     string
	outputFileFlag string
	noColorFlag    bool
	quietFlag      bool
	bailFlag       bool
	historyFlag    string
	timingsFlag    bool
	configFlag     string
)

func init() {
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only suites matching name pattern")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("UNITSPEC_OUTPUT", "console"), "Output format: console, json, tap (env: UNITSPEC_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("UNITSPEC_OUTPUT_FILE", ""), "Write report to file (default: stdout) (env: UNITSPEC_OUTPUT_FILE)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("UNITSPEC_NO_COLOR", false), "Disable colored output (env: UNITSPEC_NO_COLOR)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("UNITSPEC_QUIET", false), "Suppress live assertion output (env: UNITSPEC_QUIET)")
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("UNITSPEC_BAIL", false), "Stop after the first failing suite (env: UNITSPEC_BAIL)")
	runCmd.Flags().StringVar(&historyFlag, "history", getEnvString("UNITSPEC_HISTORY", ""), "Record run summaries to a SQLite file (env: UNITSPEC_HISTORY)")
	runCmd.Flags().BoolVar(&timingsFlag, "timings", false, "Print a duration percentile summary after the run")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("UNITSPEC_CONFIG", ""), "Path to config file (env: UNITSPEC_CONFIG)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// Sentinel errors returned instead of exiting mid-command, so deferred
// output-file and history closes run. Execute maps them to their exit
// codes.
var (
	errTestsFailed = errors.New("tests failed")
	errBadConfig   = errors.New("configuration failed")
)

// Formatter is the interface all report formatters satisfy.
type Formatter interface {
	FormatHeader(version string)
	FormatResult(suiteName string, results suite.Results)
	FormatError(err error)
	Flush(totalDuration time.Duration) error
}

func runCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.Load(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errBadConfig
	}

	// CLI flags override the config file.
	if !cmd.Flags().Changed("output") && fileConfig.Output != "" {
		outputFlag = fileConfig.GetOutput()
	}
	noColor := noColorFlag || fileConfig.GetNoColor()
	quiet := quietFlag || fileConfig.GetQuiet()
	bail := bailFlag || fileConfig.GetBail()
	timings := timingsFlag || fileConfig.GetTimings()
	historyPath := historyFlag
	if historyPath == "" {
		historyPath = fileConfig.HistoryFile
	}

	var outWriter *os.File
	if outputFileFlag != "" {
		outWriter, err = os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer outWriter.Close()
	}

	var formatter Formatter
	switch strings.ToLower(outputFlag) {
	case "json":
		opts := []output.JSONOption{}
		if outWriter != nil {
			opts = append(opts, output.JSONWithWriter(outWriter))
		}
		formatter = output.NewJSONFormatter(opts...)
	case "tap":
		opts := []output.TAPOption{}
		if outWriter != nil {
			opts = append(opts, output.TAPWithWriter(outWriter))
		}
		formatter = output.NewTAPFormatter(opts...)
	case "console":
		consoleOpts := []output.ConsoleOption{
			output.WithNoColor(noColor || quiet),
		}
		if outWriter != nil {
			consoleOpts = append(consoleOpts, output.WithWriter(outWriter))
		}
		formatter = output.NewConsoleFormatter(consoleOpts...)
	default:
		return fmt.Errorf("unknown output format %q (use console, json, or tap)", outputFlag)
	}

	formatter.FormatHeader(version)

	selected, err := selectSuites(args)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no suites to run")
	}

	// Live assertion output goes to stdout only for console runs; the
	// structured formats would be polluted by it.
	sinkOpts := []output.ConsoleOption{output.WithNoColor(noColor)}
	if quiet || strings.ToLower(outputFlag) != "console" {
		sinkOpts = append(sinkOpts, output.WithWriter(io.Discard))
	}
	sink := output.ConsoleSink(sinkOpts...)

	var store *history.Store
	if historyPath != "" {
		store, err = history.Open(historyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return errBadConfig
		}
		defer store.Close()
	}

	collector := timing.NewCollector()
	totalFailed := 0
	start := time.Now()

	for _, entry := range selected {
		s := suite.New(&suite.Config{
			Name:          entry.Name,
			AbortOnErrors: fileConfig.AbortOnErrors,
			AutoFlush:     fileConfig.AutoFlush,
			SkipSuccess:   fileConfig.SkipSuccess,
			Sink:          sink,
		})
		entry.Build(s)

		startedAt := time.Now()
		s.Run()
		results := s.Results()

		formatter.FormatResult(entry.Name, results)
		for _, r := range results.Tests {
			collector.Record(r.Duration)
		}
		totalFailed += len(results.Failures)

		if store != nil {
			_, err := store.RecordRun(history.Record{
				Suite:     entry.Name,
				Passed:    results.Passed(),
				Failed:    len(results.Failures),
				Duration:  time.Since(startedAt),
				StartedAt: startedAt,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to record history: %v\n", err)
			}
		}

		if bail && !results.OK() {
			break
		}
	}

	if err := formatter.Flush(time.Since(start)); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	if timings {
		printTimings(cmd.OutOrStdout(), collector.Summary())
	}

	if totalFailed > 0 {
		// The failures were already reported through the formatter.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errTestsFailed
	}
	return nil
}

// selectSuites resolves explicit suite arguments and the --name
// pattern against the registry.
func selectSuites(args []string) ([]registry.Entry, error) {
	var selected []registry.Entry
	if len(args) > 0 {
		for _, name := range args {
			entry, ok := registry.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("unknown suite %q", name)
			}
			selected = append(selected, entry)
		}
	} else {
		selected = registry.Suites()
	}

	if nameFlag == "" {
		return selected, nil
	}
	var filtered []registry.Entry
	for _, entry := range selected {
		if matchesPattern(entry.Name, nameFlag) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func printTimings(w io.Writer, s timing.Summary) {
	fmt.Fprintf(w, "Timings: %d tests, mean %s, p50 %s, p95 %s, p99 %s, max %s\n",
		s.Count, s.Mean, s.P50, s.P95, s.P99, s.Max)
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}

	if pattern[0] == '*' && pattern[len(pattern)-1] == '*' {
		substr := pattern[1 : len(pattern)-1]
		return strings.Contains(name, substr)
	}

	if pattern[0] == '*' {
		return strings.HasSuffix(name, pattern[1:])
	}

	if pattern[len(pattern)-1] == '*' {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}
