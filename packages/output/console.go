package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/unitspec/packages/suite"
	"github.com/fatih/color"
)

type consoleConfig struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*consoleConfig)

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *consoleConfig) {
		c.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(c *consoleConfig) {
		c.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(c *consoleConfig) {
		c.noColor = nc
	}
}

func newConsoleConfig(opts ...ConsoleOption) *consoleConfig {
	c := &consoleConfig{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		color.NoColor = true
	}
	return c
}

// ConsoleSink returns a suite sink that writes each message colored by
// status: green for passed assertions, red for failures, plain for
// informational output.
func ConsoleSink(opts ...ConsoleOption) suite.Sink {
	c := newConsoleConfig(opts...)
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	return func(message string, status suite.Status) {
		switch status {
		case suite.StatusPass:
			fmt.Fprintln(c.writer, green(message))
		case suite.StatusFail:
			fmt.Fprintln(c.writer, red(message))
		default:
			fmt.Fprintln(c.writer, message)
		}
	}
}

// ConsoleFormatter renders run summaries for humans.
type ConsoleFormatter struct {
	cfg    *consoleConfig
	passed int
	failed int
}

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	return &ConsoleFormatter{cfg: newConsoleConfig(opts...)}
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.cfg.writer, "%s %s\n", bold("unitspec"), version)
}

func (f *ConsoleFormatter) FormatResult(suiteName string, results suite.Results) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.cfg.writer, "\n%s\n\n", bold("Suite: "+suiteName))

	for _, r := range results.Tests {
		symbol := green("✓")
		if r.Failed {
			symbol = red("✗")
		}
		fmt.Fprintf(f.cfg.writer, "  %s %s %s\n", symbol, r.Name,
			cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds())))
		if r.Failed && r.Failure != "" {
			fmt.Fprintf(f.cfg.writer, "    %s %s\n", red("→"), r.Failure)
		}
	}

	f.passed += results.Passed()
	f.failed += len(results.Failures)
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.cfg.writer, "%s %v\n", red("Error:"), err)
}

// Flush prints the cross-suite totals.
func (f *ConsoleFormatter) Flush(totalDuration time.Duration) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.cfg.writer, "\nTests: ")
	if f.passed > 0 {
		fmt.Fprintf(f.cfg.writer, "%s, ", green(fmt.Sprintf("%d passed", f.passed)))
	}
	if f.failed > 0 {
		fmt.Fprintf(f.cfg.writer, "%s, ", red(fmt.Sprintf("%d failed", f.failed)))
	}
	fmt.Fprintf(f.cfg.writer, "%d total\n", f.passed+f.failed)
	fmt.Fprintf(f.cfg.writer, "Time:  %dms\n\n", totalDuration.Milliseconds())
	return nil
}
