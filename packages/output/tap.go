package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/unitspec/packages/suite"
)

// TAPFormatter emits Test Anything Protocol output.
type TAPFormatter struct {
	writer  io.Writer
	results []tapResult
}

type tapResult struct {
	name    string
	passed  bool
	failure string
}

type TAPOption func(*TAPFormatter)

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer:  os.Stdout,
		results: make([]tapResult, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush.
}

func (f *TAPFormatter) FormatResult(suiteName string, results suite.Results) {
	for _, r := range results.Tests {
		f.results = append(f.results, tapResult{
			name:    suiteName + "/" + r.Name,
			passed:  !r.Failed,
			failure: r.Failure,
		})
	}
}

func (f *TAPFormatter) FormatError(err error) {
	// Errors are carried in individual test failures.
}

// Flush writes the accumulated TAP output.
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", len(f.results))

	for i, r := range f.results {
		if r.passed {
			fmt.Fprintf(f.writer, "ok %d - %s\n", i+1, r.name)
			continue
		}
		fmt.Fprintf(f.writer, "not ok %d - %s\n", i+1, r.name)
		if r.failure != "" {
			fmt.Fprintf(f.writer, "  ---\n")
			fmt.Fprintf(f.writer, "  message: %s\n", escapeYAML(r.failure))
			fmt.Fprintf(f.writer, "  ...\n")
		}
	}

	fmt.Fprintln(f.writer)
	return nil
}

func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":\n\"'[]{}#&*!|>%@`") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return "\"" + s + "\""
	}
	return s
}
