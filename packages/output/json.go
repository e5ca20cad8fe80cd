package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/unitspec/packages/suite"
)

// JSONOutput is the complete JSON report structure.
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Suites   []JSONSuite `json:"suites"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary totals the run across suites.
type JSONSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// JSONSuite is one suite's results.
type JSONSuite struct {
	Name  string     `json:"name"`
	Tests []JSONTest `json:"tests"`
}

// JSONTest is one executed test.
type JSONTest struct {
	Name     string  `json:"name"`
	Passed   bool    `json:"passed"`
	Duration float64 `json:"duration"`
	Failure  string  `json:"failure,omitempty"`
}

// JSONFormatter accumulates suite results and emits one JSON document
// on Flush.
type JSONFormatter struct {
	writer io.Writer
	suites []JSONSuite
}

type JSONOption func(*JSONFormatter)

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		suites: make([]JSONSuite, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header in JSON output.
}

func (f *JSONFormatter) FormatResult(suiteName string, results suite.Results) {
	js := JSONSuite{Name: suiteName, Tests: make([]JSONTest, 0, len(results.Tests))}
	for _, r := range results.Tests {
		js.Tests = append(js.Tests, JSONTest{
			Name:     r.Name,
			Passed:   !r.Failed,
			Duration: float64(r.Duration.Milliseconds()),
			Failure:  r.Failure,
		})
	}
	f.suites = append(f.suites, js)
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are carried in individual test failures.
}

// Flush writes the accumulated JSON report.
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var total, passed, failed int
	for _, s := range f.suites {
		for _, t := range s.Tests {
			total++
			if t.Passed {
				passed++
			} else {
				failed++
			}
		}
	}

	out := JSONOutput{
		Summary:  JSONSummary{Total: total, Passed: passed, Failed: failed},
		Suites:   f.suites,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
