// Package output provides sinks and result formatters for suite runs:
// a colored console sink for live assertion output, and console, JSON,
// and TAP formatters for run summaries.
package output
