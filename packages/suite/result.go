package suite

import "time"

// Results accumulates per-test outcomes of a Run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult records one executed test.
type TestResult struct {
	Name     string
	Failed   bool
	Failure  string
	Duration time.Duration
}

// OK reports whether every test passed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed counts the tests that completed without a failure.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures)
}
