package suite

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/unitspec/packages/sprintf"
)

// TestCase is one named test body. Order of registration is order of
// execution.
type TestCase struct {
	Name string
	Body func()
}

// Suite is a configured collection of tests sharing setup/teardown
// hooks, a message buffer, and an output sink. A Suite is not safe for
// concurrent use; the runner is single-threaded by design.
type Suite struct {
	config   *Config
	sink     Sink
	tests    []TestCase
	setup    func()
	teardown func()
	buffer   []Message
	results  Results
}

// abortError is the control-flow signal that terminates a single test
// body early. It never escapes Run's per-test guard.
type abortError struct {
	message string
}

func (e *abortError) Error() string {
	return e.message
}

// New creates a Suite. A nil config means all defaults.
func New(cfg *Config) *Suite {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Suite{
		config: cfg,
		sink:   cfg.Sink,
	}
	if s.sink == nil {
		s.sink = defaultSink
	}
	return s
}

// Name returns the configured suite name.
func (s *Suite) Name() string {
	return s.config.Name
}

// AddTest appends a test case. Names need not be unique. The body is
// not executed until Run.
func (s *Suite) AddTest(name string, body func()) {
	s.tests = append(s.tests, TestCase{Name: name, Body: body})
}

// SetSetup registers the hook invoked before each test body,
// replacing any previous one.
func (s *Suite) SetSetup(fn func()) {
	s.setup = fn
}

// SetTeardown registers the hook invoked after each test body,
// replacing any previous one.
func (s *Suite) SetTeardown(fn func()) {
	s.teardown = fn
}

// TestNames returns the registered test names in execution order.
func (s *Suite) TestNames() []string {
	names := make([]string, len(s.tests))
	for i, tc := range s.tests {
		names[i] = tc.Name
	}
	return names
}

// Messages returns a copy of the current buffer contents.
func (s *Suite) Messages() []Message {
	return append([]Message(nil), s.buffer...)
}

// Results returns the outcomes recorded by the most recent Run.
func (s *Suite) Results() Results {
	return s.results
}

// Fail flushes any buffered messages and aborts the current test body
// with the given message, regardless of the abort-on-errors setting.
func (s *Suite) Fail(message string) {
	s.Flush()
	panic(&abortError{message: message})
}

// Flush renders the buffered messages, writes them to the sink as one
// combined call, and clears the buffer. An empty buffer is a no-op
// apart from the clear.
func (s *Suite) Flush() {
	if len(s.buffer) > 0 {
		lines := make([]string, len(s.buffer))
		status := StatusInfo
		for i, m := range s.buffer {
			lines[i] = Render(m.Text, m.Status)
			switch m.Status {
			case StatusFail:
				status = StatusFail
			case StatusPass:
				if status != StatusFail {
					status = StatusPass
				}
			}
		}
		s.sink(strings.Join(lines, "\n"), status)
	}
	s.buffer = nil
}

// report is the pipeline shared by all assertion methods: skip
// successes if configured, then either write through or buffer, and
// finally abort the test body on failure when abort-on-errors is set.
func (s *Suite) report(text string, status Status) {
	prefixed := text
	if s.config.Name != "" {
		prefixed = s.config.Name + ": " + text
	}

	switch {
	case status == StatusPass && s.config.GetSkipSuccess():
		// dropped entirely
	case s.config.GetAutoFlush():
		s.sink(prefixed, status)
	default:
		s.buffer = append(s.buffer, Message{Text: prefixed, Status: status})
	}

	if status == StatusFail && s.config.GetAbortOnErrors() {
		if !s.config.GetAutoFlush() {
			// The failing message must not sit in a buffer nobody will
			// drain once the body aborts.
			s.Flush()
		}
		panic(&abortError{message: text})
	}
}

// formatMessage renders an assertion message; a formatter error
// becomes the message itself so it surfaces to the caller.
func (s *Suite) formatMessage(template string, args ...any) string {
	text, err := sprintf.Format(template, args...)
	if err != nil {
		return err.Error()
	}
	return text
}

// info writes directly to the sink, bypassing the report pipeline.
// Informational run-loop output is never skipped or buffered.
func (s *Suite) info(text string, status Status) {
	s.sink(text, status)
}

// Run executes every registered test in order. Failures are reported
// through the sink; Run itself never raises and always runs the whole
// list.
func (s *Suite) Run() {
	s.results = Results{}
	s.info(s.formatMessage("suite %s: running %d tests", s.config.Name, len(s.tests)), StatusInfo)

	for _, tc := range s.tests {
		if s.setup != nil {
			s.setup()
		}
		s.info(s.formatMessage("running %s", tc.Name), StatusInfo)

		start := time.Now()
		failure, failed := s.guard(tc.Body)
		duration := time.Since(start)

		if failed {
			s.info(s.formatMessage("test %s failed: %s", tc.Name, failure), StatusFail)
		} else {
			s.info(s.formatMessage("test %s passed", tc.Name), StatusPass)
		}

		if s.teardown != nil {
			s.teardown()
		}
		s.info("", StatusInfo)

		result := TestResult{Name: tc.Name, Failed: failed, Failure: failure, Duration: duration}
		s.results.Tests = append(s.results.Tests, result)
		if failed {
			s.results.Failures = append(s.results.Failures, result)
		}
	}
}

// guard runs one test body and converts any raised failure into a
// reported message. Abort signals and genuine panics are caught
// identically.
func (s *Suite) guard(body func()) (failure string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
			switch e := r.(type) {
			case *abortError:
				failure = e.message
			case error:
				failure = e.Error()
			default:
				failure = fmt.Sprint(r)
			}
		}
	}()
	body()
	return "", false
}
