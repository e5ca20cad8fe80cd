package suite

import "fmt"

// Status classifies a message: a passed assertion, a failed assertion,
// or plain informational output.
type Status int

const (
	StatusInfo Status = iota
	StatusPass
	StatusFail
)

// Sink receives every rendered message. The message may be empty (the
// run loop emits a blank separator between tests); sinks must tolerate
// that and must not panic.
type Sink func(message string, status Status)

// Message is one buffered or emitted report entry.
type Message struct {
	Text   string
	Status Status
}

// Config holds suite-wide settings. Boolean fields are pointers so an
// unset field falls back to its default; use BoolPtr to set one.
type Config struct {
	Name string

	// AbortOnErrors stops the current test body at the first failing
	// assertion. Later tests still run. Default true.
	AbortOnErrors *bool

	// AutoFlush writes each message to the sink immediately instead of
	// buffering it. Default true.
	AutoFlush *bool

	// SkipSuccess drops passing assertion messages entirely. Failing
	// assertions are always surfaced. Default true.
	SkipSuccess *bool

	// Sink receives all output. Defaults to a plain stdout writer;
	// packages/output provides a colored console sink.
	Sink Sink
}

// BoolPtr returns a pointer to b, for populating Config fields.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetAbortOnErrors returns the abort setting, defaulting to true.
func (c *Config) GetAbortOnErrors() bool {
	return getBool(c.AbortOnErrors, true)
}

// GetAutoFlush returns the auto-flush setting, defaulting to true.
func (c *Config) GetAutoFlush() bool {
	return getBool(c.AutoFlush, true)
}

// GetSkipSuccess returns the skip-success setting, defaulting to true.
func (c *Config) GetSkipSuccess() bool {
	return getBool(c.SkipSuccess, true)
}

// Render prepends the plain status marker used when no richer sink is
// installed: check mark for pass, cross for fail, nothing for info.
func Render(message string, status Status) string {
	switch status {
	case StatusPass:
		return "✓ " + message
	case StatusFail:
		return "✗ " + message
	default:
		return message
	}
}

func defaultSink(message string, status Status) {
	fmt.Println(Render(message, status))
}
