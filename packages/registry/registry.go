// Package registry holds the suites a host binary has registered so
// the CLI can run them by name. Registration is explicit; there is no
// discovery.
package registry

import "github.com/abdul-hamid-achik/unitspec/packages/suite"

// Builder populates a fresh suite with tests and hooks.
type Builder func(*suite.Suite)

// Entry is one registered suite.
type Entry struct {
	Name  string
	Build Builder
}

var entries []Entry

// Register appends a suite builder. Registration order is execution
// order. Typically called from init or early in main.
func Register(name string, build Builder) {
	entries = append(entries, Entry{Name: name, Build: build})
}

// Suites returns the registered entries in registration order.
func Suites() []Entry {
	return append([]Entry(nil), entries...)
}

// Lookup finds a registered suite by name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Reset clears the registry. Intended for tests.
func Reset() {
	entries = nil
}
