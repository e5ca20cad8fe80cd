// Package suite implements an embeddable unit-test runner for host
// programs without native testing facilities.
//
// A Suite owns its configuration, an ordered list of named tests,
// optional setup/teardown hooks, a message buffer, and an output sink.
// Assertion methods render their messages through packages/sprintf and
// route them through a report pipeline that can skip successes, buffer
// output, and abort a test body on the first failure. Run executes
// every registered test in order and never lets a failure escape.
package suite
