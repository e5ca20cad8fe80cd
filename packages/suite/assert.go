package suite

import "reflect"

// AssertEquals reports whether actual is strictly equal to expected.
func (s *Suite) AssertEquals(actual, expected any, message string) {
	s.assertion(strictEqual(actual, expected), message, "assertEquals",
		actual, "exp=", expected)
}

// AssertNotEquals reports whether actual differs from expected.
func (s *Suite) AssertNotEquals(actual, expected any, message string) {
	s.assertion(!strictEqual(actual, expected), message, "assertNotEquals",
		actual, "exp!=", expected)
}

// AssertTypeEquals reports whether the runtime type tag of actual
// matches the expected type name.
func (s *Suite) AssertTypeEquals(actual any, expectedType string, message string) {
	s.assertion(TypeName(actual) == expectedType, message, "assertTypeofEquals",
		TypeName(actual), "exp=", expectedType)
}

// AssertTypeNotEquals is the inverse of AssertTypeEquals.
func (s *Suite) AssertTypeNotEquals(actual any, expectedType string, message string) {
	s.assertion(TypeName(actual) != expectedType, message, "assertTypeofNotEquals",
		TypeName(actual), "exp!=", expectedType)
}

func (s *Suite) assertion(passed bool, message, op string, actual any, expWord string, expected any) {
	okText := "ok"
	status := StatusPass
	if !passed {
		okText = "err"
		status = StatusFail
	}
	text := s.formatMessage("%s -- %s %s - act=%s, %s%s",
		message, op, okText, actual, expWord, expected)
	s.report(text, status)
}

// TypeName returns the runtime type tag reported by the typeof
// assertions. Deliberately no richer than reflect's type string.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// strictEqual applies == semantics: differing dynamic types are
// unequal, NaN is unequal to itself, and uncomparable values fall back
// to reference identity instead of panicking.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}
