package suite

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSink() (*[]Message, Sink) {
	msgs := &[]Message{}
	return msgs, func(message string, status Status) {
		*msgs = append(*msgs, Message{Text: message, Status: status})
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "", s.Name())

	cfg := &Config{}
	assert.True(t, cfg.GetAbortOnErrors())
	assert.True(t, cfg.GetAutoFlush())
	assert.True(t, cfg.GetSkipSuccess())

	cfg = &Config{
		AbortOnErrors: BoolPtr(false),
		AutoFlush:     BoolPtr(false),
		SkipSuccess:   BoolPtr(false),
	}
	assert.False(t, cfg.GetAbortOnErrors())
	assert.False(t, cfg.GetAutoFlush())
	assert.False(t, cfg.GetSkipSuccess())
}

func TestAssertEquals_FailureMessage(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})
	s.AddTest("sum", func() {
		s.AssertEquals(2, 3, "sum")
	})
	s.Run()

	var failures []Message
	for _, m := range *msgs {
		if m.Status == StatusFail {
			failures = append(failures, m)
		}
	}
	require.Len(t, failures, 2)
	assert.Equal(t, "calc: sum -- assertEquals err - act=2, exp=3", failures[0].Text)
	assert.Equal(t, "test sum failed: sum -- assertEquals err - act=2, exp=3", failures[1].Text)
}

func TestSkipSuccess_DropsPassingAssertions(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})
	s.AddTest("sum", func() {
		s.AssertEquals(2, 2, "sum")
	})
	s.Run()

	for _, m := range *msgs {
		assert.NotContains(t, m.Text, "assertEquals")
	}
	assert.True(t, s.Results().OK())
}

func TestSkipSuccess_DisabledSurfacesPasses(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{Name: "calc", SkipSuccess: BoolPtr(false), Sink: sink})
	s.AddTest("sum", func() {
		s.AssertEquals(2, 2, "sum")
	})
	s.Run()

	found := false
	for _, m := range *msgs {
		if m.Text == "calc: sum -- assertEquals ok - act=2, exp=2" {
			found = true
			assert.Equal(t, StatusPass, m.Status)
		}
	}
	assert.True(t, found)
}

func TestAutoFlush_DisabledBuffersMessages(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{
		Name:        "calc",
		AutoFlush:   BoolPtr(false),
		SkipSuccess: BoolPtr(false),
		Sink:        sink,
	})

	s.AssertEquals(1, 1, "first")
	s.AssertEquals(2, 2, "second")

	require.Len(t, s.Messages(), 2)
	for _, m := range *msgs {
		assert.NotContains(t, m.Text, "assertEquals")
	}

	s.Flush()
	require.NotEmpty(t, *msgs)
	last := (*msgs)[len(*msgs)-1]
	assert.Equal(t, StatusPass, last.Status)
	assert.Equal(t, "✓ calc: first -- assertEquals ok - act=1, exp=1\n✓ calc: second -- assertEquals ok - act=2, exp=2", last.Text)
	assert.Empty(t, s.Messages())
}

func TestFlush_CombinedStatusPrefersFailure(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{
		Name:          "calc",
		AutoFlush:     BoolPtr(false),
		SkipSuccess:   BoolPtr(false),
		AbortOnErrors: BoolPtr(false),
		Sink:          sink,
	})

	s.AssertEquals(1, 1, "pass")
	s.AssertEquals(1, 2, "fail")
	s.Flush()

	require.Len(t, *msgs, 1)
	assert.Equal(t, StatusFail, (*msgs)[0].Status)
	assert.Contains(t, (*msgs)[0].Text, "✓ ")
	assert.Contains(t, (*msgs)[0].Text, "✗ ")
}

func TestFlush_EmptyBufferIsNoOp(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{Sink: sink})
	s.Flush()
	assert.Empty(t, *msgs)
}

func TestAbortOnErrors_StopsBodyNotRun(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})

	reached := false
	secondRan := false
	s.AddTest("failing", func() {
		s.AssertEquals(1, 2, "boom")
		reached = true
	})
	s.AddTest("next", func() {
		secondRan = true
	})
	s.Run()

	assert.False(t, reached, "assertion failure should abort the body")
	assert.True(t, secondRan, "later tests still run")

	results := s.Results()
	require.Len(t, results.Tests, 2)
	assert.Len(t, results.Failures, 1)
	assert.Equal(t, "failing", results.Failures[0].Name)
	assert.Equal(t, 1, results.Passed())
}

func TestAbortOnErrors_DisabledContinuesBody(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", AbortOnErrors: BoolPtr(false), Sink: sink})

	reached := false
	s.AddTest("failing", func() {
		s.AssertEquals(1, 2, "boom")
		reached = true
	})
	s.Run()

	assert.True(t, reached, "body continues past a failed assertion")
	// The body ran to completion without raising, so the test passes.
	assert.True(t, s.Results().OK())
}

func TestAbortOnErrors_FlushesBufferBeforeAbort(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{
		Name:      "calc",
		AutoFlush: BoolPtr(false),
		Sink:      sink,
	})
	s.AddTest("failing", func() {
		s.AssertEquals(1, 2, "boom")
	})
	s.Run()

	found := false
	for _, m := range *msgs {
		if m.Status == StatusFail && m.Text == "✗ calc: boom -- assertEquals err - act=1, exp=2" {
			found = true
		}
	}
	assert.True(t, found, "buffered failure must reach the sink before the abort")
	assert.Empty(t, s.Messages())
}

func TestFail_AlwaysAborts(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", AbortOnErrors: BoolPtr(false), Sink: sink})

	reached := false
	s.AddTest("explicit", func() {
		s.Fail("gave up")
		reached = true
	})
	s.Run()

	assert.False(t, reached)
	results := s.Results()
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "gave up", results.Failures[0].Failure)
}

func TestRun_GuardsPanics(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})

	s.AddTest("string panic", func() {
		panic("boom")
	})
	s.AddTest("error panic", func() {
		panic(errors.New("broken"))
	})
	s.AddTest("fine", func() {})
	s.Run()

	results := s.Results()
	require.Len(t, results.Tests, 3)
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "boom", results.Failures[0].Failure)
	assert.Equal(t, "broken", results.Failures[1].Failure)
	assert.Equal(t, 1, results.Passed())
}

func TestRun_SetupTeardownOrdering(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})

	var order []string
	s.SetSetup(func() { order = append(order, "setup") })
	s.SetTeardown(func() { order = append(order, "teardown") })
	s.AddTest("a", func() { order = append(order, "a") })
	s.AddTest("b", func() {
		order = append(order, "b")
		s.Fail("stop")
	})
	s.Run()

	// Teardown runs even when the body aborts.
	assert.Equal(t, []string{"setup", "a", "teardown", "setup", "b", "teardown"}, order)
}

func TestRun_ResetsResults(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})
	s.AddTest("a", func() {})
	s.Run()
	s.Run()
	assert.Len(t, s.Results().Tests, 1)
}

func TestAssertNotEquals_NaN(t *testing.T) {
	_, sink := captureSink()
	s := New(&Config{Name: "calc", Sink: sink})
	s.AddTest("nan", func() {
		s.AssertNotEquals(math.NaN(), math.NaN(), "NaN never equals itself")
	})
	s.Run()
	assert.True(t, s.Results().OK())
}

func TestTestNames(t *testing.T) {
	s := New(nil)
	s.AddTest("first", func() {})
	s.AddTest("second", func() {})
	assert.Equal(t, []string{"first", "second"}, s.TestNames())
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"float", 1.5, "float64"},
		{"string", "x", "string"},
		{"slice", []int{1}, "[]int"},
		{"map", map[string]int{}, "map[string]int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.value))
		})
	}
}

func TestStrictEqual(t *testing.T) {
	shared := []int{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"unequal ints", 1, 2, false},
		{"differing types never equal", 1, 1.0, false},
		{"both nil", nil, nil, true},
		{"one nil", nil, 0, false},
		{"nan", math.NaN(), math.NaN(), false},
		{"same slice identity", shared, shared, true},
		{"distinct slices", []int{1, 2}, []int{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strictEqual(tt.a, tt.b))
		})
	}
}

func TestAssertTypeEquals(t *testing.T) {
	msgs, sink := captureSink()
	s := New(&Config{Name: "types", Sink: sink})
	s.AddTest("tags", func() {
		s.AssertTypeEquals("hello", "string", "string tag")
		s.AssertTypeNotEquals(42, "string", "int tag")
		s.AssertTypeEquals(nil, "nil", "nil tag")
	})
	s.Run()

	assert.True(t, s.Results().OK())
	for _, m := range *msgs {
		assert.NotEqual(t, StatusFail, m.Status)
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "✓ ok", Render("ok", StatusPass))
	assert.Equal(t, "✗ bad", Render("bad", StatusFail))
	assert.Equal(t, "note", Render("note", StatusInfo))
}
