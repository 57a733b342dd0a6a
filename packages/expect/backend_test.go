package expect

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExpectation_Run_Paths(t *testing.T) {
	tests := []struct {
		name   string
		actual any
		path   string
		args   []any
		passed bool
	}{
		{"toBe", 1, "toBe", []any{1}, true},
		{"not.toBe", 1, "not.toBe", []any{2}, true},
		{"double negation", 1, "not.not.toBe", []any{1}, true},
		{"toEqual", []int{1, 2}, "toEqual", []any{[]any{1.0, 2.0}}, true},
		{"not.toEqual", []int{1, 2}, "not.toEqual", []any{[]any{1.0}}, true},
		{"failing toBe", 1, "toBe", []any{2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(t.Name())
			passed, err := New(rec).Expect(tt.actual).Run(grammar.SplitPath(tt.path), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.passed, passed)
			assert.Equal(t, !tt.passed, rec.Failed())
		})
	}
}

func TestExpectation_Run_UnresolvablePath(t *testing.T) {
	for _, path := range []string{"toBeAwesome", "not", "toBe.not", "not.", "deep.toBe", ""} {
		rec := NewRecorder("unresolvable")
		_, err := New(rec).Expect(1).Run(grammar.SplitPath(path), 1)
		require.Error(t, err, "path %q", path)
		assert.True(t, errors.Is(err, ErrUnresolvablePath))

		var perr *PathError
		require.True(t, errors.As(err, &perr))
		assert.False(t, rec.Failed(), "path errors are returned, not reported")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expr     string
		fallback []any
		passed   bool
	}{
		{"arrow primitive", 1, "-> 1", nil, true},
		{"arrow composite", map[string]int{"a": 1}, `-> {"a": 1}`, nil, true},
		{"negated arrow", 2, "!-> 1", nil, true},
		{"short negated arrow", 2, "!- 1", nil, true},
		{"strict shorthand", "x", "== x", nil, true},
		{"not equal shorthand", "x", "!= y", nil, true},
		{"deep shorthand", []string{"a"}, `=== ["a"]`, nil, true},
		{"not deep shorthand", []string{"a"}, `!== ["b"]`, nil, true},
		{"fallback value", []int{1}, "->", []any{[]int{1}}, true},
		{"literal wins over fallback", 1, "-> 1", []any{2}, true},
		{"dotted path", "hello", "not.toContain z", nil, true},
		{"no argument matcher", true, "toBeTruthy", nil, true},
		{"undefined literal", grammar.Undefined, "toBe undefined", nil, true},
		{"null literal", nil, "-> null", nil, true},
		{"failing arrow", 1, "-> 3", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(t.Name())
			passed, err := Apply(New(rec).Expect(tt.actual), tt.expr, tt.fallback...)
			require.NoError(t, err)
			assert.Equal(t, tt.passed, passed, rec.Errors())
		})
	}
}

func TestApply_Malformed(t *testing.T) {
	_, err := Apply(New(NewRecorder("x")).Expect(1), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, grammar.ErrMalformedExpression))
}

func TestBackend_Fatal(t *testing.T) {
	rec := NewRecorder("fatal")
	New(rec).Fatal(errors.New("boom"))

	assert.True(t, rec.Stopped())
	assert.Equal(t, []string{"boom"}, rec.Errors())
}

func TestBackend_Observer(t *testing.T) {
	var results []Result
	b := New(NewRecorder("observer"), WithObserver(func(r Result) {
		results = append(results, r)
	}))

	b.That(1).ToBe(1)
	b.That(1).Not().ToBe(1)

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "toBe", results[0].Operator())
	assert.False(t, results[1].Passed)
	assert.Equal(t, "not.toBe", results[1].Operator())
	assert.Contains(t, results[1].Message, "expect(1).not.toBe(1)")
}

func TestBackend_LogsMatcherRuns(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(NewRecorder("logs"), WithLogger(zap.New(core)))

	b.That("a").ToBe("a")

	entries := logs.FilterMessage("matcher").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "toBe", entries[0].ContextMap()["matcher"])
	assert.Equal(t, true, entries[0].ContextMap()["passed"])
}

func TestFailureMessage_ReportedThroughTestify(t *testing.T) {
	rec := NewRecorder("message")
	That(rec, []int{1}).ToEqual([]int{2})

	require.Len(t, rec.Errors(), 1)
	assert.Contains(t, rec.Errors()[0], "expect([1]).toEqual([2])")
	assert.Contains(t, rec.Errors()[0], "diff (-expected +actual)")
}

func TestMatchers(t *testing.T) {
	names := Matchers()
	assert.Equal(t, "toBe", names[0])
	assert.Contains(t, names, "toHaveBeenLastCalledWith")

	for _, name := range names {
		m, found := LookupMatcher(name)
		require.True(t, found, name)
		assert.Equal(t, name, m.String())
	}

	m, found := LookupMatcher("toBeNil")
	assert.True(t, found)
	assert.Equal(t, ToBeNull, m)

	_, found = LookupMatcher("toBeAwesome")
	assert.False(t, found)
}
