package group

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type topic struct{}

func (topic) String() string { return "stringer topic" }

type widget struct{}

func (widget) Render() {}

func TestTopicName(t *testing.T) {
	tests := []struct {
		name  string
		topic any
		want  string
	}{
		{"string", "cart", "cart"},
		{"stringer", topic{}, "stringer topic"},
		{"function", TestTopicName, "TestTopicName"},
		{"package function", Repeat, "Repeat"},
		{"method value", widget{}.Render, "Render"},
		{"named type", widget{}, "widget"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicName(tt.topic))
		})
	}
}

func TestMap(t *testing.T) {
	body := func(t *testing.T) {}
	tests := Map(map[string]func(t *testing.T){
		"b": body,
		"a": body,
		"c": body,
	})

	var names []string
	for _, e := range tests {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestIsHook(t *testing.T) {
	assert.True(t, IsHook("beforeAll"))
	assert.True(t, IsHook("afterEverything"))
	assert.True(t, IsHook("before"))
	assert.False(t, IsHook("before all tests"))
	assert.False(t, IsHook("setup"))
}

func TestFacade_Plan(t *testing.T) {
	body := func(t *testing.T) {}
	f := New(DefaultConfig(), nil)

	t.Run("hooks are separated", func(t *testing.T) {
		plan, err := f.Plan(Tests{
			{Name: "beforeAll", Body: body},
			{Name: "beforeEach", Body: body},
			{Name: "first", Body: body},
			{Name: "afterEach", Body: body},
			{Name: "afterAll", Body: body},
			{Name: "before anything else", Body: body},
		})
		require.NoError(t, err)

		assert.Len(t, plan.BeforeAll, 1)
		assert.Len(t, plan.BeforeEach, 1)
		assert.Len(t, plan.AfterEach, 1)
		assert.Len(t, plan.AfterAll, 1)
		require.Len(t, plan.Tests, 2)
		assert.Equal(t, "first", plan.Tests[0].Name)
		assert.Equal(t, "before anything else", plan.Tests[1].Name)
	})

	t.Run("only prefix filters", func(t *testing.T) {
		plan, err := f.Plan(Tests{
			{Name: "a", Body: body},
			{Name: "--b", Body: body},
			{Name: "c", Body: body},
			{Name: "--d", Body: body},
		})
		require.NoError(t, err)
		require.Len(t, plan.Tests, 2)
		assert.Equal(t, "--b", plan.Tests[0].Name)
		assert.Equal(t, "--d", plan.Tests[1].Name)
	})

	t.Run("custom only prefix", func(t *testing.T) {
		plan, err := New(Config{OnlyPrefix: "only:"}, nil).Plan(Tests{
			{Name: "--a", Body: body},
			{Name: "only:b", Body: body},
		})
		require.NoError(t, err)
		require.Len(t, plan.Tests, 1)
		assert.Equal(t, "only:b", plan.Tests[0].Name)
	})

	t.Run("unknown hook", func(t *testing.T) {
		_, err := f.Plan(Tests{{Name: "beforeSomething", Body: body}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownHook))
		assert.Contains(t, err.Error(), "beforeSomething")
	})
}

func TestFacade_TestGroupRunsHooksInOrder(t *testing.T) {
	var events []string
	record := func(event string) func(t *testing.T) {
		return func(t *testing.T) { events = append(events, event) }
	}

	New(DefaultConfig(), nil).TestGroup(t, "ordering", Tests{
		{Name: "afterAll", Body: record("afterAll")},
		{Name: "beforeAll", Body: record("beforeAll")},
		{Name: "afterEach", Body: record("afterEach")},
		{Name: "beforeEach", Body: record("beforeEach")},
		{Name: "first", Body: record("first")},
		{Name: "second", Body: record("second")},
	})

	assert.Equal(t, []string{
		"beforeAll",
		"beforeEach", "first", "afterEach",
		"beforeEach", "second", "afterEach",
		"afterAll",
	}, events)
}

func TestFacade_TestGroupOnly(t *testing.T) {
	var ran []string
	body := func(name string) func(t *testing.T) {
		return func(t *testing.T) { ran = append(ran, name) }
	}

	New(DefaultConfig(), nil).TestGroup(t, TestFacade_TestGroupOnly, Tests{
		{Name: "skipped", Body: body("skipped")},
		{Name: "--focused", Body: body("focused")},
	})

	assert.Equal(t, []string{"focused"}, ran)
}

func TestFacade_SkippedVariants(t *testing.T) {
	ran := false
	body := func(t *testing.T) { ran = true }

	New(Config{Suite: "xdescribe"}, nil).TestGroup(t, "skipped suite", Tests{{Name: "a", Body: body}})
	assert.False(t, ran)

	New(Config{Suite: "context", Test: "xit"}, nil).TestGroup(t, "skipped tests", Tests{{Name: "a", Body: body}})
	assert.False(t, ran)

	New(Config{Suite: "suite", Test: "specify"}, nil).EntriesTest(t, Entry{Name: "runs", Body: body})
	assert.True(t, ran)
}

func TestFacade_CustomRegistry(t *testing.T) {
	var registered []string
	reg := NewRegistry()
	reg.RegisterSuite("inline", func(t *testing.T, name string, body func(t *testing.T)) bool {
		registered = append(registered, "suite:"+name)
		body(t)
		return true
	})
	reg.RegisterTest("inline", func(t *testing.T, name string, body func(t *testing.T)) bool {
		registered = append(registered, "test:"+name)
		body(t)
		return true
	})

	calls := 0
	f := New(Config{Suite: "inline", Test: "inline"}, reg)
	f.TestGroup(t, "custom", Tests{
		{Name: "one", Body: func(t *testing.T) { calls++ }},
		{Name: "two", Body: func(t *testing.T) { calls++ }},
	})

	assert.Equal(t, []string{"suite:custom", "test:one", "test:two"}, registered)
	assert.Equal(t, 2, calls)

	suites, tests := reg.Names()
	assert.Contains(t, suites, "inline")
	assert.Contains(t, tests, "inline")
	assert.Contains(t, tests, "xit")
}

func TestFacade_UnknownFunctions(t *testing.T) {
	_, _, err := New(Config{Suite: "nope"}, nil).runners()
	assert.True(t, errors.Is(err, ErrUnknownFunction))

	_, _, err = New(Config{Test: "nope"}, nil).runners()
	assert.True(t, errors.Is(err, ErrUnknownFunction))
	assert.Contains(t, err.Error(), `test "nope"`)
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(DefaultConfig()) })

	Configure(Config{Suite: "context", Test: "it"})
	assert.Equal(t, Config{Suite: "context", Test: "it", OnlyPrefix: "--"}, Default().Config())

	var ran []string
	TestGroup(t, "configured", Tests{
		{Name: "a", Body: func(t *testing.T) { ran = append(ran, t.Name()) }},
	})
	EntriesTest(t, Entry{Name: "b", Body: func(t *testing.T) { ran = append(ran, t.Name()) }})

	assert.Equal(t, []string{"TestConfigure/configured/a", "TestConfigure/b"}, ran)
}

func TestRepeat(t *testing.T) {
	var got []int
	Repeat(3, func(i int) { got = append(got, i) })
	assert.Equal(t, []int{0, 1, 2}, got)

	Repeat(0, func(i int) { t.Fatal("not called") })
}

func TestFacade_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	body := func(t *testing.T) {}

	New(DefaultConfig(), nil, WithLogger(zap.New(core))).TestGroup(t, "logged", Tests{
		{Name: "beforeEach", Body: body},
		{Name: "a", Body: body},
		{Name: "--b", Body: body},
	})

	entries := logs.FilterMessage("suite registered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "logged", fields["suite"])
	assert.Equal(t, int64(1), fields["tests"])
	assert.Equal(t, int64(1), fields["skipped"])
}
