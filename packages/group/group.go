package group

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

var (
	// ErrUnknownFunction is reported when a configured suite or test name
	// is not in the registry.
	ErrUnknownFunction = errors.New("unknown group function")
	// ErrUnknownHook is reported for before*/after* entries that are not
	// one of the four supported hooks.
	ErrUnknownHook = errors.New("unknown hook")
)

var hookPattern = regexp.MustCompile(`^(before|after)[^ ]*$`)

// Hook names.
const (
	BeforeAll  = "beforeAll"
	BeforeEach = "beforeEach"
	AfterEach  = "afterEach"
	AfterAll   = "afterAll"
)

// Entry is one named body of a suite.
type Entry struct {
	Name string
	Body func(t *testing.T)
}

// Tests is an ordered suite.
type Tests []Entry

// Map builds Tests from m with names in sorted order.
func Map(m map[string]func(t *testing.T)) Tests {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	tests := make(Tests, 0, len(names))
	for _, name := range names {
		tests = append(tests, Entry{Name: name, Body: m[name]})
	}
	return tests
}

// Config names the registry functions used by a Facade.
type Config struct {
	Suite      string `json:"suite" yaml:"suite"`
	Test       string `json:"test" yaml:"test"`
	OnlyPrefix string `json:"onlyPrefix" yaml:"onlyPrefix"`
}

// DefaultConfig returns describe, test and the "--" only prefix.
func DefaultConfig() Config {
	return Config{
		Suite:      "describe",
		Test:       "test",
		OnlyPrefix: "--",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Suite == "" {
		c.Suite = d.Suite
	}
	if c.Test == "" {
		c.Test = d.Test
	}
	if c.OnlyPrefix == "" {
		c.OnlyPrefix = d.OnlyPrefix
	}
	return c
}

// Facade registers suites through a Registry.
type Facade struct {
	cfg      Config
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger sets the logger used for registration debug output.
func WithLogger(l *zap.Logger) Option {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Facade. Empty Config fields take their defaults and a nil
// registry is replaced by NewRegistry().
func New(cfg Config, reg *Registry, opts ...Option) *Facade {
	if reg == nil {
		reg = NewRegistry()
	}
	f := &Facade{
		cfg:      cfg.withDefaults(),
		registry: reg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the effective configuration.
func (f *Facade) Config() Config {
	return f.cfg
}

// Registry returns the registry the facade looks functions up in.
func (f *Facade) Registry() *Registry {
	return f.registry
}

// Plan is a suite split into hooks and the entries that will run.
type Plan struct {
	BeforeAll  []func(t *testing.T)
	BeforeEach []func(t *testing.T)
	AfterEach  []func(t *testing.T)
	AfterAll   []func(t *testing.T)
	Tests      Tests
}

// IsHook reports whether name has the shape of a hook name.
func IsHook(name string) bool {
	return hookPattern.MatchString(name)
}

// Plan splits tests into hooks and runnable entries, applying the only
// prefix filter.
func (f *Facade) Plan(tests Tests) (*Plan, error) {
	p := &Plan{}
	var regular Tests

	for _, e := range tests {
		if !IsHook(e.Name) {
			regular = append(regular, e)
			continue
		}
		switch e.Name {
		case BeforeAll:
			p.BeforeAll = append(p.BeforeAll, e.Body)
		case BeforeEach:
			p.BeforeEach = append(p.BeforeEach, e.Body)
		case AfterEach:
			p.AfterEach = append(p.AfterEach, e.Body)
		case AfterAll:
			p.AfterAll = append(p.AfterAll, e.Body)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownHook, e.Name)
		}
	}

	var only Tests
	for _, e := range regular {
		if strings.HasPrefix(e.Name, f.cfg.OnlyPrefix) {
			only = append(only, e)
		}
	}
	if len(only) > 0 {
		p.Tests = only
	} else {
		p.Tests = regular
	}
	return p, nil
}

func (f *Facade) runners() (suite, test Runner, err error) {
	suite, ok := f.registry.Suite(f.cfg.Suite)
	if !ok {
		return nil, nil, fmt.Errorf("%w: suite %q", ErrUnknownFunction, f.cfg.Suite)
	}
	test, ok = f.registry.Test(f.cfg.Test)
	if !ok {
		return nil, nil, fmt.Errorf("%w: test %q", ErrUnknownFunction, f.cfg.Test)
	}
	return suite, test, nil
}

// TestGroup registers tests as a suite named after topic. topic is a
// string, a fmt.Stringer or a function, which contributes its name.
func (f *Facade) TestGroup(t *testing.T, topic any, tests Tests) bool {
	t.Helper()

	suite, test, err := f.runners()
	if err != nil {
		t.Fatalf("group: %v", err)
		return false
	}

	name := TopicName(topic)
	return suite(t, name, func(t *testing.T) {
		t.Helper()

		plan, err := f.Plan(tests)
		if err != nil {
			t.Fatalf("group %s: %v", name, err)
			return
		}

		f.logger.Debug("suite registered",
			zap.String("suite", name),
			zap.String("function", f.cfg.Suite),
			zap.Int("tests", len(plan.Tests)),
			zap.Int("skipped", len(tests)-len(plan.Tests)-plan.hooks()),
		)

		for _, hook := range plan.AfterAll {
			t.Cleanup(cleanup(t, hook))
		}
		for _, hook := range plan.BeforeAll {
			hook(t)
		}

		for _, e := range plan.Tests {
			test(t, e.Name, plan.wrap(e.Body))
		}
	})
}

func (p *Plan) hooks() int {
	return len(p.BeforeAll) + len(p.BeforeEach) + len(p.AfterEach) + len(p.AfterAll)
}

// wrap runs the each-hooks around body.
func (p *Plan) wrap(body func(t *testing.T)) func(t *testing.T) {
	if len(p.BeforeEach) == 0 && len(p.AfterEach) == 0 {
		return body
	}
	return func(t *testing.T) {
		for i := len(p.AfterEach) - 1; i >= 0; i-- {
			t.Cleanup(cleanup(t, p.AfterEach[i]))
		}
		for _, hook := range p.BeforeEach {
			hook(t)
		}
		if body != nil {
			body(t)
		}
	}
}

func cleanup(t *testing.T, hook func(t *testing.T)) func() {
	return func() {
		if hook != nil {
			hook(t)
		}
	}
}

// EntriesTest registers a single entry with the configured test function.
func (f *Facade) EntriesTest(t *testing.T, e Entry) bool {
	t.Helper()

	_, test, err := f.runners()
	if err != nil {
		t.Fatalf("group: %v", err)
		return false
	}
	return test(t, e.Name, e.Body)
}

// TopicName returns the suite name for topic.
func TopicName(topic any) string {
	switch v := topic.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	}

	rv := reflect.ValueOf(topic)
	if rv.Kind() == reflect.Func && !rv.IsNil() {
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return funcName(fn.Name())
		}
	}
	if t := reflect.TypeOf(topic); t.Name() != "" {
		return t.Name()
	}
	return fmt.Sprintf("%v", topic)
}

// funcName strips the package path and method value suffix from a runtime
// function name.
func funcName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Repeat calls fn times times with the iteration index.
func Repeat(times int, fn func(i int)) {
	for i := 0; i < times; i++ {
		fn(i)
	}
}

var (
	defaultMu     sync.Mutex
	defaultFacade = New(DefaultConfig(), NewRegistry())
)

// Configure replaces the configuration of the process-wide facade. The last
// call wins.
func Configure(cfg Config, opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFacade = New(cfg, defaultFacade.registry, opts...)
}

// Default returns the process-wide facade.
func Default() *Facade {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultFacade
}

// TestGroup registers a suite with the process-wide facade.
func TestGroup(t *testing.T, topic any, tests Tests) bool {
	t.Helper()
	return Default().TestGroup(t, topic, tests)
}

// EntriesTest registers one entry with the process-wide facade.
func EntriesTest(t *testing.T, e Entry) bool {
	t.Helper()
	return Default().EntriesTest(t, e)
}
