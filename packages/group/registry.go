package group

import (
	"sort"
	"sync"
	"testing"
)

// Runner registers body under name on t. Suite and test functions share
// this shape.
type Runner func(t *testing.T, name string, body func(t *testing.T)) bool

// Registry maps function names to runners.
type Registry struct {
	mu     sync.RWMutex
	suites map[string]Runner
	tests  map[string]Runner
}

// NewRegistry returns a registry with the built-in names: suites describe,
// context, suite and xdescribe; tests test, it, specify, xtest and xit. The
// x-prefixed variants register a skipped subtest.
func NewRegistry() *Registry {
	r := &Registry{
		suites: make(map[string]Runner),
		tests:  make(map[string]Runner),
	}
	for _, name := range []string{"describe", "context", "suite"} {
		r.suites[name] = run
	}
	for _, name := range []string{"test", "it", "specify"} {
		r.tests[name] = run
	}
	r.suites["xdescribe"] = skip
	r.tests["xtest"] = skip
	r.tests["xit"] = skip
	return r
}

func run(t *testing.T, name string, body func(t *testing.T)) bool {
	return t.Run(name, body)
}

func skip(t *testing.T, name string, _ func(t *testing.T)) bool {
	return t.Run(name, func(t *testing.T) {
		t.Skip("skipped")
	})
}

// RegisterSuite adds or replaces a suite function.
func (r *Registry) RegisterSuite(name string, fn Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites[name] = fn
}

// RegisterTest adds or replaces a test function.
func (r *Registry) RegisterTest(name string, fn Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[name] = fn
}

// Suite returns the suite function registered under name.
func (r *Registry) Suite(name string) (Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.suites[name]
	return fn, ok
}

// Test returns the test function registered under name.
func (r *Registry) Test(name string) (Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.tests[name]
	return fn, ok
}

// Names returns the registered suite and test names, sorted.
func (r *Registry) Names() (suites, tests []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.suites {
		suites = append(suites, name)
	}
	for name := range r.tests {
		tests = append(tests, name)
	}
	sort.Strings(suites)
	sort.Strings(tests)
	return suites, tests
}
