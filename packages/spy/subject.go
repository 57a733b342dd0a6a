package spy

import (
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/abdul-hamid-achik/tst/packages/expect"
)

// Subject is the outcome of one Call and the assertion bound to it.
type Subject struct {
	spy       *Spy
	value     any
	results   []any
	recovered any
	threw     bool
	assertion expect.Assertion
}

func (s *Subject) invoke(fn reflect.Value, in []reflect.Value) {
	defer func() {
		if r := recover(); r != nil {
			s.capture(r)
		}
	}()

	s.results = interfaces(fn.Call(in))

	values := s.results
	if t := fn.Type(); t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType {
		values = values[:len(values)-1]
		if err := s.results[len(s.results)-1]; err != nil {
			s.capture(err)
			return
		}
	}

	switch len(values) {
	case 0:
		s.value = nil
	case 1:
		s.value = values[0]
	default:
		s.value = values
	}
}

// capture replaces the value with a function that panics with caught.
func (s *Subject) capture(caught any) {
	s.recovered = caught
	s.threw = true
	s.value = func() { panic(caught) }
}

// Expectation returns the backend assertion for the call's value, for use
// with expect.Apply or Run directly.
func (s *Subject) Expectation() expect.Assertion {
	return s.assertion
}

// Assert runs expr against the call's value.
func (s *Subject) Assert(expr string, values ...any) *Subject {
	if _, err := expect.Apply(s.assertion, expr, values...); err != nil {
		s.spy.backend.Fatal(fmt.Errorf("spy %s: %w", s.spy.id, err))
	}
	return s
}

// Tag runs the expression held by tpl with its interpolated values.
func (s *Subject) Tag(tpl grammar.Template, values ...any) *Subject {
	return s.Assert(tpl.Expression(), values...)
}

// Value returns the call's value: the single non-error result, a []any of
// several, nil for none, or the panicking function after a failure.
func (s *Subject) Value() any {
	return s.value
}

// Results returns every result the function returned, including a trailing
// error. It is nil when the call panicked.
func (s *Subject) Results() []any {
	return s.results
}

// Recovered returns what the call panicked with or the error it returned.
func (s *Subject) Recovered() (any, bool) {
	return s.recovered, s.threw
}
