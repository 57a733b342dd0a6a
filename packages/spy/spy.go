package spy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/abdul-hamid-achik/tst/packages/expect"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrArguments is reported when call arguments do not fit the wrapped
// function's signature.
var ErrArguments = errors.New("arguments do not match function signature")

// ErrNoCall is reported when a template is dispatched before any call.
var ErrNoCall = errors.New("spy has not been called")

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Backend creates assertions and reports programmer errors.
// *expect.Backend implements it.
type Backend interface {
	Expect(actual any) expect.Assertion
	Fatal(err error)
}

// Spy records every call made through it.
type Spy struct {
	id      string
	backend Backend
	logger  *zap.Logger
	fn      reflect.Value
	calls   [][]any
	history []any
	last    *Subject
}

// Option configures a Spy.
type Option func(*Spy)

// WithLogger sets the logger used for call debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Spy) {
		if l != nil {
			s.logger = l
		}
	}
}

// Wrap returns a Spy around fn. It panics if fn is not a function.
func Wrap(b Backend, fn any, opts ...Option) *Spy {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("spy: cannot wrap %T, want a non-nil func", fn))
	}

	s := &Spy{
		id:      uuid.NewString(),
		backend: b,
		logger:  zap.NewNop(),
		fn:      v,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the identifier used in log output.
func (s *Spy) ID() string {
	return s.id
}

// Call records args, calls the wrapped function and captures its outcome.
func (s *Spy) Call(args ...any) *Subject {
	s.record(args)

	subject := &Subject{spy: s}
	in, err := s.prepare(args)
	if err != nil {
		subject.capture(err)
	} else {
		subject.invoke(s.fn, in)
	}

	subject.assertion = s.backend.Expect(subject.value)
	s.history = append(s.history, subject.value)
	s.last = subject

	s.logger.Debug("spy call",
		zap.String("spy", s.id),
		zap.Int("call", len(s.calls)),
		zap.Bool("threw", subject.threw),
	)
	return subject
}

// Invoke records args and calls the wrapped function directly. Results are
// returned unchanged and panics propagate.
func (s *Spy) Invoke(args ...any) []any {
	s.record(args)

	in, err := s.prepare(args)
	if err != nil {
		panic(err)
	}
	return interfaces(s.fn.Call(in))
}

// Dispatch is the single entry point for both call shapes. A template
// call (see grammar.IsTemplateCall) asserts against the latest call's
// Subject; any other argument list is passed to Call.
func (s *Spy) Dispatch(args ...any) *Subject {
	expr, values, ok := grammar.SplitTemplateCall(args)
	if !ok {
		return s.Call(args...)
	}

	if s.last == nil {
		s.backend.Fatal(fmt.Errorf("spy %s: %w", s.id, ErrNoCall))
		return &Subject{spy: s, value: grammar.Undefined, assertion: s.backend.Expect(grammar.Undefined)}
	}
	return s.last.Assert(expr, values...)
}

// Assert runs expr against the spy itself, which makes the call matchers
// such as toHaveBeenCalledWith available.
func (s *Spy) Assert(expr string, values ...any) *Spy {
	if _, err := expect.Apply(s.backend.Expect(s), expr, values...); err != nil {
		s.backend.Fatal(fmt.Errorf("spy %s: %w", s.id, err))
	}
	return s
}

// Calls returns a copy of the recorded argument lists.
func (s *Spy) Calls() [][]any {
	out := make([][]any, len(s.calls))
	for i, call := range s.calls {
		out[i] = append([]any{}, call...)
	}
	return out
}

// Called is an alias of Calls.
func (s *Spy) Called() [][]any {
	return s.Calls()
}

// ClearCalled forgets the recorded calls. History is kept.
func (s *Spy) ClearCalled() {
	s.calls = nil
}

// History returns the value of every Subject produced by Call, in order.
func (s *Spy) History() []any {
	return append([]any{}, s.history...)
}

func (s *Spy) record(args []any) {
	s.calls = append(s.calls, append([]any{}, args...))
}

// prepare converts args to the wrapped function's parameter types. nil
// becomes the zero value and convertible values are converted.
func (s *Spy) prepare(args []any) ([]reflect.Value, error) {
	t := s.fn.Type()
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("%w: %s takes at least %d, got %d", ErrArguments, t, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArguments, t, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i, fixed)
		v, err := convert(a, pt)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrArguments, i, err)
		}
		in[i] = v
	}
	return in, nil
}

func paramType(t reflect.Type, i, fixed int) reflect.Type {
	if t.IsVariadic() && i >= fixed {
		return t.In(fixed).Elem()
	}
	return t.In(i)
}

func convert(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(pt), nil
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(pt) {
		return v, nil
	}
	if pt.Kind() == reflect.String && v.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", a, pt)
	}
	if v.Type().ConvertibleTo(pt) {
		return v.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", a, pt)
}

func interfaces(out []reflect.Value) []any {
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results
}
