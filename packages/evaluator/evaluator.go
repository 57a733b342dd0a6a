package evaluator

import (
	"fmt"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/abdul-hamid-achik/tst/packages/expect"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend creates assertions for captured values and reports programmer
// errors such as malformed expressions. *expect.Backend implements it.
type Backend interface {
	Expect(actual any) expect.Assertion
	Fatal(err error)
}

// Producer computes the value of a round. prev is the override passed to
// Round, or the previously captured value when there is none.
type Producer func(prev any) any

// Evaluator captures values round by round and keeps their history.
type Evaluator struct {
	id       string
	backend  Backend
	logger   *zap.Logger
	static   any
	producer Producer
	history  []any
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for round debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Evaluator. initial is either a static value or a producer:
// a Producer, func(any) any or func() any. Producers are invoked again on
// every round.
func New(b Backend, initial any, opts ...Option) *Evaluator {
	e := &Evaluator{
		id:      uuid.NewString(),
		backend: b,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.set(initial)
	return e
}

// ID returns the identifier used in log output.
func (e *Evaluator) ID() string {
	return e.id
}

func (e *Evaluator) set(v any) {
	if p, ok := asProducer(v); ok {
		e.producer = p
		e.static = nil
		return
	}
	e.producer = nil
	e.static = v
}

func asProducer(v any) (Producer, bool) {
	switch p := v.(type) {
	case Producer:
		return p, p != nil
	case func(any) any:
		return p, p != nil
	case func() any:
		if p == nil {
			return nil, false
		}
		return func(any) any { return p() }, true
	}
	return nil, false
}

// Round captures the value of one round and appends it to the history.
//
// With a producer the value is producer(override[0]), or producer(previous
// value) without an override. With a static value the override replaces the
// default for this round only.
func (e *Evaluator) Round(override ...any) *Round {
	var value any
	switch {
	case e.producer != nil:
		input := e.last()
		if len(override) > 0 {
			input = override[0]
		}
		value = e.producer(input)
	case len(override) > 0:
		value = override[0]
	default:
		value = e.static
	}

	e.history = append(e.history, value)
	e.logger.Debug("round captured",
		zap.String("evaluator", e.id),
		zap.Int("round", len(e.history)),
		zap.String("kind", grammar.KindName(value)),
	)

	return &Round{
		evaluator: e,
		index:     len(e.history) - 1,
		value:     value,
		assertion: e.backend.Expect(value),
	}
}

func (e *Evaluator) last() any {
	if len(e.history) == 0 {
		return nil
	}
	return e.history[len(e.history)-1]
}

// Trigger calls fn immediately, typically to mutate state observed by the
// next round.
func (e *Evaluator) Trigger(fn func()) *Evaluator {
	if fn != nil {
		fn()
	}
	return e
}

// Reassign replaces the value or producer used by subsequent rounds. It
// accepts the same forms as New.
func (e *Evaluator) Reassign(v any) *Evaluator {
	e.set(v)
	e.logger.Debug("evaluator reassigned",
		zap.String("evaluator", e.id),
		zap.Bool("producer", e.producer != nil),
	)
	return e
}

// Value returns a copy of every captured value in round order.
func (e *Evaluator) Value() []any {
	return append([]any{}, e.history...)
}

// Len returns the number of rounds run so far.
func (e *Evaluator) Len() int {
	return len(e.history)
}

// Round is one captured value and the assertion bound to it.
type Round struct {
	evaluator *Evaluator
	index     int
	value     any
	assertion expect.Assertion
}

// Assert runs expr against the captured value. values[0], if given, is the
// comparison value used when expr has no literal. A malformed expression or
// an unknown matcher is reported through the backend's Fatal.
func (r *Round) Assert(expr string, values ...any) *Round {
	passed, err := expect.Apply(r.assertion, expr, values...)
	if err != nil {
		r.evaluator.backend.Fatal(fmt.Errorf("round %d: %w", r.index+1, err))
		return r
	}

	r.evaluator.logger.Debug("assertion",
		zap.String("evaluator", r.evaluator.id),
		zap.Int("round", r.index+1),
		zap.String("expression", expr),
		zap.Bool("passed", passed),
	)
	return r
}

// Tag runs the expression held by tpl with its interpolated values.
func (r *Round) Tag(tpl grammar.Template, values ...any) *Round {
	return r.Assert(tpl.Expression(), values...)
}

// Dispatch runs a template call built by grammar.NewTemplate. Arguments
// that do not form a template call are reported through Fatal.
func (r *Round) Dispatch(args ...any) *Round {
	expr, values, ok := grammar.SplitTemplateCall(args)
	if !ok {
		r.evaluator.backend.Fatal(fmt.Errorf("round %d: %w: not a template call", r.index+1, grammar.ErrMalformedExpression))
		return r
	}
	return r.Assert(expr, values...)
}

// Value returns the captured value.
func (r *Round) Value() any {
	return r.value
}

// Assertion returns the backend assertion bound to the captured value.
func (r *Round) Assertion() expect.Assertion {
	return r.assertion
}

// Next starts a new round on the same evaluator.
func (r *Round) Next(override ...any) *Round {
	return r.evaluator.Round(override...)
}

// Evaluator returns the evaluator that produced r.
func (r *Round) Evaluator() *Evaluator {
	return r.evaluator
}
