package expect

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/abdul-hamid-achik/tst/packages/snapshot"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ErrUnresolvablePath is returned for matcher paths outside the capability set.
var ErrUnresolvablePath = errors.New("unresolvable matcher path")

// PathError reports the segment of a matcher path that could not be resolved.
type PathError struct {
	Path    grammar.Path
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %q has no %q", e.Err, e.Path.String(), e.Segment)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// TestingT is the subset of testing.TB the backend reports to.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

type tHelper interface {
	Helper()
}

type tNamer interface {
	Name() string
}

// Assertion is an expectation bound to one actual value.
type Assertion interface {
	// Run interprets path (leading "not" segments, then one matcher) and
	// runs it with args. The error is non-nil only for unresolvable paths.
	Run(path grammar.Path, args ...any) (bool, error)

	// Actual returns the value under test.
	Actual() any
}

// Backend creates expectations that report to a TestingT.
type Backend struct {
	t         TestingT
	logger    *zap.Logger
	snapshots *snapshot.Manager
	observers []func(Result)
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for matcher debug output.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithSnapshots enables toMatchSnapshot using m.
func WithSnapshots(m *snapshot.Manager) Option {
	return func(b *Backend) {
		b.snapshots = m
	}
}

// WithObserver registers fn to receive every matcher Result.
func WithObserver(fn func(Result)) Option {
	return func(b *Backend) {
		b.observers = append(b.observers, fn)
	}
}

// New creates a Backend reporting to t.
func New(t TestingT, opts ...Option) *Backend {
	b := &Backend{
		t:      t,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// That is shorthand for New(t).That(actual).
func That(t TestingT, actual any) *Expectation {
	return New(t).That(actual)
}

// That returns the expectation for actual.
func (b *Backend) That(actual any) *Expectation {
	return &Expectation{backend: b, actual: actual}
}

// Expect implements the backend contract used by evaluators and spies.
func (b *Backend) Expect(actual any) Assertion {
	return b.That(actual)
}

// Fatal reports err and stops the test.
func (b *Backend) Fatal(err error) {
	if h, ok := b.t.(tHelper); ok {
		h.Helper()
	}
	b.t.Errorf("%v", err)
	b.t.FailNow()
}

func (b *Backend) testName() string {
	if n, ok := b.t.(tNamer); ok {
		return n.Name()
	}
	return ""
}

func (b *Backend) publish(r Result) {
	for _, fn := range b.observers {
		fn(r)
	}
}

// Apply parses expr, resolves it against the assertion's actual value and
// runs it. fallback[0] is the comparison value used when expr carries no
// literal.
func Apply(a Assertion, expr string, fallback ...any) (bool, error) {
	parsed, err := grammar.ParseExpression(expr)
	if err != nil {
		return false, err
	}

	path := grammar.SplitPath(grammar.Resolve(parsed.Operator, a.Actual()))
	return a.Run(path, parsed.Args(fallback...)...)
}

// Expectation is the chainable assertion object for one actual value.
type Expectation struct {
	backend *Backend
	actual  any
	negated bool
}

// Not returns the negated expectation.
func (e *Expectation) Not() *Expectation {
	return &Expectation{backend: e.backend, actual: e.actual, negated: !e.negated}
}

// Actual returns the value under test.
func (e *Expectation) Actual() any {
	return e.actual
}

// Run implements Assertion.
func (e *Expectation) Run(path grammar.Path, args ...any) (bool, error) {
	negated := e.negated
	for i, segment := range path {
		last := i == len(path)-1
		if segment == "not" && !last {
			negated = !negated
			continue
		}
		if !last {
			return false, &PathError{Path: path, Segment: segment, Err: ErrUnresolvablePath}
		}

		m, ok := LookupMatcher(segment)
		if !ok {
			return false, &PathError{Path: path, Segment: segment, Err: ErrUnresolvablePath}
		}
		return e.check(m, negated, args), nil
	}
	return false, &PathError{Path: path, Err: ErrUnresolvablePath}
}

// Check runs a single matcher.
func (e *Expectation) Check(m Matcher, args ...any) bool {
	if h, ok := e.backend.t.(tHelper); ok {
		h.Helper()
	}
	return e.check(m, e.negated, args)
}

func (e *Expectation) check(m Matcher, negated bool, args []any) bool {
	if h, ok := e.backend.t.(tHelper); ok {
		h.Helper()
	}

	outcome := evaluate(e, m, args)
	passed := outcome.pass
	if negated {
		passed = !passed
	}
	if outcome.misuse != nil {
		passed = false
	}

	result := Result{
		Matcher:  m.String(),
		Negated:  negated,
		Expected: expectedOf(args),
		Actual:   e.actual,
		Passed:   passed,
	}
	if !passed {
		result.Message = failureMessage(m, negated, e.actual, args, outcome)
	}

	e.backend.logger.Debug("matcher",
		zap.String("matcher", result.Matcher),
		zap.Bool("negated", negated),
		zap.Bool("passed", passed),
	)
	e.backend.publish(result)

	if !passed {
		assert.Fail(e.backend.t, result.Message)
	}
	return passed
}

func expectedOf(args []any) any {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	default:
		return args
	}
}
