package env

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/abdul-hamid-achik/tst/packages/builtin"
	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"go.uber.org/zap"
)

// ErrUnresolved is returned for a placeholder that names nothing known.
var ErrUnresolved = errors.New("unresolved placeholder")

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Resolver looks up placeholders. It is safe for concurrent use.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]any
	funcs     *builtin.Registry
	lookupEnv func(string) (string, bool)
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for unresolved placeholder warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFuncs replaces the builtin function registry.
func WithFuncs(funcs *builtin.Registry) Option {
	return func(r *Resolver) {
		if funcs != nil {
			r.funcs = funcs
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		variables: make(map[string]any),
		funcs:     builtin.NewRegistry(),
		lookupEnv: os.LookupEnv,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) SetVariables(vars map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range vars {
		r.variables[k] = v
	}
}

func (r *Resolver) GetVariable(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variables[name]
	return v, ok
}

// Lookup returns the value of a single placeholder body such as "id",
// "$HOME" or "random(1, 6)".
func (r *Resolver) Lookup(expr string) (any, error) {
	expr = strings.TrimSpace(expr)

	if name, ok := strings.CutPrefix(expr, "$"); ok {
		if val, found := r.lookupEnv(name); found {
			return val, nil
		}
		return nil, fmt.Errorf("%w: environment variable $%s", ErrUnresolved, name)
	}

	if builtin.IsCall(expr) {
		val, ok, err := r.funcs.Call(expr)
		if err != nil {
			return nil, err
		}
		if ok {
			return val, nil
		}
		return nil, fmt.Errorf("%w: function %s", ErrUnresolved, expr)
	}

	if val, ok := r.GetVariable(expr); ok {
		return val, nil
	}
	return nil, fmt.Errorf("%w: variable %s", ErrUnresolved, expr)
}

// Resolve splices every placeholder into input as text. Placeholders that
// cannot be resolved are left in place and logged.
func (r *Resolver) Resolve(input string) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		val, err := r.Lookup(match[2 : len(match)-2])
		if err != nil {
			r.logger.Warn("placeholder left unresolved",
				zap.String("placeholder", match),
				zap.Error(err),
			)
			return match
		}
		return format(val)
	})
}

// Template splits input at its placeholders into a tagged call: the text
// around them becomes the template parts and the resolved values follow
// in order. Input without placeholders yields a single part and no values.
func (r *Resolver) Template(input string) (grammar.Template, []any, error) {
	locs := placeholderPattern.FindAllStringSubmatchIndex(input, -1)

	parts := make([]string, 0, len(locs)+1)
	values := make([]any, 0, len(locs))
	last := 0
	for _, loc := range locs {
		val, err := r.Lookup(input[loc[2]:loc[3]])
		if err != nil {
			return grammar.Template{}, nil, err
		}
		parts = append(parts, input[last:loc[0]])
		values = append(values, val)
		last = loc[1]
	}
	parts = append(parts, input[last:])

	return grammar.NewTemplate(parts...), values, nil
}

func format(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any, []any:
		if b, err := json.Marshal(val); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
