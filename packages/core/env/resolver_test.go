package env

import (
	"testing"

	"github.com/abdul-hamid-achik/tst/packages/builtin"
	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestResolver(vars map[string]any, environ map[string]string) *Resolver {
	r := NewResolver()
	r.SetVariables(vars)
	r.lookupEnv = func(name string) (string, bool) {
		v, ok := environ[name]
		return v, ok
	}
	return r
}

func TestResolverLookup(t *testing.T) {
	r := newTestResolver(
		map[string]any{"id": 7, "name": "ann"},
		map[string]string{"HOME": "/home/ann"},
	)

	tests := []struct {
		expr    string
		want    any
		wantErr bool
	}{
		{expr: "id", want: 7},
		{expr: " name ", want: "ann"},
		{expr: "$HOME", want: "/home/ann"},
		{expr: "upper(x)", want: "X"},
		{expr: "missing", wantErr: true},
		{expr: "$MISSING", wantErr: true},
		{expr: "nope()", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Lookup(tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnresolved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverLookupFunctionError(t *testing.T) {
	r := NewResolver()

	_, err := r.Lookup("random(a, b)")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnresolved)
}

func TestResolverResolve(t *testing.T) {
	r := newTestResolver(map[string]any{
		"id":   7,
		"tags": []any{"a", "b"},
		"user": map[string]any{"name": "ann"},
	}, nil)

	tests := []struct {
		input string
		want  string
	}{
		{"no placeholders", "no placeholders"},
		{`{"id": {{id}}}`, `{"id": 7}`},
		{"{{tags}}", `["a","b"]`},
		{"{{user}}", `{"name":"ann"}`},
		{"{{ id }} and {{missing}}", "7 and {{missing}}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.input))
		})
	}
}

func TestResolverTemplate(t *testing.T) {
	r := newTestResolver(map[string]any{"expected": `{"a": 1}`, "n": 3}, nil)

	tpl, values, err := r.Template("-> {{expected}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"-> ", ""}, tpl.Parts)
	assert.Equal(t, []any{`{"a": 1}`}, values)
	assert.True(t, grammar.IsTemplateCall(append([]any{tpl}, values...)))
	assert.Equal(t, "-> ", tpl.Expression())

	tpl, values, err = r.Template("toHaveLength {{n}} {{n}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"toHaveLength ", " ", ""}, tpl.Parts)
	assert.Equal(t, []any{3, 3}, values)

	tpl, values, err = r.Template("toBeTruthy")
	require.NoError(t, err)
	assert.Equal(t, []string{"toBeTruthy"}, tpl.Parts)
	assert.Empty(t, values)

	_, _, err = r.Template("-> {{missing}}")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolverWarnsOnUnresolved(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewResolver(WithLogger(zap.New(core)))

	r.Resolve("{{missing}}")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "placeholder left unresolved", entry.Message)
	assert.Equal(t, "{{missing}}", entry.ContextMap()["placeholder"])
}

func TestResolverWithFuncs(t *testing.T) {
	funcs := builtin.NewRegistry()
	funcs.Register("answer", func(_ []string) (any, error) { return 42, nil })
	r := NewResolver(WithFuncs(funcs))

	v, err := r.Lookup("answer()")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
