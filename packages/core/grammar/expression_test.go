package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		operator   string
		literal    string
		hasLiteral bool
	}{
		{"arrow with literal", "-> 1", "->", "1", true},
		{"surrounding whitespace", "  -> 1  ", "->", "1", true},
		{"operator only", "toThrow", "toThrow", "", false},
		{"dotted path", "not.toEqual 2", "not.toEqual", "2", true},
		{"multi word literal", "toBe hello   world", "toBe", "hello   world", true},
		{"multiline literal", "=== {\n\"a\": 1\n}", "===", "{\n\"a\": 1\n}", true},
		{"trailing space only", "-> ", "->", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseExpression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.operator, expr.Operator)
			assert.Equal(t, tt.literal, expr.Literal)
			assert.Equal(t, tt.hasLiteral, expr.HasLiteral)
		})
	}
}

func TestParseExpression_Malformed(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseExpression(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedExpression))

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Error(), "expected an operator")
	}
}

func TestExpression_Args(t *testing.T) {
	expr, err := ParseExpression("-> 1")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1)}, expr.Args("ignored"))

	expr, err = ParseExpression("->")
	require.NoError(t, err)
	assert.Equal(t, []any{42}, expr.Args(42))
	assert.Equal(t, []any{nil}, expr.Args(nil))
	assert.Nil(t, expr.Args())

	expr, err = ParseExpression("toBe undefined")
	require.NoError(t, err)
	assert.Nil(t, expr.Args())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		token    string
		sample   any
		expected string
	}{
		{"==", 1, "toBe"},
		{"===", 1, "toEqual"},
		{"!=", 1, "not.toBe"},
		{"!==", 1, "not.toEqual"},
		{"->", 1, "toBe"},
		{"->", "a", "toBe"},
		{"->", nil, "toBe"},
		{"->", []int{1}, "toEqual"},
		{"->", map[string]any{}, "toEqual"},
		{"!->", true, "not.toBe"},
		{"!->", struct{}{}, "not.toEqual"},
		{"!-", 2, "not.toBe"},
		{"!-", []any{}, "not.toEqual"},
		{"toThrow", nil, "toThrow"},
		{"not.toContain", "abc", "not.toContain"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.token, tt.sample))
		})
	}
}

func TestResolve_ArrowFollowsPrimitiveness(t *testing.T) {
	values := []any{nil, 0, 1.5, "", "x", true, []any{}, map[string]int{}, struct{}{}, &struct{}{}, func() {}}
	for _, v := range values {
		want := "toEqual"
		if IsPrimitive(v) {
			want = "toBe"
		}
		assert.Equal(t, want, Resolve("->", v), "value %#v", v)
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, Path{"not", "toEqual"}, SplitPath("not.toEqual"))
	assert.Equal(t, Path{"toBe"}, SplitPath("toBe"))
	assert.Equal(t, "not.toBe", SplitPath("not.toBe").String())
}
