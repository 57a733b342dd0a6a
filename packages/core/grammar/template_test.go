package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTemplateCall(t *testing.T) {
	tpl := NewTemplate("", " -> 1")

	tests := []struct {
		name     string
		args     []any
		expected bool
	}{
		{"template", []any{tpl}, true},
		{"template pointer", []any{&tpl}, true},
		{"template with values", []any{tpl, 1, 2}, true},
		{"no args", nil, false},
		{"plain strings", []any{[]string{"-> 1"}}, false},
		{"missing raw", []any{Template{Parts: []string{"-> 1"}}}, false},
		{"raw length mismatch", []any{Template{Parts: []string{"a", "b"}, Raw: []string{"a"}}}, false},
		{"nil template pointer", []any{(*Template)(nil)}, false},
		{"template not first", []any{1, tpl}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTemplateCall(tt.args))
		})
	}
}

func TestSplitTemplateCall(t *testing.T) {
	expr, values, ok := SplitTemplateCall([]any{NewTemplate("", " -> 1")})
	assert.True(t, ok)
	assert.Equal(t, " -> 1", expr)
	assert.Empty(t, values)

	expr, values, ok = SplitTemplateCall([]any{NewTemplate("-> ", ""), 5})
	assert.True(t, ok)
	assert.Equal(t, "-> ", expr)
	assert.Equal(t, []any{5}, values)

	_, _, ok = SplitTemplateCall([]any{"-> 1"})
	assert.False(t, ok)
}
