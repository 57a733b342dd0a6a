package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{"number", "1", float64(1)},
		{"negative float", "-2.5", -2.5},
		{"true", "true", true},
		{"false", "false", false},
		{"null", "null", nil},
		{"quoted string", `"abc"`, "abc"},
		{"bare word", "abc", "abc"},
		{"bare words with spaces", "hello world", "hello world"},
		{"array", "[1, 2]", []any{float64(1), float64(2)}},
		{"object", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"broken json", `{"a": }`, `{"a": }`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLiteral(tt.input))
		})
	}
}

func TestParseLiteral_Undefined(t *testing.T) {
	assert.True(t, IsUndefined(ParseLiteral("undefined")))
	assert.True(t, IsUndefined(ParseLiteral("undefined-ish text containing undefined")))
	assert.False(t, IsUndefined(ParseLiteral("null")))
}

func TestParseLiteral_PassesResolvedValuesThrough(t *testing.T) {
	m := map[string]int{"a": 1}
	assert.Equal(t, m, ParseLiteral(m))
	assert.Equal(t, 7, ParseLiteral(7))
	assert.Equal(t, false, ParseLiteral(false))
	assert.Nil(t, ParseLiteral(nil))
}
