package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeVariables(t *testing.T) {
	got := MergeVariables(
		map[string]any{"a": 1, "b": 1},
		nil,
		map[string]any{"b": 2, "c": 2},
	)
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 2}, got)
}

func TestLoadSystemEnv(t *testing.T) {
	t.Setenv("TST_VAR_EXPECTED", "42")
	t.Setenv("TST_VAR_", "ignored")

	got := LoadSystemEnv(VarPrefix)
	assert.Equal(t, "42", got["EXPECTED"])
	assert.NotContains(t, got, "")

	all := LoadSystemEnv("")
	assert.Equal(t, "42", all["TST_VAR_EXPECTED"])
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"a=1", "json={\"x\": 1}", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "json": `{"x": 1}`, "empty": ""}, got)

	_, err = ParseAssignments([]string{"novalue"})
	assert.ErrorContains(t, err, "expected name=value")

	_, err = ParseAssignments([]string{"=1"})
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "1"}, Strings(map[string]string{"a": "1"}))
}
