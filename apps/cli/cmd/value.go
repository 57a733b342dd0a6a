package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/tidwall/gjson"
)

// parseValue decodes a --value flag. An empty flag is undefined and
// anything that is not JSON is taken as a bare string.
func parseValue(raw string, set bool) any {
	if !set {
		return grammar.Undefined
	}
	if raw == "" {
		return ""
	}
	return grammar.ParseLiteral(raw)
}

// parseStrictValue is parseValue for --strict: the flag must be JSON.
func parseStrictValue(raw string) (any, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("--value is not valid JSON: %q", raw)
	}
	return gjson.Parse(raw).Value(), nil
}
