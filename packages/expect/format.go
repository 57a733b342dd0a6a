package expect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case string:
		return truncate(fmt.Sprintf("%q", val), maxLen)
	case []any:
		if len(val) > 10 {
			return fmt.Sprintf("[array with %d items]", len(val))
		}
	case map[string]any:
		if len(val) > 10 {
			return fmt.Sprintf("{object with %d keys}", len(val))
		}
	}
	if isFunc(v) {
		return fmt.Sprintf("[%T]", v)
	}
	return truncate(fmt.Sprintf("%v", v), maxLen)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

func isFunc(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Func
}

func failureMessage(m Matcher, negated bool, actual any, args []any, o outcome) string {
	formatted := make([]string, len(args))
	for i, a := range args {
		formatted[i] = formatValue(a, 100)
	}

	name := m.String()
	if negated {
		name = "not." + name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "expect(%s).%s(%s)", formatValue(actual, 100), name, strings.Join(formatted, ", "))
	if o.misuse != nil {
		fmt.Fprintf(&b, "\n%v", o.misuse)
	} else if o.detail != "" {
		fmt.Fprintf(&b, "\n%s", o.detail)
	}
	return b.String()
}

// diff renders a cmp diff of the two values, or nothing when cmp cannot
// handle them (unexported fields, for example).
func diff(expected, actual any) (d string) {
	defer func() {
		if recover() != nil {
			d = ""
		}
	}()
	out := cmp.Diff(expected, actual)
	if out == "" {
		return ""
	}
	return "diff (-expected +actual):\n" + out
}
