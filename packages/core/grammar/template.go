package grammar

import "strings"

// Template holds the literal parts of a tagged expression. Raw is the
// companion sequence that marks a real template; a Template without it is
// treated as an ordinary value.
type Template struct {
	Parts []string
	Raw   []string
}

// NewTemplate builds a Template whose Raw mirrors parts.
func NewTemplate(parts ...string) Template {
	raw := make([]string, len(parts))
	copy(raw, parts)
	return Template{Parts: parts, Raw: raw}
}

// Expression returns the first part with non-blank text.
func (t Template) Expression() string {
	for _, p := range t.Parts {
		if strings.TrimSpace(p) != "" {
			return p
		}
	}
	return ""
}

// IsTemplateCall reports whether args has the shape of a tagged call: a
// Template first, carrying a Raw sequence of the same length as its parts.
func IsTemplateCall(args []any) bool {
	_, ok := templateOf(args)
	return ok
}

// SplitTemplateCall returns the expression text and interpolated values of a
// tagged call. ok is false when args is not a template call.
func SplitTemplateCall(args []any) (expr string, values []any, ok bool) {
	tpl, ok := templateOf(args)
	if !ok {
		return "", nil, false
	}
	return tpl.Expression(), args[1:], true
}

func templateOf(args []any) (Template, bool) {
	if len(args) == 0 {
		return Template{}, false
	}

	var tpl Template
	switch v := args[0].(type) {
	case Template:
		tpl = v
	case *Template:
		if v == nil {
			return Template{}, false
		}
		tpl = *v
	default:
		return Template{}, false
	}

	if tpl.Raw == nil || len(tpl.Raw) != len(tpl.Parts) {
		return Template{}, false
	}
	return tpl, true
}
