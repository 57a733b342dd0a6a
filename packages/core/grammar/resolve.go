package grammar

import "strings"

var shorthand = map[string]string{
	"==":  "toBe",
	"===": "toEqual",
	"!=":  "not.toBe",
	"!==": "not.toEqual",
}

// Resolve maps an operator token to a dotted matcher path. The arrow forms
// depend on sample: primitives use toBe, everything else toEqual. Tokens
// without a shorthand are returned unchanged.
func Resolve(token string, sample any) string {
	switch token {
	case "->":
		if IsPrimitive(sample) {
			return "toBe"
		}
		return "toEqual"
	case "!->", "!-":
		if IsPrimitive(sample) {
			return "not.toBe"
		}
		return "not.toEqual"
	}

	if path, ok := shorthand[token]; ok {
		return path
	}
	return token
}

// Path is a resolved operator split into its segments.
type Path []string

// SplitPath splits a dotted matcher path.
func SplitPath(dotted string) Path {
	return Path(strings.Split(dotted, "."))
}

func (p Path) String() string {
	return strings.Join(p, ".")
}
