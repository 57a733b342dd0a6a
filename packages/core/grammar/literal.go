package grammar

import (
	"strings"

	"github.com/tidwall/gjson"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a literal that should produce no matcher argument. It is
// distinct from nil, which stands for null.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// ParseLiteral turns the literal part of an expression into a value.
//
// Values that are not strings, and the empty string, are returned as is.
// A string mentioning "undefined" yields Undefined. Valid JSON is decoded;
// anything else is returned unchanged, so bare words work without quotes.
func ParseLiteral(v any) any {
	s, ok := v.(string)
	if !ok || s == "" {
		return v
	}

	if strings.Contains(s, "undefined") {
		return Undefined
	}

	if !gjson.Valid(s) {
		return s
	}

	return gjson.Parse(s).Value()
}
