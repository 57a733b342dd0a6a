package grammar

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedExpression is returned when an expression has no operator.
var ErrMalformedExpression = errors.New("malformed assertion expression")

var expressionPattern = regexp.MustCompile(`^(\S+)(\s+\S[\s\S]*)?`)

// Expression is a parsed assertion expression.
type Expression struct {
	// Raw is the input before trimming.
	Raw string
	// Operator is the first whitespace-delimited token.
	Operator string
	// Literal is the trimmed remainder, valid when HasLiteral is set.
	Literal    string
	HasLiteral bool
}

// ParseError describes an expression that could not be parsed.
type ParseError struct {
	Input   string
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return "column " + strconv.Itoa(e.Column) + ": " + e.Message + ": " + strconv.Quote(e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseExpression splits s into its operator token and optional literal.
func ParseExpression(s string) (Expression, error) {
	trimmed := strings.TrimSpace(s)
	m := expressionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Expression{}, &ParseError{
			Input:   s,
			Column:  len(s) + 1,
			Message: "expected an operator",
			Err:     ErrMalformedExpression,
		}
	}

	expr := Expression{Raw: s, Operator: m[1]}
	if m[2] != "" {
		expr.Literal = strings.TrimSpace(m[2])
		expr.HasLiteral = true
	}
	return expr, nil
}

// Value returns the value the expression compares against. The literal
// written in the expression wins; otherwise the first fallback is used.
// ok is false when there is neither.
func (e Expression) Value(fallback ...any) (v any, ok bool) {
	switch {
	case e.HasLiteral:
		return ParseLiteral(e.Literal), true
	case len(fallback) > 0:
		return ParseLiteral(fallback[0]), true
	default:
		return nil, false
	}
}

// Args returns the matcher arguments for the expression. Undefined and a
// missing value both produce no arguments.
func (e Expression) Args(fallback ...any) []any {
	v, ok := e.Value(fallback...)
	if !ok || IsUndefined(v) {
		return nil
	}
	return []any{v}
}
