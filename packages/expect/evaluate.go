package expect

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// CallRecorder is implemented by values that record their invocations, such
// as spies. The toHaveBeenCalled matchers require it.
type CallRecorder interface {
	Calls() [][]any
}

type outcome struct {
	pass   bool
	detail string
	// misuse fails the matcher regardless of negation.
	misuse error
}

func passIf(pass bool) outcome {
	return outcome{pass: pass}
}

func misuse(format string, args ...any) outcome {
	return outcome{misuse: fmt.Errorf(format, args...)}
}

func evaluate(e *Expectation, m Matcher, args []any) outcome {
	actual := e.actual
	switch m {
	case ToBe:
		return passIf(identical(actual, arg(args, 0)))
	case ToEqual:
		expected := arg(args, 0)
		if deepEqual(actual, expected) {
			return passIf(true)
		}
		return outcome{detail: diff(expected, actual)}
	case ToStrictEqual:
		expected := arg(args, 0)
		return passIf(reflect.TypeOf(actual) == reflect.TypeOf(expected) && reflect.DeepEqual(actual, expected))
	case ToThrow, ToThrowError:
		return throws(actual, arg(args, 0))
	case ToBeTruthy:
		return passIf(truthy(actual))
	case ToBeFalsy:
		return passIf(!truthy(actual))
	case ToBeNull:
		return passIf(!grammar.IsUndefined(actual) && isNil(actual))
	case ToBeUndefined:
		return passIf(grammar.IsUndefined(actual))
	case ToBeDefined:
		return passIf(!grammar.IsUndefined(actual))
	case ToContain:
		return contains(actual, arg(args, 0), identical)
	case ToContainEqual:
		return contains(actual, arg(args, 0), deepEqual)
	case ToHaveLength:
		return length(actual, arg(args, 0))
	case ToMatch:
		return matches(actual, arg(args, 0))
	case ToBeGreaterThan:
		return compareNumeric(actual, arg(args, 0), ">")
	case ToBeGreaterThanOrEqual:
		return compareNumeric(actual, arg(args, 0), ">=")
	case ToBeLessThan:
		return compareNumeric(actual, arg(args, 0), "<")
	case ToBeLessThanOrEqual:
		return compareNumeric(actual, arg(args, 0), "<=")
	case ToBeCloseTo:
		return closeTo(actual, arg(args, 0), arg(args, 1))
	case ToBeTypeOf:
		name, isString := arg(args, 0).(string)
		if !isString {
			return misuse("toBeTypeOf expects a kind name, got %v", arg(args, 0))
		}
		got := grammar.KindName(actual)
		return outcome{pass: got == name, detail: "kind: " + got}
	case ToHaveProperty:
		return property(actual, args)
	case ToMatchSchema:
		return schema(actual, arg(args, 0))
	case ToMatchSnapshot:
		return e.snapshot(args)
	case ToHaveBeenCalled, ToHaveBeenCalledTimes, ToHaveBeenCalledWith, ToHaveBeenLastCalledWith:
		return called(m, actual, args)
	default:
		return misuse("unknown matcher %v", m)
	}
}

// arg returns args[i], or Undefined when it was not supplied.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return grammar.Undefined
}

func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// identical is toBe: value equality for primitives, identity for reference
// kinds and == for other comparable values.
func identical(a, b any) (same bool) {
	if grammar.IsUndefined(a) || grammar.IsUndefined(b) {
		return grammar.IsUndefined(a) && grammar.IsUndefined(b)
	}
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	fa, aNum := toFloat64(a)
	fb, bNum := toFloat64(b)
	if aNum || bNum {
		if !aNum || !bNum {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.String && vb.Kind() == reflect.String {
		return va.String() == vb.String()
	}
	if va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool {
		return va.Bool() == vb.Bool()
	}
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// deepEqual is toEqual: structural equality that treats numbers of any Go
// type alike. Values of one type compare field by field; the JSON form is
// only consulted for plain data (maps, slices, numbers) or, across types,
// for structs whose fields all survive encoding.
func deepEqual(a, b any) bool {
	if grammar.IsUndefined(a) || grammar.IsUndefined(b) {
		return grammar.IsUndefined(a) && grammar.IsUndefined(b)
	}
	if assert.ObjectsAreEqual(a, b) || identical(a, b) {
		return true
	}

	structs := reflect.TypeOf(a) != reflect.TypeOf(b)
	if !jsonComparable(reflect.ValueOf(a), structs, 0) || !jsonComparable(reflect.ValueOf(b), structs, 0) {
		return false
	}

	na, errA := normalize(a)
	nb, errB := normalize(b)
	if errA != nil || errB != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

const maxCompareDepth = 32

// jsonComparable reports whether v keeps everything that matters for
// equality when encoded as JSON. Structs qualify only when structs is set
// and every field is exported and not skipped.
func jsonComparable(v reflect.Value, structs bool, depth int) bool {
	if depth > maxCompareDepth {
		return false
	}
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return true
		}
		return jsonComparable(v.Elem(), structs, depth+1)
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !jsonComparable(iter.Value(), structs, depth+1) {
				return false
			}
		}
		return true
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !jsonComparable(v.Index(i), structs, depth+1) {
				return false
			}
		}
		return true
	case reflect.Struct:
		if !structs {
			return false
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				return false
			}
			if !jsonComparable(v.Field(i), structs, depth+1) {
				return false
			}
		}
		return true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return false
	}
	return true
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func truthy(v any) bool {
	if grammar.IsUndefined(v) || isNil(v) {
		return false
	}
	if f, isNum := toFloat64(v); isNum {
		return f != 0 && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	}
	return true
}

func thrownMessage(v any) string {
	switch t := v.(type) {
	case error:
		return t.Error()
	case string:
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}

// catch calls fn and reports what it panicked with. A func() error that
// returns a non-nil error counts as thrown.
func catch(fn any) (thrown any, didThrow bool, callable bool) {
	switch f := fn.(type) {
	case func():
		callable = true
		defer func() {
			if r := recover(); r != nil {
				thrown, didThrow = r, true
			}
		}()
		f()
		return nil, false, true
	case func() error:
		callable = true
		defer func() {
			if r := recover(); r != nil {
				thrown, didThrow = r, true
			}
		}()
		if err := f(); err != nil {
			return err, true, true
		}
		return nil, false, true
	}
	return nil, false, false
}

func throws(actual, expected any) outcome {
	thrown, didThrow, callable := catch(actual)
	if !callable {
		return misuse("received value must be a func() or func() error, got %T", actual)
	}
	if !didThrow {
		return outcome{detail: "function did not panic"}
	}

	msg := thrownMessage(thrown)
	detail := "panicked with: " + msg

	switch want := expected.(type) {
	case nil:
		return outcome{pass: true, detail: detail}
	case string:
		if pattern, isPattern := regexLiteral(want); isPattern {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return misuse("invalid regex pattern: %v", err)
			}
			return outcome{pass: re.MatchString(msg), detail: detail}
		}
		return outcome{pass: strings.Contains(msg, want), detail: detail}
	case *regexp.Regexp:
		return outcome{pass: want.MatchString(msg), detail: detail}
	case error:
		if err, isErr := thrown.(error); isErr && errors.Is(err, want) {
			return outcome{pass: true, detail: detail}
		}
		return outcome{pass: msg == want.Error(), detail: detail}
	}

	if grammar.IsUndefined(expected) {
		return outcome{pass: true, detail: detail}
	}
	return misuse("toThrow expects a message, pattern or error, got %T", expected)
}

func regexLiteral(s string) (string, bool) {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func contains(actual, expected any, eq func(a, b any) bool) outcome {
	if grammar.IsUndefined(actual) || actual == nil {
		return misuse("cannot search %v", actual)
	}

	rv := reflect.ValueOf(actual)
	switch rv.Kind() {
	case reflect.String:
		sub := reflect.ValueOf(expected)
		if expected == nil || sub.Kind() != reflect.String {
			return misuse("expected a substring, got %T", expected)
		}
		return passIf(strings.Contains(rv.String(), sub.String()))
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if eq(rv.Index(i).Interface(), expected) {
				return passIf(true)
			}
		}
		return passIf(false)
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if eq(key.Interface(), expected) {
				return passIf(true)
			}
		}
		return passIf(false)
	}
	return misuse("cannot search %T", actual)
}

// computeLength returns the length of a value, or -1 if length cannot be computed
func computeLength(actual any) int {
	if actual == nil {
		return -1
	}
	rv := reflect.ValueOf(actual)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return rv.Len()
	default:
		return -1
	}
}

func length(actual, expected any) outcome {
	want, isNum := toFloat64(expected)
	if !isNum {
		return misuse("expected length must be a number, got %v", expected)
	}

	got := computeLength(actual)
	if got == -1 {
		return misuse("cannot get length of %T", actual)
	}
	return outcome{pass: float64(got) == want, detail: fmt.Sprintf("length: %d", got)}
}

func matches(actual, expected any) outcome {
	rv := reflect.ValueOf(actual)
	if actual == nil || rv.Kind() != reflect.String {
		return misuse("toMatch expects a string, got %T", actual)
	}

	var re *regexp.Regexp
	switch p := expected.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		pattern := strings.TrimSuffix(strings.TrimPrefix(p, "/"), "/")
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return misuse("invalid regex pattern: %v", err)
		}
		re = compiled
	default:
		return misuse("toMatch expects a pattern, got %T", expected)
	}
	return passIf(re.MatchString(rv.String()))
}

func compareNumeric(actual, expected any, op string) outcome {
	a, aOk := toFloat64(actual)
	b, bOk := toFloat64(expected)
	if !aOk || !bOk {
		return misuse("cannot compare non-numeric values: %v %s %v", actual, op, expected)
	}

	switch op {
	case ">":
		return passIf(a > b)
	case ">=":
		return passIf(a >= b)
	case "<":
		return passIf(a < b)
	default:
		return passIf(a <= b)
	}
}

func closeTo(actual, expected, digits any) outcome {
	a, aOk := toFloat64(actual)
	b, bOk := toFloat64(expected)
	if !aOk || !bOk {
		return misuse("toBeCloseTo expects numbers, got %v and %v", actual, expected)
	}

	precision := 2.0
	if d, dOk := toFloat64(digits); dOk {
		precision = d
	}
	delta := math.Abs(a - b)
	return outcome{pass: delta < math.Pow(10, -precision)/2, detail: fmt.Sprintf("difference: %g", delta)}
}

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	return strings.TrimPrefix(bracketIndex.ReplaceAllString(path, ".$1"), ".")
}

func property(actual any, args []any) outcome {
	path, isString := arg(args, 0).(string)
	if !isString || path == "" {
		return misuse("toHaveProperty expects a property path, got %v", arg(args, 0))
	}

	data, err := json.Marshal(actual)
	if err != nil {
		return misuse("cannot inspect %T: %v", actual, err)
	}

	res := gjson.GetBytes(data, convertBracketNotation(path))
	if !res.Exists() {
		return outcome{detail: "property " + path + " does not exist"}
	}

	want := arg(args, 1)
	if grammar.IsUndefined(want) {
		return passIf(true)
	}
	return outcome{pass: deepEqual(res.Value(), want), detail: fmt.Sprintf("%s = %v", path, res.Value())}
}

func schemaLoader(s any) (gojsonschema.JSONLoader, error) {
	switch v := s.(type) {
	case []byte:
		return gojsonschema.NewBytesLoader(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "{") {
			return gojsonschema.NewStringLoader(trimmed), nil
		}
		data, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		return gojsonschema.NewBytesLoader(data), nil
	case map[string]any:
		return gojsonschema.NewGoLoader(v), nil
	}
	return nil, fmt.Errorf("unsupported schema %T", s)
}

func schema(actual, expected any) outcome {
	loader, err := schemaLoader(expected)
	if err != nil {
		return misuse("%v", err)
	}

	document, err := json.Marshal(actual)
	if err != nil {
		return misuse("failed to marshal actual value: %v", err)
	}

	result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return misuse("schema validation error: %v", err)
	}
	if result.Valid() {
		return passIf(true)
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return outcome{detail: "schema validation failed: " + strings.Join(errs, "; ")}
}

func (e *Expectation) snapshot(args []any) outcome {
	if e.backend.snapshots == nil {
		return misuse("snapshot manager not configured")
	}

	label := ""
	if v := arg(args, 0); !grammar.IsUndefined(v) && v != nil {
		label = fmt.Sprintf("%v", v)
	}

	result := e.backend.snapshots.Compare(e.backend.testName(), label, e.actual)
	return outcome{pass: result.Passed, detail: result.Message}
}

func sameCall(call, args []any) bool {
	if len(call) != len(args) {
		return false
	}
	for i := range call {
		if !deepEqual(call[i], args[i]) {
			return false
		}
	}
	return true
}

// matchesCall accepts either the argument list itself or, from an
// expression literal, a single array holding it.
func matchesCall(call, args []any) bool {
	if sameCall(call, args) {
		return true
	}
	if len(args) == 1 {
		if list, isList := args[0].([]any); isList {
			return sameCall(call, list)
		}
	}
	return false
}

func called(m Matcher, actual any, args []any) outcome {
	recorder, isRecorder := actual.(CallRecorder)
	if !isRecorder {
		return misuse("%s expects a call recorder, got %T", m, actual)
	}

	calls := recorder.Calls()
	detail := fmt.Sprintf("calls: %v", calls)

	switch m {
	case ToHaveBeenCalled:
		return outcome{pass: len(calls) > 0, detail: detail}
	case ToHaveBeenCalledTimes:
		n, isNum := toFloat64(arg(args, 0))
		if !isNum {
			return misuse("toHaveBeenCalledTimes expects a number, got %v", arg(args, 0))
		}
		return outcome{pass: float64(len(calls)) == n, detail: detail}
	case ToHaveBeenCalledWith:
		for _, call := range calls {
			if matchesCall(call, args) {
				return outcome{pass: true, detail: detail}
			}
		}
		return outcome{detail: detail}
	default:
		if len(calls) == 0 {
			return outcome{detail: detail}
		}
		return outcome{pass: matchesCall(calls[len(calls)-1], args), detail: detail}
	}
}
