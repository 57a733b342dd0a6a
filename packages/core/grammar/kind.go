package grammar

import (
	"math/big"
	"reflect"
	"regexp"
)

// Kind names reported by KindName. They follow the names a JavaScript
// typeof check produces so expressions read the same in both worlds.
const (
	KindString    = "string"
	KindBoolean   = "boolean"
	KindNumber    = "number"
	KindBigInt    = "bigint"
	KindUndefined = "undefined"
	KindFunction  = "function"
	KindObject    = "object"
)

var primitivePattern = regexp.MustCompile(`^[sbn]`)

// KindName returns the typeof-style kind name of v.
//
// A nil interface is reported as "object", matching typeof null.
func KindName(v any) string {
	switch v.(type) {
	case nil:
		return KindObject
	case undefined:
		return KindUndefined
	case *big.Int:
		return KindBigInt
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return KindNumber
	case reflect.Func:
		return KindFunction
	default:
		return KindObject
	}
}

// IsPrimitive reports whether v is nil or its kind name starts with
// s, b or n. The first-letter check is coarse on purpose: "bigint" counts
// as primitive too.
func IsPrimitive(v any) bool {
	return v == nil || primitivePattern.MatchString(KindName(v))
}
