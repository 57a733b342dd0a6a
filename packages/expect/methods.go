package expect

// The methods below mirror the matcher set for direct, non-expression use.
// Each reports a failure on the backend's TestingT and returns whether the
// assertion held.

func (e *Expectation) ToBe(expected any) bool {
	return e.Check(ToBe, expected)
}

func (e *Expectation) ToEqual(expected any) bool {
	return e.Check(ToEqual, expected)
}

func (e *Expectation) ToStrictEqual(expected any) bool {
	return e.Check(ToStrictEqual, expected)
}

// ToThrow accepts an optional message substring, /pattern/, *regexp.Regexp
// or error to match the panic value against.
func (e *Expectation) ToThrow(expected ...any) bool {
	return e.Check(ToThrow, expected...)
}

func (e *Expectation) ToThrowError(expected ...any) bool {
	return e.Check(ToThrowError, expected...)
}

func (e *Expectation) ToBeTruthy() bool {
	return e.Check(ToBeTruthy)
}

func (e *Expectation) ToBeFalsy() bool {
	return e.Check(ToBeFalsy)
}

func (e *Expectation) ToBeNull() bool {
	return e.Check(ToBeNull)
}

func (e *Expectation) ToBeUndefined() bool {
	return e.Check(ToBeUndefined)
}

func (e *Expectation) ToBeDefined() bool {
	return e.Check(ToBeDefined)
}

func (e *Expectation) ToContain(item any) bool {
	return e.Check(ToContain, item)
}

func (e *Expectation) ToContainEqual(item any) bool {
	return e.Check(ToContainEqual, item)
}

func (e *Expectation) ToHaveLength(n int) bool {
	return e.Check(ToHaveLength, n)
}

// ToMatch accepts a pattern string (optionally /delimited/) or a compiled
// *regexp.Regexp.
func (e *Expectation) ToMatch(pattern any) bool {
	return e.Check(ToMatch, pattern)
}

func (e *Expectation) ToBeGreaterThan(n any) bool {
	return e.Check(ToBeGreaterThan, n)
}

func (e *Expectation) ToBeGreaterThanOrEqual(n any) bool {
	return e.Check(ToBeGreaterThanOrEqual, n)
}

func (e *Expectation) ToBeLessThan(n any) bool {
	return e.Check(ToBeLessThan, n)
}

func (e *Expectation) ToBeLessThanOrEqual(n any) bool {
	return e.Check(ToBeLessThanOrEqual, n)
}

// ToBeCloseTo checks |actual-n| < 10^-digits / 2; digits defaults to 2.
func (e *Expectation) ToBeCloseTo(n any, digits ...int) bool {
	args := []any{n}
	if len(digits) > 0 {
		args = append(args, digits[0])
	}
	return e.Check(ToBeCloseTo, args...)
}

func (e *Expectation) ToBeTypeOf(kind string) bool {
	return e.Check(ToBeTypeOf, kind)
}

// ToHaveProperty checks a gjson-style path ("a.b", "items[0].id") on the JSON
// form of the actual value, optionally comparing the value found there.
func (e *Expectation) ToHaveProperty(path string, value ...any) bool {
	args := []any{path}
	if len(value) > 0 {
		args = append(args, value[0])
	}
	return e.Check(ToHaveProperty, args...)
}

// ToMatchSchema validates against a JSON schema given inline, as a file path,
// as raw bytes or as a decoded map.
func (e *Expectation) ToMatchSchema(schema any) bool {
	return e.Check(ToMatchSchema, schema)
}

func (e *Expectation) ToMatchSnapshot(label ...string) bool {
	if len(label) > 0 {
		return e.Check(ToMatchSnapshot, label[0])
	}
	return e.Check(ToMatchSnapshot)
}

func (e *Expectation) ToHaveBeenCalled() bool {
	return e.Check(ToHaveBeenCalled)
}

func (e *Expectation) ToHaveBeenCalledTimes(n int) bool {
	return e.Check(ToHaveBeenCalledTimes, n)
}

func (e *Expectation) ToHaveBeenCalledWith(args ...any) bool {
	return e.Check(ToHaveBeenCalledWith, args...)
}

func (e *Expectation) ToHaveBeenLastCalledWith(args ...any) bool {
	return e.Check(ToHaveBeenLastCalledWith, args...)
}
