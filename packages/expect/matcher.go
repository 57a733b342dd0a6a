package expect

// Matcher identifies one terminal assertion.
type Matcher int

const (
	ToBe Matcher = iota
	ToEqual
	ToStrictEqual
	ToThrow
	ToThrowError
	ToBeTruthy
	ToBeFalsy
	ToBeNull
	ToBeUndefined
	ToBeDefined
	ToContain
	ToContainEqual
	ToHaveLength
	ToMatch
	ToBeGreaterThan
	ToBeGreaterThanOrEqual
	ToBeLessThan
	ToBeLessThanOrEqual
	ToBeCloseTo
	ToBeTypeOf
	ToHaveProperty
	ToMatchSchema
	ToMatchSnapshot
	ToHaveBeenCalled
	ToHaveBeenCalledTimes
	ToHaveBeenCalledWith
	ToHaveBeenLastCalledWith
)

var matcherNames = map[Matcher]string{
	ToBe:                     "toBe",
	ToEqual:                  "toEqual",
	ToStrictEqual:            "toStrictEqual",
	ToThrow:                  "toThrow",
	ToThrowError:             "toThrowError",
	ToBeTruthy:               "toBeTruthy",
	ToBeFalsy:                "toBeFalsy",
	ToBeNull:                 "toBeNull",
	ToBeUndefined:            "toBeUndefined",
	ToBeDefined:              "toBeDefined",
	ToContain:                "toContain",
	ToContainEqual:           "toContainEqual",
	ToHaveLength:             "toHaveLength",
	ToMatch:                  "toMatch",
	ToBeGreaterThan:          "toBeGreaterThan",
	ToBeGreaterThanOrEqual:   "toBeGreaterThanOrEqual",
	ToBeLessThan:             "toBeLessThan",
	ToBeLessThanOrEqual:      "toBeLessThanOrEqual",
	ToBeCloseTo:              "toBeCloseTo",
	ToBeTypeOf:               "toBeTypeOf",
	ToHaveProperty:           "toHaveProperty",
	ToMatchSchema:            "toMatchSchema",
	ToMatchSnapshot:          "toMatchSnapshot",
	ToHaveBeenCalled:         "toHaveBeenCalled",
	ToHaveBeenCalledTimes:    "toHaveBeenCalledTimes",
	ToHaveBeenCalledWith:     "toHaveBeenCalledWith",
	ToHaveBeenLastCalledWith: "toHaveBeenLastCalledWith",
}

var matchersByName = func() map[string]Matcher {
	m := make(map[string]Matcher, len(matcherNames)+1)
	for matcher, name := range matcherNames {
		m[name] = matcher
	}
	m["toBeNil"] = ToBeNull
	return m
}()

func (m Matcher) String() string {
	if name, ok := matcherNames[m]; ok {
		return name
	}
	return "unknown"
}

// LookupMatcher returns the matcher registered under name.
func LookupMatcher(name string) (Matcher, bool) {
	m, ok := matchersByName[name]
	return m, ok
}

// Matchers returns the names of all matchers in declaration order.
func Matchers() []string {
	names := make([]string, 0, len(matcherNames))
	for m := ToBe; m <= ToHaveBeenLastCalledWith; m++ {
		names = append(names, m.String())
	}
	return names
}
