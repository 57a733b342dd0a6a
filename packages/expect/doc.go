// Package expect is the assertion backend behind tst expressions.
//
// It exposes a chainable expectation object in the style of
//
//	expect.That(t, got).Not().ToEqual(want)
//
// over a closed set of matchers, and interprets dotted matcher paths such as
// "not.toEqual" produced by the grammar package. Failures are reported on the
// wrapped testing.T with testify's assert.Fail; every matcher run is also
// published as a Result to registered observers.
package expect
