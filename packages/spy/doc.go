// Package spy wraps functions so their calls are recorded and their
// outcome can be asserted with the same expressions evaluators use.
//
// A panic, or a non-nil trailing error result, does not escape Call. The
// Subject's value becomes a function that panics with the caught value
// again, so "toThrow" works the same whether it is checked at once or later:
//
//	parse := spy.Wrap(expect.New(t), strconv.Atoi)
//	parse.Call("42").Assert("-> 42")
//	parse.Call("x").Assert("toThrow invalid syntax")
//	parse.Assert("toHaveBeenCalledTimes 2")
//
// Invoke bypasses the capture and returns the raw results.
package spy
