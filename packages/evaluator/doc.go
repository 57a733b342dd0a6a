// Package evaluator captures values in rounds and asserts against them with
// compact expressions.
//
// An Evaluator holds either a static value or a producer function. Each call
// to Round captures one value, records it in the history and returns a Round
// that accepts any number of expressions against that same value:
//
//	ev := evaluator.New(expect.New(t), func() any { return counter.Value() })
//	ev.Round().Assert("-> 1")
//	ev.Trigger(counter.Inc).Round().Assert("-> 2").Assert("toBeGreaterThan 1")
//
// Expressions follow the grammar package: an operator token (==, ===, !=,
// !==, ->, !-> or a dotted matcher name such as not.toContain) optionally
// followed by a JSON or bare-word literal.
package evaluator
