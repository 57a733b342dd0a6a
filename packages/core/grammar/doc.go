// Package grammar parses tst assertion expressions.
//
// An expression is an operator token optionally followed by a literal:
//
//	-> 1              toBe(1) for primitives, toEqual(1) otherwise
//	!-> {"a": 1}      not.toBe / not.toEqual
//	=== [1, 2]        toEqual([1, 2])
//	not.toContain x   any dotted matcher path, literal parsed as "x"
//	toThrow           matcher without arguments
//
// The package also contains the primitive classifier used to pick between
// identity and deep equality, the literal parser, and the helpers that
// recognise template-shaped calls.
package grammar
