// Package builtin provides the functions available inside {{...}}
// placeholders of command line expressions.
//
// Available functions:
//   - uuid(): random UUID v4
//   - now(): current time in RFC 3339
//   - date(layout): current date, 2006-01-02 by default
//   - timestamp(), timestampMs(): current Unix time
//   - random(min, max): random integer in range
//   - randomString(length): random alphanumeric string
//   - base64(value), base64Decode(value)
//   - sha256(value)
//   - upper(value), lower(value)
//   - len(value): length of the argument in runes
//
// Results keep their Go type, so timestamp() interpolates a number and
// uuid() a string.
package builtin
