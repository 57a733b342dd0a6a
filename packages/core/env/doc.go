// Package env resolves {{...}} placeholders in command line expressions
// and values.
//
// A placeholder names a variable ({{expected}}), an environment variable
// ({{$HOME}}) or a builtin function call ({{uuid()}}). Variables come from
// the config file, TST_VAR_* environment variables, .env files and --var
// flags, merged in that order.
//
// Template turns an expression into a tagged call so each placeholder is
// passed as a typed value instead of being spliced into the text.
package env
