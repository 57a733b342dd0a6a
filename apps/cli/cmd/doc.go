// Package cmd implements the tst CLI commands using Cobra.
//
// Available commands:
//   - explain: Show how assertion expressions are parsed and resolved
//   - check: Run assertion expressions against a JSON value
//   - init: Create a tst configuration file
//   - version: Show tst version information
//   - completion: Generate shell completion scripts
//
// Flags fall back to TST_* environment variables and then to the
// configuration file found in the working directory.
package cmd
