package output

import (
	"fmt"
	"io"
	"time"

	"github.com/abdul-hamid-achik/tst/packages/expect"
)

// Check is the outcome of one expression.
type Check struct {
	Expression string
	Operator   string // resolved matcher path, e.g. not.toEqual
	Results    []expect.Result
	Error      error // malformed expression or unknown matcher
}

// Passed reports whether the expression resolved and every matcher passed.
func (c Check) Passed() bool {
	if c.Error != nil {
		return false
	}
	for _, r := range c.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Report is a set of checks against one value.
type Report struct {
	Value    any
	Checks   []Check
	Duration time.Duration
}

// Counts returns the number of passed and failed checks.
func (r *Report) Counts() (passed, failed int) {
	for _, c := range r.Checks {
		if c.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	_, failed := r.Counts()
	return failed > 0
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatReport(report *Report)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// Formats lists the names accepted by New.
var Formats = []string{"console", "json", "tap"}

// New returns the formatter for format, writing to w.
func New(format string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch format {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "tap":
		return NewTAPFormatter(TAPWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	case string:
		v = fmt.Sprintf("%q", val)
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
