package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/tst/packages/expect"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Checks   []JSONCheck `json:"checks"`
	Errors   []string    `json:"errors,omitempty"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the check summary
type JSONSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// JSONCheck represents a single expression check
type JSONCheck struct {
	Expression string          `json:"expression"`
	Operator   string          `json:"operator,omitempty"`
	Value      any             `json:"value"`
	Passed     bool            `json:"passed"`
	Error      string          `json:"error,omitempty"`
	Results    []expect.Result `json:"results,omitempty"`
}

// JSONFormatter formats check results as JSON
type JSONFormatter struct {
	writer io.Writer
	checks []JSONCheck
	errors []string
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		checks: make([]JSONCheck, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		if w != nil {
			f.writer = w
		}
	}
}

func (f *JSONFormatter) FormatReport(report *Report) {
	for _, c := range report.Checks {
		check := JSONCheck{
			Expression: c.Expression,
			Operator:   c.Operator,
			Value:      report.Value,
			Passed:     c.Passed(),
			Results:    c.Results,
		}
		if c.Error != nil {
			check.Error = c.Error.Error()
		}
		f.checks = append(f.checks, check)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	f.errors = append(f.errors, err.Error())
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed int
	for _, c := range f.checks {
		if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:  len(f.checks),
			Passed: passed,
			Failed: failed,
		},
		Checks:   f.checks,
		Errors:   f.errors,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
