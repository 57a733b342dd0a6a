package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TAPFormatter formats check results in TAP (Test Anything Protocol) format
type TAPFormatter struct {
	writer    io.Writer
	testCount int
	results   []tapResult
}

type tapResult struct {
	number   int
	name     string
	passed   bool
	error    string
	failures []string
}

// tapDiagnostic is the YAML block written under a failing line.
type tapDiagnostic struct {
	Message  string   `yaml:"message,omitempty"`
	Severity string   `yaml:"severity,omitempty"`
	Failures []string `yaml:"failures,omitempty"`
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer:  os.Stdout,
		results: make([]tapResult, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		if w != nil {
			f.writer = w
		}
	}
}

func (f *TAPFormatter) FormatReport(report *Report) {
	for _, c := range report.Checks {
		f.testCount++
		tr := tapResult{
			number: f.testCount,
			name:   strings.TrimSpace(c.Expression),
			passed: c.Passed(),
		}

		if c.Error != nil {
			tr.error = c.Error.Error()
		}

		for _, r := range c.Results {
			if !r.Passed {
				tr.failures = append(tr.failures, r.Message)
			}
		}

		f.results = append(f.results, tr)
	}
}

func (f *TAPFormatter) FormatError(err error) {
	f.testCount++
	f.results = append(f.results, tapResult{
		number: f.testCount,
		name:   "error",
		error:  err.Error(),
	})
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush
}

// Flush writes the accumulated TAP output
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	// TAP version header
	fmt.Fprintf(f.writer, "TAP version 13\n")

	// Test plan
	fmt.Fprintf(f.writer, "1..%d\n", f.testCount)

	for _, r := range f.results {
		if r.passed {
			fmt.Fprintf(f.writer, "ok %d - %s\n", r.number, r.name)
			continue
		}

		fmt.Fprintf(f.writer, "not ok %d - %s\n", r.number, r.name)
		diag := tapDiagnostic{Failures: r.failures}
		if r.error != "" {
			diag = tapDiagnostic{Message: r.error, Severity: "error"}
		}
		if err := f.writeDiagnostic(diag); err != nil {
			return err
		}
	}

	// Add final newline for proper TAP output
	fmt.Fprintln(f.writer)

	return nil
}

func (f *TAPFormatter) writeDiagnostic(diag tapDiagnostic) error {
	if diag.Message == "" && len(diag.Failures) == 0 {
		return nil
	}

	data, err := yaml.Marshal(diag)
	if err != nil {
		return err
	}

	fmt.Fprintf(f.writer, "  ---\n")
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		fmt.Fprintf(f.writer, "  %s\n", line)
	}
	fmt.Fprintf(f.writer, "  ...\n")
	return nil
}
