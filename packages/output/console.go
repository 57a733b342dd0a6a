package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		if w != nil {
			f.writer = w
		}
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatReport(report *Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Value: "+formatValue(report.Value, 80)))
	fmt.Fprintf(f.writer, "\n")

	for _, c := range report.Checks {
		if c.Error != nil {
			fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), c.Expression, red(fmt.Sprintf("(%v)", c.Error)))
			continue
		}

		symbol := green("✓")
		if !c.Passed() {
			symbol = red("✗")
		}
		fmt.Fprintf(f.writer, "  %s %s %s\n", symbol, strings.TrimSpace(c.Expression), cyan("("+c.Operator+")"))

		for _, r := range c.Results {
			if r.Passed && !f.verbose {
				continue
			}
			fmt.Fprintf(f.writer, "    %s %s\n", red("→"), r.Operator())
			fmt.Fprintf(f.writer, "      Expected: %s\n", formatValue(r.Expected, 100))
			fmt.Fprintf(f.writer, "      Actual:   %s\n", formatValue(r.Actual, 100))
			if r.Message != "" {
				for _, line := range strings.Split(r.Message, "\n") {
					fmt.Fprintf(f.writer, "      %s\n", line)
				}
			}
		}
	}

	passed, failed := report.Counts()
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Checks: ")
	if passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", passed)))
	}
	if failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", passed+failed)
	fmt.Fprintf(f.writer, "Time:   %dms\n", report.Duration.Milliseconds())
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("tst"), version)
}
