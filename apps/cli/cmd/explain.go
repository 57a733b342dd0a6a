package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var explainValueFlag string

var explainCmd = &cobra.Command{
	Use:   "explain <expression>...",
	Short: "Show how assertion expressions resolve",
	Long: `Show the operator, the resolved matcher path and the parsed literal of
each expression. The arrow operators depend on the value under test, which
can be given with --value.

Examples:
  tst explain -- "-> 1"
  tst explain --value '{"a": 1}' -- '-> {"a": 1}' '!-> 2'
  tst explain "not.toContain x"`,
	Args: cobra.MinimumNArgs(1),
	RunE: explainCommand,
}

func init() {
	explainCmd.Flags().StringVar(&explainValueFlag, "value", "", "Sample value (JSON or bare word) used to resolve -> and !->")
}

func explainCommand(cmd *cobra.Command, args []string) error {
	if cfg != nil && cfg.GetNoColor() {
		color.NoColor = true
	}
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	out := cmd.OutOrStdout()

	sample := parseValue(explainValueFlag, cmd.Flags().Changed("value"))

	for _, raw := range args {
		expr, err := grammar.ParseExpression(raw)
		if err != nil {
			return exitWith(ExitParseError, err)
		}

		resolved := grammar.Resolve(expr.Operator, sample)
		fmt.Fprintf(out, "%s\n", bold(raw))
		fmt.Fprintf(out, "  operator: %s\n", expr.Operator)
		fmt.Fprintf(out, "  matcher:  %s\n", cyan(resolved))
		if resolved != expr.Operator && (expr.Operator == "->" || expr.Operator == "!->" || expr.Operator == "!-") {
			fmt.Fprintf(out, "  sample:   %s (primitive: %t)\n", grammar.KindName(sample), grammar.IsPrimitive(sample))
		}

		v, ok := expr.Value()
		switch {
		case !ok:
			fmt.Fprintf(out, "  literal:  none\n")
		case grammar.IsUndefined(v):
			fmt.Fprintf(out, "  literal:  undefined (no argument)\n")
		default:
			fmt.Fprintf(out, "  literal:  %v (%s)\n", v, grammar.KindName(v))
		}

		logger.Debug("expression explained")
	}
	return nil
}
