package cmd

import (
	"errors"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/tst/packages/core/env"
	"github.com/abdul-hamid-achik/tst/packages/core/grammar"
	"github.com/abdul-hamid-achik/tst/packages/evaluator"
	"github.com/abdul-hamid-achik/tst/packages/expect"
	"github.com/abdul-hamid-achik/tst/packages/output"
	"github.com/abdul-hamid-achik/tst/packages/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	checkValueFlag      string
	checkStrictFlag     bool
	outputFlag          string
	updateSnapshotsFlag bool
	snapshotDirFlag     string
	snapshotNameFlag    string
	varFlags            []string
	envFileFlag         string
)

var checkCmd = &cobra.Command{
	Use:   "check <expression>...",
	Short: "Run assertion expressions against a value",
	Long: `Run each expression against the value given with --value and report
the outcome. The exit code is 1 when any expression fails. Expressions
starting with "-" must follow a "--" separator.

Placeholders such as {{expected}}, {{$HOME}} or {{uuid()}} are resolved
from --var, --env-file, TST_VAR_* environment variables and the config
file. In --value they are spliced in as text; in an expression each one
is passed as a separate value, so "-> {{expected}}" compares against the
decoded variable.

Examples:
  tst check --value 1 -- "-> 1" "toBeGreaterThan 0"
  tst check 'toHaveProperty user.name' --value '{"user": {"name": "ann"}}'
  tst check "toMatchSnapshot" --value '[1, 2]' --update-snapshots
  tst check "toHaveLength 3" --value '[1, 2]' -o json
  tst check --var expected='{"a": 1}' --value '{"a": 1}' -- "-> {{expected}}"`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVar(&checkValueFlag, "value", getEnvString("TST_VALUE", ""), "Value under test, JSON or a bare word (env: TST_VALUE)")
	checkCmd.Flags().BoolVar(&checkStrictFlag, "strict", false, "Require --value to be valid JSON")
	checkCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("TST_OUTPUT", "console"), "Output format: console, json, tap (env: TST_OUTPUT)")
	checkCmd.Flags().BoolVar(&updateSnapshotsFlag, "update-snapshots", getEnvBool("TST_UPDATE_SNAPSHOTS", false), "Write snapshots instead of comparing (env: TST_UPDATE_SNAPSHOTS)")
	checkCmd.Flags().StringVar(&snapshotDirFlag, "snapshot-dir", getEnvString("TST_SNAPSHOT_DIR", ""), "Directory holding __snapshots__ (env: TST_SNAPSHOT_DIR)")
	checkCmd.Flags().StringVar(&snapshotNameFlag, "name", "check", "Snapshot test name")
	checkCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Placeholder variable as name=value, repeatable")
	checkCmd.Flags().StringVar(&envFileFlag, "env-file", getEnvString("TST_ENV_FILE", ""), "Load placeholder variables from a .env file (env: TST_ENV_FILE)")
}

// checkBackend keeps the error of a malformed expression instead of
// stopping.
type checkBackend struct {
	*expect.Backend
	err error
}

func (b *checkBackend) Fatal(err error) {
	b.err = err
}

func checkCommand(cmd *cobra.Command, args []string) error {
	start := time.Now()

	resolver, err := newResolver()
	if err != nil {
		return err
	}

	rawValue := resolver.Resolve(checkValueFlag)
	value := parseValue(rawValue, cmd.Flags().Changed("value") || checkValueFlag != "")
	if checkStrictFlag {
		strict, err := parseStrictValue(rawValue)
		if err != nil {
			return exitWith(ExitParseError, err)
		}
		value = strict
	}

	formatter, err := output.New(outputFlag, cmd.OutOrStdout(), cfg.GetVerbose(), cfg.GetNoColor())
	if err != nil {
		return exitWith(ExitUsageError, err)
	}

	snapshots := snapshotManager(cmd)
	report := &output.Report{Value: value}

	for _, raw := range args {
		report.Checks = append(report.Checks, runCheck(raw, value, snapshots, resolver))
	}
	report.Duration = time.Since(start)

	formatter.FormatReport(report)
	if f, ok := formatter.(output.Flushable); ok {
		if err := f.Flush(report.Duration); err != nil {
			return err
		}
	}

	passed, failed := report.Counts()
	logger.Debug("checks finished",
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Duration("duration", report.Duration),
	)
	for _, c := range report.Checks {
		if errors.Is(c.Error, grammar.ErrMalformedExpression) {
			return exitWith(ExitParseError, nil)
		}
	}
	if failed > 0 {
		return exitWith(ExitCheckFailure, nil)
	}
	return nil
}

func snapshotManager(cmd *cobra.Command) *snapshot.Manager {
	dir := cfg.SnapshotDir
	if snapshotDirFlag != "" {
		dir = snapshotDirFlag
	}
	update := cfg.GetUpdateSnapshots()
	if cmd.Flags().Changed("update-snapshots") || updateSnapshotsFlag {
		update = updateSnapshotsFlag
	}
	return snapshot.NewManager(dir, update)
}

// newResolver merges placeholder variables from the config file, the
// environment, the env file and --var flags, later sources winning.
func newResolver() (*env.Resolver, error) {
	sources := []map[string]any{cfg.Variables, env.LoadSystemEnv(env.VarPrefix)}

	envFile := cfg.EnvFile
	if envFileFlag != "" {
		envFile = envFileFlag
	}
	if envFile != "" {
		vars, err := env.LoadDotEnv(envFile)
		if err != nil {
			return nil, exitWith(ExitConfigError, err)
		}
		sources = append(sources, env.Strings(vars))
	}

	assigned, err := env.ParseAssignments(varFlags)
	if err != nil {
		return nil, exitWith(ExitUsageError, err)
	}
	sources = append(sources, assigned)

	resolver := env.NewResolver(env.WithLogger(logger))
	resolver.SetVariables(env.MergeVariables(sources...))
	return resolver, nil
}

func runCheck(raw string, value any, snapshots *snapshot.Manager, resolver *env.Resolver) output.Check {
	check := output.Check{Expression: raw}

	tpl, values, err := resolver.Template(raw)
	if err != nil {
		check.Error = err
		return check
	}

	rec := expect.NewRecorder(snapshotNameFlag)
	b := &checkBackend{
		Backend: expect.New(rec,
			expect.WithLogger(logger),
			expect.WithSnapshots(snapshots),
			expect.WithObserver(func(r expect.Result) {
				check.Results = append(check.Results, r)
			}),
		),
	}

	if expr, err := grammar.ParseExpression(tpl.Expression()); err == nil {
		check.Operator = grammar.Resolve(expr.Operator, value)
	}

	round := evaluator.New(b, value, evaluator.WithLogger(logger)).Round()
	if len(values) == 0 {
		round.Assert(raw)
	} else {
		round.Tag(tpl, values...)
	}
	if b.err != nil {
		check.Error = b.err
	} else if len(check.Results) == 0 && rec.Failed() {
		check.Error = errors.New(strings.Join(rec.Errors(), "; "))
	}
	return check
}
