package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/tst/packages/core/config"
	"github.com/abdul-hamid-achik/tst/packages/core/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	verboseFlag bool
	noColorFlag bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tst",
	Short: "Compact assertion expressions for Go tests.",
	Long: `tst turns short expressions such as "-> 1" or "not.toContain x"
into assertions. The command line explains how an expression resolves
and checks expressions against JSON values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configFlag)
		if err != nil {
			return exitWith(ExitConfigError, fmt.Errorf("loading config: %w", err))
		}
		cfg = loaded.Merge(flagConfig(cmd))

		logger, err = logging.New(cfg.GetVerbose())
		if err != nil {
			return exitWith(ExitConfigError, err)
		}
		logger.Debug("configuration loaded",
			zap.String("config", configFlag),
			zap.String("suite", cfg.Suite),
			zap.String("test", cfg.Test),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// flagConfig holds the values set explicitly on the command line or in the
// environment, so they override the config file.
func flagConfig(cmd *cobra.Command) *config.Config {
	override := &config.Config{}
	if cmd.Flags().Changed("verbose") || os.Getenv("TST_VERBOSE") != "" {
		override.Verbose = config.BoolPtr(verboseFlag)
	}
	if cmd.Flags().Changed("no-color") || os.Getenv("TST_NO_COLOR") != "" {
		override.NoColor = config.BoolPtr(noColorFlag)
	}
	return override
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return ExitUsageError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("TST_CONFIG", ""), "Path to config file (env: TST_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("TST_VERBOSE", false), "Verbose output and debug logging (env: TST_VERBOSE)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("TST_NO_COLOR", false), "Disable colored output (env: TST_NO_COLOR)")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
