package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/tst/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	forceInit  bool
	formatInit string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tst configuration file",
	Long: `Create a configuration file with the default settings in the current
directory.

This creates one of:
  - .tst.yaml          - YAML configuration (default)
  - .tst.config.json   - JSON configuration (--format json)

Examples:
  tst init
  tst init --format json --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().StringVar(&formatInit, "format", "yaml", "Config file format: yaml, json")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	var name string
	switch formatInit {
	case "yaml", "yml":
		name = ".tst.yaml"
	case "json":
		name = ".tst.config.json"
	default:
		return exitWith(ExitUsageError, fmt.Errorf("unknown config format %q", formatInit))
	}

	configFile := filepath.Join(cwd, name)
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	return nil
}
