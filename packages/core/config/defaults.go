package config

import "github.com/abdul-hamid-achik/tst/packages/group"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	d := group.DefaultConfig()
	return &Config{
		Suite:           d.Suite,
		Test:            d.Test,
		OnlyPrefix:      d.OnlyPrefix,
		SnapshotDir:     ".",
		UpdateSnapshots: BoolPtr(false),
		Verbose:         BoolPtr(false),
		NoColor:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Suite == defaults.Suite &&
		c.Test == defaults.Test &&
		c.OnlyPrefix == defaults.OnlyPrefix &&
		c.SnapshotDir == defaults.SnapshotDir &&
		c.EnvFile == defaults.EnvFile &&
		len(c.Variables) == 0 &&
		c.GetUpdateSnapshots() == defaults.GetUpdateSnapshots() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
