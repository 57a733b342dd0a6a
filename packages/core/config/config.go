package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/tst/packages/group"
	"gopkg.in/yaml.v3"
)

// Config represents the tst configuration
type Config struct {
	Suite           string `json:"suite,omitempty" yaml:"suite,omitempty"`           // Suite function name, e.g. describe
	Test            string `json:"test,omitempty" yaml:"test,omitempty"`             // Test function name, e.g. it
	OnlyPrefix      string `json:"onlyPrefix,omitempty" yaml:"onlyPrefix,omitempty"` // Prefix marking focused entries
	SnapshotDir     string `json:"snapshotDir,omitempty" yaml:"snapshotDir,omitempty"`
	UpdateSnapshots *bool  `json:"updateSnapshots,omitempty" yaml:"updateSnapshots,omitempty"`
	Verbose         *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor         *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`

	// EnvFile is a .env file whose entries become placeholder variables
	EnvFile   string         `json:"envFile,omitempty" yaml:"envFile,omitempty"`
	Variables map[string]any `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetUpdateSnapshots returns the update snapshots setting, defaulting to false
func (c *Config) GetUpdateSnapshots() bool {
	return getBool(c.UpdateSnapshots, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Group returns the group facade configuration
func (c *Config) Group() group.Config {
	return group.Config{
		Suite:      c.Suite,
		Test:       c.Test,
		OnlyPrefix: c.OnlyPrefix,
	}
}

// ConfigFilenames contains the possible config file names, in search order
var ConfigFilenames = []string{
	".tst.config.json",
	"tst.config.json",
	".tst.yaml",
	".tst.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Suite != "" {
		result.Suite = other.Suite
	}
	if other.Test != "" {
		result.Test = other.Test
	}
	if other.OnlyPrefix != "" {
		result.OnlyPrefix = other.OnlyPrefix
	}
	if other.SnapshotDir != "" {
		result.SnapshotDir = other.SnapshotDir
	}
	if other.EnvFile != "" {
		result.EnvFile = other.EnvFile
	}
	if len(other.Variables) > 0 {
		vars := make(map[string]any, len(c.Variables)+len(other.Variables))
		for k, v := range c.Variables {
			vars[k] = v
		}
		for k, v := range other.Variables {
			vars[k] = v
		}
		result.Variables = vars
	}

	// Boolean flags - only override if explicitly set in other config
	if other.UpdateSnapshots != nil {
		result.UpdateSnapshots = other.UpdateSnapshots
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML for .yaml/.yml paths
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
