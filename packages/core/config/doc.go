// Package config handles configuration loading for tst.
//
// It provides functionality for:
//   - Loading configuration from .tst.config.json, tst.config.json, .tst.yaml
//     or .tst.yml files
//   - Default configuration values
//   - Merging configurations, with explicitly set values taking precedence
//   - Placeholder variables and the .env file used by tst check
package config
