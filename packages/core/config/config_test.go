package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/tst/packages/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.IsDefault())
	assert.Equal(t, group.DefaultConfig(), cfg.Group())
	assert.False(t, cfg.GetUpdateSnapshots())
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsDefault())
	})

	t.Run("json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "tst.config.json", `{"suite": "context", "verbose": true}`)

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "context", cfg.Suite)
		assert.Equal(t, "test", cfg.Test, "unset fields keep their defaults")
		assert.True(t, cfg.GetVerbose())
	})

	t.Run("yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".tst.yaml", "test: it\nonlyPrefix: \"only:\"\nupdateSnapshots: true\n")

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, group.Config{Suite: "describe", Test: "it", OnlyPrefix: "only:"}, cfg.Group())
		assert.True(t, cfg.GetUpdateSnapshots())
	})

	t.Run("search order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".tst.yml", "suite: suite\n")
		writeFile(t, dir, ".tst.config.json", `{"suite": "describe"}`)

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "describe", cfg.Suite)
	})

	t.Run("invalid file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "tst.config.json", `{"suite": `)

		_, err := FindAndLoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tst.config.json")
	})
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yml", "snapshotDir: testdata\nnoColor: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "testdata", cfg.SnapshotDir)
	assert.True(t, cfg.GetNoColor())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{Test: "it", Verbose: BoolPtr(true)}

	merged := base.Merge(override)
	assert.Equal(t, "describe", merged.Suite)
	assert.Equal(t, "it", merged.Test)
	assert.True(t, merged.GetVerbose())
	assert.False(t, merged.GetNoColor())
	assert.Equal(t, "test", base.Test, "merge does not modify the receiver")

	assert.Same(t, base, base.Merge(nil))
}

func TestConfig_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig().Merge(&Config{Suite: "context"})

	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveConfig(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Group(), loaded.Group(), name)
	}
}

func TestConfig_MergeVariables(t *testing.T) {
	base := &Config{Variables: map[string]any{"a": 1, "b": 1}}
	merged := base.Merge(&Config{EnvFile: ".env.test", Variables: map[string]any{"b": 2}})

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, merged.Variables)
	assert.Equal(t, ".env.test", merged.EnvFile)
	assert.Equal(t, 1, base.Variables["b"], "merge does not modify the receiver")
}

func TestLoadConfig_Variables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tst.yaml")
	content := "envFile: .env\nvariables:\n  expected: 3\n  user:\n    name: ann\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, 3, cfg.Variables["expected"])
	assert.Equal(t, map[string]any{"name": "ann"}, cfg.Variables["user"])
	assert.False(t, cfg.IsDefault())
}
