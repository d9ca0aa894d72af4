package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.True(t, settings.Output.SQLite.Enabled, "SQLite is the preferred backend")
	assert.False(t, settings.Output.File.Enabled)
	assert.Equal(t, 500*time.Millisecond, settings.Resolver.Interval)
	assert.Equal(t, 6, settings.Resolver.MaxAttempts)

	// Backend paths are filled in under the data directory.
	assert.NotEmpty(t, settings.DataPath)
	assert.Equal(t, filepath.Join(settings.DataPath, "sightings.db"), settings.Output.SQLite.Path)
	assert.Equal(t, filepath.Join(settings.DataPath, "sightings.json"), settings.Output.File.Path)
	assert.Equal(t, filepath.Join(settings.DataPath, "logs", "perchlog.log"), settings.Main.Log.Path)
}

func TestApplyDataPathDefaultsKeepsExplicitPaths(t *testing.T) {
	settings := &Settings{DataPath: "/var/lib/perchlog"}
	settings.Output.SQLite.Path = "/tmp/custom.db"

	require.NoError(t, applyDataPathDefaults(settings))

	assert.Equal(t, "/tmp/custom.db", settings.Output.SQLite.Path)
	assert.Equal(t, "/var/lib/perchlog/sightings.json", settings.Output.File.Path)
}

func TestSaveYAMLConfig(t *testing.T) {
	settings := &Settings{DataPath: "/var/lib/perchlog"}
	settings.Main.Name = "PerchlogNode"
	settings.Output.SQLite.Enabled = true

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, SaveYAMLConfig(configPath, settings))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PerchlogNode")
}

func TestGetDefaultConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/home/tester/.config")

	paths, err := GetDefaultConfigPaths()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "/home/tester/.config/perchlog", paths[0])
	assert.Equal(t, ".", paths[1])
}
