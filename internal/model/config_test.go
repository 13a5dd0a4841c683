package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, StorageDriverJSON, cfg.Storage.Driver)
	assert.True(t, cfg.GitHub.Enabled)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 10, cfg.GitHub.PageSize)
	assert.True(t, cfg.Quotes.Enabled)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"storage:\n  driver: sqlite\ngithub:\n  enabled: false\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.False(t, cfg.GitHub.Enabled)
	// Untouched sections keep their defaults.
	assert.True(t, cfg.Quotes.Enabled)
	assert.Equal(t, 10, cfg.GitHub.PageSize)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"storage:\n  driver: postgres\n",
	), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestSaveConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := defaultAppConfig()
	want.Storage.Driver = StorageDriverSQLite
	want.GitHub.PageSize = 25
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StorageDriverSQLite, got.Storage.Driver)
	assert.Equal(t, 25, got.GitHub.PageSize)
}
