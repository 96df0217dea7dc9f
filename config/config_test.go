package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := DefaultConfig()
	want.Game.Seed = 42
	want.Database.Driver = DriverSQLite3
	want.Database.DSN = "./lives.db"
	require.NoError(t, SaveConfig(want, path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GAME_SEED", "7")
	t.Setenv("PORT", "9090")
	t.Setenv("GAME_COMPRESS_SAVES", "true")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Game.CompressSaves)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Database.Driver = DriverSQLite3
	cfg.Database.DSN = ""
	assert.Error(t, cfg.Validate())
}
