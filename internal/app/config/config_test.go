package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "filesystem", cfg.Storage.Backend)
	assert.Equal(t, 30*time.Second, cfg.Processor.PollInterval())
	assert.Equal(t, 3, cfg.Processor.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Processor.StatusPollInterval())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout())
}

func TestLoadAppConfigOverridesAndSecrets(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "hunter2")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
environment: production
server:
  port: "9090"
database:
  driver: postgres
  postgres:
    host: db.internal
    user: bakbak
    password: ${TEST_PG_PASSWORD}
    dbname: bakbak
processor:
  poll_interval_ms: 5000
  concurrency: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "hunter2", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, 5*time.Second, cfg.Processor.PollInterval())
	assert.Equal(t, 8, cfg.Processor.Concurrency)
}

func TestLoadAppConfigRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))

	_, err := LoadAppConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid database driver")
}

func TestLoadAppConfigPostgresRequiresHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644))

	_, err := LoadAppConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := CreateDefaultConfig()
	original.Server.Port = "7070"
	require.NoError(t, SaveAppConfig(original, path))

	reloaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", reloaded.Server.Port)
	assert.Equal(t, original.Database.Driver, reloaded.Database.Driver)
}
