package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: truthlens-test\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "truthlens-test", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.HTTPPort)
	assert.Equal(t, 0.3, cfg.Detection.KeywordWeight)
	assert.Equal(t, 0.5, cfg.Detection.PatternWeight)
	assert.Equal(t, 0.2, cfg.Detection.DetectionThreshold)
	assert.True(t, cfg.Detection.MaskSensitive)
	assert.Equal(t, 5, cfg.Detection.MinContentLength)
	assert.Equal(t, 10000, cfg.Detection.MaxContentLength)
	assert.Equal(t, 10, cfg.Detection.MaxBulkItems)
	assert.Equal(t, 10*time.Minute, cfg.Detection.CacheTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  http_port: 9000
detection:
  keyword_weight: 0.4
  max_bulk_items: 5
redis:
  enabled: true
  host: cache
  port: 6380
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, 0.4, cfg.Detection.KeywordWeight)
	assert.Equal(t, 5, cfg.Detection.MaxBulkItems)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TRUTHLENS_APP_ENVIRONMENT", "production")
	t.Setenv("TRUTHLENS_ADMIN_TOKEN", "s3cret")

	cfg, err := config.Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.Admin.Token)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidDetectionSettings(t *testing.T) {
	path := writeConfig(t, "detection:\n  pattern_weight: -1\n")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "non-negative")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: mysql\n")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "mysql")
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, DBName: "tl", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/tl?sslmode=disable", cfg.DSN())
}
