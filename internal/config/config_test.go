package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/koustreak/bootprofile/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bootprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromPath_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromPath(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "filiale", cfg.Project.Name)
	assert.Equal(t, "1.0.0", cfg.Project.Version)
	assert.Equal(t, "juergenzimmermann", cfg.Project.ImageRepository)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "jdbc:postgresql://localhost/filiale", cfg.Database.PostgresURL)
	assert.Equal(t, 24*time.Hour, cfg.Filestore.PresignTTL)
}

func TestLoadConfigFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
project:
  name: kunde
  version: 2.0.0
server:
  listen: 127.0.0.1:9090
filestore:
  bucket: ci-profiles
  presign_ttl: 1h
`)

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "kunde", cfg.ProjectInfo().Name)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Listen)
	assert.Equal(t, "ci-profiles", cfg.FilestoreConfig().Bucket)
	assert.Equal(t, time.Hour, cfg.FilestoreConfig().PresignTTL)
}

func TestLoadConfigFromPath_Env(t *testing.T) {
	t.Setenv("BOOTPROFILE_PROJECT_VERSION", "3.1.4")

	cfg, err := LoadConfigFromPath(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "3.1.4", cfg.Project.Version)
}

func TestLoadConfigFromPath_Missing(t *testing.T) {
	_, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty project", func(c *Config) { c.Project.Name = "" }},
		{"empty version", func(c *Config) { c.Project.Version = "" }},
		{"empty listen", func(c *Config) { c.Server.Listen = "" }},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"zero connect timeout", func(c *Config) { c.Database.ConnectTimeout = 0 }},
		{"empty bucket", func(c *Config) { c.Filestore.Bucket = "" }},
		{"ttl too long", func(c *Config) { c.Filestore.PresignTTL = 30 * 24 * time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfigFromPath(writeConfig(t, "{}\n"))
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

func TestDatabaseFor(t *testing.T) {
	cfg, err := LoadConfigFromPath(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	dc, err := cfg.DatabaseFor("")
	require.NoError(t, err)
	assert.Equal(t, database.DriverPostgres, dc.Driver)
	assert.Equal(t, "filiale", dc.Database)
	assert.Equal(t, 10*time.Second, dc.ConnectTimeout)

	dc, err = cfg.DatabaseFor("jdbc:mysql://localhost/filiale")
	require.NoError(t, err)
	assert.Equal(t, database.DriverMySQL, dc.Driver)
	assert.Equal(t, "p", dc.Password)
}

func TestLoggerConfig(t *testing.T) {
	cfg, err := LoadConfigFromPath(writeConfig(t, "log:\n  file: /tmp/bootprofile.log\n"))
	require.NoError(t, err)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "/tmp/bootprofile.log", lc.File)
	assert.Equal(t, 10, lc.MaxSizeMB)
}
