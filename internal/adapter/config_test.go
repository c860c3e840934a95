package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/loofah/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  url: http://jobs.internal:8080
sync:
  poll_interval: 500ms
ui:
  page_size: 50
  default_category: campus
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://jobs.internal:8080", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Deadline)
	assert.Equal(t, 50, cfg.UI.PageSize)
	assert.Equal(t, "campus", cfg.UI.DefaultCategory)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  url: http://from-file\n")
	t.Setenv("LOOFAH_SERVER_URL", "http://from-env:5000")
	t.Setenv("LOOFAH_SYNC_DEADLINE", "1m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", cfg.Server.URL)
	assert.Equal(t, time.Minute, cfg.Sync.Deadline)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := writeConfig(t, "ui:\n  default_category: senior\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty url", func(c *Config) { c.Server.URL = "  " }},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"zero poll interval", func(c *Config) { c.Sync.PollInterval = 0 }},
		{"deadline below interval", func(c *Config) { c.Sync.Deadline = time.Second }},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
