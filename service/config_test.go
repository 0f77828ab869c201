package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPrecedence(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BLOGLY_ADDR=:9000\nBLOGLY_LOG_FORMAT=json\n"), 0644))

	// Variables already in the environment win over the file.
	t.Setenv("BLOGLY_LOG_FORMAT", "console")
	t.Setenv("BLOGLY_SHUTDOWN_TIMEOUT", "3s")
	t.Cleanup(func() { os.Unsetenv("BLOGLY_ADDR") })

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigBadDuration(t *testing.T) {
	t.Setenv("BLOGLY_SHUTDOWN_TIMEOUT", "soon")
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Driver = "sqlite" }, true},
		{"postgres without url", func(c *Config) { c.Driver = "postgres" }, true},
		{"postgres with url", func(c *Config) {
			c.Driver = "postgres"
			c.DatabaseURL = "postgres://localhost/blogly"
		}, false},
		{"badger without path", func(c *Config) { c.BadgerPath = "" }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"empty addr", func(c *Config) { c.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
