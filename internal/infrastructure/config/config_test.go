package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "PRODUCTS_API_URL", "PRODUCTS_API_TIMEOUT", "SESSION_TTL", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, "https://fakestoreapi.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.OTLP.Enabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRODUCTS_API_URL", "http://localhost:3000")
	t.Setenv("PRODUCTS_API_TIMEOUT", "2s")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Upstream.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.OTLP.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL, "unparsable values fall back to the default")
}

func TestOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
server:
  port: "7070"
  session_ttl: 5m
upstream:
  base_url: http://upstream.test
otlp:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := FromEnv()
	cfg.Server.Host = "127.0.0.1"
	require.NoError(t, cfg.Overlay(path))

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host, "fields absent from the file are kept")
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, "http://upstream.test", cfg.Upstream.BaseURL)
	assert.False(t, cfg.OTLP.Enabled)
}

func TestOverlay_MissingFile(t *testing.T) {
	cfg := FromEnv()
	assert.Error(t, cfg.Overlay(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadConfig_RejectsNonPositiveSessionTTL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	for _, ttl := range []string{"0", "0s", "-5m"} {
		t.Run(ttl, func(t *testing.T) {
			t.Setenv("SESSION_TTL", ttl)

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := FromEnv()
	cfg.Server.SessionTTL = time.Minute
	cfg.Upstream.Timeout = 0
	assert.NoError(t, cfg.Validate(), "a zero timeout disables it")

	cfg.Upstream.Timeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg.Upstream.Timeout = time.Second
	cfg.Server.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}
