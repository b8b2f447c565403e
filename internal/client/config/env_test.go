package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv(EnvServerURL, "https://blog.example.com")
	t.Setenv(EnvStorePath, "/var/lib/gophblog/session.db")
	t.Setenv(EnvRequestTimeout, "30s")
	t.Setenv(EnvMaxImageBytes, "1024")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "console")

	cfg := defaults()
	parseEnv(&cfg, missingDotenv(t))

	assert.Equal(t, Config{
		ServerURL:      "https://blog.example.com",
		StorePath:      "/var/lib/gophblog/session.db",
		RequestTimeout: 30 * time.Second,
		MaxImageBytes:  1024,
		LogLevel:       "debug",
		LogFormat:      "console",
	}, cfg)
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	cfg := defaults()
	parseEnv(&cfg, missingDotenv(t))
	assert.Equal(t, defaults(), cfg)
}

func TestParseEnv_TimeoutInSeconds(t *testing.T) {
	t.Setenv(EnvRequestTimeout, "7")
	cfg := defaults()
	parseEnv(&cfg, missingDotenv(t))
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_InvalidValuesPanic(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv(EnvRequestTimeout, "soon")
		cfg := defaults()
		assert.Panics(t, func() { parseEnv(&cfg, missingDotenv(t)) })
	})
	t.Run("image bytes", func(t *testing.T) {
		t.Setenv(EnvMaxImageBytes, "-5")
		cfg := defaults()
		assert.Panics(t, func() { parseEnv(&cfg, missingDotenv(t)) })
	})
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOPHBLOG_LOG_FORMAT=console\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(EnvLogFormat) })

	cfg := defaults()
	parseEnv(&cfg, path)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestParseEnv_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOPHBLOG_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv(EnvLogLevel, "error")

	cfg := defaults()
	parseEnv(&cfg, path)
	assert.Equal(t, "error", cfg.LogLevel)
}
