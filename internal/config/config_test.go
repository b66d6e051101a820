package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads file and fills defaults", func(t *testing.T) {
		// Given: a config file that only sets a few keys
		path := writeConfig(t, `
log-level: debug
http:
  addr: ":9999"
redis:
  snapshot-ttl: 30m
`)

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest fall back to defaults
		require.NoError(t, err)
		require.Equal(t, "debug", conf.LogLevel)
		require.Equal(t, ":9999", conf.HTTP.Addr)
		require.Equal(t, "./web", conf.HTTP.WebDir)
		require.Equal(t, 5*time.Second, conf.HTTP.ShutdownTimeout)
		require.Equal(t, "localhost:6379", conf.Redis.Addr)
		require.Equal(t, 30*time.Minute, conf.Redis.SnapshotTTL)
		require.False(t, conf.Telemetry.Enabled)
		require.Equal(t, 10*time.Second, conf.Session.Heartbeat)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "redis:\n  addr: \"redis:6379\"\n")
		t.Setenv("REDIS_CONNSTRING", "cache:6380")

		conf, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "cache:6380", conf.Redis.Addr)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		require.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
