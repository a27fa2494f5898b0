package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/semka95/repositories/backend/cmd"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAppConfig(t *testing.T) {
	logger := zap.NewNop()

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
server:
  address: ":8080"
  timeout: 5
  shutdown_timeout: 10
  otlp_address: "localhost:4317"
store:
  seed: true
`)
		cfg, err := cmd.AppConfig(path, logger)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Address)
		assert.Equal(t, 5, cfg.Server.Timeout)
		assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "localhost:4317", cfg.Server.OtlpAddress)
		assert.True(t, cfg.Store.Seed)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "server:\n  address: \":9000\"\n")
		cfg, err := cmd.AppConfig(path, logger)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Address)
		assert.Equal(t, cmd.DefaultConfig().Server.Timeout, cfg.Server.Timeout)
		assert.False(t, cfg.Store.Seed)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "server:\n  adress: \":9000\"\n")
		_, err := cmd.AppConfig(path, logger)
		assert.ErrorContains(t, err, "can't decode config file")
	})

	t.Run("bad timeout", func(t *testing.T) {
		path := writeConfig(t, "server:\n  timeout: 0\n")
		_, err := cmd.AppConfig(path, logger)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cmd.AppConfig(filepath.Join(t.TempDir(), "none.yaml"), logger)
		assert.ErrorContains(t, err, "can't open config file")
	})
}

func TestLoadConfig(t *testing.T) {
	logger := zap.NewNop()

	t.Run("env unset", func(t *testing.T) {
		t.Setenv(cmd.ConfigEnv, "")
		require.NoError(t, os.Unsetenv(cmd.ConfigEnv))

		cfg, err := cmd.LoadConfig(logger)
		require.NoError(t, err)
		assert.Equal(t, cmd.DefaultConfig(), cfg)
	})

	t.Run("env set", func(t *testing.T) {
		t.Setenv(cmd.ConfigEnv, writeConfig(t, "server:\n  address: \":7000\"\n"))

		cfg, err := cmd.LoadConfig(logger)
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Server.Address)
	})
}
