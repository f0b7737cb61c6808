package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func restoreGlobalLogger(t *testing.T) {
	t.Helper()
	level := zerolog.GlobalLevel()
	logger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL", "LOG_PRETTY", "LOG_FILE")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, LogConfig{Level: "info"}, cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("LOG_FILE", "/tmp/agentctl.log")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, LogConfig{Level: "debug", Pretty: true, File: "/tmp/agentctl.log"}, cfg)
}

func TestInitWritesJSONToStderr(t *testing.T) {
	restoreGlobalLogger(t)
	var buf bytes.Buffer

	logger, closer, err := Init(LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	logger.Info().Msg("hidden")
	logger.Warn().Str("kind", "staking").Msg("poll failed")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"kind":"staking"`)
	assert.Contains(t, buf.String(), `"message":"poll failed"`)
}

func TestInitWritesToFile(t *testing.T) {
	restoreGlobalLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "agentctl.log")

	logger, closer, err := Init(LogConfig{Level: "info", File: path}, &bytes.Buffer{})
	require.NoError(t, err)
	logger.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, _, err := Init(LogConfig{Level: "loud"}, &bytes.Buffer{})

	require.Error(t, err)
}
