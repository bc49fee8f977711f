package config_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/camt-import/internal/config"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := config.InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "data", cfg.Data.Directory)
	assert.False(t, cfg.Import.StrictMatching)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("CAMT_LOG_LEVEL", "debug")
	t.Setenv("CAMT_IMPORT_STRICT_MATCHING", "true")

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Import.StrictMatching)
}

func TestInitializeConfigInvalidLevel(t *testing.T) {
	t.Setenv("CAMT_LOG_LEVEL", "chatty")

	_, err := config.InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	logger := config.ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
