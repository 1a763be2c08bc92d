package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoEnvFile(t *testing.T) {
	t.Setenv("REFLOW_LOG_LEVEL", "")
	t.Setenv("REFLOW_LOG_JSON", "")
	t.Setenv("REFLOW_SCENARIOS_DIR", "")
	t.Setenv("REFLOW_UPDATE_GOLDEN", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, "testdata/scenarios", cfg.ScenariosDir)
	assert.False(t, cfg.GoldenUpdateMode)
}

func TestLoad_ReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("REFLOW_LOG_LEVEL", "debug")
	t.Setenv("REFLOW_LOG_JSON", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	_, err := Load("/nonexistent/path/to/.env")
	require.NoError(t, err)
}
