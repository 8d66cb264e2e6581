package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/grimoire/config"
	"github.com/on-the-ground/grimoire/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grimoire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
grimoire:
  log:
    level: debug
    encoding: json
  retry:
    max_attempts: 5
  validation:
    min_power: 7
  dispatch:
    strict: true
  tracing:
    enabled: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, log.LogDebug, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 7, cfg.Validation.MinPower)
	assert.True(t, cfg.Dispatch.Strict)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "grimoire:\n  retry:\n    max_attempts: 5\n")
	t.Setenv("GRIMOIRE_RETRY_MAX_ATTEMPTS", "9")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Retry.MaxAttempts)
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	path := writeConfig(t, `
grimoire:
  log:
    level: shouting
    encoding: xml
  retry:
    max_attempts: 0
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, log.LogInfo, cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "grimoire: [unclosed")
	_, err := config.Load(path)
	assert.Error(t, err)
}
