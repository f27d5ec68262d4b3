package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigLayersOverVulkanDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.VSync)
	assert.Equal(t, 2, cfg.FramesInFlight)
	assert.Equal(t, uint32(5000), cfg.DescriptorSetsPerPool)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesPresentFields(t *testing.T) {
	path := writeTOML(t, `
log_level = "debug"

[window]
width = 1920
height = 1080
title = "custom"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, "custom", cfg.Window.Title)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Omitted fields must keep their defaults.
	assert.True(t, cfg.VSync)
	assert.Equal(t, 2, cfg.FramesInFlight)
}

func TestLoadConfigOmittedVSyncKeepsDefaultTrue(t *testing.T) {
	path := writeTOML(t, `log_level = "warn"`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.VSync, "an absent vsync key must not clobber DefaultConfig's true")
}

func TestLoadConfigExplicitFalseOverridesVSync(t *testing.T) {
	path := writeTOML(t, `vsync = false`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.VSync, "an explicit false must override the default")
}

func TestLoadConfigExplicitFalseOverridesEnableValidation(t *testing.T) {
	path := writeTOML(t, `enable_validation = false`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.EnableValidation)
}

func TestLogLevelValueUnrecognizedDefaultsToInfo(t *testing.T) {
	cfg := Config{LogLevel: "nonsense"}
	assert.Equal(t, DefaultConfig().LogLevelValue(), cfg.LogLevelValue())
}

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zircon.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
