package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaspaz/pychmod/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0755", cfg.Settings.DirPerms)
	assert.Equal(t, "0644", cfg.Settings.FilePerms)
	assert.Equal(t, "0755", cfg.Settings.ExecPerms)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.False(t, cfg.Settings.FollowSymlinks)
	assert.False(t, cfg.Settings.Verbose)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  dir_perms: "0750"
  exec_perms: "0700"
  follow_symlinks: true
  log_level: debug`

	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0750", cfg.Settings.DirPerms)
	assert.Equal(t, "0700", cfg.Settings.ExecPerms)
	// Unset values fall back to defaults
	assert.Equal(t, "0644", cfg.Settings.FilePerms)
	assert.True(t, cfg.Settings.FollowSymlinks)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: [not a map"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestLoadConfigInvalidMode(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings:\n  file_perms: \"75\"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
	assert.Contains(t, err.Error(), "file_perms")
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.DirPerms = "0700"
	cfg.Settings.Verbose = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Contains(t, path, AppName)
	assert.Equal(t, "config.yaml", filepath.Base(path))
}
