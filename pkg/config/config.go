// Package config provides the optional settings file for pychmod. Operators
// can persist their preferred default modes and flags instead of passing them
// on every invocation; command-line flags always win over file values. The
// file is YAML and is looked up under the user config directory unless a
// path is given explicitly.
package config

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/megaspaz/pychmod/pkg/errors"
	"github.com/megaspaz/pychmod/pkg/fsutil"
)

// AppName is the name of the application used in paths.
const AppName = "pychmod"

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Default modes, 4 octal digits each.
	DirPerms  string `yaml:"dir_perms,omitempty"`
	FilePerms string `yaml:"file_perms,omitempty"`
	ExecPerms string `yaml:"exec_perms,omitempty"`

	// Traversal settings.
	FollowSymlinks bool `yaml:"follow_symlinks"`
	Verbose        bool `yaml:"verbose"`

	// Output settings.
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			DirPerms:  fsutil.DirPermsDefault,
			FilePerms: fsutil.FilePermsDefault,
			ExecPerms: fsutil.ExecPermsDefault,
			LogLevel:  "info",
		},
	}
}

// GetDefaultConfigPath returns the default location of the settings file,
// e.g. ~/.config/pychmod/config.yaml on Linux.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, "config.yaml"), nil
}

// LoadConfig loads configuration from a file. A missing file is not an
// error: the defaults are returned so the tool works without any setup.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	// Write to a temp file first so a crash cannot leave a torn config.
	tempPath := absPath + ".tmp"
	if err := os.WriteFile(tempPath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	for name, perms := range map[string]string{
		"dir_perms":  c.Settings.DirPerms,
		"file_perms": c.Settings.FilePerms,
		"exec_perms": c.Settings.ExecPerms,
	} {
		if _, err := fsutil.ParseMode(perms); err != nil {
			return errors.Wrapf(err, "%s", name)
		}
	}
	return nil
}

// applyDefaults fills in defaults for any setting the file left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Settings.DirPerms == "" {
		c.Settings.DirPerms = defaults.Settings.DirPerms
	}
	if c.Settings.FilePerms == "" {
		c.Settings.FilePerms = defaults.Settings.FilePerms
	}
	if c.Settings.ExecPerms == "" {
		c.Settings.ExecPerms = defaults.Settings.ExecPerms
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
