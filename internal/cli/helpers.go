package cli

import (
	"github.com/megaspaz/pychmod/pkg/config"
	"github.com/megaspaz/pychmod/pkg/errors"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	LogLevel   *string
)

// loadConfig loads the settings file named by --config, or the default one
// when no path was given. A missing file yields the built-in defaults.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	if configPath != "" {
		return config.LoadConfig(configPath)
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default config path")
	}
	return config.LoadConfig(defaultPath)
}
