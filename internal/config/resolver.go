package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/utils"
)

const (
	configurationFallbackMessage  = "using default configuration"
	configurationLoadedMessage    = "loaded configuration override"
	configurationPathLogKey       = "path"
	statConfigurationErrorFormat  = "stat configuration %s: %w"
	configurationIsDirectoryError = "configuration path %s is a directory"
	readConfigurationErrorFormat  = "read configuration from %s: %w"
	decodeConfigurationFormat     = "decode configuration from %s: %w"
)

// Resolve returns the built-in defaults merged with the override file found at
// explicitPath, or at .aiconfig.json inside workingDirectory when explicitPath is empty.
// A missing file yields the defaults silently. A file that cannot be read or
// decoded is reported as a warning and the defaults are returned.
func Resolve(workingDirectory, explicitPath string, logger *zap.Logger) Config {
	logger = utils.LoggerOrNop(logger)
	defaults := Defaults()

	configurationPath := resolveConfigurationPath(workingDirectory, explicitPath)
	override, found, loadError := loadOverride(configurationPath)
	if loadError != nil {
		logger.Warn(configurationFallbackMessage, zap.String(configurationPathLogKey, configurationPath), zap.Error(loadError))
		return defaults
	}
	if !found {
		return defaults
	}
	logger.Debug(configurationLoadedMessage, zap.String(configurationPathLogKey, configurationPath))
	return defaults.Merge(override)
}

func resolveConfigurationPath(workingDirectory, explicitPath string) string {
	if explicitPath != utils.EmptyString {
		if filepath.IsAbs(explicitPath) || workingDirectory == utils.EmptyString {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

func loadOverride(path string) (Config, bool, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf(statConfigurationErrorFormat, path, statError)
	}
	if info.IsDir() {
		return Config{}, false, fmt.Errorf(configurationIsDirectoryError, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == utils.EmptyString {
		reader.SetConfigType("json")
	}
	if readError := reader.ReadInConfig(); readError != nil {
		return Config{}, false, fmt.Errorf(readConfigurationErrorFormat, path, readError)
	}
	var override Config
	if decodeError := reader.Unmarshal(&override); decodeError != nil {
		return Config{}, false, fmt.Errorf(decodeConfigurationFormat, path, decodeError)
	}
	return override, true, nil
}
