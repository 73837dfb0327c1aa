package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/devassist/internal/utils"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	WorkingDirectory string
	Force            bool
}

// InitializeConfiguration writes the default configuration as .aiconfig.json
// into the working directory and returns the written path.
func InitializeConfiguration(options InitOptions) (string, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == utils.EmptyString {
		current, err := os.Getwd()
		if err != nil {
			return utils.EmptyString, fmt.Errorf("determine working directory for configuration: %w", err)
		}
		workingDirectory = current
	}
	destinationPath := filepath.Join(workingDirectory, utils.ConfigFileName)

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return utils.EmptyString, fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return utils.EmptyString, fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	template, err := json.MarshalIndent(Defaults(), utils.EmptyString, "  ")
	if err != nil {
		return utils.EmptyString, fmt.Errorf("encode configuration template: %w", err)
	}
	template = append(template, '\n')
	if err := os.WriteFile(destinationPath, template, 0o600); err != nil {
		return utils.EmptyString, fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
