// Package config resolves the file-selection configuration shared by every devassist command.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/temirov/devassist/internal/utils"
)

var (
	defaultIncludeExtensions = []string{".html", ".css", ".js", ".jsx", ".ts", ".tsx", ".json", ".py", ".md", ".sh", ".yml", ".yaml"}
	defaultIgnoreDirectories = []string{"node_modules", utils.GitDirectoryName, ".vscode", "dist", "build"}
	defaultIgnoreFiles       = []string{"package-lock.json", "yarn.lock", "npm-debug.log"}
)

// Config describes which files a traversal considers. Values are snapshots:
// methods return modified copies and never change the receiver.
type Config struct {
	IncludeExt     []string `mapstructure:"includeExt" json:"includeExt" yaml:"includeExt"`
	IgnoreDirs     []string `mapstructure:"ignoreDirs" json:"ignoreDirs" yaml:"ignoreDirs"`
	IgnoreFiles    []string `mapstructure:"ignoreFiles" json:"ignoreFiles" yaml:"ignoreFiles"`
	IgnoreExt      []string `mapstructure:"ignoreExt" json:"ignoreExt" yaml:"ignoreExt"`
	IgnorePatterns []string `mapstructure:"ignorePatterns" json:"ignorePatterns" yaml:"ignorePatterns"`
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() Config {
	return Config{
		IncludeExt:     cloneStrings(defaultIncludeExtensions),
		IgnoreDirs:     cloneStrings(defaultIgnoreDirectories),
		IgnoreFiles:    cloneStrings(defaultIgnoreFiles),
		IgnoreExt:      []string{},
		IgnorePatterns: []string{},
	}
}

// Merge overlays override onto the receiver. IncludeExt is replaced when the
// override lists any extension; the ignore lists are unioned without duplicates.
func (config Config) Merge(override Config) Config {
	result := config.clone()
	if len(override.IncludeExt) > 0 {
		result.IncludeExt = cloneStrings(override.IncludeExt)
	}
	result.IgnoreDirs = union(result.IgnoreDirs, override.IgnoreDirs)
	result.IgnoreFiles = union(result.IgnoreFiles, override.IgnoreFiles)
	result.IgnoreExt = union(result.IgnoreExt, override.IgnoreExt)
	result.IgnorePatterns = union(result.IgnorePatterns, override.IgnorePatterns)
	return result
}

// WithIgnoredFiles returns a copy whose IgnoreFiles also contains fileNames.
// Empty names are skipped.
func (config Config) WithIgnoredFiles(fileNames ...string) Config {
	additions := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		if fileName != utils.EmptyString {
			additions = append(additions, fileName)
		}
	}
	result := config.clone()
	result.IgnoreFiles = union(result.IgnoreFiles, additions)
	return result
}

// AllowsFile reports whether a file passes the extension allow-list: its
// extension including the dot, or its exact base name, is listed in IncludeExt.
func (config Config) AllowsFile(baseName, extension string) bool {
	for _, allowed := range config.IncludeExt {
		if allowed == baseName || (extension != utils.EmptyString && allowed == extension) {
			return true
		}
	}
	return false
}

// YAML renders the configuration for display.
func (config Config) YAML() (string, error) {
	encoded, marshalError := yaml.Marshal(config)
	if marshalError != nil {
		return utils.EmptyString, fmt.Errorf("render configuration: %w", marshalError)
	}
	return string(encoded), nil
}

func (config Config) clone() Config {
	return Config{
		IncludeExt:     cloneStrings(config.IncludeExt),
		IgnoreDirs:     cloneStrings(config.IgnoreDirs),
		IgnoreFiles:    cloneStrings(config.IgnoreFiles),
		IgnoreExt:      cloneStrings(config.IgnoreExt),
		IgnorePatterns: cloneStrings(config.IgnorePatterns),
	}
}

func union(base []string, additions []string) []string {
	combined := make([]string, 0, len(base)+len(additions))
	combined = append(combined, base...)
	combined = append(combined, additions...)
	return utils.DeduplicatePatterns(combined)
}

func cloneStrings(values []string) []string {
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
