// Package framework guesses the application framework of a project directory.
package framework

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Unknown is reported when no detector matches.
const Unknown = "Unknown"

const (
	packageJSONFileName = "package.json"
	goModuleFileName    = "go.mod"
	projectFileSuffix   = ".csproj"
	goFrameworkFormat   = "Go (%s)"
	goFrameworkName     = "Go"
)

type project struct {
	directory    string
	dependencies map[string]string
	loaded       bool
}

type detector struct {
	name  string
	check func(*project) bool
}

var detectors = []detector{
	{name: "Next.js", check: fileCheck("next.config.js", "next.config.mjs", "next.config.ts")},
	{name: "Nuxt.js", check: fileCheck("nuxt.config.js", "nuxt.config.ts")},
	{name: "Gatsby", check: fileCheck("gatsby-config.js", "gatsby-config.ts")},
	{name: "SvelteKit", check: fileCheck("svelte.config.js")},
	{name: "Angular", check: fileCheck("angular.json")},
	{name: "React", check: func(current *project) bool {
		return current.hasDependency("react-scripts") || (current.hasDependency("react") && current.hasDependency("react-dom"))
	}},
	{name: "Vue.js", check: func(current *project) bool {
		return current.exists("vue.config.js") || current.hasDependency("vue")
	}},
	{name: "Express.js", check: func(current *project) bool {
		return current.hasDependency("express")
	}},
	{name: "Laravel", check: fileCheck("artisan")},
	{name: "Django", check: fileCheck("manage.py")},
	{name: "Ruby on Rails", check: fileCheck(filepath.Join("config", "routes.rb"))},
	{name: "ASP.NET Core", check: func(current *project) bool {
		entries, err := os.ReadDir(current.directory)
		if err != nil {
			return false
		}
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), projectFileSuffix) {
				return true
			}
		}
		return false
	}},
	{name: "Flutter", check: fileCheck("pubspec.yaml")},
}

// Detect returns the name of the first framework whose marker is present in
// directory, Unknown when none matches.
func Detect(directory string) string {
	current := &project{directory: directory}
	for _, candidate := range detectors {
		if candidate.check(current) {
			return candidate.name
		}
	}
	if modulePath, found := goModulePath(directory); found {
		if modulePath == "" {
			return goFrameworkName
		}
		return fmt.Sprintf(goFrameworkFormat, modulePath)
	}
	return Unknown
}

func fileCheck(fileNames ...string) func(*project) bool {
	return func(current *project) bool {
		for _, fileName := range fileNames {
			if current.exists(fileName) {
				return true
			}
		}
		return false
	}
}

func (current *project) exists(fileName string) bool {
	_, err := os.Stat(filepath.Join(current.directory, fileName))
	return err == nil
}

// hasDependency consults dependencies and devDependencies of package.json.
// An unreadable or malformed manifest has no dependencies.
func (current *project) hasDependency(name string) bool {
	if !current.loaded {
		current.loaded = true
		current.dependencies = readDependencies(filepath.Join(current.directory, packageJSONFileName))
	}
	_, found := current.dependencies[name]
	return found
}

func readDependencies(manifestPath string) map[string]string {
	// #nosec G304
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil
	}
	merged := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, version := range manifest.Dependencies {
		merged[name] = version
	}
	for name, version := range manifest.DevDependencies {
		merged[name] = version
	}
	return merged
}

func goModulePath(directory string) (string, bool) {
	modulePath := filepath.Join(directory, goModuleFileName)
	// #nosec G304
	content, err := os.ReadFile(modulePath)
	if err != nil {
		return "", false
	}
	parsed, parseError := modfile.ParseLax(modulePath, content, nil)
	if parseError != nil || parsed.Module == nil {
		return "", true
	}
	return parsed.Module.Mod.Path, true
}
