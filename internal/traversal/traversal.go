// Package traversal walks a project directory and reports the files that survive
// the ignore rules and the extension allow-list.
package traversal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/ignore"
	"github.com/temirov/devassist/internal/utils"
)

const (
	resolveRootErrorFormat    = "traversal: resolve root %s: %w"
	resolveBaseErrorFormat    = "traversal: resolve base %s: %w"
	readDirectoryErrorFormat  = "traversal: read directory %s: %w"
	relativePathErrorFormat   = "traversal: relative path for %s: %w"
	visitFileErrorFormat      = "traversal: visit %s: %w"
	compileMatcherErrorFormat = "traversal: compile ignore rules: %w"
	skippedIgnoredMessage     = "skipping ignored entry"
	skippedExtensionMessage   = "skipping file outside include list"
	skippedIrregularMessage   = "skipping non-regular entry"
	skippedNotIncludedMessage = "skipping file outside included paths"
	relativePathLogKey        = "path"
)

// FileVisitor receives the absolute path of every file that survives filtering.
// Returning an error stops the traversal.
type FileVisitor func(absolutePath string) error

// Options configures a traversal.
type Options struct {
	// BaseDirectory anchors relative paths and the .gitignore lookup. Defaults to the root directory.
	BaseDirectory string
	// UseGitIgnore adds the rules of BaseDirectory/.gitignore.
	UseGitIgnore bool
	// IncludedPaths restricts listing mode to files equal to or beneath one of these absolute paths.
	IncludedPaths []string
	// AdditionalRules are appended to the compiled ignore rules.
	AdditionalRules []string
	Logger          *zap.Logger
}

type entryVisitor func(absolutePath string, relativePath string) error

// Walk invokes visit for every file under rootDirectory that is neither ignored
// nor outside the extension allow-list. Children are visited depth first in
// directory-read order. Any read failure or visitor error aborts the walk.
func Walk(rootDirectory string, configuration config.Config, visit FileVisitor, options Options) error {
	return traverse(rootDirectory, configuration, options, func(absolutePath string, _ string) error {
		return visit(absolutePath)
	})
}

// List returns the base-relative, forward-slash paths that Walk would visit,
// further restricted to Options.IncludedPaths when any are given.
func List(rootDirectory string, configuration config.Config, options Options) ([]string, error) {
	logger := utils.LoggerOrNop(options.Logger)
	includedPaths := make([]string, 0, len(options.IncludedPaths))
	for _, includedPath := range options.IncludedPaths {
		includedPaths = append(includedPaths, filepath.Clean(includedPath))
	}

	relativePaths := []string{}
	traverseError := traverse(rootDirectory, configuration, options, func(absolutePath string, relativePath string) error {
		if len(includedPaths) > 0 && !withinAny(absolutePath, includedPaths) {
			logger.Debug(skippedNotIncludedMessage, zap.String(relativePathLogKey, relativePath))
			return nil
		}
		relativePaths = append(relativePaths, relativePath)
		return nil
	})
	if traverseError != nil {
		return nil, traverseError
	}
	return relativePaths, nil
}

func traverse(rootDirectory string, configuration config.Config, options Options, visit entryVisitor) error {
	logger := utils.LoggerOrNop(options.Logger)

	absoluteRoot, rootError := filepath.Abs(rootDirectory)
	if rootError != nil {
		return fmt.Errorf(resolveRootErrorFormat, rootDirectory, rootError)
	}
	baseDirectory := options.BaseDirectory
	if baseDirectory == utils.EmptyString {
		baseDirectory = absoluteRoot
	}
	absoluteBase, baseError := filepath.Abs(baseDirectory)
	if baseError != nil {
		return fmt.Errorf(resolveBaseErrorFormat, baseDirectory, baseError)
	}

	matcher, compileError := ignore.Compile(configuration, absoluteBase, options.UseGitIgnore,
		ignore.WithLogger(logger),
		ignore.WithAdditionalRules(options.AdditionalRules...))
	if compileError != nil {
		return fmt.Errorf(compileMatcherErrorFormat, compileError)
	}

	walker := directoryWalker{
		baseDirectory: absoluteBase,
		configuration: configuration,
		matcher:       matcher,
		visit:         visit,
		logger:        logger,
	}
	return walker.walkDirectory(absoluteRoot)
}

type directoryWalker struct {
	baseDirectory string
	configuration config.Config
	matcher       *ignore.Matcher
	visit         entryVisitor
	logger        *zap.Logger
}

func (walker directoryWalker) walkDirectory(directoryPath string) error {
	entries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return fmt.Errorf(readDirectoryErrorFormat, directoryPath, readError)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(directoryPath, entry.Name())
		relativePath, relativeError := utils.ToPosixRelative(walker.baseDirectory, entryPath)
		if relativeError != nil {
			return fmt.Errorf(relativePathErrorFormat, entryPath, relativeError)
		}

		isDirectory := entry.IsDir()
		if walker.matcher.Ignores(relativePath, isDirectory) {
			walker.logger.Debug(skippedIgnoredMessage, zap.String(relativePathLogKey, relativePath))
			continue
		}

		if isDirectory {
			if walkError := walker.walkDirectory(entryPath); walkError != nil {
				return walkError
			}
			continue
		}

		if !entry.Type().IsRegular() {
			walker.logger.Debug(skippedIrregularMessage, zap.String(relativePathLogKey, relativePath))
			continue
		}

		if !walker.configuration.AllowsFile(entry.Name(), filepath.Ext(entry.Name())) {
			walker.logger.Debug(skippedExtensionMessage, zap.String(relativePathLogKey, relativePath))
			continue
		}

		if visitError := walker.visit(entryPath, relativePath); visitError != nil {
			return fmt.Errorf(visitFileErrorFormat, relativePath, visitError)
		}
	}
	return nil
}

func withinAny(absolutePath string, includedPaths []string) bool {
	for _, includedPath := range includedPaths {
		if absolutePath == includedPath || strings.HasPrefix(absolutePath, includedPath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
