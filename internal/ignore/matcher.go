// Package ignore compiles configuration ignore lists and .gitignore text into one matcher.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/utils"
)

const (
	directorySuffix        = "/"
	extensionWildcard      = "*"
	extensionDot           = "."
	currentDirectoryPrefix = "./"
	ruleSeparator          = "\n"

	readGitIgnoreErrorFormat = "ignore: read %s: %w"
	malformedRuleMessage     = "skipping malformed ignore rule"
	compiledRulesMessage     = "compiled ignore rules"
	ruleLogKey               = "rule"
	lineLogKey               = "line"
	baseDirectoryLogKey      = "base"
	ruleCountLogKey          = "rules"
)

// Matcher decides whether a base-relative path is excluded. It performs no
// filesystem access after Compile returns and is safe for concurrent reads.
type Matcher struct {
	rules    []string
	compiled gitignore.GitIgnore
}

// Option customizes compilation.
type Option func(*compileSettings)

type compileSettings struct {
	logger          *zap.Logger
	additionalRules []string
}

// WithLogger routes diagnostics about skipped rules to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(settings *compileSettings) {
		if logger != nil {
			settings.logger = logger
		}
	}
}

// WithAdditionalRules appends gitignore-syntax rules after every other source.
func WithAdditionalRules(rules ...string) Option {
	return func(settings *compileSettings) {
		settings.additionalRules = append(settings.additionalRules, rules...)
	}
}

// Compile builds the matcher for baseDirectory. Rules are added in this order:
// every IgnoreDirs entry bare and with a trailing slash, every IgnoreFiles entry,
// a wildcard per IgnoreExt entry, every IgnorePatterns glob, and finally the
// .gitignore text at baseDirectory when useGitIgnore is set. Later rules win.
func Compile(configuration config.Config, baseDirectory string, useGitIgnore bool, options ...Option) (*Matcher, error) {
	settings := compileSettings{logger: zap.NewNop()}
	for _, option := range options {
		option(&settings)
	}

	rules := configurationRules(configuration)
	if useGitIgnore {
		gitIgnoreRules, readError := readGitIgnore(baseDirectory)
		if readError != nil {
			return nil, readError
		}
		rules = append(rules, gitIgnoreRules...)
	}
	rules = append(rules, settings.additionalRules...)

	reportMalformed := func(ruleError gitignore.Error) bool {
		position := ruleError.Position()
		settings.logger.Warn(malformedRuleMessage,
			zap.Int(lineLogKey, position.Line),
			zap.String(ruleLogKey, ruleAt(rules, position.Line)),
			zap.Error(ruleError.Underlying()))
		return true
	}
	compiled := gitignore.New(strings.NewReader(strings.Join(rules, ruleSeparator)), baseDirectory, reportMalformed)
	settings.logger.Debug(compiledRulesMessage, zap.String(baseDirectoryLogKey, baseDirectory), zap.Int(ruleCountLogKey, len(rules)))

	return &Matcher{rules: rules, compiled: compiled}, nil
}

// Ignores reports whether relativePath is excluded. The path must be relative
// to the base directory and use forward slashes; a trailing slash marks a
// directory query. The empty path and "." are never ignored.
func (matcher *Matcher) Ignores(relativePath string, isDirectory bool) bool {
	if matcher == nil || matcher.compiled == nil {
		return false
	}
	normalizedPath := strings.TrimPrefix(relativePath, currentDirectoryPrefix)
	if strings.HasSuffix(normalizedPath, directorySuffix) {
		isDirectory = true
		normalizedPath = strings.TrimRight(normalizedPath, directorySuffix)
	}
	if normalizedPath == utils.EmptyString || normalizedPath == extensionDot {
		return false
	}
	match := matcher.compiled.Relative(normalizedPath, isDirectory)
	if match == nil {
		return false
	}
	return match.Ignore()
}

// Rules returns a copy of the rule lines in compilation order.
func (matcher *Matcher) Rules() []string {
	if matcher == nil {
		return nil
	}
	return append([]string(nil), matcher.rules...)
}

func configurationRules(configuration config.Config) []string {
	rules := make([]string, 0, 2*len(configuration.IgnoreDirs)+len(configuration.IgnoreFiles)+len(configuration.IgnoreExt)+len(configuration.IgnorePatterns))
	for _, directoryName := range configuration.IgnoreDirs {
		trimmedName := strings.TrimRight(strings.TrimSpace(directoryName), directorySuffix)
		if trimmedName == utils.EmptyString {
			continue
		}
		rules = append(rules, trimmedName, trimmedName+directorySuffix)
	}
	for _, fileName := range configuration.IgnoreFiles {
		if trimmedName := strings.TrimSpace(fileName); trimmedName != utils.EmptyString {
			rules = append(rules, trimmedName)
		}
	}
	for _, extension := range configuration.IgnoreExt {
		trimmedExtension := strings.TrimSpace(extension)
		if trimmedExtension == utils.EmptyString {
			continue
		}
		if !strings.HasPrefix(trimmedExtension, extensionDot) {
			trimmedExtension = extensionDot + trimmedExtension
		}
		rules = append(rules, extensionWildcard+trimmedExtension)
	}
	for _, pattern := range configuration.IgnorePatterns {
		if trimmedPattern := strings.TrimSpace(pattern); trimmedPattern != utils.EmptyString {
			rules = append(rules, utils.ToPosixPath(trimmedPattern))
		}
	}
	return rules
}

// readGitIgnore returns the lines of the .gitignore at baseDirectory. A missing
// file contributes no rules.
func readGitIgnore(baseDirectory string) ([]string, error) {
	gitIgnorePath := filepath.Join(baseDirectory, utils.GitIgnoreFileName)
	// #nosec G304
	content, readError := os.ReadFile(gitIgnorePath)
	if readError != nil {
		if errors.Is(readError, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(readGitIgnoreErrorFormat, gitIgnorePath, readError)
	}
	normalized := strings.ReplaceAll(string(content), "\r\n", ruleSeparator)
	return strings.Split(normalized, ruleSeparator), nil
}

func ruleAt(rules []string, line int) string {
	if line < 1 || line > len(rules) {
		return utils.EmptyString
	}
	return rules[line-1]
}
