// Package overlay narrows a traversal for one invocation with include and exclude patterns.
package overlay

import (
	"path"
	"strings"

	"github.com/danwakefield/fnmatch"

	"github.com/temirov/devassist/internal/utils"
)

const (
	listSeparator          = ","
	currentDirectoryPrefix = "./"
	recursiveWildcard      = "**/"
	globCharacters         = "*?["
)

// PatternSet holds the include and exclude patterns supplied for one command.
// An empty include list places no restriction. Exclusion always wins.
type PatternSet struct {
	include []string
	exclude []string
}

// NewPatternSet normalizes the provided pattern lists and drops empty entries.
func NewPatternSet(include []string, exclude []string) PatternSet {
	return PatternSet{include: normalizeAll(include), exclude: normalizeAll(exclude)}
}

// Allows reports whether relativePath survives the overlay.
func (patternSet PatternSet) Allows(relativePath string) bool {
	normalizedPath := Normalize(relativePath)
	if len(patternSet.include) > 0 && !matchesAny(normalizedPath, patternSet.include) {
		return false
	}
	return !matchesAny(normalizedPath, patternSet.exclude)
}

// Empty reports whether the set restricts nothing.
func (patternSet PatternSet) Empty() bool {
	return len(patternSet.include) == 0 && len(patternSet.exclude) == 0
}

// Include returns a copy of the normalized include patterns.
func (patternSet PatternSet) Include() []string {
	return append([]string(nil), patternSet.include...)
}

// Exclude returns a copy of the normalized exclude patterns.
func (patternSet PatternSet) Exclude() []string {
	return append([]string(nil), patternSet.exclude...)
}

// Matches tests relativePath against one pattern: first as a glob, then for
// equality, then as a directory prefix. A malformed glob simply does not match.
func Matches(relativePath string, pattern string) bool {
	normalizedPath := Normalize(relativePath)
	normalizedPattern := Normalize(pattern)
	if normalizedPattern == utils.EmptyString || normalizedPath == utils.EmptyString {
		return false
	}
	if globMatches(normalizedPattern, normalizedPath) {
		return true
	}
	if normalizedPath == normalizedPattern {
		return true
	}
	return strings.HasPrefix(normalizedPath, normalizedPattern+utils.PathSeparator)
}

// Normalize converts backslashes to slashes and trims a leading "./" and trailing slashes.
func Normalize(value string) string {
	normalized := utils.ToPosixPath(strings.TrimSpace(value))
	for strings.HasPrefix(normalized, currentDirectoryPrefix) {
		normalized = strings.TrimPrefix(normalized, currentDirectoryPrefix)
	}
	return strings.TrimRight(normalized, utils.PathSeparator)
}

// ParseList splits a comma-separated pattern list, trimming blanks.
func ParseList(value string) []string {
	var patterns []string
	for _, part := range strings.Split(value, listSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != utils.EmptyString {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}

func globMatches(pattern string, relativePath string) bool {
	if !strings.ContainsAny(pattern, globCharacters) {
		return false
	}
	if strings.Contains(pattern, recursiveWildcard) {
		if fnmatch.Match(pattern, relativePath, fnmatch.FNM_LEADING_DIR) {
			return true
		}
		pattern = strings.ReplaceAll(pattern, recursiveWildcard, utils.EmptyString)
	}
	if fnmatch.Match(pattern, relativePath, fnmatch.FNM_PATHNAME|fnmatch.FNM_LEADING_DIR) {
		return true
	}
	if !strings.Contains(pattern, utils.PathSeparator) {
		return fnmatch.Match(pattern, path.Base(relativePath), fnmatch.FNM_PATHNAME)
	}
	return false
}

func matchesAny(relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if Matches(relativePath, pattern) {
			return true
		}
	}
	return false
}

func normalizeAll(patterns []string) []string {
	normalized := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if value := Normalize(pattern); value != utils.EmptyString {
			normalized = append(normalized, value)
		}
	}
	return utils.DeduplicatePatterns(normalized)
}
