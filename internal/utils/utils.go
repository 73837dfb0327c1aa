// Package utils contains general helper functions used across devassist.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ToPosixPath converts host separators and stray backslashes into forward slashes.
func ToPosixPath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", PathSeparator)
}

// ToPosixRelative returns fullPath relative to baseDirectory using forward slashes.
// The base directory itself yields an empty string.
func ToPosixRelative(baseDirectory, fullPath string) (string, error) {
	relativePath, relativeError := filepath.Rel(baseDirectory, fullPath)
	if relativeError != nil {
		return EmptyString, relativeError
	}
	if relativePath == "." {
		return EmptyString, nil
	}
	return ToPosixPath(relativePath), nil
}

// FenceLanguage returns the code fence language hint for a file path: its extension without the dot.
func FenceLanguage(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
