// Package errorctx extracts the failing source location from a log and builds
// an error-analysis prompt around it.
package errorctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/temirov/devassist/internal/utils"
)

// DefaultContextLines is the number of lines shown on each side of the failing line.
const DefaultContextLines = 10

const (
	lineBreak             = "\n"
	markedLineFormat      = "> %4d | %s"
	plainLineFormat       = "  %4d | %s"
	reportTitle           = "## AI Error Analysis Request\n\n"
	reportLogTitle        = "### 1. Error Log\n\n"
	reportCodeTitleFormat = "### 2. Relevant Code from %s (line %d)\n\n"
	codeFence             = "```"
	readSourceErrorFormat = "read source %s: %w"
	readLogErrorFormat    = "read log %s: %w"
	sourceNotFoundFormat  = "%w: %s (tried as given, against %s and against %s)"
)

var (
	// ErrLocationNotFound is returned when a log carries no recognizable source location.
	ErrLocationNotFound = errors.New("no file path and line number found in log")
	// ErrSourceNotFound is returned when the referenced source file cannot be located.
	ErrSourceNotFound = errors.New("source file not found")
)

// Location is a file and line referenced by a stack trace.
type Location struct {
	File   string
	Line   int
	Column int
}

type locationPattern struct {
	expression  *regexp.Regexp
	columnGroup int
}

var locationPatterns = []locationPattern{
	{expression: regexp.MustCompile(`at\s+(?:.+?\s+\()?(.*?):(\d+):(\d+)\)?`), columnGroup: 3},
	{expression: regexp.MustCompile(`File "([^"]+)", line (\d+)`)},
	{expression: regexp.MustCompile(`((?:[A-Za-z]:)?[\w./\\-]+\.[A-Za-z0-9]+):(\d+)(?::(\d+))?`), columnGroup: 3},
}

// Locate returns the first source location found in logContent. JavaScript
// stack frames take precedence over Python tracebacks, which take precedence
// over plain path:line references.
func Locate(logContent string) (Location, error) {
	for _, pattern := range locationPatterns {
		match := pattern.expression.FindStringSubmatch(logContent)
		if match == nil {
			continue
		}
		lineNumber, convertError := strconv.Atoi(match[2])
		if convertError != nil {
			continue
		}
		location := Location{File: strings.TrimSpace(match[1]), Line: lineNumber}
		if pattern.columnGroup > 0 && match[pattern.columnGroup] != utils.EmptyString {
			location.Column, _ = strconv.Atoi(match[pattern.columnGroup])
		}
		return location, nil
	}
	return Location{}, ErrLocationNotFound
}

// ResolveSource finds the file named by a stack trace: first as given, then
// relative to workingDirectory, then relative to logDirectory.
func ResolveSource(file string, workingDirectory string, logDirectory string) (string, error) {
	candidates := []string{file}
	if !filepath.IsAbs(file) {
		candidates = append(candidates, filepath.Join(workingDirectory, file), filepath.Join(logDirectory, file))
	}
	for _, candidate := range candidates {
		if information, statError := os.Stat(candidate); statError == nil && !information.IsDir() {
			return candidate, nil
		}
	}
	return utils.EmptyString, fmt.Errorf(sourceNotFoundFormat, ErrSourceNotFound, file, workingDirectory, logDirectory)
}

// Snippet numbers the lines around lineNumber and marks it with ">".
func Snippet(sourceLines []string, lineNumber int, contextLines int) string {
	start := max(0, lineNumber-contextLines-1)
	end := min(len(sourceLines), lineNumber+contextLines)
	formatted := make([]string, 0, max(0, end-start))
	for index := start; index < end; index++ {
		currentLine := index + 1
		format := plainLineFormat
		if currentLine == lineNumber {
			format = markedLineFormat
		}
		formatted = append(formatted, fmt.Sprintf(format, currentLine, sourceLines[index]))
	}
	return strings.Join(formatted, lineBreak)
}

// Report is the assembled error-analysis prompt.
type Report struct {
	Location   Location
	SourcePath string
	Text       string
}

// Analyze reads logPath, locates the failing line and renders the prompt.
// ErrLocationNotFound and ErrSourceNotFound are returned wrapped so callers can
// fall back to showing the raw log.
func Analyze(logPath string, workingDirectory string, contextLines int) (Report, error) {
	// #nosec G304
	logContent, readError := os.ReadFile(logPath)
	if readError != nil {
		return Report{}, fmt.Errorf(readLogErrorFormat, logPath, readError)
	}
	location, locateError := Locate(string(logContent))
	if locateError != nil {
		return Report{}, locateError
	}
	sourcePath, resolveError := ResolveSource(location.File, workingDirectory, filepath.Dir(logPath))
	if resolveError != nil {
		return Report{Location: location}, resolveError
	}
	// #nosec G304
	sourceContent, sourceError := os.ReadFile(sourcePath)
	if sourceError != nil {
		return Report{Location: location}, fmt.Errorf(readSourceErrorFormat, sourcePath, sourceError)
	}

	var builder strings.Builder
	builder.WriteString(reportTitle)
	builder.WriteString(reportLogTitle)
	builder.WriteString(codeFence + lineBreak + string(logContent) + lineBreak + codeFence + lineBreak + lineBreak)
	builder.WriteString(fmt.Sprintf(reportCodeTitleFormat, location.File, location.Line))
	builder.WriteString(codeFence + utils.FenceLanguage(location.File) + lineBreak)
	builder.WriteString(Snippet(strings.Split(string(sourceContent), lineBreak), location.Line, contextLines))
	builder.WriteString(lineBreak + codeFence + lineBreak)

	return Report{Location: location, SourcePath: sourcePath, Text: builder.String()}, nil
}
