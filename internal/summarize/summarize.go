// Package summarize reduces source files to their outline: imports, comments
// and declarations stay while implementation bodies are hidden.
package summarize

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	lineBreak               = "\n"
	hiddenBlockPlaceholder  = "  // ... implementation hidden ..."
	hiddenPythonPlaceholder = "    '''... implementation hidden ...'''"
	openingBrace            = "{"
	closingBrace            = "}"
)

var (
	braceLanguageExtensions = map[string]struct{}{
		".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".java": {}, ".cs": {},
		".c": {}, ".cpp": {}, ".php": {}, ".go": {}, ".rs": {}, ".kt": {},
	}
	pythonExtension = ".py"

	definitionPattern = regexp.MustCompile(`function\s+\w+|class\s+\w+|const\s+\w+\s*=\s*\(|func\s+[\w(]|^\s*\w+\s*\(.*?\)\s*\{`)

	braceLanguageKeptPrefixes = []string{"/", "*"}
	braceLanguageImports      = []string{"import ", "require", "package ", "using ", "#include"}
	pythonKeptPrefixes        = []string{"def ", "class ", "@", "import ", "from ", "async def "}
)

// Supports reports whether Summarize changes files with this path's extension.
func Supports(filePath string) bool {
	extension := strings.ToLower(filepath.Ext(filePath))
	if _, found := braceLanguageExtensions[extension]; found {
		return true
	}
	return extension == pythonExtension
}

// Summarize returns the outline of content. Files of unsupported languages are
// returned unchanged.
func Summarize(filePath string, content string) string {
	extension := strings.ToLower(filepath.Ext(filePath))
	if _, found := braceLanguageExtensions[extension]; found {
		return summarizeBraceLanguage(content)
	}
	if extension == pythonExtension {
		return summarizePython(content)
	}
	return content
}

func summarizeBraceLanguage(content string) string {
	lines := strings.Split(content, lineBreak)
	summarized := make([]string, 0, len(lines))
	insideBlock := false
	braceDepth := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !insideBlock && (hasAnyPrefix(trimmed, braceLanguageKeptPrefixes) || hasAnyPrefix(trimmed, braceLanguageImports)) {
			summarized = append(summarized, line)
			continue
		}

		if !insideBlock && definitionPattern.MatchString(line) {
			summarized = append(summarized, line)
			braceDepth += braceBalance(line)
			if braceDepth > 0 {
				insideBlock = true
				summarized = append(summarized, hiddenBlockPlaceholder)
			} else {
				braceDepth = 0
			}
			continue
		}

		if insideBlock {
			braceDepth += braceBalance(line)
			if braceDepth <= 0 {
				insideBlock = false
				braceDepth = 0
				if strings.Contains(line, closingBrace) {
					summarized = append(summarized, line)
				}
			}
			continue
		}

		summarized = append(summarized, line)
	}
	return strings.Join(summarized, lineBreak)
}

func summarizePython(content string) string {
	var summarized []string
	for _, line := range strings.Split(content, lineBreak) {
		trimmed := strings.TrimSpace(line)
		if !hasAnyPrefix(trimmed, pythonKeptPrefixes) {
			continue
		}
		summarized = append(summarized, line)
		if strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(trimmed, "@") {
			summarized = append(summarized, indentationOf(line)+hiddenPythonPlaceholder)
		}
	}
	return strings.Join(summarized, lineBreak)
}

func braceBalance(line string) int {
	return strings.Count(line, openingBrace) - strings.Count(line, closingBrace)
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

func indentationOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
