package comments

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/utils"
)

var (
	// ErrStripperUnavailable is returned when the binary was built without cgo.
	ErrStripperUnavailable = errors.New("comments: grammar-aware stripping requires cgo")
	// ErrUnsupportedGrammar is returned for grammars the stripper cannot parse.
	ErrUnsupportedGrammar = errors.New("comments: unsupported grammar")
)

var blankLinePattern = regexp.MustCompile(`(?m)^[ \t]*\r?\n`)

// Request describes one stripping job.
type Request struct {
	Source    []byte
	Grammar   Grammar
	Extension string
	// PreserveProtected keeps comments starting with /*!, //! or #!.
	PreserveProtected bool
}

// Stripper removes comments from source text.
type Stripper interface {
	Strip(ctx context.Context, request Request) ([]byte, error)
}

// Formatter prepares file content for export: comments are stripped when the
// grammar is known, blank lines are removed and the result is trimmed.
type Formatter struct {
	stripper          Stripper
	preserveProtected bool
	logger            *zap.Logger
}

// NewFormatter constructs a Formatter. A nil stripper disables comment removal.
func NewFormatter(stripper Stripper, preserveProtected bool, logger *zap.Logger) *Formatter {
	return &Formatter{stripper: stripper, preserveProtected: preserveProtected, logger: utils.LoggerOrNop(logger)}
}

// Format returns the cleaned content of filePath. Stripping failures keep the
// original text and are logged at debug level.
func (formatter *Formatter) Format(ctx context.Context, filePath string, content string) string {
	formatted := content
	grammar := GrammarForPath(filePath)
	if formatter.stripper != nil && grammar != Unknown && !IsUntouched(filePath) {
		stripped, stripError := formatter.stripper.Strip(ctx, Request{
			Source:            []byte(content),
			Grammar:           grammar,
			Extension:         ExtensionOf(filePath),
			PreserveProtected: formatter.preserveProtected,
		})
		if stripError != nil {
			formatter.logger.Debug("keeping comments", zap.String("path", filePath), zap.Error(stripError))
		} else {
			formatted = string(stripped)
		}
	}
	return RemoveBlankLines(formatted)
}

// RemoveBlankLines drops whitespace-only lines and trims the result.
func RemoveBlankLines(content string) string {
	return strings.TrimSpace(blankLinePattern.ReplaceAllString(content, utils.EmptyString))
}

// isProtected reports whether comment text opts out of removal.
func isProtected(commentText []byte) bool {
	text := string(commentText)
	return strings.HasPrefix(text, "/*!") || strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "#!")
}

// isShebang reports whether the comment at offset is an interpreter line.
func isShebang(commentText []byte, offset uint32) bool {
	return offset == 0 && strings.HasPrefix(string(commentText), "#!")
}

// ExtensionOf returns the lower-case extension of filePath without the dot, or
// the lower-case base name for extensionless files.
func ExtensionOf(filePath string) string {
	if extension := filepath.Ext(filePath); extension != utils.EmptyString {
		return normalizeExtension(extension)
	}
	return strings.ToLower(filepath.Base(filePath))
}

// edit replaces source[start:end] with replacement.
type edit struct {
	start       int
	end         int
	replacement []byte
}

// removalRange widens a comment's byte range so that a comment occupying its own
// line disappears together with the line, and a trailing comment takes the
// horizontal whitespace before it.
func removalRange(source []byte, start int, end int) (int, int) {
	lineStart := start
	for lineStart > 0 && (source[lineStart-1] == ' ' || source[lineStart-1] == '\t') {
		lineStart--
	}
	lineEnd := end
	for lineEnd < len(source) && (source[lineEnd] == ' ' || source[lineEnd] == '\t' || source[lineEnd] == '\r') {
		lineEnd++
	}
	ownsLine := (lineStart == 0 || source[lineStart-1] == '\n') && (lineEnd == len(source) || source[lineEnd] == '\n')
	if ownsLine {
		if lineEnd < len(source) {
			lineEnd++
		}
		return lineStart, lineEnd
	}
	return lineStart, end
}

// applyEdits applies non-overlapping edits sorted by start offset.
func applyEdits(source []byte, edits []edit) []byte {
	var builder strings.Builder
	builder.Grow(len(source))
	cursor := 0
	for _, currentEdit := range edits {
		if currentEdit.start < cursor {
			continue
		}
		builder.Write(source[cursor:currentEdit.start])
		builder.Write(currentEdit.replacement)
		cursor = currentEdit.end
	}
	builder.Write(source[cursor:])
	return []byte(builder.String())
}
