// Package redact finds credentials in file content and masks them.
package redact

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/utils"
)

// Placeholder replaces every detected secret.
const Placeholder = "[REDACTED SECRET]"

const (
	secretFoundMessage    = "potential secret found"
	secretRedactedMessage = "potential secret redacted"
	pathLogKey            = "path"
	kindLogKey            = "kind"
	countLogKey           = "occurrences"
)

// Pattern is one kind of secret and the expression that detects it.
type Pattern struct {
	Name       string
	Expression *regexp.Regexp
}

// Finding records how often one kind of secret occurred.
type Finding struct {
	Name        string
	Occurrences int
}

// DefaultPatterns returns the built-in secret detectors.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "AWS Access Key", Expression: regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
		{Name: "AWS Secret Key", Expression: regexp.MustCompile(`(?i)(aws|amazon).*?_?key.*?['"]?[=:].*?['"]?[a-zA-Z0-9/+=]{40}`)},
		{Name: "Generic API Key", Expression: regexp.MustCompile(`(?i)api[_-]?key.*?['"]?[:=].*?['"]?[a-zA-Z0-9\-_]{20,}`)},
		{Name: "Private Key", Expression: regexp.MustCompile(`-----BEGIN (?:[A-Z]+ )?PRIVATE KEY-----`)},
		{Name: "GitHub Token", Expression: regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{36,}`)},
		{Name: "Slack Token", Expression: regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z]{10,48}`)},
		{Name: "Stripe Key", Expression: regexp.MustCompile(`(?:sk|pk)_(?:test|live)_[0-9a-zA-Z]{24}`)},
	}
}

// Redactor scans content with a fixed set of patterns.
type Redactor struct {
	patterns []Pattern
	logger   *zap.Logger
}

// New constructs a Redactor with the default patterns.
func New(logger *zap.Logger) *Redactor {
	return NewWithPatterns(DefaultPatterns(), logger)
}

// NewWithPatterns constructs a Redactor with custom patterns.
func NewWithPatterns(patterns []Pattern, logger *zap.Logger) *Redactor {
	return &Redactor{patterns: patterns, logger: utils.LoggerOrNop(logger)}
}

// Scan reports the secrets found in content. When redactSecrets is set each
// match is replaced with Placeholder; otherwise content is returned unchanged.
// Patterns are applied in order, so later patterns see earlier replacements.
func (redactor *Redactor) Scan(filePath string, content string, redactSecrets bool) (string, []Finding) {
	var findings []Finding
	result := content
	for _, pattern := range redactor.patterns {
		matches := pattern.Expression.FindAllStringIndex(result, -1)
		if len(matches) == 0 {
			continue
		}
		findings = append(findings, Finding{Name: pattern.Name, Occurrences: len(matches)})
		fields := []zap.Field{zap.String(pathLogKey, filePath), zap.String(kindLogKey, pattern.Name), zap.Int(countLogKey, len(matches))}
		if !redactSecrets {
			redactor.logger.Warn(secretFoundMessage, fields...)
			continue
		}
		redactor.logger.Warn(secretRedactedMessage, fields...)
		result = pattern.Expression.ReplaceAllLiteralString(result, Placeholder)
	}
	return result, findings
}
