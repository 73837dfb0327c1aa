// Package tokenizer estimates token counts for exported bundles.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// DefaultModel is used when no model is requested.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	fallbackEncodingErrorFormat = "initialize fallback tokenizer: %w"
)

// NewCounter returns a Counter for the requested model and the name of the
// encoding actually used. Models unknown to tiktoken fall back to cl100k_base.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.ToLower(strings.TrimSpace(cfg.Model))
	if model == "" {
		model = DefaultModel
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err == nil && encoding != nil {
		return encodingCounter{encoding: encoding, encodingName: model}, model, nil
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf(fallbackEncodingErrorFormat, fallbackErr)
	}
	return encodingCounter{encoding: fallback, encodingName: defaultEncodingName}, defaultEncodingName, nil
}
