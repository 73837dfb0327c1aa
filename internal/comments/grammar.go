// Package comments removes source comments using grammar-aware parsers.
package comments

import (
	"path/filepath"
	"strings"
)

// Grammar names the comment syntax family of a source file.
type Grammar int

const (
	// Unknown marks files whose comment syntax is not recognized. They are never modified.
	Unknown Grammar = iota
	// CStyle covers // and /* */ comments.
	CStyle
	// HashStyle covers # comments.
	HashStyle
	// Markup covers <!-- --> comments along with embedded script and style blocks.
	Markup
	// StyleSheet covers /* */ comments in CSS dialects.
	StyleSheet
	// SQL covers -- and /* */ comments.
	SQL
	// PHP covers //, # and /* */ comments inside PHP code.
	PHP
)

var grammarNames = map[Grammar]string{
	Unknown:    "unknown",
	CStyle:     "c-style",
	HashStyle:  "hash-style",
	Markup:     "markup",
	StyleSheet: "stylesheet",
	SQL:        "sql",
	PHP:        "php",
}

var extensionGrammars = map[string]Grammar{
	"js":         CStyle,
	"mjs":        CStyle,
	"cjs":        CStyle,
	"jsx":        CStyle,
	"ts":         CStyle,
	"tsx":        CStyle,
	"c":          CStyle,
	"h":          CStyle,
	"cpp":        CStyle,
	"cc":         CStyle,
	"hpp":        CStyle,
	"cs":         CStyle,
	"java":       CStyle,
	"swift":      CStyle,
	"go":         CStyle,
	"kt":         CStyle,
	"rs":         CStyle,
	"scala":      CStyle,
	"py":         HashStyle,
	"rb":         HashStyle,
	"pl":         HashStyle,
	"sh":         HashStyle,
	"bash":       HashStyle,
	"yaml":       HashStyle,
	"yml":        HashStyle,
	"dockerfile": HashStyle,
	"html":       Markup,
	"htm":        Markup,
	"xml":        Markup,
	"vue":        Markup,
	"svelte":     Markup,
	"css":        StyleSheet,
	"scss":       StyleSheet,
	"less":       StyleSheet,
	"php":        PHP,
	"sql":        SQL,
}

// Data formats that carry no comments worth removing, or whose "comments" are content.
var untouchedExtensions = map[string]struct{}{
	"json": {},
	"md":   {},
	"txt":  {},
	"lock": {},
}

func (grammar Grammar) String() string {
	if name, found := grammarNames[grammar]; found {
		return name
	}
	return grammarNames[Unknown]
}

// ExtensionToGrammar maps a file extension, with or without the leading dot and
// in any case, to its comment grammar.
func ExtensionToGrammar(extension string) Grammar {
	if grammar, found := extensionGrammars[normalizeExtension(extension)]; found {
		return grammar
	}
	return Unknown
}

// GrammarForPath resolves the grammar of a file path, falling back to the base
// name for extensionless files such as Dockerfile.
func GrammarForPath(filePath string) Grammar {
	extension := filepath.Ext(filePath)
	if extension == "" {
		return ExtensionToGrammar(filepath.Base(filePath))
	}
	return ExtensionToGrammar(extension)
}

// IsUntouched reports whether files with this extension are always left as they are.
func IsUntouched(filePath string) bool {
	_, found := untouchedExtensions[normalizeExtension(filepath.Ext(filePath))]
	return found
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(extension, "."))
}
