//go:build cgo

package comments

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

const (
	commentNodeMarker      = "comment"
	scriptElementNodeType  = "script_element"
	styleElementNodeType   = "style_element"
	rawTextNodeType        = "raw_text"
	parseSourceErrorFormat = "comments: parse source: %w"
)

var extensionLanguages = map[string]func() *sitter.Language{
	"js":         javascript.GetLanguage,
	"mjs":        javascript.GetLanguage,
	"cjs":        javascript.GetLanguage,
	"jsx":        javascript.GetLanguage,
	"ts":         typescript.GetLanguage,
	"tsx":        tsx.GetLanguage,
	"c":          c.GetLanguage,
	"h":          c.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"cc":         cpp.GetLanguage,
	"hpp":        cpp.GetLanguage,
	"cs":         csharp.GetLanguage,
	"java":       java.GetLanguage,
	"go":         golang.GetLanguage,
	"kt":         kotlin.GetLanguage,
	"rs":         rust.GetLanguage,
	"py":         python.GetLanguage,
	"rb":         ruby.GetLanguage,
	"sh":         bash.GetLanguage,
	"bash":       bash.GetLanguage,
	"yaml":       yaml.GetLanguage,
	"yml":        yaml.GetLanguage,
	"dockerfile": dockerfile.GetLanguage,
	"css":        css.GetLanguage,
	"sql":        sql.GetLanguage,
	"php":        php.GetLanguage,
}

// Languages used when the extension has no dedicated parser.
var grammarLanguages = map[Grammar]func() *sitter.Language{
	CStyle:     javascript.GetLanguage,
	HashStyle:  bash.GetLanguage,
	Markup:     html.GetLanguage,
	StyleSheet: css.GetLanguage,
	SQL:        sql.GetLanguage,
	PHP:        php.GetLanguage,
}

type treeSitterStripper struct{}

// NewStripper returns the tree-sitter backed Stripper.
func NewStripper() Stripper {
	return treeSitterStripper{}
}

func (stripper treeSitterStripper) Strip(ctx context.Context, request Request) ([]byte, error) {
	language := languageFor(request.Grammar, request.Extension)
	if language == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGrammar, request.Grammar)
	}
	return stripWithLanguage(ctx, request.Source, language, request.Grammar == Markup, request.PreserveProtected)
}

func languageFor(grammar Grammar, extension string) *sitter.Language {
	if grammar == Markup {
		return html.GetLanguage()
	}
	if constructor, found := extensionLanguages[extension]; found {
		return constructor()
	}
	if constructor, found := grammarLanguages[grammar]; found {
		return constructor()
	}
	return nil
}

func stripWithLanguage(ctx context.Context, source []byte, language *sitter.Language, markup bool, preserveProtected bool) ([]byte, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language)
	tree, parseError := parser.ParseCtx(ctx, nil, source)
	if parseError != nil {
		return nil, fmt.Errorf(parseSourceErrorFormat, parseError)
	}
	defer tree.Close()

	var edits []edit
	var collectError error
	visitNodes(tree.RootNode(), func(node *sitter.Node) bool {
		nodeType := node.Type()
		if markup && (nodeType == scriptElementNodeType || nodeType == styleElementNodeType) {
			embeddedEdit, embeddedError := stripEmbedded(ctx, source, node, nodeType == scriptElementNodeType, preserveProtected)
			if embeddedError != nil {
				collectError = embeddedError
				return false
			}
			if embeddedEdit != nil {
				edits = append(edits, *embeddedEdit)
			}
			return false
		}
		if !strings.Contains(nodeType, commentNodeMarker) {
			return true
		}
		start, end := int(node.StartByte()), int(node.EndByte())
		commentText := source[start:end]
		if isShebang(commentText, node.StartByte()) || (preserveProtected && isProtected(commentText)) {
			return false
		}
		removalStart, removalEnd := removalRange(source, start, end)
		edits = append(edits, edit{start: removalStart, end: removalEnd})
		return false
	})
	if collectError != nil {
		return nil, collectError
	}

	sort.Slice(edits, func(first, second int) bool {
		return edits[first].start < edits[second].start
	})
	return applyEdits(source, edits), nil
}

// stripEmbedded strips the raw text of a script or style element with the
// JavaScript or CSS parser.
func stripEmbedded(ctx context.Context, source []byte, element *sitter.Node, script bool, preserveProtected bool) (*edit, error) {
	for index := 0; index < int(element.ChildCount()); index++ {
		child := element.Child(index)
		if child == nil || child.Type() != rawTextNodeType {
			continue
		}
		start, end := int(child.StartByte()), int(child.EndByte())
		language := css.GetLanguage()
		if script {
			language = javascript.GetLanguage()
		}
		stripped, stripError := stripWithLanguage(ctx, source[start:end], language, false, preserveProtected)
		if stripError != nil {
			return nil, stripError
		}
		return &edit{start: start, end: end, replacement: stripped}, nil
	}
	return nil, nil
}

// visitNodes walks the tree depth first. Returning false from visit skips the node's children.
func visitNodes(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for index := 0; index < int(node.ChildCount()); index++ {
		visitNodes(node.Child(index), visit)
	}
}
