//go:build cgo

package comments

import (
	"context"
	"testing"
)

func TestTreeSitterStripper(t *testing.T) {
	testCases := []struct {
		name              string
		grammar           Grammar
		extension         string
		source            string
		preserveProtected bool
		expected          string
	}{
		{
			name:      "javascript",
			grammar:   CStyle,
			extension: "js",
			source:    "// header\nconst url = 'http://example.com'; // trailing\n/* block */\nconsole.log(url);\n",
			expected:  "const url = 'http://example.com';\nconsole.log(url);\n",
		},
		{
			name:              "protected comment kept",
			grammar:           CStyle,
			extension:         "js",
			source:            "/*! license */\n// drop\nrun();\n",
			preserveProtected: true,
			expected:          "/*! license */\nrun();\n",
		},
		{
			name:      "python keeps strings and shebang",
			grammar:   HashStyle,
			extension: "py",
			source:    "#!/usr/bin/env python\n# comment\nvalue = '# not a comment'\n",
			expected:  "#!/usr/bin/env python\nvalue = '# not a comment'\n",
		},
		{
			name:      "go",
			grammar:   CStyle,
			extension: "go",
			source:    "package main\n\n// Main runs.\nfunc main() {}\n",
			expected:  "package main\n\nfunc main() {}\n",
		},
		{
			name:      "css",
			grammar:   StyleSheet,
			extension: "css",
			source:    "/* theme */\nbody { color: red; }\n",
			expected:  "body { color: red; }\n",
		},
		{
			name:      "html with embedded script",
			grammar:   Markup,
			extension: "html",
			source:    "<!-- note -->\n<script>\n// inline\nrun();\n</script>\n",
			expected:  "<script>\nrun();\n</script>\n",
		},
	}
	stripper := NewStripper()
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			stripped, err := stripper.Strip(context.Background(), Request{
				Source:            []byte(testCase.source),
				Grammar:           testCase.grammar,
				Extension:         testCase.extension,
				PreserveProtected: testCase.preserveProtected,
			})
			if err != nil {
				t.Fatalf("Strip error: %v", err)
			}
			if string(stripped) != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, string(stripped))
			}
		})
	}
}

func TestTreeSitterStripperRejectsUnknownGrammar(t *testing.T) {
	if _, err := NewStripper().Strip(context.Background(), Request{Source: []byte("x"), Grammar: Unknown}); err == nil {
		t.Fatalf("expected an error for an unknown grammar")
	}
}
