package output_test

import (
	"strings"
	"testing"

	"github.com/temirov/devassist/internal/output"
	"github.com/temirov/devassist/internal/types"
)

func sampleBundle() types.Bundle {
	return types.Bundle{
		ProjectName: "demo",
		Structure:   "- index.js\n",
		Files: []types.CollectedFile{
			{RelativePath: "index.js", Content: "console.log('Hello');"},
			{RelativePath: "style.css", Content: "body { color: red; }"},
		},
	}
}

func TestResolveFormat(t *testing.T) {
	testCases := []struct {
		name           string
		requested      string
		outputPath     string
		expectedFormat string
		expectError    bool
	}{
		{name: "xml suffix", outputPath: "output.xml", expectedFormat: types.FormatXML},
		{name: "upper xml suffix", outputPath: "OUT.XML", expectedFormat: types.FormatXML},
		{name: "text output", outputPath: "Code.txt", expectedFormat: types.FormatMarkdown},
		{name: "explicit markdown wins", requested: "markdown", outputPath: "output.xml", expectedFormat: types.FormatMarkdown},
		{name: "explicit xml", requested: "XML", outputPath: "Code.txt", expectedFormat: types.FormatXML},
		{name: "unknown", requested: "yaml", outputPath: "Code.txt", expectError: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			format, err := output.ResolveFormat(testCase.requested, testCase.outputPath)
			if testCase.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.requested)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFormat error: %v", err)
			}
			if format != testCase.expectedFormat {
				t.Fatalf("expected %s, got %s", testCase.expectedFormat, format)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	bundle := sampleBundle()
	bundle.Framework = "React"
	rendered := output.RenderMarkdown(bundle)

	expectedFragments := []string{
		"# Project Export: demo\n\n",
		"**Framework:** React\n\n",
		"## Project Structure\n\n```plaintext\n/demo\n- index.js\n```\n\n",
		"## File Contents\n\n",
		"## File: index.js\n```js\nconsole.log('Hello');\n```",
		"## File: style.css\n```css\nbody { color: red; }\n```",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected markdown to contain %q, got:\n%s", fragment, rendered)
		}
	}
}

func TestRenderMarkdownWithoutStructure(t *testing.T) {
	bundle := sampleBundle()
	bundle.Structure = ""
	rendered := output.RenderMarkdown(bundle)
	if strings.Contains(rendered, "## Project Structure") {
		t.Fatalf("expected no structure section, got:\n%s", rendered)
	}
	if strings.Contains(rendered, "**Framework:**") {
		t.Fatalf("expected no framework line, got:\n%s", rendered)
	}
}

func TestRenderXML(t *testing.T) {
	rendered, err := output.Render(types.FormatXML, sampleBundle())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	expectedFragments := []string{
		"<project_structure>",
		"<name>demo</name>",
		"</project_structure>",
		"<files_list>",
		"<path>index.js</path>",
		"<file path=\"index.js\"><![CDATA[console.log('Hello');]]></file>",
		"<structure><![CDATA[- index.js\n]]></structure>",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected xml to contain %q, got:\n%s", fragment, rendered)
		}
	}
	if strings.Contains(rendered, "## ") {
		t.Fatalf("expected no markdown headers in xml output")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := output.Render("toon", sampleBundle()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
