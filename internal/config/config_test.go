package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeConfiguration(t *testing.T, directory string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(directory, ".aiconfig.json"), []byte(content), 0o600); err != nil {
		t.Fatalf("write configuration: %v", err)
	}
}

func TestResolveMergesOverrides(t *testing.T) {
	testCases := []struct {
		name              string
		content           string
		expectIncludeExt  []string
		expectIgnoreDirs  []string
		expectIgnoreFiles []string
		expectIgnoreExt   []string
	}{
		{
			name:              "missing_file_returns_defaults",
			content:           "",
			expectIncludeExt:  defaultIncludeExtensions,
			expectIgnoreDirs:  defaultIgnoreDirectories,
			expectIgnoreFiles: defaultIgnoreFiles,
			expectIgnoreExt:   []string{},
		},
		{
			name:              "include_ext_replaced",
			content:           `{"includeExt": [".go", "Dockerfile"]}`,
			expectIncludeExt:  []string{".go", "Dockerfile"},
			expectIgnoreDirs:  defaultIgnoreDirectories,
			expectIgnoreFiles: defaultIgnoreFiles,
			expectIgnoreExt:   []string{},
		},
		{
			name:              "empty_include_ext_keeps_defaults",
			content:           `{"includeExt": []}`,
			expectIncludeExt:  defaultIncludeExtensions,
			expectIgnoreDirs:  defaultIgnoreDirectories,
			expectIgnoreFiles: defaultIgnoreFiles,
			expectIgnoreExt:   []string{},
		},
		{
			name:              "ignore_lists_unioned",
			content:           `{"ignoreDirs": ["coverage", "dist"], "ignoreFiles": ["notes.md"], "ignoreExt": [".map"]}`,
			expectIncludeExt:  defaultIncludeExtensions,
			expectIgnoreDirs:  append(append([]string{}, defaultIgnoreDirectories...), "coverage"),
			expectIgnoreFiles: append(append([]string{}, defaultIgnoreFiles...), "notes.md"),
			expectIgnoreExt:   []string{".map"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			workingDirectory := t.TempDir()
			if testCase.content != "" {
				writeConfiguration(t, workingDirectory, testCase.content)
			}
			resolved := Resolve(workingDirectory, "", nil)
			if !reflect.DeepEqual(resolved.IncludeExt, testCase.expectIncludeExt) {
				t.Fatalf("includeExt: expected %v, got %v", testCase.expectIncludeExt, resolved.IncludeExt)
			}
			if !reflect.DeepEqual(resolved.IgnoreDirs, testCase.expectIgnoreDirs) {
				t.Fatalf("ignoreDirs: expected %v, got %v", testCase.expectIgnoreDirs, resolved.IgnoreDirs)
			}
			if !reflect.DeepEqual(resolved.IgnoreFiles, testCase.expectIgnoreFiles) {
				t.Fatalf("ignoreFiles: expected %v, got %v", testCase.expectIgnoreFiles, resolved.IgnoreFiles)
			}
			if !reflect.DeepEqual(resolved.IgnoreExt, testCase.expectIgnoreExt) {
				t.Fatalf("ignoreExt: expected %v, got %v", testCase.expectIgnoreExt, resolved.IgnoreExt)
			}
		})
	}
}

func TestResolveFallsBackOnMalformedFile(t *testing.T) {
	workingDirectory := t.TempDir()
	writeConfiguration(t, workingDirectory, `{"includeExt": [".go"`)
	core, recorded := observer.New(zapcore.WarnLevel)

	resolved := Resolve(workingDirectory, "", zap.New(core))

	if !reflect.DeepEqual(resolved, Defaults()) {
		t.Fatalf("expected defaults, got %+v", resolved)
	}
	if recorded.Len() != 1 {
		t.Fatalf("expected one warning, got %d", recorded.Len())
	}
}

func TestResolveHonorsExplicitPath(t *testing.T) {
	workingDirectory := t.TempDir()
	writeConfiguration(t, workingDirectory, `{"includeExt": [".js"]}`)
	explicitPath := filepath.Join(workingDirectory, "custom.json")
	if err := os.WriteFile(explicitPath, []byte(`{"includeExt": [".rs"]}`), 0o600); err != nil {
		t.Fatalf("write explicit configuration: %v", err)
	}
	resolved := Resolve(workingDirectory, "custom.json", nil)
	if !reflect.DeepEqual(resolved.IncludeExt, []string{".rs"}) {
		t.Fatalf("expected explicit configuration to win, got %v", resolved.IncludeExt)
	}
}

func TestDefaultsReturnsFreshCopy(t *testing.T) {
	first := Defaults()
	first.IgnoreDirs[0] = "mutated"
	second := Defaults()
	if second.IgnoreDirs[0] != "node_modules" {
		t.Fatalf("defaults were mutated through a previous copy: %v", second.IgnoreDirs)
	}
}

func TestWithIgnoredFilesLeavesReceiverUntouched(t *testing.T) {
	base := Defaults()
	extended := base.WithIgnoredFiles("Code.txt", "", "yarn.lock")
	if len(base.IgnoreFiles) != len(defaultIgnoreFiles) {
		t.Fatalf("receiver changed: %v", base.IgnoreFiles)
	}
	expected := append(append([]string{}, defaultIgnoreFiles...), "Code.txt")
	if !reflect.DeepEqual(extended.IgnoreFiles, expected) {
		t.Fatalf("expected %v, got %v", expected, extended.IgnoreFiles)
	}
}

func TestAllowsFile(t *testing.T) {
	configuration := Config{IncludeExt: []string{".js", "Dockerfile"}}
	testCases := []struct {
		baseName  string
		extension string
		expected  bool
	}{
		{baseName: "app.js", extension: ".js", expected: true},
		{baseName: "Dockerfile", extension: "", expected: true},
		{baseName: "app.jsx", extension: ".jsx", expected: false},
		{baseName: "Makefile", extension: "", expected: false},
	}
	for index, testCase := range testCases {
		if actual := configuration.AllowsFile(testCase.baseName, testCase.extension); actual != testCase.expected {
			t.Errorf("case %d (%s): expected %t, got %t", index, testCase.baseName, testCase.expected, actual)
		}
	}
}

func TestYAMLUsesCamelCaseKeys(t *testing.T) {
	rendered, err := Defaults().YAML()
	if err != nil {
		t.Fatalf("YAML error: %v", err)
	}
	if !strings.Contains(rendered, "includeExt:") || !strings.Contains(rendered, "- node_modules") {
		t.Fatalf("unexpected rendering: %s", rendered)
	}
}
