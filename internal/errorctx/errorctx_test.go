package errorctx_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/devassist/internal/errorctx"
)

func TestLocate(t *testing.T) {
	testCases := []struct {
		name     string
		log      string
		expected errorctx.Location
	}{
		{
			name:     "javascript frame with function",
			log:      "TypeError: x is undefined\n    at Object.<anonymous> (/srv/app/index.js:10:15)\n    at Module._compile (node:internal:1:1)",
			expected: errorctx.Location{File: "/srv/app/index.js", Line: 10, Column: 15},
		},
		{
			name:     "javascript frame without function",
			log:      "Error\n    at src/app.js:3:7",
			expected: errorctx.Location{File: "src/app.js", Line: 3, Column: 7},
		},
		{
			name:     "python traceback",
			log:      "Traceback (most recent call last):\n  File \"app/main.py\", line 42, in <module>\nValueError",
			expected: errorctx.Location{File: "app/main.py", Line: 42},
		},
		{
			name:     "go panic",
			log:      "panic: boom\n\ngoroutine 1 [running]:\nmain.main()\n\t/work/cmd/main.go:12 +0x1d",
			expected: errorctx.Location{File: "/work/cmd/main.go", Line: 12},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			location, err := errorctx.Locate(testCase.log)
			if err != nil {
				t.Fatalf("Locate error: %v", err)
			}
			if location != testCase.expected {
				t.Fatalf("expected %+v, got %+v", testCase.expected, location)
			}
		})
	}
}

func TestLocateWithoutLocation(t *testing.T) {
	if _, err := errorctx.Locate("something went wrong"); !errors.Is(err, errorctx.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestSnippet(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}
	expected := "     2 | two\n>    3 | three\n     4 | four"
	if actual := errorctx.Snippet(lines, 3, 1); actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
	if actual := errorctx.Snippet(lines, 1, 10); !strings.HasPrefix(actual, ">    1 | one") || !strings.HasSuffix(actual, "     5 | five") {
		t.Fatalf("unexpected clamped snippet:\n%s", actual)
	}
}

func TestResolveSourceSearchOrder(t *testing.T) {
	workingDirectory := t.TempDir()
	logDirectory := t.TempDir()
	if err := os.WriteFile(filepath.Join(logDirectory, "handler.js"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	resolved, err := errorctx.ResolveSource("handler.js", workingDirectory, logDirectory)
	if err != nil {
		t.Fatalf("ResolveSource error: %v", err)
	}
	if resolved != filepath.Join(logDirectory, "handler.js") {
		t.Fatalf("unexpected resolution %s", resolved)
	}
	if err := os.WriteFile(filepath.Join(workingDirectory, "handler.js"), []byte("y"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	resolved, err = errorctx.ResolveSource("handler.js", workingDirectory, logDirectory)
	if err != nil || resolved != filepath.Join(workingDirectory, "handler.js") {
		t.Fatalf("expected working directory to win, got %s (%v)", resolved, err)
	}
	if _, err := errorctx.ResolveSource("missing.js", workingDirectory, logDirectory); !errors.Is(err, errorctx.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	workingDirectory := t.TempDir()
	source := "line1\nline2\nthrow new Error();\nline4\n"
	if err := os.WriteFile(filepath.Join(workingDirectory, "app.js"), []byte(source), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	logPath := filepath.Join(workingDirectory, "error.log")
	if err := os.WriteFile(logPath, []byte("Error: boom\n    at run (app.js:3:1)"), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	report, err := errorctx.Analyze(logPath, workingDirectory, 1)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	for _, fragment := range []string{
		"## AI Error Analysis Request",
		"### 1. Error Log\n\n```\nError: boom",
		"### 2. Relevant Code from app.js (line 3)",
		"```js\n     2 | line2\n>    3 | throw new Error();\n     4 | line4\n```",
	} {
		if !strings.Contains(report.Text, fragment) {
			t.Fatalf("missing %q in:\n%s", fragment, report.Text)
		}
	}
}
