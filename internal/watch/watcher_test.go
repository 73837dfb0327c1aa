package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/ignore"
)

func newTestFilter(t *testing.T, root string) Filter {
	t.Helper()
	configuration := config.Defaults()
	matcher, err := ignore.Compile(configuration, root, false)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	return NewFilter(root, filepath.Join(root, "context.md"), configuration, matcher)
}

func TestFilterRelevant(t *testing.T) {
	root := t.TempDir()
	filter := newTestFilter(t, root)
	testCases := []struct {
		name         string
		relativePath string
		isDirectory  bool
		expected     bool
	}{
		{name: "root", relativePath: "", isDirectory: true, expected: true},
		{name: "source file", relativePath: "src/app.js", expected: true},
		{name: "source directory", relativePath: "src", isDirectory: true, expected: true},
		{name: "output file", relativePath: "context.md", expected: false},
		{name: "git internals", relativePath: ".git/index", expected: false},
		{name: "dotfile", relativePath: ".env", expected: false},
		{name: "node modules", relativePath: "node_modules/pkg/index.js", expected: false},
		{name: "node modules directory", relativePath: "node_modules", isDirectory: true, expected: false},
		{name: "extension outside allow-list", relativePath: "image.png", expected: false},
		{name: "ignored file name", relativePath: "package-lock.json", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			absolutePath := filepath.Join(root, filepath.FromSlash(testCase.relativePath))
			if got := filter.Relevant(absolutePath, testCase.isDirectory); got != testCase.expected {
				t.Fatalf("Relevant(%q) = %v, expected %v", testCase.relativePath, got, testCase.expected)
			}
		})
	}
}

func TestFilterRejectsPathsOutsideRoot(t *testing.T) {
	root := t.TempDir()
	filter := newTestFilter(t, root)
	if filter.Relevant(filepath.Join(filepath.Dir(root), "elsewhere.js"), false) {
		t.Fatalf("expected path outside the root to be irrelevant")
	}
}

func TestWatcherTriggersOnFileChange(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	runs := make(chan struct{}, 10)
	scheduler := NewScheduler(testDebounce, func(context.Context) error {
		runs <- struct{}{}
		return nil
	}, nil)
	watcher := NewWatcher(root, newTestFilter(t, root), scheduler, nil)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() {
		finished <- watcher.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-finished; err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected watcher error: %v", err)
		}
	})

	deadline := testWaitTimeout
	for attempt := 0; attempt < 20; attempt++ {
		if err := os.WriteFile(filepath.Join(root, "src", "app.js"), []byte("console.log(1);\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case <-runs:
			return
		case <-time.After(deadline / 20):
		}
	}
	t.Fatalf("expected a run after a source change")
}
