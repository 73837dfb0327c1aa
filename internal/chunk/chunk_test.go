package chunk_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/temirov/devassist/internal/chunk"
)

func numberedLines(count int) string {
	lines := make([]string, count)
	for index := range lines {
		lines[index] = fmt.Sprintf("line %d", index+1)
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestSplit(t *testing.T) {
	testCases := []struct {
		name           string
		lineCount      int
		maxLines       int
		expectedRanges [][2]int
	}{
		{name: "exact multiple", lineCount: 6, maxLines: 3, expectedRanges: [][2]int{{1, 3}, {4, 6}}},
		{name: "remainder", lineCount: 7, maxLines: 3, expectedRanges: [][2]int{{1, 3}, {4, 6}, {7, 7}}},
		{name: "single chunk", lineCount: 2, maxLines: 150, expectedRanges: [][2]int{{1, 2}}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			chunks, err := chunk.Split(numberedLines(testCase.lineCount), testCase.maxLines)
			if err != nil {
				t.Fatalf("Split error: %v", err)
			}
			if len(chunks) != len(testCase.expectedRanges) {
				t.Fatalf("expected %d chunks, got %d", len(testCase.expectedRanges), len(chunks))
			}
			for index, current := range chunks {
				expectedRange := testCase.expectedRanges[index]
				if current.StartLine != expectedRange[0] || current.EndLine != expectedRange[1] || current.Index != index+1 {
					t.Fatalf("chunk %d: unexpected bounds %+v", index, current)
				}
				if !strings.HasPrefix(current.Content, fmt.Sprintf("line %d", expectedRange[0])) {
					t.Fatalf("chunk %d: unexpected content %q", index, current.Content)
				}
			}
		})
	}
}

func TestSplitRejectsNonPositiveSize(t *testing.T) {
	if _, err := chunk.Split("a", 0); !errors.Is(err, chunk.ErrInvalidMaxLines) {
		t.Fatalf("expected ErrInvalidMaxLines, got %v", err)
	}
}

func TestRender(t *testing.T) {
	chunks, err := chunk.Split("a\nb\nc\n", 2)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	expected := "# File: src/app.js\n# Total Chunks: 2\n\n" +
		"## Table of Contents\n- Chunk 1: Lines 1-2\n- Chunk 2: Lines 3-3\n\n---\n\n" +
		"## Chunk 1 of 2 (Lines 1-2)\n\n```js\na\nb\n```\n\n" +
		"## Chunk 2 of 2 (Lines 3-3)\n\n```js\nc\n```\n\n"
	if actual := chunk.Render("src/app.js", chunks); actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}
