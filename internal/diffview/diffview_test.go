package diffview_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/fatih/color"

	"github.com/temirov/devassist/internal/diffview"
)

func TestCompute(t *testing.T) {
	oldContent := "a\nb\nc\nd\ne\nold\n"
	newContent := "a\nb\nc\nd\ne\nnew\nextra\n"
	result := diffview.Compute(oldContent, newContent)

	if result.Added != 2 || result.Removed != 1 {
		t.Fatalf("unexpected totals +%d -%d", result.Added, result.Removed)
	}
	expected := []diffview.Line{
		{Kind: diffview.Unchanged, Text: "c"},
		{Kind: diffview.Unchanged, Text: "d"},
		{Kind: diffview.Unchanged, Text: "e"},
		{Kind: diffview.Removed, Text: "old"},
		{Kind: diffview.Added, Text: "new"},
		{Kind: diffview.Added, Text: "extra"},
	}
	if !reflect.DeepEqual(result.Lines, expected) {
		t.Fatalf("expected %+v, got %+v", expected, result.Lines)
	}
}

func TestComputeIdenticalContent(t *testing.T) {
	result := diffview.Compute("x\ny\n", "x\ny\n")
	if result.Added != 0 || result.Removed != 0 || len(result.Lines) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRender(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	var buffer bytes.Buffer
	result := diffview.Result{
		Lines:   []diffview.Line{{Kind: diffview.Unchanged, Text: "keep"}, {Kind: diffview.Removed, Text: "gone"}, {Kind: diffview.Added, Text: "fresh"}},
		Added:   1,
		Removed: 1,
	}
	if err := diffview.Render(&buffer, result); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	expected := "  keep\n- gone\n+ fresh\n\n---\nSummary: 1 line(s) added, 1 line(s) removed.\n"
	if buffer.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buffer.String())
	}
}
