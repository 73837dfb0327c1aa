// Package diffview computes and prints line diffs between two file versions.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ContextLines is the number of trailing unchanged lines shown for each unchanged run.
const ContextLines = 3

const (
	lineBreak        = "\n"
	addedPrefix      = "+ "
	removedPrefix    = "- "
	unchangedPrefix  = "  "
	summarySeparator = "\n---"
	addedSummary     = "Summary: %d line(s) added, "
	removedSummary   = "%d line(s) removed."
)

// Kind classifies a diff line.
type Kind int

const (
	// Unchanged lines appear in both versions.
	Unchanged Kind = iota
	// Added lines appear only in the new version.
	Added
	// Removed lines appear only in the old version.
	Removed
)

// Line is one rendered line of a diff.
type Line struct {
	Kind Kind
	Text string
}

// Result holds the visible lines and the change totals.
type Result struct {
	Lines   []Line
	Added   int
	Removed int
}

// Compute diffs oldContent against newContent line by line. Unchanged runs are
// reduced to their last ContextLines non-empty lines; empty changed lines are
// counted but not shown.
func Compute(oldContent string, newContent string) Result {
	matcher := diffmatchpatch.New()
	oldCharacters, newCharacters, lineArray := matcher.DiffLinesToChars(oldContent, newContent)
	diffs := matcher.DiffCharsToLines(matcher.DiffMain(oldCharacters, newCharacters, false), lineArray)

	var result Result
	for _, segment := range diffs {
		segmentLines := splitLines(segment.Text)
		switch segment.Type {
		case diffmatchpatch.DiffInsert:
			result.Added += len(segmentLines)
			result.Lines = append(result.Lines, visibleLines(Added, segmentLines)...)
		case diffmatchpatch.DiffDelete:
			result.Removed += len(segmentLines)
			result.Lines = append(result.Lines, visibleLines(Removed, segmentLines)...)
		default:
			context := visibleLines(Unchanged, segmentLines)
			if len(context) > ContextLines {
				context = context[len(context)-ContextLines:]
			}
			result.Lines = append(result.Lines, context...)
		}
	}
	return result
}

// Render writes the diff lines followed by the change summary. Colors follow
// the global color setting.
func Render(writer io.Writer, result Result) error {
	addedStyle := color.New(color.FgGreen)
	removedStyle := color.New(color.FgRed)
	unchangedStyle := color.New(color.Faint)
	for _, line := range result.Lines {
		var rendered string
		switch line.Kind {
		case Added:
			rendered = addedStyle.Sprint(addedPrefix + line.Text)
		case Removed:
			rendered = removedStyle.Sprint(removedPrefix + line.Text)
		default:
			rendered = unchangedStyle.Sprint(unchangedPrefix + line.Text)
		}
		if _, err := fmt.Fprintln(writer, rendered); err != nil {
			return err
		}
	}
	summary := color.New(color.Bold, color.FgGreen).Sprintf(addedSummary, result.Added) +
		color.New(color.Bold, color.FgRed).Sprintf(removedSummary, result.Removed)
	_, err := fmt.Fprintln(writer, summarySeparator+lineBreak+summary)
	return err
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, lineBreak), lineBreak)
}

func visibleLines(kind Kind, lines []string) []Line {
	visible := make([]Line, 0, len(lines))
	for _, text := range lines {
		if text == "" {
			continue
		}
		visible = append(visible, Line{Kind: kind, Text: text})
	}
	return visible
}
