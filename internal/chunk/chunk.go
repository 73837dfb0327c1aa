// Package chunk splits large files into line-bounded, fenced sections.
package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/devassist/internal/utils"
)

// DefaultMaxLines is the chunk size used when none is configured.
const DefaultMaxLines = 150

const (
	lineBreak            = "\n"
	headerFormat         = "# File: %s\n# Total Chunks: %d\n\n"
	tableOfContentsTitle = "## Table of Contents\n"
	tableEntryFormat     = "- Chunk %d: Lines %d-%d\n"
	sectionSeparator     = "\n---\n\n"
	chunkTitleFormat     = "## Chunk %d of %d (Lines %d-%d)\n\n"
	codeFence            = "```"
)

// ErrInvalidMaxLines is returned when the chunk size is not positive.
var ErrInvalidMaxLines = errors.New("chunk: max lines must be positive")

// Chunk is one contiguous range of lines. Line numbers are 1-based and inclusive.
type Chunk struct {
	Index     int
	StartLine int
	EndLine   int
	Content   string
}

// Split cuts content into chunks of at most maxLines lines. A single trailing
// newline does not produce an extra empty line.
func Split(content string, maxLines int) ([]Chunk, error) {
	if maxLines <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLines, maxLines)
	}
	lines := strings.Split(strings.TrimSuffix(content, lineBreak), lineBreak)
	chunks := make([]Chunk, 0, (len(lines)+maxLines-1)/maxLines)
	for start := 0; start < len(lines); start += maxLines {
		end := min(start+maxLines, len(lines))
		chunks = append(chunks, Chunk{
			Index:     len(chunks) + 1,
			StartLine: start + 1,
			EndLine:   end,
			Content:   strings.Join(lines[start:end], lineBreak),
		})
	}
	return chunks, nil
}

// Render produces the markdown document for the chunks of fileName: a header,
// a table of contents and one fenced block per chunk.
func Render(fileName string, chunks []Chunk) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(headerFormat, fileName, len(chunks)))
	builder.WriteString(tableOfContentsTitle)
	for _, current := range chunks {
		builder.WriteString(fmt.Sprintf(tableEntryFormat, current.Index, current.StartLine, current.EndLine))
	}
	builder.WriteString(sectionSeparator)

	language := utils.FenceLanguage(fileName)
	for _, current := range chunks {
		builder.WriteString(fmt.Sprintf(chunkTitleFormat, current.Index, len(chunks), current.StartLine, current.EndLine))
		builder.WriteString(codeFence + language + lineBreak)
		builder.WriteString(current.Content)
		builder.WriteString(lineBreak + codeFence + lineBreak + lineBreak)
	}
	return builder.String()
}
