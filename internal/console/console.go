// Package console prints user-facing status lines.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	// MaximumRuleWidth caps the width of separator rules.
	MaximumRuleWidth = 40
	ruleCharacter    = "─"
	successPrefix    = "✔ "
	warningPrefix    = "⚠ "
	failurePrefix    = "✖ "
)

// ConfigureColors enables colored output only when stream is a terminal and
// colors were not disabled.
func ConfigureColors(stream *os.File, disabled bool) {
	color.NoColor = disabled || !isTerminal(stream)
}

func isTerminal(stream *os.File) bool {
	if stream == nil {
		return false
	}
	descriptor := stream.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// RuleWidth returns the terminal width of stream capped at MaximumRuleWidth.
// Streams that are not terminals get the cap.
func RuleWidth(stream *os.File) int {
	if stream == nil || !isTerminal(stream) {
		return MaximumRuleWidth
	}
	width, _, err := term.GetSize(int(stream.Fd()))
	if err != nil || width <= 0 {
		return MaximumRuleWidth
	}
	return min(width, MaximumRuleWidth)
}

// Printer writes colored status lines to one writer.
type Printer struct {
	writer    io.Writer
	ruleWidth int
}

// NewPrinter constructs a Printer. ruleWidth values below one fall back to MaximumRuleWidth.
func NewPrinter(writer io.Writer, ruleWidth int) *Printer {
	if ruleWidth < 1 {
		ruleWidth = MaximumRuleWidth
	}
	return &Printer{writer: writer, ruleWidth: ruleWidth}
}

// Success prints a green line prefixed with a check mark.
func (printer *Printer) Success(format string, arguments ...any) {
	printer.line(color.New(color.FgGreen), successPrefix+format, arguments...)
}

// Warning prints a yellow line.
func (printer *Printer) Warning(format string, arguments ...any) {
	printer.line(color.New(color.FgYellow), warningPrefix+format, arguments...)
}

// Failure prints a red line.
func (printer *Printer) Failure(format string, arguments ...any) {
	printer.line(color.New(color.FgRed), failurePrefix+format, arguments...)
}

// Info prints a blue line.
func (printer *Printer) Info(format string, arguments ...any) {
	printer.line(color.New(color.FgBlue), format, arguments...)
}

// Notice prints a cyan line.
func (printer *Printer) Notice(format string, arguments ...any) {
	printer.line(color.New(color.FgCyan), format, arguments...)
}

// Dim prints a faint line.
func (printer *Printer) Dim(format string, arguments ...any) {
	printer.line(color.New(color.Faint), format, arguments...)
}

// Heading prints a bold line.
func (printer *Printer) Heading(format string, arguments ...any) {
	printer.line(color.New(color.Bold), format, arguments...)
}

// Plain prints an uncolored line.
func (printer *Printer) Plain(format string, arguments ...any) {
	fmt.Fprintf(printer.writer, format+"\n", arguments...)
}

// Rule prints a faint separator.
func (printer *Printer) Rule() {
	printer.line(color.New(color.Faint), "%s", strings.Repeat(ruleCharacter, printer.ruleWidth))
}

// Writer exposes the underlying writer for raw output.
func (printer *Printer) Writer() io.Writer {
	return printer.writer
}

func (printer *Printer) line(style *color.Color, format string, arguments ...any) {
	fmt.Fprintln(printer.writer, style.Sprintf(format, arguments...))
}
