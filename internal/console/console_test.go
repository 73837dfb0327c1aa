package console_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/temirov/devassist/internal/console"
)

func TestPrinterWritesPlainTextWithoutColors(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	var buffer bytes.Buffer
	printer := console.NewPrinter(&buffer, 5)
	printer.Success("Cleaned: %s", "a.js")
	printer.Warning("careful")
	printer.Rule()
	printer.Heading("Summary")

	expected := "✔ Cleaned: a.js\n⚠ careful\n─────\nSummary\n"
	if buffer.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buffer.String())
	}
}

func TestRuleWidthForNonTerminal(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer file.Close()
	if width := console.RuleWidth(file); width != console.MaximumRuleWidth {
		t.Fatalf("expected %d, got %d", console.MaximumRuleWidth, width)
	}
}

func TestConfigureColorsDisablesForFiles(t *testing.T) {
	previous := color.NoColor
	t.Cleanup(func() { color.NoColor = previous })
	file, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer file.Close()
	console.ConfigureColors(file, false)
	if !color.NoColor {
		t.Fatalf("expected colors to be disabled for a regular file")
	}
	var buffer bytes.Buffer
	console.NewPrinter(&buffer, 0).Rule()
	if strings.Count(buffer.String(), "─") != console.MaximumRuleWidth {
		t.Fatalf("expected default rule width, got %q", buffer.String())
	}
}
