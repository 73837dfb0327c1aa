// Package export collects project files into a single document for LLM context.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/comments"
	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/framework"
	"github.com/temirov/devassist/internal/output"
	"github.com/temirov/devassist/internal/overlay"
	"github.com/temirov/devassist/internal/redact"
	"github.com/temirov/devassist/internal/services/clipboard"
	"github.com/temirov/devassist/internal/structure"
	"github.com/temirov/devassist/internal/summarize"
	"github.com/temirov/devassist/internal/tokenizer"
	"github.com/temirov/devassist/internal/traversal"
	"github.com/temirov/devassist/internal/types"
	"github.com/temirov/devassist/internal/utils"
)

// DefaultOutputFileName is the export target when none is given.
const DefaultOutputFileName = "Code.txt"

const (
	outputFilePermissions = 0o644

	resolveDirectoryErrorFormat = "export: resolve working directory %s: %w"
	resolveOutputErrorFormat    = "export: resolve output %s: %w"
	collectErrorFormat          = "export: collect files: %w"
	readFileErrorFormat         = "export: read %s: %w"
	renderErrorFormat           = "export: render bundle: %w"
	writeOutputErrorFormat      = "export: write %s: %w"

	skippedBinaryMessage    = "skipping binary file"
	skippedPatternMessage   = "skipping file outside include/exclude patterns"
	tokenCountFailedMessage = "token counting failed"
	clipboardFailedMessage  = "clipboard copy failed"
	exportCompletedMessage  = "export completed"
	pathLogKey              = "path"
	filesLogKey             = "files"
	outputLogKey            = "output"
)

// Options selects what an export collects and how it is rendered.
type Options struct {
	WorkingDirectory string
	// ConfigPath overrides the .aiconfig.json lookup.
	ConfigPath string
	// OutputPath is resolved against WorkingDirectory. Defaults to DefaultOutputFileName.
	OutputPath string
	Include    []string
	Exclude    []string
	// Format is markdown or xml; empty derives it from the output extension.
	Format           string
	UseGitIgnore     bool
	IncludeStructure bool
	// Framework names the project framework; empty detects it from the project files.
	Framework         string
	StripComments     bool
	PreserveProtected bool
	RedactSecrets     bool
	Summarize         bool
	CountTokens       bool
	Model             string
	CopyToClipboard   bool
}

// Result describes a finished export.
type Result struct {
	OutputPath string
	Format     string
	Bytes      int64
	Files      []types.CollectedFile
	Findings   []redact.Finding
	Tokens     *types.TokenSummary
	Copied     bool
}

// CounterFactory builds a token counter for a model.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Exporter runs exports with its collaborators.
type Exporter struct {
	stripper   comments.Stripper
	copier     clipboard.Copier
	newCounter CounterFactory
	logger     *zap.Logger
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithCounterFactory replaces the tiktoken counter factory.
func WithCounterFactory(factory CounterFactory) Option {
	return func(exporter *Exporter) {
		exporter.newCounter = factory
	}
}

// NewExporter constructs an Exporter. A nil stripper leaves comments in place
// and a nil copier disables clipboard copies.
func NewExporter(stripper comments.Stripper, copier clipboard.Copier, logger *zap.Logger, options ...Option) *Exporter {
	exporter := &Exporter{
		stripper:   stripper,
		copier:     copier,
		newCounter: tokenizer.NewCounter,
		logger:     utils.LoggerOrNop(logger),
	}
	for _, option := range options {
		option(exporter)
	}
	return exporter
}

// Run collects, transforms and renders the project, writes the bundle and
// optionally counts tokens and copies it to the clipboard. Token counting and
// clipboard failures are logged and do not fail the export.
func (exporter *Exporter) Run(ctx context.Context, options Options) (Result, error) {
	workingDirectory, absoluteError := filepath.Abs(options.WorkingDirectory)
	if absoluteError != nil {
		return Result{}, fmt.Errorf(resolveDirectoryErrorFormat, options.WorkingDirectory, absoluteError)
	}
	outputPath, outputError := ResolveOutputPath(workingDirectory, options.OutputPath)
	if outputError != nil {
		return Result{}, outputError
	}
	format, formatError := output.ResolveFormat(options.Format, outputPath)
	if formatError != nil {
		return Result{}, formatError
	}

	configuration := config.Resolve(workingDirectory, options.ConfigPath, exporter.logger).
		WithIgnoredFiles(filepath.Base(outputPath))
	collectedFiles, findings, collectError := exporter.collect(ctx, workingDirectory, configuration, options)
	if collectError != nil {
		return Result{}, collectError
	}

	bundle := types.Bundle{ProjectName: filepath.Base(workingDirectory), Files: collectedFiles}
	if options.IncludeStructure {
		relativePaths := make([]string, 0, len(collectedFiles))
		for _, collectedFile := range collectedFiles {
			relativePaths = append(relativePaths, collectedFile.RelativePath)
		}
		bundle.Structure = structure.Render(relativePaths, utils.EmptyString)
	}
	bundle.Framework = options.Framework
	if bundle.Framework == utils.EmptyString {
		if detected := framework.Detect(workingDirectory); detected != framework.Unknown {
			bundle.Framework = detected
		}
	}
	rendered, renderError := output.Render(format, bundle)
	if renderError != nil {
		return Result{}, fmt.Errorf(renderErrorFormat, renderError)
	}
	if writeError := os.WriteFile(outputPath, []byte(rendered), outputFilePermissions); writeError != nil {
		return Result{}, fmt.Errorf(writeOutputErrorFormat, outputPath, writeError)
	}

	result := Result{OutputPath: outputPath, Format: format, Bytes: int64(len(rendered)), Files: collectedFiles, Findings: findings}
	if options.CountTokens {
		result.Tokens = exporter.countTokens(rendered, options.Model)
	}
	if options.CopyToClipboard && exporter.copier != nil {
		if copyError := exporter.copier.Copy(rendered); copyError != nil {
			exporter.logger.Warn(clipboardFailedMessage, zap.Error(copyError))
		} else {
			result.Copied = true
		}
	}
	exporter.logger.Debug(exportCompletedMessage, zap.String(outputLogKey, outputPath), zap.Int(filesLogKey, len(collectedFiles)))
	return result, nil
}

// ResolveOutputPath returns the absolute output path for an export rooted at workingDirectory.
func ResolveOutputPath(workingDirectory string, outputPath string) (string, error) {
	if outputPath == utils.EmptyString {
		outputPath = DefaultOutputFileName
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workingDirectory, outputPath)
	}
	absoluteOutput, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		return utils.EmptyString, fmt.Errorf(resolveOutputErrorFormat, outputPath, absoluteError)
	}
	return absoluteOutput, nil
}

func (exporter *Exporter) collect(ctx context.Context, workingDirectory string, configuration config.Config, options Options) ([]types.CollectedFile, []redact.Finding, error) {
	patternSet := overlay.NewPatternSet(options.Include, options.Exclude)
	var formatter *comments.Formatter
	if options.StripComments {
		formatter = comments.NewFormatter(exporter.stripper, options.PreserveProtected, exporter.logger)
	}
	redactor := redact.New(exporter.logger)

	collectedFiles := []types.CollectedFile{}
	var findings []redact.Finding
	visit := func(absolutePath string) error {
		relativePath, relativeError := utils.ToPosixRelative(workingDirectory, absolutePath)
		if relativeError != nil {
			return relativeError
		}
		if !patternSet.Allows(relativePath) {
			exporter.logger.Debug(skippedPatternMessage, zap.String(pathLogKey, relativePath))
			return nil
		}
		data, readError := os.ReadFile(absolutePath)
		if readError != nil {
			return fmt.Errorf(readFileErrorFormat, relativePath, readError)
		}
		if utils.IsBinary(data) {
			exporter.logger.Debug(skippedBinaryMessage, zap.String(pathLogKey, relativePath))
			return nil
		}
		content := string(data)
		if formatter != nil {
			content = formatter.Format(ctx, absolutePath, content)
		}
		if options.Summarize && summarize.Supports(absolutePath) {
			content = summarize.Summarize(absolutePath, content)
		}
		content, fileFindings := redactor.Scan(relativePath, content, options.RedactSecrets)
		findings = append(findings, fileFindings...)
		collectedFiles = append(collectedFiles, types.CollectedFile{RelativePath: relativePath, Content: content})
		return nil
	}
	walkError := traversal.Walk(workingDirectory, configuration, visit, traversal.Options{
		BaseDirectory: workingDirectory,
		UseGitIgnore:  options.UseGitIgnore,
		Logger:        exporter.logger,
	})
	if walkError != nil {
		return nil, nil, fmt.Errorf(collectErrorFormat, walkError)
	}
	return collectedFiles, findings, nil
}

func (exporter *Exporter) countTokens(rendered string, model string) *types.TokenSummary {
	counter, resolvedModel, counterError := exporter.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		exporter.logger.Warn(tokenCountFailedMessage, zap.Error(counterError))
		return nil
	}
	countResult, countError := tokenizer.CountBytes(counter, []byte(rendered))
	if countError != nil {
		exporter.logger.Warn(tokenCountFailedMessage, zap.Error(countError))
		return nil
	}
	return &types.TokenSummary{Tokens: countResult.Tokens, Model: resolvedModel}
}
