package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/export"
	"github.com/temirov/devassist/internal/tokenizer"
	"github.com/temirov/devassist/internal/utils"
)

const (
	exportUse              = "export"
	exportShortDescription = "Export project structure and file contents into a single file for AI context"
	exportLongDescription  = `Collect every selected project file into one markdown or XML document.
Files are chosen by .aiconfig.json, optionally narrowed with --only and --exclude.
Comments are stripped and secrets redacted unless disabled.`
	exportUsageExample = `  # Export the project into Code.txt
  devassist export

  # Export only src and package.json as XML
  devassist export --only src,package.json -o context.xml

  # Export with .gitignore rules and a token estimate
  devassist export --gitignore --tokens`

	onlyFlagName               = "only"
	onlyFlagDescription        = "comma-separated files, directories or globs to include"
	frameworkFlagName          = "framework"
	frameworkFlagDescription   = "manually specify the project's framework (e.g. React, Django)"
	structureFlagName          = "structure"
	structureFlagDescription   = "include the project structure"
	noStructureFlagName        = "no-structure"
	noStructureFlagDescription = "do not export the project structure"
	formatFlagName             = "format"
	formatFlagDescription      = "output format: markdown or xml (default: xml for .xml outputs)"
	stripCommentsFlagName      = "strip-comments"
	stripCommentsDescription   = "remove comments and blank lines from exported files"
	redactFlagName             = "redact"
	redactFlagDescription      = "replace detected secrets with a placeholder"
	summarizeFlagName          = "summarize"
	summarizeFlagDescription   = "replace function bodies with placeholders"
	tokensFlagName             = "tokens"
	tokensFlagDescription      = "estimate the token count of the export"
	modelFlagName              = "model"
	modelFlagDescription       = "tokenizer model to use for token counting"
	outputFileFlagDescription  = "output file name"

	exportStartingMessage       = "Starting project export..."
	exportSucceededFormat       = "Project exported successfully to %s (%d files, %s)"
	secretsRedactedFormat       = "%d potential secret(s) redacted"
	secretsFoundFormat          = "%d potential secret(s) found; rerun with --redact to mask them"
	tokenEstimateFormat         = "Estimated tokens: %d (%s)"
	clipboardUnavailableMessage = "Could not copy to clipboard"
)

// exportFlags are the flags shared by export and watch.
type exportFlags struct {
	outputPath        string
	include           []string
	exclude           []string
	framework         string
	includeStructure  bool
	noStructure       bool
	format            string
	useGitIgnore      bool
	stripComments     bool
	preserveProtected bool
	redactSecrets     bool
	summarize         bool
	countTokens       bool
	model             string
	copyToClipboard   bool
}

func addExportFlags(command *cobra.Command, flags *exportFlags, defaultOutput string) {
	flagSet := command.Flags()
	flagSet.StringVarP(&flags.outputPath, outputFlagName, outputFlagShorthand, defaultOutput, outputFileFlagDescription)
	registerPatternListFlag(flagSet, &flags.include, onlyFlagName, onlyFlagDescription)
	registerPatternListFlag(flagSet, &flags.exclude, excludeFlagName, excludeFlagDescription)
	flagSet.StringVar(&flags.framework, frameworkFlagName, utils.EmptyString, frameworkFlagDescription)
	registerBooleanFlag(flagSet, &flags.includeStructure, structureFlagName, true, structureFlagDescription)
	flagSet.BoolVar(&flags.noStructure, noStructureFlagName, false, noStructureFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, utils.EmptyString, formatFlagDescription)
	flagSet.BoolVar(&flags.useGitIgnore, gitIgnoreFlagName, false, gitIgnoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.stripComments, stripCommentsFlagName, true, stripCommentsDescription)
	flagSet.BoolVar(&flags.preserveProtected, preserveProtectedFlagName, false, preserveProtectedUsage)
	registerBooleanFlag(flagSet, &flags.redactSecrets, redactFlagName, true, redactFlagDescription)
	flagSet.BoolVar(&flags.summarize, summarizeFlagName, false, summarizeFlagDescription)
	flagSet.BoolVar(&flags.countTokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&flags.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.BoolVar(&flags.copyToClipboard, copyFlagName, false, copyFlagDescription)
}

func (flags exportFlags) toOptions(workingDirectory string, configPath string) export.Options {
	return export.Options{
		WorkingDirectory:  workingDirectory,
		ConfigPath:        configPath,
		OutputPath:        flags.outputPath,
		Include:           flags.include,
		Exclude:           flags.exclude,
		Format:            flags.format,
		UseGitIgnore:      flags.useGitIgnore,
		IncludeStructure:  flags.includeStructure && !flags.noStructure,
		Framework:         flags.framework,
		StripComments:     flags.stripComments,
		PreserveProtected: flags.preserveProtected,
		RedactSecrets:     flags.redactSecrets,
		Summarize:         flags.summarize,
		CountTokens:       flags.countTokens,
		Model:             flags.model,
		CopyToClipboard:   flags.copyToClipboard,
	}
}

// createExportCommand returns the export subcommand.
func createExportCommand(deps *dependencies, globals *globalOptions) *cobra.Command {
	var flags exportFlags

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Short:   exportShortDescription,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			return runExport(command.Context(), deps, flags.toOptions(workingDirectory, globals.configPath))
		},
	}
	addExportFlags(exportCommand, &flags, export.DefaultOutputFileName)
	return exportCommand
}

// runExport runs one export and reports its outcome.
func runExport(ctx context.Context, deps *dependencies, options export.Options) error {
	deps.printer.Notice(exportStartingMessage)
	exporter := export.NewExporter(deps.stripper, deps.copier, deps.logger)
	result, err := exporter.Run(ctx, options)
	if err != nil {
		return err
	}
	deps.printer.Success(exportSucceededFormat, result.OutputPath, len(result.Files), utils.FormatFileSize(result.Bytes))

	secretCount := 0
	for _, finding := range result.Findings {
		secretCount += finding.Occurrences
	}
	if secretCount > 0 {
		if options.RedactSecrets {
			deps.printer.Warning(secretsRedactedFormat, secretCount)
		} else {
			deps.printer.Warning(secretsFoundFormat, secretCount)
		}
	}
	if result.Tokens != nil {
		deps.printer.Info(tokenEstimateFormat, result.Tokens.Tokens, result.Tokens.Model)
	}
	if options.CopyToClipboard {
		if result.Copied {
			deps.printer.Success(clipboardCopiedMessage)
		} else {
			deps.printer.Warning(clipboardUnavailableMessage)
		}
	}
	return nil
}
