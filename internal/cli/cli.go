// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/comments"
	"github.com/temirov/devassist/internal/console"
	"github.com/temirov/devassist/internal/gitctx"
	"github.com/temirov/devassist/internal/services/clipboard"
	"github.com/temirov/devassist/internal/utils"
)

const (
	rootUse              = "devassist"
	rootShortDescription = "A toolkit to bridge developer workflows with AI"
	rootLongDescription  = `devassist prepares project context for AI assistants.
It exports project files into one document, splits large files into chunks,
shows diffs against git revisions, extracts error context from logs, builds
commit-message prompts from staged changes and removes comments from sources.
Selection rules come from .aiconfig.json; use --config to point at another file.`
	versionTemplate = "devassist version: {{.Version}}\n"

	verboseFlagName        = "verbose"
	verboseFlagDescription = "enable debug logging"
	configFlagName         = "config"
	configFlagDescription  = "path to a configuration file (default: ./.aiconfig.json)"
	noColorFlagName        = "no-color"
	noColorFlagDescription = "disable colored output"

	outputFlagName            = "output"
	outputFlagShorthand       = "o"
	copyFlagName              = "copy"
	copyFlagDescription       = "copy the result to the clipboard"
	gitIgnoreFlagName         = "gitignore"
	gitIgnoreFlagDescription  = "also apply the rules in .gitignore"
	excludeFlagName           = "exclude"
	excludeFlagDescription    = "comma-separated files, directories or globs to exclude"
	preserveProtectedFlagName = "preserve-protected"
	preserveProtectedUsage    = "keep protected comments such as /*! ... */"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	clipboardCopiedMessage      = "Output copied to clipboard!"
	clipboardFailedFormat       = "Could not copy to clipboard: %v"
)

// dependencies carries the collaborators shared by every command.
type dependencies struct {
	logger           *zap.Logger
	level            zap.AtomicLevel
	output           io.Writer
	workingDirectory string
	copier           clipboard.Copier
	stripper         comments.Stripper
	gitRunner        gitctx.Runner
	printer          *console.Printer
}

// globalOptions holds the persistent flags of the root command.
type globalOptions struct {
	verbose    bool
	configPath string
	noColor    bool
}

// Execute runs the devassist application.
func Execute(ctx context.Context, logger *zap.Logger, level zap.AtomicLevel) error {
	rootCommand := createRootCommand(&dependencies{
		logger:    logger,
		level:     level,
		output:    os.Stdout,
		copier:    clipboard.NewService(),
		stripper:  comments.NewStripper(),
		gitRunner: gitctx.ExecRunner{},
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps *dependencies) *cobra.Command {
	deps.logger = utils.LoggerOrNop(deps.logger)
	if deps.output == nil {
		deps.output = io.Discard
	}
	globals := &globalOptions{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if globals.verbose {
				deps.level.SetLevel(zap.DebugLevel)
			}
			deps.printer = newPrinter(deps.output, globals.noColor)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(deps.output)
	rootCommand.PersistentFlags().BoolVar(&globals.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.PersistentFlags().StringVar(&globals.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&globals.noColor, noColorFlagName, false, noColorFlagDescription)
	rootCommand.AddCommand(
		createExportCommand(deps, globals),
		createWatchCommand(deps, globals),
		createChunkCommand(deps),
		createDiffCommand(deps),
		createErrorCommand(deps),
		createCommitCommand(deps),
		createRemoveCommentsCommand(deps, globals),
		createConfigCommand(deps, globals),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// newPrinter configures colors for writer and returns a printer for it.
// Writers other than terminals never receive color codes.
func newPrinter(writer io.Writer, noColor bool) *console.Printer {
	if file, isFile := writer.(*os.File); isFile {
		console.ConfigureColors(file, noColor)
		return console.NewPrinter(writer, console.RuleWidth(file))
	}
	console.ConfigureColors(nil, true)
	return console.NewPrinter(writer, console.MaximumRuleWidth)
}

func (deps *dependencies) resolveWorkingDirectory() (string, error) {
	if deps.workingDirectory != utils.EmptyString {
		return deps.workingDirectory, nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return utils.EmptyString, fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return workingDirectory, nil
}

// copyToClipboard copies text and reports the outcome. Failures are not fatal.
func (deps *dependencies) copyToClipboard(text string) bool {
	if deps.copier == nil {
		return false
	}
	if err := deps.copier.Copy(text); err != nil {
		deps.printer.Warning(clipboardFailedFormat, err)
		return false
	}
	deps.printer.Success(clipboardCopiedMessage)
	return true
}
