package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/cleanup"
)

const (
	removeCommentsUse              = "remove-comments [pattern]"
	removeCommentsAlias            = "rc"
	removeCommentsShortDescription = "Remove all comments from source files (" + removeCommentsAlias + ")"
	removeCommentsLongDescription  = `Strip comments in place from every selected file with a known comment grammar.
Data files (.json, .md, .txt, .lock) and files of unknown languages are skipped.
Use --dry-run to list the files that would change.`
	removeCommentsUsageExample = `  # Preview which files would change
  devassist rc --dry-run

  # Clean only the src directory, keeping /*! license */ blocks
  devassist remove-comments src --preserve-protected`

	dryRunFlagName         = "dry-run"
	dryRunFlagDescription  = "report the files that would change without writing them"
	includeFlagName        = "include"
	includeFlagDescription = "comma-separated files, directories or globs to include"

	removeCommentsStarting = "Starting comment removal..."
	cleanedFileFormat      = "Cleaned: %s"
	wouldCleanFileFormat   = "Would clean: %s"
	cleanFailedFormat      = "Error processing %s: %v"
	removeCommentsComplete = "Comment removal complete!"
	removeCommentsStats    = "Stats: %d files scanned, %d files modified."
	removeCommentsFailures = "%d file(s) could not be processed"
)

// createRemoveCommentsCommand returns the remove-comments subcommand.
func createRemoveCommentsCommand(deps *dependencies, globals *globalOptions) *cobra.Command {
	var options cleanup.Options

	removeCommentsCommand := &cobra.Command{
		Use:     removeCommentsUse,
		Aliases: []string{removeCommentsAlias},
		Short:   removeCommentsShortDescription,
		Long:    removeCommentsLongDescription,
		Example: removeCommentsUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			runOptions := options
			runOptions.WorkingDirectory = workingDirectory
			runOptions.ConfigPath = globals.configPath
			if len(arguments) == 1 {
				runOptions.Target = arguments[0]
			}

			deps.printer.Info(removeCommentsStarting)
			deps.printer.Rule()
			cleaner := cleanup.NewCleaner(deps.stripper, deps.logger)
			stats, err := cleaner.Run(command.Context(), runOptions, func(outcome cleanup.Outcome) {
				switch {
				case outcome.Err != nil:
					deps.printer.Failure(cleanFailedFormat, outcome.RelativePath, outcome.Err)
				case outcome.Modified && runOptions.DryRun:
					deps.printer.Notice(wouldCleanFileFormat, outcome.RelativePath)
				case outcome.Modified:
					deps.printer.Success(cleanedFileFormat, outcome.RelativePath)
				}
			})
			if err != nil {
				return err
			}
			deps.printer.Rule()
			deps.printer.Success(removeCommentsComplete)
			deps.printer.Plain(removeCommentsStats, stats.Scanned, stats.Modified)
			if stats.Failed > 0 {
				deps.printer.Warning(removeCommentsFailures, stats.Failed)
			}
			return nil
		},
	}
	flagSet := removeCommentsCommand.Flags()
	flagSet.BoolVar(&options.DryRun, dryRunFlagName, false, dryRunFlagDescription)
	registerPatternListFlag(flagSet, &options.Include, includeFlagName, includeFlagDescription)
	registerPatternListFlag(flagSet, &options.Exclude, excludeFlagName, excludeFlagDescription)
	flagSet.BoolVar(&options.PreserveProtected, preserveProtectedFlagName, false, preserveProtectedUsage)
	flagSet.BoolVar(&options.UseGitIgnore, gitIgnoreFlagName, false, gitIgnoreFlagDescription)
	return removeCommentsCommand
}
