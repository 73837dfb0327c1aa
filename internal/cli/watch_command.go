package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/export"
	"github.com/temirov/devassist/internal/ignore"
	"github.com/temirov/devassist/internal/watch"
)

const (
	watchUse              = "watch"
	watchShortDescription = "Re-export the project whenever files change"
	watchLongDescription  = `Run an export, then watch the project and re-export after changes settle.
Accepts every export flag. Changes to the output file, hidden files and ignored
paths are not watched.`
	watchUsageExample = `  # Keep context.md up to date
  devassist watch

  # Watch with a longer quiet period
  devassist watch --debounce 2s -o context.xml`

	defaultWatchOutputFileName = "context.md"
	debounceFlagName           = "debounce"
	debounceFlagDescription    = "quiet period after the last change before re-exporting"

	watchStartingMessage  = "Starting watch mode..."
	watchDirectoryFormat  = "Watching for changes in %s"
	watchOutputFormat     = "Output will be updated to %s"
	watchWaitingMessage   = "Watching for changes..."
	watchChangedMessage   = "Changes detected. Updating export..."
	watchUpdateFailed     = "Error updating export: %v"
	watchStoppedMessage   = "Watch mode stopped"
	compileRulesErrFormat = "watch: compile ignore rules: %w"
)

// createWatchCommand returns the watch subcommand.
func createWatchCommand(deps *dependencies, globals *globalOptions) *cobra.Command {
	var flags exportFlags
	debounce := watch.DefaultDebounce

	watchCommand := &cobra.Command{
		Use:     watchUse,
		Short:   watchShortDescription,
		Long:    watchLongDescription,
		Example: watchUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			return runWatch(command.Context(), deps, flags.toOptions(workingDirectory, globals.configPath), debounce)
		},
	}
	addExportFlags(watchCommand, &flags, defaultWatchOutputFileName)
	watchCommand.Flags().DurationVar(&debounce, debounceFlagName, watch.DefaultDebounce, debounceFlagDescription)
	return watchCommand
}

func runWatch(ctx context.Context, deps *dependencies, options export.Options, debounce time.Duration) error {
	workingDirectory, err := filepath.Abs(options.WorkingDirectory)
	if err != nil {
		return err
	}
	outputPath, err := export.ResolveOutputPath(workingDirectory, options.OutputPath)
	if err != nil {
		return err
	}
	options.WorkingDirectory = workingDirectory
	options.OutputPath = outputPath

	deps.printer.Info(watchStartingMessage)
	deps.printer.Dim(watchDirectoryFormat, workingDirectory)
	deps.printer.Dim(watchOutputFormat, outputPath)

	if err := runExport(ctx, deps, options); err != nil {
		return err
	}
	deps.printer.Info(watchWaitingMessage)

	configuration := config.Resolve(workingDirectory, options.ConfigPath, deps.logger).
		WithIgnoredFiles(filepath.Base(outputPath))
	matcher, err := ignore.Compile(configuration, workingDirectory, options.UseGitIgnore, ignore.WithLogger(deps.logger))
	if err != nil {
		return fmt.Errorf(compileRulesErrFormat, err)
	}

	scheduler := watch.NewScheduler(debounce, func(runContext context.Context) error {
		deps.printer.Notice(watchChangedMessage)
		exportErr := runExport(runContext, deps, options)
		if exportErr != nil {
			deps.printer.Failure(watchUpdateFailed, exportErr)
		}
		deps.printer.Info(watchWaitingMessage)
		return exportErr
	}, deps.logger)
	watcher := watch.NewWatcher(workingDirectory, watch.NewFilter(workingDirectory, outputPath, configuration, matcher), scheduler, deps.logger)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	deps.printer.Dim(watchStoppedMessage)
	return nil
}
