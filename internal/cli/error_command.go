package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/errorctx"
)

const (
	errorUse              = "error <logfile>"
	errorShortDescription = "Extract an error and its code context from a log file"
	errorUsageExample     = `  # Build an analysis prompt with 5 lines of context
  devassist error -c 5 logs/crash.log`

	contextFlagName        = "context"
	contextFlagShorthand   = "c"
	contextFlagDescription = "number of lines of code to show around the error line"

	locationNotFoundMessage = "Could not find a valid file path and line number in the log file."
	pastingLogMessage       = "Pasting the full log for context:\n"
	sourceNotFoundFormat    = "Code file not found: %s. Tried resolving against the working directory and the log file location."
	errorContextReady       = "Above context is ready to be copied to an AI assistant."
)

// createErrorCommand returns the error subcommand.
func createErrorCommand(deps *dependencies) *cobra.Command {
	var contextLines int
	var copyToClipboard bool

	errorCommand := &cobra.Command{
		Use:     errorUse,
		Short:   errorShortDescription,
		Example: errorUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			logPath := resolveAgainst(workingDirectory, arguments[0])
			logContent, err := readExistingFile(logPath)
			if err != nil {
				return err
			}

			report, err := errorctx.Analyze(logPath, workingDirectory, contextLines)
			switch {
			case errors.Is(err, errorctx.ErrLocationNotFound):
				deps.printer.Failure(locationNotFoundMessage)
				deps.printer.Warning(pastingLogMessage)
				deps.printer.Plain("%s", logContent)
				return nil
			case errors.Is(err, errorctx.ErrSourceNotFound):
				deps.printer.Failure(sourceNotFoundFormat, report.Location.File)
				return nil
			case err != nil:
				return err
			}

			deps.printer.Plain("%s", report.Text)
			if copyToClipboard {
				deps.copyToClipboard(report.Text)
			}
			deps.printer.Notice(errorContextReady)
			return nil
		},
	}
	errorCommand.Flags().IntVarP(&contextLines, contextFlagName, contextFlagShorthand, errorctx.DefaultContextLines, contextFlagDescription)
	errorCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return errorCommand
}
