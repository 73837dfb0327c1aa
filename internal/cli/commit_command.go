package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/gitctx"
)

const (
	commitUse              = "commit"
	commitShortDescription = "Generate a context bundle of staged git changes for an AI to write a commit message"
	commitUsageExample     = `  # Prompt from the staged diff
  devassist commit

  # Include full before/after contents and copy the prompt
  devassist commit --full --copy`

	fullFlagName        = "full"
	fullFlagDescription = "include full file content for more context, not just the diff"

	noStagedChangesMessage = "No staged changes found. Please stage your changes with `git add` first."
	commitContextReady     = "Above context is ready to be copied to an AI assistant to generate a commit message."
)

// createCommitCommand returns the commit subcommand.
func createCommitCommand(deps *dependencies) *cobra.Command {
	var full bool
	var copyToClipboard bool

	commitCommand := &cobra.Command{
		Use:     commitUse,
		Short:   commitShortDescription,
		Example: commitUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			client := gitctx.NewClient(deps.gitRunner, workingDirectory)
			commitContext, err := client.BuildCommitContext(command.Context(), full)
			if err != nil {
				return err
			}
			if len(commitContext.Files) == 0 {
				deps.printer.Warning(noStagedChangesMessage)
				return nil
			}
			deps.printer.Plain("%s", commitContext.Text)
			if copyToClipboard {
				deps.copyToClipboard(commitContext.Text)
			}
			deps.printer.Notice(commitContextReady)
			return nil
		},
	}
	commitCommand.Flags().BoolVar(&full, fullFlagName, false, fullFlagDescription)
	commitCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return commitCommand
}
