package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/diffview"
	"github.com/temirov/devassist/internal/gitctx"
)

const (
	diffUse              = "diff <file> [commit]"
	diffShortDescription = "Show a git-style diff of a file against a specific commit (default: HEAD)"
	diffUsageExample     = `  # Compare a file with HEAD
  devassist diff src/app.js

  # Compare with an older commit
  devassist diff src/app.js HEAD~3`

	defaultDiffCommit     = "HEAD"
	diffHeaderFormat      = "Diff for %s between %s and current working copy:\n"
	fileNotInRevisionHint = "Is the file committed? Is the commit hash correct?"
)

// createDiffCommand returns the diff subcommand.
func createDiffCommand(deps *dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     diffUse,
		Short:   diffShortDescription,
		Example: diffUsageExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			filePath := arguments[0]
			commit := defaultDiffCommit
			if len(arguments) > 1 {
				commit = arguments[1]
			}
			newContent, err := readExistingFile(resolveAgainst(workingDirectory, filePath))
			if err != nil {
				return err
			}
			client := gitctx.NewClient(deps.gitRunner, workingDirectory)
			oldContent, err := client.ShowFile(command.Context(), commit, filepath.ToSlash(filePath))
			if err != nil {
				if errors.Is(err, gitctx.ErrFileNotInRevision) {
					deps.printer.Warning(fileNotInRevisionHint)
				}
				return err
			}

			deps.printer.Heading(diffHeaderFormat, filePath, commit)
			return diffview.Render(deps.printer.Writer(), diffview.Compute(oldContent, string(newContent)))
		},
	}
}
