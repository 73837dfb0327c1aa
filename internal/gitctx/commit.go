package gitctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	commitContextHeader     = "# CONTEXT: Generate a conventional commit message for the following changes.\n\n"
	commitContextFooter     = "\n# COMMIT MESSAGE (provide only the commit message):\n"
	fullContentsTitle       = "## Full File Contents (Before and After)\n\n"
	newFileTitleFormat      = "### %s (New File)\n\n"
	modifiedFileTitleFormat = "### %s (Modified)\n\n"
	deletedFileTitleFormat  = "### %s (Deleted)\n\n"
	newFileBefore           = "#### BEFORE:\n```\n(This is a new file)\n```\n"
	beforeSectionFormat     = "#### BEFORE:\n```\n%s\n```\n"
	afterSectionFormat      = "#### AFTER:\n```\n%s\n```\n---\n"
	deletedFileAfter        = "#### AFTER:\n```\n(This file was deleted)\n```\n---\n"
	diffSectionFormat       = "## Git Diff\n```diff\n%s\n```\n"
	headRevision            = "HEAD"
	readStagedFileFormat    = "read staged file %s: %w"
)

// CommitContext is the prompt describing the staged changes.
type CommitContext struct {
	Files []string
	Text  string
}

// BuildCommitContext renders the staged changes as a commit-message prompt.
// With full set, each staged file contributes its HEAD and working-tree
// contents; otherwise the staged diff is embedded. An empty Files slice means
// nothing is staged and Text is empty.
func (client *Client) BuildCommitContext(ctx context.Context, full bool) (CommitContext, error) {
	stagedFiles, listError := client.StagedFiles(ctx)
	if listError != nil {
		return CommitContext{}, listError
	}
	if len(stagedFiles) == 0 {
		return CommitContext{}, nil
	}

	var builder strings.Builder
	builder.WriteString(commitContextHeader)
	if full {
		builder.WriteString(fullContentsTitle)
		for _, stagedFile := range stagedFiles {
			if sectionError := client.writeFullSection(ctx, &builder, stagedFile); sectionError != nil {
				return CommitContext{}, sectionError
			}
		}
	} else {
		stagedDiff, diffError := client.StagedDiff(ctx)
		if diffError != nil {
			return CommitContext{}, diffError
		}
		builder.WriteString(fmt.Sprintf(diffSectionFormat, stagedDiff))
	}
	builder.WriteString(commitContextFooter)
	return CommitContext{Files: stagedFiles, Text: builder.String()}, nil
}

func (client *Client) writeFullSection(ctx context.Context, builder *strings.Builder, stagedFile string) error {
	// #nosec G304
	currentContent, readError := os.ReadFile(filepath.Join(client.directory, filepath.FromSlash(stagedFile)))
	deleted := errors.Is(readError, os.ErrNotExist)
	if readError != nil && !deleted {
		return fmt.Errorf(readStagedFileFormat, stagedFile, readError)
	}

	previousContent, showError := client.ShowFile(ctx, headRevision, stagedFile)
	if showError != nil && errors.Is(showError, ErrGitUnavailable) {
		return showError
	}
	switch {
	case showError != nil:
		builder.WriteString(fmt.Sprintf(newFileTitleFormat, stagedFile))
		builder.WriteString(newFileBefore)
	case deleted:
		builder.WriteString(fmt.Sprintf(deletedFileTitleFormat, stagedFile))
		builder.WriteString(fmt.Sprintf(beforeSectionFormat, previousContent))
		builder.WriteString(deletedFileAfter)
		return nil
	default:
		builder.WriteString(fmt.Sprintf(modifiedFileTitleFormat, stagedFile))
		builder.WriteString(fmt.Sprintf(beforeSectionFormat, previousContent))
	}
	builder.WriteString(fmt.Sprintf(afterSectionFormat, string(currentContent)))
	return nil
}
