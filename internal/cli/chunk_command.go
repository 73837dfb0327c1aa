package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/chunk"
	"github.com/temirov/devassist/internal/utils"
)

const (
	chunkUse              = "chunk <file>"
	chunkShortDescription = "Split a large file into smaller, AI-friendly chunks"
	chunkUsageExample     = `  # Print 100-line chunks of a file
  devassist chunk -l 100 src/server.js

  # Save the chunks to a file
  devassist chunk big.py -o big.chunks.md`

	maxLinesFlagName         = "max-lines"
	maxLinesFlagShorthand    = "l"
	maxLinesFlagDescription  = "maximum number of lines per chunk"
	chunkOutputFlagUsage     = "save the chunks to this file instead of printing them"
	chunkingMessageFormat    = "Chunking file %s into %d parts..."
	chunksSavedFormat        = "Chunks saved to %s"
	fileNotFoundFormat       = "file not found at %s"
	readFileErrorFormat      = "read %s: %w"
	writeFileErrorFormat     = "write %s: %w"
	generatedFilePermissions = 0o644
)

// createChunkCommand returns the chunk subcommand.
func createChunkCommand(deps *dependencies) *cobra.Command {
	var maxLines int
	var outputPath string
	var copyToClipboard bool

	chunkCommand := &cobra.Command{
		Use:     chunkUse,
		Short:   chunkShortDescription,
		Example: chunkUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			content, err := readExistingFile(resolveAgainst(workingDirectory, arguments[0]))
			if err != nil {
				return err
			}
			chunks, err := chunk.Split(string(content), maxLines)
			if err != nil {
				return err
			}
			deps.printer.Notice(chunkingMessageFormat, arguments[0], len(chunks))
			document := chunk.Render(arguments[0], chunks)

			if outputPath != utils.EmptyString {
				destination := resolveAgainst(workingDirectory, outputPath)
				if err := os.WriteFile(destination, []byte(document), generatedFilePermissions); err != nil {
					return fmt.Errorf(writeFileErrorFormat, destination, err)
				}
				deps.printer.Success(chunksSavedFormat, destination)
			} else {
				deps.printer.Plain("%s", document)
			}
			if copyToClipboard {
				deps.copyToClipboard(document)
			}
			return nil
		},
	}
	chunkCommand.Flags().IntVarP(&maxLines, maxLinesFlagName, maxLinesFlagShorthand, chunk.DefaultMaxLines, maxLinesFlagDescription)
	chunkCommand.Flags().StringVarP(&outputPath, outputFlagName, outputFlagShorthand, utils.EmptyString, chunkOutputFlagUsage)
	chunkCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return chunkCommand
}

func resolveAgainst(workingDirectory string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workingDirectory, path)
}

// readExistingFile reads path, reporting a missing file in user terms.
func readExistingFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf(fileNotFoundFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf(readFileErrorFormat, path, err)
	}
	return content, nil
}
