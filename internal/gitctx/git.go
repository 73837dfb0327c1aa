// Package gitctx reads repository state through the git command line.
package gitctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/temirov/devassist/internal/utils"
)

const (
	gitExecutableName       = "git"
	revisionPathFormat      = "%s:%s"
	runGitErrorFormat       = "git %s: %w"
	runGitOutputErrorFormat = "git %s: %w: %s"
	showFileErrorFormat     = "%w: %s at %s"
)

var (
	// ErrGitUnavailable is returned when the git executable cannot be found.
	ErrGitUnavailable = errors.New("git is not installed or not in PATH")
	// ErrFileNotInRevision is returned when a file does not exist at the requested commit.
	ErrFileNotInRevision = errors.New("file not found in revision")
)

// Runner executes git with arguments inside a directory and returns stdout.
type Runner interface {
	Run(ctx context.Context, directory string, arguments ...string) (string, error)
}

// ExecRunner runs the git executable found in PATH.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, directory string, arguments ...string) (string, error) {
	executablePath, lookupError := exec.LookPath(gitExecutableName)
	if lookupError != nil {
		return utils.EmptyString, ErrGitUnavailable
	}
	// #nosec G204
	command := exec.CommandContext(ctx, executablePath, arguments...)
	command.Dir = directory
	var standardOutput, standardError bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardError
	if runError := command.Run(); runError != nil {
		subcommand := strings.Join(arguments, " ")
		if message := strings.TrimSpace(standardError.String()); message != utils.EmptyString {
			return utils.EmptyString, fmt.Errorf(runGitOutputErrorFormat, subcommand, runError, message)
		}
		return utils.EmptyString, fmt.Errorf(runGitErrorFormat, subcommand, runError)
	}
	return standardOutput.String(), nil
}

// Client issues the git queries devassist needs.
type Client struct {
	runner    Runner
	directory string
}

// NewClient constructs a Client rooted at directory. A nil runner uses ExecRunner.
func NewClient(runner Runner, directory string) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{runner: runner, directory: directory}
}

// ShowFile returns the content of relativePath at commit.
func (client *Client) ShowFile(ctx context.Context, commit string, relativePath string) (string, error) {
	revisionPath := fmt.Sprintf(revisionPathFormat, commit, utils.ToPosixPath(relativePath))
	content, runError := client.runner.Run(ctx, client.directory, "show", revisionPath)
	if runError != nil {
		if errors.Is(runError, ErrGitUnavailable) {
			return utils.EmptyString, runError
		}
		return utils.EmptyString, fmt.Errorf(showFileErrorFormat, ErrFileNotInRevision, relativePath, commit)
	}
	return content, nil
}

// StagedFiles lists the paths staged for the next commit.
func (client *Client) StagedFiles(ctx context.Context) ([]string, error) {
	output, runError := client.runner.Run(ctx, client.directory, "diff", "--staged", "--name-only")
	if runError != nil {
		return nil, runError
	}
	var files []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != utils.EmptyString {
			files = append(files, trimmed)
		}
	}
	return files, nil
}

// StagedDiff returns the unified diff of the staged changes.
func (client *Client) StagedDiff(ctx context.Context) (string, error) {
	return client.runner.Run(ctx, client.directory, "diff", "--staged")
}
