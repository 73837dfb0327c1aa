// Package cleanup removes comments from project source files in place.
package cleanup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/comments"
	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/overlay"
	"github.com/temirov/devassist/internal/traversal"
	"github.com/temirov/devassist/internal/utils"
)

const (
	resolveDirectoryErrorFormat = "cleanup: resolve working directory %s: %w"
	walkErrorFormat             = "cleanup: walk project: %w"
	readErrorFormat             = "read: %w"
	statErrorFormat             = "stat: %w"
	writeErrorFormat            = "write: %w"

	skippedGrammarMessage = "skipping file without comment grammar"
	pathLogKey            = "path"
)

// Options selects the files a cleanup touches.
type Options struct {
	WorkingDirectory string
	ConfigPath       string
	// Target restricts the run to one path or glob relative to WorkingDirectory.
	Target            string
	Include           []string
	Exclude           []string
	UseGitIgnore      bool
	DryRun            bool
	PreserveProtected bool
}

// Outcome is the result for one scanned file.
type Outcome struct {
	RelativePath string
	Modified     bool
	Err          error
}

// Stats totals a cleanup run.
type Stats struct {
	Scanned  int
	Modified int
	Failed   int
}

// Reporter receives every outcome as soon as it is known.
type Reporter func(Outcome)

// Cleaner strips comments with a grammar-aware Stripper.
type Cleaner struct {
	stripper comments.Stripper
	logger   *zap.Logger
}

// NewCleaner constructs a Cleaner.
func NewCleaner(stripper comments.Stripper, logger *zap.Logger) *Cleaner {
	return &Cleaner{stripper: stripper, logger: utils.LoggerOrNop(logger)}
}

// Run walks the project and strips comments from every file with a known
// grammar. Data files (.json, .md, .txt, .lock) are never touched. Per-file
// failures are reported and counted; an unavailable stripper aborts the run.
func (cleaner *Cleaner) Run(ctx context.Context, options Options, report Reporter) (Stats, error) {
	workingDirectory, absoluteError := filepath.Abs(options.WorkingDirectory)
	if absoluteError != nil {
		return Stats{}, fmt.Errorf(resolveDirectoryErrorFormat, options.WorkingDirectory, absoluteError)
	}
	if report == nil {
		report = func(Outcome) {}
	}
	include := append([]string(nil), options.Include...)
	if options.Target != utils.EmptyString {
		include = append(include, options.Target)
	}
	patternSet := overlay.NewPatternSet(include, options.Exclude)
	configuration := config.Resolve(workingDirectory, options.ConfigPath, cleaner.logger)

	var stats Stats
	visit := func(absolutePath string) error {
		relativePath, relativeError := utils.ToPosixRelative(workingDirectory, absolutePath)
		if relativeError != nil {
			return relativeError
		}
		if !patternSet.Allows(relativePath) {
			return nil
		}
		grammar := comments.GrammarForPath(absolutePath)
		if grammar == comments.Unknown || comments.IsUntouched(absolutePath) {
			cleaner.logger.Debug(skippedGrammarMessage, zap.String(pathLogKey, relativePath))
			return nil
		}
		modified, cleanError := cleaner.cleanFile(ctx, absolutePath, grammar, options)
		if errors.Is(cleanError, comments.ErrStripperUnavailable) {
			return cleanError
		}
		stats.Scanned++
		outcome := Outcome{RelativePath: relativePath, Modified: modified, Err: cleanError}
		switch {
		case cleanError != nil:
			stats.Failed++
		case modified:
			stats.Modified++
		}
		report(outcome)
		return nil
	}
	walkError := traversal.Walk(workingDirectory, configuration, visit, traversal.Options{
		BaseDirectory: workingDirectory,
		UseGitIgnore:  options.UseGitIgnore,
		Logger:        cleaner.logger,
	})
	if walkError != nil {
		return stats, fmt.Errorf(walkErrorFormat, walkError)
	}
	return stats, nil
}

func (cleaner *Cleaner) cleanFile(ctx context.Context, absolutePath string, grammar comments.Grammar, options Options) (bool, error) {
	info, statError := os.Stat(absolutePath)
	if statError != nil {
		return false, fmt.Errorf(statErrorFormat, statError)
	}
	source, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return false, fmt.Errorf(readErrorFormat, readError)
	}
	stripped, stripError := cleaner.stripper.Strip(ctx, comments.Request{
		Source:            source,
		Grammar:           grammar,
		Extension:         comments.ExtensionOf(absolutePath),
		PreserveProtected: options.PreserveProtected,
	})
	if stripError != nil {
		return false, stripError
	}
	if bytes.Equal(source, stripped) {
		return false, nil
	}
	if options.DryRun {
		return true, nil
	}
	if writeError := os.WriteFile(absolutePath, stripped, info.Mode().Perm()); writeError != nil {
		return false, fmt.Errorf(writeErrorFormat, writeError)
	}
	return true, nil
}
