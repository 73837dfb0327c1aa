package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/devassist/internal/config"
	"github.com/temirov/devassist/internal/ignore"
	"github.com/temirov/devassist/internal/utils"
)

const (
	createWatcherErrorFormat  = "watch: create watcher: %w"
	watchDirectoryErrorFormat = "watch: watch directory %s: %w"
	hiddenEntryPrefix         = "."

	watchingDirectoryMessage = "watching directory"
	watchNewDirectoryFailed  = "failed to watch new directory"
	watcherErrorMessage      = "watcher error"
	changeDetectedMessage    = "change detected"
	pathLogKey               = "path"
	operationLogKey          = "op"
)

// Filter decides which filesystem paths can affect an export.
type Filter struct {
	rootDirectory string
	outputPath    string
	configuration config.Config
	matcher       *ignore.Matcher
}

// NewFilter constructs a Filter. Paths are judged relative to rootDirectory;
// outputPath is never relevant.
func NewFilter(rootDirectory string, outputPath string, configuration config.Config, matcher *ignore.Matcher) Filter {
	return Filter{
		rootDirectory: filepath.Clean(rootDirectory),
		outputPath:    filepath.Clean(outputPath),
		configuration: configuration,
		matcher:       matcher,
	}
}

// Relevant reports whether a change at absolutePath should trigger a run.
// The output file, hidden entries and ignored paths are irrelevant, as are
// files outside the extension allow-list.
func (filter Filter) Relevant(absolutePath string, isDirectory bool) bool {
	cleanPath := filepath.Clean(absolutePath)
	if cleanPath == filter.outputPath {
		return false
	}
	relativePath, relativeError := utils.ToPosixRelative(filter.rootDirectory, cleanPath)
	if relativeError != nil || strings.HasPrefix(relativePath, "..") {
		return false
	}
	if relativePath == utils.EmptyString {
		return true
	}
	segments := strings.Split(relativePath, utils.PathSeparator)
	for index, segment := range segments {
		if strings.HasPrefix(segment, hiddenEntryPrefix) {
			return false
		}
		ancestorIsDirectory := isDirectory || index < len(segments)-1
		if filter.matcher.Ignores(strings.Join(segments[:index+1], utils.PathSeparator), ancestorIsDirectory) {
			return false
		}
	}
	if isDirectory {
		return true
	}
	baseName := filepath.Base(cleanPath)
	return filter.configuration.AllowsFile(baseName, filepath.Ext(baseName))
}

// Watcher feeds relevant filesystem events under a root directory into a Scheduler.
type Watcher struct {
	rootDirectory string
	filter        Filter
	scheduler     *Scheduler
	logger        *zap.Logger
	watched       map[string]struct{}
}

// NewWatcher constructs a Watcher.
func NewWatcher(rootDirectory string, filter Filter, scheduler *Scheduler, logger *zap.Logger) *Watcher {
	return &Watcher{
		rootDirectory: filepath.Clean(rootDirectory),
		filter:        filter,
		scheduler:     scheduler,
		logger:        utils.LoggerOrNop(logger),
		watched:       make(map[string]struct{}),
	}
}

// Run watches until ctx is cancelled. The scheduler loop and the event pump
// run in one errgroup; the first failure cancels both.
func (watcher *Watcher) Run(ctx context.Context) error {
	notifier, createError := fsnotify.NewWatcher()
	if createError != nil {
		return fmt.Errorf(createWatcherErrorFormat, createError)
	}
	defer notifier.Close()

	if addError := watcher.addRecursive(notifier, watcher.rootDirectory); addError != nil {
		return addError
	}

	group, groupContext := errgroup.WithContext(ctx)
	group.Go(func() error {
		return watcher.scheduler.Run(groupContext)
	})
	group.Go(func() error {
		return watcher.pump(groupContext, notifier)
	})
	return group.Wait()
}

func (watcher *Watcher) pump(ctx context.Context, notifier *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			watcher.handleEvent(notifier, event)
		case watchError, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			if watchError != nil {
				watcher.logger.Warn(watcherErrorMessage, zap.Error(watchError))
			}
		}
	}
}

func (watcher *Watcher) handleEvent(notifier *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	eventPath := filepath.Clean(event.Name)
	_, wasDirectory := watcher.watched[eventPath]
	isDirectory := wasDirectory

	if event.Op&fsnotify.Create != 0 {
		if info, statError := os.Stat(eventPath); statError == nil && info.IsDir() {
			isDirectory = true
			if watcher.filter.Relevant(eventPath, true) {
				if addError := watcher.addRecursive(notifier, eventPath); addError != nil {
					watcher.logger.Warn(watchNewDirectoryFailed, zap.String(pathLogKey, eventPath), zap.Error(addError))
				}
			}
		}
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && wasDirectory {
		_ = notifier.Remove(eventPath)
		delete(watcher.watched, eventPath)
	}

	if !watcher.filter.Relevant(eventPath, isDirectory) {
		return
	}
	watcher.logger.Debug(changeDetectedMessage, zap.String(pathLogKey, eventPath), zap.String(operationLogKey, event.Op.String()))
	watcher.scheduler.Trigger()
}

func (watcher *Watcher) addRecursive(notifier *fsnotify.Watcher, startDirectory string) error {
	return filepath.WalkDir(startDirectory, func(path string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !entry.IsDir() {
			return nil
		}
		cleanPath := filepath.Clean(path)
		if !watcher.filter.Relevant(cleanPath, true) {
			return fs.SkipDir
		}
		if _, alreadyWatched := watcher.watched[cleanPath]; alreadyWatched {
			return nil
		}
		if addError := notifier.Add(cleanPath); addError != nil {
			return fmt.Errorf(watchDirectoryErrorFormat, cleanPath, addError)
		}
		watcher.watched[cleanPath] = struct{}{}
		watcher.logger.Debug(watchingDirectoryMessage, zap.String(pathLogKey, cleanPath))
		return nil
	})
}
