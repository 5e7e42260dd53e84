// Package watcher watches a source tree and reports debounced batches of
// changed files.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mvp-joe/autodoc/internal/logging"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a batch of changes is
// delivered.
const DefaultDebounce = 300 * time.Millisecond

// Filter decides which paths are watched. Paths are relative to the root
// and slash-separated.
type Filter interface {
	Matches(relPath string) bool
	ShouldIgnore(relPath string) bool
}

// ChangeHandler receives the absolute paths changed in one debounced batch.
type ChangeHandler func(ctx context.Context, changed []string)

// Watcher watches the root directory for file changes.
type Watcher struct {
	rootDir      string
	filter       Filter
	onChange     ChangeHandler
	logger       *zap.SugaredLogger
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	flushCh      chan struct{}
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
	startOnce    sync.Once
	paused       atomic.Bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceTime = d
		}
	}
}

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New creates a watcher over every non-ignored directory under rootDir.
func New(rootDir string, filter Filter, onChange ChangeHandler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootDir:      rootDir,
		filter:       filter,
		onChange:     onChange,
		logger:       logging.Nop(),
		watcher:      fsw,
		debounceTime: DefaultDebounce,
		flushCh:      make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if _, err := os.Stat(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.watch(ctx)
	})
}

// Stop stops the watcher and waits for the event loop to exit. A watcher
// that was never started cannot be started afterwards.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.startOnce.Do(func() { close(w.doneCh) })
		<-w.doneCh
		w.watcher.Close()
	})
}

// Pause holds back delivery. Changes keep accumulating until Resume.
func (w *Watcher) Pause() {
	w.paused.Store(true)
}

// Resume restarts delivery and flushes anything accumulated while paused.
func (w *Watcher) Resume() {
	if w.paused.Swap(false) {
		w.requestFlush()
	}
}

func (w *Watcher) requestFlush() {
	select {
	case w.flushCh <- struct{}{}:
	default:
	}
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	changed := make(map[string]bool)

	stopTimer := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case <-w.stopCh:
			stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New directories are added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.shouldWatchDirectory(event.Name) {
						if err := w.addDirectoriesRecursively(event.Name); err != nil {
							w.logger.Warnw("failed to watch new directory", "dir", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}
			changed[event.Name] = true

			stopTimer()
			debounceTimer = time.AfterFunc(w.debounceTime, w.requestFlush)

		case <-w.flushCh:
			if len(changed) == 0 || w.paused.Load() {
				continue
			}
			files := make([]string, 0, len(changed))
			for file := range changed {
				files = append(files, file)
			}
			sort.Strings(files)
			changed = make(map[string]bool)

			w.logger.Debugw("source change detected", "files", len(files))
			w.onChange(ctx, files)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("file watcher error", "error", err)
		}
	}
}

// shouldProcessEvent checks if an event should trigger regeneration.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	return w.filter.Matches(filepath.ToSlash(relPath))
}

// shouldWatchDirectory checks if a directory should be watched.
func (w *Watcher) shouldWatchDirectory(path string) bool {
	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	return relPath == "." || !w.filter.ShouldIgnore(relPath)
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warnw("error accessing path", "path", path, "error", err)
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if !w.shouldWatchDirectory(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warnw("failed to watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
