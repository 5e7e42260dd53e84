package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mvp-joe/autodoc/internal/logging"
	"go.uber.org/zap"
)

// DetachedHead is reported as the branch name when HEAD is not a symbolic
// ref.
const DetachedHead = "detached"

// BranchWatcher watches .git/HEAD and reports branch switches.
type BranchWatcher struct {
	gitDir     string
	headPath   string
	logger     *zap.SugaredLogger
	watcher    *fsnotify.Watcher
	stopCh     chan struct{}
	doneCh     chan struct{}
	stopOnce   sync.Once
	startOnce  sync.Once
	mu         sync.RWMutex
	lastBranch string
}

// NewBranchWatcher creates a watcher for the repository at gitDir (the
// .git directory). It fails when gitDir has no HEAD file.
func NewBranchWatcher(gitDir string, logger *zap.SugaredLogger) (*BranchWatcher, error) {
	headPath := filepath.Join(gitDir, "HEAD")
	if _, err := os.Stat(headPath); err != nil {
		return nil, fmt.Errorf("cannot access .git/HEAD: %w", err)
	}

	branch, err := readBranch(headPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read initial branch: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if logger == nil {
		logger = logging.Nop()
	}
	return &BranchWatcher{
		gitDir:     gitDir,
		headPath:   headPath,
		logger:     logger,
		watcher:    fsw,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		lastBranch: branch,
	}, nil
}

// Branch returns the last branch seen.
func (bw *BranchWatcher) Branch() string {
	bw.mu.RLock()
	defer bw.mu.RUnlock()
	return bw.lastBranch
}

// Start watches for checkouts until ctx is done or Stop is called.
func (bw *BranchWatcher) Start(ctx context.Context, onSwitch BranchHandler) error {
	// HEAD is replaced rather than rewritten, so watch its directory.
	if err := bw.watcher.Add(bw.gitDir); err != nil {
		return fmt.Errorf("failed to watch .git directory: %w", err)
	}
	bw.startOnce.Do(func() {
		go bw.watch(ctx, onSwitch)
	})
	return nil
}

// Stop stops the watcher and waits for its loop to exit.
func (bw *BranchWatcher) Stop() error {
	var err error
	bw.stopOnce.Do(func() {
		close(bw.stopCh)
		bw.startOnce.Do(func() { close(bw.doneCh) })
		<-bw.doneCh
		err = bw.watcher.Close()
	})
	return err
}

func (bw *BranchWatcher) watch(ctx context.Context, onSwitch BranchHandler) {
	defer close(bw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return

		case <-bw.stopCh:
			return

		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != bw.headPath || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			newBranch, err := readBranch(bw.headPath)
			if err != nil {
				bw.logger.Warnw("failed to read .git/HEAD", "error", err)
				continue
			}

			bw.mu.Lock()
			oldBranch := bw.lastBranch
			bw.lastBranch = newBranch
			bw.mu.Unlock()

			if newBranch != oldBranch {
				bw.logger.Infow("branch switch detected", "from", oldBranch, "to", newBranch)
				onSwitch(ctx, oldBranch, newBranch)
			}

		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			bw.logger.Warnw("branch watcher error", "error", err)
		}
	}
}

func readBranch(headPath string) (string, error) {
	content, err := os.ReadFile(headPath)
	if err != nil {
		return "", err
	}
	return parseBranch(string(content)), nil
}

// parseBranch reads the branch name from HEAD contents. A bare commit hash
// is reported as DetachedHead.
func parseBranch(content string) string {
	line := strings.TrimSpace(content)
	if branch, ok := strings.CutPrefix(line, "ref: refs/heads/"); ok {
		return strings.TrimSpace(branch)
	}
	if (len(line) == 40 || len(line) == 64) && isHex(line) {
		return DetachedHead
	}
	return line
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
