package watcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mvp-joe/autodoc/internal/logging"
	"go.uber.org/zap"
)

// Coordinator runs a file source alongside a branch source. A branch switch
// pauses file delivery while onSwitch runs; changes seen meanwhile are
// delivered after it returns.
type Coordinator struct {
	files    FileSource
	branches BranchSource
	onSwitch BranchHandler
	logger   *zap.SugaredLogger
}

// NewCoordinator pairs files with branches. onSwitch typically does a full
// regeneration.
func NewCoordinator(files FileSource, branches BranchSource, onSwitch BranchHandler, logger *zap.SugaredLogger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{
		files:    files,
		branches: branches,
		onSwitch: onSwitch,
		logger:   logger,
	}
}

// Start starts both sources. If the branch source fails to start the file
// source is stopped again.
func (c *Coordinator) Start(ctx context.Context) error {
	c.files.Start(ctx)
	if err := c.branches.Start(ctx, c.handleBranchSwitch); err != nil {
		c.files.Stop()
		return err
	}
	return nil
}

// Stop stops both sources.
func (c *Coordinator) Stop() {
	if err := c.branches.Stop(); err != nil {
		c.logger.Warnw("branch watcher stop failed", "error", err)
	}
	c.files.Stop()
}

func (c *Coordinator) handleBranchSwitch(ctx context.Context, oldBranch, newBranch string) {
	c.files.Pause()
	defer c.files.Resume()

	c.onSwitch(ctx, oldBranch, newBranch)
}

// FindGitDir returns rootDir's .git directory, or "" when rootDir is not
// the top of a git work tree. Worktrees, where .git is a file, are not
// followed.
func FindGitDir(rootDir string) string {
	gitDir := filepath.Join(rootDir, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		return gitDir
	}
	return ""
}
