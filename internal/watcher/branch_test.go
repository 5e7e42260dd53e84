package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for BranchWatcher:
// - parseBranch reads symbolic refs and reports detached heads
// - NewBranchWatcher fails without .git/HEAD and reads the initial branch
// - A checkout of another branch is reported with old and new names
// - Rewriting HEAD with the same branch is not reported
// - Stop without Start does not block

func TestParseBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"symbolic ref", "ref: refs/heads/main\n", "main"},
		{"nested branch", "ref: refs/heads/feature/docs\n", "feature/docs"},
		{"sha1 detached", strings.Repeat("a1", 20) + "\n", DetachedHead},
		{"sha256 detached", strings.Repeat("0f", 32), DetachedHead},
		{"other", "ref: refs/remotes/origin/main", "ref: refs/remotes/origin/main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseBranch(tt.content))
		})
	}
}

func newGitDir(t *testing.T, branch string) string {
	t.Helper()
	gitDir := filepath.Join(t.TempDir(), ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0755))
	writeHead(t, gitDir, branch)
	return gitDir
}

func writeHead(t *testing.T, gitDir, branch string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/"+branch+"\n"), 0644))
}

func TestNewBranchWatcher(t *testing.T) {
	t.Parallel()

	_, err := NewBranchWatcher(t.TempDir(), nil)
	assert.Error(t, err)

	bw, err := NewBranchWatcher(newGitDir(t, "main"), nil)
	require.NoError(t, err)
	defer bw.Stop()
	assert.Equal(t, "main", bw.Branch())
}

func TestBranchWatcher_ReportsSwitch(t *testing.T) {
	t.Parallel()

	gitDir := newGitDir(t, "main")
	bw, err := NewBranchWatcher(gitDir, nil)
	require.NoError(t, err)

	type switchEvent struct{ from, to string }
	events := make(chan switchEvent, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, bw.Start(ctx, func(_ context.Context, oldBranch, newBranch string) {
		events <- switchEvent{oldBranch, newBranch}
	}))
	defer bw.Stop()

	writeHead(t, gitDir, "main")
	writeHead(t, gitDir, "feature")

	select {
	case ev := <-events:
		assert.Equal(t, switchEvent{"main", "feature"}, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("branch switch not reported")
	}
	assert.Equal(t, "feature", bw.Branch())

	select {
	case ev := <-events:
		t.Fatalf("unexpected switch %v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBranchWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()

	bw, err := NewBranchWatcher(newGitDir(t, "main"), nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, bw.Stop())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked")
	}
}
