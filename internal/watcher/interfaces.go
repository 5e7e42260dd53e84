package watcher

import "context"

// FileSource delivers debounced source changes and can hold them back while
// a larger operation runs. *Watcher implements it.
type FileSource interface {
	Start(ctx context.Context)
	Stop()
	Pause()
	Resume()
}

// BranchSource reports checkouts of a different branch. *BranchWatcher
// implements it.
type BranchSource interface {
	Start(ctx context.Context, onSwitch BranchHandler) error
	Stop() error
}

// BranchHandler receives the branch names on either side of a checkout.
type BranchHandler func(ctx context.Context, oldBranch, newBranch string)

var (
	_ FileSource   = (*Watcher)(nil)
	_ BranchSource = (*BranchWatcher)(nil)
)
