package driven

import "context"

// ChangeWatcher reports that the underlying storage was modified by
// something other than this process.
type ChangeWatcher interface {
	// Watch starts watching and returns a channel that receives a value each
	// time an external change is detected. The channel is closed when ctx is
	// cancelled or the watcher is closed.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases watcher resources.
	Close() error
}
