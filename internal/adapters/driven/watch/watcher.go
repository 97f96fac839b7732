// Package watch reports changes that other processes make to the note database.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/inscript/internal/core/ports/driven"
	"github.com/custodia-labs/inscript/internal/logger"
)

// DefaultDebounce coalesces the burst of writes a single SQLite commit produces.
const DefaultDebounce = 100 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// ErrAlreadyWatching is returned when Watch is called twice.
var ErrAlreadyWatching = errors.New("watcher already started")

// Watcher watches a directory with fsnotify and emits one signal per burst
// of changes to the files it cares about.
type Watcher struct {
	dir      string
	names    map[string]bool
	debounce time.Duration

	mu  sync.Mutex
	fsw *fsnotify.Watcher
}

// New creates a watcher for dir. When names are given, only events for
// those base names count; otherwise every file in dir does.
func New(dir string, debounce time.Duration, names ...string) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &Watcher{
		dir:      dir,
		names:    set,
		debounce: debounce,
	}
}

// Watch starts watching. The returned channel receives a value after each
// debounced burst of changes and is closed when ctx ends or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return nil, ErrAlreadyWatching
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.fsw = fsw

	out := make(chan struct{}, 1)
	go w.run(ctx, fsw, out)

	logger.Debug("Watching %s for external changes", w.dir)
	return out, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	w.fsw = nil
	return err
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			// Coalesce with a signal the consumer has not picked up yet.
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("fsnotify error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.names) == 0 {
		return true
	}
	return w.names[filepath.Base(event.Name)]
}
