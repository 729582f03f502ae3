// Package watcher triggers regeneration when watched files change.
package watcher

import (
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last change
// before firing. Editors commonly emit several events per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a fixed set of files and invokes a callback once per
// debounced burst of changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func(paths []string)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	done chan struct{}
}

// New creates a watcher over the given paths. The callback receives the
// distinct paths that changed within one debounce window, sorted.
func New(paths []string, debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}
	for _, p := range paths {
		if err := fs.Add(p); err != nil {
			fs.Close()
			return nil, errors.Wrapf(err, "watching %q", p)
		}
	}

	return &Watcher{
		fs:       fs,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]bool),
		done:     make(chan struct{}),
	}, nil
}

// Start begins the event loop in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Atomic saves replace the inode, which drops the watch.
				// Re-add so the next save is still seen.
				if err := w.fs.Add(ev.Name); err != nil {
					zap.S().Debugw("re-watch failed", "file", ev.Name, "error", err)
				}
			}
			zap.S().Debugw("file changed", "file", ev.Name, "op", ev.Op.String())
			w.schedule(ev.Name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			zap.S().Warnw("watch error", "error", err)
		}
	}
}

// schedule records a changed path and re-arms the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire drains the pending set and invokes the callback.
func (w *Watcher) fire() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.onChange(paths)
}

// Stop closes the underlying watcher and waits for the event loop to
// exit. Changes seen but not yet fired are dropped.
func (w *Watcher) Stop() error {
	err := w.fs.Close()
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
