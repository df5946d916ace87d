// Package watch monitors a single timetable file for changes using
// fsnotify, debouncing editor write bursts into one notification.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a detected change to the watched file.
type Change struct {
	Path    string
	Removed bool
}

// Watcher monitors one file through its parent directory. Watching the
// directory instead of the file survives editors that save by writing a
// temp file and renaming it over the original.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes chan Change // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the given file.
func New(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the file's directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: editors fire several events per save.
	const debounce = 100 * time.Millisecond
	var pendingAt time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Flush a pending change on close.
				if !pendingAt.IsZero() {
					w.emitChange()
				}
				return
			}

			if !w.isTarget(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				pendingAt = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if !pendingAt.IsZero() && time.Since(pendingAt) >= debounce {
				pendingAt = time.Time{}
				w.emitChange()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) isTarget(name string) bool {
	return filepath.Base(name) == filepath.Base(w.Path)
}

func (w *Watcher) emitChange() {
	_, err := os.Stat(w.Path)
	w.changes <- Change{Path: w.Path, Removed: err != nil}
}
