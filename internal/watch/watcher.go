// Package watch reports edits to day logs made outside focuslog, such as
// the user changing a file in their editor.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/focuslog/internal/logging"
)

// Watcher emits the path of a changed markdown file, at most once per
// throttle interval. A change inside the interval is sent when it ends.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan string
	done     chan struct{}
	throttle time.Duration
	log      *logrus.Entry

	mu       sync.Mutex
	lastSent time.Time
	pending  string
	trailing *time.Timer
	closed   bool
}

// New watches dir. fsnotify is not recursive, so callers pass the folder
// holding the logs they display.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
		throttle: time.Second,
		log:      logging.NewLogger("watch").WithField("dir", dir),
	}
	go w.run()
	return w, nil
}

// Changes delivers changed file paths. It is closed when the watcher stops.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Switch moves the watch to another folder.
func (w *Watcher) Switch(dir string) error {
	for _, old := range w.watcher.WatchList() {
		if old == dir {
			return nil
		}
		_ = w.watcher.Remove(old)
	}
	return w.watcher.Add(dir)
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.trailing != nil {
		w.trailing.Stop()
		w.trailing = nil
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.emit(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// relevant keeps writes and creates of markdown files. Atomic saves show up
// as a create of the final name.
func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) emit(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if wait := w.throttle - time.Since(w.lastSent); wait > 0 {
		w.pending = path
		if w.trailing == nil {
			w.trailing = time.AfterFunc(wait, w.flush)
		}
		return
	}
	w.send(path)
}

// flush sends the change held back by the throttle.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.trailing = nil
	if w.closed || w.pending == "" {
		return
	}
	w.send(w.pending)
}

// send requires w.mu to be held.
func (w *Watcher) send(path string) {
	w.lastSent = time.Now()
	w.pending = ""

	// Drop the change if one is already pending.
	select {
	case w.changes <- path:
	default:
	}
}
