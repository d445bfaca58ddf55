// Package watch reports when a displayed image file changes on disk.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Event says the watched file was rewritten or removed.
type Event struct {
	Path    string
	Removed bool
}

// Watcher watches a single file. It watches the parent directory so editors
// that replace files by renaming are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
	logger  *slog.Logger
}

func New(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		events:  make(chan Event, 1),
		done:    make(chan struct{}),
		logger:  logger.With("watch", abs),
	}
	go w.loop()
	return w, nil
}

// Events delivers at most one pending event; older undelivered events are
// superseded by newer ones.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Poll returns a pending event without blocking.
func (w *Watcher) Poll() (Event, bool) {
	select {
	case ev := <-w.events:
		return ev, true
	default:
		return Event{}, false
	}
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = true
			debounce.Reset(debounceDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			ev := Event{Path: w.path}
			if _, err := os.Stat(w.path); os.IsNotExist(err) {
				ev.Removed = true
			}
			w.logger.Debug("file changed", "removed", ev.Removed)
			w.publish(ev)
		}
	}
}

func (w *Watcher) publish(ev Event) {
	for {
		select {
		case w.events <- ev:
			return
		default:
		}
		// Drop the stale event and retry.
		select {
		case <-w.events:
		default:
		}
	}
}
