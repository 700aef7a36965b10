// Package autosave watches a document's backing file and its `#basename#`
// shadow for out-of-band changes (spec §4.1 "File-change detection"),
// surfacing them as doc:status-changed rather than relying on a caller to
// poll stat on a timer. The document core itself stays single-threaded
// (spec §5); this watcher runs its own goroutine and an external wiring
// layer forwards its events into Document.Revisit.
package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that path changed on disk.
type Event struct {
	Path string
	Time time.Time
}

// Handler is called, from the watcher's own goroutine, once per write,
// rename or remove event; events are not coalesced.
type Handler func(Event)

// Watcher monitors a document's backing file and autosave shadow.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	handler Handler
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher with no paths registered yet.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("autosave: %w", err)
	}
	return &Watcher{fsw: fsw, done: make(chan struct{})}, nil
}

// OnChange registers the handler invoked for every write/rename/remove
// event on a watched path.
func (w *Watcher) OnChange(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = h
}

// Watch starts tracking path. For a path that doesn't exist yet (an
// autosave shadow before the first write) it returns the watch error and
// the watcher keeps running; call Watch again once the file is created.
func (w *Watcher) Watch(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("autosave: watch %s: %w", path, err)
	}
	return nil
}

// Unwatch stops tracking path.
func (w *Watcher) Unwatch(path string) {
	_ = w.fsw.Remove(path)
}

// Start launches the event loop.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Close stops the event loop and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.mu.Lock()
			h := w.handler
			w.mu.Unlock()
			if h != nil {
				h(Event{Path: ev.Name, Time: time.Now()})
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
