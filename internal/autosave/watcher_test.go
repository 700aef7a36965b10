package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 4)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(path); err != nil {
		t.Fatalf("watch: %v", err)
	}
	w.Start()

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case ev := <-events:
		if filepath.Clean(ev.Path) != filepath.Clean(path) {
			t.Fatalf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a write event")
	}
}

func TestWatcherStopsAfterUnwatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	os.WriteFile(path, []byte("v1"), 0o644)

	w, err := New()
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 4)
	w.OnChange(func(ev Event) { events <- ev })
	w.Watch(path)
	w.Start()

	w.Unwatch(path)
	os.WriteFile(path, []byte("v2"), 0o644)

	select {
	case ev := <-events:
		t.Fatalf("expected no event after Unwatch, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}
