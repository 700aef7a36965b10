package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/piecedoc/internal/docconfig"
)

func newConfiguredDoc(t *testing.T, dir string) *Document {
	t.Helper()
	cfg := docconfig.Default()
	cfg.AutosaveIndexDir = filepath.Join(dir, "autosave-index")
	cfg.AutosaveEditCount = 3
	cfg.AutosaveIdle = time.Hour
	return New(WithConfig(cfg))
}

// TestAutosaveLifecycle reproduces spec §8 scenario S4: enough edits trip
// the autosave edit-count threshold, writing a `#basename#` shadow and
// registering it in the index manifest; a subsequent real save clears both.
func TestAutosaveLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	os.WriteFile(path, []byte(""), 0o644)

	d := newConfiguredDoc(t, dir)
	if _, err := d.LoadFile(path, LoadFlags{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	d.Replace(d.bof(), d.bof(), "a", false)
	d.Replace(d.refAt(1), d.refAt(1), "b", false)
	if err := d.Tick(time.Now()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if d.AutosavePath() != "" {
		t.Fatal("expected no autosave before the edit-count threshold is crossed")
	}

	d.Replace(d.refAt(2), d.refAt(2), "c", false)
	if err := d.Tick(time.Now()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if d.AutosavePath() == "" {
		t.Fatal("expected an autosave shadow once the edit-count threshold is crossed")
	}

	shadow := filepath.Join(dir, "#notes.txt#")
	data, err := os.ReadFile(shadow)
	if err != nil {
		t.Fatalf("read shadow: %v", err)
	}
	if string(data) != "abc" {
		t.Fatalf("shadow content = %q", data)
	}

	indexYAML := filepath.Join(dir, "autosave-index", "index.yaml")
	if _, err := os.Stat(indexYAML); err != nil {
		t.Fatalf("expected autosave index manifest: %v", err)
	}

	if err := d.SaveFile(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if d.AutosavePath() != "" {
		t.Fatal("expected autosave path cleared after a real save")
	}
	if _, err := os.Stat(shadow); !os.IsNotExist(err) {
		t.Fatal("expected the autosave shadow file to be removed after save")
	}
}

func TestRecoverAutosave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crash.txt")
	os.WriteFile(path, []byte("saved content"), 0o644)
	os.WriteFile(filepath.Join(dir, "#crash.txt#"), []byte("unsaved content"), 0o600)

	d := newConfiguredDoc(t, dir)
	if _, err := d.RecoverAutosave(path); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if got := text(d); got != "unsaved content" {
		t.Fatalf("got %q, want the autosave shadow's content", got)
	}
	if d.Path() != path {
		t.Fatalf("path = %q, want %q", d.Path(), path)
	}
	if !d.Modified() {
		t.Fatal("a recovered buffer must read as modified so the user is prompted to save")
	}
}

func TestTickNoOpWithoutBackingPath(t *testing.T) {
	d := New()
	d.Replace(d.bof(), d.bof(), "x", false)
	if err := d.Tick(time.Now()); err != nil {
		t.Fatalf("tick on unbacked document: %v", err)
	}
	if d.AutosavePath() != "" {
		t.Fatal("expected no autosave for a document with no backing file")
	}
}
