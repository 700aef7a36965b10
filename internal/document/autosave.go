package document

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/piecedoc/internal/docconfig"
)

// shadowPath returns the `#basename#` companion path adjacent to the
// backing file (spec §6 "Autosave layout").
func shadowPath(path string) string {
	dir, base := filepath.Dir(path), filepath.Base(path)
	return filepath.Join(dir, "#"+base+"#")
}

// Tick implements the autosave trigger an external event loop drives via
// its `event:timer` hook (spec §5): it flushes an autosave shadow once
// either the per-edit counter or the idle timer (defaults: 300 edits, 30s)
// is exceeded since the last flush.
func (d *Document) Tick(now time.Time) error {
	if d.path == "" || d.editsSinceAutosave == 0 {
		return nil
	}
	idle := d.cfg.AutosaveIdle
	if now.Sub(d.lastEditAt) < idle && d.editsSinceAutosave < d.cfg.AutosaveEditCount {
		return nil
	}
	return d.writeAutosave()
}

// writeAutosave writes the current buffer to its `#basename#` shadow and
// registers it in the autosave index manifest, so a crash leaves a
// recoverable trail (spec §6, §11).
func (d *Document) writeAutosave() error {
	d.autosavePath = shadowPath(d.path)
	data := d.readRange(d.bof(), eof)
	if err := os.WriteFile(d.autosavePath, data, 0o600); err != nil {
		return fmt.Errorf("autosave %s: %w", d.autosavePath, err)
	}

	if d.manifest == nil {
		m, err := docconfig.OpenManifest(d.cfg.AutosaveIndexDir)
		if err != nil {
			return err
		}
		d.manifest = m
	}
	if !d.haveSlot {
		slot, err := d.manifest.Add(d.path, d.autosavePath)
		if err != nil {
			return err
		}
		d.autosaveSlot, d.haveSlot = slot, true
	}

	d.editsSinceAutosave = 0
	return nil
}

// clearAutosave removes the shadow file and its manifest entry, called
// once a save-file makes the shadow redundant (spec §8 S4).
func (d *Document) clearAutosave() {
	if d.autosavePath != "" {
		os.Remove(d.autosavePath)
		d.autosavePath = ""
	}
	if d.haveSlot && d.manifest != nil {
		_ = d.manifest.Remove(d.autosaveSlot)
		d.haveSlot = false
	}
	d.editsSinceAutosave = 0
}

// RecoverAutosave implements `doc:load-file`'s *reload-from-autosave* flag
// path: loads path's `#basename#` shadow in place of path itself, keeping
// path as the eventual save destination.
func (d *Document) RecoverAutosave(path string) (int, error) {
	return d.LoadFile(path, LoadFlags{ReloadFromAutosave: true})
}
