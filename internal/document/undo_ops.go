package document

import (
	"github.com/dshills/piecedoc/internal/notify"
	"github.com/dshills/piecedoc/internal/undo"
)

// replay applies a record's stored edit in one direction or the other
// (oldText/newText swapped for inverse vs. forward) and publishes
// doc:replaced, but records nothing on the undo graph: the graph itself is
// the caller's bookkeeping. A record with no text on either side is the
// root or a zero-length branch placeholder, which names no edit.
func (d *Document) replay(r *undo.Record, remove, insert string) {
	if remove == "" && insert == "" {
		return
	}
	from := d.refAt(r.From)
	to := d.refAt(r.From + int64(len(remove)))
	m := d.mutate(from, to, insert)
	d.fixup(m.editPoint, m.insStart, m.insEnd, m.splits, m.trims)
	d.bus.Publish(notify.Replaced, notify.ReplacedPayload{Start: r.From, End: r.From + int64(len(insert))})
	d.bus.Publish(notify.StatusChanged, nil)
}

// Undo implements `doc:reundo(0)`: step one record back and apply its
// inverse (re-insert what it removed, re-remove what it inserted).
func (d *Document) Undo() error {
	r, err := d.undo.Undo()
	if err != nil {
		return err
	}
	d.replay(r, r.NewText, r.OldText)
	return nil
}

// Redo implements `doc:reundo(1)`: step forward along the primary (most
// recently made) future and re-apply its edit.
func (d *Document) Redo() error {
	r, err := d.undo.Redo()
	if err != nil {
		return err
	}
	d.replay(r, r.OldText, r.NewText)
	return nil
}

// RedoAlt steps forward along a previously-abandoned future hanging off
// the current position (spec §4.3's branching graph; reached only after an
// Undo past a divergence point).
func (d *Document) RedoAlt() error {
	r, err := d.undo.RedoAlt()
	if err != nil {
		return err
	}
	d.replay(r, r.OldText, r.NewText)
	return nil
}

// ModifiedMode selects the behavior of SetModified, mirroring spec §6's
// `doc:modified(mode)`.
type ModifiedMode int

const (
	ModifiedToggle ModifiedMode = iota
	ModifiedSet
	ModifiedClear
)

// SetModified implements `doc:modified(mode)`. Clearing sets the save
// point to the current undo head (as save-file does); setting forces the
// modified flag on without moving the save point (undo.Graph.ForceModified).
func (d *Document) SetModified(mode ModifiedMode) {
	switch mode {
	case ModifiedClear:
		d.undo.SetSavePoint()
	case ModifiedSet:
		d.undo.ForceModified()
	case ModifiedToggle:
		if d.undo.IsModified() {
			d.undo.SetSavePoint()
		} else {
			d.undo.ForceModified()
		}
	}
	d.bus.Publish(notify.StatusChanged, nil)
}
