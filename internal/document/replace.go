package document

import (
	"time"

	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/notify"
	"github.com/dshills/piecedoc/internal/scripthook"
	"github.com/dshills/piecedoc/internal/undo"
)

// mutation is the chunk-list surgery half of an edit: delete-then-insert,
// no undo recording or mark fix-up. Returned verbatim to the caller so it
// can record the undo entry before fix-up runs (spec §5's required
// sequence is mutate, then record, then fix up) and only then repair marks
// with fixup.
type mutation struct {
	editPoint        mark.Ref
	insStart, insEnd mark.Ref
	splits           []splitMove
	trims            []trimFrontEvent
	oldText          []byte
}

// mutate performs the delete-then-insert half of a content mutation —
// chunk list surgery only, no undo recording and no mark fix-up.
func (d *Document) mutate(from, to mark.Ref, text string) mutation {
	oldText := d.readRange(from, to)
	editPoint, splits, trims := d.doDelete(from, to)
	insStart, insEnd, splits2 := d.doInsert(editPoint, []byte(text))
	return mutation{
		editPoint: editPoint,
		insStart:  insStart,
		insEnd:    insEnd,
		splits:    append(splits, splits2...),
		trims:     trims,
		oldText:   oldText,
	}
}

// Replace implements `doc:replace`: an atomic delete-then-insert between
// two marks, publishing doc:replaced and recording (or coalescing into) an
// undo record. It returns 1 if this started a new edit group, 2 if it
// coalesced into the current one.
func (d *Document) Replace(from, to mark.Ref, text string, isContinuation bool) (int, error) {
	if d.readonly {
		return 0, ErrReadonly
	}
	from = d.normalize(from)
	to = d.normalize(to)
	if d.offsetOf(from) > d.offsetOf(to) {
		return 0, ErrInvalidRange
	}
	if from == to && text == "" {
		return 0, ErrNoChange
	}

	fromOffset := d.offsetOf(from)
	if d.hook != nil {
		oldText := d.readRange(from, to)
		allowed, err := d.hook.AllowReplace(scripthook.ReplaceEvent{
			From: fromOffset, To: fromOffset + int64(len(oldText)),
			OldText: string(oldText), NewText: text,
		})
		if err != nil {
			return 0, err
		}
		if !allowed {
			return 0, ErrVetoed
		}
	}

	wasModified := d.undo.IsModified()
	m := d.mutate(from, to, text)
	oldText := m.oldText

	result := 1
	if isContinuation && d.undo.TryCoalesce(fromOffset, string(oldText), text) {
		result = 2
	} else {
		d.undo.Append(undo.Record{
			TargetChunk:  m.insStart.Chunk,
			SignedLength: len(text) - len(oldText),
			First:        true,
			From:         fromOffset,
			OldText:      string(oldText),
			NewText:      text,
		})
	}

	d.fixup(m.editPoint, m.insStart, m.insEnd, m.splits, m.trims)

	d.editsSinceAutosave++
	d.lastEditAt = time.Now()
	d.bus.Publish(notify.Replaced, notify.ReplacedPayload{Start: fromOffset, End: fromOffset + int64(len(text))})
	if wasModified != d.undo.IsModified() {
		d.bus.Publish(notify.StatusChanged, nil)
	}
	return result, nil
}
