package document

import (
	"github.com/dshills/piecedoc/internal/chunk"
	"github.com/dshills/piecedoc/internal/mark"
)

// trimFrontEvent records that a chunk's Start advanced by N bytes (a
// prefix deletion that didn't split off a separate chunk). Every mark
// referencing an offset within that chunk shifts its zero point: offsets
// below N fall inside the deleted prefix and collapse to the edit point;
// offsets at or beyond N stay in the chunk but must subtract N to keep
// naming the same byte.
type trimFrontEvent struct {
	Chunk chunk.ID
	N     int
}

// fixup is spec §4.2's post-edit mark repair: every mark is visited once
// and relocated according to what the edit did to the chunk it names.
// Rather than the source's pointer-adjacency optimization (separate
// backward/forward passes that stop early once a mark needs no
// adjustment), this walks every mark unconditionally — the repair rules
// below are no-ops for marks untouched by the edit, so the result is
// identical; see DESIGN.md for the tradeoff.
//
// editPoint is the normalized position the edit occurred at, captured
// before any chunk-list surgery — this is the only reference a mark
// sitting exactly at the edit point can still be carrying, since doDelete
// and doInsert's own splits/trims describe the mutation in terms of
// chunks that may no longer exist once the edit completes. start and end
// are doInsert's resulting extent: equal for a pure deletion, with end
// strictly past start once the edit grew the document.
func (d *Document) fixup(editPoint, start, end mark.Ref, splits []splitMove, trims []trimFrontEvent) {
	claimedEditPoint := false
	growing := start != end

	d.marks.ForEach(func(m mark.Mark) {
		ref := m.Ref

		// A mark sitting exactly at the edit point, when the edit grew
		// the document: the first such mark encountered (in list order,
		// i.e. after any make_first/make_last) stays immediately before
		// the inserted text; the rest land immediately after it (spec §8
		// S2). This must run before the split-rename sweep below, since a
		// growing edit at an interior chunk offset produces a splitMove
		// whose Boundary is this exact editPoint, and every mark there
		// needs the first/rest distinction rather than a uniform remap.
		if growing && ref == editPoint {
			if !claimedEditPoint {
				claimedEditPoint = true
				d.marks.SetRef(m.ID, start)
			} else {
				d.marks.SetRef(m.ID, end)
			}
			return
		}

		// Renames: the byte this mark names still exists, just under a
		// new chunk id or a shifted in-chunk offset. These never change
		// relative order, so a plain SetRef suffices.
		for _, sp := range splits {
			if ref.Chunk == sp.Orig && ref.Offset >= sp.Boundary {
				d.marks.SetRef(m.ID, mark.Ref{Chunk: sp.New, Offset: ref.Offset - sp.Boundary})
				return
			}
		}
		for _, tf := range trims {
			if ref.Chunk == tf.Chunk {
				if ref.Offset < tf.N {
					d.relocateMark(m.ID, start)
				} else {
					d.marks.SetRef(m.ID, mark.Ref{Chunk: ref.Chunk, Offset: ref.Offset - tf.N})
				}
				return
			}
		}

		// The chunk this mark named was removed outright.
		if ref.Chunk != 0 && !d.chunks.Get(ref.Chunk).Linked() {
			d.relocateMark(m.ID, start)
			return
		}

		// The chunk survived but shrank out from under this mark's offset
		// (an End retraction): walk forward to the next valid position.
		if ref.Chunk != 0 && ref.Offset >= d.chunkLen(ref.Chunk) {
			d.relocateMark(m.ID, d.normalize(mark.Ref{Chunk: ref.Chunk, Offset: d.chunkLen(ref.Chunk)}))
			return
		}
	})
}

// relocateMark moves a mark to newRef, re-threading it into the global
// list (and its view sublist) at the position newRef's absolute offset
// demands. Used whenever a repair can cross other marks' positions;
// pure renames use mark.Store.SetRef directly instead.
func (d *Document) relocateMark(id mark.ID, newRef mark.Ref) {
	m, ok := d.marks.Get(id)
	if !ok {
		return
	}
	d.marks.Unlink(id)
	d.marks.SetRef(id, newRef)

	targetOff := d.offsetOf(newRef)
	var anchor mark.ID
	for cur := d.marks.First(); cur != 0; cur = d.marks.Next(cur) {
		cm, _ := d.marks.Get(cur)
		off := d.offsetOf(cm.Ref)
		if off > targetOff || (off == targetOff && cm.Seq > m.Seq) {
			break
		}
		anchor = cur
	}
	d.marks.InsertAfter(anchor, id)
}
