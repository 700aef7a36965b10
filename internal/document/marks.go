package document

import "github.com/dshills/piecedoc/internal/mark"

// NewMark implements `mark_new(view)`: allocates a mark at ref, linked into
// the document's ordered list at ref's actual position (in the given view:
// mark.ViewPoint for a cursor, mark.ViewUngrouped for none), not merely
// appended — ref need not be EOF.
func (d *Document) NewMark(ref mark.Ref, view mark.ViewSlot) mark.ID {
	ref = d.normalize(ref)
	return d.marks.InsertSorted(ref, view, d.refLess)
}

// refLess orders two mark refs by document position; mark.Store has no
// chunk-list access of its own, so position-aware inserts supply this.
func (d *Document) refLess(a, b mark.Ref) bool {
	return d.offsetOf(a) < d.offsetOf(b)
}

// MarkRef returns the current reference of mark id.
func (d *Document) MarkRef(id mark.ID) (mark.Ref, bool) {
	m, ok := d.marks.Get(id)
	if !ok {
		return mark.Ref{}, false
	}
	return m.Ref, true
}

// DeleteMark frees a mark entirely.
func (d *Document) DeleteMark(id mark.ID) { d.marks.Delete(id) }

// MoveMarkToMark implements `mark_to_mark(dst, src)`: moves dst to src's
// exact position, immediately adjacent to it in both the global list and
// dst's view sublist.
func (d *Document) MoveMarkToMark(dst, src mark.ID) error {
	srcMark, ok := d.marks.Get(src)
	if !ok {
		return ErrMissingArgument
	}
	if _, ok := d.marks.Get(dst); !ok {
		return ErrMissingArgument
	}
	d.marks.Unlink(dst)
	d.marks.SetRef(dst, srcMark.Ref)
	d.marks.InsertAfter(src, dst)
	return nil
}

// StepMark implements `mark_step(dir)`: advances id by one chunk boundary
// in normalized form.
func (d *Document) StepMark(id mark.ID, forward bool) error {
	m, ok := d.marks.Get(id)
	if !ok {
		return ErrMissingArgument
	}

	var next mark.Ref
	switch {
	case forward:
		if m.Ref.IsEOF() {
			return nil
		}
		next = d.normalize(mark.Ref{Chunk: d.chunks.Get(m.Ref.Chunk).Next, Offset: 0})
	case m.Ref.Chunk == d.head && m.Ref.Offset == 0:
		return nil
	case m.Ref.IsEOF():
		if d.tail == 0 {
			return nil
		}
		next = mark.Ref{Chunk: d.tail, Offset: 0}
	default:
		if prev := d.chunks.Get(m.Ref.Chunk).Prev; prev != 0 && m.Ref.Offset == 0 {
			next = mark.Ref{Chunk: prev, Offset: 0}
		} else {
			next = mark.Ref{Chunk: m.Ref.Chunk, Offset: 0}
		}
	}
	d.relocateMark(id, next)
	return nil
}

// MakeFirst implements `mark_make_first(m)`.
func (d *Document) MakeFirst(id mark.ID) { d.marks.MakeFirst(id) }

// MakeLast implements `mark_make_last(m)`.
func (d *Document) MakeLast(id mark.ID) { d.marks.MakeLast(id) }

// SetRef implements `doc:set-ref(mark, to_start)`: anchors mark at BOF
// (toStart true) or EOF (toStart false).
func (d *Document) SetRef(id mark.ID, toStart bool) error {
	if _, ok := d.marks.Get(id); !ok {
		return ErrMissingArgument
	}
	target := eof
	if toStart {
		target = d.bof()
	}
	d.relocateMark(id, target)
	return nil
}

// PushPoint implements `doc:push-point(mark)`: saves mark's current
// position onto the recent-points stack, evicting the oldest entry once
// the configured depth is exceeded.
func (d *Document) PushPoint(id mark.ID) error {
	m, ok := d.marks.Get(id)
	if !ok {
		return ErrMissingArgument
	}
	d.recentPoints = append(d.recentPoints, m.Ref)
	if over := len(d.recentPoints) - d.recentPointsCap; over > 0 {
		d.recentPoints = d.recentPoints[over:]
	}
	return nil
}

// PopPoint implements `doc:pop-point(mark)`: moves mark to the most
// recently pushed position and removes it from the stack. Returns false if
// the stack is empty.
func (d *Document) PopPoint(id mark.ID) bool {
	if len(d.recentPoints) == 0 {
		return false
	}
	last := len(d.recentPoints) - 1
	ref := d.recentPoints[last]
	d.recentPoints = d.recentPoints[:last]
	d.relocateMark(id, d.normalize(ref))
	return true
}
