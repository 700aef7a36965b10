package document

import (
	"github.com/dshills/piecedoc/internal/arena"
	"github.com/dshills/piecedoc/internal/chunk"
	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/undo"
)

// resetChunkList discards the document's current content, history, and
// marks, starting a fresh arena pool, chunk table, mark store, and undo
// graph (spec §6 `doc:load-file`'s full-replace semantics: not an undoable
// edit, a fresh open). Subscribers on the bus, and document-level state
// (path, attrs, flags), survive the reset.
func (d *Document) resetChunkList() {
	d.arenas = arena.NewPool()
	d.chunks = chunk.NewTable()
	d.marks = mark.NewStore()
	d.undo = undo.NewGraph()
	d.head, d.tail, d.length = 0, 0, 0
	d.recentPoints = nil
}

// eof is the normalized EOF reference shared by every document.
var eof = mark.Ref{Chunk: 0, Offset: 0}

// bof returns the normalized beginning-of-document reference.
func (d *Document) bof() mark.Ref {
	if d.head == 0 {
		return eof
	}
	return mark.Ref{Chunk: d.head, Offset: 0}
}

// chunkLen returns the byte length of chunk id.
func (d *Document) chunkLen(id chunk.ID) int {
	return d.chunks.Get(id).Len()
}

// linkAfter splices newID into the chunk list immediately after afterID
// (afterID == 0 means "at the head").
func (d *Document) linkAfter(afterID, newID chunk.ID) {
	c := d.chunks.Get(newID)
	if afterID == 0 {
		c.Next = d.head
		if d.head != 0 {
			d.chunks.Get(d.head).Prev = newID
		} else {
			d.tail = newID
		}
		d.head = newID
		c.Prev = 0
		return
	}
	after := d.chunks.Get(afterID)
	c.Next = after.Next
	c.Prev = afterID
	if after.Next != 0 {
		d.chunks.Get(after.Next).Prev = newID
	} else {
		d.tail = newID
	}
	after.Next = newID
}

// unlinkChunk removes id from the active chunk list. The chunk stays in
// the table (spec §3.2: "retained in memory as long as any undo record
// references them").
func (d *Document) unlinkChunk(id chunk.ID) {
	c := d.chunks.Get(id)
	prev, next := c.Prev, c.Next
	if prev != 0 {
		d.chunks.Get(prev).Next = next
	} else {
		d.head = next
	}
	if next != 0 {
		d.chunks.Get(next).Prev = prev
	} else {
		d.tail = prev
	}
	d.chunks.Unlink(id)
}

// splitChunk splits chunk id at byte offset within the chunk into two
// chunks sharing the same arena: id keeps [0,offset), a new chunk holds
// [offset,end) with the attribute tail copied over (spec §4.1 step 2). The
// new chunk is linked immediately after id. It returns the new chunk's ID.
func (d *Document) splitChunk(id chunk.ID, offset int) chunk.ID {
	// Table.Alloc may grow the table's backing slice, which would
	// invalidate a *Chunk obtained before the call; read everything needed
	// from the original chunk before allocating, then re-fetch id's
	// pointer afterward to make the trimming mutation.
	orig := *d.chunks.Get(id)
	tailAttrs := orig.Attrs.CopyTail(offset)

	newID := d.chunks.Alloc(chunk.Chunk{
		Arena: orig.Arena,
		Start: orig.Start + offset,
		End:   orig.End,
		Attrs: tailAttrs,
	})

	c := d.chunks.Get(id)
	c.Attrs.Trim(offset)
	c.End = c.Start + offset

	d.linkAfter(id, newID)
	return newID
}

// normalize walks ref forward across zero-length boundaries until it names
// a valid position: either an offset strictly inside a linked chunk, or the
// EOF sentinel.
func (d *Document) normalize(ref mark.Ref) mark.Ref {
	for ref.Chunk != 0 {
		c := d.chunks.Get(ref.Chunk)
		if !c.Linked() {
			// The chunk this ref named was removed entirely; walking its
			// stored Next is unsafe (unlinked chunks clear their links),
			// so callers must never normalize a ref into a deleted chunk
			// directly — fix-up (spec §4.2) handles that relocation.
			return eof
		}
		if ref.Offset < c.Len() {
			return ref
		}
		ref = mark.Ref{Chunk: c.Next, Offset: ref.Offset - c.Len()}
	}
	return eof
}

// byteAt returns the raw byte at ref, and whether ref names a valid
// (non-EOF) position.
func (d *Document) byteAt(ref mark.Ref) (byte, bool) {
	if ref.Chunk == 0 {
		return 0, false
	}
	c := d.chunks.Get(ref.Chunk)
	return d.arenas.Get(c.Arena).Bytes(c.Start+ref.Offset, c.Start+ref.Offset+1)[0], true
}
