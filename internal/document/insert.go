package document

import (
	"github.com/dshills/piecedoc/internal/chunk"
	"github.com/dshills/piecedoc/internal/mark"
)

// splitMove records that a chunk-list mutation split a chunk in two: any
// mark still referencing offsets at or beyond Boundary within Orig must be
// remapped onto New at the same relative offset (spec §4.2 fix-up treats
// this as a pure rename, since the split preserves every surviving byte's
// identity, just under a new chunk). Orig keeps [0,Boundary).
type splitMove struct {
	Orig     chunk.ID
	Boundary int
	New      chunk.ID
}

// doInsert implements spec §4.1's insertion algorithm: grow the arena tail
// in place when the insertion point sits at the very end of the document
// and the tail arena has room, splitting and allocating new chunks as
// needed otherwise. It performs no undo recording or mark fix-up; callers
// (Replace) own that bookkeeping, using the returned splits to remap marks
// displaced by any chunk split.
func (d *Document) doInsert(at mark.Ref, data []byte) (start, end mark.Ref, splits []splitMove) {
	at = d.normalize(at)
	start = at
	if len(data) == 0 {
		return at, at, nil
	}

	cur := at
	remaining := data
	first := true

	for len(remaining) > 0 {
		if cur.Chunk == 0 && d.tail != 0 {
			tc := d.chunks.Get(d.tail)
			if tc.Arena == d.arenas.Tail() && tc.End == d.arenas.Get(tc.Arena).Len() {
				if n := utf8RoundLen(remaining, d.arenas.Get(tc.Arena).Room()); n > 0 {
					writeOffset := tc.Len()
					d.arenas.Append(tc.Arena, remaining[:n])
					tc.End += n
					if first {
						start = mark.Ref{Chunk: d.tail, Offset: writeOffset}
						first = false
					}
					d.length += int64(n)
					remaining = remaining[n:]
					cur = eof
					continue
				}
			}
		}

		if cur.Chunk != 0 && cur.Offset != 0 {
			newID := d.splitChunk(cur.Chunk, cur.Offset)
			splits = append(splits, splitMove{Orig: cur.Chunk, Boundary: cur.Offset, New: newID})
			cur = mark.Ref{Chunk: newID, Offset: 0}
		}

		arenaID := d.arenas.Tail()
		if arenaID == 0 || d.arenas.Get(arenaID).Room() == 0 {
			arenaID = d.arenas.New(sizeHintFor(len(remaining)))
		}
		n := utf8RoundLen(remaining, d.arenas.Get(arenaID).Room())
		if n == 0 {
			arenaID = d.arenas.New(len(remaining))
			n = len(remaining)
		}
		writeOffset := d.arenas.Get(arenaID).Len()
		d.arenas.Append(arenaID, remaining[:n])
		newChunkID := d.chunks.Alloc(chunk.Chunk{Arena: arenaID, Start: writeOffset, End: writeOffset + n})

		if cur.Chunk == 0 {
			d.linkAfter(d.tail, newChunkID)
		} else {
			d.linkAfter(d.chunks.Get(cur.Chunk).Prev, newChunkID)
		}

		if first {
			start = mark.Ref{Chunk: newChunkID, Offset: 0}
			first = false
		}

		d.length += int64(n)
		remaining = remaining[n:]
		cur = d.normalize(mark.Ref{Chunk: newChunkID, Offset: n})
	}

	return start, cur, splits
}
