package document

import "github.com/dshills/piecedoc/internal/mark"

// doDelete implements spec §4.1's deletion algorithm over the half-open
// range [from,to): chunks wholly inside the range are unlinked outright,
// chunks at either edge are trimmed in place (Start advances or End
// retracts, whichever the range touches), and a chunk straddling both
// edges is split so only its interior is discarded. It performs no undo
// recording or mark fix-up; callers (Replace) own that bookkeeping, using
// the returned splits/trims to remap displaced marks precisely.
//
// result is the normalized reference at which the deleted span collapsed;
// the input to/from refs are not safe to reuse for that purpose once their
// own chunk has been trimmed or unlinked by this call.
func (d *Document) doDelete(from, to mark.Ref) (result mark.Ref, splits []splitMove, trims []trimFrontEvent) {
	from = d.normalize(from)
	to = d.normalize(to)
	if from == to {
		return from, nil, nil
	}

	cur := from
	result = to
	for cur != to {
		if to.Chunk == cur.Chunk {
			n := to.Offset - cur.Offset
			if cur.Offset == 0 {
				// Prefix trim: the chunk's zero point itself moves
				// forward, so the collapse point is offset 0 of the
				// (now-shifted) same chunk.
				c := d.chunks.Get(cur.Chunk)
				c.Attrs = c.Attrs.CopyTail(to.Offset)
				c.Start += to.Offset
				trims = append(trims, trimFrontEvent{Chunk: cur.Chunk, N: to.Offset})
				result = mark.Ref{Chunk: cur.Chunk, Offset: 0}
			} else {
				// Interior span: split off the kept tail, then shrink
				// the head down to cur.Offset. The collapse point is the
				// start of the new tail chunk.
				newID := d.splitChunk(cur.Chunk, to.Offset)
				splits = append(splits, splitMove{Orig: cur.Chunk, Boundary: to.Offset, New: newID})
				c := d.chunks.Get(cur.Chunk)
				c.Attrs.Trim(cur.Offset)
				c.End = c.Start + cur.Offset
				result = mark.Ref{Chunk: newID, Offset: 0}
			}
			d.length -= int64(n)
			cur = to
			continue
		}

		c := d.chunks.Get(cur.Chunk)
		next := c.Next
		removed := c.Len() - cur.Offset
		if cur.Offset == 0 {
			d.unlinkChunk(cur.Chunk)
		} else {
			c.Attrs.Trim(cur.Offset)
			c.End = c.Start + cur.Offset
		}
		d.length -= int64(removed)
		cur = d.normalize(mark.Ref{Chunk: next, Offset: 0})
		result = cur
	}

	return result, splits, trims
}
