package document

import "github.com/dshills/piecedoc/internal/mark"

// utf8RoundLen returns the largest n <= limit (and <= len(data)) such that
// data[:n] ends on a rune boundary, implementing spec §4.1's
// "append as many bytes as fit on a UTF-8 boundary". data that isn't valid
// UTF-8 at all still rounds down to the nearest byte that isn't a
// continuation byte, so a truncated/foreign-encoded stream degrades to
// splitting on a safe boundary rather than corrupting a multi-byte rune.
func utf8RoundLen(data []byte, limit int) int {
	n := limit
	if n > len(data) {
		n = len(data)
	}
	if n <= 0 {
		return 0
	}
	for n > 0 && n < len(data) && isUTF8Continuation(data[n]) {
		n--
	}
	return n
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }

// sizeHintFor picks an arena size hint for a fresh arena: large inserts
// (e.g. a pasted block or a loaded file) get an arena sized exactly to hold
// them; small ones fall back to the pool's default growth behavior.
func sizeHintFor(n int) int {
	if n > 4*1024 {
		return n
	}
	return 0
}

// offsetOf returns ref's absolute byte offset by walking the chunk list
// from the head. This is O(document length) rather than the O(log n) a
// real order-statistic index would give; spec §9's design notes call for a
// fenwick/skip-list index for this, which this module does not build (see
// DESIGN.md) since insert/delete throughput, not offset lookup, is what the
// piece table is chiefly valued for.
func (d *Document) offsetOf(ref mark.Ref) int64 {
	ref = d.normalize(ref)
	if ref.Chunk == 0 {
		return d.length
	}
	var off int64
	for id := d.head; id != 0; id = d.chunks.Get(id).Next {
		if id == ref.Chunk {
			return off + int64(ref.Offset)
		}
		off += int64(d.chunkLen(id))
	}
	return d.length
}

// refAt converts an absolute byte offset back into a chunk reference.
func (d *Document) refAt(offset int64) mark.Ref {
	if offset >= d.length || offset < 0 {
		return eof
	}
	var off int64
	for id := d.head; id != 0; id = d.chunks.Get(id).Next {
		l := int64(d.chunkLen(id))
		if offset < off+l {
			return mark.Ref{Chunk: id, Offset: int(offset - off)}
		}
		off += l
	}
	return eof
}
