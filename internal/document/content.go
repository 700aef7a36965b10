package document

import (
	"unicode/utf8"

	"github.com/dshills/piecedoc/internal/mark"
)

// readRange copies the bytes in [from,to) into a single slice. Used
// internally to capture the text an edit is about to remove, for the undo
// record's OldText.
func (d *Document) readRange(from, to mark.Ref) []byte {
	from = d.normalize(from)
	to = d.normalize(to)
	if from == to {
		return nil
	}
	var buf []byte
	cur := from
	for {
		if cur.IsEOF() {
			return buf
		}
		c := d.chunks.Get(cur.Chunk)
		end := c.Len()
		last := to.Chunk == cur.Chunk
		if last {
			end = to.Offset
		}
		buf = append(buf, d.arenas.Get(c.Arena).Bytes(c.Start+cur.Offset, c.Start+end)...)
		if last {
			return buf
		}
		cur = d.normalize(mark.Ref{Chunk: c.Next, Offset: 0})
	}
}

// Byte returns the raw byte at ref, and whether ref names a valid (not
// end-of-document) position.
func (d *Document) Byte(ref mark.Ref) (byte, bool) {
	return d.byteAt(d.normalize(ref))
}

// Content streams the document's bytes from start (inclusive) to end
// (exclusive, EOF if end is the zero Ref), calling fn once per byte. fn
// returns a continuation hint: a non-positive return stops the stream
// early, matching spec §6's "consumer may truncate by returning <= 0".
func (d *Document) Content(start, end mark.Ref, fn func(b byte) int) {
	start = d.normalize(start)
	cur := start
	for {
		if end != eof && cur == end {
			return
		}
		b, ok := d.byteAt(cur)
		if !ok {
			return
		}
		if fn(b) <= 0 {
			return
		}
		cur = d.normalize(mark.Ref{Chunk: cur.Chunk, Offset: cur.Offset + 1})
	}
}

// Char moves ref forward (n>0) or backward (n<0) by n Unicode code points,
// stopping early at end if it is reached. It returns the resulting
// reference and the number of code points actually moved.
func (d *Document) Char(ref mark.Ref, n int, end mark.Ref) (mark.Ref, int) {
	ref = d.normalize(ref)
	moved := 0
	for moved < abs(n) {
		if n > 0 {
			if ref == end || ref.IsEOF() {
				break
			}
			_, size := d.decodeRuneAt(ref)
			ref = d.advance(ref, size)
		} else {
			if ref == end || (ref.Chunk == d.head && ref.Offset == 0) {
				break
			}
			size := d.backRuneSize(ref)
			ref = d.retreat(ref, size)
		}
		moved++
	}
	if n < 0 {
		moved = -moved
	}
	return ref, moved
}

// EOL moves ref across n line endings ('\n'), stopping at document bounds.
// oneMore additionally steps one further position past the final newline
// found (spec §6 `doc:EOL(n, mark, one_more?)`).
func (d *Document) EOL(ref mark.Ref, n int, oneMore bool) mark.Ref {
	ref = d.normalize(ref)
	remaining := abs(n)
	forward := n >= 0
	for remaining > 0 {
		b, ok := d.byteAt(ref)
		if !ok {
			break
		}
		if forward {
			ref = d.advance(ref, 1)
		} else {
			ref = d.retreat(ref, 1)
		}
		if b == '\n' {
			remaining--
		}
	}
	if oneMore {
		if forward {
			ref = d.advance(ref, 1)
		} else {
			ref = d.retreat(ref, 1)
		}
	}
	return ref
}

func (d *Document) advance(ref mark.Ref, n int) mark.Ref {
	return d.normalize(mark.Ref{Chunk: ref.Chunk, Offset: ref.Offset + n})
}

// retreat steps ref backward n bytes, walking into the previous chunk as
// needed.
func (d *Document) retreat(ref mark.Ref, n int) mark.Ref {
	for n > 0 {
		if ref.Chunk == 0 {
			if d.tail == 0 {
				return ref
			}
			ref = mark.Ref{Chunk: d.tail, Offset: d.chunkLen(d.tail)}
		}
		if ref.Offset > 0 {
			step := n
			if step > ref.Offset {
				step = ref.Offset
			}
			ref.Offset -= step
			n -= step
			continue
		}
		prev := d.chunks.Get(ref.Chunk).Prev
		if prev == 0 {
			return ref
		}
		ref = mark.Ref{Chunk: prev, Offset: d.chunkLen(prev)}
	}
	return d.normalize(ref)
}

// decodeRuneAt decodes the UTF-8 rune starting at ref, falling back to the
// raw byte on a decode error (spec §4.1: "a fall-back that returns the raw
// byte on decode error").
func (d *Document) decodeRuneAt(ref mark.Ref) (rune, int) {
	buf := d.peek(ref, utf8.UTFMax)
	if len(buf) == 0 {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return rune(buf[0]), 1
	}
	return r, size
}

// backRuneSize finds how many bytes the rune ending at ref occupies.
func (d *Document) backRuneSize(ref mark.Ref) int {
	for size := 1; size <= utf8.UTFMax; size++ {
		start := d.retreat(ref, size)
		buf := d.peek(start, size)
		if len(buf) < size {
			continue
		}
		if utf8.FullRune(buf) {
			r, n := utf8.DecodeRune(buf)
			if r != utf8.RuneError && n == size {
				return size
			}
		}
	}
	return 1
}

// peek reads up to n bytes starting at ref without moving past EOF.
func (d *Document) peek(ref mark.Ref, n int) []byte {
	var out []byte
	cur := d.normalize(ref)
	for i := 0; i < n; i++ {
		b, ok := d.byteAt(cur)
		if !ok {
			break
		}
		out = append(out, b)
		cur = d.advance(cur, 1)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
