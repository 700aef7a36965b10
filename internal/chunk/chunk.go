package chunk

import "github.com/dshills/piecedoc/internal/arena"

// ID identifies a chunk in a Table. The zero value is reserved: it denotes
// "no chunk" when used as a list link, and is also the canonical EOF
// sentinel used by mark references (see internal/mark).
type ID uint32

// Chunk is a contiguous, currently-immutable byte range of an arena, plus
// the mutable attribute set tagging offsets within it. Prev/Next thread the
// chunk into its document's doubly-linked chunk list; both are zero when
// the chunk has been unlinked (but a chunk is never deleted from the Table
// while any undo record still names it).
type Chunk struct {
	Arena      arena.ID
	Start, End int // [Start,End) in the arena; Start < End while linked
	Attrs      AttrSet
	Prev, Next ID
	linked     bool
}

// Len returns the chunk's byte length.
func (c Chunk) Len() int { return c.End - c.Start }

// Linked reports whether the chunk is currently part of the active chunk
// list (as opposed to retained only for undo).
func (c Chunk) Linked() bool { return c.linked }

// Table is a slotmap of chunks. IDs are never reused within a session,
// which is what lets undo records safely outlive a chunk's removal from
// the active list: the chunk stays in the table, referenced and intact.
type Table struct {
	chunks []Chunk // index 0 unused; ID i lives at chunks[i]
}

// NewTable creates an empty chunk table.
func NewTable() *Table {
	return &Table{chunks: make([]Chunk, 1)} // reserve index 0
}

// Alloc stores a new chunk and returns its ID.
func (t *Table) Alloc(c Chunk) ID {
	c.linked = true
	t.chunks = append(t.chunks, c)
	return ID(len(t.chunks) - 1)
}

// Get returns a pointer to the chunk for in-place mutation. It panics on an
// unknown ID, since chunk IDs are only ever produced by this Table.
func (t *Table) Get(id ID) *Chunk {
	return &t.chunks[id]
}

// Unlink marks a chunk as removed from the active chunk list without
// freeing its table slot; undo may still reference it.
func (t *Table) Unlink(id ID) {
	t.chunks[id].linked = false
	t.chunks[id].Prev = 0
	t.chunks[id].Next = 0
}
