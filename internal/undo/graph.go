package undo

import "github.com/dshills/piecedoc/internal/chunk"

// RecordID identifies a Record within a Graph. The zero value denotes the
// root: the state before any edit has been recorded.
type RecordID uint32

// Direction records which kind of edge the graph last traversed, per spec
// §4.3 (`prev_edit ∈ {Redo, Undo, AltUndo}`).
type Direction int

const (
	DirNone Direction = iota
	DirRedo
	DirUndo
	DirAlt
)

// Record is one entry in the undo graph: spec §3.6's Edit Record.
//
// Undo/redo is replayed at content level rather than by literally reversing
// the chunk-list splits and merges a Replace performed: From/OldText/NewText
// carry enough information for the document to re-run the edit (forward) or
// its inverse (backward) through the ordinary insert/delete path. TargetChunk/
// SignedLength/AtStart name no content: replay never reads them, and
// TryCoalesce decides from From/OldText/NewText alone (it only keeps
// SignedLength up to date when it merges).
type Record struct {
	TargetChunk  chunk.ID
	SignedLength int  // positive: insertion grew TargetChunk; negative: deletion shrank it
	AtStart      bool // true: the mutation moved Start; false: it moved End
	First        bool // true: first record of a user-visible edit group

	From    int64  // absolute byte offset where the edit begins
	OldText string // bytes removed (empty for a pure insertion)
	NewText string // bytes inserted (empty for a pure deletion)

	Prev RecordID // backward (undo) edge
	Next RecordID // forward (redo) edge: the most recently made future
	Alt  RecordID // a previously-current future, preserved when superseded
}

// Graph is the branching undo/redo history for one document. RecordID 0 is
// the root: a real entry in records, holding no edit content but carrying
// Next/Alt edges like any other node, so the root needs no special-cased
// traversal logic.
type Graph struct {
	records   map[RecordID]*Record
	nextID    RecordID
	head      RecordID
	direction Direction
	savePoint RecordID
	forced    bool // modified flag forced on via doc:modified(set), independent of savePoint
}

// NewGraph creates an empty graph positioned at the root (no edits yet).
func NewGraph() *Graph {
	return &Graph{records: map[RecordID]*Record{0: {}}}
}

// Head returns the current position in the graph.
func (g *Graph) Head() RecordID { return g.head }

// Direction returns the direction of the most recent traversal.
func (g *Graph) Direction() Direction { return g.direction }

// Get returns the record at id. The root (id 0) is always present but
// holds no edit content.
func (g *Graph) Get(id RecordID) (*Record, bool) {
	r, ok := g.records[id]
	return r, ok
}

// Append records a new edit after the current head. If the head already had
// a forward (Next) edge — meaning the caller had undone past it and is now
// diverging onto a different future — that abandoned future is grafted onto
// the head's Alt edge instead of being discarded, per spec §4.3. If the head
// already carries an Alt branch from an earlier divergence, a zero-length
// placeholder record is inserted so neither branch is lost.
func (g *Graph) Append(rec Record) RecordID {
	g.nextID++
	id := g.nextID
	rec.Prev = g.head
	g.records[id] = &rec

	h := g.records[g.head]
	if h.Next != 0 && h.Next != id {
		if h.Alt == 0 {
			h.Alt = h.Next
		} else {
			g.nextID++
			placeholder := g.nextID
			g.records[placeholder] = &Record{Prev: g.head, Next: h.Alt, Alt: h.Next}
			h.Alt = placeholder
		}
	}
	h.Next = id
	g.head = id
	g.direction = DirRedo
	return id
}

// Undo steps the graph backward one record and returns the record that must
// be inverted to realize the state before it.
func (g *Graph) Undo() (*Record, error) {
	if g.head == 0 {
		return nil, ErrNothingToUndo
	}
	r := g.records[g.head]
	g.head = r.Prev
	g.direction = DirUndo
	return r, nil
}

// Redo steps the graph forward along the primary (Next) edge and returns
// the record to re-apply.
func (g *Graph) Redo() (*Record, error) {
	cur := g.records[g.head]
	if cur.Next == 0 {
		return nil, ErrNothingToRedo
	}
	g.head = cur.Next
	g.direction = DirRedo
	return g.records[g.head], nil
}

// RedoAlt steps the graph forward along the alternate (Alt) edge hanging
// off the current position, reaching a future that a plain Redo cannot.
func (g *Graph) RedoAlt() (*Record, error) {
	cur := g.records[g.head]
	if cur.Alt == 0 {
		return nil, ErrNoAltBranch
	}
	g.head = cur.Alt
	g.direction = DirAlt
	return g.records[g.head], nil
}

// SetSavePoint marks the current head as the last-saved state.
func (g *Graph) SetSavePoint() {
	g.savePoint = g.head
	g.forced = false
}

// ForceModified sets the modified flag on (spec §6 `doc:modified(set)`)
// without moving the save point, so a subsequent undo back to the save
// point still reads as modified until the next explicit save or clear.
func (g *Graph) ForceModified() { g.forced = true }

// IsModified reports whether the graph has moved away from the save
// point, or been explicitly forced modified.
func (g *Graph) IsModified() bool { return g.forced || g.head != g.savePoint }

// TryCoalesce attempts to merge a continuation edit into the current head
// record instead of appending a new one, per spec §4.3: "an insertion [or
// deletion] that is a continuation of the previous one merges into a single
// record." It only merges edits of the same shape (pure insert with pure
// insert, pure delete with pure delete) that are byte-contiguous with the
// head record, and never across a save point (an edit spanning a save must
// not merge, so undo can stop exactly there).
func (g *Graph) TryCoalesce(from int64, oldText, newText string) bool {
	h, ok := g.Get(g.head)
	if !ok || g.head == 0 || g.head == g.savePoint {
		return false
	}

	switch {
	case h.OldText == "" && oldText == "":
		// Pure insertions coalesce only when typing grows forward from
		// where the head record left off (the common "keep typing" case).
		if from != h.From+int64(len(h.NewText)) {
			return false
		}
	case h.NewText == "" && newText == "":
		// Pure deletions coalesce in either direction: repeated
		// delete-key presses grow forward, repeated backspaces grow
		// backward from the same point.
		switch from {
		case h.From:
			// forward (delete-key): falls through to the append below.
		case h.From - int64(len(oldText)):
			h.From = from
			h.OldText = oldText + h.OldText
			h.SignedLength -= len(oldText)
			return true
		default:
			return false
		}
	default:
		return false
	}

	h.NewText += newText
	h.OldText += oldText
	h.SignedLength += len(newText) - len(oldText)
	return true
}
