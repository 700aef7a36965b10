package mark

import "github.com/dshills/piecedoc/internal/chunk"

// ID identifies a mark within a Store. The zero value never names a real
// mark.
type ID uint32

// ViewSlot is a mark's view membership. Non-negative values index the
// Store's view table; two values are reserved for marks that aren't
// members of any observer-owned view.
type ViewSlot int32

const (
	// ViewPoint marks a user-visible cursor.
	ViewPoint ViewSlot = -1
	// ViewUngrouped marks a mark with no view membership at all.
	ViewUngrouped ViewSlot = -2
)

// Ref is a normalized mark reference: Offset is always less than the
// target chunk's length, unless Chunk is the EOF sentinel (chunk.ID(0)), in
// which case Offset is always 0.
type Ref struct {
	Chunk  chunk.ID
	Offset int
}

// IsEOF reports whether r names the end-of-document sentinel.
func (r Ref) IsEOF() bool { return r.Chunk == 0 }

// Mark is a persistent position plus its ordering and view metadata.
type Mark struct {
	ID    ID
	Ref   Ref
	Seq   uint64
	View  ViewSlot
	Attrs map[string]string
}

type node struct {
	mark         Mark
	prev, next   ID // global ordered list
	vprev, vnext ID // view sublist (meaningful only when mark.View >= 0)
}

type viewSlot struct {
	owner      string
	allocated  bool
	head, tail ID
}

// Store holds every mark belonging to one document.
type Store struct {
	nodes      map[ID]*node
	head, tail ID // global list, ordered by document position
	nextID     ID
	nextSeq    uint64

	views     []viewSlot
	freeViews []int
}

// NewStore creates an empty mark store.
func NewStore() *Store {
	return &Store{nodes: make(map[ID]*node)}
}

// Len returns the total number of marks in the store.
func (s *Store) Len() int { return len(s.nodes) }

// Get returns the mark for id.
func (s *Store) Get(id ID) (Mark, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Mark{}, false
	}
	return n.mark, true
}

// First returns the global list head (ID zero if the store is empty).
func (s *Store) First() ID { return s.head }

// Last returns the global list tail (ID zero if the store is empty).
func (s *Store) Last() ID { return s.tail }

// Next returns the mark following id in document order (zero past the
// tail).
func (s *Store) Next(id ID) ID {
	if n, ok := s.nodes[id]; ok {
		return n.next
	}
	return 0
}

// Prev returns the mark preceding id in document order (zero before the
// head).
func (s *Store) Prev(id ID) ID {
	if n, ok := s.nodes[id]; ok {
		return n.prev
	}
	return 0
}

// NewMark allocates a mark at ref, appended at the tail of the global list.
// This is correct only when ref is guaranteed to be at or past every mark
// already in the store (e.g. the document's true EOF); callers that place a
// mark at an arbitrary position must use InsertSorted instead, which this
// store has no way to do on its own since it has no notion of chunk
// ordering — Ref carries an opaque chunk.ID, not a position.
func (s *Store) NewMark(ref Ref, view ViewSlot) ID {
	id := s.Alloc(ref, view)
	s.InsertAfter(s.tail, id)
	return id
}

// Alloc creates a mark at ref with the given view but does not link it into
// either the global list or a view sublist; the caller must follow with
// InsertBefore/InsertAfter (directly, or via InsertSorted).
func (s *Store) Alloc(ref Ref, view ViewSlot) ID {
	s.nextID++
	id := s.nextID
	s.nextSeq++
	s.nodes[id] = &node{mark: Mark{ID: id, Ref: ref, Seq: s.nextSeq, View: view, Attrs: map[string]string{}}}
	return id
}

// InsertSorted allocates a mark at ref and links it into the global list at
// the position less dictates: the new mark is placed immediately before the
// first existing mark for which less(ref, existing) holds (or at the tail if
// none do), so marks sharing ref's position sort after ones already present
// there. less must implement a strict less-than over positions; the store
// itself has no comparator of its own (position requires walking the
// document's chunk list, which only the caller — document.Document — can
// do), so every position-aware insert goes through this.
func (s *Store) InsertSorted(ref Ref, view ViewSlot, less func(a, b Ref) bool) ID {
	id := s.Alloc(ref, view)

	var anchor ID
	for cur := s.head; cur != 0; cur = s.nodes[cur].next {
		if less(ref, s.nodes[cur].mark.Ref) {
			break
		}
		anchor = cur
	}
	s.InsertAfter(anchor, id)
	return id
}

// Delete removes a mark entirely, unlinking it from both the global list
// and its view.
func (s *Store) Delete(id ID) {
	s.Unlink(id)
	delete(s.nodes, id)
}

// Unlink removes a mark from the global list and its view sublist but
// keeps its data alive so the caller can immediately re-insert it
// elsewhere via InsertBefore/InsertAfter.
func (s *Store) Unlink(id ID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if n.prev != 0 {
		s.nodes[n.prev].next = n.next
	} else if s.head == id {
		s.head = n.next
	}
	if n.next != 0 {
		s.nodes[n.next].prev = n.prev
	} else if s.tail == id {
		s.tail = n.prev
	}
	n.prev, n.next = 0, 0

	s.unlinkView(id)
}

func (s *Store) unlinkView(id ID) {
	n := s.nodes[id]
	if n.mark.View < 0 {
		return
	}
	slot := int(n.mark.View)
	if slot >= len(s.views) || !s.views[slot].allocated {
		return
	}
	if n.vprev != 0 {
		s.nodes[n.vprev].vnext = n.vnext
	} else if s.views[slot].head == id {
		s.views[slot].head = n.vnext
	}
	if n.vnext != 0 {
		s.nodes[n.vnext].vprev = n.vprev
	} else if s.views[slot].tail == id {
		s.views[slot].tail = n.vprev
	}
	n.vprev, n.vnext = 0, 0
}

// InsertAfter relinks an already-allocated, currently-unlinked mark
// immediately after anchor in the global list (anchor == 0 means "at the
// head"). If the mark belongs to a view, it is also relinked into that
// view's sublist, immediately after the nearest preceding view member
// reachable from anchor.
func (s *Store) InsertAfter(anchor, id ID) {
	n := s.nodes[id]
	var next ID
	if anchor == 0 {
		next = s.head
		s.head = id
	} else {
		an := s.nodes[anchor]
		next = an.next
		an.next = id
	}
	n.prev = anchor
	n.next = next
	if next != 0 {
		s.nodes[next].prev = id
	} else {
		s.tail = id
	}
	s.relinkView(id)
}

// InsertBefore relinks an already-allocated, currently-unlinked mark
// immediately before anchor in the global list (anchor == 0 means "at the
// tail").
func (s *Store) InsertBefore(anchor, id ID) {
	if anchor == 0 {
		s.InsertAfter(s.tail, id)
		return
	}
	s.InsertAfter(s.nodes[anchor].prev, id)
}

// relinkView finds id's place in its view sublist by walking outward along
// the (already correct) global list until it finds a neighboring member of
// the same view.
func (s *Store) relinkView(id ID) {
	n := s.nodes[id]
	if n.mark.View < 0 {
		return
	}
	slot := int(n.mark.View)
	if slot >= len(s.views) || !s.views[slot].allocated {
		return
	}

	var before ID
	for p := n.prev; p != 0; p = s.nodes[p].prev {
		if s.nodes[p].mark.View == n.mark.View {
			before = p
			break
		}
	}
	var after ID
	for q := n.next; q != 0; q = s.nodes[q].next {
		if s.nodes[q].mark.View == n.mark.View {
			after = q
			break
		}
	}

	n.vprev, n.vnext = before, after
	if before != 0 {
		s.nodes[before].vnext = id
	} else {
		s.views[slot].head = id
	}
	if after != 0 {
		s.nodes[after].vprev = id
	} else {
		s.views[slot].tail = id
	}
}

// SetRef overwrites a mark's stored reference without touching its
// position in either list. Callers must only use this when the new
// reference cannot change the mark's relative order (e.g. clamping an
// offset to a chunk's new end); any move that could cross a list boundary
// must go through Unlink + InsertBefore/InsertAfter.
func (s *Store) SetRef(id ID, ref Ref) {
	if n, ok := s.nodes[id]; ok {
		n.mark.Ref = ref
	}
}

// MakeFirst moves id to the first (earliest-sequence) slot among marks
// that currently share its exact reference.
func (s *Store) MakeFirst(id ID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	ref := n.mark.Ref
	p := n.prev
	for p != 0 && s.nodes[p].mark.Ref == ref {
		p = s.nodes[p].prev
	}
	if p == n.prev {
		return // already first in its run
	}
	s.Unlink(id)
	s.InsertAfter(p, id)
}

// MakeLast moves id to the last (latest-sequence) slot among marks that
// currently share its exact reference.
func (s *Store) MakeLast(id ID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	ref := n.mark.Ref
	q := n.next
	for q != 0 && s.nodes[q].mark.Ref == ref {
		q = s.nodes[q].next
	}
	if q == n.next {
		return // already last in its run
	}
	s.Unlink(id)
	s.InsertBefore(q, id)
}

// ForEach visits every mark in document order.
func (s *Store) ForEach(fn func(Mark)) {
	for id := s.head; id != 0; {
		n := s.nodes[id]
		next := n.next // read before calling fn, tolerating mutation mid-walk
		fn(n.mark)
		id = next
	}
}
