package mark

import "testing"

func TestNewMarkAppendsAtTail(t *testing.T) {
	s := NewStore()
	a := s.NewMark(Ref{Chunk: 1, Offset: 3}, ViewUngrouped)
	b := s.NewMark(Ref{Chunk: 0, Offset: 0}, ViewUngrouped)

	if s.First() != a || s.Last() != b {
		t.Fatalf("expected order a,b; got first=%v last=%v", s.First(), s.Last())
	}
	if s.Next(a) != b || s.Prev(b) != a {
		t.Fatal("linkage broken")
	}
}

// TestInsertSortedOrdersByPosition reproduces the case every real caller
// (document.NewMark, document.ViewMarkGet with ViewMarkNew) actually hits:
// a mark created after another but at an earlier position must still sort
// before it. Positions here are encoded directly as the Offset field with a
// single shared Chunk, so less can compare Refs without needing a document.
func TestInsertSortedOrdersByPosition(t *testing.T) {
	s := NewStore()
	less := func(a, b Ref) bool { return a.Offset < b.Offset }

	far := s.InsertSorted(Ref{Chunk: 1, Offset: 9}, ViewUngrouped, less)
	near := s.InsertSorted(Ref{Chunk: 1, Offset: 2}, ViewUngrouped, less)

	if s.First() != near || s.Last() != far {
		t.Fatalf("expected order near,far; got first=%v last=%v", s.First(), s.Last())
	}
	if s.Next(near) != far || s.Prev(far) != near {
		t.Fatal("linkage broken: near should immediately precede far")
	}
}

// TestInsertSortedTiesAppendAfterExisting checks that a mark inserted at a
// position already held by other marks lands after all of them, preserving
// creation order among ties (mirroring mark_make_first/make_last's
// assumption that sequence order reflects creation order within a run).
func TestInsertSortedTiesAppendAfterExisting(t *testing.T) {
	s := NewStore()
	less := func(a, b Ref) bool { return a.Offset < b.Offset }

	a := s.InsertSorted(Ref{Chunk: 1, Offset: 5}, ViewUngrouped, less)
	b := s.InsertSorted(Ref{Chunk: 1, Offset: 5}, ViewUngrouped, less)
	c := s.InsertSorted(Ref{Chunk: 1, Offset: 5}, ViewUngrouped, less)

	var order []ID
	s.ForEach(func(m Mark) { order = append(order, m.ID) })
	want := []ID{a, b, c}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestUnlinkThenInsertPreservesOrder(t *testing.T) {
	s := NewStore()
	a := s.NewMark(Ref{Chunk: 1, Offset: 0}, ViewUngrouped)
	b := s.NewMark(Ref{Chunk: 1, Offset: 5}, ViewUngrouped)
	c := s.NewMark(Ref{Chunk: 1, Offset: 9}, ViewUngrouped)

	s.Unlink(b)
	s.InsertAfter(a, b) // put it right back

	var order []ID
	s.ForEach(func(m Mark) { order = append(order, m.ID) })
	want := []ID{a, b, c}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMakeFirstAndMakeLast(t *testing.T) {
	s := NewStore()
	ref := Ref{Chunk: 1, Offset: 1}
	m1 := s.NewMark(ref, ViewUngrouped)
	m2 := s.NewMark(ref, ViewUngrouped)
	m3 := s.NewMark(ref, ViewUngrouped)

	// Default seq order: m1, m2, m3.
	s.MakeFirst(m2)
	var order []ID
	s.ForEach(func(m Mark) { order = append(order, m.ID) })
	if order[0] != m2 {
		t.Fatalf("MakeFirst failed, order=%v", order)
	}

	s.MakeLast(m2)
	order = nil
	s.ForEach(func(m Mark) { order = append(order, m.ID) })
	if order[2] != m2 {
		t.Fatalf("MakeLast failed, order=%v", order)
	}
	_, _ = m1, m3
}

func TestViewSublistMatchesGlobalOrder(t *testing.T) {
	s := NewStore()
	v := s.AddView("highlighter")

	s.NewMark(Ref{Chunk: 1, Offset: 0}, ViewUngrouped)
	hv1 := s.NewMark(Ref{Chunk: 1, Offset: 2}, ViewSlot(v))
	s.NewMark(Ref{Chunk: 1, Offset: 4}, ViewUngrouped)
	hv2 := s.NewMark(Ref{Chunk: 1, Offset: 6}, ViewSlot(v))

	var viewOrder []ID
	for id := s.ViewFirst(v); id != 0; id = s.ViewNext(id) {
		viewOrder = append(viewOrder, id)
	}
	if len(viewOrder) != 2 || viewOrder[0] != hv1 || viewOrder[1] != hv2 {
		t.Fatalf("view sublist wrong: %v", viewOrder)
	}
}

func TestDelViewFreesAllMarksAndChecksOwner(t *testing.T) {
	s := NewStore()
	v := s.AddView("owner-a")
	for i := 0; i < 10; i++ {
		s.NewMark(Ref{Chunk: 1, Offset: i}, ViewSlot(v))
	}
	before := s.Len()

	if _, err := s.DelView(v, "owner-b"); err != ErrWrongOwner {
		t.Fatalf("expected ErrWrongOwner, got %v", err)
	}

	freed, err := s.DelView(v, "owner-a")
	if err != nil {
		t.Fatalf("DelView: %v", err)
	}
	if len(freed) != 10 {
		t.Fatalf("expected 10 freed marks, got %d", len(freed))
	}
	if s.Len() != before-10 {
		t.Fatalf("store length did not decrease by 10: before=%d after=%d", before, s.Len())
	}
}

func TestAddViewGrowsInBlocksOfFour(t *testing.T) {
	s := NewStore()
	s.AddView("a")
	if len(s.views) != 4 {
		t.Fatalf("expected table grown to 4 slots, got %d", len(s.views))
	}
	s.AddView("b")
	s.AddView("c")
	s.AddView("d")
	if len(s.views) != 4 {
		t.Fatalf("table should not grow again until all 4 slots used, got %d", len(s.views))
	}
	s.AddView("e")
	if len(s.views) != 8 {
		t.Fatalf("expected table grown to 8 slots, got %d", len(s.views))
	}
}
