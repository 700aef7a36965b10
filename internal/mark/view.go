package mark

// AddView allocates a new view slot owned by owner, growing the view table
// by 4 slots at a time when no freed slot is available (spec §4.2: "growing
// the table by 4 slots at a time and re-threading all existing marks' view
// links" — no re-threading is needed here since existing marks never
// reference a slot they weren't assigned to).
func (s *Store) AddView(owner string) int {
	if len(s.freeViews) > 0 {
		i := s.freeViews[len(s.freeViews)-1]
		s.freeViews = s.freeViews[:len(s.freeViews)-1]
		s.views[i] = viewSlot{owner: owner, allocated: true}
		return i
	}

	start := len(s.views)
	for i := 0; i < 4; i++ {
		s.views = append(s.views, viewSlot{})
	}
	s.views[start] = viewSlot{owner: owner, allocated: true}
	for i := start + 1; i < start+4; i++ {
		s.freeViews = append(s.freeViews, i)
	}
	return start
}

// DelView frees every mark owned by slot and releases the slot. owner must
// match the slot's recorded owner, matching spec §4.2's "Slot ownership is
// recorded so that the engine can verify del_view is called by the
// rightful owner." It returns the IDs of every mark that was freed; those
// marks are already gone from the store when DelView returns.
func (s *Store) DelView(slot int, owner string) ([]ID, error) {
	if slot < 0 || slot >= len(s.views) || !s.views[slot].allocated {
		return nil, ErrUnknownView
	}
	if s.views[slot].owner != owner {
		return nil, ErrWrongOwner
	}

	var freed []ID
	for id := s.views[slot].head; id != 0; {
		next := s.nodes[id].vnext
		freed = append(freed, id)
		id = next
	}
	for _, id := range freed {
		s.Delete(id)
	}

	s.views[slot] = viewSlot{}
	s.freeViews = append(s.freeViews, slot)
	return freed, nil
}

// ViewOwner returns the owner recorded for slot.
func (s *Store) ViewOwner(slot int) (string, bool) {
	if slot < 0 || slot >= len(s.views) || !s.views[slot].allocated {
		return "", false
	}
	return s.views[slot].owner, true
}

// ViewFirst returns the first mark in slot's sublist.
func (s *Store) ViewFirst(slot int) ID {
	if slot < 0 || slot >= len(s.views) || !s.views[slot].allocated {
		return 0
	}
	return s.views[slot].head
}

// ViewLast returns the last mark in slot's sublist.
func (s *Store) ViewLast(slot int) ID {
	if slot < 0 || slot >= len(s.views) || !s.views[slot].allocated {
		return 0
	}
	return s.views[slot].tail
}

// ViewNext returns the mark following id within its own view.
func (s *Store) ViewNext(id ID) ID {
	if n, ok := s.nodes[id]; ok {
		return n.vnext
	}
	return 0
}

// ViewPrev returns the mark preceding id within its own view.
func (s *Store) ViewPrev(id ID) ID {
	if n, ok := s.nodes[id]; ok {
		return n.vprev
	}
	return 0
}

// ViewLen counts the marks currently in slot's sublist.
func (s *Store) ViewLen(slot int) int {
	n := 0
	for id := s.ViewFirst(slot); id != 0; id = s.ViewNext(id) {
		n++
	}
	return n
}
