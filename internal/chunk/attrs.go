package chunk

import "sort"

// attrEntry is one (offset, key, value) tag within a chunk.
type attrEntry struct {
	Offset int
	Key    string
	Value  string
}

// AttrSet is a chunk's mutable, offset-tagged attribute set, kept sorted by
// offset (ties broken by key) so Trim and CopyTail can binary-search.
type AttrSet struct {
	entries []attrEntry
}

// Set records key=value starting at byte offset within the chunk,
// replacing any existing entry for the same (offset, key) pair.
func (a *AttrSet) Set(offset int, key, value string) {
	i := a.indexOf(offset, key)
	if i < len(a.entries) && a.entries[i].Offset == offset && a.entries[i].Key == key {
		a.entries[i].Value = value
		return
	}
	a.entries = append(a.entries, attrEntry{})
	copy(a.entries[i+1:], a.entries[i:])
	a.entries[i] = attrEntry{Offset: offset, Key: key, Value: value}
}

// Clear removes key's entry at offset, if any.
func (a *AttrSet) Clear(offset int, key string) {
	i := a.indexOf(offset, key)
	if i < len(a.entries) && a.entries[i].Offset == offset && a.entries[i].Key == key {
		a.entries = append(a.entries[:i], a.entries[i+1:]...)
	}
}

// At returns every attribute active at exactly the given offset.
func (a *AttrSet) At(offset int) map[string]string {
	out := map[string]string{}
	for _, e := range a.entries {
		if e.Offset == offset {
			out[e.Key] = e.Value
		}
	}
	return out
}

// Get returns the value tagged at exactly (offset, key).
func (a *AttrSet) Get(offset int, key string) (string, bool) {
	i := a.indexOf(offset, key)
	if i < len(a.entries) && a.entries[i].Offset == offset && a.entries[i].Key == key {
		return a.entries[i].Value, true
	}
	return "", false
}

func (a *AttrSet) indexOf(offset int, key string) int {
	return sort.Search(len(a.entries), func(i int) bool {
		if a.entries[i].Offset != offset {
			return a.entries[i].Offset >= offset
		}
		return a.entries[i].Key >= key
	})
}

// Trim discards every attribute at or beyond maxOffset. Used when a chunk's
// end retracts (deletion shrinking the chunk, or a split keeping the head).
func (a *AttrSet) Trim(maxOffset int) {
	i := sort.Search(len(a.entries), func(i int) bool { return a.entries[i].Offset >= maxOffset })
	a.entries = a.entries[:i]
}

// CopyTail returns a new AttrSet holding every attribute at or beyond
// fromOffset, rebased so fromOffset becomes 0. Used when a chunk splits:
// the new tail chunk inherits the attributes that applied past the split
// point.
func (a *AttrSet) CopyTail(fromOffset int) AttrSet {
	i := sort.Search(len(a.entries), func(i int) bool { return a.entries[i].Offset >= fromOffset })
	var out AttrSet
	for _, e := range a.entries[i:] {
		out.entries = append(out.entries, attrEntry{Offset: e.Offset - fromOffset, Key: e.Key, Value: e.Value})
	}
	return out
}

// Shift adds delta to every recorded offset at or beyond fromOffset. Used
// when bytes are inserted ahead of existing tagged offsets within the same
// chunk (e.g. growing the chunk in place before the tagged region).
func (a *AttrSet) Shift(fromOffset, delta int) {
	for i := range a.entries {
		if a.entries[i].Offset >= fromOffset {
			a.entries[i].Offset += delta
		}
	}
}
