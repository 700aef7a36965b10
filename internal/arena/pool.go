package arena

// Pool owns every arena belonging to a single document and hands out
// IDs instead of pointers, matching the arena+index approach the reference
// design notes call for: "each arena indexed by a u32... doc_ref becomes
// copyable and cheap."
type Pool struct {
	arenas []*Arena
	tail   ID
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// New allocates a fresh arena. sizeHint, if positive, sizes the arena
// exactly (used for large sized pushes like file loads); otherwise the
// arena starts at DefaultSize and grows by doubling up to MaxSize.
func (p *Pool) New(sizeHint int) ID {
	id := ID(len(p.arenas) + 1)
	p.arenas = append(p.arenas, newArena(id, sizeHint))
	p.tail = id
	return id
}

// Get returns the arena for id, or nil if id is unknown.
func (p *Pool) Get(id ID) *Arena {
	if id == 0 || int(id) > len(p.arenas) {
		return nil
	}
	return p.arenas[id-1]
}

// Tail returns the most recently created arena's ID, the only arena
// eligible for in-place growth (spec: "all other chunks are frozen").
func (p *Pool) Tail() ID {
	return p.tail
}

// Append appends p's bytes to arena id, growing it in place. It returns the
// number of bytes written, which may be less than len(data) if the arena
// filled up.
func (pl *Pool) Append(id ID, data []byte) int {
	a := pl.Get(id)
	if a == nil {
		return 0
	}
	return a.Append(data)
}
