package arena

import "testing"

func TestArenaGrowthDoubles(t *testing.T) {
	pool := NewPool()
	id := pool.New(0)
	a := pool.Get(id)

	if got := cap(a.buf); got != DefaultSize {
		t.Fatalf("initial cap = %d, want %d", got, DefaultSize)
	}

	big := make([]byte, DefaultSize+1)
	n := a.Append(big)
	if n != len(big) {
		t.Fatalf("Append short write: got %d, want %d", n, len(big))
	}
	if cap(a.buf) < len(big) {
		t.Fatalf("cap did not grow to fit: cap=%d len=%d", cap(a.buf), len(big))
	}
}

func TestArenaCapsAtMaxSize(t *testing.T) {
	pool := NewPool()
	id := pool.New(0)
	a := pool.Get(id)

	huge := make([]byte, MaxSize+100)
	n := a.Append(huge)
	if n != MaxSize {
		t.Fatalf("Append should stop at MaxSize: got %d, want %d", n, MaxSize)
	}
	if a.Room() != 0 {
		t.Fatalf("arena should report no room left, got %d", a.Room())
	}

	// A further append must write nothing; caller is expected to start a
	// new arena for the remainder.
	if n2 := a.Append([]byte("x")); n2 != 0 {
		t.Fatalf("full arena accepted more bytes: %d", n2)
	}
}

func TestArenaSizedPush(t *testing.T) {
	pool := NewPool()
	id := pool.New(10_000)
	a := pool.Get(id)
	if a.Room() != 10_000 {
		t.Fatalf("sized arena room = %d, want 10000", a.Room())
	}
}

func TestPoolTailTracksMostRecent(t *testing.T) {
	pool := NewPool()
	a1 := pool.New(0)
	if pool.Tail() != a1 {
		t.Fatalf("tail should be %v, got %v", a1, pool.Tail())
	}
	a2 := pool.New(0)
	if pool.Tail() != a2 {
		t.Fatalf("tail should be %v, got %v", a2, pool.Tail())
	}
}
