// Package arena provides the append-only byte storage backing a document's
// chunk list.
//
// # Architecture
//
// An Arena is a single append-only buffer: bytes written to it are never
// overwritten or moved for the lifetime of the arena. A Pool owns every
// Arena created by a document and hands out stable, copyable IDs instead of
// raw pointers, so chunks and marks can reference storage cheaply without
// holding interior pointers (see internal/chunk and internal/mark).
//
// Arenas start at a small default size and grow by doubling up to a hard
// cap; a single large push (loading a file) may instead allocate an arena
// sized to the expected content so the whole file lands in one arena.
package arena
