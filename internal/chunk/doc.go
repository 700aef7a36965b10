// Package chunk defines the Chunk value type and its attribute set.
//
// A Chunk names a contiguous byte range of an Arena that is currently part
// of some document's text. Chunks are stored in a Table (a slotmap keyed by
// ID) rather than referenced by pointer, so undo records can hold a chunk
// reference that stays valid even after the chunk is unlinked from the
// document's active chunk list.
package chunk
