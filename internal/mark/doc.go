// Package mark implements the Mark Store: an ordered collection of
// persistent positions ("marks") inside a document, grouped into named
// views.
//
// # Architecture
//
// Marks sit in a single list ordered by document position (ties broken by
// a monotonic sequence number). Each mark optionally belongs to one view, a
// named sublist owned by an observer (a highlighter, a search index, a
// parser cache). The store itself never computes document position: it is
// deliberately dumb storage plus list-splicing primitives. The owning
// document (internal/document) knows the chunk order and is responsible for
// calling Unlink/InsertBefore/InsertAfter in the right place during its
// post-edit fix-up walk (spec §4.2) — exactly as the reference design notes
// describe ("prefer an intrusive ordered structure... with per-view
// sublists maintained as secondary indices").
//
// This trades the source's 2-bit-tagged pointer low bits for two explicit
// link pairs per node (global + view), which is the idiomatic Go
// translation the design notes call for directly.
package mark
