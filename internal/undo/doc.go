// Package undo implements the branching undo graph described in spec §4.3.
//
// Conventional linear undo discards the "future" as soon as the user
// diverges from it by editing after an undo. This package never discards
// that future: it grafts the abandoned forward chain onto an alternate
// branch (Record.Alt) hanging off the point of divergence, so a later
// "redo along the alternate branch" can still reach it. This models the
// design note's "explicit graph { edits: Vec<Edit>, head: EditId, direction:
// Dir }" directly: Graph is that structure, Record is Edit.
package undo
