// Package notify implements the document's notification substrate: spec
// §4.4's minimal typed publish/subscribe bus. A Document (internal/document)
// is the only publisher; observers (cursors, views, highlighters, search
// indices, renderers — all external collaborators per spec §1) subscribe by
// event name.
//
// Delivery is synchronous and ordered by subscription order. A handler may
// freely mutate the document, subscribe, or unsubscribe during its own
// call: Publish always re-reads the next subscriber slot before invoking
// it, so it tolerates being changed out from under itself mid-walk, the
// same tolerance spec §4.4 requires of the source.
//
// Per design note §9, this substrate is reserved for *outward* notification
// only. The typed operations a document exposes to collaborators (§6) are
// ordinary Go methods on Document, not bus messages — the source's
// stringly-typed command bus collapses to that typed API in this
// reimplementation.
package notify
