package mark

import "errors"

// Errors returned by mark store operations.
var (
	// ErrUnknownMark indicates an operation named a mark ID the store
	// doesn't hold.
	ErrUnknownMark = errors.New("unknown mark")

	// ErrUnknownView indicates an operation named a view slot that was
	// never allocated, or was already deleted.
	ErrUnknownView = errors.New("unknown view")

	// ErrWrongOwner indicates del-view was called by an observer that
	// does not own the slot.
	ErrWrongOwner = errors.New("view owned by a different observer")
)
