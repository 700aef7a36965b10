package undo

import "errors"

// Errors returned by Graph operations.
var (
	// ErrNothingToUndo indicates the history has nothing before the
	// current position.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates there is no forward edge (Next) from the
	// current position.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoAltBranch indicates there is no alternate future (Alt) hanging
	// off the current position.
	ErrNoAltBranch = errors.New("no alternate branch")
)
