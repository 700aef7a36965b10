package document

import "errors"

// Error kinds, matching spec §7's taxonomy (kinds, not type names):
//   - missing argument, invalid argument, would-violate-readonly,
//     I/O failure, out-of-sync file, fallthrough.
var (
	// ErrMissingArgument indicates an operation was invoked without a
	// required mark/path/callback.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidRange indicates range endpoints are reversed and the
	// operation does not auto-swap, or a single-mark set-attr at EOF, where
	// there is no following byte to tag.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrInvalidView indicates a view index out of range.
	ErrInvalidView = errors.New("invalid view index")

	// ErrWrongDocument indicates a mark was created by a different
	// document.
	ErrWrongDocument = errors.New("mark belongs to a different document")

	// ErrReadonly indicates a mutation was attempted on a read-only
	// document.
	ErrReadonly = errors.New("document is read-only")

	// ErrNoChange indicates a load-if-unchanged request found the file
	// unchanged, so no reload happened, or a replace with an empty range and
	// empty text, which changes nothing.
	ErrNoChange = errors.New("file unchanged, no reload performed")

	// ErrNotLoaded indicates a save or revisit was attempted on a
	// document with no backing file path, or a reload-from-autosave found
	// no `#basename#` shadow file.
	ErrNotLoaded = errors.New("document has no backing file")

	// ErrUnknownFlag indicates `doc:set:<name>` named a flag this
	// document doesn't recognize.
	ErrUnknownFlag = errors.New("unknown document flag")

	// ErrVetoed indicates a registered script hook predicate rejected the
	// edit.
	ErrVetoed = errors.New("edit vetoed by script hook")
)
