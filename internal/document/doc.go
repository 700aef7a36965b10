// Package document implements the editor's document substrate: the
// piece-table text engine (spec §4.1), wired to the mark store
// (internal/mark), the branching undo graph (internal/undo), and the
// notification substrate (internal/notify).
//
// # Architecture
//
// Document is the facade a collaborator (pane tree, keymap dispatch,
// renderer — all out of scope here, named only as contracts in spec §6)
// holds. It owns:
//
//   - an arena.Pool of append-only byte storage,
//   - a chunk.Table plus a doubly-linked chunk list describing the current
//     text,
//   - a mark.Store of persistent positions and views,
//   - an undo.Graph of branching edit history,
//   - a notify.Bus observers subscribe to.
//
// Every content edit (Replace) follows the same four-step sequence spec §5
// calls out as observable: (1) mutate the chunk list, (2) record the edit
// on the undo graph, (3) run the mark store fix-up walk, then (4) publish
// doc:replaced. This package has no goroutines and takes no locks: per
// spec §5 the core is single-threaded cooperative, driven entirely by
// synchronous calls from an external event loop.
package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/piecedoc/internal/arena"
	"github.com/dshills/piecedoc/internal/chunk"
	"github.com/dshills/piecedoc/internal/docconfig"
	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/notify"
	"github.com/dshills/piecedoc/internal/scripthook"
	"github.com/dshills/piecedoc/internal/undo"
)

// Document is the root entity: arenas, chunks, marks, views, and history
// for a single open buffer.
type Document struct {
	id uuid.UUID

	arenas *arena.Pool
	chunks *chunk.Table
	head   chunk.ID // first chunk in document order, 0 if empty
	tail   chunk.ID
	length int64 // cached total byte length

	marks *mark.Store
	undo  *undo.Graph
	bus   *notify.Bus

	attrs    map[string]string
	readonly bool
	autoclose bool
	fileChanged bool

	path         string
	lastStat     fileStamp
	autosavePath string

	editsSinceAutosave int
	lastEditAt         time.Time

	recentPoints     []mark.Ref
	recentPointsCap  int

	charset string

	cfg          *docconfig.Config
	manifest     *docconfig.Manifest
	autosaveSlot int
	haveSlot     bool

	hook *scripthook.Hook
}

// fileStamp is the (dev, ino, mtime) triple captured on load/save, used to
// detect out-of-band modification (spec §4.1 "File-change detection").
type fileStamp struct {
	dev, ino uint64
	mtime    time.Time
	valid    bool
}

// Option configures a new Document.
type Option func(*Document)

// WithRecentPointsDepth overrides the default recent-points stack depth
// (spec §9 Open Question 2: source revisions vary between 4 and 16; this
// module defaults to 8).
func WithRecentPointsDepth(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.recentPointsCap = n
		}
	}
}

// WithReadonly opens the document read-only.
func WithReadonly() Option {
	return func(d *Document) { d.readonly = true }
}

// WithCharset sets the doc:charset attribute (defaults to "utf-8").
func WithCharset(cs string) Option {
	return func(d *Document) { d.charset = cs }
}

// WithConfig supplies the tunables (recent-points depth, autosave
// thresholds, backup retention, default charset, autosave index directory)
// that otherwise default to docconfig.Default().
func WithConfig(cfg *docconfig.Config) Option {
	return func(d *Document) {
		d.cfg = cfg
		d.recentPointsCap = cfg.RecentPointsDepth
		d.charset = cfg.DefaultCharset
	}
}

// WithScriptHook registers a Lua predicate hook consulted before each
// `doc:replace` and `doc:set-attr` (spec §6's attribute substrate implying,
// without naming, a scripting seam).
func WithScriptHook(h *scripthook.Hook) Option {
	return func(d *Document) { d.hook = h }
}

// New creates an empty document.
func New(opts ...Option) *Document {
	cfg := docconfig.Default()
	d := &Document{
		id:              uuid.New(),
		arenas:          arena.NewPool(),
		chunks:          chunk.NewTable(),
		marks:           mark.NewStore(),
		undo:            undo.NewGraph(),
		bus:             notify.NewBus(),
		attrs:           map[string]string{},
		recentPointsCap: cfg.RecentPointsDepth,
		charset:         cfg.DefaultCharset,
		cfg:             cfg,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the document's internal identity, a UUID minted by New. The
// autosave index does not use it (its entries are numbered slots).
func (d *Document) ID() uuid.UUID { return d.id }

// Len returns the total byte length of the document.
func (d *Document) Len() int64 { return d.length }

// Bus returns the document's notification substrate, for collaborators to
// subscribe to.
func (d *Document) Bus() *notify.Bus { return d.bus }

// Readonly reports the readonly flag.
func (d *Document) Readonly() bool { return d.readonly }

// Modified reports whether the document differs from its last save point.
func (d *Document) Modified() bool { return d.undo.IsModified() }

// FileChanged reports whether the backing file was modified outside this
// document since it was last loaded or saved.
func (d *Document) FileChanged() bool { return d.fileChanged }

// Path returns the backing file path, or "" for an unbacked buffer.
func (d *Document) Path() string { return d.path }

// AutosavePath returns the current `#basename#` autosave shadow path, or ""
// if no autosave has been written for this document yet.
func (d *Document) AutosavePath() string { return d.autosavePath }
