// Package scripthook lets an external collaborator register a Lua predicate
// invoked from `doc:set-attr`/`doc:replace` dispatch, to veto or tag an edit
// before it lands (e.g. a read-only-region plugin). The document core
// itself names no scripting mechanism; this is the one seam spec §6 implies
// ("the attribute substrate supports [syntax highlighting]") without
// specifying how a collaborator would plug one in.
package scripthook

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ReplaceEvent describes a pending `doc:replace` for a predicate to judge.
type ReplaceEvent struct {
	From, To int64
	OldText  string
	NewText  string
}

// SetAttrEvent describes a pending `doc:set-attr` for a predicate to judge.
type SetAttrEvent struct {
	Offset     int64
	Key, Value string
}

// Hook wraps a sandboxed Lua state exposing two optional global predicates:
// `on_replace(from, to, old, new) -> bool` and
// `on_set_attr(offset, key, value) -> bool`. Returning false vetoes the
// edit. A state with neither global defined allows everything.
//
// gopher-lua's LState is not goroutine-safe; callers must serialize access
// the same way the document core itself is single-threaded.
type Hook struct {
	L *lua.LState
}

// New creates a Hook with a minimal, sandboxed library set loaded (no io,
// os, debug, or package access).
func New() *Hook {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	return &Hook{L: L}
}

// LoadString compiles and runs script, typically a file defining
// on_replace/on_set_attr.
func (h *Hook) LoadString(script string) error {
	if err := h.L.DoString(script); err != nil {
		return fmt.Errorf("scripthook: %w", err)
	}
	return nil
}

// Close releases the underlying Lua state.
func (h *Hook) Close() { h.L.Close() }

// AllowReplace reports whether a pending replace may proceed. Absent
// on_replace, every edit is allowed.
func (h *Hook) AllowReplace(ev ReplaceEvent) (bool, error) {
	fn := h.L.GetGlobal("on_replace")
	if fn == lua.LNil {
		return true, nil
	}
	return h.callPredicate(fn,
		lua.LNumber(ev.From), lua.LNumber(ev.To),
		lua.LString(ev.OldText), lua.LString(ev.NewText))
}

// AllowSetAttr reports whether a pending set-attr may proceed. Absent
// on_set_attr, every tag is allowed.
func (h *Hook) AllowSetAttr(ev SetAttrEvent) (bool, error) {
	fn := h.L.GetGlobal("on_set_attr")
	if fn == lua.LNil {
		return true, nil
	}
	return h.callPredicate(fn, lua.LNumber(ev.Offset), lua.LString(ev.Key), lua.LString(ev.Value))
}

func (h *Hook) callPredicate(fn lua.LValue, args ...lua.LValue) (allowed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			allowed, err = false, fmt.Errorf("scripthook: predicate panic: %v", r)
		}
	}()

	h.L.Push(fn)
	for _, a := range args {
		h.L.Push(a)
	}
	if err := h.L.PCall(len(args), 1, nil); err != nil {
		return false, fmt.Errorf("scripthook: %w", err)
	}
	ret := h.L.Get(-1)
	h.L.Pop(1)
	return lua.LVAsBool(ret), nil
}
