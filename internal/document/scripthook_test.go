package document

import (
	"testing"

	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/scripthook"
)

func TestScriptHookVetoesReplace(t *testing.T) {
	hook := scripthook.New()
	defer hook.Close()
	if err := hook.LoadString(`function on_replace(from, to, old, new) return new ~= "bad" end`); err != nil {
		t.Fatalf("load script: %v", err)
	}

	d := New(WithScriptHook(hook))
	if _, err := d.Replace(d.bof(), d.bof(), "bad", false); err != ErrVetoed {
		t.Fatalf("err = %v, want ErrVetoed", err)
	}
	if got := text(d); got != "" {
		t.Fatalf("vetoed edit must not apply, got %q", got)
	}

	if _, err := d.Replace(d.bof(), d.bof(), "ok", false); err != nil {
		t.Fatalf("expected the non-vetoed insert to be allowed, got %v", err)
	}
	if got := text(d); got != "ok" {
		t.Fatalf("got %q", got)
	}
}

func TestScriptHookVetoesSetAttr(t *testing.T) {
	hook := scripthook.New()
	defer hook.Close()
	hook.LoadString(`function on_set_attr(offset, key, value) return key ~= "readonly-region" end`)

	d := New(WithScriptHook(hook))
	d.Replace(d.bof(), d.bof(), "hello", false)

	m := d.NewMark(d.bof(), mark.ViewUngrouped)

	if err := d.SetAttr(m, "readonly-region", "1", nil); err != ErrVetoed {
		t.Fatalf("err = %v, want ErrVetoed", err)
	}
	if err := d.SetAttr(m, "highlight", "1", nil); err != nil {
		t.Fatalf("expected allowed attr set, got %v", err)
	}
}

func TestNoScriptHookAllowsEverything(t *testing.T) {
	d := New()
	if _, err := d.Replace(d.bof(), d.bof(), "x", false); err != nil {
		t.Fatalf("expected no veto without a hook, got %v", err)
	}
}
