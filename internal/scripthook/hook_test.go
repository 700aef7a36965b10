package scripthook

import "testing"

func TestAllowReplaceNoPredicateAllowsEverything(t *testing.T) {
	h := New()
	defer h.Close()

	allowed, err := h.AllowReplace(ReplaceEvent{From: 0, To: 5, OldText: "hello", NewText: "bye"})
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatal("expected allowed with no on_replace defined")
	}
}

func TestAllowReplaceVetoed(t *testing.T) {
	h := New()
	defer h.Close()
	if err := h.LoadString(`function on_replace(from, to, old, new) return old == "" end`); err != nil {
		t.Fatalf("load: %v", err)
	}

	allowed, err := h.AllowReplace(ReplaceEvent{From: 0, To: 0, OldText: "", NewText: "x"})
	if err != nil || !allowed {
		t.Fatalf("pure insert: allowed=%v err=%v, want true", allowed, err)
	}

	allowed, err = h.AllowReplace(ReplaceEvent{From: 0, To: 3, OldText: "abc", NewText: ""})
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("expected a deletion (old != \"\") to be vetoed")
	}
}

func TestAllowSetAttr(t *testing.T) {
	h := New()
	defer h.Close()
	if err := h.LoadString(`function on_set_attr(offset, key, value) return key ~= "locked" end`); err != nil {
		t.Fatalf("load: %v", err)
	}

	allowed, err := h.AllowSetAttr(SetAttrEvent{Offset: 3, Key: "highlight", Value: "keyword"})
	if err != nil || !allowed {
		t.Fatalf("allowed=%v err=%v, want true", allowed, err)
	}

	allowed, err = h.AllowSetAttr(SetAttrEvent{Offset: 3, Key: "locked", Value: "1"})
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("expected the locked key to be vetoed")
	}
}

func TestPredicatePanicIsReportedAsError(t *testing.T) {
	h := New()
	defer h.Close()
	if err := h.LoadString(`function on_replace(from, to, old, new) return nil + 1 end`); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := h.AllowReplace(ReplaceEvent{}); err == nil {
		t.Fatal("expected an error from a predicate that raises a runtime error")
	}
}
