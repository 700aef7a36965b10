package document

import (
	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/notify"
)

// AddView implements `doc:add-view()`, returning a fresh view slot owned
// by owner.
func (d *Document) AddView(owner string) int {
	return d.marks.AddView(owner)
}

// DelView implements `doc:del-view(i)`: frees every mark in slot i, then
// publishes Notify:clip over the range the freed marks covered so other
// observers can relocate marks of their own caught in that span.
func (d *Document) DelView(slot int, owner string) error {
	var low, high int64 = -1, -1
	for id := d.marks.ViewFirst(slot); id != 0; id = d.marks.ViewNext(id) {
		m, ok := d.marks.Get(id)
		if !ok {
			continue
		}
		off := d.offsetOf(m.Ref)
		if low == -1 || off < low {
			low = off
		}
		if off > high {
			high = off
		}
	}

	freed, err := d.marks.DelView(slot, owner)
	if err != nil {
		return err
	}
	if len(freed) > 0 {
		d.bus.Publish(notify.Clip, notify.ClipPayload{Low: low, High: high})
	}
	return nil
}

// ViewMarkGetMode selects which member of a view `doc:vmark-get` reports.
type ViewMarkGetMode int

const (
	ViewMarkFirst ViewMarkGetMode = iota
	ViewMarkLast
	ViewMarkAtOrBefore
	ViewMarkNew
)

// ViewMarkGet implements `doc:vmark-get(view, mark?, mode)`.
func (d *Document) ViewMarkGet(slot int, at mark.Ref, mode ViewMarkGetMode) (mark.ID, error) {
	if _, ok := d.marks.ViewOwner(slot); !ok {
		return 0, ErrInvalidView
	}

	switch mode {
	case ViewMarkFirst:
		return d.marks.ViewFirst(slot), nil
	case ViewMarkLast:
		return d.marks.ViewLast(slot), nil
	case ViewMarkNew:
		ref := d.normalize(at)
		return d.marks.InsertSorted(ref, mark.ViewSlot(slot), d.refLess), nil
	case ViewMarkAtOrBefore:
		target := d.offsetOf(d.normalize(at))
		var best mark.ID
		for id := d.marks.ViewFirst(slot); id != 0; id = d.marks.ViewNext(id) {
			m, _ := d.marks.Get(id)
			if d.offsetOf(m.Ref) > target {
				break
			}
			best = id
		}
		return best, nil
	default:
		return 0, ErrInvalidView
	}
}
