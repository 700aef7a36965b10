package document

import "github.com/dshills/piecedoc/internal/notify"

// Close implements the document-close protocol spec §4.4/§6 describe:
// doc:notify-viewers is published as a query first, and any observer that
// still has a visible cursor on this document replies Handled. Only once no
// observer does does the document actually close, publishing Notify:Close
// and returning true; a reply of Handled from any viewer aborts the close
// and returns false, leaving the document open for that viewer.
func (d *Document) Close() bool {
	for _, r := range d.bus.Publish(notify.NotifyViewers, nil) {
		if r == notify.Handled {
			return false
		}
	}
	d.bus.Publish(notify.Close, nil)
	return true
}
