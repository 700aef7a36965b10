package document

import (
	"path/filepath"

	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/notify"
	"github.com/dshills/piecedoc/internal/scripthook"
)

// SetAttr implements `doc:set-attr(mark, key, val, mark2?)`. With no
// second mark it tags the byte immediately following m; with one, it
// clears key across the half-open range [m, m2).
func (d *Document) SetAttr(m mark.ID, key, value string, m2 *mark.ID) error {
	ref, ok := d.MarkRef(m)
	if !ok {
		return ErrMissingArgument
	}
	ref = d.normalize(ref)

	if m2 == nil {
		if ref.IsEOF() {
			return ErrInvalidRange
		}
		if d.hook != nil {
			allowed, err := d.hook.AllowSetAttr(scripthook.SetAttrEvent{
				Offset: d.offsetOf(ref), Key: key, Value: value,
			})
			if err != nil {
				return err
			}
			if !allowed {
				return ErrVetoed
			}
		}
		d.chunks.Get(ref.Chunk).Attrs.Set(ref.Offset, key, value)
		d.bus.Publish(notify.ReplacedAttr, notify.ReplacedAttrPayload{Mark1: uint32(m)})
		return nil
	}

	ref2, ok := d.MarkRef(*m2)
	if !ok {
		return ErrMissingArgument
	}
	ref2 = d.normalize(ref2)

	cur := ref
	for {
		c := d.chunks.Get(cur.Chunk)
		end := c.Len()
		last := ref2.Chunk == cur.Chunk
		if last {
			end = ref2.Offset
		}
		for o := cur.Offset; o < end; o++ {
			c.Attrs.Clear(o, key)
		}
		if last {
			break
		}
		cur = d.normalize(mark.Ref{Chunk: c.Next, Offset: 0})
	}
	d.bus.Publish(notify.ReplacedAttr, notify.ReplacedAttrPayload{Mark1: uint32(m), Mark2: uint32(*m2)})
	return nil
}

// GetAttr implements `doc:get-attr(mark, key)`, checking built-in document
// attributes before falling back to the per-chunk attribute tagged at the
// byte immediately following m. The include_prefix_all option is not
// supported: only the exact key is looked up.
func (d *Document) GetAttr(m mark.ID, key string) (string, bool) {
	if v, ok := d.builtinAttr(key); ok {
		return v, true
	}
	ref, ok := d.MarkRef(m)
	if !ok {
		return "", false
	}
	ref = d.normalize(ref)
	if ref.IsEOF() {
		return "", false
	}
	return d.chunks.Get(ref.Chunk).Attrs.Get(ref.Offset, key)
}

func (d *Document) builtinAttr(key string) (string, bool) {
	switch key {
	case "doc-name":
		if d.path != "" {
			return filepath.Base(d.path), true
		}
		name, ok := d.attrs["doc-name"]
		return name, ok
	case "doc-modified":
		return boolStr(d.Modified()), true
	case "doc-readonly":
		return boolStr(d.readonly), true
	case "doc-file-changed":
		return boolStr(d.fileChanged), true
	case "filename":
		return d.path, d.path != ""
	case "dirname":
		if d.path == "" {
			return "", false
		}
		return filepath.Dir(d.path), true
	case "base-name":
		if d.path == "" {
			return "", false
		}
		return filepath.Base(d.path), true
	case "is_backup":
		return boolStr(false), true
	case "autosave-exists":
		return boolStr(d.autosavePath != "" && fileExists(d.autosavePath)), true
	case "autosave-name":
		return d.autosavePath, d.autosavePath != ""
	case "doc:charset":
		return d.charset, true
	}
	return "", false
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// SetFlag implements the uniform `doc:set:<name>` setter for document
// flags.
func (d *Document) SetFlag(name string, value bool) error {
	switch name {
	case "autoclose":
		d.autoclose = value
	case "readonly":
		d.readonly = value
	default:
		return ErrUnknownFlag
	}
	d.bus.Publish(notify.StatusChanged, nil)
	return nil
}
