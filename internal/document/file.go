package document

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/dshills/piecedoc/internal/mark"
	"github.com/dshills/piecedoc/internal/notify"
)

// LoadFlags controls doc:load-file's behavior.
type LoadFlags struct {
	// KeepIfUnchanged skips the reload and returns ErrNoChange when the
	// backing file's stat matches the last captured stamp.
	KeepIfUnchanged bool
	// OpenNew tolerates a missing file, leaving the document empty
	// rather than returning an I/O error.
	OpenNew bool
	// ReloadFromAutosave loads path's `#basename#` shadow instead of path
	// itself, keeping path as the save destination (crash recovery).
	ReloadFromAutosave bool
}

// stat captures the (dev, ino, mtime) triple spec §4.1's file-change
// detection compares against on save and revisit.
func stat(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileStamp{mtime: info.ModTime(), valid: true}, nil
	}
	return fileStamp{dev: uint64(st.Dev), ino: st.Ino, mtime: info.ModTime(), valid: true}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFile implements `doc:load-file(path, flags)`: replaces the document's
// entire contents with path's bytes, discarding undo history and resetting
// the save point, as a fresh open rather than an undoable edit.
func (d *Document) LoadFile(path string, flags LoadFlags) (int, error) {
	if flags.KeepIfUnchanged && d.lastStat.valid {
		if st, err := stat(path); err == nil && st.dev == d.lastStat.dev && st.ino == d.lastStat.ino && st.mtime.Equal(d.lastStat.mtime) {
			return 0, ErrNoChange
		}
	}

	readPath := path
	if flags.ReloadFromAutosave {
		readPath = shadowPath(path)
		if !fileExists(readPath) {
			return 0, ErrNotLoaded
		}
	}

	data, err := os.ReadFile(readPath)
	if err != nil {
		if flags.OpenNew && os.IsNotExist(err) {
			data = nil
		} else {
			return 0, fmt.Errorf("doc:load-file %s: %w", readPath, err)
		}
	}

	d.resetChunkList()

	if len(data) > 0 {
		d.doInsert(d.bof(), data)
	}
	d.undo.SetSavePoint()

	d.path = path
	if st, err := stat(path); err == nil {
		d.lastStat = st
	}
	d.fileChanged = false

	if flags.ReloadFromAutosave {
		d.autosavePath = readPath
		d.undo.ForceModified()
	}

	d.bus.Publish(notify.Replaced, notify.ReplacedPayload{Start: 0, End: d.length})
	d.bus.Publish(notify.StatusChanged, nil)
	return 1, nil
}

// InsertFile implements `doc:insert-file(path, mark)`: inserts path's bytes
// at mark as an ordinary, undoable edit.
func (d *Document) InsertFile(path string, at mark.ID) error {
	ref, ok := d.MarkRef(at)
	if !ok {
		return ErrMissingArgument
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("doc:insert-file %s: %w", path, err)
	}
	_, err = d.Replace(ref, ref, string(data), false)
	return err
}

// SaveFile implements `doc:save-file`: writes the whole document to its
// backing path through a sibling temp file, fsyncs, rotates a backup if the
// file changed out from under this document, then renames into place.
func (d *Document) SaveFile() error {
	if d.path == "" {
		return ErrNotLoaded
	}
	return d.writeRange(d.path, d.bof(), eof, true)
}

// WriteFile implements `doc:write-file(path, mark1?, mark2?)`: persists the
// range [mark1,mark2) (the whole document if both are absent) to path
// without touching the save point or backing-path bookkeeping, unless path
// equals the document's own backing path.
func (d *Document) WriteFile(path string, from, to *mark.Ref) error {
	start, end := d.bof(), eof
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return d.writeRange(path, start, end, path == d.path)
}

func (d *Document) writeRange(path string, from, to mark.Ref, isSave bool) error {
	outOfSync := false
	if isSave && d.lastStat.valid {
		if st, err := stat(path); err == nil {
			outOfSync = st.dev != d.lastStat.dev || st.ino != d.lastStat.ino || !st.mtime.Equal(d.lastStat.mtime)
		}
	}

	data := d.readRange(d.normalize(from), d.normalize(to))

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}

	if outOfSync {
		if err := rotateBackups(path, d.cfg.BackupRetention); err != nil {
			return err
		}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("doc:save-file %s: %w", path, err)
	}

	if isSave {
		d.undo.SetSavePoint()
		if st, err := stat(path); err == nil {
			d.lastStat = st
		}
		d.fileChanged = false
		d.clearAutosave()
		d.bus.Publish(notify.StatusChanged, nil)
	}
	return nil
}

// rotateBackups preserves path's current on-disk content as path~1~,
// shifting any existing ~1~.. ~retention-1~ up by one and discarding the
// oldest generation (spec §7, §8 S6 name the `name~N~` scheme but leave the
// retention bound open; docconfig defaults it to 3).
func rotateBackups(path string, retention int) error {
	for i := retention - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s~%d~", path, i)
		dst := fmt.Sprintf("%s~%d~", path, i+1)
		if fileExists(src) {
			if i+1 > retention {
				os.Remove(src)
				continue
			}
			os.Rename(src, dst)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return os.WriteFile(path+"~1~", data, 0o644)
}

// Revisit implements spec §4.1's "revisit" flow: re-stat the backing file
// and, if it changed and the buffer is unmodified, reload it automatically.
func (d *Document) Revisit() error {
	if d.path == "" {
		return ErrNotLoaded
	}
	st, err := stat(d.path)
	if err != nil {
		return fmt.Errorf("doc:revisit %s: %w", d.path, err)
	}
	changed := !d.lastStat.valid || st.dev != d.lastStat.dev || st.ino != d.lastStat.ino || !st.mtime.Equal(d.lastStat.mtime)
	if !changed {
		return nil
	}
	d.fileChanged = true
	d.bus.Publish(notify.StatusChanged, nil)
	d.bus.Publish(notify.Revisit, nil)
	if !d.undo.IsModified() {
		_, err := d.LoadFile(d.path, LoadFlags{})
		return err
	}
	return nil
}
