package docconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestEntry records one live autosave: the slot number backing its
// symlink name, and the document path it shadows.
type ManifestEntry struct {
	Slot int    `yaml:"slot"`
	Path string `yaml:"path"`
}

// Manifest is the autosave index's structured replacement for a bare
// symlink farm (SPEC_FULL.md §11): `index.yaml` lists every live autosave,
// and a same-numbered symlink per entry still lives alongside it so a
// collaborator that only knows the old convention can find the shadow file.
type Manifest struct {
	dir     string
	Entries []ManifestEntry `yaml:"entries"`
	nextSlot int
}

func manifestPath(dir string) string { return filepath.Join(dir, "index.yaml") }

// OpenManifest loads dir's index.yaml, creating an empty manifest if the
// directory or file doesn't exist yet.
func OpenManifest(dir string) (*Manifest, error) {
	m := &Manifest{dir: dir}

	data, err := os.ReadFile(manifestPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("docconfig: reading autosave index: %w", err)
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("docconfig: parsing autosave index: %w", err)
	}
	for _, e := range m.Entries {
		if e.Slot >= m.nextSlot {
			m.nextSlot = e.Slot + 1
		}
	}
	return m, nil
}

// Add registers path under a fresh slot, symlinks slotPath -> shadowPath,
// and persists the manifest. Returns the assigned slot.
func (m *Manifest) Add(path, shadowPath string) (int, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return 0, fmt.Errorf("docconfig: creating autosave index dir: %w", err)
	}
	slot := m.nextSlot
	m.nextSlot++
	m.Entries = append(m.Entries, ManifestEntry{Slot: slot, Path: path})

	link := filepath.Join(m.dir, fmt.Sprintf("%d", slot))
	os.Remove(link)
	if err := os.Symlink(shadowPath, link); err != nil {
		return 0, fmt.Errorf("docconfig: linking autosave slot: %w", err)
	}
	return slot, m.save()
}

// Remove drops slot's entry and symlink, persisting the manifest.
func (m *Manifest) Remove(slot int) error {
	for i, e := range m.Entries {
		if e.Slot == slot {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			break
		}
	}
	os.Remove(filepath.Join(m.dir, fmt.Sprintf("%d", slot)))
	return m.save()
}

func (m *Manifest) save() error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("docconfig: encoding autosave index: %w", err)
	}
	return os.WriteFile(manifestPath(m.dir), data, 0o644)
}
