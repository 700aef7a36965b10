// Package docconfig loads editor-wide and per-document tunables: the
// recent-points stack depth, autosave thresholds, backup retention, and
// default charset (spec §9 Open Question 2 and §7's backup scheme), plus
// the autosave index manifest (spec §6 "Autosave layout").
package docconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables a document reads at construction time.
type Config struct {
	RecentPointsDepth  int           `toml:"recent_points_depth"`
	AutosaveEditCount  int           `toml:"autosave_edit_count"`
	AutosaveIdle       time.Duration `toml:"-"`
	AutosaveIdleSecs   int           `toml:"autosave_idle_seconds"`
	BackupRetention    int           `toml:"backup_retention"`
	DefaultCharset     string        `toml:"default_charset"`
	AutosaveIndexDir   string        `toml:"autosave_index_dir"`
}

// Default returns the built-in tunables, used when no `edlib.toml` is
// present.
func Default() *Config {
	return &Config{
		RecentPointsDepth: 8,
		AutosaveEditCount: 300,
		AutosaveIdle:      30 * time.Second,
		AutosaveIdleSecs:  30,
		BackupRetention:   3,
		DefaultCharset:    "utf-8",
		AutosaveIndexDir:  defaultAutosaveDir(),
	}
}

// Load reads and parses an `edlib.toml` tunables file, falling back to
// Default() field-by-field for anything the file leaves unset. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("docconfig: reading %s: %w", path, err)
	}

	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("docconfig: parsing %s: %w", path, err)
	}

	if parsed.RecentPointsDepth > 0 {
		cfg.RecentPointsDepth = parsed.RecentPointsDepth
	}
	if parsed.AutosaveEditCount > 0 {
		cfg.AutosaveEditCount = parsed.AutosaveEditCount
	}
	if parsed.AutosaveIdleSecs > 0 {
		cfg.AutosaveIdleSecs = parsed.AutosaveIdleSecs
		cfg.AutosaveIdle = time.Duration(parsed.AutosaveIdleSecs) * time.Second
	}
	if parsed.BackupRetention > 0 {
		cfg.BackupRetention = parsed.BackupRetention
	}
	if parsed.DefaultCharset != "" {
		cfg.DefaultCharset = parsed.DefaultCharset
	}
	if parsed.AutosaveIndexDir != "" {
		cfg.AutosaveIndexDir = parsed.AutosaveIndexDir
	}
	return cfg, nil
}

// defaultAutosaveDir resolves $EDLIB_AUTOSAVE, falling back to
// $HOME/.edlib_autosave (spec §6 "Autosave layout").
func defaultAutosaveDir() string {
	if dir := os.Getenv("EDLIB_AUTOSAVE"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edlib_autosave"
	}
	return home + "/.edlib_autosave"
}
