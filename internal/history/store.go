// Package history handles durable usage-history persistence.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

// Store reads and writes the usage-history file. The file is read at
// startup and rewritten after a successful launch; it is never held open in
// between. Concurrent launcher instances race with last-writer-wins
// semantics, save is atomic so a crash mid-write never corrupts the file.
type Store struct {
	path string
	now  func() time.Time
}

// New returns a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads the persisted history. A missing, truncated, or unparseable
// file yields an empty map: history is an optimization, never a reason to
// refuse to start.
func (s *Store) Load() map[string]model.HistoryRecord {
	records := map[string]model.HistoryRecord{}
	if _, err := toml.DecodeFile(s.path, &records); err != nil {
		return map[string]model.HistoryRecord{}
	}
	return records
}

// Save serializes the full history mapping and atomically replaces the
// persisted file by writing a sibling temp file and renaming it into place.
func (s *Store) Save(records map[string]model.HistoryRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "history-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	if err := toml.NewEncoder(tmp).Encode(records); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			// Best-effort close before cleanup.
			_ = cerr
		}
		if rerr := os.Remove(tmp.Name()); rerr != nil {
			// Best-effort cleanup of the temp file.
			_ = rerr
		}
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// RecordUse increments the use count for id, refreshes its last-used time,
// and persists the result. The history is re-read first so that an update
// applies on top of whatever another instance saved in the meantime.
func (s *Store) RecordUse(id string) error {
	records := s.Load()
	rec := records[id]
	rec.UseCount++
	rec.LastUsed = s.now()
	records[id] = rec
	return s.Save(records)
}
