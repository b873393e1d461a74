package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"airmail/internal/episodes"
	"airmail/internal/logging"
)

const (
	airedFile    = "aired_state.json"
	upcomingFile = "upcoming_state.json"
)

// Store persists the two notified-state documents as JSON files in a single
// directory. Each document is fully overwritten on save; writes go through a
// temp file and rename so an overlapping reader never observes a partial
// file.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.WithComponent(logger, "state"),
	}
}

// LoadAired reads the last-notified aired episode record. The second return
// is false when no record has been written yet.
func (s *Store) LoadAired() (episodes.AiredRecord, bool, error) {
	var rec episodes.AiredRecord
	ok, err := s.load(airedFile, &rec)
	return rec, ok, err
}

// SaveAired overwrites the aired-state document.
func (s *Store) SaveAired(rec episodes.AiredRecord) error {
	if err := s.save(airedFile, rec); err != nil {
		return err
	}
	s.logger.Debug("saved aired state",
		slog.Int("season", rec.Season),
		slog.Int("number", rec.Number))
	return nil
}

// LoadUpcoming reads the last-notified upcoming episode id sequence.
func (s *Store) LoadUpcoming() ([]int, bool, error) {
	var ids []int
	ok, err := s.load(upcomingFile, &ids)
	return ids, ok, err
}

// SaveUpcoming overwrites the upcoming-state document.
func (s *Store) SaveUpcoming(ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	if err := s.save(upcomingFile, ids); err != nil {
		return err
	}
	s.logger.Debug("saved upcoming state", slog.Int("count", len(ids)))
	return nil
}

func (s *Store) load(name string, dst any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) save(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
