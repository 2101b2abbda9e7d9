package dataset

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/provider"
)

// snapshot is one immutable loaded document plus its lookup index.
type snapshot struct {
	ds      *provider.Dataset
	byID    map[string]int
	modTime time.Time
	version string
}

// Store serves the current snapshot to concurrent readers. Reload swaps
// in a new snapshot only after it validates, so readers never observe a
// partial document.
type Store struct {
	path   string
	logger *logging.Logger

	mu  sync.RWMutex
	cur *snapshot
}

// NewStore returns an empty store for the snapshot at path. Call Reload to
// load it.
func NewStore(path string, logger *logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// NewStoreFrom wraps an already-loaded dataset.
func NewStoreFrom(ds *provider.Dataset) *Store {
	s := &Store{}
	s.cur = newSnapshot(ds, time.Time{})
	return s
}

func newSnapshot(ds *provider.Dataset, modTime time.Time) *snapshot {
	byID := make(map[string]int, len(ds.Teams))
	for i := range ds.Teams {
		byID[ds.Teams[i].TeamID] = i
	}
	version := ds.Metadata.LastUpdated
	if !modTime.IsZero() {
		version += "@" + strconv.FormatInt(modTime.UnixNano(), 36)
	}
	return &snapshot{ds: ds, byID: byID, modTime: modTime, version: version}
}

// Path is the snapshot file the store reads.
func (s *Store) Path() string { return s.path }

// Reload re-reads the snapshot when its modification time changed. It
// reports whether a new snapshot was installed. On error the previous
// snapshot stays in place.
func (s *Store) Reload() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, errors.Wrapf(err, "stat snapshot %s", s.path)
	}

	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()
	if cur != nil && cur.modTime.Equal(info.ModTime()) {
		return false, nil
	}

	ds, err := Load(s.path)
	if err != nil {
		return false, err
	}

	next := newSnapshot(ds, info.ModTime())
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()

	s.logger.Info("Snapshot loaded",
		"path", s.path,
		"teams", ds.Metadata.TeamCount,
		"season", ds.Metadata.Season,
		"last_updated", ds.Metadata.LastUpdated)
	return true, nil
}

func (s *Store) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return nil, ErrNotLoaded
	}
	return s.cur, nil
}

// Loaded reports whether a snapshot is available.
func (s *Store) Loaded() bool {
	_, err := s.current()
	return err == nil
}

// Version identifies the loaded snapshot; it changes on every reload that
// installs a new document. Used to scope response cache keys.
func (s *Store) Version() string {
	snap, err := s.current()
	if err != nil {
		return ""
	}
	return snap.version
}

// Metadata returns the snapshot header.
func (s *Store) Metadata() (provider.Metadata, error) {
	snap, err := s.current()
	if err != nil {
		return provider.Metadata{}, err
	}
	return snap.ds.Metadata, nil
}

// Team looks up one team by teamId.
func (s *Store) Team(id string) (provider.TeamSeason, error) {
	snap, err := s.current()
	if err != nil {
		return provider.TeamSeason{}, err
	}
	i, ok := snap.byID[id]
	if !ok {
		return provider.TeamSeason{}, errors.Mark(errors.Newf("team %q", id), ErrTeamNotFound)
	}
	return snap.ds.Teams[i], nil
}
