// Package dataset is the read side of the snapshot. It loads and validates
// the emitted document and answers the lookups, filters and sorts the
// presentation layer needs. It never recomputes merge results or margins.
package dataset

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/derive"
	"github.com/albapepper/cbb-data/internal/provider"
)

var (
	// ErrInvalidSnapshot marks a snapshot that cannot be decoded or breaks
	// the emitter's guarantees.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrTeamNotFound is returned for an unknown teamId.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidQuery marks a bad sort field, direction or site.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotLoaded is returned before the first successful load.
	ErrNotLoaded = errors.New("snapshot not loaded")
)

// Load reads and validates the snapshot at path.
func Load(path string) (*provider.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", path)
	}
	ds, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	return ds, nil
}

// Decode parses and validates a snapshot document.
func Decode(data []byte) (*provider.Dataset, error) {
	var ds provider.Dataset
	if err := sonic.Unmarshal(data, &ds); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode"), ErrInvalidSnapshot)
	}
	if err := Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the invariants every emitted snapshot satisfies: unique
// team ids, positive ranks in ascending order, a matching team count and
// margins that agree with the four-factor fields.
func Validate(ds *provider.Dataset) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Mark(errors.Newf(format, args...), ErrInvalidSnapshot)
	}

	if ds.Metadata.TeamCount != len(ds.Teams) {
		return invalid("metadata teamCount %d, document has %d teams", ds.Metadata.TeamCount, len(ds.Teams))
	}
	seen := make(map[string]struct{}, len(ds.Teams))
	for i := range ds.Teams {
		t := &ds.Teams[i]
		if t.TeamID == "" {
			return invalid("team at index %d has no teamId", i)
		}
		if _, dup := seen[t.TeamID]; dup {
			return invalid("duplicate teamId %q", t.TeamID)
		}
		seen[t.TeamID] = struct{}{}

		if t.Rank < 1 {
			return invalid("%s: rank %d is not positive", t.TeamID, t.Rank)
		}
		if i > 0 && ds.Teams[i-1].Rank > t.Rank {
			return invalid("teams not sorted by rank at %s", t.TeamID)
		}
		if err := derive.Check(t); err != nil {
			return errors.Mark(err, ErrInvalidSnapshot)
		}
	}
	return nil
}
