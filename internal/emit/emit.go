// Package emit turns the merged table into the snapshot document and writes
// it to disk.
package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/provider"
)

// TimestampLayout is the metadata lastUpdated format: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Build sorts records by rank and attaches the metadata header. Records with
// equal rank keep their input order, so the sentinel rank sorts last in
// insertion order. The input slice is not reordered.
func Build(records []*provider.TeamSeason, season string, now time.Time) provider.Dataset {
	teams := make([]provider.TeamSeason, 0, len(records))
	for _, r := range records {
		t := *r
		if t.TeamNameAlt == nil {
			t.TeamNameAlt = []string{}
		}
		teams = append(teams, t)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Rank < teams[j].Rank
	})

	var counts provider.SourceCounts
	for i := range teams {
		for _, id := range provider.AllSources {
			if teams[i].Sources.Has(id) {
				counts.Add(id)
			}
		}
	}

	return provider.Dataset{
		Metadata: provider.Metadata{
			LastUpdated: now.UTC().Format(TimestampLayout),
			Season:      season,
			TeamCount:   len(teams),
			Sources:     counts,
		},
		Teams: teams,
	}
}

// Encode renders ds as 2-space indented JSON with a trailing newline.
// Nullable metrics encode as null; no field is omitted.
func Encode(ds provider.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := sonic.ConfigStd.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return nil, errors.Wrap(err, "encode dataset")
	}
	return buf.Bytes(), nil
}

// Write encodes ds and replaces the file at path atomically: the document
// goes to a temp file in the same directory, is synced, then renamed over
// path. On any error the existing file is left as it was. It returns the
// number of bytes written.
func Write(path string, ds provider.Dataset) (int, error) {
	data, err := Encode(ds)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrapf(err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return 0, errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return 0, errors.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, errors.Wrapf(err, "replace %s", path)
	}
	committed = true
	return len(data), nil
}
