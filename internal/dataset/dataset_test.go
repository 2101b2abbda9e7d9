package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/cbb-data/internal/derive"
	"github.com/albapepper/cbb-data/internal/emit"
	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/provider"
)

func f(v float64) *float64 { return &v }

func fixture() provider.Dataset {
	recs := []*provider.TeamSeason{
		{TeamID: "duke", TeamName: "Duke", TeamNameAlt: []string{"Duke Blue Devils"}, Conference: "ACC", Rank: 3,
			AdjEM: 24, AdjO: 118, AdjD: 94, AdjTempo: 66, EFG: 0.552, EFGD: 0.461, TOV: 0.15, TOVD: 0.19,
			ORB: 0.34, DRB: 0.27, FTR: 0.33, FTRD: 0.26, Barthag: f(0.95), WAB: f(6.2)},
		{TeamID: "houston", TeamName: "Houston", Conference: "B12", Rank: 1,
			AdjEM: 31.2, AdjO: 122.5, AdjD: 91.3, AdjTempo: 62, EFG: 0.53, EFGD: 0.44, Barthag: f(0.97)},
		{TeamID: "uconn", TeamName: "UConn", TeamNameAlt: []string{"Connecticut", "CONN"}, Conference: "BE", Rank: 5,
			AdjEM: 21.4, AdjO: 119.9, AdjD: 98.5, AdjTempo: 64.2, WAB: f(5.5)},
		{TeamID: "mystery-state", TeamName: "Mystery State", Conference: "acc", Rank: provider.UnrankedRank,
			AdjEM: -10, AdjO: 98, AdjD: 108},
	}
	derive.All(recs)
	return emit.Build(recs, "2025-26", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
}

func writeSnapshot(t *testing.T, ds provider.Dataset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.json")
	_, err := emit.Write(path, ds)
	require.NoError(t, err)
	return path
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(writeSnapshot(t, fixture()), logging.NewNop())
	changed, err := s.Reload()
	require.NoError(t, err)
	require.True(t, changed)
	return s
}

func ids(teams []provider.TeamSeason) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.TeamID)
	}
	return out
}

func TestLoad_RoundTrip(t *testing.T) {
	ds, err := Load(writeSnapshot(t, fixture()))
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Metadata.TeamCount)
	assert.Equal(t, []string{"houston", "duke", "uconn", "mystery-state"}, ids(ds.Teams))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*provider.Dataset)
		want   string
	}{
		{"team count", func(ds *provider.Dataset) { ds.Metadata.TeamCount = 9 }, "teamCount"},
		{"unsorted", func(ds *provider.Dataset) { ds.Teams[0].Rank = 50 }, "not sorted"},
		{"duplicate", func(ds *provider.Dataset) { ds.Teams[1].TeamID = "houston" }, "duplicate"},
		{"zero rank", func(ds *provider.Dataset) { ds.Teams[0].Rank = 0 }, "not positive"},
		{"tampered margin", func(ds *provider.Dataset) { ds.Teams[1].EFGMargin = 0.5 }, "eFG_margin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := fixture()
			tt.mutate(&ds)
			err := Validate(&ds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte(`{"metadata": [}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSnapshot))
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"), logging.NewNop())
	assert.False(t, s.Loaded())
	_, err := s.Team("duke")
	assert.True(t, errors.Is(err, ErrNotLoaded))

	_, err = s.Reload()
	assert.Error(t, err)
}

func TestStore_ReloadKeepsPreviousOnBadFile(t *testing.T) {
	s := loadedStore(t)
	v1 := s.Version()

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged mtime is a no-op")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0o644))
	require.NoError(t, os.Chtimes(s.Path(), later, later))
	_, err = s.Reload()
	require.Error(t, err)
	assert.Equal(t, v1, s.Version())

	ds := fixture()
	ds.Metadata.Season = "2026-27"
	_, err = emit.Write(s.Path(), ds)
	require.NoError(t, err)
	evenLater := later.Add(time.Minute)
	require.NoError(t, os.Chtimes(s.Path(), evenLater, evenLater))

	changed, err = s.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, v1, s.Version())
	meta, err := s.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "2026-27", meta.Season)
}

func TestStore_Team(t *testing.T) {
	s := loadedStore(t)

	duke, err := s.Team("duke")
	require.NoError(t, err)
	assert.Equal(t, "Duke", duke.TeamName)

	_, err = s.Team("gonzaga")
	assert.True(t, errors.Is(err, ErrTeamNotFound))
}

func TestStore_Teams(t *testing.T) {
	s := loadedStore(t)

	all, err := s.Teams(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	acc, err := s.Teams(Filter{Conference: "ACC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"duke", "mystery-state"}, ids(acc))

	conn, err := s.Teams(Filter{Search: "connect"})
	require.NoError(t, err)
	assert.Equal(t, []string{"uconn"}, ids(conn))

	byID, err := s.Teams(Filter{Search: "STATE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mystery-state"}, ids(byID))
}

func TestStore_Rankings(t *testing.T) {
	s := loadedStore(t)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"default", Query{}, []string{"houston", "duke", "uconn", "mystery-state"}},
		{"adjO desc", Query{Sort: "adjO", Desc: true}, []string{"houston", "uconn", "duke", "mystery-state"}},
		{"adjD asc", Query{Sort: "adjD"}, []string{"houston", "duke", "uconn", "mystery-state"}},
		{"wab nulls last asc", Query{Sort: "wab"}, []string{"uconn", "duke", "houston", "mystery-state"}},
		{"wab nulls last desc", Query{Sort: "wab", Desc: true}, []string{"duke", "uconn", "houston", "mystery-state"}},
		{"name", Query{Sort: "teamName"}, []string{"duke", "houston", "mystery-state", "uconn"}},
		{"filtered", Query{Sort: "adjEM", Filter: Filter{Conference: "acc"}}, []string{"mystery-state", "duke"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Rankings(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	_, err := s.Rankings(Query{Sort: "password"})
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestStore_Conferences(t *testing.T) {
	s := loadedStore(t)
	confs, err := s.Conferences()
	require.NoError(t, err)
	assert.Equal(t, []Conference{
		{Name: "ACC", TeamCount: 1},
		{Name: "B12", TeamCount: 1},
		{Name: "BE", TeamCount: 1},
		{Name: "acc", TeamCount: 1},
	}, confs)
}

func TestStore_Matchup(t *testing.T) {
	s := loadedStore(t)

	m, err := s.Matchup("duke", "uconn", SiteHome)
	require.NoError(t, err)
	assert.Equal(t, "duke", m.TeamA.TeamID)
	assert.Equal(t, SiteHome, m.Matchup.Site)
	assert.InDelta(t, 24-21.4+3.5, m.Matchup.Edges.Efficiency, 1e-9)
	assert.Equal(t, 6.1, m.Matchup.PredictedMargin)
	// UConn has no barthag, so it counts as 0.5 and log5 reduces to Duke's own.
	assert.Equal(t, 0.95, m.Matchup.WinProbabilityA)
	assert.Equal(t, 0.05, m.Matchup.WinProbabilityB)
	assert.InDelta(t, 98.5-94, m.Matchup.Edges.Defensive, 1e-9)

	_, err = s.Matchup("duke", "gonzaga", SiteNeutral)
	assert.True(t, errors.Is(err, ErrTeamNotFound))
}

func TestPredict_Away(t *testing.T) {
	a := &provider.TeamSeason{AdjEM: 10}
	b := &provider.TeamSeason{AdjEM: 10}
	p := Predict(a, b, SiteAway)
	assert.Equal(t, -3.5, p.PredictedMargin)
	assert.Equal(t, 0.5, p.WinProbabilityA)
}

func TestLog5(t *testing.T) {
	assert.InDelta(t, 0.5, Log5(0.7, 0.7), 1e-12)
	assert.InDelta(t, 0.7, Log5(0.7, 0.5), 1e-12)
	assert.Equal(t, 0.5, Log5(1, 1))
	assert.Equal(t, 0.5, Log5(0, 0))
}

func TestParseSite(t *testing.T) {
	site, err := ParseSite("")
	require.NoError(t, err)
	assert.Equal(t, SiteNeutral, site)

	site, err = ParseSite("away")
	require.NoError(t, err)
	assert.Equal(t, SiteAway, site)

	_, err = ParseSite("moon")
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}
