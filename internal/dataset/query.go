package dataset

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/provider"
)

// Filter narrows the team list.
type Filter struct {
	Conference string // exact, case-insensitive
	Search     string // substring of teamName, any alternate name or teamId
}

func (f Filter) match(t *provider.TeamSeason) bool {
	if f.Conference != "" && !strings.EqualFold(t.Conference, f.Conference) {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if strings.Contains(strings.ToLower(t.TeamName), q) || strings.Contains(t.TeamID, q) {
		return true
	}
	for _, alt := range t.TeamNameAlt {
		if strings.Contains(strings.ToLower(alt), q) {
			return true
		}
	}
	return false
}

// Query is a rankings request: a filter plus a sort.
type Query struct {
	Filter
	Sort string // a SortFields key; default "rank"
	Desc bool
}

// sortKey extracts a comparable value. ok=false means null; nulls sort last
// in both directions.
type sortKey struct {
	num func(*provider.TeamSeason) (float64, bool)
	str func(*provider.TeamSeason) string
}

func numKey(fn func(*provider.TeamSeason) float64) sortKey {
	return sortKey{num: func(t *provider.TeamSeason) (float64, bool) { return fn(t), true }}
}

func optKey(fn func(*provider.TeamSeason) *float64) sortKey {
	return sortKey{num: func(t *provider.TeamSeason) (float64, bool) {
		v := fn(t)
		if v == nil {
			return 0, false
		}
		return *v, true
	}}
}

// SortFields whitelists the sortable fields by their JSON names.
var SortFields = map[string]sortKey{
	"rank":       numKey(func(t *provider.TeamSeason) float64 { return float64(t.Rank) }),
	"adjEM":      numKey(func(t *provider.TeamSeason) float64 { return t.AdjEM }),
	"adjO":       numKey(func(t *provider.TeamSeason) float64 { return t.AdjO }),
	"adjD":       numKey(func(t *provider.TeamSeason) float64 { return t.AdjD }),
	"adjTempo":   numKey(func(t *provider.TeamSeason) float64 { return t.AdjTempo }),
	"eFG":        numKey(func(t *provider.TeamSeason) float64 { return t.EFG }),
	"tov":        numKey(func(t *provider.TeamSeason) float64 { return t.TOV }),
	"orb":        numKey(func(t *provider.TeamSeason) float64 { return t.ORB }),
	"ftr":        numKey(func(t *provider.TeamSeason) float64 { return t.FTR }),
	"eFG_d":      numKey(func(t *provider.TeamSeason) float64 { return t.EFGD }),
	"tov_d":      numKey(func(t *provider.TeamSeason) float64 { return t.TOVD }),
	"drb":        numKey(func(t *provider.TeamSeason) float64 { return t.DRB }),
	"ftr_d":      numKey(func(t *provider.TeamSeason) float64 { return t.FTRD }),
	"eFG_margin": numKey(func(t *provider.TeamSeason) float64 { return t.EFGMargin }),
	"tov_edge":   numKey(func(t *provider.TeamSeason) float64 { return t.TOVEdge }),
	"reb_edge":   numKey(func(t *provider.TeamSeason) float64 { return t.REBEdge }),
	"ftr_margin": numKey(func(t *provider.TeamSeason) float64 { return t.FTRMargin }),
	"wab":        optKey(func(t *provider.TeamSeason) *float64 { return t.WAB }),
	"sor":        optKey(func(t *provider.TeamSeason) *float64 { return t.SOR }),
	"barthag":    optKey(func(t *provider.TeamSeason) *float64 { return t.Barthag }),
	"luck":       optKey(func(t *provider.TeamSeason) *float64 { return t.Luck }),
	"sos_adjEM":  optKey(func(t *provider.TeamSeason) *float64 { return t.SOSAdjEM }),
	"fg3_pct":    optKey(func(t *provider.TeamSeason) *float64 { return t.FG3Pct }),
	"teamName":   {str: func(t *provider.TeamSeason) string { return strings.ToLower(t.TeamName) }},
	"conference": {str: func(t *provider.TeamSeason) string { return strings.ToLower(t.Conference) }},
}

// Teams returns the teams matching f in snapshot (rank) order.
func (s *Store) Teams(f Filter) ([]provider.TeamSeason, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	out := make([]provider.TeamSeason, 0, len(snap.ds.Teams))
	for i := range snap.ds.Teams {
		if f.match(&snap.ds.Teams[i]) {
			out = append(out, snap.ds.Teams[i])
		}
	}
	return out, nil
}

// Rankings filters and sorts. Ties keep snapshot order.
func (s *Store) Rankings(q Query) ([]provider.TeamSeason, error) {
	field := q.Sort
	if field == "" {
		field = "rank"
	}
	key, ok := SortFields[field]
	if !ok {
		return nil, errors.Mark(errors.Newf("unknown sort field %q", field), ErrInvalidQuery)
	}

	teams, err := s.Teams(q.Filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(teams, func(i, j int) bool {
		a, b := &teams[i], &teams[j]
		if key.str != nil {
			if q.Desc {
				return key.str(a) > key.str(b)
			}
			return key.str(a) < key.str(b)
		}
		av, aok := key.num(a)
		bv, bok := key.num(b)
		if aok != bok {
			return aok
		}
		if q.Desc {
			return av > bv
		}
		return av < bv
	})
	return teams, nil
}

// Conference is one conference and how many teams the snapshot lists in it.
type Conference struct {
	Name      string `json:"name"`
	TeamCount int    `json:"teamCount"`
}

// Conferences lists every non-empty conference, alphabetically.
func (s *Store) Conferences() ([]Conference, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for i := range snap.ds.Teams {
		if c := snap.ds.Teams[i].Conference; c != "" {
			counts[c]++
		}
	}
	out := make([]Conference, 0, len(counts))
	for name, n := range counts {
		out = append(out, Conference{Name: name, TeamCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
