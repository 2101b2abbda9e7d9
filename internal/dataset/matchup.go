package dataset

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/provider"
)

// HomeCourtAdvantage is the efficiency-margin bonus for the home team, in
// points per 100 possessions.
const HomeCourtAdvantage = 3.5

// Site is where team A plays.
type Site string

const (
	SiteNeutral Site = "neutral"
	SiteHome    Site = "home"
	SiteAway    Site = "away"
)

// ParseSite accepts "", neutral, home or away.
func ParseSite(s string) (Site, error) {
	switch Site(s) {
	case "", SiteNeutral:
		return SiteNeutral, nil
	case SiteHome, SiteAway:
		return Site(s), nil
	}
	return "", errors.Mark(errors.Newf("unknown site %q", s), ErrInvalidQuery)
}

// Edges compares team A against team B; positive favors A.
type Edges struct {
	Efficiency float64 `json:"efficiency"`
	Offensive  float64 `json:"offensive"`
	Defensive  float64 `json:"defensive"`
	Tempo      float64 `json:"tempo"`
	EFG        float64 `json:"efg"`
	TOV        float64 `json:"tov"`
	REB        float64 `json:"reb"`
	FTR        float64 `json:"ftr"`
}

// Prediction is the head-to-head summary.
type Prediction struct {
	Site            Site    `json:"site"`
	WinProbabilityA float64 `json:"win_probability_a"`
	WinProbabilityB float64 `json:"win_probability_b"`
	PredictedMargin float64 `json:"predicted_margin"`
	Edges           Edges   `json:"edges"`
}

// Matchup is the response for a head-to-head request.
type Matchup struct {
	TeamA   provider.TeamSeason `json:"teamA"`
	TeamB   provider.TeamSeason `json:"teamB"`
	Matchup Prediction          `json:"matchup"`
}

// Matchup compares two teams already in the snapshot.
func (s *Store) Matchup(teamA, teamB string, site Site) (Matchup, error) {
	a, err := s.Team(teamA)
	if err != nil {
		return Matchup{}, err
	}
	b, err := s.Team(teamB)
	if err != nil {
		return Matchup{}, err
	}
	return Matchup{TeamA: a, TeamB: b, Matchup: Predict(&a, &b, site)}, nil
}

// Predict computes the margin, log5 win probability and edges for A vs B.
// A missing barthag counts as an average team (0.5).
func Predict(a, b *provider.TeamSeason, site Site) Prediction {
	em := a.AdjEM - b.AdjEM
	switch site {
	case SiteHome:
		em += HomeCourtAdvantage
	case SiteAway:
		em -= HomeCourtAdvantage
	}

	pa := Log5(barthag(a), barthag(b))
	return Prediction{
		Site:            site,
		WinProbabilityA: round(pa, 3),
		WinProbabilityB: round(1-pa, 3),
		PredictedMargin: round(em, 1),
		Edges: Edges{
			Efficiency: em,
			Offensive:  a.AdjO - b.AdjO,
			Defensive:  b.AdjD - a.AdjD,
			Tempo:      a.AdjTempo - b.AdjTempo,
			EFG:        a.EFGMargin - b.EFGMargin,
			TOV:        a.TOVEdge - b.TOVEdge,
			REB:        a.REBEdge - b.REBEdge,
			FTR:        a.FTRMargin - b.FTRMargin,
		},
	}
}

// Log5 is the probability that a team with win expectancy pa beats one
// with pb. Degenerate inputs (both 0 or both 1) yield 0.5.
func Log5(pa, pb float64) float64 {
	den := pa + pb - 2*pa*pb
	if den == 0 {
		return 0.5
	}
	return (pa - pa*pb) / den
}

func barthag(t *provider.TeamSeason) float64 {
	if t.Barthag == nil || *t.Barthag == 0 {
		return 0.5
	}
	return *t.Barthag
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
