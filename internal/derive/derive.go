// Package derive computes the four-factor margins of a merged record.
//
// Margins are never read from a source. They are computed once, after every
// merge pass has run, from the record's own four-factor fields.
package derive

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/provider"
)

// Tolerance is the largest difference Check accepts between a stored margin
// and its recomputed value.
const Tolerance = 1e-9

// Margins are the four derived edges.
type Margins struct {
	EFG float64 // eFG - eFG_d
	TOV float64 // tov_d - tov
	REB float64 // orb - drb
	FTR float64 // ftr - ftr_d
}

// Compute returns the margins of t without modifying it.
//
// drb is the team's own defensive rebound rate expressed as opponent
// offensive rebounds denied, so reb_edge is orb - drb directly.
func Compute(t *provider.TeamSeason) Margins {
	return Margins{
		EFG: t.EFG - t.EFGD,
		TOV: t.TOVD - t.TOV,
		REB: t.ORB - t.DRB,
		FTR: t.FTR - t.FTRD,
	}
}

// Apply overwrites the margin fields of t.
func Apply(t *provider.TeamSeason) {
	m := Compute(t)
	t.EFGMargin = m.EFG
	t.TOVEdge = m.TOV
	t.REBEdge = m.REB
	t.FTRMargin = m.FTR
}

// All applies to every record.
func All(records []*provider.TeamSeason) {
	for _, t := range records {
		Apply(t)
	}
}

// Check reports an error when a stored margin disagrees with the value
// recomputed from the four-factor fields.
func Check(t *provider.TeamSeason) error {
	m := Compute(t)
	for _, c := range []struct {
		name          string
		stored, fresh float64
	}{
		{"eFG_margin", t.EFGMargin, m.EFG},
		{"tov_edge", t.TOVEdge, m.TOV},
		{"reb_edge", t.REBEdge, m.REB},
		{"ftr_margin", t.FTRMargin, m.FTR},
	} {
		if math.IsNaN(c.stored) || math.Abs(c.stored-c.fresh) >= Tolerance {
			return errors.Newf("%s: %s is %v, four factors give %v", t.TeamID, c.name, c.stored, c.fresh)
		}
	}
	return nil
}
