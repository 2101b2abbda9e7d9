// Package kenpom normalizes rows of the KenPom export. KenPom is the
// authoritative source for core ratings and the luck/schedule metrics.
package kenpom

import (
	"github.com/albapepper/cbb-data/internal/normalize"
	"github.com/albapepper/cbb-data/internal/provider"
	"github.com/albapepper/cbb-data/internal/source"
)

// Column names in kenpom_tableau.csv.
const (
	ColTeamName   = "team_name"
	ColConference = "conference"
	ColDate       = "date"
	ColRank       = "rank"
	ColAdjEM      = "adj_em"
	ColAdjO       = "adj_o"
	ColAdjD       = "adj_d"
	ColAdjTempo   = "adj_tempo"
	ColLuck       = "luck"
	ColSOSAdjEM   = "sos_adj_em"
	ColNCSOSAdjEM = "ncsos_adj_em"
)

// Spec describes the KenPom export at path.
func Spec(path string) source.Spec {
	return source.Spec{Name: string(provider.KenPom), Path: path, NameColumn: ColTeamName}
}

// Observe converts one KenPom row. When the export carries no adj_em value
// but has both efficiencies, adjEM is their difference.
func Observe(rec source.Record) provider.Observation {
	obs := provider.Observation{
		RawName:    rec.Value(ColTeamName),
		Conference: rec.Value(ColConference),
		Date:       rec.Value(ColDate),

		AdjEM:    normalize.Number(rec.Value(ColAdjEM)),
		AdjO:     normalize.Number(rec.Value(ColAdjO)),
		AdjD:     normalize.Number(rec.Value(ColAdjD)),
		AdjTempo: normalize.Number(rec.Value(ColAdjTempo)),

		Luck:       normalize.Number(rec.Value(ColLuck)),
		SOSAdjEM:   normalize.Number(rec.Value(ColSOSAdjEM)),
		NCSOSAdjEM: normalize.Number(rec.Value(ColNCSOSAdjEM)),
	}

	if obs.AdjEM == nil && obs.AdjO != nil && obs.AdjD != nil {
		obs.AdjEM = provider.Ptr(*obs.AdjO - *obs.AdjD)
	}
	if r, ok := normalize.Rank(rec.Value(ColRank)); ok {
		obs.Rank = &r
	}
	return obs
}
