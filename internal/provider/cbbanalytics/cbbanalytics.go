// Package cbbanalytics normalizes rows of the cleaned CBB Analytics export,
// the lowest-priority supplemental source.
package cbbanalytics

import (
	"github.com/albapepper/cbb-data/internal/normalize"
	"github.com/albapepper/cbb-data/internal/provider"
	"github.com/albapepper/cbb-data/internal/source"
)

// Column names in cbb_analytics_tableau_cleaned.csv.
const (
	ColTeamName  = "Team Name"
	ColOrtgAdj   = "OrtgAdj"
	ColDRtgAdj   = "DRtgAdj"
	ColPace      = "Pace"
	ColWAB       = "WAB"
	ColSOR       = "SOR"
	ColTwoPct    = "2P%"
	ColThreePct  = "3P%"
	ColThreeRate = "3PA Rate"
)

// Spec describes the CBB Analytics export at path.
func Spec(path string) source.Spec {
	return source.Spec{Name: string(provider.CBBAnalytics), Path: path, NameColumn: ColTeamName}
}

// Observe converts one CBB Analytics row. Shooting columns in this export are
// percentage points (34.1 meaning 34.1%), so they are scaled to fractions.
func Observe(rec source.Record) provider.Observation {
	return provider.Observation{
		RawName: rec.Value(ColTeamName),

		AdjO:     normalize.Number(rec.Value(ColOrtgAdj)),
		AdjD:     normalize.Number(rec.Value(ColDRtgAdj)),
		AdjTempo: normalize.Number(rec.Value(ColPace)),

		WAB: normalize.Number(rec.Value(ColWAB)),
		SOR: normalize.Number(rec.Value(ColSOR)),

		FG2Pct:  normalize.Points(rec.Value(ColTwoPct)),
		FG3Pct:  normalize.Points(rec.Value(ColThreePct)),
		FG3Rate: normalize.Points(rec.Value(ColThreeRate)),
	}
}
