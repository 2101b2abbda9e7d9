// Package torvik normalizes rows of the Bart Torvik export. Torvik is the
// Four-Factors source: it seeds the base record for every team it lists.
package torvik

import (
	"github.com/albapepper/cbb-data/internal/normalize"
	"github.com/albapepper/cbb-data/internal/provider"
	"github.com/albapepper/cbb-data/internal/source"
)

// Column names in torvik_tableau.csv.
const (
	ColTeamName   = "team_name"
	ColConference = "conference"
	ColDate       = "date"
	ColGames      = "games"
	ColRecord     = "record"
	ColRank       = "rank"
	ColAdjOE      = "adj_oe"
	ColAdjDE      = "adj_de"
	ColAdjTempo   = "adj_tempo"
	ColBarthag    = "barthag"
	ColWAB        = "wab"

	ColEFG  = "efg_pct"
	ColEFGD = "efg_pct_d"
	ColTOR  = "tor"
	ColTORD = "tord"
	ColORB  = "orb"
	ColDRB  = "drb"
	ColFTR  = "ftr"
	ColFTRD = "ftrd"

	ColTwoPct     = "two_p_pct"
	ColTwoPctD    = "two_p_pct_d"
	ColThreePct   = "three_p_pct"
	ColThreePctD  = "three_p_pct_d"
	ColThreeRate  = "three_pr"
	ColThreeRateD = "three_prd"
)

// Spec describes the Torvik export at path.
func Spec(path string) source.Spec {
	return source.Spec{Name: string(provider.Torvik), Path: path, NameColumn: ColTeamName}
}

// Observe converts one Torvik row. Four-factor and shooting columns in this
// export are percentage points (55.2 meaning 55.2%), so they are scaled to
// fractions; "55.2%" lands on the same 0.552.
func Observe(rec source.Record) provider.Observation {
	obs := provider.Observation{
		RawName:    rec.Value(ColTeamName),
		Conference: rec.Value(ColConference),
		Date:       rec.Value(ColDate),
		Record:     rec.Value(ColRecord),

		AdjO:     normalize.Number(rec.Value(ColAdjOE)),
		AdjD:     normalize.Number(rec.Value(ColAdjDE)),
		AdjTempo: normalize.Number(rec.Value(ColAdjTempo)),
		Barthag:  normalize.Number(rec.Value(ColBarthag)),
		WAB:      normalize.Number(rec.Value(ColWAB)),

		EFG:  normalize.Points(rec.Value(ColEFG)),
		EFGD: normalize.Points(rec.Value(ColEFGD)),
		TOV:  normalize.Points(rec.Value(ColTOR)),
		TOVD: normalize.Points(rec.Value(ColTORD)),
		ORB:  normalize.Points(rec.Value(ColORB)),
		DRB:  normalize.Points(rec.Value(ColDRB)),
		FTR:  normalize.Points(rec.Value(ColFTR)),
		FTRD: normalize.Points(rec.Value(ColFTRD)),

		FG2Pct:   normalize.Points(rec.Value(ColTwoPct)),
		FG2PctD:  normalize.Points(rec.Value(ColTwoPctD)),
		FG3Pct:   normalize.Points(rec.Value(ColThreePct)),
		FG3PctD:  normalize.Points(rec.Value(ColThreePctD)),
		FG3Rate:  normalize.Points(rec.Value(ColThreeRate)),
		FG3RateD: normalize.Points(rec.Value(ColThreeRateD)),
	}

	if n, ok := normalize.Int(rec.Value(ColGames)); ok {
		obs.Games = &n
	}
	if r, ok := normalize.Rank(rec.Value(ColRank)); ok {
		obs.Rank = &r
	}
	return obs
}
