package cbbanalytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/cbb-data/internal/source"
)

func TestObserve(t *testing.T) {
	obs := Observe(source.Record{Fields: map[string]string{
		ColTeamName:  "Duke",
		ColOrtgAdj:   "119.2",
		ColPace:      "67.9",
		ColWAB:       "",
		ColSOR:       "6",
		ColTwoPct:    "55",
		ColThreePct:  "36.5%",
		ColThreeRate: "41.2",
	}})

	assert.Equal(t, "Duke", obs.RawName)
	require.NotNil(t, obs.AdjO)
	assert.Equal(t, 119.2, *obs.AdjO)
	assert.Nil(t, obs.AdjD)
	assert.Nil(t, obs.WAB, "empty WAB stays null")
	require.NotNil(t, obs.SOR)
	assert.Equal(t, 6.0, *obs.SOR)

	require.NotNil(t, obs.FG2Pct)
	assert.InDelta(t, 0.55, *obs.FG2Pct, 1e-12)
	require.NotNil(t, obs.FG3Pct)
	assert.InDelta(t, 0.365, *obs.FG3Pct, 1e-12)
	require.NotNil(t, obs.FG3Rate)
	assert.InDelta(t, 0.412, *obs.FG3Rate, 1e-12)
}

func TestObserve_NoRatingsColumns(t *testing.T) {
	obs := Observe(source.Record{Fields: map[string]string{ColTeamName: "Duke"}})
	assert.True(t, obs.Empty())
	assert.Nil(t, obs.AdjTempo)
	assert.Nil(t, obs.Rank, "this export has no rank")
}
