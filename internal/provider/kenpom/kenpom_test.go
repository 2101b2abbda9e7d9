package kenpom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/cbb-data/internal/source"
)

func TestObserve_DerivesAdjEM(t *testing.T) {
	obs := Observe(source.Record{Fields: map[string]string{
		ColTeamName: "Duke",
		ColAdjO:     "118",
		ColAdjD:     "94",
		ColRank:     "3",
	}})

	require.NotNil(t, obs.AdjEM)
	assert.Equal(t, 24.0, *obs.AdjEM)
	require.NotNil(t, obs.Rank)
	assert.Equal(t, 3, *obs.Rank)
	assert.Nil(t, obs.Luck)
}

func TestObserve_KeepsReportedAdjEM(t *testing.T) {
	obs := Observe(source.Record{Fields: map[string]string{
		ColTeamName:   "Houston",
		ColAdjEM:      "+30.15",
		ColAdjO:       "121.4",
		ColAdjD:       "91.3",
		ColLuck:       "-0.012",
		ColSOSAdjEM:   "10.2",
		ColNCSOSAdjEM: "0",
	}})

	require.NotNil(t, obs.AdjEM)
	assert.Equal(t, 30.15, *obs.AdjEM)
	require.NotNil(t, obs.Luck)
	assert.Equal(t, -0.012, *obs.Luck)
	require.NotNil(t, obs.NCSOSAdjEM, "observed zero is not null")
	assert.Equal(t, 0.0, *obs.NCSOSAdjEM)
}

func TestObserve_HalfEfficiencyLeavesAdjEMNull(t *testing.T) {
	obs := Observe(source.Record{Fields: map[string]string{ColTeamName: "Duke", ColAdjO: "118"}})
	assert.Nil(t, obs.AdjEM)
	assert.Nil(t, obs.AdjD)
}
