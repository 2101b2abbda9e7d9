package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/provider"
	"github.com/albapepper/cbb-data/internal/source"
)

const mappingJSON = `{
  "Duke": {"slug": "duke", "display": "Duke", "aliases": ["Duke Blue Devils"]},
  "Connecticut": {"slug": "uconn", "display": "UConn", "aliases": ["UConn", "CONN"]},
  "Houston": {"slug": "houston", "display": "Houston", "aliases": []}
}`

const torvikCSV = `team_name,conference,date,games,record,rank,adj_oe,adj_de,adj_tempo,barthag,wab,efg_pct,efg_pct_d,tor,tord,orb,drb,ftr,ftrd,two_p_pct,two_p_pct_d,three_p_pct,three_p_pct_d,three_pr,three_prd
Duke,ACC,2026-02-28,28,24-4,2,120,95,66.1,0.95,6.2,55.2%,46.1%,15.0%,19.2%,34.1%,27.2%,33.0%,26.5%,56.0%,45.1%,36.2%,31.4%,40.2%,35.9%
UConn,BE,2026-02-28,27,22-5,4,119.5,96.1,64.8,0.93,,54.1,47.3,16.1,18.0,33.2,28.0,30.4,27.7,,46.3,35.1,32.2,38.9,36.0
Mystery State,SWAC,,20,8-12,,98,108,70.2,0.22,-9.1,47.0%,52.0%,20.1%,16.0%,25.0%,31.0%,28.0%,35.0%,47.0%,52.0%,31.0%,35.5%,33.0%,37.0%
`

const kenpomCSV = `team_name,conference,date,rank,adj_em,adj_o,adj_d,adj_tempo,luck,sos_adj_em,ncsos_adj_em
Duke,ACC,2026-02-28,3,,118,94,65.9,0.021,9.8,3.1
Connecticut,BE,2026-02-28,5,21.4,119.9,98.5,64.2,-0.01,8.7,
Houston,B12,2026-02-28,1,31.2,122.5,91.3,62.0,0.005,11.1,4.2
`

const cbbaCSV = `Team Name,OrtgAdj,DRtgAdj,Pace,WAB,SOR,2P%,3P%,3PA Rate
Duke Blue Devils,125,80,70,,7,50,30,30
CONN,121,99,65,5.5,9,54,35.5,39
Gonzaga,117,97,69,4.4,12,57,36,37
`

func writeFixtures(t *testing.T) Inputs {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	logos := filepath.Join(dir, "logos")
	require.NoError(t, os.Mkdir(logos, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logos, "duke.png"), []byte("png"), 0o644))

	return Inputs{
		MappingPath: write("team-name-map.json", mappingJSON),
		TorvikPath:  write("torvik.csv", torvikCSV),
		KenPomPath:  write("kenpom.csv", kenpomCSV),
		CBBAPath:    write("cbba.csv", cbbaCSV),
		LogoDir:     logos,
		OutputPath:  filepath.Join(dir, "out", "teams.json"),
		Season:      "2025-26",
		Now:         func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.FromZap(zap.New(core)), logs
}

func readSnapshot(t *testing.T, path string) provider.Dataset {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var ds provider.Dataset
	require.NoError(t, sonic.Unmarshal(data, &ds))
	return ds
}

func teamByID(t *testing.T, ds provider.Dataset, id string) provider.TeamSeason {
	t.Helper()
	for _, team := range ds.Teams {
		if team.TeamID == id {
			return team
		}
	}
	require.Failf(t, "team not found", "%s", id)
	return provider.TeamSeason{}
}

func TestRun_EndToEnd(t *testing.T) {
	in := writeFixtures(t)
	logger, logs := observedLogger()

	res, err := Run(context.Background(), in, logger)
	require.NoError(t, err)
	assert.Equal(t, 4, res.TeamCount)
	assert.Equal(t, 3, res.Rows[provider.Torvik])
	assert.Positive(t, res.Bytes)
	require.Len(t, res.Top, 4)
	assert.Equal(t, "houston", res.Top[0].TeamID)

	ds := readSnapshot(t, in.OutputPath)
	assert.Equal(t, "2026-03-01T08:00:00.000Z", ds.Metadata.LastUpdated)
	assert.Equal(t, provider.SourceCounts{KenPom: 3, Torvik: 3, CBBAnalytics: 2}, ds.Metadata.Sources)

	ids := []string{}
	for _, team := range ds.Teams {
		ids = append(ids, team.TeamID)
	}
	assert.Equal(t, []string{"houston", "duke", "uconn", "mystery-state"}, ids)

	duke := teamByID(t, ds, "duke")
	assert.Equal(t, 118.0, duke.AdjO)
	assert.Equal(t, 94.0, duke.AdjD)
	assert.Equal(t, 24.0, duke.AdjEM)
	assert.Equal(t, 3, duke.Rank)
	assert.InDelta(t, 0.552, duke.EFG, 1e-12)
	assert.Equal(t, "/logos/duke.png", duke.LogoURL)
	assert.Equal(t, "24-4", duke.Record)
	assert.Equal(t, 28, duke.Games)
	assert.Equal(t, []string{"Duke Blue Devils"}, duke.TeamNameAlt)
	require.NotNil(t, duke.SOR, "gap filled by the supplemental source")
	assert.Equal(t, 7.0, *duke.SOR)
	assert.InDelta(t, 0.362, *duke.FG3Pct, 1e-12, "populated split is not overwritten")
	assert.Equal(t, provider.Sources{Torvik: true, KenPom: true, CBBAnalytics: true}, duke.Sources)

	uconn := teamByID(t, ds, "uconn")
	assert.Equal(t, 119.9, uconn.AdjO)
	assert.Equal(t, 21.4, uconn.AdjEM)
	require.NotNil(t, uconn.WAB)
	assert.Equal(t, 5.5, *uconn.WAB)
	assert.Nil(t, uconn.NCSOSAdjEM)
	assert.InDelta(t, 0.541, uconn.EFG, 1e-12, "bare points scaled like the %-suffixed rows")
	assert.InDelta(t, 0.473, uconn.EFGD, 1e-12)
	require.NotNil(t, uconn.FG2Pct)
	assert.InDelta(t, 0.54, *uconn.FG2Pct, 1e-12, "gap filled on the same scale")
	require.NotNil(t, uconn.FG3Pct)
	assert.InDelta(t, 0.351, *uconn.FG3Pct, 1e-12)

	houston := teamByID(t, ds, "houston")
	assert.Equal(t, provider.Sources{KenPom: true}, houston.Sources)
	assert.Nil(t, houston.WAB)
	assert.Equal(t, "2026-02-28", houston.LastUpdated)
	assert.Equal(t, "/logos/default.png", houston.LogoURL)

	mystery := teamByID(t, ds, "mystery-state")
	assert.Equal(t, provider.UnrankedRank, mystery.Rank)
	assert.Equal(t, "2026-03-01", mystery.LastUpdated)
	assert.Equal(t, "Mystery State", mystery.TeamName)

	for _, team := range ds.Teams {
		assert.Less(t, math.Abs(team.EFGMargin-(team.EFG-team.EFGD)), 1e-9)
		assert.Less(t, math.Abs(team.TOVEdge-(team.TOVD-team.TOV)), 1e-9)
		assert.Less(t, math.Abs(team.REBEdge-(team.ORB-team.DRB)), 1e-9)
		assert.Less(t, math.Abs(team.FTRMargin-(team.FTR-team.FTRD)), 1e-9)
	}

	fallbacks := logs.FilterMessage("Team name not in mapping, using slug fallback").All()
	require.Len(t, fallbacks, 2)
	assert.Equal(t, "Mystery State", fallbacks[0].ContextMap()["raw_name"])
	assert.Equal(t, "Gonzaga", fallbacks[1].ContextMap()["raw_name"])
	assert.Equal(t, 1, res.Merge.Pass(provider.CBBAnalytics).Orphaned)
}

func TestRun_Idempotent(t *testing.T) {
	in := writeFixtures(t)

	_, err := Run(context.Background(), in, logging.NewNop())
	require.NoError(t, err)
	first, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)

	_, err = Run(context.Background(), in, logging.NewNop())
	require.NoError(t, err)
	second, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_MissingSourceKeepsPreviousSnapshot(t *testing.T) {
	in := writeFixtures(t)
	_, err := Run(context.Background(), in, logging.NewNop())
	require.NoError(t, err)
	before, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)

	in.KenPomPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err = Run(context.Background(), in, logging.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "missing.csv")

	after, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_MalformedSourceWritesNothing(t *testing.T) {
	in := writeFixtures(t)
	require.NoError(t, os.WriteFile(in.CBBAPath, []byte("Team Name,SOR\nDuke,1,2,3\n"), 0o644))

	_, err := Run(context.Background(), in, logging.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrSourceMalformed))
	_, statErr := os.Stat(in.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_DryRun(t *testing.T) {
	in := writeFixtures(t)
	in.DryRun = true

	res, err := Run(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.TeamCount)
	assert.Zero(t, res.Bytes)
	_, statErr := os.Stat(in.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Cancelled(t *testing.T) {
	in := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, in, logging.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
