// Package pipeline runs the full unification: read every source, resolve
// identities, merge, derive margins, and write the snapshot.
package pipeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/derive"
	"github.com/albapepper/cbb-data/internal/emit"
	"github.com/albapepper/cbb-data/internal/identity"
	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/logo"
	"github.com/albapepper/cbb-data/internal/merge"
	"github.com/albapepper/cbb-data/internal/provider"
	"github.com/albapepper/cbb-data/internal/provider/cbbanalytics"
	"github.com/albapepper/cbb-data/internal/provider/kenpom"
	"github.com/albapepper/cbb-data/internal/provider/torvik"
	"github.com/albapepper/cbb-data/internal/source"
)

// Inputs names every file the pipeline reads and writes.
type Inputs struct {
	MappingPath string
	TorvikPath  string
	KenPomPath  string
	CBBAPath    string
	LogoDir     string
	OutputPath  string
	Season      string

	// Now defaults to time.Now.
	Now func() time.Time
	// DryRun skips the final write.
	DryRun bool
}

// Result summarizes one run.
type Result struct {
	Rows       map[provider.SourceID]int
	Merge      merge.Result
	TeamCount  int
	Metadata   provider.Metadata
	Top        []provider.TeamSeason
	OutputPath string
	Bytes      int
	Duration   time.Duration
}

type sourceReader struct {
	id      provider.SourceID
	spec    source.Spec
	observe func(source.Record) provider.Observation
}

// Run executes the pipeline once. Any source or mapping failure aborts the
// run before the output file is touched.
func Run(ctx context.Context, in Inputs, logger *logging.Logger) (Result, error) {
	start := time.Now()
	now := in.Now
	if now == nil {
		now = time.Now
	}
	result := Result{Rows: make(map[provider.SourceID]int), OutputPath: in.OutputPath}

	mapping, err := identity.LoadMapping(in.MappingPath)
	if err != nil {
		return result, err
	}
	logger.Info("Loaded team name mapping", "path", in.MappingPath, "entries", mapping.Len())

	readers := []sourceReader{
		{provider.Torvik, torvik.Spec(in.TorvikPath), torvik.Observe},
		{provider.KenPom, kenpom.Spec(in.KenPomPath), kenpom.Observe},
		{provider.CBBAnalytics, cbbanalytics.Spec(in.CBBAPath), cbbanalytics.Observe},
	}

	// Read everything before merging so a bad file never yields partial output.
	inputs := make(merge.Inputs, len(readers))
	for _, r := range readers {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, "pipeline cancelled")
		}
		records, err := source.Read(r.spec)
		if err != nil {
			return result, errors.Wrapf(err, "read %s", r.id)
		}
		obs := make([]provider.Observation, 0, len(records))
		for _, rec := range records {
			obs = append(obs, r.observe(rec))
		}
		inputs[r.id] = obs
		result.Rows[r.id] = len(obs)
		logger.Info("Read source", "source", r.id, "path", r.spec.Path, "rows", len(obs))
	}

	logos, err := logo.Load(in.LogoDir)
	if err != nil {
		logger.Warn("Logo directory unavailable, using default logo", "dir", in.LogoDir, "error", err)
	}

	ts := now()
	env := merge.Env{Season: in.Season, Today: ts.Format(time.DateOnly), Logos: logos}
	table, mres := merge.Run(merge.DefaultPlan(), inputs, identity.NewResolver(mapping), env, logger)
	result.Merge = mres
	logger.Info("Merged sources", "teams", table.Len(), "summary", mres.Summary())
	if n := len(mres.FallbackNames); n > 0 {
		logger.Warn("Team names missing from mapping", "count", n)
	}

	records := table.Records()
	derive.All(records)

	ds := emit.Build(records, in.Season, ts)
	result.TeamCount = ds.Metadata.TeamCount
	result.Metadata = ds.Metadata
	top := min(5, len(ds.Teams))
	result.Top = append([]provider.TeamSeason(nil), ds.Teams[:top]...)

	if err := ctx.Err(); err != nil {
		return result, errors.Wrap(err, "pipeline cancelled")
	}

	if in.DryRun {
		logger.Info("Dry run, snapshot not written", "teams", result.TeamCount)
	} else {
		n, err := emit.Write(in.OutputPath, ds)
		if err != nil {
			return result, errors.Wrapf(err, "write snapshot %s", in.OutputPath)
		}
		result.Bytes = n
		logger.Info("Wrote snapshot",
			"path", in.OutputPath,
			"teams", result.TeamCount,
			"size_kb", float64(n)/1024,
			"kenpom", ds.Metadata.Sources.KenPom,
			"torvik", ds.Metadata.Sources.Torvik,
			"cbb_analytics", ds.Metadata.Sources.CBBAnalytics,
		)
	}

	for _, t := range result.Top {
		logger.Info("Top team", "rank", t.Rank, "team", t.TeamName, "adj_em", t.AdjEM)
	}
	result.Duration = time.Since(start)
	return result, nil
}
