// Package merge combines per-source observations into one record per team.
//
// A Plan is an ordered list of passes, one per source, each with a named
// strategy. Passes run strictly in order: later strategies decide what to do
// based on what earlier passes inserted, so the order is part of the result.
package merge

import (
	"fmt"
	"strings"

	"github.com/albapepper/cbb-data/internal/identity"
	"github.com/albapepper/cbb-data/internal/logging"
	"github.com/albapepper/cbb-data/internal/provider"
)

// Pass merges one source with one strategy.
type Pass struct {
	Source   provider.SourceID
	Strategy Strategy
}

// Plan is the priority-ordered list of passes.
type Plan []Pass

// DefaultPlan: Torvik seeds the base records, KenPom overwrites the core
// ratings it is authoritative for, CBB Analytics only fills gaps.
func DefaultPlan() Plan {
	return Plan{
		{Source: provider.Torvik, Strategy: SeedBase{}},
		{Source: provider.KenPom, Strategy: OverwriteAuthoritative{Ratings: CoreRatings, Owned: KenPomResume}},
		{Source: provider.CBBAnalytics, Strategy: FillMissingOnly{Fields: SupplementalGaps}},
	}
}

// Inputs holds the normalized rows of each source.
type Inputs map[provider.SourceID][]provider.Observation

// --------------------------------------------------------------------------
// Result
// --------------------------------------------------------------------------

// PassStats counts what one pass did.
type PassStats struct {
	Source    provider.SourceID
	Strategy  string
	Rows      int
	Created   int
	Replaced  int
	Updated   int
	Filled    int
	Unchanged int
	Orphaned  int
	Skipped   int // rows whose name produced no slug
	Fallbacks int // rows resolved by slugify rather than the mapping
	Empty     int // rows where every field failed normalization
}

// Result tracks counts from a merge run.
type Result struct {
	Passes []PassStats
	// FallbackNames lists distinct "source: raw name" pairs that missed the mapping.
	FallbackNames []string
}

// Pass returns the stats for src.
func (r *Result) Pass(src provider.SourceID) PassStats {
	for _, p := range r.Passes {
		if p.Source == src {
			return p
		}
	}
	return PassStats{Source: src}
}

// Summary returns a human-readable summary of the merge.
func (r *Result) Summary() string {
	parts := make([]string, 0, len(r.Passes))
	for _, p := range r.Passes {
		parts = append(parts, fmt.Sprintf(
			"%s[%s] rows=%d created=%d updated=%d filled=%d orphaned=%d fallbacks=%d",
			p.Source, p.Strategy, p.Rows, p.Created, p.Updated, p.Filled, p.Orphaned, p.Fallbacks,
		))
	}
	return strings.Join(parts, " ")
}

// --------------------------------------------------------------------------
// Run
// --------------------------------------------------------------------------

// Run executes plan over inputs and returns the merged table. Derived
// metrics are not computed here; they need the finished table.
func Run(plan Plan, inputs Inputs, resolver *identity.Resolver, env Env, logger *logging.Logger) (*Table, Result) {
	table := NewTable()
	var result Result
	seenFallback := make(map[string]struct{})

	for _, pass := range plan {
		stats := PassStats{Source: pass.Source, Strategy: pass.Strategy.Name()}
		log := logger.With("source", pass.Source, "strategy", pass.Strategy.Name())

		rows := inputs[pass.Source]
		for i := range rows {
			obs := &rows[i]
			stats.Rows++

			res := resolver.Resolve(obs.RawName)
			if res.Slug == "" {
				stats.Skipped++
				log.Warn("Skipping row without a usable team name", "raw_name", obs.RawName)
				continue
			}
			if res.Method == identity.MethodFallback {
				stats.Fallbacks++
				key := string(pass.Source) + ": " + res.RawName
				if _, dup := seenFallback[key]; !dup {
					seenFallback[key] = struct{}{}
					result.FallbackNames = append(result.FallbackNames, key)
					log.Warn("Team name not in mapping, using slug fallback",
						"raw_name", res.RawName, "slug", res.Slug)
				}
			}
			if obs.Empty() {
				stats.Empty++
			}

			switch pass.Strategy.Apply(table, res, obs, pass.Source, env) {
			case OutcomeCreated:
				stats.Created++
			case OutcomeReplaced:
				stats.Replaced++
				log.Warn("Duplicate team within source, later row wins", "team_id", res.Slug, "raw_name", res.RawName)
			case OutcomeUpdated:
				stats.Updated++
			case OutcomeFilled:
				stats.Filled++
			case OutcomeUnchanged:
				stats.Unchanged++
			case OutcomeDropped:
				stats.Orphaned++
				log.Debug("Dropping row with no matching team", "raw_name", res.RawName, "team_id", res.Slug)
			}
		}

		if stats.Orphaned > 0 {
			log.Info("Dropped unmatched rows", "count", stats.Orphaned)
		}
		result.Passes = append(result.Passes, stats)
	}

	return table, result
}
