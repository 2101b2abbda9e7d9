package merge

import (
	"github.com/albapepper/cbb-data/internal/identity"
	"github.com/albapepper/cbb-data/internal/logo"
	"github.com/albapepper/cbb-data/internal/provider"
)

// Outcome is what a strategy did with one row.
type Outcome int

const (
	OutcomeCreated   Outcome = iota // new record inserted
	OutcomeReplaced                 // same slug seen twice in a seeding source
	OutcomeUpdated                  // authoritative fields overwritten
	OutcomeFilled                   // at least one gap filled
	OutcomeUnchanged                // matched, nothing to fill
	OutcomeDropped                  // no record to attach to
)

// Env carries run-wide values strategies need when creating records.
type Env struct {
	Season string
	Today  string // YYYY-MM-DD, used when a row carries no date
	Logos  *logo.Index
}

// Strategy applies one source row to the table.
type Strategy interface {
	Name() string
	Apply(t *Table, res identity.Resolution, obs *provider.Observation, src provider.SourceID, env Env) Outcome
}

// --------------------------------------------------------------------------
// seed-base
// --------------------------------------------------------------------------

// SeedBase builds a complete base record from every field of the row. Used
// for the Four-Factors source, which runs first.
type SeedBase struct{}

func (SeedBase) Name() string { return "seed-base" }

func (SeedBase) Apply(t *Table, res identity.Resolution, obs *provider.Observation, src provider.SourceID, env Env) Outcome {
	rec := newRecord(res, obs, src, env)
	if obs.AdjO != nil && obs.AdjD != nil {
		rec.AdjEM = *obs.AdjO - *obs.AdjD
	}
	if t.Put(rec) {
		return OutcomeReplaced
	}
	return OutcomeCreated
}

// --------------------------------------------------------------------------
// overwrite-authoritative
// --------------------------------------------------------------------------

// OverwriteAuthoritative lets a source win every conflict on the groups it
// owns. Ratings are overwritten whenever the row observed them; Owned fields
// are replaced even by null. Teams not yet in the table get a new record.
type OverwriteAuthoritative struct {
	Ratings []Field
	Owned   []Field
}

func (OverwriteAuthoritative) Name() string { return "overwrite-authoritative" }

func (s OverwriteAuthoritative) Apply(t *Table, res identity.Resolution, obs *provider.Observation, src provider.SourceID, env Env) Outcome {
	rec, ok := t.Get(res.Slug)
	if !ok {
		t.Put(newRecord(res, obs, src, env))
		return OutcomeCreated
	}

	if obs.Rank != nil {
		rec.Rank = *obs.Rank
	}
	emObserved := false
	for _, f := range s.Ratings {
		if f.overwrite(rec, obs) && f.Name == fAdjEM.Name {
			emObserved = true
		}
	}
	// Keep adjEM consistent with the efficiencies this source just wrote.
	if !emObserved && (obs.AdjO != nil || obs.AdjD != nil) {
		rec.AdjEM = rec.AdjO - rec.AdjD
	}
	for _, f := range s.Owned {
		f.assign(rec, obs)
	}
	if rec.Conference == "" {
		rec.Conference = obs.Conference
	}
	rec.Sources.Mark(src)
	return OutcomeUpdated
}

// --------------------------------------------------------------------------
// fill-missing-only
// --------------------------------------------------------------------------

// FillMissingOnly never overwrites a populated field and never creates a
// record; rows without a match are dropped. When it fills an efficiency on a
// record that has no adjEM yet, adjEM is derived from the filled pair.
type FillMissingOnly struct {
	Fields []Field
}

func (FillMissingOnly) Name() string { return "fill-missing-only" }

func (s FillMissingOnly) Apply(t *Table, res identity.Resolution, obs *provider.Observation, src provider.SourceID, env Env) Outcome {
	rec, ok := t.Get(res.Slug)
	if !ok {
		return OutcomeDropped
	}

	filled, effFilled := false, false
	for _, f := range s.Fields {
		if f.fill(rec, obs) {
			filled = true
			if f.Name == fAdjO.Name || f.Name == fAdjD.Name {
				effFilled = true
			}
		}
	}
	// adjEM of zero means no earlier pass could derive it.
	if effFilled && rec.AdjEM == 0 && rec.AdjO != 0 && rec.AdjD != 0 {
		rec.AdjEM = rec.AdjO - rec.AdjD
	}
	if rec.Conference == "" && obs.Conference != "" {
		rec.Conference = obs.Conference
		filled = true
	}
	if !filled {
		return OutcomeUnchanged
	}
	rec.Sources.Mark(src)
	return OutcomeFilled
}

// --------------------------------------------------------------------------
// Record construction
// --------------------------------------------------------------------------

// newRecord seeds every field from obs: missing plain fields default to zero,
// missing nullable fields stay null, rank defaults to the sentinel.
func newRecord(res identity.Resolution, obs *provider.Observation, src provider.SourceID, env Env) *provider.TeamSeason {
	rec := &provider.TeamSeason{
		TeamID:      res.Slug,
		TeamName:    res.DisplayName(),
		TeamNameAlt: res.AltNames(),
		Conference:  obs.Conference,
		LogoURL:     env.Logos.URL(res.Slug),
		Season:      env.Season,
		LastUpdated: obs.Date,
		Record:      obs.Record,
		Rank:        provider.UnrankedRank,
	}
	if rec.LastUpdated == "" {
		rec.LastUpdated = env.Today
	}
	if obs.Games != nil {
		rec.Games = *obs.Games
	}
	if obs.Rank != nil {
		rec.Rank = *obs.Rank
	}
	for _, f := range AllFields() {
		f.seed(rec, obs)
	}
	rec.Sources.Mark(src)
	return rec
}
