// Package provider defines canonical data types that all sources normalize
// into. These structs are the contract between the per-source packages, the
// merge engine and every downstream reader of the snapshot.
//
// Adding a new source means writing an Observe function that returns an
// Observation and giving it a pass in the merge plan. The snapshot shape
// never changes.
package provider

// SourceID names one upstream ratings source.
type SourceID string

const (
	KenPom       SourceID = "kenpom"
	Torvik       SourceID = "torvik"
	CBBAnalytics SourceID = "cbbAnalytics"
)

// AllSources lists every source in snapshot metadata order.
var AllSources = []SourceID{KenPom, Torvik, CBBAnalytics}

// UnrankedRank is the sentinel rank for teams no source ranked. It sorts
// after every real rank.
const UnrankedRank = 999

// Sources records which upstream sources contributed at least one field.
type Sources struct {
	KenPom       bool `json:"kenpom"`
	Torvik       bool `json:"torvik"`
	CBBAnalytics bool `json:"cbbAnalytics"`
}

// Mark sets the flag for id.
func (s *Sources) Mark(id SourceID) {
	switch id {
	case KenPom:
		s.KenPom = true
	case Torvik:
		s.Torvik = true
	case CBBAnalytics:
		s.CBBAnalytics = true
	}
}

// Has reports whether id contributed.
func (s Sources) Has(id SourceID) bool {
	switch id {
	case KenPom:
		return s.KenPom
	case Torvik:
		return s.Torvik
	case CBBAnalytics:
		return s.CBBAnalytics
	}
	return false
}

// TeamSeason is the unified per-team record for one season. Pointer fields
// are nullable: nil means no source observed the metric, which is distinct
// from an observed zero.
type TeamSeason struct {
	// Identity
	TeamID      string   `json:"teamId"`
	TeamName    string   `json:"teamName"`
	TeamNameAlt []string `json:"teamNameAlt"`
	Conference  string   `json:"conference"`
	LogoURL     string   `json:"logoUrl"`

	// Season context
	Season      string `json:"season"`
	LastUpdated string `json:"lastUpdated"`
	Games       int    `json:"games"`
	Record      string `json:"record"`

	// Core ratings
	Rank     int     `json:"rank"`
	AdjEM    float64 `json:"adjEM"`
	AdjO     float64 `json:"adjO"`
	AdjD     float64 `json:"adjD"`
	AdjTempo float64 `json:"adjTempo"`

	// Four factors, offense
	EFG float64 `json:"eFG"`
	TOV float64 `json:"tov"`
	ORB float64 `json:"orb"`
	FTR float64 `json:"ftr"`

	// Four factors, defense
	EFGD float64 `json:"eFG_d"`
	TOVD float64 `json:"tov_d"`
	DRB  float64 `json:"drb"`
	FTRD float64 `json:"ftr_d"`

	// Four factors, margins (always derived)
	EFGMargin float64 `json:"eFG_margin"`
	TOVEdge   float64 `json:"tov_edge"`
	REBEdge   float64 `json:"reb_edge"`
	FTRMargin float64 `json:"ftr_margin"`

	// Shooting splits
	FG2Pct   *float64 `json:"fg2_pct"`
	FG2PctD  *float64 `json:"fg2_pct_d"`
	FG3Pct   *float64 `json:"fg3_pct"`
	FG3PctD  *float64 `json:"fg3_pct_d"`
	FG3Rate  *float64 `json:"fg3_rate"`
	FG3RateD *float64 `json:"fg3_rate_d"`

	// Resume metrics
	WAB        *float64 `json:"wab"`
	SOR        *float64 `json:"sor"`
	Luck       *float64 `json:"luck"`
	SOSAdjEM   *float64 `json:"sos_adjEM"`
	NCSOSAdjEM *float64 `json:"ncsos_adjEM"`
	Barthag    *float64 `json:"barthag"`

	Sources Sources `json:"sources"`
}

// SourceCounts is the number of records each source contributed to.
type SourceCounts struct {
	KenPom       int `json:"kenpom"`
	Torvik       int `json:"torvik"`
	CBBAnalytics int `json:"cbbAnalytics"`
}

// Add counts one record for id.
func (c *SourceCounts) Add(id SourceID) {
	switch id {
	case KenPom:
		c.KenPom++
	case Torvik:
		c.Torvik++
	case CBBAnalytics:
		c.CBBAnalytics++
	}
}

// Metadata is the snapshot header.
type Metadata struct {
	LastUpdated string       `json:"lastUpdated"`
	Season      string       `json:"season"`
	TeamCount   int          `json:"teamCount"`
	Sources     SourceCounts `json:"sources"`
}

// Dataset is the complete snapshot document: { metadata, teams }.
type Dataset struct {
	Metadata Metadata     `json:"metadata"`
	Teams    []TeamSeason `json:"teams"`
}
