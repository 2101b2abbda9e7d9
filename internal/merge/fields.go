package merge

import "github.com/albapepper/cbb-data/internal/provider"

// Field binds one observed metric to its slot on the unified record. A slot
// is either a plain float (zero when absent) or a nullable pointer.
type Field struct {
	Name string
	from func(*provider.Observation) *float64
	num  func(*provider.TeamSeason) *float64
	opt  func(*provider.TeamSeason) **float64
}

func numField(name string, from func(*provider.Observation) *float64, to func(*provider.TeamSeason) *float64) Field {
	return Field{Name: name, from: from, num: to}
}

func optField(name string, from func(*provider.Observation) *float64, to func(*provider.TeamSeason) **float64) Field {
	return Field{Name: name, from: from, opt: to}
}

// seed writes the observed value, or the zero/null default.
func (f Field) seed(rec *provider.TeamSeason, obs *provider.Observation) {
	v := f.from(obs)
	if f.num != nil {
		*f.num(rec) = provider.Float(v)
		return
	}
	*f.opt(rec) = clone(v)
}

// overwrite replaces the slot when the source observed a value.
func (f Field) overwrite(rec *provider.TeamSeason, obs *provider.Observation) bool {
	v := f.from(obs)
	if v == nil {
		return false
	}
	if f.num != nil {
		*f.num(rec) = *v
	} else {
		*f.opt(rec) = clone(v)
	}
	return true
}

// assign replaces the slot even when the source left it empty. Plain float
// slots cannot hold null, so for them this is the same as overwrite.
func (f Field) assign(rec *provider.TeamSeason, obs *provider.Observation) bool {
	if f.num != nil {
		return f.overwrite(rec, obs)
	}
	*f.opt(rec) = clone(f.from(obs))
	return true
}

// fill writes the observed value only into a slot that is zero or null.
func (f Field) fill(rec *provider.TeamSeason, obs *provider.Observation) bool {
	v := f.from(obs)
	if v == nil {
		return false
	}
	if f.num != nil {
		if *f.num(rec) != 0 || *v == 0 {
			return false
		}
		*f.num(rec) = *v
		return true
	}
	cur := *f.opt(rec)
	if cur != nil && (*cur != 0 || *v == 0) {
		return false
	}
	*f.opt(rec) = clone(v)
	return true
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// --------------------------------------------------------------------------
// Field catalogue
// --------------------------------------------------------------------------

var (
	fAdjEM = numField("adjEM",
		func(o *provider.Observation) *float64 { return o.AdjEM },
		func(t *provider.TeamSeason) *float64 { return &t.AdjEM })
	fAdjO = numField("adjO",
		func(o *provider.Observation) *float64 { return o.AdjO },
		func(t *provider.TeamSeason) *float64 { return &t.AdjO })
	fAdjD = numField("adjD",
		func(o *provider.Observation) *float64 { return o.AdjD },
		func(t *provider.TeamSeason) *float64 { return &t.AdjD })
	fAdjTempo = numField("adjTempo",
		func(o *provider.Observation) *float64 { return o.AdjTempo },
		func(t *provider.TeamSeason) *float64 { return &t.AdjTempo })

	fEFG = numField("eFG",
		func(o *provider.Observation) *float64 { return o.EFG },
		func(t *provider.TeamSeason) *float64 { return &t.EFG })
	fTOV = numField("tov",
		func(o *provider.Observation) *float64 { return o.TOV },
		func(t *provider.TeamSeason) *float64 { return &t.TOV })
	fORB = numField("orb",
		func(o *provider.Observation) *float64 { return o.ORB },
		func(t *provider.TeamSeason) *float64 { return &t.ORB })
	fFTR = numField("ftr",
		func(o *provider.Observation) *float64 { return o.FTR },
		func(t *provider.TeamSeason) *float64 { return &t.FTR })
	fEFGD = numField("eFG_d",
		func(o *provider.Observation) *float64 { return o.EFGD },
		func(t *provider.TeamSeason) *float64 { return &t.EFGD })
	fTOVD = numField("tov_d",
		func(o *provider.Observation) *float64 { return o.TOVD },
		func(t *provider.TeamSeason) *float64 { return &t.TOVD })
	fDRB = numField("drb",
		func(o *provider.Observation) *float64 { return o.DRB },
		func(t *provider.TeamSeason) *float64 { return &t.DRB })
	fFTRD = numField("ftr_d",
		func(o *provider.Observation) *float64 { return o.FTRD },
		func(t *provider.TeamSeason) *float64 { return &t.FTRD })

	fFG2Pct = optField("fg2_pct",
		func(o *provider.Observation) *float64 { return o.FG2Pct },
		func(t *provider.TeamSeason) **float64 { return &t.FG2Pct })
	fFG2PctD = optField("fg2_pct_d",
		func(o *provider.Observation) *float64 { return o.FG2PctD },
		func(t *provider.TeamSeason) **float64 { return &t.FG2PctD })
	fFG3Pct = optField("fg3_pct",
		func(o *provider.Observation) *float64 { return o.FG3Pct },
		func(t *provider.TeamSeason) **float64 { return &t.FG3Pct })
	fFG3PctD = optField("fg3_pct_d",
		func(o *provider.Observation) *float64 { return o.FG3PctD },
		func(t *provider.TeamSeason) **float64 { return &t.FG3PctD })
	fFG3Rate = optField("fg3_rate",
		func(o *provider.Observation) *float64 { return o.FG3Rate },
		func(t *provider.TeamSeason) **float64 { return &t.FG3Rate })
	fFG3RateD = optField("fg3_rate_d",
		func(o *provider.Observation) *float64 { return o.FG3RateD },
		func(t *provider.TeamSeason) **float64 { return &t.FG3RateD })

	fWAB = optField("wab",
		func(o *provider.Observation) *float64 { return o.WAB },
		func(t *provider.TeamSeason) **float64 { return &t.WAB })
	fSOR = optField("sor",
		func(o *provider.Observation) *float64 { return o.SOR },
		func(t *provider.TeamSeason) **float64 { return &t.SOR })
	fLuck = optField("luck",
		func(o *provider.Observation) *float64 { return o.Luck },
		func(t *provider.TeamSeason) **float64 { return &t.Luck })
	fSOSAdjEM = optField("sos_adjEM",
		func(o *provider.Observation) *float64 { return o.SOSAdjEM },
		func(t *provider.TeamSeason) **float64 { return &t.SOSAdjEM })
	fNCSOSAdjEM = optField("ncsos_adjEM",
		func(o *provider.Observation) *float64 { return o.NCSOSAdjEM },
		func(t *provider.TeamSeason) **float64 { return &t.NCSOSAdjEM })
	fBarthag = optField("barthag",
		func(o *provider.Observation) *float64 { return o.Barthag },
		func(t *provider.TeamSeason) **float64 { return &t.Barthag })
)

// Field groups. Strategies are configured in terms of these, so each pass
// states exactly which groups it may touch.
var (
	CoreRatings    = []Field{fAdjEM, fAdjO, fAdjD, fAdjTempo}
	FourFactors    = []Field{fEFG, fTOV, fORB, fFTR, fEFGD, fTOVD, fDRB, fFTRD}
	ShootingSplits = []Field{fFG2Pct, fFG2PctD, fFG3Pct, fFG3PctD, fFG3Rate, fFG3RateD}
	ResumeMetrics  = []Field{fWAB, fSOR, fLuck, fSOSAdjEM, fNCSOSAdjEM, fBarthag}

	// KenPomResume is the slice of resume metrics the core-ratings source owns.
	KenPomResume = []Field{fLuck, fSOSAdjEM, fNCSOSAdjEM}

	// SupplementalGaps are the fields the supplemental source may fill.
	SupplementalGaps = []Field{fAdjO, fAdjD, fAdjTempo, fWAB, fSOR, fFG2Pct, fFG3Pct, fFG3Rate}
)

// AllFields lists every mergeable metric.
func AllFields() []Field {
	out := make([]Field, 0, len(CoreRatings)+len(FourFactors)+len(ShootingSplits)+len(ResumeMetrics))
	out = append(out, CoreRatings...)
	out = append(out, FourFactors...)
	out = append(out, ShootingSplits...)
	out = append(out, ResumeMetrics...)
	return out
}
