package provider

// Observation is what one source row says about one team, already run
// through the field normalizers. Nil pointers and empty strings mean the row
// did not provide the field.
type Observation struct {
	RawName    string
	Conference string
	Date       string
	Record     string
	Games      *int
	Rank       *int

	AdjEM    *float64
	AdjO     *float64
	AdjD     *float64
	AdjTempo *float64

	EFG  *float64
	TOV  *float64
	ORB  *float64
	FTR  *float64
	EFGD *float64
	TOVD *float64
	DRB  *float64
	FTRD *float64

	FG2Pct   *float64
	FG2PctD  *float64
	FG3Pct   *float64
	FG3PctD  *float64
	FG3Rate  *float64
	FG3RateD *float64

	WAB        *float64
	SOR        *float64
	Luck       *float64
	SOSAdjEM   *float64
	NCSOSAdjEM *float64
	Barthag    *float64
}

// Empty reports whether no numeric or descriptive field was observed.
func (o Observation) Empty() bool {
	for _, p := range o.floats() {
		if p != nil {
			return false
		}
	}
	return o.Conference == "" && o.Date == "" && o.Record == "" && o.Games == nil && o.Rank == nil
}

func (o Observation) floats() []*float64 {
	return []*float64{
		o.AdjEM, o.AdjO, o.AdjD, o.AdjTempo,
		o.EFG, o.TOV, o.ORB, o.FTR, o.EFGD, o.TOVD, o.DRB, o.FTRD,
		o.FG2Pct, o.FG2PctD, o.FG3Pct, o.FG3PctD, o.FG3Rate, o.FG3RateD,
		o.WAB, o.SOR, o.Luck, o.SOSAdjEM, o.NCSOSAdjEM, o.Barthag,
	}
}

// Float returns v or 0 when v is nil.
func Float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
