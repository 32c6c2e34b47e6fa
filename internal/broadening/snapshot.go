package broadening

import "math"

// Snapshot is an immutable, validated parameter set together with the
// quantities derived from it. All four functions of one snapshot agree on
// the same parameters.
type Snapshot struct {
	params    Params
	dThetaRad float64
}

// NewSnapshot validates p and derives a snapshot from it.
func NewSnapshot(p Params) (*Snapshot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newSnapshot(p), nil
}

func newSnapshot(p Params) *Snapshot {
	return &Snapshot{params: p, dThetaRad: p.DThetaRad()}
}

// Params returns the parameters the snapshot was built from.
func (s *Snapshot) Params() Params {
	return s.params
}

// dopplerShift returns the detected energy in MeV at thetaDeg.
func (s *Snapshot) dopplerShift(thetaDeg float64) float64 {
	b := s.params.Beta
	return s.params.EnergyMeV * (1 - b*b) / (1 - b*math.Cos(toRad(thetaDeg)))
}

// Energy is the intrinsic resolution c/sqrt(E') at the shifted energy.
func (s *Snapshot) Energy(thetaDeg float64) float64 {
	return s.params.ResolutionConst / math.Sqrt(s.dopplerShift(thetaDeg))
}

// SolidAngle is the broadening from the detector's angular acceptance.
func (s *Snapshot) SolidAngle(thetaDeg float64) float64 {
	b := s.params.Beta
	th := toRad(thetaDeg)
	return s.dThetaRad * b * math.Sin(th) / (1 - b*math.Cos(th))
}

// Beta is the broadening from the spread of beta values.
func (s *Snapshot) Beta(thetaDeg float64) float64 {
	b := s.params.Beta
	cos := math.Cos(toRad(thetaDeg))
	return s.params.DBeta * math.Abs(cos-b) / ((1 - b*b) * (1 - b*cos))
}

// Total combines the three contributions in quadrature.
func (s *Snapshot) Total(thetaDeg float64) float64 {
	e := s.Energy(thetaDeg)
	o := s.SolidAngle(thetaDeg)
	b := s.Beta(thetaDeg)
	return math.Sqrt(e*e + o*o + b*b)
}

// Eval evaluates the function of the given kind.
func (s *Snapshot) Eval(k Kind, thetaDeg float64) float64 {
	switch k {
	case Energy:
		return s.Energy(thetaDeg)
	case SolidAngle:
		return s.SolidAngle(thetaDeg)
	case Beta:
		return s.Beta(thetaDeg)
	case Total:
		return s.Total(thetaDeg)
	}
	return math.NaN()
}

// Func returns the function of the given kind bound to this snapshot.
func (s *Snapshot) Func(k Kind) Func {
	return Func{
		Kind: k,
		Name: k.String(),
		eval: func(thetaDeg float64) float64 { return s.Eval(k, thetaDeg) },
	}
}

// Breakdown holds all four function values at one angle.
type Breakdown struct {
	ThetaDeg   float64 `json:"theta_deg"`
	Energy     float64 `json:"energy"`
	SolidAngle float64 `json:"solid_angle"`
	Beta       float64 `json:"beta"`
	Total      float64 `json:"total"`
	// Dominant is the largest of the three contributions.
	Dominant Kind `json:"-"`
}

// Value returns the entry for kind k.
func (b Breakdown) Value(k Kind) float64 {
	switch k {
	case Energy:
		return b.Energy
	case SolidAngle:
		return b.SolidAngle
	case Beta:
		return b.Beta
	case Total:
		return b.Total
	}
	return math.NaN()
}

// Breakdown evaluates every function at thetaDeg.
func (s *Snapshot) Breakdown(thetaDeg float64) Breakdown {
	bd := Breakdown{
		ThetaDeg:   thetaDeg,
		Energy:     s.Energy(thetaDeg),
		SolidAngle: s.SolidAngle(thetaDeg),
		Beta:       s.Beta(thetaDeg),
	}
	bd.Total = math.Sqrt(bd.Energy*bd.Energy + bd.SolidAngle*bd.SolidAngle + bd.Beta*bd.Beta)

	bd.Dominant = Energy
	for _, k := range []Kind{SolidAngle, Beta} {
		if math.Abs(bd.Value(k)) > math.Abs(bd.Value(bd.Dominant)) {
			bd.Dominant = k
		}
	}
	return bd
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
