package broadening

import (
	"errors"
	"fmt"
	"math"
)

// Parameter names used by GetParams, SetParam and the config files.
const (
	ParamEnergy          = "energy_mev"
	ParamBeta            = "beta"
	ParamOpeningAngle    = "dtheta_deg"
	ParamResolutionConst = "resolution_const"
	ParamBetaSpread      = "dbeta"
)

// ParamNames lists the parameter names in display order.
var ParamNames = []string{
	ParamEnergy,
	ParamBeta,
	ParamOpeningAngle,
	ParamResolutionConst,
	ParamBetaSpread,
}

// Defaults of the optional inputs of New: no angular acceptance, a unit
// resolution constant and no beta spread.
const (
	DefaultOpeningAngle    = 0.0
	DefaultResolutionConst = 1.0
	DefaultBetaSpread      = 0.0
)

// Params are the five physical inputs of the model.
type Params struct {
	// Emitted gamma-ray energy in MeV.
	EnergyMeV float64 `yaml:"energy_mev" toml:"energy_mev" json:"energy_mev"`
	// Source velocity as a fraction of c.
	Beta float64 `yaml:"beta" toml:"beta" json:"beta"`
	// Detector angular half acceptance in degrees.
	DThetaDeg float64 `yaml:"dtheta_deg" toml:"dtheta_deg" json:"dtheta_deg"`
	// Constant of the c/sqrt(E) intrinsic resolution in sqrt(MeV).
	ResolutionConst float64 `yaml:"resolution_const" toml:"resolution_const" json:"resolution_const"`
	// Width of the beta distribution.
	DBeta float64 `yaml:"dbeta" toml:"dbeta" json:"dbeta"`
}

// NewParams returns parameters for the given energy and beta with the
// optional inputs at their defaults.
func NewParams(energyMeV, beta float64) Params {
	return Params{
		EnergyMeV:       energyMeV,
		Beta:            beta,
		DThetaDeg:       DefaultOpeningAngle,
		ResolutionConst: DefaultResolutionConst,
		DBeta:           DefaultBetaSpread,
	}
}

// DThetaRad is the opening angle in radians.
func (p Params) DThetaRad() float64 {
	return p.DThetaDeg * math.Pi / 180
}

// Validate reports every parameter outside its physical range.
func (p Params) Validate() error {
	var errs []error
	check := func(name string, v float64, ok bool, reason string) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &ParameterError{Name: name, Value: v, Reason: "must be finite"})
			return
		}
		if !ok {
			errs = append(errs, &ParameterError{Name: name, Value: v, Reason: reason})
		}
	}

	check(ParamEnergy, p.EnergyMeV, p.EnergyMeV > 0, "must be > 0")
	check(ParamBeta, p.Beta, math.Abs(p.Beta) < 1, "must satisfy |beta| < 1")
	check(ParamOpeningAngle, p.DThetaDeg, p.DThetaDeg >= 0, "must be >= 0")
	check(ParamResolutionConst, p.ResolutionConst, p.ResolutionConst > 0, "must be > 0")
	check(ParamBetaSpread, p.DBeta, p.DBeta >= 0, "must be >= 0")

	return errors.Join(errs...)
}

// Map returns the parameters keyed by name.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		ParamEnergy:          p.EnergyMeV,
		ParamBeta:            p.Beta,
		ParamOpeningAngle:    p.DThetaDeg,
		ParamResolutionConst: p.ResolutionConst,
		ParamBetaSpread:      p.DBeta,
	}
}

// With returns a copy of p with the named parameter replaced. It does not
// validate the result.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case ParamEnergy:
		p.EnergyMeV = value
	case ParamBeta:
		p.Beta = value
	case ParamOpeningAngle:
		p.DThetaDeg = value
	case ParamResolutionConst:
		p.ResolutionConst = value
	case ParamBetaSpread:
		p.DBeta = value
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return p, nil
}

// Option sets one of the optional inputs of New.
type Option func(*Params)

// WithOpeningAngle sets the detector angular half acceptance in degrees.
func WithOpeningAngle(deg float64) Option {
	return func(p *Params) { p.DThetaDeg = deg }
}

// WithResolutionConst sets the constant of the c/sqrt(E) intrinsic
// resolution, in sqrt(MeV).
func WithResolutionConst(c float64) Option {
	return func(p *Params) { p.ResolutionConst = c }
}

// WithBetaSpread sets the width of the beta distribution.
func WithBetaSpread(dBeta float64) Option {
	return func(p *Params) { p.DBeta = dBeta }
}
