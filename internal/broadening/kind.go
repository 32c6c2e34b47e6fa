package broadening

import (
	"fmt"
	"math"
)

// Display domain of the angle functions, in degrees.
const (
	MinAngleDeg = 0.0
	MaxAngleDeg = 180.0
)

// Kind names one of the four angle functions.
type Kind int

const (
	Energy Kind = iota
	SolidAngle
	Beta
	Total
)

// Kinds lists every function kind, contributions first.
var Kinds = []Kind{Energy, SolidAngle, Beta, Total}

var kindNames = [...]string{
	Energy:     "Energy Broadening",
	SolidAngle: "Solid Angle Broadening",
	Beta:       "Beta Broadening",
	Total:      "Total Broadening",
}

var kindIDs = [...]string{
	Energy:     "energyBroadening",
	SolidAngle: "solidAngleBroadening",
	Beta:       "betaBroadening",
	Total:      "totalBroadening",
}

// String returns the display name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ID returns the short identifier, e.g. "totalBroadening".
func (k Kind) ID() string {
	if k < 0 || int(k) >= len(kindIDs) {
		return fmt.Sprintf("kind%d", int(k))
	}
	return kindIDs[k]
}

// ParseKind accepts either the identifier or the display name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == k.ID() || s == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown broadening function: %q", s)
}

// Func is an evaluable angle function carrying its display name. Obtain it
// from a Model or Snapshot accessor; a zero Func evaluates to NaN.
type Func struct {
	Kind Kind
	Name string
	eval func(thetaDeg float64) float64
}

// Eval returns the resolution contribution at thetaDeg degrees. The result
// may be non-finite at a singular point; see Finite.
func (f Func) Eval(thetaDeg float64) float64 {
	if f.eval == nil {
		return math.NaN()
	}
	return f.eval(thetaDeg)
}
