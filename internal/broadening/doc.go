// Package broadening computes the Doppler broadening of a gamma-ray
// detector's energy resolution as a function of detector polar angle.
//
// A gamma ray emitted by a source moving at velocity β (in units of c) is
// detected at the shifted energy
//
//	E'(θ) = E_γ (1 − β²) / (1 − β cos θ)
//
// The fractional resolution δE'/E' is the quadrature sum of three
// independent contributions:
//
//   - [Energy]: intrinsic detector resolution c/sqrt(E') at the shifted energy
//   - [SolidAngle]: finite angular acceptance δθ of the detector
//   - [Beta]: spread δβ of the source velocity distribution
//
// The uncertainty of the emitted energy itself (δE_γ/E_γ) is left out of
// [Total].
//
// # Example
//
//	m, err := broadening.New(1.0, 0.05,
//	    broadening.WithOpeningAngle(10),
//	    broadening.WithResolutionConst(0.03),
//	    broadening.WithBetaSpread(0.001),
//	)
//	total := m.TotalBroadening()
//	fmt.Println(total.Name, total.Eval(90))
//
// # Thread Safety
//
// Evaluation never mutates the model. Parameter updates are serialized and
// published as a whole [Snapshot], so evaluation may run concurrently with
// an update and always sees one consistent parameter set.
package broadening
