package broadening

import (
	"sync"
	"sync/atomic"
)

// Model binds the five physical parameters to the four angle functions.
//
// The stored parameters and the derived snapshot are kept apart; every
// mutation goes through UpdateParameters, which swaps in a complete new
// snapshot. Function handles returned by the accessors load the current
// snapshot on each evaluation, so they never see stale parameters.
//
// Build a Model with New or NewFromParams. A zero Model holds no valid
// parameters: it does not panic, but its energy and total functions
// evaluate to NaN until SetParameters succeeds.
type Model struct {
	mu     sync.Mutex // serializes updates
	params Params
	snap   atomic.Pointer[Snapshot]
}

// New builds a model for the given energy (MeV) and beta. The opening
// angle, resolution constant and beta spread default to 0, 1 and 0.
func New(energyMeV, beta float64, opts ...Option) (*Model, error) {
	p := NewParams(energyMeV, beta)
	for _, opt := range opts {
		opt(&p)
	}
	return NewFromParams(p)
}

// NewFromParams builds a model from a full parameter set.
func NewFromParams(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := &Model{params: p}
	m.UpdateParameters()
	return m, nil
}

// UpdateParameters re-derives the snapshot from the stored parameters.
// Calling it again without a parameter change yields identical functions.
func (m *Model) UpdateParameters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resync()
}

func (m *Model) resync() {
	m.snap.Store(newSnapshot(m.params))
}

// load returns the current snapshot, or one of the zero parameters when
// the model was never initialized.
func (m *Model) load() *Snapshot {
	if s := m.snap.Load(); s != nil {
		return s
	}
	return newSnapshot(Params{})
}

// SetParameters replaces all five parameters. Invalid input leaves the
// model unchanged.
func (m *Model) SetParameters(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = p
	m.resync()
	return nil
}

// Params returns the current parameters.
func (m *Model) Params() Params {
	return m.load().Params()
}

// Snapshot returns the current immutable snapshot. Use it to evaluate
// several functions against exactly the same parameters.
func (m *Model) Snapshot() *Snapshot {
	return m.load()
}

// GetParams returns the current parameters keyed by name.
func (m *Model) GetParams() map[string]float64 {
	return m.Params().Map()
}

// SetParam updates a single named parameter.
func (m *Model) SetParam(name string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.params.With(name, value)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.params = p
	m.resync()
	return nil
}

// Func returns a handle on the function of kind k.
func (m *Model) Func(k Kind) Func {
	return Func{
		Kind: k,
		Name: k.String(),
		eval: func(thetaDeg float64) float64 { return m.load().Eval(k, thetaDeg) },
	}
}

// Funcs returns handles on all four functions in Kinds order.
func (m *Model) Funcs() []Func {
	fs := make([]Func, len(Kinds))
	for i, k := range Kinds {
		fs[i] = m.Func(k)
	}
	return fs
}

// EnergyBroadening returns the "Energy Broadening" handle.
func (m *Model) EnergyBroadening() Func { return m.Func(Energy) }

// SolidAngleBroadening returns the "Solid Angle Broadening" handle.
func (m *Model) SolidAngleBroadening() Func { return m.Func(SolidAngle) }

// BetaBroadening returns the "Beta Broadening" handle.
func (m *Model) BetaBroadening() Func { return m.Func(Beta) }

// TotalBroadening returns the "Total Broadening" handle.
func (m *Model) TotalBroadening() Func { return m.Func(Total) }
