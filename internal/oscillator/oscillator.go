package oscillator

import (
	"math"

	"github.com/san-kum/oscillab/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultDamping   = 2.0
	DefaultStiffness = 10.0
)

// Params are the physical constants of m*x'' + c*x' + k*x = F(t).
type Params struct {
	Mass      float64
	Damping   float64
	Stiffness float64
}

func (p Params) Validate() error {
	if p.Mass <= 0 {
		return &dynamo.ParameterError{Name: "mass", Value: p.Mass, Reason: "must be positive"}
	}
	if p.Stiffness <= 0 {
		return &dynamo.ParameterError{Name: "stiffness", Value: p.Stiffness, Reason: "must be positive"}
	}
	if p.Damping < 0 {
		return &dynamo.ParameterError{Name: "damping", Value: p.Damping, Reason: "must be non-negative"}
	}
	return nil
}

// NaturalFrequency returns wn = sqrt(k/m) in rad/s.
func (p Params) NaturalFrequency() float64 {
	return math.Sqrt(p.Stiffness / p.Mass)
}

// DampingRatio returns zeta = c / (2*sqrt(m*k)).
func (p Params) DampingRatio() float64 {
	return p.Damping / (2 * math.Sqrt(p.Mass*p.Stiffness))
}

type Regime int

const (
	Underdamped Regime = iota
	CriticallyDamped
	Overdamped
)

func (r Regime) String() string {
	switch r {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically damped"
	default:
		return "overdamped"
	}
}

func (p Params) Regime() Regime {
	zeta := p.DampingRatio()
	switch {
	case zeta < 1:
		return Underdamped
	case zeta == 1:
		return CriticallyDamped
	default:
		return Overdamped
	}
}

// Forcing is a single-tone sinusoidal drive F(t) = Amplitude*sin(Omega*t).
type Forcing struct {
	Amplitude float64
	Omega     float64
}

func (f Forcing) Validate() error {
	if f.Amplitude < 0 {
		return &dynamo.ParameterError{Name: "amplitude", Value: f.Amplitude, Reason: "must be non-negative"}
	}
	if f.Omega <= 0 {
		return &dynamo.ParameterError{Name: "omega", Value: f.Omega, Reason: "must be positive"}
	}
	return nil
}

// Initial holds the unconstrained initial position and velocity.
type Initial struct {
	Position float64
	Velocity float64
}

// Oscillator is the single-degree-of-freedom damped oscillator. The drive
// force enters through the control input u[0]; state is (x, v).
type Oscillator struct {
	Mass      float64
	Damping   float64
	Stiffness float64
}

func New(p Params) *Oscillator {
	return &Oscillator{
		Mass:      p.Mass,
		Damping:   p.Damping,
		Stiffness: p.Stiffness,
	}
}

func Default() *Oscillator {
	return New(Params{Mass: DefaultMass, Damping: DefaultDamping, Stiffness: DefaultStiffness})
}

func (o *Oscillator) Params() Params {
	return Params{Mass: o.Mass, Damping: o.Damping, Stiffness: o.Stiffness}
}

func (o *Oscillator) StateDim() int   { return 2 }
func (o *Oscillator) ControlDim() int { return 1 }

func (o *Oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	pos, vel := x[0], x[1]

	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}

	acc := (force - o.Damping*vel - o.Stiffness*pos) / o.Mass
	return dynamo.State{vel, acc}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * v^2
	// PE = 0.5 * k * x^2
	ke := 0.5 * o.Mass * x[1] * x[1]
	pe := 0.5 * o.Stiffness * x[0] * x[0]
	return ke + pe
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      o.Mass,
		"damping":   o.Damping,
		"stiffness": o.Stiffness,
	}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return &dynamo.ParameterError{Name: name, Value: value, Reason: "must be positive"}
		}
		o.Mass = value
	case "damping":
		if value < 0 {
			return &dynamo.ParameterError{Name: name, Value: value, Reason: "must be non-negative"}
		}
		o.Damping = value
	case "stiffness":
		if value <= 0 {
			return &dynamo.ParameterError{Name: name, Value: value, Reason: "must be positive"}
		}
		o.Stiffness = value
	default:
		return &dynamo.ParameterError{Name: name, Value: value, Reason: "unknown parameter"}
	}
	return nil
}
