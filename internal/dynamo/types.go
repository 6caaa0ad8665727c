package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Tolerances control the local error test of adaptive integrators.
// A step is accepted when the weighted error norm with weights
// Abs + Rel*|x| is at most 1.
type Tolerances struct {
	Rel float64
	Abs float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{Rel: 1e-8, Abs: 1e-10}
}

// Interpolant evaluates a continuous solution across one accepted step,
// so output grids need not coincide with the internal step grid.
type Interpolant interface {
	At(t float64) State
	Span() (t0, t1 float64)
}

type DenseIntegrator interface {
	Integrator
	StepDense(dyn System, x State, u Control, t, dt float64, tol Tolerances) (State, Interpolant, float64, error)
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
