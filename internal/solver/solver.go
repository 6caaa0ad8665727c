// Package solver integrates the damped driven oscillator onto a uniform
// output grid using adaptive Dormand-Prince stepping with dense output.
package solver

import (
	"math"

	"github.com/san-kum/oscillab/internal/control"
	"github.com/san-kum/oscillab/internal/dynamo"
	"github.com/san-kum/oscillab/internal/integrators"
	"github.com/san-kum/oscillab/internal/oscillator"
)

const (
	// DefaultMaxSteps bounds the number of accepted internal steps so a
	// single invocation can never block indefinitely.
	DefaultMaxSteps = 1_000_000
)

// Spec governs the output sampling grid, not the internal step size.
type Spec struct {
	Duration float64
	Points   int
}

func (s Spec) Validate() error {
	if s.Duration <= 0 {
		return &dynamo.ParameterError{Name: "duration", Value: s.Duration, Reason: "must be positive"}
	}
	if s.Points < 2 {
		return &dynamo.ParameterError{Name: "points", Value: float64(s.Points), Reason: "need at least 2 samples"}
	}
	return nil
}

// Result is one trajectory: equal-length time, position and velocity series.
// Results are immutable once returned and safe to memoize by the full
// parameter tuple that produced them.
type Result struct {
	Times    []float64
	Position []float64
	Velocity []float64

	Steps       int
	EnergyDrift float64
	Metrics     map[string]float64
}

type Solver struct {
	integ     dynamo.DenseIntegrator
	tol       dynamo.Tolerances
	maxSteps  int
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New() *Solver {
	return &Solver{
		integ:    integrators.NewRK45(),
		tol:      dynamo.DefaultTolerances(),
		maxSteps: DefaultMaxSteps,
	}
}

func (s *Solver) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Solve is the package-level entry point with default tolerances.
func Solve(p oscillator.Params, f oscillator.Forcing, init oscillator.Initial, spec Spec) (*Result, error) {
	return New().Solve(p, f, init, spec)
}

// Solve integrates m*x'' + c*x' + k*x = F0*sin(w*t) from t=0 to
// spec.Duration and evaluates the dense solution on the uniform grid of
// spec.Points samples. All validation happens before any numerical work.
func (s *Solver) Solve(p oscillator.Params, f oscillator.Forcing, init oscillator.Initial, spec Spec) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	osc := oscillator.New(p)
	driven := dynamo.NewDriven(osc, control.NewSine(f.Amplitude, f.Omega))

	n := spec.Points
	result := &Result{
		Times:    make([]float64, n),
		Position: make([]float64, n),
		Velocity: make([]float64, n),
		Metrics:  make(map[string]float64),
	}
	for i := 0; i < n; i++ {
		result.Times[i] = spec.Duration * float64(i) / float64(n-1)
	}
	result.Times[n-1] = spec.Duration

	for _, m := range s.metrics {
		m.Reset()
	}

	x := dynamo.State{init.Position, init.Velocity}
	t := 0.0
	dt := initialStep(p, f, spec)

	result.Position[0] = init.Position
	result.Velocity[0] = init.Velocity
	outIdx := 1

	initialEnergy := osc.Energy(x)

	for t < spec.Duration {
		if result.Steps >= s.maxSteps {
			return nil, &dynamo.SolveError{Time: t, Step: result.Steps, Wrapped: dynamo.ErrNumericalFailure}
		}

		if t+dt > spec.Duration {
			dt = spec.Duration - t
		}

		xNew, dense, dtNext, err := s.integ.StepDense(driven, x, nil, t, dt, s.tol)
		if err != nil {
			return nil, &dynamo.SolveError{Time: t, Step: result.Steps, Wrapped: err}
		}
		if !xNew.IsValid() {
			return nil, &dynamo.SolveError{Time: t, Step: result.Steps, Wrapped: dynamo.ErrInvalidState}
		}

		_, tNew := dense.Span()
		final := tNew >= spec.Duration*(1-1e-14)

		for outIdx < n-1 && result.Times[outIdx] <= tNew {
			xi := dense.At(result.Times[outIdx])
			result.Position[outIdx] = xi[0]
			result.Velocity[outIdx] = xi[1]
			outIdx++
		}
		if final {
			result.Position[n-1] = xNew[0]
			result.Velocity[n-1] = xNew[1]
			outIdx = n
		}

		for _, m := range s.metrics {
			m.Observe(xNew, nil, tNew)
		}
		for _, obs := range s.observers {
			obs.OnStep(xNew, nil, tNew)
		}

		x = xNew
		t = tNew
		dt = dtNext
		result.Steps++

		if final {
			break
		}
	}

	finalEnergy := osc.Energy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// initialStep picks a first trial step well inside one oscillation period;
// the controller adapts from there.
func initialStep(p oscillator.Params, f oscillator.Forcing, spec Spec) float64 {
	wMax := math.Max(p.NaturalFrequency(), f.Omega)
	h := 2 * math.Pi / wMax / 100
	return math.Min(h, spec.Duration/100)
}
