package control

import (
	"math"

	"github.com/san-kum/oscillab/internal/dynamo"
)

// Sine drives the system with F(t) = Amplitude * sin(Omega * t).
type Sine struct {
	Amplitude float64
	Omega     float64
}

func NewSine(amplitude, omega float64) *Sine {
	return &Sine{Amplitude: amplitude, Omega: omega}
}

func (s *Sine) Compute(x dynamo.State, t float64) dynamo.Control {
	return dynamo.Control{s.Amplitude * math.Sin(s.Omega*t)}
}

// GetParams returns tunable parameters for live adjustment
func (s *Sine) GetParams() map[string]float64 {
	return map[string]float64{
		"amplitude": s.Amplitude,
		"omega":     s.Omega,
	}
}
