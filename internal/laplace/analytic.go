package laplace

import (
	"math"

	"github.com/san-kum/oscillab/internal/oscillator"
)

// AnalyticalPosition evaluates the closed-form displacement at the given
// times: the homogeneous solution for the initial conditions (per damping
// regime) plus the steady-state particular response to F0*sin(w*t).
// Used to cross-validate the numerical solver.
func AnalyticalPosition(times []float64, p oscillator.Params, f oscillator.Forcing, init oscillator.Initial) []float64 {
	m, c, k := p.Mass, p.Damping, p.Stiffness

	wn := p.NaturalFrequency()
	zeta := p.DampingRatio()

	w := f.Omega
	denom := math.Pow(k-m*w*w, 2) + math.Pow(c*w, 2)
	ampF := f.Amplitude / math.Sqrt(denom)
	phaseF := math.Atan2(c*w, k-m*w*w)

	// the homogeneous constants absorb the particular solution's value and
	// slope at t=0 so the combined solution meets the initial conditions
	x0, v0 := init.Position, init.Velocity
	if f.Amplitude > 0 {
		x0 -= ampF * math.Sin(-phaseF)
		v0 -= ampF * w * math.Cos(-phaseF)
	}

	out := make([]float64, len(times))

	var hom func(t float64) float64
	switch {
	case zeta < 1:
		wd := wn * math.Sqrt(1-zeta*zeta)
		amp := math.Sqrt(x0*x0 + math.Pow((v0+zeta*wn*x0)/wd, 2))
		phi := math.Atan2(wd*x0, v0+zeta*wn*x0)
		hom = func(t float64) float64 {
			return amp * math.Exp(-zeta*wn*t) * math.Sin(wd*t+phi)
		}
	case zeta == 1:
		a1 := x0
		a2 := v0 + wn*x0
		hom = func(t float64) float64 {
			return (a1 + a2*t) * math.Exp(-wn*t)
		}
	default:
		r1 := -zeta*wn + wn*math.Sqrt(zeta*zeta-1)
		r2 := -zeta*wn - wn*math.Sqrt(zeta*zeta-1)
		a1 := (v0 - r2*x0) / (r1 - r2)
		a2 := (r1*x0 - v0) / (r1 - r2)
		hom = func(t float64) float64 {
			return a1*math.Exp(r1*t) + a2*math.Exp(r2*t)
		}
	}

	for i, t := range times {
		out[i] = hom(t)
		if f.Amplitude > 0 {
			out[i] += ampF * math.Sin(w*t-phaseF)
		}
	}

	return out
}

// SteadyStateAmplitude is the magnitude of the particular solution,
// F0 / sqrt((k - m*w^2)^2 + (c*w)^2).
func SteadyStateAmplitude(p oscillator.Params, f oscillator.Forcing) float64 {
	m, c, k := p.Mass, p.Damping, p.Stiffness
	w := f.Omega
	denom := math.Pow(k-m*w*w, 2) + math.Pow(c*w, 2)
	return f.Amplitude / math.Sqrt(denom)
}
