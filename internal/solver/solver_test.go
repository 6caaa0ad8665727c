package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oscillab/internal/dynamo"
	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
)

var _ = Describe("Solve", func() {
	var (
		free   oscillator.Forcing
		atRest oscillator.Initial
	)

	BeforeEach(func() {
		free = oscillator.Forcing{Amplitude: 0, Omega: 1}
		atRest = oscillator.Initial{Position: 1, Velocity: 0}
	})

	Describe("output grid", func() {
		It("samples a uniform grid from 0 to the duration", func() {
			p := oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10}
			spec := solver.Spec{Duration: 5, Points: 101}

			result, err := solver.Solve(p, free, atRest, spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Times).To(HaveLen(101))
			Expect(result.Position).To(HaveLen(101))
			Expect(result.Velocity).To(HaveLen(101))

			Expect(result.Times[0]).To(Equal(0.0))
			Expect(result.Times[100]).To(Equal(5.0))

			h := 5.0 / 100.0
			for i := 1; i < len(result.Times); i++ {
				Expect(result.Times[i]).To(BeNumerically(">", result.Times[i-1]))
				Expect(result.Times[i] - result.Times[i-1]).To(BeNumerically("~", h, 1e-12))
			}
		})

		It("reproduces the initial conditions at t=0", func() {
			p := oscillator.Params{Mass: 1, Damping: 0.5, Stiffness: 20}
			init := oscillator.Initial{Position: 0.7, Velocity: -1.3}

			result, err := solver.Solve(p, free, init, solver.Spec{Duration: 2, Points: 50})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Position[0]).To(Equal(0.7))
			Expect(result.Velocity[0]).To(Equal(-1.3))
		})

		It("reports the accepted step count", func() {
			p := oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10}

			result, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 5, Points: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Steps).To(BeNumerically(">", 0))
		})
	})

	Describe("parameter validation", func() {
		p := oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10}
		spec := solver.Spec{Duration: 5, Points: 100}

		It("rejects non-positive mass", func() {
			bad := oscillator.Params{Mass: 0, Damping: 2, Stiffness: 10}
			_, err := solver.Solve(bad, free, atRest, spec)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects non-positive stiffness", func() {
			bad := oscillator.Params{Mass: 1, Damping: 2, Stiffness: -1}
			_, err := solver.Solve(bad, free, atRest, spec)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects negative damping", func() {
			bad := oscillator.Params{Mass: 1, Damping: -0.5, Stiffness: 10}
			_, err := solver.Solve(bad, free, atRest, spec)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects negative forcing amplitude", func() {
			_, err := solver.Solve(p, oscillator.Forcing{Amplitude: -1, Omega: 1}, atRest, spec)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects non-positive forcing frequency", func() {
			_, err := solver.Solve(p, oscillator.Forcing{Amplitude: 1, Omega: 0}, atRest, spec)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects non-positive duration", func() {
			_, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 0, Points: 100})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("rejects grids with fewer than two samples", func() {
			_, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 5, Points: 1})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})
	})

	Describe("undamped free oscillation", func() {
		It("conserves total energy along the whole trajectory", func() {
			p := oscillator.Params{Mass: 1, Damping: 0, Stiffness: 10}

			result, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 20, Points: 2001})
			Expect(err).NotTo(HaveOccurred())

			e0 := 0.5 * p.Stiffness // x0=1, v0=0
			for i := range result.Times {
				e := 0.5*p.Mass*result.Velocity[i]*result.Velocity[i] +
					0.5*p.Stiffness*result.Position[i]*result.Position[i]
				Expect(math.Abs(e-e0) / e0).To(BeNumerically("<", 1e-4))
			}
			Expect(result.EnergyDrift).To(BeNumerically("<", 1e-5))
		})
	})

	Describe("underdamped free decay", func() {
		p := oscillator.Params{Mass: 1, Damping: 0.5, Stiffness: 20}

		It("decays successive peaks by the analytic envelope ratio", func() {
			result, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 10, Points: 5001})
			Expect(err).NotTo(HaveOccurred())

			var peaks []float64
			for i := 1; i < len(result.Position)-1; i++ {
				if result.Position[i] > result.Position[i-1] &&
					result.Position[i] > result.Position[i+1] &&
					result.Position[i] > 0 {
					peaks = append(peaks, result.Position[i])
				}
			}
			Expect(len(peaks)).To(BeNumerically(">=", 3))

			alpha := p.Damping / (2 * p.Mass)
			wd := p.NaturalFrequency() * math.Sqrt(1-p.DampingRatio()*p.DampingRatio())
			want := math.Exp(-alpha * 2 * math.Pi / wd)

			for i := 1; i < len(peaks); i++ {
				Expect(peaks[i] / peaks[i-1]).To(BeNumerically("~", want, 0.01*want))
			}
		})

		It("crosses zero where the closed form does", func() {
			result, err := solver.Solve(p, free, atRest, solver.Spec{Duration: 10, Points: 5001})
			Expect(err).NotTo(HaveOccurred())

			var tCross float64
			for i := 1; i < len(result.Position); i++ {
				if result.Position[i-1] > 0 && result.Position[i] <= 0 {
					frac := result.Position[i-1] / (result.Position[i-1] - result.Position[i])
					tCross = result.Times[i-1] + frac*(result.Times[i]-result.Times[i-1])
					break
				}
			}
			Expect(tCross).To(BeNumerically(">", 0))

			// x(t) = A exp(-alpha t) sin(wd t + phi) with phi = atan2(wd, alpha)
			// for x0=1, v0=0; the first zero is at (pi - phi) / wd.
			alpha := p.Damping / (2 * p.Mass)
			wd := p.NaturalFrequency() * math.Sqrt(1-p.DampingRatio()*p.DampingRatio())
			tExact := (math.Pi - math.Atan2(wd, alpha)) / wd

			Expect(tCross).To(BeNumerically("~", tExact, 0.01*tExact))
		})
	})

	Describe("cross-validation against the closed form", func() {
		check := func(p oscillator.Params, f oscillator.Forcing, init oscillator.Initial) {
			spec := solver.Spec{Duration: 10, Points: 1001}
			result, err := solver.Solve(p, f, init, spec)
			Expect(err).NotTo(HaveOccurred())

			exact := laplace.AnalyticalPosition(result.Times, p, f, init)
			for i := range result.Times {
				Expect(result.Position[i]).To(BeNumerically("~", exact[i], 1e-6))
			}
		}

		It("matches in the underdamped regime", func() {
			check(oscillator.Params{Mass: 1, Damping: 0.5, Stiffness: 20}, free, atRest)
		})

		It("matches in the critically damped regime", func() {
			check(oscillator.Params{Mass: 1, Damping: 2, Stiffness: 1}, free,
				oscillator.Initial{Position: 1, Velocity: -0.5})
		})

		It("matches in the overdamped regime", func() {
			check(oscillator.Params{Mass: 1, Damping: 10, Stiffness: 5}, free,
				oscillator.Initial{Position: 0.5, Velocity: 2})
		})

		It("matches under sinusoidal forcing", func() {
			check(oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10},
				oscillator.Forcing{Amplitude: 5, Omega: 2},
				oscillator.Initial{Position: 0, Velocity: 0})
		})
	})

	Describe("forced steady state", func() {
		It("settles to the analytic steady-state amplitude", func() {
			p := oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10}
			f := oscillator.Forcing{Amplitude: 5, Omega: 2}
			init := oscillator.Initial{Position: 0, Velocity: 0}

			result, err := solver.Solve(p, f, init, solver.Spec{Duration: 30, Points: 3001})
			Expect(err).NotTo(HaveOccurred())

			// transients decay like exp(-t) here; the tail is pure steady state
			tail := 0.0
			for i, t := range result.Times {
				if t > 20 {
					tail = math.Max(tail, math.Abs(result.Position[i]))
				}
			}

			want := laplace.SteadyStateAmplitude(p, f)
			Expect(tail).To(BeNumerically("~", want, 0.01*want))
		})
	})

	Describe("determinism", func() {
		It("returns bit-identical results for identical inputs", func() {
			p := oscillator.Params{Mass: 1.3, Damping: 0.7, Stiffness: 18}
			f := oscillator.Forcing{Amplitude: 3, Omega: 4}
			init := oscillator.Initial{Position: 0.2, Velocity: -1}
			spec := solver.Spec{Duration: 12, Points: 500}

			r1, err := solver.Solve(p, f, init, spec)
			Expect(err).NotTo(HaveOccurred())
			r2, err := solver.Solve(p, f, init, spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(r1.Times).To(Equal(r2.Times))
			Expect(r1.Position).To(Equal(r2.Position))
			Expect(r1.Velocity).To(Equal(r2.Velocity))
			Expect(r1.Steps).To(Equal(r2.Steps))
		})
	})
})
