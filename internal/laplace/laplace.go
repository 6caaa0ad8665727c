// Package laplace derives the frequency-domain characteristics of the
// damped oscillator: transfer function, poles and zeros, Bode sweep, and
// stability classification.
package laplace

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/oscillab/internal/dynamo"
	"github.com/san-kum/oscillab/internal/oscillator"
)

const (
	// MinFreq anchors the low end of every sweep, in rad/s.
	MinFreq = 1e-2

	DefaultMaxFreq = 100.0
	DefaultPoints  = 1000
)

// Complex is an explicit (real, imaginary) pair. Poles and zeros are
// reported in this form rather than as complex128.
type Complex struct {
	Re float64
	Im float64
}

func (c Complex) Abs() float64 {
	return math.Hypot(c.Re, c.Im)
}

func (c Complex) String() string {
	if c.Im < 0 {
		return fmt.Sprintf("%.4f-%.4fi", c.Re, -c.Im)
	}
	return fmt.Sprintf("%.4f+%.4fi", c.Re, c.Im)
}

// TransferFunction is a rational function of s with real coefficients in
// descending powers.
type TransferFunction struct {
	Num []float64
	Den []float64
}

// ForOscillator builds H(s) = 1 / (m*s^2 + c*s + k).
func ForOscillator(p oscillator.Params) TransferFunction {
	return TransferFunction{
		Num: []float64{1},
		Den: []float64{p.Mass, p.Damping, p.Stiffness},
	}
}

// At evaluates H at a point of the complex plane via Horner's rule.
func (tf TransferFunction) At(s complex128) complex128 {
	return horner(tf.Num, s) / horner(tf.Den, s)
}

func horner(coeffs []float64, s complex128) complex128 {
	acc := complex(0, 0)
	for _, c := range coeffs {
		acc = acc*s + complex(c, 0)
	}
	return acc
}

func (tf TransferFunction) Poles() ([]Complex, error) {
	return roots(tf.Den)
}

func (tf TransferFunction) Zeros() ([]Complex, error) {
	return roots(tf.Num)
}

// roots solves polynomials up to degree two. A vanishing leading
// coefficient is rejected rather than silently reducing the degree, since
// that would corrupt the pole count.
func roots(coeffs []float64) ([]Complex, error) {
	if len(coeffs) == 0 || len(coeffs) == 1 {
		return []Complex{}, nil
	}
	if coeffs[0] == 0 {
		return nil, &dynamo.ParameterError{Name: "leading coefficient", Value: 0, Reason: "degenerate polynomial"}
	}

	switch len(coeffs) {
	case 2:
		return []Complex{{Re: -coeffs[1] / coeffs[0]}}, nil
	case 3:
		a, b, c := coeffs[0], coeffs[1], coeffs[2]
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			return []Complex{
				{Re: (-b + sq) / (2 * a)},
				{Re: (-b - sq) / (2 * a)},
			}, nil
		}
		re := -b / (2 * a)
		im := math.Sqrt(-disc) / (2 * a)
		return []Complex{
			{Re: re, Im: im},
			{Re: re, Im: -im},
		}, nil
	default:
		return nil, fmt.Errorf("roots: degree %d not supported: %w", len(coeffs)-1, dynamo.ErrInvalidParameter)
	}
}

type Stability int

const (
	Stable Stability = iota
	MarginallyStable
	Unstable
)

func (s Stability) String() string {
	switch s {
	case Stable:
		return "STABLE"
	case MarginallyStable:
		return "MARGINALLY STABLE"
	default:
		return "UNSTABLE"
	}
}

// Classify derives stability from pole real parts: Stable when all are
// strictly negative, Unstable when any is strictly positive, marginal
// otherwise.
func Classify(poles []Complex) Stability {
	marginal := false
	for _, p := range poles {
		if p.Re > 0 {
			return Unstable
		}
		if p.Re == 0 {
			marginal = true
		}
	}
	if marginal {
		return MarginallyStable
	}
	return Stable
}

// Options tune the frequency sweep.
type Options struct {
	MaxFreq float64
	Points  int
}

func DefaultOptions() Options {
	return Options{MaxFreq: DefaultMaxFreq, Points: DefaultPoints}
}

func (o Options) Validate() error {
	if o.MaxFreq <= 0 {
		return &dynamo.ParameterError{Name: "max_freq", Value: o.MaxFreq, Reason: "must be positive"}
	}
	if o.Points < 2 {
		return &dynamo.ParameterError{Name: "points", Value: float64(o.Points), Reason: "need at least 2 samples"}
	}
	return nil
}

// FrequencyResponse holds one Bode sweep plus the pole/zero sets.
// Immutable once returned; a pure function of its inputs.
type FrequencyResponse struct {
	Frequencies []float64
	MagnitudeDB []float64
	PhaseDeg    []float64
	Poles       []Complex
	Zeros       []Complex
}

func (r *FrequencyResponse) Stability() Stability {
	return Classify(r.Poles)
}

// Analyze computes the transfer function H(s) = 1/(m*s^2+c*s+k), its poles
// and zeros, and the Bode sweep over [MinFreq, opts.MaxFreq] rad/s,
// log-spaced ascending. Magnitude is in dB with the forced-response shift
// 20*log10(F0*w) applied uniformly (skipped when F0*w is zero, which would
// produce non-finite output); phase is in degrees, unwrapped.
func Analyze(p oscillator.Params, f oscillator.Forcing, opts Options) (*FrequencyResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tf := ForOscillator(p)

	poles, err := tf.Poles()
	if err != nil {
		return nil, err
	}
	zeros, err := tf.Zeros()
	if err != nil {
		return nil, err
	}

	freqs := Logspace(MinFreq, opts.MaxFreq, opts.Points)

	magDB := make([]float64, len(freqs))
	phase := make([]float64, len(freqs))

	shift := 0.0
	if f.Amplitude*f.Omega > 0 {
		shift = 20 * math.Log10(f.Amplitude*f.Omega)
	}

	for i, w := range freqs {
		h := tf.At(complex(0, w))
		magDB[i] = 20*math.Log10(cmplx.Abs(h)) + shift
		phase[i] = cmplx.Phase(h)
	}

	unwrap(phase)
	for i := range phase {
		phase[i] *= 180 / math.Pi
	}

	return &FrequencyResponse{
		Frequencies: freqs,
		MagnitudeDB: magDB,
		PhaseDeg:    phase,
		Poles:       poles,
		Zeros:       zeros,
	}, nil
}

// Logspace returns n points log-uniformly spaced over [lo, hi], ascending.
func Logspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	logLo := math.Log10(lo)
	logHi := math.Log10(hi)
	for i := 0; i < n; i++ {
		out[i] = math.Pow(10, logLo+(logHi-logLo)*float64(i)/float64(n-1))
	}
	out[0] = lo
	out[n-1] = hi
	return out
}

// unwrap removes jumps larger than pi between consecutive radian samples so
// the converted curve shows no spurious ±360 degree steps.
func unwrap(phase []float64) {
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		diff := phase[i] + offset - phase[i-1]
		for diff > math.Pi {
			offset -= 2 * math.Pi
			diff -= 2 * math.Pi
		}
		for diff < -math.Pi {
			offset += 2 * math.Pi
			diff += 2 * math.Pi
		}
		phase[i] += offset
	}
}
