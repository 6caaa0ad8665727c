package integrators

import (
	"math"

	"github.com/san-kum/oscillab/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0

	// dense output coefficients
	d1 = -12715105075.0 / 11282082432.0
	d3 = 87487479700.0 / 32700410799.0
	d4 = -10690763975.0 / 1880347072.0
	d5 = 701980252875.0 / 199316789632.0
	d6 = -1453857185.0 / 822651844.0
	d7 = 69997945.0 / 29380423.0
)

type RK45 struct {
	safety      float64
	minScale    float64
	maxScale    float64
	maxAttempts int
}

func NewRK45() *RK45 {
	return &RK45{
		safety:      0.9,
		minScale:    0.2,
		maxScale:    10.0,
		maxAttempts: 30,
	}
}

// slopes holds the seven stage derivatives of one Dormand-Prince step.
type slopes struct {
	k1, k3, k4, k5, k6, k7 dynamo.State
}

// Interpolant is the continuous fourth-order solution across one accepted
// Dormand-Prince step.
type Interpolant struct {
	t0, h              float64
	r1, r2, r3, r4, r5 dynamo.State
}

func (p *Interpolant) Span() (float64, float64) { return p.t0, p.t0 + p.h }

func (p *Interpolant) At(t float64) dynamo.State {
	theta := (t - p.t0) / p.h
	theta1 := 1 - theta

	out := make(dynamo.State, len(p.r1))
	for i := range out {
		out[i] = p.r1[i] + theta*(p.r2[i]+theta1*(p.r3[i]+theta*(p.r4[i]+theta1*p.r5[i])))
	}
	return out
}

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	xNew, _, _ := r.stages(dyn, x, u, t, dt)
	return xNew
}

// StepDense advances one adaptive step with continuous output. It shrinks dt
// until the weighted error norm passes, returning the accepted state, the
// interpolant over [t, t+dt], and the proposed next dt. The attempt count is
// bounded; exhausting it surfaces dynamo.ErrNumericalFailure.
func (r *RK45) StepDense(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64, tol dynamo.Tolerances) (dynamo.State, dynamo.Interpolant, float64, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if t+dt == t {
			return nil, nil, dt, dynamo.ErrStepTooSmall
		}

		xNew, ks, errEst := r.stages(dyn, x, u, t, dt)
		errNorm := weightedNorm(x, xNew, errEst, tol)

		if errNorm <= 1 {
			scale := r.maxScale
			if errNorm > 0 {
				scale = math.Min(r.maxScale, math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.2)))
			}
			return xNew, newInterpolant(x, xNew, ks, t, dt), dt * scale, nil
		}

		dt *= math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.25))
	}

	return nil, nil, dt, dynamo.ErrNumericalFailure
}

// stages computes the Dormand-Prince stage slopes, the fifth-order solution,
// and the embedded error estimate per component.
func (r *RK45) stages(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) (dynamo.State, slopes, dynamo.State) {
	n := len(x)

	k1 := dyn.Derive(x, u, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*b21*k1[i]
	}
	k2 := dyn.Derive(x2, u, t+a2*dt)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := dyn.Derive(x3, u, t+a3*dt)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := dyn.Derive(x4, u, t+a4*dt)

	x5 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := dyn.Derive(x5, u, t+a5*dt)

	x6 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := dyn.Derive(x6, u, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := dyn.Derive(xNew, u, t+dt)

	errEst := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		errEst[i] = dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
	}

	return xNew, slopes{k1: k1, k3: k3, k4: k4, k5: k5, k6: k6, k7: k7}, errEst
}

// weightedNorm is the RMS of the error estimate scaled by atol + rtol*|x|.
func weightedNorm(x, xNew, errEst dynamo.State, tol dynamo.Tolerances) float64 {
	sum := 0.0
	for i := range x {
		scale := tol.Abs + tol.Rel*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		e := errEst[i] / scale
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(x)))
}

func newInterpolant(x, xNew dynamo.State, ks slopes, t, dt float64) *Interpolant {
	n := len(x)

	p := &Interpolant{
		t0: t,
		h:  dt,
		r1: x.Clone(),
		r2: make(dynamo.State, n),
		r3: make(dynamo.State, n),
		r4: make(dynamo.State, n),
		r5: make(dynamo.State, n),
	}

	for i := 0; i < n; i++ {
		ydiff := xNew[i] - x[i]
		bspl := dt*ks.k1[i] - ydiff

		p.r2[i] = ydiff
		p.r3[i] = bspl
		p.r4[i] = ydiff - dt*ks.k7[i] - bspl
		p.r5[i] = dt * (d1*ks.k1[i] + d3*ks.k3[i] + d4*ks.k4[i] + d5*ks.k5[i] + d6*ks.k6[i] + d7*ks.k7[i])
	}

	return p
}
