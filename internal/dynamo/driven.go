package dynamo

// Driven binds a drive to a system so integrator stages evaluate the
// force at their own stage times rather than holding it over a step.
type Driven struct {
	Sys   System
	Drive Controller
}

func NewDriven(sys System, drive Controller) *Driven {
	return &Driven{Sys: sys, Drive: drive}
}

func (d *Driven) StateDim() int   { return d.Sys.StateDim() }
func (d *Driven) ControlDim() int { return 0 }

func (d *Driven) Derive(x State, u Control, t float64) State {
	return d.Sys.Derive(x, d.Drive.Compute(x, t), t)
}

// Energy forwards to the underlying system when it is Hamiltonian.
func (d *Driven) Energy(x State) float64 {
	if h, ok := d.Sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
