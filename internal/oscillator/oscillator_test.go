package oscillator

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/oscillab/internal/dynamo"
)

func TestDerivedQuantities(t *testing.T) {
	p := Params{Mass: 1.0, Damping: 2.0, Stiffness: 10.0}

	wn := p.NaturalFrequency()
	if math.Abs(wn-math.Sqrt(10)) > 1e-12 {
		t.Errorf("expected wn=sqrt(10), got %f", wn)
	}

	zeta := p.DampingRatio()
	expected := 2.0 / (2 * math.Sqrt(10))
	if math.Abs(zeta-expected) > 1e-12 {
		t.Errorf("expected zeta=%f, got %f", expected, zeta)
	}
}

func TestRegime(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected Regime
	}{
		{"underdamped", Params{Mass: 1, Damping: 0.5, Stiffness: 20}, Underdamped},
		{"critical", Params{Mass: 1, Damping: 2, Stiffness: 1}, CriticallyDamped},
		{"overdamped", Params{Mass: 1, Damping: 10, Stiffness: 5}, Overdamped},
		{"undamped", Params{Mass: 1, Damping: 0, Stiffness: 10}, Underdamped},
	}

	for _, tt := range tests {
		if got := tt.params.Regime(); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Params{Mass: 1, Damping: 0, Stiffness: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := []Params{
		{Mass: 0, Damping: 1, Stiffness: 10},
		{Mass: -1, Damping: 1, Stiffness: 10},
		{Mass: 1, Damping: 1, Stiffness: 0},
		{Mass: 1, Damping: -0.1, Stiffness: 10},
	}

	for i, p := range invalid {
		err := p.Validate()
		if err == nil {
			t.Errorf("case %d: expected error", i)
			continue
		}
		if !errors.Is(err, dynamo.ErrInvalidParameter) {
			t.Errorf("case %d: expected ErrInvalidParameter, got %v", i, err)
		}
	}
}

func TestForcingValidate(t *testing.T) {
	if err := (Forcing{Amplitude: 0, Omega: 1}).Validate(); err != nil {
		t.Errorf("zero amplitude should be valid: %v", err)
	}
	if err := (Forcing{Amplitude: -1, Omega: 1}).Validate(); err == nil {
		t.Error("negative amplitude should fail")
	}
	if err := (Forcing{Amplitude: 1, Omega: 0}).Validate(); err == nil {
		t.Error("zero omega should fail")
	}
}

func TestDerive(t *testing.T) {
	osc := New(Params{Mass: 2, Damping: 1, Stiffness: 8})

	// at x=1, v=2 with force 4: a = (4 - 1*2 - 8*1) / 2 = -3
	dx := osc.Derive(dynamo.State{1, 2}, dynamo.Control{4}, 0)

	if dx[0] != 2 {
		t.Errorf("expected dx/dt = v = 2, got %f", dx[0])
	}
	if math.Abs(dx[1]-(-3)) > 1e-12 {
		t.Errorf("expected dv/dt = -3, got %f", dx[1])
	}
}

func TestDeriveNoForce(t *testing.T) {
	osc := New(Params{Mass: 1, Damping: 0, Stiffness: 4})

	dx := osc.Derive(dynamo.State{1, 0}, nil, 0)
	if dx[1] != -4 {
		t.Errorf("expected dv/dt = -4, got %f", dx[1])
	}
}

func TestEnergy(t *testing.T) {
	osc := New(Params{Mass: 2, Damping: 0, Stiffness: 8})

	// KE = 0.5*2*3^2 = 9, PE = 0.5*8*1^2 = 4
	e := osc.Energy(dynamo.State{1, 3})
	if math.Abs(e-13) > 1e-12 {
		t.Errorf("expected energy 13, got %f", e)
	}
}

func TestSetParam(t *testing.T) {
	osc := Default()

	if err := osc.SetParam("mass", 2.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if osc.Mass != 2.5 {
		t.Errorf("expected mass 2.5, got %f", osc.Mass)
	}

	if err := osc.SetParam("mass", 0); err == nil {
		t.Error("expected error for zero mass")
	}
	if err := osc.SetParam("damping", -1); err == nil {
		t.Error("expected error for negative damping")
	}
	if err := osc.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
