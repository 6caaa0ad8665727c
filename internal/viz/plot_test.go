package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
)

func TestDownsample(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}

	out := Downsample(data, 10)
	if len(out) != 10 {
		t.Fatalf("expected 10 points, got %d", len(out))
	}
	if out[0] != 0 || out[9] != 99 {
		t.Errorf("endpoints must survive downsampling, got %f and %f", out[0], out[9])
	}
	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Errorf("monotone input should stay monotone at %d", i)
		}
	}

	short := []float64{1, 2, 3}
	if got := Downsample(short, 10); len(got) != 3 {
		t.Errorf("short input should pass through, got %d points", len(got))
	}
}

func TestTrajectoryRender(t *testing.T) {
	result, err := solver.Solve(
		oscillator.Params{Mass: 1, Damping: 0.5, Stiffness: 20},
		oscillator.Forcing{Amplitude: 0, Omega: 1},
		oscillator.Initial{Position: 1},
		solver.Spec{Duration: 5, Points: 200},
	)
	if err != nil {
		t.Fatal(err)
	}

	out := Trajectory(result, 60, 8)
	if !strings.Contains(out, "position") || !strings.Contains(out, "velocity") {
		t.Error("plot should label both series")
	}
}

func TestBodeRender(t *testing.T) {
	resp, err := laplace.Analyze(
		oscillator.Params{Mass: 1, Damping: 2, Stiffness: 10},
		oscillator.Forcing{Amplitude: 1, Omega: 5},
		laplace.DefaultOptions(),
	)
	if err != nil {
		t.Fatal(err)
	}

	out := Bode(resp, 60, 8)
	if !strings.Contains(out, "magnitude") || !strings.Contains(out, "phase") {
		t.Error("plot should label magnitude and phase")
	}

	summary := PoleSummary(resp)
	if !strings.Contains(summary, "poles") || !strings.Contains(summary, "STABLE") {
		t.Errorf("summary missing poles or stability: %q", summary)
	}
	if !strings.Contains(summary, "zeros: none") {
		t.Errorf("summary should report the empty zero set: %q", summary)
	}
}
