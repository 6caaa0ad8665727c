// Package viz renders trajectories and Bode sweeps as terminal charts.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/solver"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 12
)

// Trajectory plots position and velocity against time.
func Trajectory(result *solver.Result, width, height int) string {
	var sb strings.Builder

	sb.WriteString(asciigraph.Plot(Downsample(result.Position, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("position x(t), t in [0, %.1fs]", result.Times[len(result.Times)-1])),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(Downsample(result.Velocity, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("velocity v(t)"),
	))
	sb.WriteString("\n")

	return sb.String()
}

// Bode plots the magnitude and phase sweeps. The x-axis is the log-spaced
// frequency index, which renders a Bode plot correctly on a linear canvas.
func Bode(resp *laplace.FrequencyResponse, width, height int) string {
	var sb strings.Builder

	n := len(resp.Frequencies)
	sb.WriteString(asciigraph.Plot(Downsample(resp.MagnitudeDB, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("magnitude (dB), %.2f to %.0f rad/s log-spaced", resp.Frequencies[0], resp.Frequencies[n-1])),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(Downsample(resp.PhaseDeg, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("phase (degrees)"),
	))
	sb.WriteString("\n")

	return sb.String()
}

// PoleSummary lists poles, zeros and the stability classification.
func PoleSummary(resp *laplace.FrequencyResponse) string {
	var sb strings.Builder

	sb.WriteString("poles:\n")
	for _, p := range resp.Poles {
		sb.WriteString("  " + p.String() + "\n")
	}
	if len(resp.Zeros) == 0 {
		sb.WriteString("zeros: none\n")
	} else {
		sb.WriteString("zeros:\n")
		for _, z := range resp.Zeros {
			sb.WriteString("  " + z.String() + "\n")
		}
	}

	label := resp.Stability().String()
	sb.WriteString("stability: " + StabilityStyle(label).Render(label) + "\n")

	return sb.String()
}

// Downsample thins a series to at most max points, keeping endpoints.
func Downsample(data []float64, max int) []float64 {
	if len(data) <= max || max < 2 {
		return data
	}

	out := make([]float64, max)
	for i := 0; i < max; i++ {
		idx := i * (len(data) - 1) / (max - 1)
		out[i] = data[idx]
	}
	return out
}
