// Package tui is an interactive terminal explorer for the oscillator:
// adjust physical parameters and watch the trajectory and Bode views
// recompute live, with memoized results for unchanged tuples.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/oscillab/internal/cache"
	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
	"github.com/san-kum/oscillab/internal/viz"
)

type view int

const (
	viewTrajectory view = iota
	viewBode
)

type param struct {
	name  string
	value float64
	min   float64
	max   float64
	step  float64
}

// slider bounds mirror the dashboard controls this explorer replaces
func defaultParams() []param {
	return []param{
		{"mass", 1.0, 0.1, 10.0, 0.1},
		{"damping", 2.0, 0.0, 20.0, 0.1},
		{"stiffness", 10.0, 1.0, 100.0, 0.5},
		{"amplitude", 10.0, 0.0, 50.0, 0.5},
		{"omega", 5.0, 0.1, 20.0, 0.1},
		{"position", 1.0, -5.0, 5.0, 0.1},
		{"velocity", 0.0, -10.0, 10.0, 0.1},
		{"duration", 20.0, 1.0, 50.0, 1.0},
	}
}

const tuiPoints = 1000

type Model struct {
	params []param
	cursor int
	view   view

	width  int
	height int

	trajectories *cache.Store[cache.TrajectoryKey, *solver.Result]
	responses    *cache.Store[cache.ResponseKey, *laplace.FrequencyResponse]

	result *solver.Result
	resp   *laplace.FrequencyResponse
	err    error
}

func NewModel() Model {
	m := Model{
		params:       defaultParams(),
		trajectories: cache.New[cache.TrajectoryKey, *solver.Result](64),
		responses:    cache.New[cache.ResponseKey, *laplace.FrequencyResponse](64),
		width:        100,
		height:       32,
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.params)-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "shift+left", "H":
		m.adjust(-10)
	case "shift+right", "L":
		m.adjust(10)
	case "tab", "b":
		if m.view == viewTrajectory {
			m.view = viewBode
		} else {
			m.view = viewTrajectory
		}
	case "r":
		m.params = defaultParams()
		m.recompute()
	}
	return m, nil
}

func (m *Model) adjust(units float64) {
	p := &m.params[m.cursor]
	p.value += units * p.step
	if p.value < p.min {
		p.value = p.min
	}
	if p.value > p.max {
		p.value = p.max
	}
	m.recompute()
}

func (m *Model) get(name string) float64 {
	for _, p := range m.params {
		if p.name == name {
			return p.value
		}
	}
	return 0
}

func (m *Model) recompute() {
	sys := oscillator.Params{
		Mass:      m.get("mass"),
		Damping:   m.get("damping"),
		Stiffness: m.get("stiffness"),
	}
	forcing := oscillator.Forcing{
		Amplitude: m.get("amplitude"),
		Omega:     m.get("omega"),
	}
	init := oscillator.Initial{
		Position: m.get("position"),
		Velocity: m.get("velocity"),
	}
	spec := solver.Spec{Duration: m.get("duration"), Points: tuiPoints}

	trajKey := cache.TrajectoryKey{
		Mass: sys.Mass, Damping: sys.Damping, Stiffness: sys.Stiffness,
		Amplitude: forcing.Amplitude, Omega: forcing.Omega,
		Position: init.Position, Velocity: init.Velocity,
		Duration: spec.Duration, Points: spec.Points,
	}
	m.result, m.err = m.trajectories.GetOrCompute(trajKey, func() (*solver.Result, error) {
		return solver.Solve(sys, forcing, init, spec)
	})
	if m.err != nil {
		return
	}

	respKey := cache.ResponseKey{
		Mass: sys.Mass, Damping: sys.Damping, Stiffness: sys.Stiffness,
		Amplitude: forcing.Amplitude, Omega: forcing.Omega,
		MaxFreq: laplace.DefaultMaxFreq, Points: laplace.DefaultPoints,
	}
	m.resp, m.err = m.responses.GetOrCompute(respKey, func() (*laplace.FrequencyResponse, error) {
		return laplace.Analyze(sys, forcing, laplace.DefaultOptions())
	})
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(viz.HeaderStyle.Render("oscillab — damped harmonic oscillator explorer"))
	sb.WriteString("\n")

	sidebar := m.renderSidebar()
	chart := m.renderChart()

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", chart))
	sb.WriteString("\n")
	sb.WriteString(viz.HelpStyle.Render("↑/↓ select · ←/→ adjust (shift: ×10) · tab trajectory/bode · r reset · q quit"))

	return sb.String()
}

func (m Model) renderSidebar() string {
	var sb strings.Builder

	for i, p := range m.params {
		line := fmt.Sprintf("%-10s %8.2f", p.name, p.value)
		if i == m.cursor {
			sb.WriteString(viz.Magenta.Render("> " + line))
		} else {
			sb.WriteString(viz.Dim.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sys := oscillator.Params{
		Mass:      m.get("mass"),
		Damping:   m.get("damping"),
		Stiffness: m.get("stiffness"),
	}
	sb.WriteString("\n")
	sb.WriteString(viz.LabelStyle.Render("ωn (rad/s)") + viz.ValueStyle.Render(fmt.Sprintf("%.3f", sys.NaturalFrequency())) + "\n")
	sb.WriteString(viz.LabelStyle.Render("ζ") + viz.ValueStyle.Render(fmt.Sprintf("%.3f", sys.DampingRatio())) + "\n")
	sb.WriteString(viz.LabelStyle.Render("regime") + viz.ValueStyle.Render(sys.Regime().String()) + "\n")

	if m.resp != nil {
		label := m.resp.Stability().String()
		sb.WriteString(viz.LabelStyle.Render("stability") + viz.StabilityStyle(label).Render(label) + "\n")
	}

	hits, misses := m.trajectories.Stats()
	sb.WriteString("\n" + viz.Dim.Render(fmt.Sprintf("cache %d hit / %d miss", hits, misses)))

	return sb.String()
}

func (m Model) renderChart() string {
	if m.err != nil {
		return viz.Red.Render("error: " + m.err.Error())
	}

	chartWidth := m.width - 40
	if chartWidth < 40 {
		chartWidth = 40
	}
	chartHeight := (m.height - 14) / 2
	if chartHeight < 6 {
		chartHeight = 6
	}

	switch m.view {
	case viewBode:
		return viz.GraphStyle.Render(viz.Bode(m.resp, chartWidth, chartHeight) + "\n" + viz.PoleSummary(m.resp))
	default:
		return viz.GraphStyle.Render(viz.Trajectory(m.result, chartWidth, chartHeight))
	}
}

// Run starts the explorer and blocks until quit.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
