package viz

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	White   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	Magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	GraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// StabilityStyle picks a color for a stability label.
func StabilityStyle(label string) lipgloss.Style {
	switch label {
	case "STABLE":
		return Green
	case "MARGINALLY STABLE":
		return Yellow
	default:
		return Red
	}
}
