// Package styles holds the shared lipgloss styles for the TUI views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorOk     = lipgloss.Color("#00CC00")
	ColorFail   = lipgloss.Color("#FF0000")
	ColorMuted  = lipgloss.Color("#666666")
	ColorAccent = lipgloss.Color("#7D56F4")
)

// Styles used across TUI views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorAccent).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginBottom(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorFail).
			Bold(true)

	OkStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorOk)

	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFail)
)

// StatusStyle returns the style for a module run's success flag.
func StatusStyle(success bool) lipgloss.Style {
	if success {
		return OkStyle
	}
	return FailStyle
}
