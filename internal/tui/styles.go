package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles shared by the alumni terminal views
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Spinner lipgloss.Style
	Toast   lipgloss.Style
	Label   lipgloss.Style
	Panel   lipgloss.Style
}

// Colors
const (
	colorPurple = lipgloss.Color("63")
	colorGray   = lipgloss.Color("241")
	colorRed    = lipgloss.Color("196")
	colorGreen  = lipgloss.Color("46")
	colorCyan   = lipgloss.Color("86")
)

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple),
		Muted: lipgloss.NewStyle().
			Foreground(colorGray),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen),
		Spinner: lipgloss.NewStyle().
			Foreground(colorCyan),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(colorGray).
			Width(14),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 2),
	}
}
