// Package cli renders dashboard snapshots for the terminal using lipgloss.
package cli

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#FF6B6B")
	infoColor   = lipgloss.Color("#4ECDC4")
	subtleColor = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(infoColor)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	MetricStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 1)
)
