package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the counter screens.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style

	// Setup rows
	RowLabel  lipgloss.Style
	RowValue  lipgloss.Style
	RowActive lipgloss.Style

	// Active session
	Clock      lipgloss.Style
	Counter    lipgloss.Style
	HitButton  lipgloss.Style
	MissButton lipgloss.Style
	Flash      lipgloss.Style // Button just pressed
	Pulse      lipgloss.Style

	// Celebration
	Banner lipgloss.Style
	Asset  lipgloss.Style
	Record lipgloss.Style

	// Results
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style

	Panel lipgloss.Style
	Help  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	button := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder())

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		RowLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10),
		RowValue:  lipgloss.NewStyle(),
		RowActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),

		Clock:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		Counter:    lipgloss.NewStyle().Bold(true),
		HitButton:  button.BorderForeground(lipgloss.Color("46")).Foreground(lipgloss.Color("46")),
		MissButton: button.BorderForeground(lipgloss.Color("196")).Foreground(lipgloss.Color("196")),
		Flash:      lipgloss.NewStyle().Reverse(true),
		Pulse:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),

		Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Blink(true),
		Asset:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Record: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),

		StatLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20),
		StatValue: lipgloss.NewStyle().Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Failure:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
