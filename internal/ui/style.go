package ui

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles shared by the terminal screens.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Bars      lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style
}

const (
	accent    = "#B19CD9"
	secondary = "#12EAEA"
	hint      = "#777777"
	warn      = "#FFB347"
	danger    = "#FF6B6B"
)

// DefaultStyle returns the styles used by the recorder and the player.
func DefaultStyle() Style {
	return Style{
		Base:      lipgloss.NewStyle().Padding(1, 2),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color(secondary)),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(hint)),
		Bars:      lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color(warn)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(danger)),
	}
}
