package ui

import (
	"github.com/pterm/pterm"

	"github.com/echoverse/echoverse/internal/models"
)

var DarkTheme = true

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Mood colours a mood label.
func Mood(m models.Mood) string {
	switch m {
	case models.Happy, models.Excited:
		return Yellow(m)
	case models.Calm, models.Grateful:
		return Green(m)
	case models.Reflective, models.Inspired:
		return Magenta(m)
	case models.Anxious, models.Sad:
		return Cyan(m)
	}

	return string(m)
}
