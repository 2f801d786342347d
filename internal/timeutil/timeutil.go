// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	HoursInADay = 24

	// DateFormat is how unlock dates are shown to the user.
	DateFormat = "January 2, 2006"
)

// ParseDate reads an absolute or relative date such as "in 30 days",
// "next friday 9am" or "2025-12-25" relative to now. Ambiguous dates
// resolve to the future.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		DefaultTimezone:     now.Location(),
		PreferredDateSource: dateparser.Future,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}

	return dt.Time, nil
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// Countdown renders a positive duration as days, hours and minutes, e.g.
// "3d 4h 12m". Durations under a minute render as "less than a minute".
func Countdown(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}

	days := int(d.Hours()) / HoursInADay
	hours := int(d.Hours()) % HoursInADay
	mins := int(d.Minutes()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}

	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}

	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}

	return strings.Join(parts, " ")
}

// Clock formats an elapsed duration as m:ss.
func Clock(d time.Duration) string {
	secs := int(d / time.Second)

	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
