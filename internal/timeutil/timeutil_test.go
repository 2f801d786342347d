package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	got, err := ParseDate("in 30 days", now)
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 31, got.Day())

	got, err = ParseDate("2025-12-25", now)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 25, got.Day())

	_, err = ParseDate("  ", now)
	assert.Error(t, err)
}

func TestCountdown(t *testing.T) {
	cases := map[time.Duration]string{
		30 * time.Second:                 "less than a minute",
		5 * time.Minute:                  "5m",
		26*time.Hour + 3*time.Minute:     "1d 2h 3m",
		72 * time.Hour:                   "3d",
		49*time.Hour + 59*time.Second:    "2d 1h",
		time.Hour + 30*time.Minute + 999: "1h 30m",
	}

	for in, want := range cases {
		assert.Equal(t, want, Countdown(in), in.String())
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0:00", Clock(0))
	assert.Equal(t, "0:09", Clock(9900*time.Millisecond))
	assert.Equal(t, "1:00", Clock(time.Minute))
}
