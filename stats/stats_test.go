package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/models"
)

func entry(id string, created, unlock time.Time, unlocked bool, mood models.Mood) models.AudioEntry {
	return models.AudioEntry{
		ID:         id,
		Title:      "Message " + id,
		Mood:       mood,
		CreatedAt:  created,
		UnlockAt:   unlock,
		IsUnlocked: unlocked,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	entries := []models.AudioEntry{
		entry("1", day(2024, time.March, 1), day(2024, time.March, 11), true, models.Happy),
		entry("2", day(2024, time.March, 2), day(2024, time.April, 1), false, models.Calm),
		entry("3", day(2024, time.January, 5), day(2024, time.July, 5), false, models.Happy),
	}
	entries[0].Reflection = "so true"

	s := Compute(entries)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Unlocked)
	assert.Equal(t, 2, s.Locked)
	assert.Equal(t, 1, s.Reflections)
	assert.Equal(t, map[models.Mood]int{models.Happy: 2, models.Calm: 1}, s.Moods)

	// 10 + 30 + 182 days
	assert.InDelta(t, 74.0, s.AvgDaysLocked, 0.01)

	require.NotNil(t, s.NextUnlock)
	assert.Equal(t, "2", s.NextUnlock.ID)

	assert.Equal(t, []MonthCount{
		{Year: 2024, Month: time.March, Count: 2},
		{Year: 2024, Month: time.January, Count: 1},
	}, s.Months)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.AvgDaysLocked)
	assert.Nil(t, s.NextUnlock)
	assert.Empty(t, s.Months)
}

func TestShow(t *testing.T) {
	pterm.DisableColor()

	entries := []models.AudioEntry{
		entry("1", day(2024, time.March, 1), day(2024, time.March, 11), true, models.Grateful),
		entry("2", day(2024, time.February, 2), day(2024, time.April, 1), false, models.Sad),
	}

	var buf bytes.Buffer
	Show(&buf, Compute(entries), day(2024, time.March, 31))

	out := buf.String()
	assert.Contains(t, out, "Messages recorded: 2")
	assert.Contains(t, out, "Next unlock: Message 2 in 1d")
	assert.Contains(t, out, "grateful")
	assert.Contains(t, out, "Feb 2024")
}

func TestShowEmpty(t *testing.T) {
	var buf bytes.Buffer
	Show(&buf, Compute(nil), time.Now())

	assert.Contains(t, buf.String(), noEntriesMsg)
}

func TestMonthBarsOldestFirst(t *testing.T) {
	bars := monthBars([]MonthCount{
		{Year: 2024, Month: time.March, Count: 2},
		{Year: 2023, Month: time.December, Count: 1},
	})

	require.Len(t, bars, 2)
	assert.Equal(t, "Dec 2023", bars[0].Label)
	assert.Equal(t, "Mar 2024", bars[1].Label)
}
