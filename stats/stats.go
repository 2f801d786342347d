// Package stats reports EchoVerse journal statistics
package stats

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/echoverse/echoverse/internal/capsule"
	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/ui"
)

const (
	barChartChar  = "▇"
	noEntriesMsg  = "No messages found"
	monthsInChart = 12
)

// MonthCount is the number of entries recorded in one month.
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// Stats summarises the entries of one user.
type Stats struct {
	Moods         map[models.Mood]int `json:"moods"`
	NextUnlock    *models.AudioEntry  `json:"nextUnlock,omitempty"`
	Months        []MonthCount        `json:"months"`
	Total         int                 `json:"total"`
	Locked        int                 `json:"locked"`
	Unlocked      int                 `json:"unlocked"`
	Reflections   int                 `json:"reflections"`
	AvgDaysLocked float64             `json:"avgDaysLocked"`
}

// Compute derives statistics from entries. Months are listed most recent
// first, and NextUnlock is the locked entry closest to its unlock time.
func Compute(entries []models.AudioEntry) *Stats {
	s := &Stats{
		Moods:  make(map[models.Mood]int),
		Months: []MonthCount{},
		Total:  len(entries),
	}

	var daysLocked int

	for i := range entries {
		e := &entries[i]

		s.Moods[e.Mood]++
		daysLocked += e.DaysLocked()

		if e.Reflection != "" {
			s.Reflections++
		}

		if e.IsUnlocked {
			s.Unlocked++
			continue
		}

		s.Locked++

		if s.NextUnlock == nil || e.UnlockAt.Before(s.NextUnlock.UnlockAt) {
			next := *e
			s.NextUnlock = &next
		}
	}

	if s.Total > 0 {
		s.AvgDaysLocked = float64(daysLocked) / float64(s.Total)
	}

	for _, g := range capsule.Group(entries) {
		s.Months = append(s.Months, MonthCount{
			Year:  g.Year,
			Month: g.Month,
			Count: len(g.Entries),
		})
	}

	return s
}

func getSummary(s *Stats, now time.Time) string {
	header := fmt.Sprintf("%s\n", ui.Cyan("Summary"))

	total := fmt.Sprintln("Messages recorded:", ui.Green(s.Total))
	unlocked := fmt.Sprintln("Unlocked:", ui.Green(s.Unlocked))
	locked := fmt.Sprintln("Still locked:", ui.Green(s.Locked))
	reflections := fmt.Sprintln("Reflections written:", ui.Green(s.Reflections))
	avg := fmt.Sprintf(
		"Average time locked: %s\n",
		ui.Green(fmt.Sprintf("%d days", timeutil.Round(s.AvgDaysLocked))),
	)

	var next string
	if s.NextUnlock != nil {
		next = fmt.Sprintf(
			"Next unlock: %s in %s\n",
			ui.Highlight(s.NextUnlock.Title),
			ui.Green(timeutil.Countdown(capsule.Remaining(s.NextUnlock, now))),
		)
	}

	return header + total + unlocked + locked + reflections + avg + next
}

func getBarChart(header string, bars pterm.Bars) string {
	if len(bars) == 0 {
		return ""
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Cyan("\n"+header) + "\n" + chart
}

func moodBars(moods map[models.Mood]int) pterm.Bars {
	var bars pterm.Bars

	for _, m := range models.Moods {
		if moods[m] == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: string(m),
			Value: moods[m],
		})
	}

	slices.SortStableFunc(bars, func(a, b pterm.Bar) int {
		return cmp.Compare(b.Value, a.Value)
	})

	return bars
}

func monthBars(months []MonthCount) pterm.Bars {
	months = months[:min(len(months), monthsInChart)]

	bars := make(pterm.Bars, 0, len(months))

	// oldest at the top
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]

		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year),
			Value: m.Count,
		})
	}

	return bars
}

// Show writes the statistics report to w.
func Show(w io.Writer, s *Stats, now time.Time) {
	if s.Total == 0 {
		pterm.Fprintln(w, pterm.Info.Sprint(noEntriesMsg))
		return
	}

	output := fmt.Sprint(
		getSummary(s, now),
		getBarChart("Moods", moodBars(s.Moods)),
		getBarChart("Recorded per month", monthBars(s.Months)),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}
