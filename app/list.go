package app

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/echoverse/echoverse/internal/apperr"
	"github.com/echoverse/echoverse/internal/capsule"
	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/ui"
)

const (
	noEntriesMsg = "No messages yet. Record one with 'echoverse record'"
	tableDate    = "Jan 02, 2006 03:04 PM"
)

const (
	sortCreated = "created"
	sortTitle   = "title"
)

var errUnknownSort = &apperr.Error{
	Message: "unknown sort order %q: use created or title",
}

// sortEntries orders entries newest first, or naturally by title.
func sortEntries(entries []models.AudioEntry, by string) error {
	switch by {
	case sortCreated, "":
		slices.SortStableFunc(entries, func(a, b models.AudioEntry) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case sortTitle:
		slices.SortStableFunc(entries, func(a, b models.AudioEntry) int {
			switch {
			case natural.Less(a.Title, b.Title):
				return -1
			case natural.Less(b.Title, a.Title):
				return 1
			}

			return 0
		})
	default:
		return errUnknownSort.Fmt(by)
	}

	return nil
}

func statusText(e *models.AudioEntry, now time.Time) string {
	if e.IsUnlocked {
		return ui.Green("unlocked")
	}

	return ui.Red("locked") + " (" + timeutil.Countdown(capsule.Remaining(e, now)) + ")"
}

var tableHeader = []string{"#", "ID", "TITLE", "MOOD", "RECORDED", "UNLOCKS", "STATUS"}

// printEntriesTable prints an entry table to w. Locked entries are muted.
func printEntriesTable(w io.Writer, entries []models.AudioEntry, now time.Time) error {
	tableBody := make([][]string, len(entries))

	var locked int

	for i := range entries {
		e := &entries[i]

		if !e.IsUnlocked {
			locked++
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			e.ID,
			e.Title,
			ui.Mood(e.Mood),
			e.CreatedAt.Format(tableDate),
			e.UnlockAt.Format(tableDate),
			statusText(e, now),
		}
	}

	return ui.PrintTable(w, tableBody, ui.TableOptions{
		Header: tableHeader,
		Muted: func(row int) bool {
			return !entries[row].IsUnlocked
		},
		Caption: fmt.Sprintf("%d message(s), %d still locked", len(entries), locked),
	})
}

// printTimeline prints one table per month, most recent month first.
func printTimeline(w io.Writer, entries []models.AudioEntry, now time.Time) error {
	for _, g := range capsule.Group(entries) {
		heading := fmt.Sprintf("%s %d", g.Month, g.Year)
		fmt.Fprintln(w, ui.Yellow(strings.ToUpper(heading)))

		if err := printEntriesTable(w, g.Entries, now); err != nil {
			return err
		}
	}

	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// listEntries prints the entries as a timeline, or as one table when they
// are sorted by title.
func listEntries(w io.Writer, entries []models.AudioEntry, by string, now time.Time) error {
	if len(entries) == 0 {
		pterm.Fprintln(w, pterm.Info.Sprint(noEntriesMsg))
		return nil
	}

	if err := sortEntries(entries, by); err != nil {
		return err
	}

	if by == sortTitle {
		return printEntriesTable(w, entries, now)
	}

	return printTimeline(w, entries, now)
}

// printEntry prints the details of a single entry.
func printEntry(w io.Writer, e *models.AudioEntry, now time.Time) {
	ambience := string(e.BackgroundAmbience)
	if ambience == "" {
		ambience = string(models.Silence)
	}

	rows := [][2]string{
		{"Title", ui.Highlight(e.Title)},
		{"Mood", ui.Mood(e.Mood)},
		{"Recorded", e.CreatedAt.Format(tableDate)},
		{"Unlocks", e.UnlockAt.Format(tableDate)},
		{"Locked for", fmt.Sprintf("%d days", e.DaysLocked())},
		{"Status", statusText(e, now)},
		{"Ambience", ambience},
	}

	if e.IsUnlocked {
		rows = append(rows, [2]string{"Audio", e.AudioLocator})

		if e.Reflection != "" {
			rows = append(rows, [2]string{"Reflection", e.Reflection})
		}
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%-11s %s\n", r[0]+":", r[1])
	}
}
