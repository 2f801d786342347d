// Package capsule decides when time capsule entries unlock and arranges
// them on a timeline
package capsule

import (
	"cmp"
	"slices"
	"time"

	"github.com/echoverse/echoverse/internal/models"
)

// Reconcile unlocks every locked entry whose unlock time is at or before
// now. It returns the updated entries in their original order together with
// the entries that were unlocked by this call. Entries that do not change
// are returned untouched; when nothing changes the input slice itself is
// returned. The input is never modified.
func Reconcile(
	entries []models.AudioEntry,
	now time.Time,
) (updated, unlocked []models.AudioEntry) {
	updated = entries

	for i := range entries {
		e := entries[i]

		if e.IsUnlocked || e.UnlockAt.After(now) {
			continue
		}

		if len(unlocked) == 0 {
			updated = slices.Clone(entries)
		}

		e.IsUnlocked = true
		updated[i] = e
		unlocked = append(unlocked, e)
	}

	return updated, unlocked
}

// Due reports whether the entry is locked but its unlock time has passed.
func Due(e *models.AudioEntry, now time.Time) bool {
	return !e.IsUnlocked && !e.UnlockAt.After(now)
}

// Remaining returns the time left until the entry unlocks, or zero.
func Remaining(e *models.AudioEntry, now time.Time) time.Duration {
	if e.IsUnlocked {
		return 0
	}

	return max(e.UnlockAt.Sub(now), 0)
}

type monthKey struct {
	year  int
	month time.Month
}

// Group buckets entries by the year and month they were created, most
// recent month first. Entries keep their relative order inside a group.
func Group(entries []models.AudioEntry) []models.TimelineGroup {
	index := make(map[monthKey]int)

	var groups []models.TimelineGroup

	for i := range entries {
		e := entries[i]
		key := monthKey{e.CreatedAt.Year(), e.CreatedAt.Month()}

		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos

			groups = append(groups, models.TimelineGroup{
				Year:  key.year,
				Month: key.month,
			})
		}

		groups[pos].Entries = append(groups[pos].Entries, e)
	}

	slices.SortFunc(groups, func(a, b models.TimelineGroup) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}

		return cmp.Compare(b.Month, a.Month)
	})

	return groups
}
