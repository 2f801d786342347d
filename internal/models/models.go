// Package models defines the persisted time capsule records
package models

import (
	"slices"
	"time"
)

// Mood is the feeling attached to a recording.
type Mood string

const (
	Happy      Mood = "happy"
	Calm       Mood = "calm"
	Reflective Mood = "reflective"
	Anxious    Mood = "anxious"
	Excited    Mood = "excited"
	Sad        Mood = "sad"
	Grateful   Mood = "grateful"
	Inspired   Mood = "inspired"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{
	Happy,
	Calm,
	Reflective,
	Anxious,
	Excited,
	Sad,
	Grateful,
	Inspired,
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	return slices.Contains(Moods, m)
}

// Ambience is the background sound played under an entry.
type Ambience string

const (
	Silence Ambience = "silence"
	Rain    Ambience = "rain"
	Piano   Ambience = "piano"
)

var Ambiences = []Ambience{Silence, Rain, Piano}

// Valid reports whether a is one of the known ambiences.
func (a Ambience) Valid() bool {
	return slices.Contains(Ambiences, a)
}

// AudioEntry is a recorded message that stays locked until UnlockAt.
type AudioEntry struct {
	CreatedAt          time.Time `json:"createdAt"`
	UnlockAt           time.Time `json:"unlockAt"`
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Title              string    `json:"title"`
	Mood               Mood      `json:"mood"`
	AudioLocator       string    `json:"audioLocator"`
	Reflection         string    `json:"reflection,omitempty"`
	BackgroundAmbience Ambience  `json:"backgroundAmbience,omitempty"`
	IsUnlocked         bool      `json:"isUnlocked"`
}

// DaysLocked returns the number of whole days between creation and unlock.
func (e *AudioEntry) DaysLocked() int {
	return int(e.UnlockAt.Sub(e.CreatedAt).Hours() / 24)
}

// TimelineGroup holds the entries created within one calendar month.
type TimelineGroup struct {
	Entries []AudioEntry `json:"entries"`
	Year    int          `json:"year"`
	Month   time.Month   `json:"month"`
}
