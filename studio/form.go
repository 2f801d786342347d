package studio

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/journal"
	"github.com/echoverse/echoverse/recorder"
)

// details holds the form answers.
type details struct {
	title    string
	mood     models.Mood
	unlock   string
	ambience models.Ambience
}

func (m *Model) newForm() *huh.Form {
	// answers survive a failed save
	if m.details == nil {
		m.details = &details{
			mood:     models.Happy,
			unlock:   m.opts.DefaultUnlock,
			ambience: m.opts.Ambience,
		}
	}

	moods := make([]huh.Option[models.Mood], 0, len(models.Moods))
	for _, mood := range models.Moods {
		moods = append(moods, huh.NewOption(string(mood), mood))
	}

	ambiences := make([]huh.Option[models.Ambience], 0, len(models.Ambiences))
	for _, a := range models.Ambiences {
		ambiences = append(ambiences, huh.NewOption(string(a), a))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("A message for my future self").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a title is required")
					}

					return nil
				}).
				Value(&m.details.title),
			huh.NewSelect[models.Mood]().
				Title("How are you feeling?").
				Options(moods...).
				Value(&m.details.mood),
			huh.NewInput().
				Title("Unlock").
				Description("e.g. 'in 30 days', 'next new year', '2030-01-01'").
				Validate(func(s string) error {
					_, err := m.unlockAt(s)
					return err
				}).
				Value(&m.details.unlock),
			huh.NewSelect[models.Ambience]().
				Title("Background ambience").
				Options(ambiences...).
				Value(&m.details.ambience),
		),
	).WithShowHelp(true)
}

func (m *Model) unlockAt(s string) (time.Time, error) {
	now := m.opts.Now()

	at, err := timeutil.ParseDate(s, now)
	if err != nil {
		return at, err
	}

	if !at.After(now) {
		return at, errUnlockNotFuture
	}

	return at, nil
}

// draft turns the answers and the artifact into a new entry draft.
func (d *details) draft(a *recorder.Artifact, unlockAt time.Time) journal.Draft {
	return journal.Draft{
		Title:              strings.TrimSpace(d.title),
		Mood:               d.mood,
		UnlockAt:           unlockAt,
		AudioLocator:       a.Locator,
		BackgroundAmbience: d.ambience,
	}
}
