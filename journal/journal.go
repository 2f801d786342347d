// Package journal stores time capsule entries and unlocks them as their
// unlock time passes
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/echoverse/echoverse/internal/capsule"
	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/store"
)

const keyPrefix = "entries/"

// Notifier tells the user about newly unlocked entries.
type Notifier interface {
	Notify(title, message string) error
}

// Options configures a Service.
type Options struct {
	Notifier Notifier
	Clock    func() time.Time
	NewID    func() string
	// UserID identifies the signed in user. An empty id means nobody is
	// signed in.
	UserID string
	// Retries is how many extra attempts are made when saving fails.
	Retries    int
	RetryDelay time.Duration
}

// Draft holds the user supplied fields of a new entry.
type Draft struct {
	UnlockAt           time.Time
	Title              string
	Mood               models.Mood
	AudioLocator       string
	BackgroundAmbience models.Ambience
}

// Service reads and writes the entries of one user. Every write is a
// read-modify-write of the whole entry list, serialised by a mutex.
type Service struct {
	kv     store.KV
	logger *slog.Logger
	opts   Options
	mu     sync.Mutex
}

// New returns a journal service backed by kv.
func New(kv store.KV, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 200 * time.Millisecond
	}

	return &Service{
		kv:     kv,
		opts:   opts,
		logger: logger.With(slog.String("component", "journal")),
	}
}

// UnlockMessage is the notification text for n newly unlocked entries.
func UnlockMessage(n int) string {
	plural := ""
	if n > 1 {
		plural = "s"
	}

	return fmt.Sprintf("You have %d new message%s from your past self.", n, plural)
}

func (s *Service) key() (string, error) {
	if strings.TrimSpace(s.opts.UserID) == "" {
		return "", ErrNotAuthenticated
	}

	return keyPrefix + s.opts.UserID, nil
}

func (s *Service) load() ([]models.AudioEntry, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}

	b, err := s.kv.Load(key)
	if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return nil, nil
	}

	var entries []models.AudioEntry

	err = json.Unmarshal(b, &entries)
	if err != nil {
		return nil, errCorruptEntries.Wrap(err)
	}

	return entries, nil
}

// save writes the entries, retrying failed writes.
func (s *Service) save(ctx context.Context, entries []models.AudioEntry) error {
	key, err := s.key()
	if err != nil {
		return err
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return ErrPersistence.Wrap(err)
	}

	for attempt := 0; ; attempt++ {
		err = s.kv.Save(key, b)
		if err == nil {
			return nil
		}

		s.logger.Warn("saving entries failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)

		if attempt >= s.opts.Retries {
			return ErrPersistence.Wrap(err)
		}

		select {
		case <-ctx.Done():
			return ErrPersistence.Wrap(ctx.Err())
		case <-time.After(s.opts.RetryDelay * time.Duration(attempt+1)):
		}
	}
}

// Entries returns every entry, newest first.
func (s *Service) Entries(_ context.Context) ([]models.AudioEntry, error) {
	return s.load()
}

// Timeline returns the entries grouped by creation month.
func (s *Service) Timeline(ctx context.Context) ([]models.TimelineGroup, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	return capsule.Group(entries), nil
}

// Get returns the entry with the given id.
func (s *Service) Get(_ context.Context, id string) (models.AudioEntry, error) {
	entries, err := s.load()
	if err != nil {
		return models.AudioEntry{}, err
	}

	for i := range entries {
		if entries[i].ID == id {
			return entries[i], nil
		}
	}

	return models.AudioEntry{}, ErrEntryNotFound.Fmt(id)
}

func validate(d *Draft, now time.Time) error {
	if strings.TrimSpace(d.Title) == "" {
		return errEmptyTitle
	}

	if !d.Mood.Valid() {
		return errInvalidMood.Fmt(d.Mood)
	}

	if d.BackgroundAmbience != "" && !d.BackgroundAmbience.Valid() {
		return errInvalidAmbience.Fmt(d.BackgroundAmbience)
	}

	if d.AudioLocator == "" {
		return errMissingAudio
	}

	if !d.UnlockAt.After(now) {
		return errUnlockInPast
	}

	return nil
}

// Create stores a new locked entry.
func (s *Service) Create(ctx context.Context, d Draft) (models.AudioEntry, error) {
	now := s.opts.Clock()

	err := validate(&d, now)
	if err != nil {
		return models.AudioEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return models.AudioEntry{}, err
	}

	entry := models.AudioEntry{
		ID:                 s.opts.NewID(),
		UserID:             s.opts.UserID,
		Title:              strings.TrimSpace(d.Title),
		Mood:               d.Mood,
		CreatedAt:          now,
		UnlockAt:           d.UnlockAt,
		AudioLocator:       d.AudioLocator,
		BackgroundAmbience: d.BackgroundAmbience,
	}

	err = s.save(ctx, append([]models.AudioEntry{entry}, entries...))
	if err != nil {
		return models.AudioEntry{}, err
	}

	s.logger.Info("entry created",
		slog.String("id", entry.ID),
		slog.Time("unlock_at", entry.UnlockAt),
	)

	return entry, nil
}

// SaveReflection sets the reflection text of an entry.
func (s *Service) SaveReflection(
	ctx context.Context,
	id, reflection string,
) (models.AudioEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return models.AudioEntry{}, err
	}

	for i := range entries {
		if entries[i].ID != id {
			continue
		}

		if !entries[i].IsUnlocked {
			return models.AudioEntry{}, ErrEntryLocked.Fmt(
				entries[i].UnlockAt.Format("January 2, 2006"),
			)
		}

		entries[i].Reflection = strings.TrimSpace(reflection)

		err = s.save(ctx, entries)
		if err != nil {
			return models.AudioEntry{}, err
		}

		s.logger.Info("reflection saved", slog.String("id", id))

		return entries[i], nil
	}

	return models.AudioEntry{}, ErrEntryNotFound.Fmt(id)
}

// CheckUnlocked unlocks every entry whose time has come, saves the result,
// and notifies the user. The newly unlocked entries are returned only once
// they have been saved. If another write is pending the call returns
// ErrReconcileInFlight without doing anything.
func (s *Service) CheckUnlocked(ctx context.Context) ([]models.AudioEntry, error) {
	if !s.mu.TryLock() {
		return nil, ErrReconcileInFlight
	}

	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	updated, unlocked := capsule.Reconcile(entries, s.opts.Clock())
	if len(unlocked) == 0 {
		return nil, nil
	}

	err = s.save(ctx, updated)
	if err != nil {
		s.logger.Error("unlocked entries were not saved",
			slog.Int("count", len(unlocked)),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.logger.Info("entries unlocked", slog.Int("count", len(unlocked)))

	if s.opts.Notifier != nil {
		err = s.opts.Notifier.Notify("New messages unlocked!", UnlockMessage(len(unlocked)))
		if err != nil {
			s.logger.Warn("unable to send unlock notification", slog.Any("error", err))
		}
	}

	return unlocked, nil
}

// Open returns an entry that is ready to be played. Entries whose unlock
// time has passed are unlocked first.
func (s *Service) Open(ctx context.Context, id string) (models.AudioEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return entry, err
	}

	if entry.IsUnlocked {
		return entry, nil
	}

	if !capsule.Due(&entry, s.opts.Clock()) {
		return models.AudioEntry{}, ErrEntryLocked.Fmt(
			entry.UnlockAt.Format("January 2, 2006"),
		)
	}

	_, err = s.CheckUnlocked(ctx)
	if err != nil {
		return models.AudioEntry{}, err
	}

	return s.Get(ctx, id)
}
