package journal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/store"
)

var errDiskFull = errors.New("disk full")

// memKV is an in-memory store.KV whose writes can be made to fail.
type memKV struct {
	data  map[string][]byte
	fails int
	saves int
	mu    sync.Mutex
}

func (m *memKV) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.data[key], nil
}

func (m *memKV) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++

	if m.fails > 0 {
		m.fails--
		return errDiskFull
	}

	if m.data == nil {
		m.data = make(map[string][]byte)
	}

	m.data[key] = append([]byte(nil), value...)

	return nil
}

func (m *memKV) Close() error {
	return nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newService(kv store.KV, c *clock, n Notifier) *Service {
	var seq int

	return New(kv, Options{
		UserID:     "user-1",
		Clock:      c.Now,
		Notifier:   n,
		Retries:    2,
		RetryDelay: time.Millisecond,
		NewID: func() string {
			seq++
			return fmt.Sprintf("entry-%d", seq)
		},
	}, nil)
}

func draft(title string, unlockAt time.Time) Draft {
	return Draft{
		Title:        title,
		Mood:         models.Calm,
		UnlockAt:     unlockAt,
		AudioLocator: "/tmp/" + title + ".wav",
	}
}

func TestCreate(t *testing.T) {
	c := &clock{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	s := newService(&memKV{}, c, nil)
	ctx := context.Background()

	first, err := s.Create(ctx, draft("first", c.now.Add(24*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, "entry-1", first.ID)
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, c.now, first.CreatedAt)
	assert.False(t, first.IsUnlocked)

	_, err = s.Create(ctx, draft("second", c.now.Add(48*time.Hour)))
	require.NoError(t, err)

	entries, err := s.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "second", entries[0].Title, "newest entry comes first")
	assert.Equal(t, "first", entries[1].Title)
}

func TestCreateValidation(t *testing.T) {
	c := &clock{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	future := c.now.Add(time.Hour)

	cases := []struct {
		want  error
		draft Draft
		name  string
	}{
		{name: "empty title", draft: draft(" ", future), want: errEmptyTitle},
		{name: "unlock now", draft: draft("a", c.now), want: errUnlockInPast},
		{name: "unlock in past", draft: draft("a", c.now.Add(-time.Hour)), want: errUnlockInPast},
		{
			name: "unknown mood",
			draft: func() Draft {
				d := draft("a", future)
				d.Mood = "bored"

				return d
			}(),
			want: errInvalidMood,
		},
		{
			name: "unknown ambience",
			draft: func() Draft {
				d := draft("a", future)
				d.BackgroundAmbience = "waves"

				return d
			}(),
			want: errInvalidAmbience,
		},
		{
			name: "no audio",
			draft: func() Draft {
				d := draft("a", future)
				d.AudioLocator = ""

				return d
			}(),
			want: errMissingAudio,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := &memKV{}
			s := newService(kv, c, nil)

			_, err := s.Create(context.Background(), tc.draft)

			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, kv.saves)
		})
	}
}

func TestNotAuthenticated(t *testing.T) {
	s := New(&memKV{}, Options{}, nil)
	ctx := context.Background()

	_, err := s.Entries(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.CheckUnlocked(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCheckUnlocked(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	n := &recordingNotifier{}
	s := newService(&memKV{}, c, n)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.Create(ctx, draft(fmt.Sprint(i), c.now.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	unlocked, err := s.CheckUnlocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	c.now = c.now.Add(2 * time.Hour)

	unlocked, err = s.CheckUnlocked(ctx)
	require.NoError(t, err)
	require.Len(t, unlocked, 2)

	for _, e := range unlocked {
		assert.True(t, e.IsUnlocked)
	}

	again, err := s.CheckUnlocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, again, "entries unlock once")

	assert.Equal(t, []string{
		"You have 2 new messages from your past self.",
	}, n.messages)

	entries, err := s.Entries(ctx)
	require.NoError(t, err)

	var open int

	for _, e := range entries {
		if e.IsUnlocked {
			open++
		}
	}

	assert.Equal(t, 2, open)
}

func TestCheckUnlockedRetries(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	kv := &memKV{}
	s := newService(kv, c, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, draft("a", c.now.Add(time.Hour)))
	require.NoError(t, err)

	c.now = c.now.Add(time.Hour)
	kv.fails = 2
	kv.saves = 0

	unlocked, err := s.CheckUnlocked(ctx)
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
	assert.Equal(t, 3, kv.saves)
}

func TestCheckUnlockedPersistenceFailure(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	kv := &memKV{}
	n := &recordingNotifier{}
	s := newService(kv, c, n)
	ctx := context.Background()

	_, err := s.Create(ctx, draft("a", c.now.Add(time.Hour)))
	require.NoError(t, err)

	c.now = c.now.Add(time.Hour)
	kv.fails = 10

	unlocked, err := s.CheckUnlocked(ctx)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, unlocked)
	assert.Empty(t, n.messages)

	entries, err := s.Entries(ctx)
	require.NoError(t, err)
	assert.False(t, entries[0].IsUnlocked)

	// reported once the write goes through
	kv.fails = 0

	unlocked, err = s.CheckUnlocked(ctx)
	require.NoError(t, err)
	assert.Len(t, unlocked, 1)
}

func TestCheckUnlockedInFlight(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	s := newService(&memKV{}, c, nil)

	s.mu.Lock()

	_, err := s.CheckUnlocked(context.Background())

	s.mu.Unlock()

	assert.ErrorIs(t, err, ErrReconcileInFlight)
}

func TestSaveReflection(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	s := newService(&memKV{}, c, nil)
	ctx := context.Background()

	e, err := s.Create(ctx, draft("a", c.now.Add(time.Hour)))
	require.NoError(t, err)

	_, err = s.SaveReflection(ctx, e.ID, "too soon")
	assert.ErrorIs(t, err, ErrEntryLocked)

	_, err = s.SaveReflection(ctx, "missing", "hello")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	c.now = c.now.Add(time.Hour)

	opened, err := s.Open(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, opened.IsUnlocked)

	updated, err := s.SaveReflection(ctx, e.ID, "  I made it.  ")
	require.NoError(t, err)
	assert.Equal(t, "I made it.", updated.Reflection)

	got, err := s.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestOpenLocked(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	s := newService(&memKV{}, c, nil)
	ctx := context.Background()

	e, err := s.Create(ctx, draft("a", time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = s.Open(ctx, e.ID)

	require.ErrorIs(t, err, ErrEntryLocked)
	assert.EqualError(t, err, "this message is locked until June 30, 2024")
}

func TestTimelineOnBolt(t *testing.T) {
	kv, err := store.Open(store.BackendBolt, filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = kv.Close()
	})

	c := &clock{now: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)}
	s := newService(kv, c, nil)
	ctx := context.Background()

	_, err = s.Create(ctx, draft("jan", c.now.Add(time.Hour)))
	require.NoError(t, err)

	c.now = time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	_, err = s.Create(ctx, draft("feb", c.now.Add(time.Hour)))
	require.NoError(t, err)

	groups, err := s.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, time.February, groups[0].Month)
	assert.Equal(t, "feb", groups[0].Entries[0].Title)
	assert.Equal(t, time.January, groups[1].Month)
	assert.Equal(t, "jan", groups[1].Entries[0].Title)
}

func TestUnlockMessage(t *testing.T) {
	assert.Equal(t, "You have 1 new message from your past self.", UnlockMessage(1))
	assert.Equal(t, "You have 3 new messages from your past self.", UnlockMessage(3))
}
