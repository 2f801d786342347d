// Package playback plays unlocked entries with a synthetic visualizer and
// optional background ambience
package playback

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/visualizer"
)

// Track is a decoded entry ready to be played.
type Track struct {
	sink     Sink
	stream   beep.StreamSeekCloser
	ambience beep.Streamer
	voice    *beep.Ctrl
	backing  *beep.Ctrl
	done     chan struct{}
	logger   *slog.Logger
	Entry    models.AudioEntry
	Format   beep.Format
	once     sync.Once
}

// Load decodes the recording of an unlocked entry. The entry's own
// background ambience wins over fallback.
func Load(
	entry models.AudioEntry,
	fallback models.Ambience,
	logger *slog.Logger,
) (*Track, error) {
	if !entry.IsUnlocked {
		return nil, ErrLocked.Fmt(entry.UnlockAt.Format(timeutil.DateFormat))
	}

	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(entry.AudioLocator)
	if err != nil {
		return nil, errMissingAudio.Fmt(entry.Title).Wrap(err)
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, errDecode.Fmt(entry.Title).Wrap(err)
	}

	kind := entry.BackgroundAmbience
	if kind == "" {
		kind = fallback
	}

	ambience, err := Ambience(kind, format.SampleRate)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return &Track{
		Entry:    entry,
		Format:   format,
		stream:   stream,
		ambience: ambience,
		done:     make(chan struct{}),
		logger:   logger.With(slog.String("component", "playback")),
	}, nil
}

// Length is the duration of the recording.
func (t *Track) Length() time.Duration {
	return t.Format.SampleRate.D(t.stream.Len())
}

// Position is how far playback has progressed.
func (t *Track) Position() time.Duration {
	if t.sink != nil {
		t.sink.Lock()
		defer t.sink.Unlock()
	}

	return t.Format.SampleRate.D(t.stream.Position())
}

// Frame returns the visualizer frame for the current position.
func (t *Track) Frame(bars int, scale visualizer.Scale) visualizer.Frame {
	return visualizer.Synthetic(t.Position(), bars, scale)
}

// Done is closed when the recording has played to the end.
func (t *Track) Done() <-chan struct{} {
	return t.done
}

// Play starts the recording and its ambience on sink.
func (t *Track) Play(sink Sink) error {
	sr := t.Format.SampleRate

	err := sink.Init(sr, sr.N(time.Second/10))
	if err != nil {
		return err
	}

	t.sink = sink

	t.voice = &beep.Ctrl{
		Streamer: beep.Seq(t.stream, beep.Callback(func() {
			t.once.Do(func() {
				close(t.done)
			})
		})),
	}

	if t.ambience != nil {
		t.backing = &beep.Ctrl{Streamer: t.ambience}
		sink.Play(t.backing)
	}

	sink.Play(t.voice)

	t.logger.Info("playback started",
		slog.String("id", t.Entry.ID),
		slog.Duration("length", t.Length()),
	)

	return nil
}

// TogglePause pauses or resumes playback and reports whether it is paused.
func (t *Track) TogglePause() bool {
	if t.sink == nil {
		return false
	}

	t.sink.Lock()
	defer t.sink.Unlock()

	t.voice.Paused = !t.voice.Paused

	if t.backing != nil {
		t.backing.Paused = t.voice.Paused
	}

	return t.voice.Paused
}

// Close stops playback and releases the recording.
func (t *Track) Close() error {
	if t.sink != nil {
		t.sink.Lock()
		t.voice.Streamer = nil

		if t.backing != nil {
			t.backing.Streamer = nil
		}

		t.sink.Unlock()
		t.sink.Close()
	}

	return t.stream.Close()
}
