// Package recorder captures bounded-length voice messages and drives the
// live visualizer while recording
package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/echoverse/echoverse/internal/device"
	"github.com/echoverse/echoverse/internal/sched"
	"github.com/echoverse/echoverse/internal/visualizer"
)

// Status is the state of a recording session.
type Status int

const (
	Idle Status = iota
	Acquiring
	Recording
	Paused
	Finalizing
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	case Finalizing:
		return "finalizing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// Options configures a session.
type Options struct {
	Scale visualizer.Scale
	// MaxDuration is the longest a recording may run. It is enforced on
	// tick boundaries, so a recording may overshoot by at most one tick.
	MaxDuration    time.Duration
	TickInterval   time.Duration
	SampleInterval time.Duration
	Bars           int
}

// DefaultOptions returns a one minute limit with a 100ms clock and 20 bars.
func DefaultOptions() Options {
	return Options{
		MaxDuration:    60 * time.Second,
		TickInterval:   100 * time.Millisecond,
		SampleInterval: 50 * time.Millisecond,
		Bars:           visualizer.DefaultBars,
		Scale:          visualizer.DefaultScale,
	}
}

func (o Options) normalise() Options {
	d := DefaultOptions()

	if o.MaxDuration <= 0 {
		o.MaxDuration = d.MaxDuration
	}

	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}

	if o.SampleInterval <= 0 {
		o.SampleInterval = d.SampleInterval
	}

	if o.Bars <= 0 {
		o.Bars = d.Bars
	}

	if o.Scale.Divisor <= 0 {
		o.Scale = d.Scale
	}

	return o
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	Err      error
	Artifact *Artifact
	Frame    visualizer.Frame
	Status   Status
	Elapsed  time.Duration
	Max      time.Duration
	Chunks   int
	Bytes    int
}

// Session is one recording. It owns at most one device stream at a time and
// releases it on every path out of Recording and Paused.
//
// Transitions, clock ticks and visualizer samples are serialised by a single
// mutex. Every scheduled callback carries the epoch it was scheduled in;
// cancelling tasks bumps the epoch so a callback that was already waiting
// for the lock does nothing.
type Session struct {
	dev      device.Device
	asm      Assembler
	sched    sched.Scheduler
	logger   *slog.Logger
	stream   device.Stream
	tick     sched.Task
	sample   sched.Task
	err      error
	artifact *Artifact
	frame    visualizer.Frame
	chunks   [][]byte
	opts     Options
	elapsed  time.Duration
	size     int
	epoch    uint64
	status   Status
	mu       sync.Mutex
	disposed bool
}

// New creates an idle session.
func New(
	dev device.Device,
	asm Assembler,
	scheduler sched.Scheduler,
	opts Options,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	opts = opts.normalise()

	return &Session{
		dev:    dev,
		asm:    asm,
		sched:  scheduler,
		opts:   opts,
		logger: logger.With(slog.String("component", "recorder")),
		frame:  visualizer.Idle(opts.Bars, opts.Scale),
	}
}

// Start acquires the device and begins recording. It may be called from
// Idle, Failed and Completed; a previous artifact is reclaimed first.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.disposed {
		s.mu.Unlock()
		return errSessionDisposed
	}

	switch s.status {
	case Idle, Failed, Completed:
	default:
		status := s.status
		s.mu.Unlock()

		return errInvalidTransition.Fmt("start", status)
	}

	s.resetLocked()
	s.status = Acquiring
	epoch := s.epoch

	s.mu.Unlock()

	stream, err := s.dev.Acquire(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.status != Acquiring {
		if err == nil {
			s.dev.Release(stream)
		}

		s.logger.Info("recording discarded while acquiring the microphone")

		return errAcquireAbandoned
	}

	if err != nil {
		s.status = Failed
		s.err = err

		s.logger.Error("unable to acquire the microphone", slog.Any("error", err))

		return err
	}

	s.stream = stream
	s.status = Recording
	s.scheduleLocked()

	s.logger.Info("recording started",
		slog.Duration("max_duration", s.opts.MaxDuration),
	)

	return nil
}

// TogglePause pauses a recording, or resumes a paused one. The device stays
// held while paused; the clock and the visualizer stop.
func (s *Session) TogglePause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case Recording:
		s.cancelTasksLocked()
		s.stream.Pause()
		s.status = Paused

		s.logger.Debug("recording paused", slog.Duration("elapsed", s.elapsed))
	case Paused:
		s.stream.Resume()
		s.status = Recording
		s.scheduleLocked()

		s.logger.Debug("recording resumed", slog.Duration("elapsed", s.elapsed))
	default:
		return errInvalidTransition.Fmt("pause", s.status)
	}

	return nil
}

// Stop finalises the recording into an artifact.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case Recording, Paused:
		return s.stopLocked()
	default:
		return errInvalidTransition.Fmt("stop", s.status)
	}
}

// Discard drops everything and returns the session to Idle. It is safe to
// call in any state.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Idle {
		s.logger.Info("recording discarded", slog.String("status", s.status.String()))
	}

	s.resetLocked()
}

// Dispose discards the session and refuses any further Start. The device
// and the artifact file never outlive a disposed session.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.disposed = true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:  s.status,
		Elapsed: s.elapsed,
		Max:     s.opts.MaxDuration,
		Frame:   append(visualizer.Frame(nil), s.frame...),
		Chunks:  len(s.chunks),
		Bytes:   s.size,
		Err:     s.err,
	}

	if s.artifact != nil {
		a := *s.artifact
		snap.Artifact = &a
	}

	return snap
}

// Options returns the effective options.
func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) scheduleLocked() {
	epoch := s.epoch

	s.tick = s.sched.Every(s.opts.TickInterval, func() {
		s.onTick(epoch)
	})

	s.sample = s.sched.Every(s.opts.SampleInterval, func() {
		s.onSample(epoch)
	})
}

func (s *Session) cancelTasksLocked() {
	s.epoch++

	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}

	if s.sample != nil {
		s.sample.Cancel()
		s.sample = nil
	}
}

func (s *Session) onTick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.status != Recording {
		return
	}

	if err := s.collectLocked(); err != nil {
		s.logger.Warn("capture device stopped delivering audio",
			slog.Any("error", err),
		)

		_ = s.stopLocked()

		return
	}

	s.elapsed = min(s.elapsed+s.opts.TickInterval, s.opts.MaxDuration)

	if s.elapsed >= s.opts.MaxDuration {
		s.logger.Info("maximum recording duration reached",
			slog.Duration("max_duration", s.opts.MaxDuration),
		)

		_ = s.stopLocked()
	}
}

func (s *Session) onSample(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.status != Recording {
		return
	}

	s.frame = visualizer.Reduce(s.stream.Frequencies(), s.opts.Bars, s.opts.Scale)
}

func (s *Session) collectLocked() error {
	chunk, err := s.stream.Drain()
	if len(chunk) > 0 {
		s.chunks = append(s.chunks, chunk)
		s.size += len(chunk)
	}

	return err
}

func (s *Session) stopLocked() error {
	s.cancelTasksLocked()
	s.status = Finalizing

	if err := s.collectLocked(); err != nil {
		s.logger.Warn("final drain failed", slog.Any("error", err))
	}

	format := s.stream.Format()

	s.dev.Release(s.stream)
	s.stream = nil

	artifact, err := s.asm.Assemble(format, s.chunks)
	if err != nil {
		s.status = Failed
		s.err = ErrEncoding.Wrap(err)
		s.chunks = nil
		s.size = 0

		s.logger.Error("unable to assemble the recording", slog.Any("error", err))

		return s.err
	}

	s.artifact = &artifact
	s.status = Completed

	s.logger.Info("recording completed",
		slog.Duration("elapsed", s.elapsed),
		slog.String("locator", artifact.Locator),
		slog.Int64("size", artifact.Size),
	)

	return nil
}

// resetLocked cancels tasks, releases the device, reclaims the artifact and
// restores the initial values.
func (s *Session) resetLocked() {
	s.cancelTasksLocked()

	if s.stream != nil {
		s.dev.Release(s.stream)
		s.stream = nil
	}

	if s.artifact != nil {
		if err := s.asm.Reclaim(*s.artifact); err != nil {
			s.logger.Warn("unable to reclaim recording",
				slog.String("locator", s.artifact.Locator),
				slog.Any("error", err),
			)
		}

		s.artifact = nil
	}

	s.status = Idle
	s.elapsed = 0
	s.chunks = nil
	s.size = 0
	s.err = nil
	s.frame = visualizer.Idle(s.opts.Bars, s.opts.Scale)
}

// Keep detaches the artifact from the session so Discard and Dispose no
// longer reclaim it. It is used once the artifact has been saved as an
// entry.
func (s *Session) Keep() (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Completed || s.artifact == nil {
		return Artifact{}, false
	}

	a := *s.artifact
	s.artifact = nil
	s.resetLocked()

	return a, true
}
