package recorder

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/device"
	"github.com/echoverse/echoverse/internal/sched"
	"github.com/echoverse/echoverse/internal/visualizer"
)

const tick = 100 * time.Millisecond

type failingAssembler struct {
	reclaimed int
}

func (f *failingAssembler) Assemble(device.Format, [][]byte) (Artifact, error) {
	return Artifact{}, errors.New("disk full")
}

func (f *failingAssembler) Reclaim(Artifact) error {
	f.reclaimed++
	return nil
}

// blockingDevice blocks Acquire until release is closed.
type blockingDevice struct {
	device.Synth
	entered chan struct{}
	release chan struct{}
}

func (b *blockingDevice) Acquire(ctx context.Context) (device.Stream, error) {
	close(b.entered)
	<-b.release

	return b.Synth.Acquire(ctx)
}

type fixture struct {
	dev   *device.Synth
	clock *sched.Manual
	sess  *Session
	dir   string
}

func newFixture(t *testing.T, max time.Duration) *fixture {
	t.Helper()

	f := &fixture{
		dev:   &device.Synth{},
		clock: &sched.Manual{},
		dir:   t.TempDir(),
	}

	opts := DefaultOptions()
	opts.MaxDuration = max

	f.sess = New(f.dev, &WAVAssembler{Dir: f.dir}, f.clock, opts, nil)

	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()

	require.NoError(t, f.sess.Start(context.Background()))
	require.Equal(t, Recording, f.sess.Snapshot().Status)
}

func TestAutoStopAtMaxDuration(t *testing.T) {
	f := newFixture(t, 60*time.Second)
	f.start(t)

	for range 600 {
		f.clock.Advance(tick)

		snap := f.sess.Snapshot()
		assert.LessOrEqual(t, snap.Elapsed, 60*time.Second+tick)
	}

	snap := f.sess.Snapshot()

	assert.Equal(t, Completed, snap.Status)
	assert.InDelta(t, 60.0, snap.Elapsed.Seconds(), 0.1)
	require.NotNil(t, snap.Artifact)
	assert.FileExists(t, snap.Artifact.Locator)
	assert.NotZero(t, snap.Chunks)

	assert.Equal(t, 1, f.dev.Acquired())
	assert.Equal(t, 1, f.dev.Released())
	assert.Equal(t, 0, f.clock.Active())

	// no callbacks after completion
	f.clock.Advance(10 * time.Second)
	assert.Equal(t, snap.Elapsed, f.sess.Snapshot().Elapsed)
	assert.Equal(t, 0, f.dev.Misuse())
}

func TestPauseFreezesClockAndSampling(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.start(t)

	f.clock.Advance(time.Second)

	require.NoError(t, f.sess.TogglePause())

	paused := f.sess.Snapshot()
	samples := f.dev.Samples()

	assert.Equal(t, Paused, paused.Status)
	assert.Equal(t, time.Second, paused.Elapsed)
	assert.Positive(t, samples)

	f.clock.Advance(5 * time.Second)

	assert.Equal(t, paused.Elapsed, f.sess.Snapshot().Elapsed)
	assert.Equal(t, paused.Frame, f.sess.Snapshot().Frame)
	assert.Equal(t, samples, f.dev.Samples())
	assert.Equal(t, 0, f.dev.Released(), "device stays held while paused")

	require.NoError(t, f.sess.TogglePause())

	f.clock.Advance(500 * time.Millisecond)

	assert.Equal(t, 1500*time.Millisecond, f.sess.Snapshot().Elapsed)
	assert.Greater(t, f.dev.Samples(), samples)
}

func TestStopWhilePaused(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.start(t)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.sess.TogglePause())
	require.NoError(t, f.sess.Stop())

	snap := f.sess.Snapshot()
	require.Equal(t, Completed, snap.Status)

	file, err := os.Open(snap.Artifact.Locator)
	require.NoError(t, err)

	defer file.Close()

	stream, format, err := wav.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, device.DefaultFormat.SampleRate, int(format.SampleRate))
	assert.Equal(t, 1, format.NumChannels)
	// 20 ticks of 100ms
	assert.Equal(t, 20*device.DefaultFormat.SampleRate/10, stream.Len())
	assert.Equal(t, 2*time.Second, snap.Artifact.Duration)
}

func TestDiscardFromEveryState(t *testing.T) {
	prepare := map[string]func(t *testing.T, f *fixture){
		"idle": func(*testing.T, *fixture) {},
		"recording": func(t *testing.T, f *fixture) {
			f.start(t)
			f.clock.Advance(time.Second)
		},
		"paused": func(t *testing.T, f *fixture) {
			f.start(t)
			f.clock.Advance(time.Second)
			require.NoError(t, f.sess.TogglePause())
		},
		"completed": func(t *testing.T, f *fixture) {
			f.start(t)
			f.clock.Advance(time.Second)
			require.NoError(t, f.sess.Stop())
		},
		"failed": func(t *testing.T, f *fixture) {
			f.dev.Err = device.ErrPermissionDenied
			require.Error(t, f.sess.Start(context.Background()))
		},
	}

	for name, fn := range prepare {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, time.Minute)
			initial := f.sess.Snapshot()

			fn(t, f)

			artifact := f.sess.Snapshot().Artifact

			f.sess.Discard()

			assert.Equal(t, initial, f.sess.Snapshot())
			assert.Equal(t, f.dev.Acquired(), f.dev.Released())
			assert.Equal(t, 0, f.clock.Active())

			if artifact != nil {
				assert.NoFileExists(t, artifact.Locator)
			}

			f.sess.Discard()
			assert.Equal(t, initial, f.sess.Snapshot())
		})
	}
}

func TestAcquireFailure(t *testing.T) {
	for _, want := range []error{device.ErrPermissionDenied, device.ErrDeviceUnavailable} {
		f := newFixture(t, time.Minute)
		f.dev.Err = want

		err := f.sess.Start(context.Background())

		assert.ErrorIs(t, err, want)

		snap := f.sess.Snapshot()
		assert.Equal(t, Failed, snap.Status)
		assert.ErrorIs(t, snap.Err, want)
		assert.Equal(t, 0, f.dev.Acquired())
		assert.Equal(t, 0, f.clock.Active())

		// retry after the user grants access
		f.dev.Err = nil
		f.start(t)
	}
}

func TestEncodingFailure(t *testing.T) {
	dev := &device.Synth{}
	clock := &sched.Manual{}
	asm := &failingAssembler{}

	sess := New(dev, asm, clock, DefaultOptions(), nil)

	require.NoError(t, sess.Start(context.Background()))
	clock.Advance(time.Second)

	err := sess.Stop()

	assert.ErrorIs(t, err, ErrEncoding)

	snap := sess.Snapshot()
	assert.Equal(t, Failed, snap.Status)
	assert.Nil(t, snap.Artifact)
	assert.Zero(t, snap.Chunks)
	assert.Equal(t, 1, dev.Released())
}

func TestInvalidTransitions(t *testing.T) {
	f := newFixture(t, time.Minute)

	assert.ErrorIs(t, f.sess.TogglePause(), errInvalidTransition)
	assert.ErrorIs(t, f.sess.Stop(), errInvalidTransition)

	f.start(t)

	assert.ErrorIs(t, f.sess.Start(context.Background()), errInvalidTransition)
	assert.Equal(t, 1, f.dev.Acquired())
}

func TestRestartReclaimsPreviousArtifact(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.start(t)
	f.clock.Advance(time.Second)
	require.NoError(t, f.sess.Stop())

	first := f.sess.Snapshot().Artifact
	require.NotNil(t, first)

	f.start(t)

	assert.NoFileExists(t, first.Locator)
	assert.Nil(t, f.sess.Snapshot().Artifact)
	assert.Zero(t, f.sess.Snapshot().Elapsed)
}

func TestKeepDetachesArtifact(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.start(t)
	f.clock.Advance(time.Second)
	require.NoError(t, f.sess.Stop())

	a, ok := f.sess.Keep()
	require.True(t, ok)

	f.sess.Dispose()

	assert.FileExists(t, a.Locator)
	assert.ErrorIs(t, f.sess.Start(context.Background()), errSessionDisposed)
}

func TestDisposeDuringAcquire(t *testing.T) {
	dev := &blockingDevice{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	clock := &sched.Manual{}

	sess := New(dev, &WAVAssembler{Dir: t.TempDir()}, clock, DefaultOptions(), nil)

	errc := make(chan error, 1)

	go func() {
		errc <- sess.Start(context.Background())
	}()

	<-dev.entered
	assert.Equal(t, Acquiring, sess.Snapshot().Status)

	sess.Dispose()
	close(dev.release)

	assert.ErrorIs(t, <-errc, errAcquireAbandoned)
	assert.Equal(t, 1, dev.Acquired())
	assert.Equal(t, 1, dev.Released())
	assert.Equal(t, Idle, sess.Snapshot().Status)
	assert.Equal(t, 0, clock.Active())
}

func TestVisualizerFrameUpdates(t *testing.T) {
	f := newFixture(t, time.Minute)

	assert.Equal(t, visualizer.Idle(visualizer.DefaultBars, visualizer.DefaultScale), f.sess.Snapshot().Frame)

	f.start(t)
	f.clock.Advance(50 * time.Millisecond)

	frame := f.sess.Snapshot().Frame
	assert.Len(t, frame, visualizer.DefaultBars)
	assert.NotEqual(t, visualizer.Idle(visualizer.DefaultBars, visualizer.DefaultScale), frame)
}

func TestPCMStreamerCountsWholeFrames(t *testing.T) {
	chunks := [][]byte{
		{0x01, 0x00, 0x02, 0x00, 0x03},
		{0x04, 0x00, 0x05},
		{0x06, 0x00},
	}

	p := newPCMStreamer(device.DefaultFormat, chunks)

	buf := make([][2]float64, 16)

	var streamed int
	for {
		n, ok := p.Stream(buf)
		streamed += n

		if !ok {
			break
		}
	}

	assert.Equal(t, 4, p.frames)
	assert.Equal(t, p.frames, streamed)
}
