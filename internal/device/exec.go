package device

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	readBufferSize = 4096
	// magnitudes are mapped onto 0-255 between these levels, in dBFS
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Exec captures raw PCM from the standard output of an external recorder
// such as `arecord -t raw` or `ffmpeg -f s16le -`.
type Exec struct {
	Logger *slog.Logger
	// Command is the recorder command line. It must write signed 16-bit
	// little-endian PCM in Format to stdout.
	Command string
	Format  Format
	// Window is the number of samples analysed per spectrum. Frequencies
	// returns Window/2 magnitudes.
	Window int
	// StartupTimeout bounds how long Acquire waits for the first audio.
	StartupTimeout time.Duration
}

type execStream struct {
	cmd      *exec.Cmd
	firstOut chan struct{}
	done     chan struct{}
	stderr   *lockedBuffer
	logger   *slog.Logger
	waitErr  error
	buf      []byte
	window   []int16
	format   Format
	size     int
	mu       sync.Mutex
	seenOnce sync.Once
	paused   bool
	released bool
}

type lockedBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.b.Len() > readBufferSize {
		return len(p), nil
	}

	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.b.String()
}

func (d *Exec) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	return slog.Default()
}

// Acquire starts the recorder process and waits until it produces audio,
// exits, or StartupTimeout passes.
func (d *Exec) Acquire(ctx context.Context) (Stream, error) {
	args, err := shellquote.Split(d.Command)
	if err != nil {
		return nil, errInvalidCommand.Fmt(d.Command).Wrap(err)
	}

	if len(args) == 0 {
		return nil, errInvalidCommand.Fmt(d.Command)
	}

	format := d.Format
	if format.SampleRate == 0 {
		format = DefaultFormat
	}

	size := d.Window
	if size <= 0 {
		size = 256
	}

	s := &execStream{
		cmd:      exec.Command(args[0], args[1:]...),
		firstOut: make(chan struct{}),
		done:     make(chan struct{}),
		stderr:   &lockedBuffer{},
		logger:   d.logger(),
		format:   format,
		size:     size,
	}

	s.cmd.Stderr = s.stderr

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, ErrDeviceUnavailable.Wrap(err)
	}

	err = s.cmd.Start()
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, ErrPermissionDenied.Wrap(err)
		}

		return nil, ErrDeviceUnavailable.Wrap(err)
	}

	go s.read(stdout)

	timeout := d.StartupTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.firstOut:
		return s, nil
	case <-timer.C:
		s.logger.Warn("capture device produced no audio during startup",
			slog.String("command", d.Command),
			slog.Duration("timeout", timeout),
		)

		return s, nil
	case <-s.done:
		return nil, classify(s.stderr.String(), s.waitErr)
	case <-ctx.Done():
		d.Release(s)
		return nil, ErrDeviceUnavailable.Wrap(ctx.Err())
	}
}

// classify maps a recorder that exited during startup to an error kind.
func classify(stderr string, err error) error {
	msg := strings.ToLower(stderr)

	if strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "eacces") ||
		strings.Contains(msg, "not permitted") {
		return ErrPermissionDenied.Wrap(errors.New(strings.TrimSpace(stderr)))
	}

	if err == nil {
		err = io.ErrUnexpectedEOF
	}

	if stderr != "" {
		err = errors.New(strings.TrimSpace(stderr))
	}

	return ErrDeviceUnavailable.Wrap(err)
}

// Release stops the recorder process. Releasing twice is a no-op.
func (d *Exec) Release(st Stream) {
	s, ok := st.(*execStream)
	if !ok || s == nil {
		return
	}

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}

	s.released = true
	s.mu.Unlock()

	if s.cmd.Process != nil {
		// SIGINT lets recorders flush before exiting
		if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
			_ = s.cmd.Process.Kill()
		}
	}

	select {
	case <-s.done:
	case <-time.After(time.Second):
		_ = s.cmd.Process.Kill()
		<-s.done
	}
}

func (s *execStream) read(r io.Reader) {
	defer close(s.done)

	p := make([]byte, readBufferSize)

	for {
		n, err := r.Read(p)
		if n > 0 {
			s.seenOnce.Do(func() { close(s.firstOut) })
			s.push(p[:n])
		}

		if err != nil {
			s.waitErr = s.cmd.Wait()
			return
		}
	}
}

func (s *execStream) push(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || s.released {
		return
	}

	s.buf = append(s.buf, p...)

	frame := s.format.Precision * s.format.NumChannels
	start := len(s.buf) - len(p)
	start -= start % frame

	// first channel only
	for i := start; i+frame <= len(s.buf); i += frame {
		v := int16(binary.LittleEndian.Uint16(s.buf[i:]))
		s.window = append(s.window, v)
	}

	if over := len(s.window) - s.size; over > 0 {
		s.window = s.window[over:]
	}
}

func (s *execStream) Format() Format {
	return s.format
}

func (s *execStream) Drain() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, errStreamReleased
	}

	frame := s.format.Precision * s.format.NumChannels
	n := len(s.buf) - len(s.buf)%frame

	out := make([]byte, n)
	copy(out, s.buf[:n])
	s.buf = s.buf[n:]

	select {
	case <-s.done:
		if n == 0 {
			return nil, ErrDeviceUnavailable.Wrap(classify(s.stderr.String(), s.waitErr))
		}
	default:
	}

	return out, nil
}

// Frequencies returns Window/2 magnitudes of the most recent window, scaled
// from dBFS onto 0-255.
func (s *execStream) Frequencies() []byte {
	s.mu.Lock()
	samples := make([]int16, len(s.window))
	copy(samples, s.window)
	s.mu.Unlock()

	return spectrum(samples, s.size)
}

func (s *execStream) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = true
}

func (s *execStream) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = false
}

// spectrum computes the Hann-windowed magnitude spectrum of the last size
// samples. Shorter input is left-padded with silence.
func spectrum(samples []int16, size int) []byte {
	bins := size / 2
	out := make([]byte, bins)

	if len(samples) < size {
		padded := make([]int16, size)
		copy(padded[size-len(samples):], samples)
		samples = padded
	}

	x := make([]float64, size)
	for i, v := range samples[len(samples)-size:] {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
		x[i] = float64(v) / math.MaxInt16 * w
	}

	coeffs := fourier.NewFFT(size).Coefficients(nil, x)

	for k := range bins {
		mag := cmplx.Abs(coeffs[k]) / float64(size)
		if mag == 0 {
			continue
		}

		db := 20 * math.Log10(mag)
		scaled := 255 * (db - minDecibels) / (maxDecibels - minDecibels)
		out[k] = byte(math.Max(0, math.Min(255, scaled)))
	}

	return out
}
