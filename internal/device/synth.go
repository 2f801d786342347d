package device

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
)

// Synth is a deterministic device that produces a sine tone and a moving
// spectrum. It keeps counters so callers can verify that every acquired
// stream is released exactly once.
type Synth struct {
	// Err, when set, is returned by Acquire.
	Err error
	// Bins is the number of magnitudes returned by Frequencies.
	Bins int
	// ChunkSamples is the number of samples returned by each Drain.
	ChunkSamples int
	// Tone is the frequency of the generated sine wave in Hz.
	Tone float64

	mu       sync.Mutex
	acquired int
	released int
	samples  int
	misuse   int
}

type synthStream struct {
	dev      *Synth
	pos      int
	released bool
	paused   bool
}

// Acquire opens a synthetic stream.
func (d *Synth) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrDeviceUnavailable.Wrap(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}

	d.acquired++

	return &synthStream{dev: d}, nil
}

// Release closes the stream if it is still open.
func (d *Synth) Release(s Stream) {
	st, ok := s.(*synthStream)
	if !ok || st == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if st.released {
		return
	}

	st.released = true
	d.released++
}

// Acquired returns the number of successful acquisitions.
func (d *Synth) Acquired() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.acquired
}

// Released returns the number of streams released.
func (d *Synth) Released() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.released
}

// Samples returns how many times Frequencies has been called.
func (d *Synth) Samples() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.samples
}

// Misuse returns the number of calls made on released streams.
func (d *Synth) Misuse() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.misuse
}

func (s *synthStream) Format() Format {
	return DefaultFormat
}

func (s *synthStream) Drain() ([]byte, error) {
	d := s.dev

	d.mu.Lock()
	defer d.mu.Unlock()

	if s.released {
		d.misuse++
		return nil, errStreamReleased
	}

	if s.paused {
		return nil, nil
	}

	n := d.ChunkSamples
	if n <= 0 {
		n = DefaultFormat.SampleRate / 10
	}

	tone := d.Tone
	if tone <= 0 {
		tone = 440
	}

	buf := make([]byte, n*DefaultFormat.Precision)

	for i := range n {
		t := float64(s.pos+i) / float64(DefaultFormat.SampleRate)
		v := int16(math.Sin(2*math.Pi*tone*t) * math.MaxInt16 / 2)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}

	s.pos += n

	return buf, nil
}

func (s *synthStream) Frequencies() []byte {
	d := s.dev

	d.mu.Lock()
	defer d.mu.Unlock()

	if s.released {
		d.misuse++
		return nil
	}

	bins := d.Bins
	if bins <= 0 {
		bins = 128
	}

	out := make([]byte, bins)
	for i := range out {
		out[i] = byte((i*7 + d.samples*13) % 256)
	}

	d.samples++

	return out
}

func (s *synthStream) Pause() {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()

	s.paused = true
}

func (s *synthStream) Resume() {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()

	s.paused = false
}
