// Package device abstracts microphone capture
package device

import (
	"context"
)

// Format describes the raw PCM produced by a stream. Samples are signed
// little-endian integers.
type Format struct {
	SampleRate  int
	NumChannels int
	Precision   int // bytes per sample
}

// DefaultFormat is 16-bit mono at 16kHz.
var DefaultFormat = Format{
	SampleRate:  16000,
	NumChannels: 1,
	Precision:   2,
}

// Stream is an open capture handle. None of its methods may be called after
// the stream is released.
type Stream interface {
	// Format reports the layout of the bytes returned by Drain.
	Format() Format
	// Drain returns the audio captured since the previous call.
	Drain() ([]byte, error)
	// Frequencies returns the current spectrum as byte magnitudes.
	Frequencies() []byte
	// Pause stops buffering audio while keeping the device held.
	Pause()
	// Resume restarts buffering after Pause.
	Resume()
}

// Device hands out exclusive capture streams.
type Device interface {
	// Acquire opens the device. It fails with ErrPermissionDenied or
	// ErrDeviceUnavailable.
	Acquire(ctx context.Context) (Stream, error)
	// Release closes the stream. Releasing twice is a no-op.
	Release(s Stream)
}
