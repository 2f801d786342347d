package playback

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Sink plays streamers on an output device.
type Sink interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// Speaker is the system audio output.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (Speaker) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

func (Speaker) Lock() {
	speaker.Lock()
}

func (Speaker) Unlock() {
	speaker.Unlock()
}

func (Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
