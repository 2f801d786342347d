package playback

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"

	"github.com/echoverse/echoverse/internal/models"
)

// piano notes in Hz: a slow C major arpeggio
var pianoNotes = []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63}

const noteLength = 700 * time.Millisecond

// Ambience returns an endless background streamer for the given kind.
// Silence and the empty value return nil.
func Ambience(kind models.Ambience, sr beep.SampleRate) (beep.Streamer, error) {
	switch kind {
	case "", models.Silence:
		return nil, nil
	case models.Rain:
		return &effects.Volume{
			Streamer: rain(sr, rand.New(rand.NewPCG(1, 2))),
			Base:     2,
			Volume:   -2,
		}, nil
	case models.Piano:
		s, err := piano(sr)
		if err != nil {
			return nil, err
		}

		return &effects.Volume{
			Streamer: s,
			Base:     2,
			Volume:   -3,
		}, nil
	}

	return nil, errUnknownAmbience.Fmt(kind)
}

// rain is low-passed white noise.
func rain(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	// one-pole low pass around 1.2kHz
	alpha := 1 - math.Exp(-2*math.Pi*1200/float64(sr))

	var last [2]float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			for ch := range 2 {
				noise := rng.Float64()*2 - 1
				last[ch] += alpha * (noise - last[ch])
				samples[i][ch] = last[ch]
			}
		}

		return len(samples), true
	})
}

// piano plays the arpeggio forever, each note fading out.
func piano(sr beep.SampleRate) (beep.Streamer, error) {
	tones := make([]beep.Streamer, len(pianoNotes))

	for i, freq := range pianoNotes {
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, err
		}

		tones[i] = tone
	}

	n := sr.N(noteLength)

	var next int

	return beep.Iterate(func() beep.Streamer {
		tone := tones[next%len(tones)]
		next++

		return &decay{Streamer: beep.Take(n, tone), total: n}
	}), nil
}

// decay fades a streamer out exponentially over total samples.
type decay struct {
	beep.Streamer
	total int
	pos   int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)

	for i := range samples[:n] {
		gain := math.Exp(-4 * float64(d.pos) / float64(d.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}

	return n, ok
}
