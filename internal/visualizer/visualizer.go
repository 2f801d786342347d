// Package visualizer turns audio energy into fixed-length bar frames
package visualizer

import (
	"math"
	"time"
)

// DefaultBars is the number of bars in a frame.
const DefaultBars = 20

// Frame is one set of bar heights. Every frame produced by this package has
// exactly the requested number of bars.
type Frame []float64

// Scale controls how averaged magnitudes map to bar heights.
type Scale struct {
	// Divisor scales an averaged byte magnitude (0-255) down to a bar height.
	Divisor int `mapstructure:"divisor"`
	// Floor is the minimum bar height so silence still shows a bar.
	Floor int `mapstructure:"floor"`
}

// DefaultScale maps 0-255 magnitudes onto 0-63 with a floor of 2.
var DefaultScale = Scale{Divisor: 4, Floor: 2}

func (s Scale) normalise() Scale {
	if s.Divisor <= 0 {
		s.Divisor = DefaultScale.Divisor
	}

	if s.Floor < 0 {
		s.Floor = 0
	}

	return s
}

// Idle returns a frame where every bar sits at the floor.
// A negative bar count yields an empty frame.
func Idle(bars int, scale Scale) Frame {
	scale = scale.normalise()

	f := make(Frame, max(bars, 0))
	for i := range f {
		f[i] = float64(scale.Floor)
	}

	return f
}

// Reduce partitions samples into bars equal buckets of floor(N/bars) samples
// and maps each bucket average through scale. Trailing samples that do not
// fill a bucket are ignored. With fewer samples than bars, bar i takes
// sample i on its own and the remaining bars sit at the floor.
func Reduce(samples []byte, bars int, scale Scale) Frame {
	scale = scale.normalise()

	bars = max(bars, 0)
	f := Idle(bars, scale)

	step := len(samples) / max(bars, 1)
	if step == 0 {
		for i := 0; i < bars && i < len(samples); i++ {
			f[i] = height(int(samples[i]), scale)
		}

		return f
	}

	for i := range bars {
		var sum int
		for _, v := range samples[i*step : (i+1)*step] {
			sum += int(v)
		}

		f[i] = height(sum/step, scale)
	}

	return f
}

func height(avg int, scale Scale) float64 {
	return float64(max(scale.Floor, avg/scale.Divisor))
}

// Synthetic produces a pseudo-animated frame for when no live spectrum is
// available, e.g. during playback. Bar i is max(floor, |10 + 6 sin(3t + i)|)
// where t is the playback position in seconds.
func Synthetic(t time.Duration, bars int, scale Scale) Frame {
	scale = scale.normalise()

	f := make(Frame, max(bars, 0))
	for i := range f {
		phase := t.Seconds()*3 + float64(i)
		f[i] = math.Max(float64(scale.Floor), math.Abs(10+6*math.Sin(phase)))
	}

	return f
}
