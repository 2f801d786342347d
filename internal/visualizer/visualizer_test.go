package visualizer

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestReduceLength(t *testing.T) {
	sizes := []int{0, 1, 5, 19, 20, 21, 39, 40, 128, 1024}

	for _, n := range sizes {
		samples := make([]byte, n)
		for i := range samples {
			samples[i] = byte(i)
		}

		got := Reduce(samples, DefaultBars, DefaultScale)
		assert.Len(t, got, DefaultBars, "N=%d", n)

		for _, v := range got {
			assert.GreaterOrEqual(t, v, 2.0, "N=%d", n)
		}
	}
}

func TestReduceBuckets(t *testing.T) {
	samples := make([]byte, 128)
	for i := range samples {
		samples[i] = 200
	}

	// step = 6, average 200, 200/4 = 50
	got := Reduce(samples, DefaultBars, DefaultScale)

	want := make(Frame, DefaultBars)
	for i := range want {
		want[i] = 50
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceFloor(t *testing.T) {
	got := Reduce(make([]byte, 128), DefaultBars, DefaultScale)

	assert.Equal(t, Idle(DefaultBars, DefaultScale), got)
}

func TestReduceFewerSamplesThanBars(t *testing.T) {
	got := Reduce([]byte{40, 80, 4}, 5, DefaultScale)

	assert.Equal(t, Frame{10, 20, 2, 2, 2}, got)
}

func TestReduceCustomScale(t *testing.T) {
	samples := []byte{100, 100, 0, 0}

	got := Reduce(samples, 2, Scale{Divisor: 10, Floor: 1})

	assert.Equal(t, Frame{10, 1}, got)
}

func TestSynthetic(t *testing.T) {
	got := Synthetic(0, DefaultBars, DefaultScale)
	assert.Len(t, got, DefaultBars)

	for i, v := range got {
		want := math.Abs(10 + 6*math.Sin(float64(i)))
		assert.InDelta(t, want, v, 1e-9)
		assert.GreaterOrEqual(t, v, 2.0)
	}

	later := Synthetic(500*time.Millisecond, DefaultBars, DefaultScale)
	assert.NotEqual(t, got, later)
}

func TestNonPositiveBars(t *testing.T) {
	samples := []byte{10, 20, 30, 40}

	for _, bars := range []int{0, -1, -20} {
		assert.NotPanics(t, func() {
			assert.Empty(t, Idle(bars, DefaultScale))
			assert.Empty(t, Reduce(samples, bars, DefaultScale))
			assert.Empty(t, Synthetic(time.Second, bars, DefaultScale))
		})
	}
}
