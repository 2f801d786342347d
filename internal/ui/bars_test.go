package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBars(t *testing.T) {
	got := Bars([]float64{2, 63, 32}, 4, 63)

	want := "  █  \n" +
		"  █ █\n" +
		"  █ █\n" +
		"█ █ █"

	assert.Equal(t, want, got)
}

func TestBarsClampsAboveThePeak(t *testing.T) {
	assert.Equal(t, "█\n█", Bars([]float64{100}, 2, 10))
}

func TestBarsEmpty(t *testing.T) {
	assert.Empty(t, Bars(nil, 4, 63))
	assert.Empty(t, Bars([]float64{1}, 0, 63))
	assert.Equal(t, " \n ", Bars([]float64{0}, 2, 63))
}
