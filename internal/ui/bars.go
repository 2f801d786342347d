package ui

import (
	"math"
	"strings"
)

const barCell = "█"

// Bars renders bar heights as columns of block characters, height rows tall.
// Each value is scaled against peak; a positive value always fills at least
// the bottom row.
func Bars(values []float64, height int, peak float64) string {
	if height < 1 || len(values) == 0 {
		return ""
	}

	levels := make([]int, len(values))

	for i, v := range values {
		if v <= 0 || peak <= 0 {
			continue
		}

		h := int(math.Ceil(v / peak * float64(height)))
		levels[i] = min(max(h, 1), height)
	}

	rows := make([]string, 0, height)
	cells := make([]string, len(values))

	for r := height; r >= 1; r-- {
		for i, h := range levels {
			if h >= r {
				cells[i] = barCell
			} else {
				cells[i] = " "
			}
		}

		rows = append(rows, strings.Join(cells, " "))
	}

	return strings.Join(rows, "\n")
}
