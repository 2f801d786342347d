package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withColor(t *testing.T) {
	t.Helper()

	prev := pterm.PrintColor
	pterm.EnableColor()

	t.Cleanup(func() {
		pterm.PrintColor = prev
	})
}

func TestPrintTableMutesRows(t *testing.T) {
	withColor(t)

	rows := [][]string{
		{"a", "Message 2", "unlocked"},
		{"b", "Message 10", "locked"},
	}

	var buf bytes.Buffer

	err := PrintTable(&buf, rows, TableOptions{
		Header: []string{"ID", "TITLE", "STATUS"},
		Muted: func(row int) bool {
			return rows[row][2] == "locked"
		},
		Caption: "2 message(s), 1 still locked",
	})
	require.NoError(t, err)

	out := buf.String()

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, pterm.Gray("Message 10"))
	assert.NotContains(t, out, pterm.Gray("Message 2"))
	assert.Contains(t, out, "Message 2")
	assert.True(t, strings.HasSuffix(out, pterm.Gray("2 message(s), 1 still locked")+"\n"))
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(&buf, nil, TableOptions{
		Header:  []string{"ID"},
		Caption: "0 message(s)",
	}))
	assert.Zero(t, buf.Len())
}

func TestPrintTableRowWidth(t *testing.T) {
	var buf bytes.Buffer

	err := PrintTable(&buf, [][]string{{"a", "b"}, {"c"}}, TableOptions{
		Header: []string{"ID", "TITLE"},
	})

	require.ErrorIs(t, err, errRowWidth)
	assert.Equal(t, "table row 1 has 1 cells, want 2", err.Error())
	assert.Zero(t, buf.Len())
}
