package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/echoverse/echoverse/internal/apperr"
)

var errRowWidth = &apperr.Error{
	Message: "table row %d has %d cells, want %d",
}

// TableOptions controls how PrintTable renders rows.
type TableOptions struct {
	// Muted reports whether a row is drawn in grey, such as an entry that is
	// still locked. Its argument is the row index, header excluded.
	Muted func(row int) bool
	// Caption is printed under the table when set.
	Caption string
	Header  []string
}

// PrintTable prints rows as a boxed table under opts.Header. Nothing is
// printed for an empty table. Every row must be as wide as the header.
func PrintTable(w io.Writer, rows [][]string, opts TableOptions) error {
	if len(rows) == 0 {
		return nil
	}

	data := make([][]string, 0, len(rows)+1)
	data = append(data, opts.Header)

	for i, row := range rows {
		if len(row) != len(opts.Header) {
			return errRowWidth.Fmt(i, len(row), len(opts.Header))
		}

		if opts.Muted != nil && opts.Muted(i) {
			muted := make([]string, len(row))
			for j := range row {
				muted[j] = pterm.Gray(row[j])
			}

			row = muted
		}

		data = append(data, row)
	}

	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, str)

	if opts.Caption != "" {
		fmt.Fprintln(w, pterm.Gray(opts.Caption))
	}

	return nil
}
