package app

import (
	"io"

	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"
)

// desktopNotifier prints unlock notices to the terminal and, when enabled,
// raises a desktop notification as well.
type desktopNotifier struct {
	out     io.Writer
	enabled bool
}

func (n *desktopNotifier) Notify(title, message string) error {
	pterm.Fprintln(n.out, pterm.Info.Sprint(message))

	if !n.enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}
