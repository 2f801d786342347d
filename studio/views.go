package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/ui"
	"github.com/echoverse/echoverse/recorder"
)

const heading = "Record a message for your future self"

func (m *Model) statusView(snap *recorder.Snapshot) string {
	switch snap.Status {
	case recorder.Idle:
		return m.style.Hint.Render("Press r to start recording")
	case recorder.Acquiring:
		return m.style.Hint.Render("Waiting for the microphone...")
	case recorder.Recording:
		return m.style.Error.Render("● REC")
	case recorder.Paused:
		return m.style.Paused.Render("[Paused]")
	case recorder.Finalizing:
		return m.style.Hint.Render("Finishing up...")
	case recorder.Completed:
		return m.style.Secondary.Render("Recording complete")
	case recorder.Failed:
		return m.style.Error.Render("Recording failed") +
			m.style.Hint.Render(" (press r to try again)")
	}

	return ""
}

func (m *Model) meterView(snap *recorder.Snapshot) string {
	var s strings.Builder

	scale := m.sess.Options().Scale
	peak := float64(255 / scale.Divisor)

	s.WriteString(m.style.Bars.Render(ui.Bars(snap.Frame, barHeight, peak)))
	s.WriteString("\n\n")

	var percent float64
	if snap.Max > 0 {
		percent = float64(snap.Elapsed) / float64(snap.Max)
	}

	s.WriteString(m.progress.ViewAs(min(percent, 1)))
	s.WriteString(fmt.Sprintf(
		" %s / %s",
		timeutil.Clock(snap.Elapsed),
		timeutil.Clock(snap.Max),
	))

	return s.String()
}

func (m *Model) helpView(status recorder.Status) string {
	var bindings []key.Binding

	switch status {
	case recorder.Idle, recorder.Failed:
		bindings = []key.Binding{defaultKeymap.record, defaultKeymap.quit}
	case recorder.Recording, recorder.Paused:
		bindings = []key.Binding{
			defaultKeymap.togglePlay,
			defaultKeymap.stop,
			defaultKeymap.discard,
			defaultKeymap.quit,
		}
	default:
		bindings = []key.Binding{defaultKeymap.discard, defaultKeymap.quit}
	}

	return m.help.ShortHelpView(bindings)
}

func (m *Model) savedView() string {
	e := m.saved
	now := m.opts.Now()

	return m.style.Main.Render("Saved!") + " " +
		fmt.Sprintf(
			"%q unlocks on %s (in %s)",
			e.Title,
			e.UnlockAt.Format(timeutil.DateFormat),
			timeutil.Countdown(e.UnlockAt.Sub(now)),
		)
}

func (m *Model) View() string {
	if m.saved != nil {
		return m.style.Base.Render(m.savedView()) + "\n"
	}

	if m.quitting {
		return ""
	}

	snap := m.sess.Snapshot()

	var s strings.Builder

	s.WriteString(m.style.Main.Render(heading))
	s.WriteString("\n\n")
	s.WriteString(m.statusView(&snap))
	s.WriteString("\n\n")
	s.WriteString(m.meterView(&snap))

	if m.err != nil {
		s.WriteString("\n\n" + m.style.Error.Render(m.err.Error()))
	}

	if m.form != nil {
		s.WriteString("\n\n" + m.form.View())
	} else {
		s.WriteString("\n\n" + m.helpView(snap.Status))
	}

	return m.style.Base.Render(s.String())
}
