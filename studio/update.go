package studio

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/echoverse/echoverse/recorder"
)

// handleRefresh re-reads the session and opens the details form once a
// recording completes.
func (m *Model) handleRefresh() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	snap := m.sess.Snapshot()

	if snap.Status == recorder.Completed && m.form == nil && !m.saving {
		m.form = m.newForm()

		return m, tea.Batch(m.form.Init(), refresh())
	}

	return m, refresh()
}

func (m *Model) handleStarted(msg startedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("recording did not start", slog.Any("error", msg.err))
	}

	m.err = msg.err

	return m, nil
}

// handleForm forwards messages to the details form until it is submitted
// or cancelled.
func (m *Model) handleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m.quit()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.saving = true

		return m, m.save()
	case huh.StateAborted:
		m.form = nil
		m.details = nil
		m.sess.Discard()

		return m, nil
	}

	return m, cmd
}

// save creates the entry, then detaches the artifact so it outlives the
// session.
func (m *Model) save() tea.Cmd {
	snap := m.sess.Snapshot()
	d := *m.details

	return func() tea.Msg {
		if snap.Artifact == nil {
			return savedMsg{err: errNothingToSave}
		}

		unlockAt, err := m.unlockAt(d.unlock)
		if err != nil {
			return savedMsg{err: err}
		}

		entry, err := m.saver.Create(m.ctx, d.draft(snap.Artifact, unlockAt))

		return savedMsg{entry: entry, err: err}
	}
}

func (m *Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	if msg.err != nil {
		m.logger.Error("unable to save entry", slog.Any("error", msg.err))
		m.err = msg.err

		return m, nil
	}

	m.sess.Keep()
	m.saved = &msg.entry
	m.details = nil

	return m.quit()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sess.Dispose()

	return m, tea.Quit
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := m.sess.Snapshot().Status

	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return m.quit()

	case key.Matches(msg, defaultKeymap.record):
		switch status {
		case recorder.Idle, recorder.Failed:
			m.err = nil
			m.details = nil

			return m, m.start()
		}

	case key.Matches(msg, defaultKeymap.togglePlay):
		if err := m.sess.TogglePause(); err != nil {
			m.logger.Debug("toggle ignored", slog.Any("error", err))
		}

	case key.Matches(msg, defaultKeymap.stop):
		if status != recorder.Recording && status != recorder.Paused {
			return m, nil
		}

		m.err = m.sess.Stop()

		return m.handleRefresh()

	case key.Matches(msg, defaultKeymap.discard):
		m.err = nil
		m.details = nil
		m.sess.Discard()
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(refreshMsg); !ok {
		if m.logger.Enabled(context.Background(), slog.LevelDebug) {
			m.logger.Debug("tui message", slog.String("msg", spew.Sdump(msg)))
		}
	}

	switch msg := msg.(type) {
	case refreshMsg:
		return m.handleRefresh()

	case startedMsg:
		return m.handleStarted(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	if m.form != nil {
		return m.handleForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}

	return m, nil
}
