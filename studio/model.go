// Package studio is the interactive recording screen: it drives a recorder
// session from the keyboard, renders the live visualizer and collects the
// entry details once a recording completes
package studio

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/ui"
	"github.com/echoverse/echoverse/journal"
	"github.com/echoverse/echoverse/recorder"
)

const (
	refreshInterval = 50 * time.Millisecond
	barHeight       = 8
	maxWidth        = 60
	padding         = 2
)

// Saver stores a finished recording as a new entry.
type Saver interface {
	Create(ctx context.Context, d journal.Draft) (models.AudioEntry, error)
}

// Options configures the details form.
type Options struct {
	Now           func() time.Time
	DefaultUnlock string
	Ambience      models.Ambience
}

type keymap struct {
	record     key.Binding
	togglePlay key.Binding
	stop       key.Binding
	discard    key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	record: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "record"),
	),
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "pause/resume"),
	),
	stop: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "stop"),
	),
	discard: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "discard"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type (
	refreshMsg struct{}

	startedMsg struct {
		err error
	}

	savedMsg struct {
		err   error
		entry models.AudioEntry
	}
)

// Model is the recording screen.
type Model struct {
	ctx      context.Context
	sess     *recorder.Session
	saver    Saver
	logger   *slog.Logger
	form     *huh.Form
	details  *details
	saved    *models.AudioEntry
	err      error
	opts     Options
	style    ui.Style
	progress progress.Model
	help     help.Model
	saving   bool
	quitting bool
}

// New returns a recording screen for sess.
func New(
	ctx context.Context,
	sess *recorder.Session,
	saver Saver,
	opts Options,
	logger *slog.Logger,
) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Ambience == "" {
		opts.Ambience = models.Silence
	}

	return &Model{
		ctx:      ctx,
		sess:     sess,
		saver:    saver,
		opts:     opts,
		logger:   logger.With(slog.String("component", "studio")),
		style:    ui.DefaultStyle(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
	}
}

// Saved returns the entry created from the recording, if any.
func (m *Model) Saved() (models.AudioEntry, bool) {
	if m.saved == nil {
		return models.AudioEntry{}, false
	}

	return *m.saved, true
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m *Model) Init() tea.Cmd {
	return refresh()
}

// start acquires the microphone off the update loop since it may block on a
// permission prompt.
func (m *Model) start() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.sess.Start(m.ctx)}
	}
}
