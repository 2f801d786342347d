package playback

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/ui"
	"github.com/echoverse/echoverse/internal/visualizer"
)

const (
	refreshInterval = 50 * time.Millisecond
	barHeight       = 8
	maxWidth        = 60
	padding         = 2
)

// synthetic bars peak at 10 + 6
const syntheticPeak = 16

type keymap struct {
	togglePlay key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "play/pause"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type (
	refreshMsg struct{}
	doneMsg    struct{}
)

// Model is the playback screen.
type Model struct {
	track    *Track
	style    ui.Style
	progress progress.Model
	help     help.Model
	scale    visualizer.Scale
	bars     int
	paused   bool
	finished bool
}

// NewModel returns a playback screen for a track that is already playing.
func NewModel(track *Track, bars int, scale visualizer.Scale) *Model {
	return &Model{
		track:    track,
		bars:     bars,
		scale:    scale,
		style:    ui.DefaultStyle(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m *Model) waitDone() tea.Cmd {
	return func() tea.Msg {
		<-m.track.Done()
		return doneMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(refresh(), m.waitDone())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		if m.finished {
			return m, nil
		}

		return m, refresh()

	case doneMsg:
		m.finished = true

		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.togglePlay):
			m.paused = m.track.TogglePause()
		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
	}

	return m, nil
}

func (m *Model) View() string {
	var s strings.Builder

	e := m.track.Entry

	s.WriteString(m.style.Main.Render(e.Title))
	s.WriteString(" " + ui.Mood(e.Mood))
	s.WriteString("\n" + m.style.Hint.Render(
		"recorded "+e.CreatedAt.Format(timeutil.DateFormat),
	))
	s.WriteString("\n\n")

	frame := visualizer.Idle(m.bars, m.scale)
	if !m.paused {
		frame = m.track.Frame(m.bars, m.scale)
	}

	s.WriteString(m.style.Bars.Render(ui.Bars(frame, barHeight, syntheticPeak)))
	s.WriteString("\n\n")

	pos, length := m.track.Position(), m.track.Length()

	var percent float64
	if length > 0 {
		percent = float64(pos) / float64(length)
	}

	s.WriteString(m.progress.ViewAs(min(percent, 1)))
	s.WriteString(" " + timeutil.Clock(pos) + " / " + timeutil.Clock(length))

	if m.paused {
		s.WriteString("\n" + m.style.Paused.Render("[Paused]"))
	}

	if e.Reflection != "" {
		s.WriteString("\n\n" + m.style.Secondary.Render("Reflection: ") + e.Reflection)
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.quit,
	}))

	return m.style.Base.Render(s.String())
}
