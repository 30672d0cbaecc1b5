package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

// Model is the Bubble Tea model for a local game.
type Model struct {
	game      domain.Game
	highlight bool
	cursor    int    // Board index under the cursor
	notice    string // Why the last input was ignored, if it was
	keys      KeyMap
	help      help.Model
	quitting  bool
}

// NewModel creates a model with a fresh game.
func NewModel(highlight bool) Model {
	return Model{
		game:      domain.New(domain.WithHighlight(highlight)),
		highlight: highlight,
		cursor:    4,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

// Game returns the game being played.
func (m Model) Game() domain.Game { return m.game }

// Cursor returns the board index under the cursor.
func (m Model) Cursor() int { return m.cursor }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor >= 3 {
			m.cursor -= 3
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < 6 {
			m.cursor += 3
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%3 < 2 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Place):
		m.play(m.cursor)
	case key.Matches(msg, m.keys.Cell):
		// keys 1-9 map to cells 0-8, row-major
		m.cursor = int(msg.String()[0] - '1')
		m.play(m.cursor)

	case key.Matches(msg, m.keys.Back):
		m.jump(m.game.Step() - 1)
	case key.Matches(msg, m.keys.Forward):
		m.jump(m.game.Step() + 1)
	case key.Matches(msg, m.keys.Start):
		m.jump(0)
	case key.Matches(msg, m.keys.Latest):
		m.jump(m.game.History().Len() - 1)

	case key.Matches(msg, m.keys.New):
		m.game = domain.New(domain.WithHighlight(m.highlight))
		m.cursor = 4
	}

	return m, nil
}

func (m *Model) play(cell int) {
	if err := m.game.Play(cell); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) jump(step int) {
	if err := m.game.JumpTo(step); err != nil {
		m.notice = "no such move"
	}
}

// Run starts an interactive game on the terminal.
func Run(highlight bool, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(highlight), opts...).Run()
	return err
}
