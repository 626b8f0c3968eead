package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for a 2048 game.
// The game advances only on key presses; there is no tick loop.
type Model struct {
	game      *t2048.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	quitting  bool
	back      bool
	embedded  bool // Esc returns to a parent model instead of quitting
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *t2048.Game, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:      game,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	return m
}

// asEmbedded makes Esc hand control back to a parent model.
func (m Model) asEmbedded() Model {
	m.embedded = true
	return m
}

// Init starts a fresh game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	m.game.Reset(cfg)
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.game.ToggleHelp()
		m.resize()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Has(core.ActionBack) {
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	m.game.Step(frame)
	return m, nil
}

// resize fits the game screen into the window above the help bar.
func (m Model) resize() {
	h := m.gameHeight()
	m.screen.Resize(m.config.ScreenW, h)
	m.game.SetScreenSize(m.config.ScreenW, h)
}

// gameHeight is the window height left after the help bar.
func (m Model) gameHeight() int {
	lines := 1
	if m.help.ShowAll {
		for _, col := range m.keyMapper.Keys().FullHelp() {
			lines = max(lines, len(col))
		}
	}
	return max(m.config.ScreenH-lines, 0)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Game returns the wrapped game.
func (m Model) Game() *t2048.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for the game.
// It reports whether the player asked to go back to the menu.
func Run(game *t2048.Game, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
