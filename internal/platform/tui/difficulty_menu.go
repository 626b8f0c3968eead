package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// DifficultyModel lets users choose the difficulty before a game.
type DifficultyModel struct {
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	selection      t2048.Difficulty
	best           int
	choosing       bool
	quitting       bool
	openScoreboard bool
}

// NewDifficultyModel creates a new difficulty picker with the cursor on
// initial. best is shown under the title when positive.
func NewDifficultyModel(width, height int, initial t2048.Difficulty, best int) DifficultyModel {
	cursor := 0
	for i, d := range t2048.Difficulties {
		if d.Mode == initial {
			cursor = i
		}
	}

	return DifficultyModel{
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		best:      best,
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(t2048.Difficulties)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = t2048.Difficulties[m.cursor].Mode
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best: %d", m.best), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, d := range t2048.Difficulties {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-10s", cursor, d.Name), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	desc := t2048.Difficulties[m.cursor].Description
	b.WriteString(centerText(dimStyle.Render(desc), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DifficultyModel) Selected() *t2048.Difficulty {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m DifficultyModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
// Styled text is measured without its escape sequences.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// PickerResult holds the result of running the difficulty picker.
type PickerResult struct {
	Difficulty      t2048.Difficulty
	WantsScoreboard bool
	Quit            bool
}

// RunDifficultyPicker runs the difficulty selection and returns the result.
func RunDifficultyPicker(cfg core.RuntimeConfig, initial t2048.Difficulty, best int) (PickerResult, error) {
	model := NewDifficultyModel(cfg.ScreenW, cfg.ScreenH, initial, best)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{Quit: true}, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() {
		return PickerResult{Quit: true}, nil
	}

	if m.WantsScoreboard() {
		return PickerResult{WantsScoreboard: true}, nil
	}

	if sel := m.Selected(); sel != nil {
		return PickerResult{Difficulty: *sel}, nil
	}
	return PickerResult{Quit: true}, nil
}
