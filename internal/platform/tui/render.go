package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// tilePalette is the classic 2048 board: one background per tile value.
var tilePalette = map[core.Color]string{
	core.ColorTileEmpty: "#CDC1B4",
	core.ColorTile2:     "#EEE4DA",
	core.ColorTile4:     "#EDE0C8",
	core.ColorTile8:     "#F2B179",
	core.ColorTile16:    "#F59563",
	core.ColorTile32:    "#F67C5F",
	core.ColorTile64:    "#F65E3B",
	core.ColorTile128:   "#EDCF72",
	core.ColorTile256:   "#EDCC61",
	core.ColorTile512:   "#EDC850",
	core.ColorTile1024:  "#EDC53F",
	core.ColorTile2048:  "#EDC22E",
	core.ColorTileSuper: "#3C3A32",
}

// Small tiles carry dark digits, from 8 upward the digits turn light.
var (
	darkDigits  = lipgloss.Color("#776E65")
	lightDigits = lipgloss.Color("#F9F6F2")
)

var cellStyles = newCellStyles()

func newCellStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("#BBADA0")),
		core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#EDC22E")).Bold(true),
	}

	for role, bg := range tilePalette {
		digits := lightDigits
		if role < core.ColorTile8 {
			digits = darkDigits
		}
		styles[role] = lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(digits).
			Bold(true)
	}
	return styles
}

// styleFor returns the style of a cell role, plain for unknown roles.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := cellStyles[c]; ok {
		return style
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns the cell buffer into terminal output. Each row is cut
// into runs of one role so a tile costs one styled segment, not one per cell.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var (
		sb   strings.Builder
		run  []rune
		role core.Color
	)

	flush := func() {
		if len(run) > 0 {
			sb.WriteString(styleFor(role).Render(string(run)))
			run = run[:0]
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != role {
			flush()
			role = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()

	return sb.String()
}
