package t2048

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3
)

const (
	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1
)

// helpLines is the how-to-play text shown by ToggleHelp.
func (g *Game) helpLines() []string {
	return []string{
		"HOW TO PLAY",
		"",
		"Slide tiles with the arrow keys.",
		"Equal tiles that collide merge into one.",
		"A 2 or 4 appears after every move.",
		"The game ends when no move is left.",
		"",
		fmt.Sprintf("U undo (%d per game)  N new game", g.state.UndoLimit),
		"Ctrl+S save  Ctrl+L load",
		"Tab switch difficulty",
	}
}

// tileColor picks the palette role for a tile value.
func tileColor(v int) core.Color {
	switch {
	case v <= 0:
		return core.ColorTileEmpty
	case v > 2048:
		return core.ColorTileSuper
	}
	return core.ColorTile2 + core.Color(bits.TrailingZeros(uint(v))-1)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := boardW + 2
	minH := hudHeight + boardH + 4
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)

	footerY := boardY + boardH + 1
	if g.notice != "" {
		dst.DrawTextColored(boardX, footerY, g.notice, core.ColorHighlight)
	}

	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawTextCentered(y, msg)
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws score, best, max tile, difficulty and undos left.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorHighlight)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.state.Score))
	bestStr := fmt.Sprintf("Best: %d", g.best)
	dst.DrawText(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr)

	dst.DrawText(boardX, 2, fmt.Sprintf("Max: %d", MaxTile(g.state.Board)))
	modeStr := fmt.Sprintf("%s  Undo: %d", g.state.Difficulty, g.state.UndoAllowance())
	dst.DrawText(max(boardX, boardX+boardW-len(modeStr)), 2, modeStr)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGrid)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGrid)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGrid)
				}
			}
		}
	}

	for y := range BoardSize {
		for x := range BoardSize {
			val := g.state.Board[y][x]
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1
			color := tileColor(val)

			for i := range cellWidth - 1 {
				dst.SetColored(cellX+i, cellY, ' ', color)
			}
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// renderOverlays draws help and game over boxes on top of the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.helpShown {
		g.drawOverlay(dst, core.NewRect(0, 0, g.screenW, g.screenH), g.helpLines()...)
		return
	}

	if g.state.Status == StatusGameOver {
		maxStr := fmt.Sprintf("Max tile: %d", MaxTile(g.state.Board))
		hint := "N: new game"
		if g.state.UndosLeft() > 0 {
			hint = "U: undo | N: new game"
		}
		g.drawOverlay(dst, board, "YOU LOSE", maxStr, hint)
	}
}

// drawOverlay draws a bordered text box centered in area.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(cx-len(line)/2, box.Y+1+i, line)
	}
}
