package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestTileRolesHaveBackground(t *testing.T) {
	for role := core.ColorTileEmpty; role <= core.ColorTileSuper; role++ {
		if _, none := styleFor(role).GetBackground().(lipgloss.NoColor); none {
			t.Errorf("tile role %d has no background", role)
		}
	}
	if _, none := styleFor(core.ColorGrid).GetBackground().(lipgloss.NoColor); !none {
		t.Error("grid lines should not have a background")
	}
}

func TestTileDigitsContrast(t *testing.T) {
	if styleFor(core.ColorTile2).GetForeground() != darkDigits {
		t.Error("2 should use dark digits")
	}
	if styleFor(core.ColorTile2048).GetForeground() != lightDigits {
		t.Error("2048 should use light digits")
	}
}

func TestStyleForUnknownRole(t *testing.T) {
	if styleFor(core.Color(250)).Render("x") != cellStyles[core.ColorDefault].Render("x") {
		t.Error("unknown role should render plain")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "2048", core.ColorHighlight)
	s.DrawText(5, 0, "game")
	for x := range 6 {
		s.SetColored(x, 1, ' ', core.ColorTile2)
	}
	s.DrawTextColored(2, 1, "2", core.ColorTile2)

	out := RenderScreen(s)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !strings.Contains(rows[0], "2048") || !strings.Contains(rows[0], "game") {
		t.Errorf("row 0 lost its text: %q", rows[0])
	}
	if !strings.Contains(rows[1], "2") {
		t.Errorf("row 1 lost the tile value: %q", rows[1])
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 12 {
			t.Errorf("row %d width = %d, want 12", i, w)
		}
	}
}
