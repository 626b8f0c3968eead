package t2048

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type memPersistence struct {
	best      int
	bestErr   error
	savedBest []int
	saveErr   error

	slotBoard Board
	slotScore int
	hasSlot   bool
	loadErr   error
}

func (m *memPersistence) LoadBest() (int, error) {
	if m.bestErr != nil {
		return 0, m.bestErr
	}
	return m.best, nil
}

func (m *memPersistence) SaveBest(score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best = score
	m.savedBest = append(m.savedBest, score)
	return nil
}

func (m *memPersistence) SaveSlot(board Board, score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.slotBoard, m.slotScore, m.hasSlot = board, score, true
	return nil
}

func (m *memPersistence) LoadSlot() (Board, int, error) {
	if m.loadErr != nil {
		return Board{}, 0, m.loadErr
	}
	if !m.hasSlot {
		return Board{}, 0, errors.New("empty slot")
	}
	return m.slotBoard, m.slotScore, nil
}

type memRecorder struct {
	results []GameResult
}

// RecordGame replaces a result with the same ID, like the SQLite store.
func (r *memRecorder) RecordGame(res GameResult) error {
	for i, prev := range r.results {
		if prev.ID == res.ID {
			r.results[i] = res
			return nil
		}
	}
	r.results = append(r.results, res)
	return nil
}

func newTestGame(opts Options) *Game {
	g := New(opts)
	cfg := core.DefaultConfig()
	cfg.Seed = 12345
	g.Reset(cfg)
	return g
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := newTestGame(DefaultOptions())
	g2 := newTestGame(DefaultOptions())

	if g1.Board() != g2.Board() {
		t.Error("same seed should produce the same board")
	}
	if g1.Board().Count() != 2 {
		t.Errorf("new game has %d tiles, want 2", g1.Board().Count())
	}

	for _, dir := range []Direction{DirLeft, DirUp, DirRight, DirDown} {
		g1.ApplyDirection(dir)
		g2.ApplyDirection(dir)
	}
	if g1.Board() != g2.Board() || g1.State().Score != g2.State().Score {
		t.Error("same seed and moves should produce the same game")
	}
}

func TestResetLoadsBest(t *testing.T) {
	p := &memPersistence{best: 777}
	opts := DefaultOptions()
	opts.Persistence = p

	g := newTestGame(opts)
	if g.Best() != 777 {
		t.Errorf("Best = %d, want 777", g.Best())
	}
}

func TestResetBestLoadErrorFallsBackToZero(t *testing.T) {
	p := &memPersistence{best: 777, bestErr: errors.New("corrupt")}
	opts := DefaultOptions()
	opts.Persistence = p

	g := newTestGame(opts)
	if g.Best() != 0 {
		t.Errorf("Best = %d, want 0", g.Best())
	}
}

func TestGameOverUpdatesBest(t *testing.T) {
	p := &memPersistence{best: 50}
	rec := &memRecorder{}
	opts := DefaultOptions()
	opts.Persistence = p
	opts.Recorder = rec

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 100)

	if !g.ApplyDirection(DirLeft) {
		t.Fatal("move should be applied")
	}
	if !g.State().GameOver {
		t.Fatalf("expected game over\n%v", g.Board())
	}
	if g.Best() != 104 {
		t.Errorf("Best = %d, want 104", g.Best())
	}
	if len(p.savedBest) != 1 || p.savedBest[0] != 104 {
		t.Errorf("saved best = %v, want [104]", p.savedBest)
	}
	if len(rec.results) != 1 || rec.results[0].Score != 104 || rec.results[0].MaxTile != 65536 {
		t.Errorf("recorded = %+v", rec.results)
	}

	if g.ApplyDirection(DirRight) {
		t.Error("moves after game over should be ignored")
	}
	if len(p.savedBest) != 1 || len(rec.results) != 1 {
		t.Error("game over side effects should run once")
	}
}

func TestGameOverKeepsHigherBest(t *testing.T) {
	p := &memPersistence{best: 5000}
	opts := DefaultOptions()
	opts.Persistence = p

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 100)
	g.ApplyDirection(DirLeft)

	if g.Best() != 5000 || len(p.savedBest) != 0 {
		t.Errorf("best should stay 5000, saved %v", p.savedBest)
	}
}

func TestGameOverBestSaveFailure(t *testing.T) {
	p := &memPersistence{saveErr: errors.New("read-only")}
	opts := DefaultOptions()
	opts.Persistence = p

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 100)
	g.ApplyDirection(DirLeft)

	if g.Best() != 104 {
		t.Errorf("in-memory best = %d, want 104", g.Best())
	}
	if g.Notice() == "" {
		t.Error("a failed best-score save should leave a notice")
	}
}

func TestUndoAfterGameOver(t *testing.T) {
	p := &memPersistence{}
	rec := &memRecorder{}
	opts := DefaultOptions()
	opts.Persistence = p
	opts.Recorder = rec

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 0)
	g.ApplyDirection(DirLeft)

	if !g.Undo() {
		t.Fatal("undo after game over should succeed")
	}
	if g.State().GameOver {
		t.Error("undo should leave the game-over state")
	}
	if g.Board() != nearlyBlocked || g.State().Score != 0 {
		t.Error("undo should restore board and score")
	}
	if len(rec.results) != 1 {
		t.Errorf("recorded %d games, want 1", len(rec.results))
	}
}

func TestGameOverAfterUndoUpdatesRecord(t *testing.T) {
	rec := &memRecorder{}
	opts := DefaultOptions()
	opts.Recorder = rec

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 0)
	g.ApplyDirection(DirLeft)
	if !g.Undo() {
		t.Fatal("undo after game over should succeed")
	}
	g.state.Score = 500
	g.ApplyDirection(DirLeft)

	if !g.State().GameOver {
		t.Fatal("expected a second game over")
	}
	if len(rec.results) != 1 {
		t.Fatalf("recorded %d games, want 1", len(rec.results))
	}
	if rec.results[0].Score != 504 {
		t.Errorf("recorded score = %d, want final score 504", rec.results[0].Score)
	}
	if rec.results[0].UndosUsed != 1 {
		t.Errorf("recorded undos = %d, want 1", rec.results[0].UndosUsed)
	}
}

func TestEachGameGetsOwnRecord(t *testing.T) {
	p := &memPersistence{slotBoard: nearlyBlocked, slotScore: 40, hasSlot: true}
	rec := &memRecorder{}
	opts := DefaultOptions()
	opts.Persistence = p
	opts.Recorder = rec

	g := newTestGame(opts)
	g.state = g.state.Restore(nearlyBlocked, 0)
	g.ApplyDirection(DirLeft)

	g.NewGame()
	g.state = g.state.Restore(nearlyBlocked, 10)
	g.ApplyDirection(DirLeft)

	if err := g.LoadGame(); err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	g.ApplyDirection(DirLeft)

	if len(rec.results) != 3 {
		t.Fatalf("recorded %d games, want 3", len(rec.results))
	}
	seen := map[string]bool{}
	for _, r := range rec.results {
		if r.ID == "" || seen[r.ID] {
			t.Errorf("game IDs must be unique and set, got %q", r.ID)
		}
		seen[r.ID] = true
	}
	if rec.results[2].Score != 44 {
		t.Errorf("loaded game recorded score = %d, want 44", rec.results[2].Score)
	}
}

func TestZeroOptionsAreLiteral(t *testing.T) {
	g := newTestGame(Options{})
	g.ApplyDirection(DirLeft)

	if g.Undo() {
		t.Error("zero Options allow no undos")
	}
	if s := g.Session(); s.UndoLimit != 0 {
		t.Errorf("UndoLimit = %d, want 0", s.UndoLimit)
	}

	d := newTestGame(DefaultOptions())
	if d.Session().UndoLimit != DefaultUndoLimit || d.spawnFour != DefaultSpawnFourProb {
		t.Error("DefaultOptions should carry the classic rules")
	}
}

func TestGameUndoLimit(t *testing.T) {
	g := newTestGame(DefaultOptions())
	for _, dir := range []Direction{DirLeft, DirRight, DirLeft, DirRight, DirUp} {
		g.ApplyDirection(dir)
	}

	for i := range DefaultUndoLimit {
		if !g.Undo() {
			t.Fatalf("undo #%d should succeed", i+1)
		}
	}
	if g.Undo() {
		t.Error("fourth undo should be refused")
	}
	if g.Snapshot().UndosLeft != 0 {
		t.Errorf("UndosLeft = %d, want 0", g.Snapshot().UndosLeft)
	}
}

func TestNewGameResetsSession(t *testing.T) {
	opts := DefaultOptions()
	opts.Difficulty = Difficult
	g := newTestGame(opts)
	g.ApplyDirection(DirLeft)
	g.ApplyDirection(DirUp)
	g.Undo()

	g.NewGame()
	s := g.Session()
	if s.Score != 0 || s.History.Len() != 0 || s.UndosUsed != 0 || s.Moves != 0 {
		t.Errorf("new game not reset: %+v", s)
	}
	if s.Board.Count() != 2 {
		t.Errorf("new game has %d tiles, want 2", s.Board.Count())
	}
	if s.Difficulty != Difficult {
		t.Error("new game should keep the difficulty")
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	p := &memPersistence{}
	opts := DefaultOptions()
	opts.Persistence = p
	g := newTestGame(opts)

	g.state = g.state.Restore(Board{{2, 4, 8, 16}, {0, 0, 0, 2}}, 321)
	if err := g.SaveGame(); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if p.slotScore != 321 || p.slotBoard != g.Board() {
		t.Error("slot does not match the saved game")
	}

	g.SetDifficulty(Difficult)
	g.ApplyDirection(DirLeft)
	g.ApplyDirection(DirDown)

	if err := g.LoadGame(); err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	s := g.Session()
	if s.Board != p.slotBoard || s.Score != 321 {
		t.Errorf("loaded %v score %d", s.Board, s.Score)
	}
	if s.History.Len() != 0 || s.UndosUsed != 0 {
		t.Error("load should clear history and the undo counter")
	}
	if s.Difficulty != Difficult {
		t.Error("load should keep the current difficulty")
	}
	if g.Undo() {
		t.Error("undo right after load should do nothing")
	}
}

func TestLoadFailureLeavesStateUnchanged(t *testing.T) {
	p := &memPersistence{loadErr: errors.New("corrupt slot")}
	opts := DefaultOptions()
	opts.Persistence = p
	g := newTestGame(opts)
	g.ApplyDirection(DirLeft)

	before := g.Session()
	if err := g.LoadGame(); err == nil {
		t.Fatal("LoadGame should fail")
	}
	after := g.Session()
	if after.Board != before.Board || after.Score != before.Score || after.History.Len() != before.History.Len() {
		t.Error("failed load changed the session")
	}
	if g.Notice() != "Load failed" {
		t.Errorf("notice = %q", g.Notice())
	}
}

func TestSaveFailureLeavesStateUnchanged(t *testing.T) {
	p := &memPersistence{saveErr: errors.New("disk full")}
	opts := DefaultOptions()
	opts.Persistence = p
	g := newTestGame(opts)

	before := g.Session()
	if err := g.SaveGame(); err == nil {
		t.Fatal("SaveGame should fail")
	}
	if g.Session().Board != before.Board || g.Notice() != "Save failed" {
		t.Error("failed save should only set a notice")
	}
}

func TestSaveWithoutPersistence(t *testing.T) {
	g := newTestGame(DefaultOptions())
	if err := g.SaveGame(); !errors.Is(err, ErrNoPersistence) {
		t.Errorf("SaveGame err = %v, want ErrNoPersistence", err)
	}
	if err := g.LoadGame(); !errors.Is(err, ErrNoPersistence) {
		t.Errorf("LoadGame err = %v, want ErrNoPersistence", err)
	}
}

func TestStepMapsActions(t *testing.T) {
	p := &memPersistence{}
	opts := DefaultOptions()
	opts.Persistence = p
	g := newTestGame(opts)

	res := g.Step(core.NewInputFrame())
	if res.Changed {
		t.Error("empty frame should change nothing")
	}

	g.state = g.state.Restore(Board{{2, 2, 0, 0}}, 0)
	res = g.Step(core.FrameOf(core.ActionLeft))
	if !res.Changed || res.State.Score != 4 {
		t.Errorf("left step = %+v", res)
	}

	res = g.Step(core.FrameOf(core.ActionUndo))
	if !res.Changed || res.State.Score != 0 {
		t.Errorf("undo step = %+v", res)
	}

	g.Step(core.FrameOf(core.ActionToggleDifficulty))
	if g.Difficulty() != Difficult {
		t.Error("toggle should switch to Difficult")
	}

	g.Step(core.FrameOf(core.ActionSave))
	if !p.hasSlot || g.Notice() != "Game saved" {
		t.Errorf("save step: slot %v, notice %q", p.hasSlot, g.Notice())
	}

	g.Step(core.FrameOf(core.ActionRight))
	if g.Notice() != "" {
		t.Error("the next action should clear the notice")
	}

	res = g.Step(core.FrameOf(core.ActionRestart))
	if !res.Changed || g.Session().Moves != 0 || g.Board().Count() != 2 {
		t.Error("restart should start a new game")
	}
}

func TestStepPrefersRestartOverMove(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.ApplyDirection(DirLeft)

	g.Step(core.FrameOf(core.ActionRestart, core.ActionLeft))
	if g.Session().Moves != 0 {
		t.Error("restart should win over a direction in the same frame")
	}
}

func TestSnapshot(t *testing.T) {
	p := &memPersistence{best: 99}
	opts := DefaultOptions()
	opts.Persistence = p
	g := newTestGame(opts)
	g.state = g.state.Restore(Board{{2, 2, 0, 0}, {0, 0, 0, 128}}, 10)
	g.ApplyDirection(DirLeft)

	snap := g.Snapshot()
	if snap.Score != 14 || snap.Best != 99 || snap.MaxTile != 128 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Status != StatusActive || snap.Moves != 1 || snap.UndosLeft != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.state = g.state.Restore(Board{{2048, 0, 0, 0}, {0, 16, 0, 0}}, 2500)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 2500", "Best: 0", "Max: 2048", "Easy  Undo: 3", "16"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q\n%s", want, out)
		}
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.state = g.state.Restore(nearlyBlocked, 0)
	g.ApplyDirection(DirLeft)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU LOSE") {
		t.Error("game over overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.SetScreenSize(20, 10)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected too-small message")
	}

	before := g.Board()
	g.Step(core.FrameOf(core.ActionLeft))
	if g.Board() != before {
		t.Error("moves should be ignored while the window is too small")
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		v    int
		want core.Color
	}{
		{0, core.ColorTileEmpty},
		{2, core.ColorTile2},
		{4, core.ColorTile4},
		{64, core.ColorTile64},
		{1024, core.ColorTile1024},
		{2048, core.ColorTile2048},
		{4096, core.ColorTileSuper},
		{131072, core.ColorTileSuper},
	}

	for _, tt := range tests {
		if got := tileColor(tt.v); got != tt.want {
			t.Errorf("tileColor(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestRenderFillsTileBackgrounds(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.state = g.state.Restore(Board{{2048, 0, 0, 0}}, 0)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	boardX := (80 - boardW) / 2
	cellY := hudHeight + 1 + 1
	first := boardX + 1
	second := boardX + cellWidth + 1

	for i := range cellWidth - 1 {
		if c := screen.GetCell(first+i, cellY).Color; c != core.ColorTile2048 {
			t.Fatalf("tile cell %d color = %d, want 2048 role", i, c)
		}
		if c := screen.GetCell(second+i, cellY).Color; c != core.ColorTileEmpty {
			t.Fatalf("empty cell %d color = %d, want empty role", i, c)
		}
	}
}

func TestHelpShowsConfiguredUndoLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.UndoLimit = 5
	g := newTestGame(opts)
	g.ToggleHelp()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "U undo (5 per game)") {
		t.Errorf("help should show the configured undo limit\n%s", screen.String())
	}
}
