package t2048

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrNoPersistence is returned by SaveGame and LoadGame when the game was
// created without a Persistence.
var ErrNoPersistence = errors.New("t2048: no persistence configured")

// Persistence stores the best score and the single save slot.
type Persistence interface {
	// LoadBest returns the stored best score. On error the returned value
	// is 0 and callers should treat the error as recoverable.
	LoadBest() (int, error)
	SaveBest(score int) error
	SaveSlot(board Board, score int) error
	LoadSlot() (Board, int, error)
}

// GameResult describes a finished game. ID is stable for one game, so a
// game that ends again after an undo reports the same ID with its new
// final numbers.
type GameResult struct {
	ID         string
	Score      int
	MaxTile    int
	Moves      int
	UndosUsed  int
	Difficulty Difficulty
}

// Recorder receives every finished game. A result whose ID was recorded
// before replaces the earlier one.
type Recorder interface {
	RecordGame(result GameResult) error
}

// Options configures a Game. Start from DefaultOptions: every rule field is
// taken literally, so the zero Options means no undos and only 2s spawn.
type Options struct {
	Difficulty    Difficulty
	UndoLimit     int
	SpawnFourProb float64
	SkipNoopMoves bool
	Persistence   Persistence // optional
	Recorder      Recorder    // optional
	Logger        *log.Logger // optional
}

// DefaultOptions returns the classic rules: easy, 3 undos, 10% fours.
func DefaultOptions() Options {
	return Options{
		Difficulty:    Easy,
		UndoLimit:     DefaultUndoLimit,
		SpawnFourProb: DefaultSpawnFourProb,
	}
}

// Game is the session controller. It owns exactly one SessionState and
// sequences turns, persistence and score tracking around it.
type Game struct {
	state      SessionState
	settings   SessionState
	rng        *rand.Rand
	spawnFour  float64
	best       int
	persist    Persistence
	recorder   Recorder
	logger     *log.Logger
	notice     string
	screenW    int
	screenH    int
	tooSmall   bool
	helpShown  bool
	gameID     string // history record key of the current game
}

// New creates a game from opts as given; zero rule fields are not replaced
// with defaults. Call Reset before playing.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		settings: SessionState{
			Difficulty: opts.Difficulty,
			UndoLimit:  opts.UndoLimit,
			SkipNoop:   opts.SkipNoopMoves,
		},
		spawnFour: opts.SpawnFourProb,
		persist:   opts.Persistence,
		recorder:  opts.Recorder,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reset seeds the RNG, adopts the screen size, reloads the best score and
// starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.SetScreenSize(cfg.ScreenW, cfg.ScreenH)
	g.loadBest()
	g.NewGame()
}

// SetScreenSize updates the render target size without touching the game.
func (g *Game) SetScreenSize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) loadBest() {
	if g.persist == nil {
		return
	}
	best, err := g.persist.LoadBest()
	if err != nil {
		g.logger.Warn("could not load best score, using 0", "error", err)
		best = 0
	}
	g.best = best
}

func (g *Game) spawn(b Board) Board {
	return SpawnTile(b, g.rng, g.spawnFour)
}

// NewGame clears the board, score, history and undo counter and spawns two
// tiles. The difficulty setting is kept.
func (g *Game) NewGame() {
	g.state = NewSession(g.settings, g.spawn)
	g.gameID = uuid.NewString()
	g.logger.Debug("new game", "difficulty", g.settings.Difficulty)
}

// ApplyDirection plays one move and reports whether it was taken.
// Moves after game over are ignored.
func (g *Game) ApplyDirection(dir Direction) bool {
	next, applied := g.state.ApplyDirection(dir, g.spawn)
	if !applied {
		return false
	}
	g.state = next

	if g.state.Status == StatusGameOver {
		g.finish()
	}
	return true
}

// finish runs on every transition into game over: best score and history
// record. Reaching game over again after an undo updates the same record.
func (g *Game) finish() {
	g.logger.Info("game over", "score", g.state.Score, "max_tile", MaxTile(g.state.Board))

	if g.state.Score > g.best {
		g.best = g.state.Score
		if g.persist != nil {
			if err := g.persist.SaveBest(g.best); err != nil {
				g.logger.Error("could not save best score", "error", err)
				g.notice = "Best score not saved"
			}
		}
	}

	if g.recorder != nil {
		result := GameResult{
			ID:         g.gameID,
			Score:      g.state.Score,
			MaxTile:    MaxTile(g.state.Board),
			Moves:      g.state.Moves,
			UndosUsed:  g.state.UndosUsed,
			Difficulty: g.state.Difficulty,
		}
		if err := g.recorder.RecordGame(result); err != nil {
			g.logger.Error("could not record game", "error", err)
		}
	}
}

// Undo restores the previous board and score if the game allows it.
func (g *Game) Undo() bool {
	next, undone := g.state.Undo()
	if !undone {
		return false
	}
	g.state = next
	g.logger.Debug("undo", "undos_used", g.state.UndosUsed)
	return true
}

// SetDifficulty changes the difficulty for this and every later game.
func (g *Game) SetDifficulty(mode Difficulty) {
	g.settings.Difficulty = mode
	g.state.Difficulty = mode
	g.logger.Info("difficulty set", "difficulty", mode)
}

// Difficulty returns the current difficulty.
func (g *Game) Difficulty() Difficulty {
	return g.settings.Difficulty
}

// SaveGame writes the board and score to the save slot.
// A failure leaves the game untouched and is reported as a notice.
func (g *Game) SaveGame() error {
	if g.persist == nil {
		g.notice = "Saving is not available"
		return ErrNoPersistence
	}
	if err := g.persist.SaveSlot(g.state.Board, g.state.Score); err != nil {
		g.logger.Error("could not save game", "error", err)
		g.notice = "Save failed"
		return err
	}
	g.notice = "Game saved"
	return nil
}

// LoadGame replaces board and score with the save slot. History and the
// undo counter are cleared; the difficulty setting is kept. A failure leaves
// the game untouched and is reported as a notice.
func (g *Game) LoadGame() error {
	if g.persist == nil {
		g.notice = "Loading is not available"
		return ErrNoPersistence
	}
	board, score, err := g.persist.LoadSlot()
	if err != nil {
		g.logger.Error("could not load game", "error", err)
		g.notice = "Load failed"
		return err
	}

	g.state = g.state.Restore(board, score)
	g.gameID = uuid.NewString()
	g.notice = "Game loaded"
	return nil
}

// Step applies one frame of input and returns the resulting state.
// At most one operation runs per frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Empty() {
		return core.StepResult{State: g.State()}
	}

	g.notice = ""
	changed := false

	switch {
	case in.Has(core.ActionRestart):
		g.NewGame()
		changed = true
	case in.Has(core.ActionUndo):
		changed = g.Undo()
	case in.Has(core.ActionSave):
		//nolint:errcheck // Failure is surfaced through the notice
		g.SaveGame()
	case in.Has(core.ActionLoad):
		changed = g.LoadGame() == nil
	case in.Has(core.ActionToggleDifficulty):
		g.SetDifficulty(g.Difficulty().Toggle())
		changed = true
	default:
		if dir, ok := directionFor(in); ok && !g.tooSmall {
			changed = g.ApplyDirection(dir)
		}
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the coarse state reported to the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Best:     g.best,
		GameOver: g.state.Status == StatusGameOver,
	}
}

// Session returns a copy of the current session state.
func (g *Game) Session() SessionState {
	return g.state
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.state.Board
}

// Best returns the best score known to this game.
func (g *Game) Best() int {
	return g.best
}

// Notice returns the message from the last operation, if any.
func (g *Game) Notice() string {
	return g.notice
}

// ToggleHelp shows or hides the how-to-play overlay.
func (g *Game) ToggleHelp() {
	g.helpShown = !g.helpShown
}
