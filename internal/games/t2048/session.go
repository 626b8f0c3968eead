package t2048

// Status is the session lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusGameOver Status = "game_over"
)

// DefaultSpawnFourProb is the chance a spawned tile is a 4 instead of a 2.
const DefaultSpawnFourProb = 0.10

// Source is the randomness a spawn needs. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// SpawnFunc places one new tile on a board and returns the result.
type SpawnFunc func(Board) Board

// SpawnTile picks a uniformly random empty cell and places a 4 there with
// probability fourProb, else a 2. A full board is returned unchanged.
func SpawnTile(board Board, rng Source, fourProb float64) Board {
	cells := EmptyCells(board)
	if len(cells) == 0 {
		return board
	}

	cell := cells[rng.Intn(len(cells))]

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	board[cell.Y][cell.X] = value
	return board
}

// SessionState is everything that belongs to one game.
// Operations take the state by value and return the successor state, so a
// caller only observes changes it assigns.
type SessionState struct {
	Board      Board
	Score      int
	Status     Status
	Difficulty Difficulty
	History    History
	UndoLimit  int
	UndosUsed  int
	Moves      int
	// SkipNoop makes moves that leave the board unchanged do nothing.
	// When false a no-op move still records history and spawns a tile.
	SkipNoop bool
}

// NewSession starts a game: empty board, two spawned tiles, zero score,
// empty history. Difficulty, undo limit and SkipNoop are carried over from
// the settings argument.
func NewSession(settings SessionState, spawn SpawnFunc) SessionState {
	s := SessionState{
		Status:     StatusActive,
		Difficulty: settings.Difficulty,
		History:    NewHistory(settings.UndoLimit),
		UndoLimit:  max(settings.UndoLimit, 0),
		SkipNoop:   settings.SkipNoop,
	}
	s.Board = spawn(spawn(Board{}))
	return s
}

// ApplyDirection plays one move. The pre-move board and score are pushed to
// history, the board slides, the delta is added, one tile spawns and the
// terminal condition is evaluated. Moves are ignored once the game is over.
// applied reports whether the move was taken.
func (s SessionState) ApplyDirection(dir Direction, spawn SpawnFunc) (next SessionState, applied bool) {
	if s.Status == StatusGameOver || !dir.Valid() {
		return s, false
	}

	moved, delta := Move(s.Board, dir, s.Difficulty)
	if s.SkipNoop && moved == s.Board {
		return s, false
	}

	s.History = s.History.Push(HistoryEntry{Board: s.Board, Score: s.Score})
	s.Board = spawn(moved)
	s.Score += delta
	s.Moves++
	s.Status = statusOf(s.Board)

	return s, true
}

// Undo restores the newest history entry. It does nothing when the history
// is empty or the game's undo allowance is spent.
func (s SessionState) Undo() (next SessionState, undone bool) {
	if s.UndosUsed >= s.UndoLimit {
		return s, false
	}

	entry, rest, ok := s.History.Pop()
	if !ok {
		return s, false
	}

	s.History = rest
	s.Board = entry.Board
	s.Score = entry.Score
	s.UndosUsed++
	s.Status = statusOf(s.Board)

	return s, true
}

// Restore replaces board and score, e.g. after loading a save slot.
// History and the undo counter are reset so undo cannot reach into a
// different game.
func (s SessionState) Restore(board Board, score int) SessionState {
	s.Board = board
	s.Score = score
	s.History = NewHistory(s.UndoLimit)
	s.UndosUsed = 0
	s.Moves = 0
	s.Status = statusOf(board)
	return s
}

// UndosLeft returns how many undos can be performed right now.
func (s SessionState) UndosLeft() int {
	return max(0, min(s.UndoLimit-s.UndosUsed, s.History.Len()))
}

// UndoAllowance returns how many undos remain for this game, ignoring
// whether history currently holds enough entries.
func (s SessionState) UndoAllowance() int {
	return max(0, s.UndoLimit-s.UndosUsed)
}

func statusOf(board Board) Status {
	if IsTerminal(board) {
		return StatusGameOver
	}
	return StatusActive
}
