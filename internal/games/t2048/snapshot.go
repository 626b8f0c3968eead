package t2048

// Snapshot captures everything a presentation layer needs to draw the game.
type Snapshot struct {
	Board      Board
	Score      int
	Best       int
	Status     Status
	Difficulty Difficulty
	UndosLeft  int
	UndosUsed  int
	Moves      int
	MaxTile    int
	Notice     string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:      g.state.Board,
		Score:      g.state.Score,
		Best:       max(g.best, 0),
		Status:     g.state.Status,
		Difficulty: g.state.Difficulty,
		UndosLeft:  g.state.UndosLeft(),
		UndosUsed:  g.state.UndosUsed,
		Moves:      g.state.Moves,
		MaxTile:    MaxTile(g.state.Board),
		Notice:     g.notice,
	}
}
