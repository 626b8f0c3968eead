package core

// RuntimeConfig contains configuration passed to a game when it is (re)started.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the coarse game status reported back to the platform.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score known to the game
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Game.Step() after one input has been processed.
type StepResult struct {
	State GameState
	// Changed reports whether the input altered the board, score or status.
	Changed bool
}
