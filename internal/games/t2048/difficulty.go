// Package t2048 implements the 2048 sliding-tile puzzle: the merge engine,
// the session state machine with bounded undo, and terminal rendering.
package t2048

import (
	"fmt"
	"strings"
)

// Difficulty selects how the merge engine walks the grid.
// It never changes the outcome of a move.
type Difficulty int

const (
	Easy Difficulty = iota
	Difficult
)

// DifficultyInfo describes a difficulty for menus.
type DifficultyInfo struct {
	Mode        Difficulty
	Name        string
	Description string
}

// Difficulties lists the selectable difficulties in menu order.
var Difficulties = []DifficultyInfo{
	{Mode: Easy, Name: "Easy", Description: "Lines read cell by cell from the grid"},
	{Mode: Difficult, Name: "Difficult", Description: "Grid is transposed and mirrored before each slide"},
}

// String returns the display name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Difficult:
		return "Difficult"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Toggle returns the other difficulty.
func (d Difficulty) Toggle() Difficulty {
	if d == Difficult {
		return Easy
	}
	return Difficult
}

// ParseDifficulty parses a case-insensitive difficulty name.
// The empty string yields Easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "easy":
		return Easy, nil
	case "difficult", "hard":
		return Difficult, nil
	default:
		return Easy, fmt.Errorf("t2048: unknown difficulty %q", s)
	}
}

// DifficultyNames returns the names of all difficulties.
func DifficultyNames() []string {
	names := make([]string, len(Difficulties))
	for i, d := range Difficulties {
		names[i] = d.Name
	}
	return names
}
