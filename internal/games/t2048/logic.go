package t2048

import (
	"strconv"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// BoardSize is the board dimension.
const BoardSize = 4

// Board is the 4x4 tile grid. 0 marks an empty cell.
// Board is a value type: assigning or passing it copies every cell.
type Board [BoardSize][BoardSize]int

// line is a row or column oriented so tiles slide toward index 0.
type line [BoardSize]int

// compactMerge slides one line toward index 0.
// Zeros are dropped, then a single left-to-right pass merges each adjacent
// equal pair into one doubled tile. A merged tile is settled and does not
// merge again in the same pass. The result is padded with zeros.
func compactMerge(in line) (out line, score int) {
	var packed line
	n := 0
	for _, v := range in {
		if v != 0 {
			packed[n] = v
			n++
		}
	}

	w := 0
	for i := 0; i < n; i++ {
		if i+1 < n && packed[i] == packed[i+1] {
			out[w] = packed[i] * 2
			score += out[w]
			i++
		} else {
			out[w] = packed[i]
		}
		w++
	}

	return out, score
}

// Move slides every line of the board in dir under the given difficulty.
// It returns the new board and the score gained from merges. The input board
// is never modified. Both difficulties produce identical results; they only
// differ in how lines are extracted from the grid.
func Move(board Board, dir Direction, mode Difficulty) (Board, int) {
	if !dir.Valid() {
		return board, 0
	}
	if mode == Difficult {
		return moveTransposed(board, dir)
	}
	return moveIndexed(board, dir)
}

// cellAt returns the grid coordinates of position k on line i for dir.
// Position 0 is the edge tiles slide toward.
func cellAt(dir Direction, i, k int) (y, x int) {
	switch dir {
	case DirLeft:
		return i, k
	case DirRight:
		return i, BoardSize - 1 - k
	case DirUp:
		return k, i
	default:
		return BoardSize - 1 - k, i
	}
}

// moveIndexed reads each line straight out of the grid by index.
func moveIndexed(board Board, dir Direction) (Board, int) {
	var result Board
	total := 0

	for i := range BoardSize {
		var in line
		for k := range BoardSize {
			y, x := cellAt(dir, i, k)
			in[k] = board[y][x]
		}

		out, score := compactMerge(in)
		total += score

		for k := range BoardSize {
			y, x := cellAt(dir, i, k)
			result[y][x] = out[k]
		}
	}

	return result, total
}

// moveTransposed reorients the whole grid so every move becomes a left
// slide, then undoes the reorientation.
func moveTransposed(board Board, dir Direction) (Board, int) {
	switch dir {
	case DirRight:
		slid, score := slideRowsLeft(reverseRows(board))
		return reverseRows(slid), score
	case DirUp:
		slid, score := slideRowsLeft(transpose(board))
		return transpose(slid), score
	case DirDown:
		slid, score := slideRowsLeft(reverseRows(transpose(board)))
		return transpose(reverseRows(slid)), score
	default:
		return slideRowsLeft(board)
	}
}

func slideRowsLeft(board Board) (Board, int) {
	var result Board
	total := 0
	for y := range BoardSize {
		out, score := compactMerge(line(board[y]))
		result[y] = out
		total += score
	}
	return result, total
}

// reverseRows mirrors the board horizontally.
func reverseRows(board Board) Board {
	var result Board
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = board[y][BoardSize-1-x]
		}
	}
	return result
}

// transpose returns the matrix transpose.
func transpose(board Board) Board {
	var result Board
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = board[x][y]
		}
	}
	return result
}

// Pos is a cell coordinate.
type Pos struct{ X, Y int }

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Pos {
	var cells []Pos
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Pos{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				return true
			}
		}
	}
	return false
}

// HasAdjacentPair returns true if two horizontally or vertically adjacent
// cells hold the same non-zero value.
func HasAdjacentPair(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether no move can change the board: every cell is
// filled and no adjacent pair is equal. Reaching 2048 is not terminal.
func IsTerminal(board Board) bool {
	return !HasEmptyCell(board) && !HasAdjacentPair(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			maxVal = max(maxVal, board[y][x])
		}
	}
	return maxVal
}

// ValidTile reports whether v may appear on a board: 0 or a power of two >= 2.
func ValidTile(v int) bool {
	return v == 0 || (v >= 2 && v&(v-1) == 0)
}

// Valid reports whether every cell holds a valid tile.
func (b Board) Valid() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if !ValidTile(b[y][x]) {
				return false
			}
		}
	}
	return true
}

// Count returns the number of non-empty cells.
func (b Board) Count() int {
	return BoardSize*BoardSize - len(EmptyCells(b))
}

// String renders the board as four lines of space-separated values.
func (b Board) String() string {
	var sb strings.Builder
	for y := range BoardSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BoardSize {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(b[y][x]))
		}
	}
	return sb.String()
}
