// Package persist stores the best score and the single save slot as plain
// text files.
//
// Best-score file: one decimal integer, no trailing newline.
//
// Save-slot file: four lines of four space-separated tile values followed by
// a "Score: <int>" line.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Default file names inside the data directory.
const (
	DefaultBestFile = "highest_score.txt"
	DefaultSlotFile = "saved_game.txt"
)

var (
	// ErrBestMissing is returned by LoadBest when no best score was recorded.
	ErrBestMissing = errors.New("persist: best score not recorded")
	// ErrSlotEmpty is returned by LoadSlot when nothing was saved yet.
	ErrSlotEmpty = errors.New("persist: save slot is empty")
)

// FileStore implements t2048.Persistence on top of two text files.
type FileStore struct {
	bestPath string
	slotPath string
}

// New creates a store for the given files. Parent directories are created on
// the first write.
func New(bestPath, slotPath string) *FileStore {
	return &FileStore{bestPath: bestPath, slotPath: slotPath}
}

// NewInDir creates a store using the default file names inside dir.
func NewInDir(dir string) *FileStore {
	return New(filepath.Join(dir, DefaultBestFile), filepath.Join(dir, DefaultSlotFile))
}

// BestPath returns the best-score file path.
func (s *FileStore) BestPath() string {
	return s.bestPath
}

// SlotPath returns the save-slot file path.
func (s *FileStore) SlotPath() string {
	return s.slotPath
}

// LoadBest reads the best score. Whenever an error is returned the score is
// 0, so callers may log the error and carry on.
func (s *FileStore) LoadBest() (int, error) {
	data, err := os.ReadFile(s.bestPath)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrBestMissing, s.bestPath)
	}
	if err != nil {
		return 0, fmt.Errorf("persist: cannot read best score: %w", err)
	}

	text := strings.TrimSpace(string(data))
	best, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("persist: cannot parse best score %q: %w", text, err)
	}
	if best < 0 {
		return 0, fmt.Errorf("persist: negative best score %d", best)
	}
	return best, nil
}

// SaveBest overwrites the best-score file.
func (s *FileStore) SaveBest(score int) error {
	if score < 0 {
		return fmt.Errorf("persist: negative best score %d", score)
	}
	if err := writeFileAtomic(s.bestPath, []byte(strconv.Itoa(score))); err != nil {
		return fmt.Errorf("persist: cannot save best score: %w", err)
	}
	return nil
}

// SaveSlot overwrites the save slot with board and score.
func (s *FileStore) SaveSlot(board t2048.Board, score int) error {
	if !board.Valid() {
		return fmt.Errorf("persist: refusing to save invalid board")
	}
	if err := writeFileAtomic(s.slotPath, FormatSlot(board, score)); err != nil {
		return fmt.Errorf("persist: cannot save game: %w", err)
	}
	return nil
}

// LoadSlot reads the save slot.
func (s *FileStore) LoadSlot() (t2048.Board, int, error) {
	data, err := os.ReadFile(s.slotPath)
	if errors.Is(err, os.ErrNotExist) {
		return t2048.Board{}, 0, fmt.Errorf("%w: %s", ErrSlotEmpty, s.slotPath)
	}
	if err != nil {
		return t2048.Board{}, 0, fmt.Errorf("persist: cannot read save slot: %w", err)
	}
	return ParseSlot(data)
}

var _ t2048.Persistence = (*FileStore)(nil)

// FormatSlot encodes a board and score in the save-slot format.
func FormatSlot(board t2048.Board, score int) []byte {
	var sb strings.Builder
	sb.WriteString(board.String())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Score: %d\n", score)
	return []byte(sb.String())
}

// ParseSlot decodes the save-slot format. The first four lines are board
// rows; the score is the text after ": " on the fifth line. Lines after the
// fifth are ignored.
func ParseSlot(data []byte) (t2048.Board, int, error) {
	var board t2048.Board

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) < t2048.BoardSize+1 {
		return board, 0, fmt.Errorf("persist: save slot has %d lines, want %d", len(lines), t2048.BoardSize+1)
	}

	for y := range t2048.BoardSize {
		fields := strings.Fields(lines[y])
		if len(fields) != t2048.BoardSize {
			return t2048.Board{}, 0, fmt.Errorf("persist: row %d has %d values, want %d", y+1, len(fields), t2048.BoardSize)
		}
		for x, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return t2048.Board{}, 0, fmt.Errorf("persist: row %d: %w", y+1, err)
			}
			if !t2048.ValidTile(v) {
				return t2048.Board{}, 0, fmt.Errorf("persist: row %d: invalid tile %d", y+1, v)
			}
			board[y][x] = v
		}
	}

	_, scoreText, ok := strings.Cut(lines[t2048.BoardSize], ": ")
	if !ok {
		return t2048.Board{}, 0, fmt.Errorf("persist: malformed score line %q", lines[t2048.BoardSize])
	}
	score, err := strconv.Atoi(strings.TrimSpace(scoreText))
	if err != nil {
		return t2048.Board{}, 0, fmt.Errorf("persist: cannot parse score: %w", err)
	}
	if score < 0 {
		return t2048.Board{}, 0, fmt.Errorf("persist: negative score %d", score)
	}

	return board, score, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // Write error takes precedence
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck // Sync error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
