// Package storage provides SQLite-based history of finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// LocalPlayer is the player name used for games played in a local terminal.
const LocalPlayer = "local"

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameRecord represents a single finished game.
type GameRecord struct {
	ID         string
	Player     string
	Score      int
	MaxTile    int
	Moves      int
	UndosUsed  int
	Difficulty string
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			undos_used INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game and returns its ID. An empty ID gets a
// new UUID. Saving an existing ID replaces its numbers and keeps its
// creation time.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.Player == "" {
		rec.Player = LocalPlayer
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, player, score, max_tile, moves, undos_used, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			score = excluded.score,
			max_tile = excluded.max_tile,
			moves = excluded.moves,
			undos_used = excluded.undos_used,
			difficulty = excluded.difficulty`,
		id, rec.Player, rec.Score, rec.MaxTile, rec.Moves, rec.UndosUsed, rec.Difficulty,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N games ordered by score descending.
// An empty player matches every player.
func (s *Store) TopScores(player string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, max_tile, moves, undos_used, difficulty, created_at
		 FROM games
		 WHERE ? = '' OR player = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanGames(rows)
}

// RecentGames retrieves the most recently finished games.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, max_tile, moves, undos_used, difficulty, created_at
		 FROM games
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent games: %w", err)
	}
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var createdAt any
		if err := rows.Scan(&g.ID, &g.Player, &g.Score, &g.MaxTile, &g.Moves, &g.UndosUsed, &g.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded score, or 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearGames deletes all recorded games.
func (s *Store) ClearGames() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all games.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTile   int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(max_tile), 0)
		 FROM games`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestTile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM games ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Recorder returns a t2048.Recorder that stores games under player.
func (s *Store) Recorder(player string) t2048.Recorder {
	return &playerRecorder{store: s, player: player}
}

type playerRecorder struct {
	store  *Store
	player string
}

// RecordGame implements t2048.Recorder.
func (r *playerRecorder) RecordGame(res t2048.GameResult) error {
	_, err := r.store.SaveGame(GameRecord{
		ID:         res.ID,
		Player:     r.player,
		Score:      res.Score,
		MaxTile:    res.MaxTile,
		Moves:      res.Moves,
		UndosUsed:  res.UndosUsed,
		Difficulty: res.Difficulty.String(),
	})
	return err
}

// RecordGame implements t2048.Recorder for the local player.
func (s *Store) RecordGame(res t2048.GameResult) error {
	return s.Recorder(LocalPlayer).RecordGame(res)
}

// Ensure Store implements Recorder
var _ t2048.Recorder = (*Store)(nil)
