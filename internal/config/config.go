// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Config contains all configuration for the game and its shells.
type Config struct {
	Difficulty           string      `yaml:"difficulty"`
	UndoLimit            int         `yaml:"undo_limit"`
	SpawnFourProbability float64     `yaml:"spawn_four_probability"`
	SkipNoopMoves        bool        `yaml:"skip_noop_moves"`
	Paths                PathsConfig `yaml:"paths"`
	SSH                  SSHConfig   `yaml:"ssh"`
}

// PathsConfig locates the files the game writes.
// Relative file names are resolved inside DataDir.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir"`
	BestScore string `yaml:"best_score"`
	SaveSlot  string `yaml:"save_slot"`
	ScoresDB  string `yaml:"scores_db"`
	LogFile   string `yaml:"log_file"`
}

// SSHConfig configures `t2048 serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := t2048.ParseDifficulty(c.Difficulty); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.UndoLimit < 0 {
		return fmt.Errorf("config: undo_limit must not be negative, got %d", c.UndoLimit)
	}
	if c.SpawnFourProbability < 0 || c.SpawnFourProbability > 1 {
		return fmt.Errorf("config: spawn_four_probability must be within [0, 1], got %g", c.SpawnFourProbability)
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("config: paths.data_dir is required")
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: ssh.idle_timeout must not be negative")
	}
	return nil
}

// GameOptions converts the rule settings to t2048 options.
// Persistence, recorder and logger are left for the caller.
func (c Config) GameOptions() (t2048.Options, error) {
	mode, err := t2048.ParseDifficulty(c.Difficulty)
	if err != nil {
		return t2048.Options{}, fmt.Errorf("config: %w", err)
	}
	return t2048.Options{
		Difficulty:    mode,
		UndoLimit:     c.UndoLimit,
		SpawnFourProb: c.SpawnFourProbability,
		SkipNoopMoves: c.SkipNoopMoves,
	}, nil
}

// WithDataDir returns a copy whose files live in dir.
func (c Config) WithDataDir(dir string) Config {
	c.Paths.DataDir = dir
	return c
}

// DataDir returns the expanded data directory.
func (c Config) DataDir() string {
	return ExpandPath(c.Paths.DataDir)
}

// BestScorePath returns the best-score file path.
func (c Config) BestScorePath() string {
	return c.resolve(c.Paths.BestScore)
}

// SaveSlotPath returns the save-slot file path.
func (c Config) SaveSlotPath() string {
	return c.resolve(c.Paths.SaveSlot)
}

// ScoresDBPath returns the SQLite database path.
func (c Config) ScoresDBPath() string {
	return c.resolve(c.Paths.ScoresDB)
}

// LogFilePath returns the log file path used by `t2048 play`.
func (c Config) LogFilePath() string {
	return c.resolve(c.Paths.LogFile)
}

// HostKeyPath returns the expanded SSH host key path.
func (c Config) HostKeyPath() string {
	return ExpandPath(c.SSH.HostKey)
}

func (c Config) resolve(name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir(), name)
}
