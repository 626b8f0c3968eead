package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/persist"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Difficulty:           "easy",
		UndoLimit:            t2048.DefaultUndoLimit,
		SpawnFourProbability: t2048.DefaultSpawnFourProb,
		SkipNoopMoves:        false,
		Paths: PathsConfig{
			DataDir:   "~/.t2048",
			BestScore: persist.DefaultBestFile,
			SaveSlot:  persist.DefaultSlotFile,
			ScoresDB:  "scores.db",
			LogFile:   "t2048.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKey:     "~/.t2048/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
