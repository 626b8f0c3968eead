package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048. Without --difficulty a picker is shown first.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U                - Undo (undo_limit per game, 3 by default)
  N/R              - New game
  Ctrl+S / Ctrl+L  - Save / load the save slot
  Tab              - Toggle difficulty
  ?                - Help
  Esc              - Back to the picker
  Q/Ctrl+C         - Quit

Difficulty options:
  easy      - Lines are read cell by cell from the grid
  difficult - The grid is transposed and mirrored before each slide
Both produce the same result for every move.

Examples:
  t2048 play
  t2048 play --difficulty difficult
  t2048 play --seed 42 --data-dir ./tmp`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	names := strings.ToLower(strings.Join(t2048.DifficultyNames(), ", "))
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: "+names)
}

func runPlay(_ *cobra.Command, _ []string) {
	opts, err := appConfig.GameOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	skipPicker := flagDifficulty != ""
	if skipPicker {
		mode, parseErr := t2048.ParseDifficulty(flagDifficulty)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			os.Exit(1)
		}
		opts.Difficulty = mode
	}

	// Get terminal size early for the picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	// Log to a file so the alternate screen stays clean
	logger, closeLog := openLogFile(appConfig.LogFilePath())
	defer closeLog()

	files := persist.New(appConfig.BestScorePath(), appConfig.SaveSlotPath())
	opts.Persistence = files
	opts.Logger = logger

	// Open game history
	store, err := storage.Open(appConfig.ScoresDBPath())
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without history - game still works
		store = nil
	} else {
		defer store.Close()
		opts.Recorder = store
	}

	game := t2048.New(opts)

	for {
		if !skipPicker {
			best, _ := files.LoadBest()
			result, pickErr := tui.RunDifficultyPicker(cfg, game.Difficulty(), best)
			if pickErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
				os.Exit(1)
			}
			if result.Quit {
				return
			}
			if result.WantsScoreboard {
				goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
				if sbErr != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
					os.Exit(1)
				}
				if !goBack {
					return
				}
				continue
			}
			game.SetDifficulty(result.Difficulty)
		}
		skipPicker = false

		backToMenu, runErr := tui.Run(game, cfg)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		if !backToMenu {
			return
		}

		// A fixed seed replays the same game; only the first one uses it.
		cfg.Seed = 0
	}
}

// openLogFile returns a logger writing to path. If the file cannot be
// opened, logs are discarded.
func openLogFile(path string) (*log.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logger := log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Prefix:          "t2048",
			})
			return logger, func() {
				//nolint:errcheck // Best-effort close
				f.Close()
			}
		}
	}
	return log.New(io.Discard), func() {}
}
