// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play               - Play a game (difficulty picker first)
//	t2048 scores             - Show finished-game history
//	t2048 slot               - Show the save slot and best score
//	t2048 serve              - Start SSH server for remote play
//	t2048 config             - Print the configuration
//
// Global flags:
//
//	--config <path>    - Use a specific config file
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--data-dir <path>  - Directory for best score, save slot and history
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDataDir string

	// appConfig is loaded once before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles in one of four directions. Equal neighbours merge into their
sum and a new tile appears after every move. The game ends when no move can
change the board.

Available commands:
  play     - Play a game
  scores   - View finished-game history
  slot     - Show the save slot and best score
  serve    - Start SSH server for remote play
  config   - Print the configuration

Examples:
  t2048 play
  t2048 play --difficulty difficult
  t2048 scores --limit 20
  t2048 serve --ssh :2222`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for game files (default from config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration: file, then .env and T2048_*
// variables, then command-line flags.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	config.ApplyEnv(&cfg)

	if flagDataDir != "" {
		cfg = cfg.WithDataDir(flagDataDir)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}
