package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished-game history",
	Long: `Display the best finished games recorded in the scores database.

Examples:
  t2048 scores
  t2048 scores --limit 25
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
}

func runScores(_ *cobra.Command, _ []string) {
	if flagLimit <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --limit must be positive, got %d\n", flagLimit)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(appConfig.ScoresDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		defer store.Close()
		if err := store.ClearGames(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Game history cleared.")
		return
	}

	// Get top games
	games, err := store.TopScores("", flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %-9s  %s\n", "Rank", "Player", "Score", "Max", "Moves", "Mode", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-6s  %-9s  %s\n", "----", "------", "-----", "---", "-----", "----", "----")

	// Print games
	for i, g := range games {
		dateStr := g.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-6d  %-6d  %-9s  %s\n",
			i+1, g.Player, g.Score, g.MaxTile, g.Moves, g.Difficulty, dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Best tile: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile)
	}
}
