package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Show the save slot and best score",
	Long: `Print the saved board and the best score from the data directory.

Examples:
  t2048 slot
  t2048 slot --data-dir ./tmp`,
	Args: cobra.NoArgs,
	Run:  runSlot,
}

func runSlot(_ *cobra.Command, _ []string) {
	files := persist.New(appConfig.BestScorePath(), appConfig.SaveSlotPath())

	best, err := files.LoadBest()
	if err != nil && !errors.Is(err, persist.ErrBestMissing) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	fmt.Printf("Best: %d\n", best)

	// The history may know a higher score, e.g. from before the file existed
	if store, err := storage.Open(appConfig.ScoresDBPath()); err == nil {
		if high, err := store.HighScore(); err == nil && high > 0 {
			fmt.Printf("History best: %d\n", high)
		}
		store.Close()
	}
	fmt.Println()

	board, score, err := files.LoadSlot()
	if errors.Is(err, persist.ErrSlotEmpty) {
		fmt.Println("No saved game.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved game (%s)\n", files.SlotPath())
	fmt.Print(string(persist.FormatSlot(board, score)))
}
