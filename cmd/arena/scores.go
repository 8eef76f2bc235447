package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dash-arena/internal/platform/tui"
	"github.com/vovakirdan/dash-arena/internal/storage"
)

var (
	flagLimit       int
	flagScoreID     string
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded matches",
	Long: `Display the top recorded matches, ordered by score then round.

Examples:
  arena scores
  arena scores --limit 20
  arena scores --game arena-sim
  arena scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().StringVar(&flagScoreID, "game", "arena", "Result table to show: arena or arena-sim")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in a full-screen table")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, tui.DefaultBoards(), width, height)
	}

	results, err := store.TopResults(flagScoreID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Printf("Best matches - %s\n", flagScoreID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arena play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %s\n", "Rank", "Score", "Round", "Length", "When")
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %s\n", "----", "-----", "-----", "------", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-10s  %-5d  %-8s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Round, r.Duration.Truncate(time.Second), humanize.Time(r.CreatedAt))
	}

	fmt.Println()
	best, err := store.HighScore(flagScoreID)
	if err == nil {
		fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	}
	if round, err := store.BestRound(flagScoreID); err == nil {
		fmt.Printf("Furthest round: %d\n", round)
	}
	return nil
}
