package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      int
	flagRunID       int64
	flagReset       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top scores for a variant, or for every variant when omitted.
Clear mode also lists the fastest runs that reached the target.

Examples:
  sandfall scores
  sandfall scores sandfall_clear
  sandfall scores sandfall --limit 0     # every score
  sandfall scores --recent 5             # last five runs of any variant
  sandfall scores --run 12               # details of one run
  sandfall scores sandfall_timed --reset # delete timed scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the most recent runs instead")
	scoresCmd.Flags().Int64Var(&flagRunID, "run", 0, "Show the details of one run")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete every score of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	var gameIDs []string
	if len(args) > 0 {
		gameID := args[0]
		// Check if variant exists
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'sandfall list' to see available variants.")
			os.Exit(1)
		}
		gameIDs = []string{gameID}
	} else {
		gameIDs = registry.IDs()
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagReset:
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --reset needs a variant")
			os.Exit(1)
		}
		if err := store.ClearScores(gameIDs[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", gameIDs[0])

	case flagRunID > 0:
		printRun(store, flagRunID)

	case flagRecent > 0:
		printRecent(store, flagRecent)

	default:
		for i, id := range gameIDs {
			if i > 0 {
				fmt.Println()
			}
			printScores(store, id)
		}
	}
}

func printScores(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit > 0 {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Lines", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Lines, dateStr)
	}

	goals, err := store.FastestGoals(gameID, 5)
	if err == nil && len(goals) > 0 {
		fmt.Println()
		fmt.Println("Fastest clears:")
		for i, r := range goals {
			fmt.Printf("  %-4d  %-10s  %-6d  %s\n", i+1, formatDuration(r.GoalTime), r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Avg: %.0f  Best lines: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLines)
	}
}

func printRecent(store *storage.Store, limit int) {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-15s  %-10s  %-6s  %-10s  %s\n", "Run", "Variant", "Score", "Lines", "Time", "Ended")
	fmt.Printf("  %-5s  %-15s  %-10s  %-6s  %-10s  %s\n", "---", "-------", "-----", "-----", "----", "-----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-15s  %-10d  %-6d  %-10s  %s\n",
			r.ID, r.GameID, r.Score, r.Lines, formatDuration(r.Elapsed), r.EndReason)
	}
}

func printRun(store *storage.Store, id int64) {
	r, err := store.RunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with id %d\n", id)
		os.Exit(1)
	}

	fmt.Printf("Run %d - %s (%s)\n", r.ID, r.GameID, r.Difficulty)
	fmt.Println()
	fmt.Printf("  Score:          %d\n", r.Score)
	fmt.Printf("  Level:          %d\n", r.Level)
	fmt.Printf("  Lines:          %d\n", r.Lines)
	fmt.Printf("  Pieces:         %d\n", r.Pieces)
	fmt.Printf("  Grains cleared: %d\n", r.GrainsCleared)
	fmt.Printf("  Best chain:     %d\n", r.MaxChain)
	fmt.Printf("  Time:           %s\n", formatDuration(r.Elapsed))
	if r.GoalTime > 0 {
		fmt.Printf("  Goal reached:   %s\n", formatDuration(r.GoalTime))
	}
	fmt.Printf("  Ended:          %s\n", r.EndReason)
	fmt.Printf("  Seed:           %d\n", r.Seed)
	fmt.Printf("  Played:         %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	return fmt.Sprintf("%d:%02d.%d", int(d.Minutes()), int(d.Seconds())%60, int(d.Milliseconds()/100)%10)
}
