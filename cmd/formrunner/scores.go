package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/formrunner/internal/platform/tui"
	"github.com/vovakirdan/formrunner/internal/registry"
	"github.com/vovakirdan/formrunner/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Display the best runs for a level, ranked by score and then by time.
Without a level, a summary of every played level is shown.

Examples:
  formrunner scores
  formrunner scores trail
  formrunner scores trail --limit 20
  formrunner scores --tui
  formrunner scores trail --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs interactively")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the level's run history")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if len(args) == 0 {
		return printSummary(store)
	}

	level := args[0]
	if flagScoresClear {
		if err := store.ClearRuns(level); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", level)
		return nil
	}
	return printRuns(store, level)
}

func levelTitle(id string) string {
	if info, ok := registry.Info(id); ok {
		return info.Title
	}
	return id
}

func printRuns(store *storage.Store, level string) error {
	runs, err := store.TopRuns(level, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", levelTitle(level))
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'formrunner play %s' to set the first score!\n", level)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-8s  %-6s  %-10s  %s\n", "Rank", "Score", "Fruits", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-8s  %-6s  %-10s  %s\n", "----", "-----", "------", "------", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-7d  %-6d  %-8s  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Fruits, r.Outcome, formatSeconds(r.Duration), player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(level); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Avg: %.0f", st.Runs, st.Wins, st.BestScore, st.AvgScore)
		if st.Wins > 0 {
			fmt.Printf("  Fastest win: %s", formatSeconds(st.FastestWin))
		}
		fmt.Println()
	}
	return nil
}

func printSummary(store *storage.Store) error {
	ids, err := store.PlayedLevels()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-5s  %-7s  %s\n", "Level", "Runs", "Wins", "Best", "Last played")
	fmt.Printf("  %-16s  %-5s  %-5s  %-7s  %s\n", "-----", "----", "----", "----", "-----------")
	for _, id := range ids {
		st, err := store.Stats(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		fmt.Printf("  %-16s  %-5d  %-5d  %-7d  %s\n",
			levelTitle(id), st.Runs, st.Wins, st.BestScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// formatSeconds renders simulated seconds as m:ss.
func formatSeconds(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
