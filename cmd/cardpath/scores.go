package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardpath/internal/rules"
	"github.com/vovakirdan/cardpath/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <stage>",
	Short: "Show best runs for a stage",
	Long: `Display the top 10 runs for the specified stage. Lower scores are
better: score = (moves + penalties) * 10 + seconds.

Examples:
  cardpath scores classic
  cardpath scores crossing`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	stageID := args[0]

	if !rules.StageExists(stageID) {
		fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", stageID)
		fmt.Fprintln(os.Stderr, "Run 'cardpath stages' to see available stages.")
		os.Exit(1)
	}

	reg, err := rules.Stage(stageID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	title := reg.Title
	if title == "" {
		title = reg.Stage
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.TopResults(stageID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cardpath play %s' to set the first score!\n", stageID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-4s  %-6s  %s\n", "Rank", "Score", "Moves", "Pen", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-4s  %-6s  %s\n", "----", "-----", "-----", "---", "----", "----")

	for i, r := range results {
		timeStr := fmt.Sprintf("%d:%02d", r.Seconds/60, r.Seconds%60)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-6d  %-4d  %-6s  %s\n", i+1, r.Score, r.Moves, r.Penalties, timeStr, dateStr)
	}

	fmt.Println()
	if best, ok, err := store.BestScore(stageID); err == nil && ok {
		fmt.Printf("Best: %d\n", best)
	}
}
