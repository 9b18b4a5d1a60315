// cardpath is a terminal card-movement puzzle: play cards to walk a piece
// across a grid until every cell has been visited.
//
// Usage:
//
//	cardpath stages           - List available stages
//	cardpath play <stage>     - Play a stage
//	cardpath menu             - Interactive stage picker
//	cardpath serve            - Start SSH server for remote play
//	cardpath scores <stage>   - Show best runs for a stage
//	cardpath sim <stage>      - Run headless sessions and report
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.cardpath/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardpath",
	Short: "Cardpath - a card-driven grid puzzle in your terminal",
	Long: `Cardpath is a terminal puzzle where you play movement cards to walk a
piece across a grid. Clear a stage by visiting every passable cell;
moves, penalties and time all count against your score.

Available commands:
  stages   - Show all available stages
  play     - Play a specific stage directly
  menu     - Interactive stage picker menu
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Run headless sessions and report statistics

Examples:
  cardpath stages
  cardpath play classic
  cardpath menu
  cardpath serve --ssh :2222
  cardpath scores classic
  cardpath sim crossing --games 100`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cardpath/results.db", "Path to results database")

	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
