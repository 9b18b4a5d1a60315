package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardpath/internal/platform/tui"
	"github.com/vovakirdan/cardpath/internal/rules"
	"github.com/vovakirdan/cardpath/internal/storage"
)

var flagStageFile string

var playCmd = &cobra.Command{
	Use:   "play <stage>",
	Short: "Play a stage",
	Long: `Start playing the specified stage.

Controls:
  Arrows/WASD  - Move the board cursor
  Enter/Space  - Play the selected card to the cursor cell
  Tab          - Cycle the selected card
  1-9          - Select a card slot directly
  R            - Redraw the whole hand (penalty)
  X            - Discard one stack (penalty)
  P            - Pause
  N            - New run (after clearing)
  Q/Ctrl+C     - Quit

Stage files:
  Stages are YAML regulations. A custom file overrides the built-in
  stage of the same name; without --stage-file the loader also checks
  ~/.cardpath/stages/<stage>.yaml and ./stages/<stage>.yaml.

Examples:
  cardpath play classic
  cardpath play crossing --seed 42
  cardpath play classic --stage-file ./my-stage.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStageFile, "stage-file", "", "Path to custom stage regulation YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	stageID := args[0]

	reg, err := rules.Load(stageID, flagStageFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stage: %v\n", err)
		if !rules.StageExists(stageID) {
			fmt.Fprintln(os.Stderr, "Run 'cardpath stages' to see available stages.")
		}
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the stage still plays
		store = nil
	}

	runErr := tui.Run(reg, store, flagSeed)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running stage: %v\n", runErr)
		os.Exit(1)
	}
}
