package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cardpath/internal/platform/tui"
	"github.com/vovakirdan/cardpath/internal/rules"
	"github.com/vovakirdan/cardpath/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive stage picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a stage.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Pick a stage
  Tab          - Scoreboard
  Q            - Quit

Examples:
  cardpath menu
  cardpath menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	// Terminal size for the scoreboard layout
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.StageID == "" {
			break
		}

		reg, err := rules.Load(menuResult.StageID, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading stage: %v\n", err)
			continue
		}

		// Fresh shuffle for each run picked from the menu
		if err := tui.Run(reg, store, time.Now().UnixNano()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running stage: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
