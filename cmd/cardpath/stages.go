package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardpath/internal/rules"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List all available stages",
	Long:  `Shows a list of all built-in stage regulations.`,
	Run:   runStages,
}

func runStages(cmd *cobra.Command, args []string) {
	stages := rules.Stages()

	if len(stages) == 0 {
		fmt.Println("No stages available.")
		return
	}

	fmt.Println("Available stages:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range stages {
		if len(s.Stage) > maxIDLen {
			maxIDLen = len(s.Stage)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Board", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, s := range stages {
		board := fmt.Sprintf("%d×%d", s.BoardSize, s.BoardSize)
		title := s.Title
		if title == "" {
			title = s.Stage
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, s.Stage, board, title)
	}

	fmt.Println()
	fmt.Println("Run 'cardpath play <id>' to play a stage.")
}
