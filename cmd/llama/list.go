package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/llama-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and ranked levels",
	Long:  `Shows the registered game modes and the levels that count for the leaderboard.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Ranked levels:")
	fmt.Println()
	for _, level := range rankedLevels(log.Default()) {
		fmt.Printf("  %-20s  x%.1f\n", level.Name, level.Multiplier)
	}

	fmt.Println()
	fmt.Println("Run 'llama play <id>' to play a mode.")
}
