package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
	"github.com/vovakirdan/llama-arcade/internal/storage"
)

var (
	flagScoresLevel string
	flagLimit       int
	flagOffset      int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard, globally or for one level. Entries are ranked by
points, then by completion time.

Examples:
  llama scores
  llama scores --level "CRAFTER STATION"
  llama scores --limit 20 --offset 20
  llama scores --level "INSPIRA TECH" --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Only show this level")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries")
	scoresCmd.Flags().IntVar(&flagOffset, "offset", 0, "Skip this many entries")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs of --level (or all runs)")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := leaderboard.NewService(store, leaderboard.WithLevels(rankedLevels(log.Default())))
	if flagScoresLevel != "" && !svc.IsRanked(flagScoresLevel) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", flagScoresLevel)
		fmt.Fprintln(os.Stderr, "Run 'llama list' to see ranked levels.")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.ClearScores(ctx, flagScoresLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs of %s.\n", levelLabel(flagScoresLevel))
		return
	}

	page, err := svc.Leaderboard(ctx, leaderboard.Query{
		Level:  flagScoresLevel,
		Limit:  flagLimit,
		Offset: flagOffset,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leaderboard - %s\n", levelLabel(flagScoresLevel))
	fmt.Println()

	if len(page.Entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'llama play' and pick a level to set the first time!")
		return
	}

	now := time.Now()
	fmt.Printf("  %-5s  %-16s  %-20s  %8s  %7s  %s\n", "Rank", "Player", "Level", "Time", "Points", "When")
	fmt.Printf("  %-5s  %-16s  %-20s  %8s  %7s  %s\n", "----", "------", "-----", "----", "------", "----")
	for _, e := range page.Entries {
		points := humanize.Comma(int64(e.Points))
		if !e.Won {
			points = "-"
		}
		fmt.Printf("  %-5d  %-16s  %-20s  %7.2fs  %7s  %s\n",
			e.Rank, e.DisplayName(), e.Level, e.CompletionTime, points,
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}

	if page.HasMore {
		fmt.Println()
		fmt.Printf("More: llama scores --offset %d\n", page.Offset+page.Limit)
	}

	if flagScoresLevel != "" {
		printStats(ctx, svc, flagScoresLevel)
	}
}

func printStats(ctx context.Context, svc *leaderboard.Service, level string) {
	stats, err := svc.Stats(ctx, level)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %s  Wins: %s  Best: %s points",
		humanize.Comma(int64(stats.Runs)), humanize.Comma(int64(stats.Wins)), humanize.Comma(int64(stats.BestPoints)))
	if stats.BestTime > 0 {
		fmt.Printf(" in %.2fs", stats.BestTime)
	}
	fmt.Println()
	fmt.Printf("Last played %s\n", humanize.Time(stats.LastPlayed))
}

func levelLabel(level string) string {
	if level == "" {
		return "all levels"
	}
	return level
}
