package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

var flagName string

const recentSessions = 5

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show or rename the local player",
	Long: `Show the leaderboard identity of this machine's player, or set its name
with --name.

Examples:
  llama user
  llama user --name "Lola"`,
	Args: cobra.NoArgs,
	Run:  runUser,
}

func init() {
	userCmd.Flags().StringVar(&flagName, "name", "", "Set the name shown on the leaderboard")
}

func runUser(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "llama", Level: log.GetLevel()})
	local := openLocal(logger)
	defer local.Close()

	if local.user == nil {
		fmt.Fprintln(os.Stderr, "Error: leaderboard database unavailable")
		os.Exit(1)
	}
	u := local.user

	if cmd.Flags().Changed("name") {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		renamed, err := local.svc.Rename(ctx, u.ID, flagName)
		if errors.Is(err, leaderboard.ErrMissingField) {
			fmt.Fprintln(os.Stderr, "Error: name cannot be empty")
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error renaming player: %v\n", err)
			os.Exit(1)
		}
		u = renamed
	}

	fmt.Printf("Player:  %s\n", u.DisplayName())
	fmt.Printf("Avatar:  %d\n", u.AvatarID)
	fmt.Printf("ID:      %s\n", u.ID)
	fmt.Printf("Since:   %s\n", humanize.Time(u.CreatedAt))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sessions, err := local.store.Sessions(ctx, u.ID, recentSessions)
	if err != nil || len(sessions) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, s := range sessions {
		fmt.Printf("  %-12s  %-8s  %-24s  %s\n",
			humanize.Time(s.CreatedAt), s.DeviceInfo.Client, s.DeviceInfo.Remote, s.DeviceInfo.Term)
	}
}
