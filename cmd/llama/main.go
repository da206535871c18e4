// llama runs Llama Adventure, a side-scrolling letter-collecting platformer,
// in the terminal, over SSH or in a desktop window.
//
// Usage:
//
//	llama list               - List game modes
//	llama play [mode]        - Play in the terminal
//	llama menu               - Mode picker with leaderboard and name entry
//	llama window             - Play in a desktop window
//	llama serve              - Start SSH server for remote play
//	llama scores             - Show the leaderboard
//	llama user               - Show or rename the local player
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--low-power           - Run at 30 ticks per second
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set database path (default: ~/.llama/llama.db)
//	--config <path>       - Custom game config YAML
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/games/llama"
	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

var (
	// Global flags
	flagFPS      int
	flagLowPower bool
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "llama",
	Short: "Llama Adventure - collect the letters, reach the flag",
	Long: `Llama Adventure is a side-scrolling platformer. Run and jump through a
generated level, collect the letters of the level's phrase from the ground,
floating platforms and mystery boxes, then touch the flag.

Finished runs of the event levels go to a shared leaderboard.

Available commands:
  list     - Show game modes
  play     - Play directly in the terminal
  menu     - Interactive picker with leaderboard
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  user     - Show or rename the local player

Examples:
  llama play
  llama play --level "INSPIRA TECH" --difficulty hard
  llama menu
  llama serve --ssh :2222
  llama scores --level "CRAFTER STATION"`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		llama.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().BoolVar(&flagLowPower, "low-power", false, "Run at 30 ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.llama/llama.db", "Path to leaderboard database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(userCmd)
}

// tickRate resolves --fps and --low-power.
func tickRate() int {
	if flagLowPower {
		return core.LowPowerTickRate
	}
	if flagFPS <= 0 {
		return core.DefaultTickRate
	}
	return flagFPS
}

// rankedLevels returns the levels of the active config, the same list the
// game menu offers.
func rankedLevels(logger *log.Logger) []leaderboard.Level {
	cfg, err := config.LoadLlama(flagConfig)
	if err != nil {
		logger.Warn("using default levels", "error", err)
	}
	return cfg.Levels
}
