package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/games/llama"
	"github.com/vovakirdan/llama-arcade/internal/platform/tui"
	"github.com/vovakirdan/llama-arcade/internal/registry"
)

var (
	flagLevel      string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start Llama Adventure in the terminal.

Without --level the game opens its level menu. Any phrase may be played with
--level; only the event levels are ranked.

Controls:
  Left/Right, A/D     - Run
  Space/Up/W          - Jump (press again quickly to jump higher)
  P                   - Pause
  Esc/B               - Give up (while paused), back to levels
  R/Enter             - Play again (after a run)
  Ctrl+D              - Toggle debug shortcuts (C, T, F, N)
  Ctrl+S              - Save a text screenshot
  Q/Ctrl+C            - Quit

Difficulty options:
  easy   - 5 lives
  normal - 3 lives
  hard   - 2 lives and less coyote time

Examples:
  llama play
  llama play llama_hard
  llama play --level "YAVENDIO!" --difficulty easy
  llama play --level "HELLO WORLD" --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, windowCmd} {
		c.Flags().StringVar(&flagLevel, "level", "", "Start this level (phrase) directly")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	}
}

// resolveMode picks the mode ID from the argument and --difficulty.
func resolveMode(args []string) (string, error) {
	mode := "llama"
	if len(args) > 0 {
		mode = args[0]
	}
	if flagDifficulty != "" {
		switch config.ParseDifficulty(flagDifficulty) {
		case config.DifficultyEasy:
			mode = "llama_easy"
		case config.DifficultyNormal:
			mode = "llama"
		case config.DifficultyHard:
			mode = "llama_hard"
		default:
			return "", fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}
	if !registry.Exists(mode) {
		return "", fmt.Errorf("unknown game %q", mode)
	}
	return mode, nil
}

func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = tickRate()
	cfg.Seed = flagSeed
	cfg.Level = flagLevel
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	mode, err := resolveMode(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'llama list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	if g, ok := game.(*llama.Game); ok {
		g.SetLogger(logger)
	}

	local := openLocal(logger)
	defer local.Close()

	if err := tui.Run(game, local.reporter(), terminalConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
