package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/games/llama"
	"github.com/vovakirdan/llama-arcade/internal/platform/gfx"
	"github.com/vovakirdan/llama-arcade/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play in a desktop window",
	Long: `Open Llama Adventure in a desktop window.

The window reads real key releases, so holding jump gives the full jump
height. Controls match 'llama play'.

Examples:
  llama window
  llama window --level "IA PLAYGROUNDS"
  llama window --low-power`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, args []string) {
	mode, err := resolveMode(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	created, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*llama.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: mode %q has no window renderer\n", mode)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "llama",
		Level:           log.GetLevel(),
	})
	game.SetLogger(logger)

	local := openLocal(logger)
	defer local.Close()

	cfg := core.RuntimeConfig{
		ScreenW:  llama.ViewportWidth,
		ScreenH:  llama.GameHeight,
		TickRate: tickRate(),
		Seed:     flagSeed,
		Level:    flagLevel,
	}
	if err := gfx.Run(game, local.reporter(), cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
