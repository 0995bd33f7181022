package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/games/sandfall"
	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [endless|timed|clear]",
	Short: "Play a sandfall mode",
	Long: `Start a run in the given mode (endless when omitted).

Controls:
  Left/Right, A/D, H/L   Move
  Up/X/W                 Rotate clockwise
  Z                      Rotate counter-clockwise
  Down/S                 Soft drop
  Space                  Hard drop
  P/Esc                  Pause
  R                      Restart
  Ctrl+S                 Screenshot (PNG)
  B                      Menu (paused or after the run)
  Q                      Quit

Examples:
  sandfall play
  sandfall play timed --time 90 --difficulty hard
  sandfall play clear --lines 20 --stop-on-goal
  sandfall play --autoplay --auto-restart`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"endless", "timed", "clear"},
	Run:       runPlay,
}

func init() {
	addGameplayFlags(playCmd)
	addShotFlag(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}

	cfg, err := loadSettings(cmd, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("sandfall", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sandfall.SetConfig(cfg)
	created, err := registry.Create(cfg.Variant())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*sandfall.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s is not a sandfall game\n", cfg.Variant())
		os.Exit(1)
	}

	opts := tui.ModelOptionsFor(cfg)
	opts.Logger = logger
	opts.ShotDir = expandHome(flagShotDir)

	rc := runtimeConfig(cfg)
	back, err := tui.Run(game, store, rc, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	if back {
		menuLoop(store, logger, rc, cfg)
	}
}
