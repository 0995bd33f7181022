package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall"
	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Open the start menu to choose the mode, difficulty and autoplay.

Controls:
  Up/Down or W/S     Navigate
  Left/Right         Change the selected setting
  Enter/Space        Select
  Tab                View high scores
  Q                  Quit

After a run ends, press B to return to the menu.`,
	Run: runMenu,
}

func init() {
	addGameplayFlags(menuCmd)
	addShotFlag(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) {
	cfg, err := loadSettings(cmd, "")
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

	menuLoop(store, logger, runtimeConfig(cfg), cfg)
}

// menuLoop shows the menu until the player quits. After a run, the menu
// opens again with the last settings.
func menuLoop(store *storage.Store, logger *log.Logger, rc core.RuntimeConfig, settings config.SandfallConfig) {
	for {
		result, err := tui.RunMenu(store, rc, settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			os.Exit(1)
		}
		rc = result.Config
		settings = result.Settings

		if result.WantsScoreboard {
			back, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH, result.GameID())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
				os.Exit(1)
			}
			if back {
				continue
			}
			return
		}

		if !result.Start {
			return
		}

		game := sandfall.New(settings.Mode.Kind)
		game.UseConfig(settings)

		runCfg := rc
		runCfg.TickRate = settings.Timing.TickRate

		opts := tui.ModelOptionsFor(settings)
		opts.Logger = logger
		opts.ShotDir = expandHome(flagShotDir)

		if _, err := tui.Run(game, store, runCfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
	}
}
