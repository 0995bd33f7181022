package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
)

// Gameplay flags shared by play, menu, serve and config.
var (
	flagDifficulty   string
	flagWidth        int
	flagHeight       int
	flagTimeLimit    int
	flagClearLines   int
	flagStopOnGoal   bool
	flagRelaxed      bool
	flagNoSandSettle bool
	flagNoAnimation  bool
	flagLowColor     bool
	flagPalette      string
	flagTheme        string
	flagAutoplay     bool
	flagAutoRestart  bool
	flagShotDir      string
)

func addGameplayFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	f.IntVar(&flagWidth, "width", 0, "Playfield width in blocks")
	f.IntVar(&flagHeight, "height", 0, "Playfield height in blocks")
	f.IntVar(&flagTimeLimit, "time", 0, "Timed mode limit in seconds")
	f.IntVar(&flagClearLines, "lines", 0, "Clear mode target in lines")
	f.BoolVar(&flagStopOnGoal, "stop-on-goal", false, "Clear mode ends in a win at the target")
	f.BoolVar(&flagRelaxed, "relaxed", false, "More lock resets, no speedup, no spawn-band topout")
	f.BoolVar(&flagNoSandSettle, "no-sand-settle", false, "Grains only fall straight down")
	f.BoolVar(&flagNoAnimation, "no-animation", false, "Settle sand instantly")
	f.BoolVar(&flagLowColor, "low-color", false, "Use the 16-colour palette")
	f.StringVar(&flagPalette, "palette", "", "Sand palette: normal, high-contrast, colorblind")
	f.StringVar(&flagTheme, "theme", "", "btop-style theme file")
	f.BoolVar(&flagAutoplay, "autoplay", false, "Let the bot play")
	f.BoolVar(&flagAutoRestart, "auto-restart", false, "Restart a few seconds after the run ends")
}

func addShotFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagShotDir, "shot-dir", "~/.sandfall/screenshots", "Directory for Ctrl+S screenshots (empty disables them)")
}

// loadSettings loads the configuration file and applies the flags the user set.
func loadSettings(cmd *cobra.Command, mode string) (config.SandfallConfig, error) {
	cfg, err := config.LoadSandfall(flagConfig)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if mode != "" {
		kind := config.ModeKind(strings.ToLower(mode))
		switch kind {
		case config.ModeEndless, config.ModeTimed, config.ModeClear:
			cfg.Mode.Kind = kind
		default:
			return cfg, fmt.Errorf("unknown mode %q (want endless, timed or clear)", mode)
		}
	}
	if f.Changed("fps") {
		cfg.Timing.TickRate = flagFPS
	}
	if f.Changed("difficulty") {
		p, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplySandfallPreset(&cfg, p)
	}
	if f.Changed("width") {
		cfg.Playfield.Width = flagWidth
	}
	if f.Changed("height") {
		cfg.Playfield.Height = flagHeight
	}
	if f.Changed("time") {
		cfg.Mode.TimeLimit = flagTimeLimit
	}
	if f.Changed("lines") {
		cfg.Mode.ClearLines = flagClearLines
	}
	if f.Changed("stop-on-goal") {
		cfg.Mode.StopOnGoal = flagStopOnGoal
	}
	if f.Changed("relaxed") {
		cfg.Gameplay.Relaxed = flagRelaxed
	}
	if f.Changed("no-sand-settle") {
		cfg.Gameplay.SandSettle = !flagNoSandSettle
	}
	if f.Changed("no-animation") {
		cfg.Gameplay.NoAnimation = flagNoAnimation
	}
	if f.Changed("low-color") {
		cfg.Gameplay.HighColor = !flagLowColor
	}
	if f.Changed("palette") {
		p, err := config.ParsePalette(flagPalette)
		if err != nil {
			return cfg, err
		}
		cfg.Gameplay.Palette = p
	}
	if f.Changed("theme") {
		cfg.Gameplay.Theme = flagTheme
	}
	cfg.Gameplay.Theme = expandHome(cfg.Gameplay.Theme)
	if f.Changed("autoplay") {
		cfg.Autoplay.Enabled = flagAutoplay
	}
	if f.Changed("auto-restart") {
		cfg.Autoplay.AutoRestart = flagAutoRestart
	}

	return cfg, cfg.Validate()
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig(cfg config.SandfallConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = cfg.Timing.TickRate
	rc.Seed = flagSeed
	return rc
}

// newLogger writes to --log-file when set and to fallback otherwise. The
// returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = file
		closeFn = func() { file.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
