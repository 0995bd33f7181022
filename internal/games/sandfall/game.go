package sandfall

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
)

// Package-level configuration shared by every variant, set by the CLI before
// games are created.
var (
	activeConfig = config.DefaultSandfallConfig()
)

// SetConfig replaces the configuration used by subsequent Resets. The mode
// kind is overridden by the variant.
func SetConfig(cfg config.SandfallConfig) {
	activeConfig = cfg
}

// CurrentConfig returns the configuration used by Reset.
func CurrentConfig() config.SandfallConfig {
	return activeConfig
}

// Variant ids.
const (
	IDEndless = "sandfall"
	IDTimed   = "sandfall_timed"
	IDClear   = "sandfall_clear"
)

// Game adapts the engine to the registry.Game interface.
type Game struct {
	kind     config.ModeKind
	override *config.SandfallConfig
	cfg      config.SandfallConfig
	engine   *Engine
	err      error

	screenW  int
	screenH  int
	tooSmall bool
	popups   []popup
}

// New creates a game of the given mode kind.
func New(kind config.ModeKind) *Game {
	return &Game{kind: kind}
}

func init() {
	registry.Register(IDEndless, func() registry.Game {
		return New(config.ModeEndless)
	})
	registry.Register(IDTimed, func() registry.Game {
		return New(config.ModeTimed)
	})
	registry.Register(IDClear, func() registry.Game {
		return New(config.ModeClear)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.kind {
	case config.ModeTimed:
		return IDTimed
	case config.ModeClear:
		return IDClear
	default:
		return IDEndless
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.kind {
	case config.ModeTimed:
		return "Sandfall (Timed)"
	case config.ModeClear:
		return "Sandfall (Clear)"
	default:
		return "Sandfall"
	}
}

// UseConfig makes this game ignore SetConfig and run with cfg instead. SSH
// sessions use it so each player keeps their own settings.
func (g *Game) UseConfig(cfg config.SandfallConfig) {
	g.override = &cfg
}

func (g *Game) baseConfig() config.SandfallConfig {
	if g.override != nil {
		return *g.override
	}
	return CurrentConfig()
}

// Reset starts a new run sized to the screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW, g.screenH = rc.ScreenW, rc.ScreenH
	g.popups = nil

	cfg := g.baseConfig()
	cfg.Mode.Kind = g.kind
	w, h, ok := FitPlayfield(cfg.Playfield.Width, cfg.Playfield.Height, rc.ScreenW, rc.ScreenH)
	g.tooSmall = !ok
	cfg.Playfield.Width, cfg.Playfield.Height = w, h
	g.cfg = cfg

	opts, err := OptionsFromConfig(cfg)
	if err == nil {
		opts.Seed = rc.Seed
		if rc.TickRate > 0 {
			opts.Tick = time.Second / time.Duration(rc.TickRate)
		}
		g.engine, err = NewEngine(opts)
	}
	g.err = err
}

// Err returns the construction error of the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.SandfallConfig {
	return g.cfg
}

// Engine returns the running engine, or nil if Reset failed.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{State: StateGameOver}
	}
	return g.engine.Snapshot()
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State(), Quit: in.Has(core.ActionQuit)}
	}
	if g.tooSmall {
		// Only quitting makes sense until the terminal grows.
		return core.StepResult{State: g.State(), Quit: in.Has(core.ActionQuit)}
	}
	res := g.engine.Step(in.Actions)
	g.agePopups()
	for _, c := range res.Clears {
		g.popups = append(g.popups, newPopup(c))
	}
	return core.StepResult{
		State: g.State(),
		Quit:  res.Quit,
		Ended: res.Ended,
	}
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{GameOver: true, Status: "error"}
	}
	s := g.engine.State()
	return core.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.Level(),
		Lines:    g.engine.Spans(),
		GameOver: s.Terminal(),
		Paused:   s == StatePaused,
		Status:   s.String(),
	}
}

// Resize adapts the run to a new screen size. The run restarts only when the
// fitted playfield changes; it reports whether it did.
func (g *Game) Resize(rc core.RuntimeConfig) bool {
	cfg := g.baseConfig()
	w, h, ok := FitPlayfield(cfg.Playfield.Width, cfg.Playfield.Height, rc.ScreenW, rc.ScreenH)
	if g.engine != nil && ok && !g.tooSmall && w == g.cfg.Playfield.Width && h == g.cfg.Playfield.Height {
		g.screenW, g.screenH = rc.ScreenW, rc.ScreenH
		return false
	}
	g.Reset(rc)
	return true
}
