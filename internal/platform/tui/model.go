package tui

import (
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall"
	"github.com/vovakirdan/sandfall/internal/platform/export"
	"github.com/vovakirdan/sandfall/internal/storage"
)

const (
	autoRestartDelay = 3 * time.Second
	flashDuration    = 2 * time.Second
)

// ModelOptions configure a game session.
type ModelOptions struct {
	Autoplay    bool
	AutoRestart bool
	ThinkTicks  int
	FrameRate   int
	HighColor   bool
	Palette     config.Palette
	ThemePath   string // btop-style theme file; empty uses the built-in theme
	ShotDir     string // Ctrl+S screenshots; empty disables them
	Logger      *log.Logger
	Embedded    bool // hosted by a SessionModel; B returns to its menu
}

// ModelOptionsFor derives session options from a configuration.
func ModelOptionsFor(cfg config.SandfallConfig) ModelOptions {
	return ModelOptions{
		Autoplay:    cfg.Autoplay.Enabled,
		AutoRestart: cfg.Autoplay.AutoRestart,
		ThinkTicks:  cfg.Autoplay.ThinkTicks,
		FrameRate:   cfg.Timing.FrameRate,
		HighColor:   cfg.Gameplay.HighColor,
		Palette:     cfg.Gameplay.Palette,
		ThemePath:   cfg.Gameplay.Theme,
	}
}

// Model is the Bubble Tea model for running a sandfall game.
type Model struct {
	id        uint64
	game      *sandfall.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	theme     *Theme
	config    core.RuntimeConfig
	opts      ModelOptions
	keyMapper *KeyMapper

	human  *sandfall.HumanSource // nil in autoplay
	bot    *sandfall.Bot         // nil unless autoplay
	source sandfall.IntentSource

	control    core.InputFrame // pause, restart and quit for the next tick
	gameState  core.GameState
	endTicks   int
	scoreSaved bool // Whether the run has been recorded for the current game over
	flashText  string
	flashTicks int
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *sandfall.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme, err := BuildTheme(opts.HighColor, opts.Palette, opts.ThemePath)
	if err != nil {
		logger.Warn("theme not loaded", "path", opts.ThemePath, "error", err)
	}

	m := Model{
		id:        nextModelID(),
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		theme:     &theme,
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
	}
	if opts.Autoplay {
		m.bot = sandfall.NewBot(opts.ThinkTicks)
		m.source = m.bot
	} else {
		m.human = sandfall.NewHumanSource(time.Second / time.Duration(cfg.TickRate))
		m.source = m.human
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if err := m.game.Err(); err != nil {
		m.logger.Error("cannot start game", "game", m.game.ID(), "error", err)
	} else {
		m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed, "mode", m.game.Config().Mode.Kind)
	}
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.opts.Embedded {
				return m, nil
			}
			return m, tea.Quit
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	switch {
	case action == core.ActionNone:
	case action.IsControl():
		m.control.Set(action)
	case m.human != nil:
		m.human.Press(action)
	}
	return m, nil
}

// handleResize processes window resize events. The run restarts only when
// the playfield no longer fits.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.game.Resize(m.config) {
		m.resetSources()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.endTicks = 0
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.control
	m.control = core.InputFrame{}

	if m.gameState.GameOver && m.opts.AutoRestart && !frame.Has(core.ActionRestart) {
		m.endTicks++
		if m.endTicks >= m.ticksFor(autoRestartDelay) {
			frame.Set(core.ActionRestart)
		}
	}
	if frame.Has(core.ActionRestart) {
		m.resetSources()
	}

	var snap sandfall.Snapshot
	if m.bot != nil {
		snap = m.game.Snapshot()
	}
	for _, a := range m.source.Intents(snap) {
		frame.Set(a)
	}

	result := m.game.Step(frame)
	m.gameState = result.State
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.gameState.GameOver {
		m.scoreSaved = false
		m.endTicks = 0
	} else if !m.scoreSaved && m.game.Engine() != nil {
		m.recordRun()
		m.scoreSaved = true
	}

	if m.flashTicks > 0 {
		m.flashTicks--
	}

	return m, tickCmd(m.config.TickRate, m.id)
}

func (m *Model) ticksFor(d time.Duration) int {
	return int(d * time.Duration(m.config.TickRate) / time.Second)
}

func (m *Model) resetSources() {
	if m.human != nil {
		m.human.Reset()
	}
	if m.bot != nil {
		m.bot = sandfall.NewBot(m.opts.ThinkTicks)
		m.source = m.bot
	}
}

// recordRun logs the finished run and stores it. Autoplay runs are only logged.
func (m *Model) recordRun() {
	rec := RunRecordFor(m.game)
	m.logger.Info("run ended",
		"game", rec.GameID,
		"score", rec.Score,
		"lines", rec.Lines,
		"level", rec.Level,
		"reason", rec.EndReason,
		"elapsed", rec.Elapsed.Round(time.Millisecond),
		"autoplay", m.opts.Autoplay,
	)
	if m.store == nil || m.opts.Autoplay || rec.Score == 0 {
		return
	}
	if _, err := m.store.SaveRun(rec); err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// RunRecordFor builds the scoreboard record of the game's current run.
func RunRecordFor(g *sandfall.Game) storage.RunRecord {
	s := g.Snapshot()
	return storage.RunRecord{
		GameID:        g.ID(),
		Score:         s.Score,
		Level:         s.Level,
		Lines:         s.Spans,
		Pieces:        s.Stats.Pieces,
		GrainsCleared: s.Stats.GrainsCleared,
		MaxChain:      s.Stats.MaxChain,
		Seed:          s.Seed,
		Difficulty:    string(g.Config().Difficulty),
		EndReason:     s.Reason.String(),
		Elapsed:       s.Elapsed,
		GoalTime:      s.GoalTime,
	}
}

// saveScreenshot writes the current field to a PNG file.
func (m *Model) saveScreenshot() {
	if m.opts.ShotDir == "" {
		m.flash("screenshots disabled")
		return
	}
	path := export.Filename(m.opts.ShotDir, m.game.ID(), time.Now())
	if err := export.SavePNG(path, m.game.Snapshot(), export.DefaultOptions()); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.flash("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.flash("saved " + filepath.Base(path))
}

func (m *Model) flash(text string) {
	m.flashText = text
	m.flashTicks = m.ticksFor(flashDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.flashTicks > 0 && m.screen.Height() > 0 {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.flashText, core.ColorHighlight)
	}
	return m.theme.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for the game. It reports whether the
// player asked to go back to the menu.
func Run(game *sandfall.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(max(opts.FrameRate, 1)),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := finalModel.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
