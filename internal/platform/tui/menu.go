package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// Menu rows.
const (
	rowMode = iota
	rowDifficulty
	rowAutoplay
	rowStart
	rowScores
	rowQuit
	menuRows
)

var menuModes = []config.ModeKind{config.ModeEndless, config.ModeTimed, config.ModeClear}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu. Left and right cycle
// the mode, difficulty and autoplay settings.
type MenuModel struct {
	base       config.SandfallConfig
	mode       int
	difficulty int
	autoplay   bool
	cursor     int
	width      int
	height     int
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	highScores map[string]int

	quitting       bool
	started        bool
	openScoreboard bool // True if user pressed Tab or picked Scores
}

// NewMenuModel creates a new menu model starting from base.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, base config.SandfallConfig) MenuModel {
	m := MenuModel{
		base:       base,
		autoplay:   base.Autoplay.Enabled,
		cursor:     rowStart,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		highScores: make(map[string]int),
	}
	for i, k := range menuModes {
		if k == base.Mode.Kind {
			m.mode = i
		}
	}
	m.difficulty = 1
	for i, d := range config.Difficulties {
		if d == base.Difficulty {
			m.difficulty = i
		}
	}
	m.loadHighScores()
	return m
}

func (m *MenuModel) loadHighScores() {
	if m.store == nil {
		return
	}
	for _, k := range menuModes {
		id := m.settingsFor(k).Variant()
		if hs, err := m.store.HighScore(id); err == nil {
			m.highScores[id] = hs
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + menuRows - 1) % menuRows

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % menuRows

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionSelect:
		switch m.cursor {
		case rowStart:
			m.started = true
			return m, tea.Quit
		case rowScores:
			m.openScoreboard = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) cycle(dir int) {
	wrap := func(v, n int) int { return (v + dir + n) % n }
	switch m.cursor {
	case rowMode:
		m.mode = wrap(m.mode, len(menuModes))
	case rowDifficulty:
		m.difficulty = wrap(m.difficulty, len(config.Difficulties))
	case rowAutoplay:
		m.autoplay = !m.autoplay
	}
}

// settingsFor returns the base config with the menu choices applied.
func (m MenuModel) settingsFor(kind config.ModeKind) config.SandfallConfig {
	cfg := m.base.Clone()
	cfg.Mode.Kind = kind
	config.ApplySandfallPreset(&cfg, config.Difficulties[m.difficulty])
	cfg.Autoplay.Enabled = m.autoplay
	return cfg
}

// Settings returns the configuration chosen in the menu.
func (m MenuModel) Settings() config.SandfallConfig {
	return m.settingsFor(menuModes[m.mode])
}

func modeLabel(cfg config.SandfallConfig) string {
	switch cfg.Mode.Kind {
	case config.ModeTimed:
		return fmt.Sprintf("Timed %ds", cfg.Mode.TimeLimit)
	case config.ModeClear:
		return fmt.Sprintf("Clear %d lines", cfg.Mode.ClearLines)
	default:
		return "Endless"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	settings := m.Settings()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S A N D F A L L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Blocks fall, crumble to sand, and clear in colour bands"), m.width))
	b.WriteString("\n\n")

	autoplay := "off"
	if m.autoplay {
		autoplay = "on"
	}
	rows := [menuRows]string{
		rowMode:       "Mode:       < " + modeLabel(settings) + " >",
		rowDifficulty: "Difficulty: < " + string(settings.Difficulty) + " >",
		rowAutoplay:   "Autoplay:   < " + autoplay + " >",
		rowStart:      "Start",
		rowScores:     "High Scores",
		rowQuit:       "Quit",
	}
	for i, text := range rows {
		line := "  " + text
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + text)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
		if i == rowAutoplay {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if hs, ok := m.highScores[settings.Variant()]; ok && hs > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best: %d", hs), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// IsStarted returns true if the user chose Start.
func (m MenuModel) IsStarted() bool {
	return m.started
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Settings        config.SandfallConfig
	Config          core.RuntimeConfig
	Start           bool
	WantsScoreboard bool
	Quit            bool
}

// GameID returns the registry id of the chosen variant.
func (r MenuResult) GameID() string {
	return r.Settings.Variant()
}

func (m MenuModel) result() MenuResult {
	return MenuResult{
		Settings:        m.Settings(),
		Config:          m.config,
		Start:           m.started,
		WantsScoreboard: m.openScoreboard,
		Quit:            !m.started && !m.openScoreboard,
	}
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, base config.SandfallConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg, base)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Settings: base}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Settings: base, Quit: true}, nil
	}
	return m.result(), nil
}
