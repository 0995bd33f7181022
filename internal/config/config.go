// Package config provides YAML-based configuration loading, difficulty
// presets and validation for sandfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Playfield limits in blocks. A tetromino needs four columns and the spawn
// band plus one piece needs four rows.
const (
	MinWidth  = 4
	MinHeight = 4
	MaxWidth  = 64
	MaxHeight = 64
)

// ModeKind names a game mode.
type ModeKind string

const (
	ModeEndless ModeKind = "endless"
	ModeTimed   ModeKind = "timed"
	ModeClear   ModeKind = "clear"
)

// SandfallConfig contains all configuration for a sandfall run.
type SandfallConfig struct {
	Playfield   PlayfieldConfig                       `yaml:"playfield"`
	Mode        ModeConfig                            `yaml:"mode"`
	Difficulty  DifficultyPreset                      `yaml:"difficulty"`
	Presets     map[DifficultyPreset]DifficultyTuning `yaml:"presets"`
	Timing      TimingConfig                          `yaml:"timing"`
	Progression ProgressionConfig                     `yaml:"progression"`
	Gameplay    GameplayConfig                        `yaml:"gameplay"`
	Autoplay    AutoplayConfig                        `yaml:"autoplay"`
}

// PlayfieldConfig is the field size in blocks.
type PlayfieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ModeConfig selects the mode and its parameter.
type ModeConfig struct {
	Kind       ModeKind `yaml:"kind"`
	TimeLimit  int      `yaml:"time_limit"`   // seconds, timed mode
	ClearLines int      `yaml:"clear_lines"`  // spans to clear, clear mode
	StopOnGoal bool     `yaml:"stop_on_goal"` // clear mode ends in a win at the goal
}

// TimingConfig holds simulation cadence and piece timers.
type TimingConfig struct {
	TickRate     int `yaml:"tick_rate"`  // simulation ticks per second
	FrameRate    int `yaml:"frame_rate"` // redraws per second
	SpawnDelayMS int `yaml:"spawn_delay_ms"`
	LockDelayMS  int `yaml:"lock_delay_ms"`
}

// TickDuration returns the fixed duration of one simulation tick.
func (t TimingConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(t.TickRate)
}

// SpawnDelay returns the pause between a lock and the next spawn.
func (t TimingConfig) SpawnDelay() time.Duration {
	return time.Duration(t.SpawnDelayMS) * time.Millisecond
}

// LockDelay returns the grace period after a piece lands.
func (t TimingConfig) LockDelay() time.Duration {
	return time.Duration(t.LockDelayMS) * time.Millisecond
}

// ProgressionConfig defines how the level and gravity speed grow.
type ProgressionConfig struct {
	LinesPerLevel        int     `yaml:"lines_per_level"`
	SpeedStep            float64 `yaml:"speed_step"` // gravity rate gain per level
	MinGravityIntervalMS int     `yaml:"min_gravity_interval_ms"`
}

// GameplayConfig holds rule toggles.
type GameplayConfig struct {
	InitialLevel        int     `yaml:"initial_level"`
	Relaxed             bool    `yaml:"relaxed"`     // more lock resets, no spawn-band topout
	SandSettle          bool    `yaml:"sand_settle"` // diagonal grain movement
	NoAnimation         bool    `yaml:"no_animation"`
	HighColor           bool    `yaml:"high_color"` // rendering only
	Palette             Palette `yaml:"palette"`    // sand colour set, rendering only
	Theme               string  `yaml:"theme"`      // btop-style theme file, rendering only
	SettlePassesPerTick int     `yaml:"settle_passes_per_tick"`
}

// AutoplayConfig controls the demo bot.
type AutoplayConfig struct {
	Enabled     bool `yaml:"enabled"`
	AutoRestart bool `yaml:"auto_restart"`
	ThinkTicks  int  `yaml:"think_ticks"` // ticks between bot actions
}

// Clone returns a copy that shares no maps with c.
func (c SandfallConfig) Clone() SandfallConfig {
	out := c
	out.Presets = make(map[DifficultyPreset]DifficultyTuning, len(c.Presets))
	for k, v := range c.Presets {
		out.Presets[k] = v
	}
	return out
}

// Tuning returns the parameters of the selected difficulty.
func (c SandfallConfig) Tuning() DifficultyTuning {
	if t, ok := c.Presets[c.Difficulty]; ok {
		return t
	}
	return DefaultTuning(c.Difficulty)
}

// Variant returns the registry id for the configured mode.
func (c SandfallConfig) Variant() string {
	switch c.Mode.Kind {
	case ModeTimed:
		return "sandfall_timed"
	case ModeClear:
		return "sandfall_clear"
	default:
		return "sandfall"
	}
}

// Validate rejects configurations the engine cannot run.
func (c SandfallConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: "+format+": %w", append(args, ErrInvalidConfig)...)
	}

	p := c.Playfield
	if p.Width < MinWidth || p.Width > MaxWidth {
		return invalid("playfield width %d not in [%d,%d]", p.Width, MinWidth, MaxWidth)
	}
	if p.Height < MinHeight || p.Height > MaxHeight {
		return invalid("playfield height %d not in [%d,%d]", p.Height, MinHeight, MaxHeight)
	}

	switch c.Mode.Kind {
	case ModeEndless:
	case ModeTimed:
		if c.Mode.TimeLimit <= 0 {
			return invalid("time limit must be positive, got %d", c.Mode.TimeLimit)
		}
	case ModeClear:
		if c.Mode.ClearLines <= 0 {
			return invalid("clear target must be positive, got %d", c.Mode.ClearLines)
		}
	default:
		return invalid("unknown mode %q", c.Mode.Kind)
	}

	if !c.Difficulty.Valid() {
		return invalid("unknown difficulty %q", c.Difficulty)
	}
	if err := c.Tuning().Validate(); err != nil {
		return invalid("difficulty %s: %v", c.Difficulty, err)
	}

	t := c.Timing
	if t.TickRate <= 0 || t.TickRate > 1000 {
		return invalid("tick rate %d not in [1,1000]", t.TickRate)
	}
	if t.FrameRate <= 0 {
		return invalid("frame rate must be positive, got %d", t.FrameRate)
	}
	if t.SpawnDelayMS < 0 {
		return invalid("negative spawn delay %d", t.SpawnDelayMS)
	}
	if t.LockDelayMS < 0 {
		return invalid("negative lock delay %d", t.LockDelayMS)
	}

	if c.Progression.LinesPerLevel <= 0 {
		return invalid("lines per level must be positive, got %d", c.Progression.LinesPerLevel)
	}
	if c.Progression.SpeedStep < 0 {
		return invalid("negative speed step %v", c.Progression.SpeedStep)
	}
	if c.Progression.MinGravityIntervalMS <= 0 {
		return invalid("min gravity interval must be positive, got %d", c.Progression.MinGravityIntervalMS)
	}

	if c.Gameplay.InitialLevel < 1 {
		return invalid("initial level must be at least 1, got %d", c.Gameplay.InitialLevel)
	}
	if c.Gameplay.SettlePassesPerTick <= 0 {
		return invalid("settle passes per tick must be positive, got %d", c.Gameplay.SettlePassesPerTick)
	}
	if !c.Gameplay.Palette.Valid() {
		return invalid("unknown palette %q", c.Gameplay.Palette)
	}
	if c.Autoplay.ThinkTicks < 0 {
		return invalid("negative autoplay think ticks %d", c.Autoplay.ThinkTicks)
	}
	return nil
}
