package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether p is a known preset.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts a user string to a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "normal" {
		p = DifficultyMedium
	}
	if !p.Valid() {
		return "", fmt.Errorf("config: unknown difficulty %q: %w", s, ErrInvalidConfig)
	}
	return p, nil
}

// DifficultyTuning holds the parameters a preset controls.
type DifficultyTuning struct {
	GravityRate int     `yaml:"gravity_rate"` // grain rows per second at level 1
	QueueLength int     `yaml:"queue_length"` // visible next pieces, 1..3
	RepeatBias  float64 `yaml:"repeat_bias"`  // chance to repeat the previous colour
}

// Validate checks the tuning ranges.
func (t DifficultyTuning) Validate() error {
	if t.GravityRate <= 0 {
		return fmt.Errorf("gravity rate must be positive, got %d", t.GravityRate)
	}
	if t.QueueLength < 1 || t.QueueLength > 3 {
		return fmt.Errorf("queue length %d not in [1,3]", t.QueueLength)
	}
	if t.RepeatBias < 0 || t.RepeatBias > 1 {
		return fmt.Errorf("repeat bias %v not in [0,1]", t.RepeatBias)
	}
	return nil
}

// DefaultTuning returns the built-in parameters for a preset.
func DefaultTuning(p DifficultyPreset) DifficultyTuning {
	switch p {
	case DifficultyEasy:
		return DifficultyTuning{GravityRate: 30, QueueLength: 3, RepeatBias: 0.40}
	case DifficultyHard:
		return DifficultyTuning{GravityRate: 90, QueueLength: 1, RepeatBias: 0.08}
	default:
		return DifficultyTuning{GravityRate: 50, QueueLength: 2, RepeatBias: 0.20}
	}
}

// DifficultyManager derives the level and gravity speed from progress.
type DifficultyManager struct {
	tuning       DifficultyTuning
	progression  ProgressionConfig
	initialLevel int
	relaxed      bool
}

// NewDifficultyManager creates a manager for one run.
func NewDifficultyManager(t DifficultyTuning, p ProgressionConfig, initialLevel int, relaxed bool) *DifficultyManager {
	return &DifficultyManager{
		tuning:       t,
		progression:  p,
		initialLevel: max(initialLevel, 1),
		relaxed:      relaxed,
	}
}

// ManagerFor creates a manager from a full configuration.
func ManagerFor(cfg SandfallConfig) *DifficultyManager {
	return NewDifficultyManager(cfg.Tuning(), cfg.Progression, cfg.Gameplay.InitialLevel, cfg.Gameplay.Relaxed)
}

// Tuning returns the preset parameters.
func (d *DifficultyManager) Tuning() DifficultyTuning {
	return d.tuning
}

// Level returns the level after clearing spans.
func (d *DifficultyManager) Level(spans int) int {
	per := max(d.progression.LinesPerLevel, 1)
	return d.initialLevel + spans/per
}

// Rate returns the gravity rate in grain rows per second at a level.
// Relaxed play keeps the base rate.
func (d *DifficultyManager) Rate(level int) float64 {
	base := float64(d.tuning.GravityRate)
	if d.relaxed {
		return base
	}
	return base * (1 + d.progression.SpeedStep*float64(max(level, 1)-1))
}

// GravityInterval returns the time between one-row piece falls at a level,
// never shorter than the configured floor.
func (d *DifficultyManager) GravityInterval(level int) time.Duration {
	floor := time.Duration(d.progression.MinGravityIntervalMS) * time.Millisecond
	rate := d.Rate(level)
	if rate <= 0 {
		return floor
	}
	iv := time.Duration(float64(time.Second) / rate)
	if iv < floor {
		return floor
	}
	return iv
}
