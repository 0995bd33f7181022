package sandfall

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sandfall/internal/config"
)

// Options is the validated input of NewEngine.
type Options struct {
	Width, Height int // blocks
	Mode          Mode
	Tick          time.Duration // fixed simulation step
	SpawnDelay    time.Duration
	LockDelay     time.Duration
	InitialLevel  int
	Tuning        config.DifficultyTuning
	Progression   config.ProgressionConfig
	Relaxed       bool
	SandSettle    bool // diagonal grain movement
	NoAnimation   bool // settle to stability inside one tick
	SettlePasses  int  // settle passes per tick when animating
	Seed          int64
}

// DefaultOptions returns an endless, medium-difficulty 10×24 game.
func DefaultOptions() Options {
	opts, _ := OptionsFromConfig(config.DefaultSandfallConfig())
	return opts
}

// OptionsFromConfig validates cfg and converts it to engine options. Seed is
// left zero.
func OptionsFromConfig(cfg config.SandfallConfig) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	mode, err := ModeFromConfig(cfg.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:        cfg.Playfield.Width,
		Height:       cfg.Playfield.Height,
		Mode:         mode,
		Tick:         cfg.Timing.TickDuration(),
		SpawnDelay:   cfg.Timing.SpawnDelay(),
		LockDelay:    cfg.Timing.LockDelay(),
		InitialLevel: cfg.Gameplay.InitialLevel,
		Tuning:       cfg.Tuning(),
		Progression:  cfg.Progression,
		Relaxed:      cfg.Gameplay.Relaxed,
		SandSettle:   cfg.Gameplay.SandSettle,
		NoAnimation:  cfg.Gameplay.NoAnimation,
		SettlePasses: cfg.Gameplay.SettlePassesPerTick,
	}, nil
}

func (o Options) validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("sandfall: "+format+": %w", append(args, config.ErrInvalidConfig)...)
	}
	if o.Width < config.MinWidth || o.Width > config.MaxWidth {
		return invalid("width %d not in [%d,%d]", o.Width, config.MinWidth, config.MaxWidth)
	}
	if o.Height < config.MinHeight || o.Height > config.MaxHeight {
		return invalid("height %d not in [%d,%d]", o.Height, config.MinHeight, config.MaxHeight)
	}
	if err := o.Mode.validate(); err != nil {
		return err
	}
	if o.Tick <= 0 {
		return invalid("tick %s must be positive", o.Tick)
	}
	if o.SpawnDelay < 0 || o.LockDelay < 0 {
		return invalid("negative delay (spawn %s, lock %s)", o.SpawnDelay, o.LockDelay)
	}
	if o.InitialLevel < 1 {
		return invalid("initial level %d below 1", o.InitialLevel)
	}
	if err := o.Tuning.Validate(); err != nil {
		return invalid("%v", err)
	}
	if o.Progression.LinesPerLevel <= 0 || o.Progression.MinGravityIntervalMS <= 0 {
		return invalid("progression %+v", o.Progression)
	}
	if !o.NoAnimation && o.SettlePasses < 1 {
		return invalid("settle passes %d below 1", o.SettlePasses)
	}
	return nil
}

// lockResetLimit is how many moves or rotations may restart the lock delay
// before the piece locks regardless.
func (o Options) lockResetLimit() int {
	if o.Relaxed {
		return RelaxedLockResetLimit
	}
	return LockResetLimit
}

// Lock reset limits.
const (
	LockResetLimit        = 15
	RelaxedLockResetLimit = 30
)
