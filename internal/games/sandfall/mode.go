package sandfall

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sandfall/internal/config"
)

// ModeKind is the closed set of game modes.
type ModeKind int

const (
	ModeEndless ModeKind = iota
	ModeTimed
	ModeClear
)

func (k ModeKind) String() string {
	switch k {
	case ModeTimed:
		return "timed"
	case ModeClear:
		return "clear"
	default:
		return "endless"
	}
}

// Mode is the immutable mode configuration chosen at construction.
type Mode struct {
	kind       ModeKind
	limit      time.Duration
	target     int
	stopOnGoal bool
}

// Endless plays until a spawn collides.
func Endless() Mode {
	return Mode{kind: ModeEndless}
}

// Timed plays until d has elapsed. Timed(0) ends on the first tick.
func Timed(d time.Duration) Mode {
	return Mode{kind: ModeTimed, limit: d}
}

// Clear flags the goal once target spans are cleared and keeps playing until
// a spawn collides.
func Clear(target int) Mode {
	return Mode{kind: ModeClear, target: target}
}

// ClearUntil is Clear that ends in a win as soon as the goal is reached.
func ClearUntil(target int) Mode {
	return Mode{kind: ModeClear, target: target, stopOnGoal: true}
}

// Kind returns the mode kind.
func (m Mode) Kind() ModeKind { return m.kind }

// Limit returns the time limit of a timed mode.
func (m Mode) Limit() time.Duration { return m.limit }

// Target returns the span goal of a clear mode.
func (m Mode) Target() int { return m.target }

// StopOnGoal reports whether reaching the goal wins the run.
func (m Mode) StopOnGoal() bool { return m.stopOnGoal }

func (m Mode) String() string {
	switch m.kind {
	case ModeTimed:
		return fmt.Sprintf("timed(%s)", m.limit)
	case ModeClear:
		if m.stopOnGoal {
			return fmt.Sprintf("clear-until(%d)", m.target)
		}
		return fmt.Sprintf("clear(%d)", m.target)
	default:
		return "endless"
	}
}

func (m Mode) validate() error {
	switch m.kind {
	case ModeEndless:
	case ModeTimed:
		if m.limit < 0 {
			return fmt.Errorf("sandfall: negative time limit %s: %w", m.limit, config.ErrInvalidConfig)
		}
	case ModeClear:
		if m.target < 1 {
			return fmt.Errorf("sandfall: clear target %d below 1: %w", m.target, config.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("sandfall: unknown mode %d: %w", m.kind, config.ErrInvalidConfig)
	}
	return nil
}

// ModeFromConfig converts the configured mode.
func ModeFromConfig(mc config.ModeConfig) (Mode, error) {
	switch mc.Kind {
	case config.ModeEndless:
		return Endless(), nil
	case config.ModeTimed:
		return Timed(time.Duration(mc.TimeLimit) * time.Second), nil
	case config.ModeClear:
		if mc.StopOnGoal {
			return ClearUntil(mc.ClearLines), nil
		}
		return Clear(mc.ClearLines), nil
	}
	return Mode{}, fmt.Errorf("sandfall: unknown mode %q: %w", mc.Kind, config.ErrInvalidConfig)
}

// State is the run state machine. The menu lives outside the engine.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver
	StateWin
	StateTimeUp
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateWin:
		return "win"
	case StateTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run is over.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateWin || s == StateTimeUp
}
