package sandfall

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

// Snapshot is an immutable copy of the engine state taken between ticks. It
// is all the renderer, the bot and the scoreboard ever see.
type Snapshot struct {
	Tick   uint64
	Seed   int64
	W, H   int // grains
	Grains []field.Grain

	HasPiece bool
	Piece    piece.Piece
	GhostY   int // piece Y after a hard drop
	Next     []piece.Entry

	Score int
	Level int
	Spans int
	Chain int
	Stats Stats

	Mode        Mode
	State       State
	Reason      EndReason
	Elapsed     time.Duration
	Remaining   time.Duration // timed mode only
	GoalReached bool
	GoalTime    time.Duration
	Stable      bool
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        e.tick,
		Seed:        e.opts.Seed,
		W:           e.field.W(),
		H:           e.field.H(),
		Grains:      e.field.Cells(),
		HasPiece:    e.ctrl.Active(),
		Next:        e.queue.Peek(),
		Score:       e.score,
		Level:       e.level,
		Spans:       e.spans,
		Chain:       e.chain,
		Stats:       e.stats,
		Mode:        e.opts.Mode,
		State:       e.state,
		Reason:      e.reason,
		Elapsed:     e.elapsed,
		GoalReached: e.goalReached,
		GoalTime:    e.goalTime,
		Stable:      e.stable,
	}
	if s.HasPiece {
		s.Piece = e.ctrl.Piece()
		s.GhostY = s.Piece.Y + e.ctrl.DropDistance()
	}
	if e.opts.Mode.Kind() == ModeTimed {
		s.Remaining = max(e.opts.Mode.Limit()-e.elapsed, 0)
	}
	return s
}

// At returns the grain at (x, y). Coordinates must be inside the field.
func (s Snapshot) At(x, y int) field.Grain {
	return s.Grains[y*s.W+x]
}

// Blocked reports whether a piece grain at (x, y) would collide, using the
// same rule as the controller: walls, floor and sand block, the space above
// the field does not.
func (s Snapshot) Blocked(x, y int) bool {
	if x < 0 || x >= s.W || y >= s.H {
		return true
	}
	if y < 0 {
		return false
	}
	return s.Grains[y*s.W+x] != field.Empty
}

// Fits reports whether p can occupy its position in this snapshot.
func (s Snapshot) Fits(p piece.Piece) bool {
	return !p.Footprint(s.Blocked)
}
