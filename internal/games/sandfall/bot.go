package sandfall

import (
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

// Bot is the autoplay intent source. For every new piece it picks the
// rotation and column whose hard drop lands lowest and touches the most sand
// of the same colour, then walks the piece there one action at a time.
type Bot struct {
	Think int // ticks to wait between actions

	wait    int
	planned bool
	planKey int
	target  piece.Piece
}

// NewBot creates a bot acting every think+1 ticks.
func NewBot(think int) *Bot {
	return &Bot{Think: max(think, 0)}
}

// Intents implements IntentSource.
func (b *Bot) Intents(s Snapshot) []core.Action {
	if s.State != StatePlaying || !s.HasPiece {
		b.planned = false
		return nil
	}
	if !b.planned || b.planKey != s.Stats.Pieces {
		b.target = b.plan(s)
		b.planKey = s.Stats.Pieces
		b.planned = true
		b.wait = 0
	}
	if b.wait > 0 {
		b.wait--
		return nil
	}
	b.wait = b.Think

	p := s.Piece
	switch {
	case p.Rot != b.target.Rot:
		return []core.Action{core.ActionRotateCW}
	case p.X < b.target.X:
		return []core.Action{core.ActionMoveRight}
	case p.X > b.target.X:
		return []core.Action{core.ActionMoveLeft}
	default:
		return []core.Action{core.ActionHardDrop}
	}
}

func (b *Bot) plan(s Snapshot) piece.Piece {
	best := s.Piece
	bestScore := -1 << 31
	rotations := 4
	if s.Piece.Shape == piece.O {
		rotations = 1
	}
	for rot := 0; rot < rotations; rot++ {
		for x := -3 * field.GrainScale; x < s.W; x += field.GrainScale {
			p := s.Piece
			p.Rot = rot
			p.X = x
			if !s.Fits(p) {
				continue
			}
			for s.Fits(p.Moved(0, 1)) {
				p.Y++
			}
			if score := evaluate(s, p); score > bestScore {
				best, bestScore = p, score
			}
		}
	}
	return best
}

// evaluate favours low placements and contact with same-coloured sand.
func evaluate(s Snapshot, p piece.Piece) int {
	_, top, _, bottom := p.Bounds()
	want := field.Sand(p.Color)

	inside := func(x, y int) bool {
		for _, b := range p.Blocks() {
			if x >= b.X && x < b.X+field.GrainScale && y >= b.Y && y < b.Y+field.GrainScale {
				return true
			}
		}
		return false
	}
	contact := 0
	for _, b := range p.Blocks() {
		for i := -1; i <= field.GrainScale; i++ {
			for _, c := range [4]field.Coord{
				{X: b.X + i, Y: b.Y - 1},
				{X: b.X + i, Y: b.Y + field.GrainScale},
				{X: b.X - 1, Y: b.Y + i},
				{X: b.X + field.GrainScale, Y: b.Y + i},
			} {
				if c.X < 0 || c.X >= s.W || c.Y < 0 || c.Y >= s.H || inside(c.X, c.Y) {
					continue
				}
				if s.At(c.X, c.Y) == want {
					contact++
				}
			}
		}
	}
	return 4*top + 2*bottom + contact
}
