package sandfall

import (
	"errors"
	"time"

	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

// ErrStackOverflow reports that a piece could not enter the field: its spawn
// footprint overlaps sand, or it locked above the top row.
var ErrStackOverflow = errors.New("sandfall: stack overflow")

// Controller owns the falling piece and its move, rotate and lock protocol.
// Collision is tested at grain resolution because the terrain below is loose
// sand, not aligned blocks.
type Controller struct {
	field      *field.Field
	width      int // blocks
	lockDelay  time.Duration
	resetLimit int

	active bool
	piece  piece.Piece

	gravity   time.Duration // accumulated time toward the next one-row fall
	landed    bool
	lockTimer time.Duration
	resets    int
	lowestY   int
}

// NewController creates a controller for f.
func NewController(f *field.Field, widthBlocks int, lockDelay time.Duration, resetLimit int) *Controller {
	return &Controller{
		field:      f,
		width:      widthBlocks,
		lockDelay:  lockDelay,
		resetLimit: resetLimit,
	}
}

// Active reports whether a piece is falling.
func (c *Controller) Active() bool { return c.active }

// Piece returns the falling piece. Valid only while Active.
func (c *Controller) Piece() piece.Piece { return c.piece }

// Landed reports whether the piece is resting and its lock delay runs.
func (c *Controller) Landed() bool { return c.landed }

// Resets returns how many lock-delay resets were used since the piece last
// reached a new lowest row.
func (c *Controller) Resets() int { return c.resets }

// blocked is the collision rule: sand and the side walls and floor block a
// piece; rows above the field do not.
func (c *Controller) blocked(x, y int) bool {
	if y < 0 {
		return x < 0 || x >= c.field.W()
	}
	return c.field.Occupied(x, y)
}

// Collides reports whether p overlaps sand or leaves the field.
func (c *Controller) Collides(p piece.Piece) bool {
	return p.Footprint(c.blocked)
}

// Spawn activates a new piece at the top centre. It returns ErrStackOverflow
// when the spawn footprint is already occupied; no piece is active then.
func (c *Controller) Spawn(e piece.Entry) error {
	p := piece.Spawn(e, c.width)
	if c.Collides(p) {
		c.active = false
		return ErrStackOverflow
	}
	c.active = true
	c.piece = p
	c.gravity = 0
	c.landed = false
	c.lockTimer = 0
	c.resets = 0
	c.lowestY = p.Y
	return nil
}

// TryMove shifts the piece dx blocks sideways. It reports whether the move
// was accepted; a rejected move leaves the piece unchanged.
func (c *Controller) TryMove(dx int) bool {
	if !c.active || dx == 0 {
		return false
	}
	next := c.piece.Moved(dx*field.GrainScale, 0)
	if c.Collides(next) {
		return false
	}
	c.piece = next
	c.onShift()
	return true
}

// TryRotate turns the piece a quarter in dir, trying each kick in order.
func (c *Controller) TryRotate(dir piece.Direction) bool {
	if !c.active {
		return false
	}
	turned := c.piece.Rotated(dir)
	for _, k := range piece.Kicks {
		next := turned.Moved(k*field.GrainScale, 0)
		if !c.Collides(next) {
			c.piece = next
			c.onShift()
			return true
		}
	}
	return false
}

// onShift restarts the lock delay while resets remain.
func (c *Controller) onShift() {
	if c.landed && c.resets < c.resetLimit {
		c.lockTimer = 0
		c.resets++
	}
}

// stepDown moves the piece one grain row down if it can.
func (c *Controller) stepDown() bool {
	next := c.piece.Moved(0, 1)
	if c.Collides(next) {
		return false
	}
	c.piece = next
	c.landed = false
	c.lockTimer = 0
	if next.Y > c.lowestY {
		c.lowestY = next.Y
		c.resets = 0
	}
	return true
}

// Grounded reports whether the piece cannot move down.
func (c *Controller) Grounded() bool {
	return c.active && c.Collides(c.piece.Moved(0, 1))
}

// SoftDrop moves the piece down by up to rows grain rows and returns how many
// rows it moved.
func (c *Controller) SoftDrop(rows int) int {
	if !c.active {
		return 0
	}
	n := 0
	for n < rows && c.stepDown() {
		n++
	}
	return n
}

// DropDistance returns how many rows the piece can fall before it rests.
func (c *Controller) DropDistance() int {
	if !c.active {
		return 0
	}
	n := 0
	for !c.Collides(c.piece.Moved(0, n+1)) {
		n++
	}
	return n
}

// HardDrop moves the piece to the first obstruction and returns the rows
// fallen. The caller locks it right after.
func (c *Controller) HardDrop() int {
	if !c.active {
		return 0
	}
	n := c.DropDistance()
	c.piece = c.piece.Moved(0, n)
	return n
}

// Advance runs gravity and the lock delay for dt. interval is the time per
// one-row fall. It reports whether the lock delay expired; the caller then
// calls Lock.
func (c *Controller) Advance(dt, interval time.Duration) bool {
	if !c.active {
		return false
	}
	c.gravity += dt
	for c.gravity >= interval {
		c.gravity -= interval
		if !c.stepDown() {
			c.gravity = 0
			break
		}
	}

	if !c.Grounded() {
		c.landed = false
		c.lockTimer = 0
		return false
	}
	if !c.landed {
		c.landed = true
		c.lockTimer = 0
	} else {
		c.lockTimer += dt
	}
	return c.lockTimer >= c.lockDelay
}

// Lock writes the piece into the field as grains and destroys it. It returns
// ErrStackOverflow if any block is still above the top row; those blocks are
// discarded.
func (c *Controller) Lock() (piece.Piece, error) {
	p := c.piece
	c.active = false
	c.landed = false
	c.lockTimer = 0

	var err error
	for _, b := range p.Blocks() {
		if b.Y < 0 {
			err = ErrStackOverflow
			continue
		}
		c.field.WriteBlock(b.X, b.Y, p.Color)
	}
	return p, err
}

// Clear drops the active piece without writing it.
func (c *Controller) Clear() {
	c.active = false
	c.landed = false
	c.lockTimer = 0
	c.gravity = 0
}
