package sandfall

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

func newController(w, h int, lockDelay time.Duration) (*field.Field, *Controller) {
	f := field.New(w, h)
	return f, NewController(f, w, lockDelay, LockResetLimit)
}

func TestSpawnTopCentre(t *testing.T) {
	_, c := newController(10, 24, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.T, Color: field.Red}))
	assert.True(t, c.Active())
	assert.Equal(t, 24, c.Piece().X)
	assert.Equal(t, 0, c.Piece().Y)
}

func TestSpawnCollisionIsStackOverflow(t *testing.T) {
	f, c := newController(10, 24, 0)
	f.Set(30, 8, field.Sand(field.Blue))

	err := c.Spawn(piece.Entry{Shape: piece.O, Color: field.Red})
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.False(t, c.Active())
}

func TestMoveStopsAtWalls(t *testing.T) {
	_, c := newController(6, 8, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Green}))

	moves := 0
	for c.TryMove(-1) {
		moves++
	}
	assert.Equal(t, 2, moves)
	assert.Equal(t, 0, c.Piece().X)

	moves = 0
	for c.TryMove(1) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 24, c.Piece().X)
}

func TestMoveBlockedBySingleGrain(t *testing.T) {
	f, c := newController(6, 8, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Green}))
	// one grain inside the target footprint is enough to block
	f.Set(11, 11, field.Sand(field.Red))

	before := c.Piece()
	assert.False(t, c.TryMove(-1))
	assert.Equal(t, before, c.Piece())
}

func TestRotateUsesKicks(t *testing.T) {
	_, c := newController(6, 8, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.I, Color: field.Cyan}))
	// stand the I up, push it against the left wall, then lay it down again
	require.True(t, c.TryRotate(piece.CW))
	c.piece.Y = 12
	for c.TryMove(-1) {
	}
	require.Equal(t, -6, c.Piece().X)

	require.True(t, c.TryRotate(piece.CCW))
	assert.Equal(t, 0, c.Piece().Rot)
	assert.Equal(t, 0, c.Piece().X, "kicked one block right")
}

func TestRotateFailsLeavesPieceUnchanged(t *testing.T) {
	f, c := newController(4, 6, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.I, Color: field.Cyan}))
	// wall of sand right under the I blocks every vertical orientation
	for x := 0; x < f.W(); x++ {
		f.Set(x, 6, field.Sand(field.Blue))
	}
	before := c.Piece()
	assert.False(t, c.TryRotate(piece.CW))
	assert.Equal(t, before, c.Piece())
}

func TestHardDropStopsAtFirstObstruction(t *testing.T) {
	f, c := newController(10, 24, 0)
	// uneven sand: a single grain under the right edge of the piece
	f.Set(35, 100, field.Sand(field.Yellow))
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Red}))

	n := c.HardDrop()
	p := c.Piece()
	assert.Equal(t, 100-12, p.Y)
	assert.Equal(t, n, p.Y)
	assert.False(t, c.Collides(p))
	assert.True(t, c.Collides(p.Moved(0, 1)))
}

func TestLockWritesBlocks(t *testing.T) {
	f, c := newController(10, 24, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Magenta}))
	for c.TryMove(-1) {
	}
	c.HardDrop()

	p, err := c.Lock()
	require.NoError(t, err)
	assert.False(t, c.Active())
	assert.Equal(t, 4*36, f.CountColor(field.Magenta))
	assert.Contains(t, p.Blocks(), field.BlockOrigin(0, 23))
	for y := 132; y < 144; y++ {
		for x := 0; x < 12; x++ {
			assert.Equal(t, field.Sand(field.Magenta), f.Get(x, y))
		}
	}
}

func TestLockAboveTopIsOverflow(t *testing.T) {
	f, c := newController(6, 8, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.I, Color: field.Cyan}))
	require.True(t, c.TryRotate(piece.CW))
	require.Less(t, c.Piece().Blocks()[0].Y, 0)

	_, err := c.Lock()
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, 3*36, f.Count())
}

func TestGravityAccumulates(t *testing.T) {
	_, c := newController(10, 24, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.T, Color: field.Red}))

	c.Advance(10*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, 0, c.Piece().Y)
	c.Advance(10*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, 1, c.Piece().Y)
	c.Advance(50*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, 6, c.Piece().Y)
}

func TestLockDelayAndResets(t *testing.T) {
	const tick = 10 * time.Millisecond
	_, c := newController(10, 24, 50*time.Millisecond)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Red}))
	c.HardDrop()

	assert.False(t, c.Advance(tick, time.Second), "landing starts the delay")
	assert.True(t, c.Landed())
	for i := 0; i < 4; i++ {
		require.False(t, c.Advance(tick, time.Second))
	}

	// a move resets the delay
	require.True(t, c.TryMove(1))
	assert.Equal(t, 1, c.Resets())
	for i := 0; i < 4; i++ {
		require.False(t, c.Advance(tick, time.Second))
	}
	assert.True(t, c.Advance(tick, time.Second))
}

func TestLockDelayResetLimit(t *testing.T) {
	const tick = 10 * time.Millisecond
	_, c := newController(10, 24, 30*time.Millisecond)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Red}))
	c.HardDrop()
	c.Advance(tick, time.Second)

	dir := 1
	for i := 0; i < LockResetLimit; i++ {
		if !c.TryMove(dir) {
			dir = -dir
			require.True(t, c.TryMove(dir))
		}
		require.False(t, c.Advance(tick, time.Second))
	}
	assert.Equal(t, LockResetLimit, c.Resets())

	// resets are spent: the timer keeps running despite further moves
	locked := false
	for i := 0; i < 5 && !locked; i++ {
		if !c.TryMove(dir) {
			dir = -dir
			c.TryMove(dir)
		}
		locked = c.Advance(tick, time.Second)
	}
	assert.True(t, locked)
}

func TestSoftDrop(t *testing.T) {
	_, c := newController(4, 4, 0)
	require.NoError(t, c.Spawn(piece.Entry{Shape: piece.O, Color: field.Red}))

	assert.Equal(t, 6, c.SoftDrop(6))
	assert.Equal(t, 6, c.SoftDrop(6))
	assert.Equal(t, 0, c.SoftDrop(6), "O rests on the floor of a 24-row field at y=12")
	assert.True(t, c.Grounded())
}
