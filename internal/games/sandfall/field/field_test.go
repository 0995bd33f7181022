package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	f := New(10, 24)
	assert.Equal(t, 60, f.W())
	assert.Equal(t, 144, f.H())
	assert.Equal(t, 0, f.Count())
}

func TestNewRejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { New(0, 4) })
	assert.Panics(t, func() { New(4, -1) })
}

func TestOutOfBoundsAccessPanics(t *testing.T) {
	f := New(2, 2)
	assert.Panics(t, func() { f.Get(-1, 0) })
	assert.Panics(t, func() { f.Get(0, 12) })
	assert.Panics(t, func() { f.Set(12, 0, Sand(Red)) })
	assert.Panics(t, func() { f.WriteBlock(7, 0, Red) })
	assert.NotPanics(t, func() { f.WriteBlock(6, 6, Red) })
}

func TestOccupiedTreatsOutsideAsSolid(t *testing.T) {
	f := New(2, 2)
	assert.True(t, f.Occupied(-1, 0))
	assert.True(t, f.Occupied(0, -1))
	assert.True(t, f.Occupied(12, 0))
	assert.True(t, f.Occupied(0, 12))
	assert.False(t, f.Occupied(0, 0))

	f.Set(3, 4, Sand(Blue))
	assert.True(t, f.Occupied(3, 4))
}

func TestWriteBlockScenario(t *testing.T) {
	f := New(10, 24)
	o := BlockOrigin(0, 23)
	require.Equal(t, Coord{X: 0, Y: 138}, o)

	f.WriteBlock(o.X, o.Y, Yellow)

	for y := 0; y < f.H(); y++ {
		for x := 0; x < f.W(); x++ {
			inside := x < 6 && y >= 138
			if inside {
				assert.Equal(t, Sand(Yellow), f.Get(x, y), "grain (%d,%d)", x, y)
			} else if !f.Get(x, y).IsEmpty() {
				t.Fatalf("unexpected grain at (%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, 36, f.CountColor(Yellow))
}

func TestGrainColor(t *testing.T) {
	c, ok := Empty.Color()
	assert.False(t, ok)
	assert.Equal(t, Green, c)

	for _, want := range Colors {
		got, ok := Sand(want).Color()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestHasOverflow(t *testing.T) {
	f := New(4, 6)
	assert.False(t, f.HasOverflow())

	f.Set(5, SpawnBandRows, Sand(Red))
	assert.False(t, f.HasOverflow(), "grain just below the band")

	f.Set(5, SpawnBandRows-1, Sand(Red))
	assert.True(t, f.HasOverflow())
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(2, 2)
	f.Set(1, 1, Sand(Cyan))
	c := f.Clone()
	require.True(t, f.Equal(c))

	c.Set(1, 1, Empty)
	assert.False(t, f.Equal(c))
	assert.Equal(t, Sand(Cyan), f.Get(1, 1))
}

func TestColumnHeight(t *testing.T) {
	f := New(2, 2)
	assert.Equal(t, 0, f.Height(3))
	f.Set(3, 9, Sand(Green))
	assert.Equal(t, 3, f.Height(3))
}
