package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomField(seed int64, density float64) *Field {
	rng := rand.New(rand.NewSource(seed))
	f := New(4, 4)
	for y := 0; y < f.H(); y++ {
		for x := 0; x < f.W(); x++ {
			if rng.Float64() < density {
				f.Set(x, y, Sand(Colors[rng.Intn(ColorCount)]))
			}
		}
	}
	return f
}

func TestSettleConservesGrains(t *testing.T) {
	for _, diagonal := range []bool{false, true} {
		for seed := int64(1); seed <= 20; seed++ {
			f := randomField(seed, 0.3)
			before := f.Count()
			perColor := make([]int, ColorCount)
			for _, c := range Colors {
				perColor[c] = f.CountColor(c)
			}

			for f.Settle(diagonal) {
				require.Equal(t, before, f.Count(), "seed %d diagonal %v", seed, diagonal)
			}
			for _, c := range Colors {
				assert.Equal(t, perColor[c], f.CountColor(c), "colour %v seed %d", c, seed)
			}
		}
	}
}

func TestSettleIsIdempotentWhenStable(t *testing.T) {
	for _, diagonal := range []bool{false, true} {
		f := randomField(7, 0.4)
		f.SettleToStable(diagonal)
		require.True(t, f.Stable(diagonal))

		snapshot := f.Clone()
		assert.False(t, f.Settle(diagonal))
		assert.True(t, f.Equal(snapshot), "stable settle mutated the field")
	}
}

func TestSettleMovesAtMostOneRowPerPass(t *testing.T) {
	f := New(1, 2)
	f.Set(2, 0, Sand(Red))
	f.Set(2, 1, Sand(Red))

	require.True(t, f.Settle(false))
	assert.Equal(t, Sand(Red), f.Get(2, 1))
	assert.Equal(t, Sand(Red), f.Get(2, 2))
	assert.True(t, f.Get(2, 0).IsEmpty())
}

func TestSettleStraightBuildsFlatColumns(t *testing.T) {
	f := New(1, 2)
	f.Set(2, 11, Sand(Blue))
	f.Set(2, 0, Sand(Green))

	passes := f.SettleToStable(false)
	assert.Equal(t, 10, passes)
	assert.Equal(t, Sand(Green), f.Get(2, 10))
	assert.Equal(t, Sand(Blue), f.Get(2, 11))
}

func TestSettleDiagonalPrefersDownLeft(t *testing.T) {
	f := New(1, 1)
	f.Set(3, 5, Sand(Red))
	f.Set(3, 4, Sand(Yellow))

	require.True(t, f.Settle(true))
	assert.Equal(t, Sand(Yellow), f.Get(2, 5))
	assert.True(t, f.Get(3, 4).IsEmpty())
}

func TestSettleDiagonalFallsBackToDownRight(t *testing.T) {
	f := New(1, 1)
	f.Set(0, 5, Sand(Red))
	f.Set(0, 4, Sand(Yellow))

	require.True(t, f.Settle(true))
	assert.Equal(t, Sand(Yellow), f.Get(1, 5))
}

func TestSettleWithoutDiagonalKeepsTowers(t *testing.T) {
	f := New(1, 1)
	for y := 0; y < 6; y++ {
		f.Set(3, y, Sand(Magenta))
	}
	assert.False(t, f.Settle(false))
	assert.True(t, f.Settle(true))
}

func TestSettleToStableSpreadsPile(t *testing.T) {
	f := New(2, 2)
	f.WriteBlock(3, 0, Cyan)
	n := f.Count()

	f.SettleToStable(true)
	assert.Equal(t, n, f.Count())
	assert.True(t, f.Stable(true))
	assert.Positive(t, f.Height(2), "grains should slide past the left edge of the block")
	assert.Positive(t, f.Height(9), "grains should slide past the right edge of the block")
}
