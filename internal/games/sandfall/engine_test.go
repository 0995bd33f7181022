package sandfall

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
)

func newEngine(t *testing.T, mutate func(o *Options)) *Engine {
	t.Helper()
	o := DefaultOptions()
	o.Seed = 42
	if mutate != nil {
		mutate(&o)
	}
	e, err := NewEngine(o)
	require.NoError(t, err)
	return e
}

func stepN(e *Engine, n int, intents ...core.Action) StepResult {
	var res StepResult
	for i := 0; i < n; i++ {
		res = e.Step(intents)
	}
	return res
}

func fillRow(f *field.Field, y int, c field.Color) {
	for x := 0; x < f.W(); x++ {
		f.Set(x, y, field.Sand(c))
	}
}

func TestNewEngineRejectsInvalidOptions(t *testing.T) {
	cases := map[string]func(o *Options){
		"narrow":         func(o *Options) { o.Width = 3 },
		"tall":           func(o *Options) { o.Height = config.MaxHeight + 1 },
		"negative timer": func(o *Options) { o.Mode = Timed(-time.Second) },
		"zero target":    func(o *Options) { o.Mode = Clear(0) },
		"zero tick":      func(o *Options) { o.Tick = 0 },
		"negative lock":  func(o *Options) { o.LockDelay = -time.Millisecond },
		"level zero":     func(o *Options) { o.InitialLevel = 0 },
		"no passes":      func(o *Options) { o.NoAnimation = false; o.SettlePasses = 0 },
		"empty queue":    func(o *Options) { o.Tuning.QueueLength = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			_, err := NewEngine(o)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestFirstTickSpawns(t *testing.T) {
	e := newEngine(t, nil)
	assert.Equal(t, StatePlaying, e.State())
	assert.False(t, e.Snapshot().HasPiece)

	e.Step(nil)
	s := e.Snapshot()
	require.True(t, s.HasPiece)
	assert.Equal(t, 24, s.Piece.X)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Len(t, s.Next, e.Options().Tuning.QueueLength)
}

func TestTimedZeroEndsBeforeSpawn(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.Mode = Timed(0) })

	res := e.Step(nil)
	assert.Equal(t, StateTimeUp, res.State)
	assert.True(t, res.Ended)
	s := e.Snapshot()
	assert.False(t, s.HasPiece)
	assert.Zero(t, s.Stats.Pieces)
	assert.Equal(t, EndTimeUp, s.Reason)
}

func TestTimedEndsAtLimit(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.Mode = Timed(100 * time.Millisecond)
		o.Tick = 10 * time.Millisecond
	})

	ended := 0
	for i := 0; i < 20; i++ {
		if e.Step(nil).Ended {
			ended++
		}
	}
	s := e.Snapshot()
	assert.Equal(t, 1, ended)
	assert.Equal(t, StateTimeUp, s.State)
	assert.Equal(t, uint64(10), s.Tick)
	assert.Equal(t, 100*time.Millisecond, s.Elapsed)
	assert.Zero(t, s.Remaining)
}

func TestTerminalStateIgnoresPlayIntents(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.Mode = Timed(0) })
	e.Step(nil)
	before := e.Snapshot()

	res := e.Step([]core.Action{core.ActionMoveLeft, core.ActionHardDrop, core.ActionPause})
	assert.Equal(t, StateTimeUp, res.State)
	assert.Equal(t, before, e.Snapshot())
}

func TestClearGoalKeepsPlayingUntilGameOver(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.Width, o.Height = 4, 4
		o.Mode = Clear(1)
		o.Relaxed = true
		o.SpawnDelay = 100 * time.Millisecond
	})
	fillRow(e.Field(), e.Field().H()-1, field.Red)

	res := e.Step(nil)
	require.Len(t, res.Clears, 1)
	assert.Equal(t, StatePlaying, res.State)
	assert.True(t, e.GoalReached())
	assert.Equal(t, 1, e.Spans())
	goal := e.Snapshot().GoalTime
	assert.Equal(t, e.Options().Tick, goal)

	// a full field of alternating columns has no span and blocks the spawn
	f := e.Field()
	for y := 0; y < f.H(); y++ {
		for x := 0; x < f.W(); x++ {
			c := field.Blue
			if x%2 == 1 {
				c = field.Yellow
			}
			f.Set(x, y, field.Sand(c))
		}
	}
	for i := 0; i < 20 && e.State() == StatePlaying; i++ {
		res = e.Step(nil)
	}
	s := e.Snapshot()
	assert.Equal(t, StateGameOver, s.State)
	assert.Equal(t, EndSpawnBlocked, s.Reason)
	assert.True(t, s.GoalReached)
	assert.Equal(t, goal, s.GoalTime)
	assert.Equal(t, 1, s.Spans)
}

func TestClearUntilWins(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.Width, o.Height = 4, 4
		o.Mode = ClearUntil(1)
	})
	fillRow(e.Field(), e.Field().H()-1, field.Green)

	res := e.Step(nil)
	assert.Equal(t, StateWin, res.State)
	assert.True(t, res.Ended)
	assert.Equal(t, EndGoal, e.Snapshot().Reason)
	assert.False(t, e.Snapshot().HasPiece)
}

func TestBandClearsAfterSettling(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.SandSettle = false
		o.NoAnimation = true
	})
	f := e.Field()
	require.Equal(t, 60, f.W())
	require.Equal(t, 144, f.H())
	// even blocks on the floor, odd blocks floating three blocks higher
	for bx := 0; bx < 10; bx++ {
		by := 23
		if bx%2 == 1 {
			by = 20
		}
		o := field.BlockOrigin(bx, by)
		f.WriteBlock(o.X, o.Y, field.Red)
	}
	require.Empty(t, field.Detect(f))

	res := e.Step(nil)
	require.Len(t, res.Clears, 1)
	assert.Equal(t, 360, res.Clears[0].Grains)
	assert.Equal(t, 1, e.Spans())
	assert.Zero(t, f.CountColor(field.Red))
	assert.Equal(t, 360, e.Score())
}

func TestCascadeChains(t *testing.T) {
	const k = 10
	e := newEngine(t, func(o *Options) {
		o.Width, o.Height = 4, 4
		o.SandSettle = false
		o.NoAnimation = true
	})
	f := e.Field()
	h := f.H()
	fillRow(f, h-1, field.Red)
	fillRow(f, h-2, field.Blue)
	f.Set(k, h-2, field.Sand(field.Red))
	f.Set(k, h-3, field.Sand(field.Green))
	f.Set(k, h-4, field.Sand(field.Blue))
	require.True(t, f.Stable(false))

	res := e.Step(nil)
	require.Len(t, res.Clears, 2)
	assert.Equal(t, 1, res.Clears[0].Chain)
	assert.Equal(t, 25, res.Clears[0].Points)
	assert.Equal(t, 2, res.Clears[1].Chain)
	assert.Equal(t, 48, res.Clears[1].Points)

	s := e.Snapshot()
	assert.Equal(t, 73, s.Score)
	assert.Equal(t, 2, s.Spans)
	assert.Equal(t, 2, s.Stats.MaxChain)
	assert.Zero(t, s.Chain)
	assert.Equal(t, 1, f.Count())
	assert.Equal(t, field.Sand(field.Green), f.Get(k, h-1))
}

func TestUnchangedFieldSkipsDetection(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.NoAnimation = true })
	for i := 0; i < 200 && !e.Snapshot().HasPiece; i++ {
		e.Step(nil)
	}
	require.True(t, e.Snapshot().HasPiece)
	assert.False(t, e.dirty)

	// a span written outside the engine stays until something locks
	fillRow(e.Field(), e.Field().H()-1, field.Red)
	for i := 0; i < 10; i++ {
		res := e.Step(nil)
		require.False(t, res.Locked)
		assert.Empty(t, res.Clears, "tick %d", i)
	}
	assert.Equal(t, e.Field().W(), e.Field().CountColor(field.Red))

	res := e.Step([]core.Action{core.ActionHardDrop})
	require.True(t, res.Locked)
	require.NotEmpty(t, res.Clears)
	assert.Equal(t, 1, res.Clears[0].Chain)
	assert.False(t, e.dirty)
}

func TestLockDelayRunsWithGravity(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.NoAnimation = true
		o.LockDelay = 5 * o.Tick
	})
	for i := 0; i < 200 && !e.Snapshot().HasPiece; i++ {
		e.Step(nil)
	}
	require.True(t, e.Snapshot().HasPiece)
	for !e.Controller().Grounded() {
		require.False(t, e.Step([]core.Action{core.ActionSoftDrop}).Locked)
	}

	// the landing tick started the delay, five more expire it
	var locked int
	for i := 1; i <= 6; i++ {
		if e.Step(nil).Locked {
			locked = i
			break
		}
	}
	assert.Equal(t, 5, locked)
}

func TestAnimatedSettleDelaysSpawn(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.Width, o.Height = 4, 4
		o.SandSettle = false
		o.NoAnimation = false
		o.SettlePasses = 2
	})
	o := field.BlockOrigin(0, 2)
	e.Field().WriteBlock(o.X, o.Y, field.Magenta)

	for i := 0; i < 3; i++ {
		e.Step(nil)
		assert.False(t, e.Snapshot().HasPiece, "tick %d", i+1)
		assert.False(t, e.Snapshot().Stable)
	}
	e.Step(nil)
	s := e.Snapshot()
	assert.True(t, s.Stable)
	assert.True(t, s.HasPiece)
	assert.Equal(t, field.Sand(field.Magenta), s.At(0, 23))
}

func TestOverflowEndsNormalGame(t *testing.T) {
	tower := func(f *field.Field) {
		for y := 10; y < f.H(); y++ {
			for x := 0; x < field.GrainScale; x++ {
				f.Set(x, y, field.Sand(field.Blue))
			}
		}
	}
	e := newEngine(t, func(o *Options) { o.SandSettle = false })
	tower(e.Field())
	res := e.Step(nil)
	assert.Equal(t, StateGameOver, res.State)
	assert.Equal(t, EndOverflow, e.Snapshot().Reason)

	relaxed := newEngine(t, func(o *Options) {
		o.SandSettle = false
		o.Relaxed = true
	})
	tower(relaxed.Field())
	res = relaxed.Step(nil)
	assert.Equal(t, StatePlaying, res.State)
	assert.True(t, relaxed.Snapshot().HasPiece)
}

func TestDropScoring(t *testing.T) {
	e := newEngine(t, nil)
	e.Step(nil)
	start := e.Snapshot().Piece.Y

	e.Step([]core.Action{core.ActionSoftDrop})
	s := e.Snapshot()
	assert.Equal(t, SoftDropRows, s.Stats.SoftDropRows)
	assert.Equal(t, SoftDropRows*SoftDropPoints, s.Score)
	assert.GreaterOrEqual(t, s.Piece.Y-start, SoftDropRows)

	rows := s.GhostY - s.Piece.Y
	res := e.Step([]core.Action{core.ActionHardDrop})
	s = e.Snapshot()
	assert.True(t, res.Locked)
	assert.Equal(t, 1, s.Stats.HardDrops)
	assert.Equal(t, 1, s.Stats.Pieces)
	assert.Equal(t, SoftDropRows+(rows/field.GrainScale)*HardDropPoints, s.Score)
	assert.Equal(t, 4*field.GrainScale*field.GrainScale, e.Field().Count())
}

func TestPauseFreezesRun(t *testing.T) {
	e := newEngine(t, nil)
	stepN(e, 10)

	res := e.Step([]core.Action{core.ActionPause})
	require.Equal(t, StatePaused, res.State)
	frozen := e.Snapshot()

	stepN(e, 30, core.ActionMoveLeft, core.ActionSoftDrop)
	assert.Equal(t, frozen, e.Snapshot())

	res = e.Step([]core.Action{core.ActionPause})
	assert.Equal(t, StatePlaying, res.State)
	assert.Equal(t, frozen.Tick+1, e.Snapshot().Tick)
}

func TestRestartAndQuit(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.Mode = Timed(time.Second) })
	stepN(e, 100)
	require.Equal(t, StateTimeUp, e.State())

	res := e.Step([]core.Action{core.ActionRestart, core.ActionQuit})
	assert.Equal(t, StatePlaying, res.State)
	assert.False(t, res.Quit, "intents after a restart are dropped")
	s := e.Snapshot()
	assert.Equal(t, uint64(1), s.Tick, "the restart tick runs on the new game")
	assert.Zero(t, s.Score)
	assert.Equal(t, e.Options().Tick, s.Elapsed)
	assert.NotEqual(t, int64(42), s.Seed)

	res = e.Step([]core.Action{core.ActionQuit, core.ActionMoveLeft})
	assert.True(t, res.Quit)
	assert.Equal(t, uint64(1), e.Snapshot().Tick)
}

func randomIntents(rng *rand.Rand) []core.Action {
	play := []core.Action{
		core.ActionNone, core.ActionMoveLeft, core.ActionMoveRight,
		core.ActionRotateCW, core.ActionRotateCCW, core.ActionSoftDrop,
		core.ActionHardDrop,
	}
	if rng.Intn(3) > 0 {
		return nil
	}
	return []core.Action{play[rng.Intn(len(play))]}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newEngine(t, func(o *Options) { o.Seed = 7 })
	b := newEngine(t, func(o *Options) { o.Seed = 7 })
	ia := rand.New(rand.NewSource(99))
	ib := rand.New(rand.NewSource(99))

	for i := 0; i < 3000; i++ {
		a.Step(randomIntents(ia))
		b.Step(randomIntents(ib))
		if i%250 == 0 {
			require.Equal(t, a.Snapshot(), b.Snapshot(), "tick %d", i)
		}
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for _, animate := range []bool{false, true} {
		e := newEngine(t, func(o *Options) {
			o.Seed = 3
			o.NoAnimation = !animate
		})
		rng := rand.New(rand.NewSource(5))
		const blockGrains = field.GrainScale * field.GrainScale

		for i := 0; i < 4000 && !e.State().Terminal(); i++ {
			before := e.Field().Count()
			res := e.Step(randomIntents(rng))

			cleared := 0
			for _, c := range res.Clears {
				cleared += c.Grains
			}
			want := before - cleared
			if res.Locked {
				want += 4 * blockGrains
			}
			if res.State == StatePlaying {
				require.Equal(t, want, e.Field().Count(), "grain count at tick %d", i)
			}

			s := e.Snapshot()
			if s.HasPiece {
				require.True(t, s.Fits(s.Piece), "piece overlaps sand at tick %d", i)
				require.GreaterOrEqual(t, s.GhostY, s.Piece.Y)
			}
			require.GreaterOrEqual(t, s.Level, 1)
		}
	}
}
