package sandfall

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

// Scoring constants for drops.
const (
	SoftDropRows   = field.GrainScale // grain rows per soft-drop intent
	SoftDropPoints = 1                // per grain row
	HardDropPoints = 2                // per block row
)

// EndReason explains a terminal state.
type EndReason int

const (
	EndNone EndReason = iota
	EndSpawnBlocked
	EndLockOut  // piece locked above the top row
	EndOverflow // sand settled in the spawn band
	EndTimeUp
	EndGoal
)

func (r EndReason) String() string {
	switch r {
	case EndSpawnBlocked:
		return "spawn blocked"
	case EndLockOut:
		return "locked out"
	case EndOverflow:
		return "stack overflow"
	case EndTimeUp:
		return "time up"
	case EndGoal:
		return "goal reached"
	default:
		return ""
	}
}

// ClearEvent describes one detection pass that removed spans.
type ClearEvent struct {
	Tick   uint64
	Spans  int
	Grains int
	Colors int
	Chain  int
	Points int
	At     field.Coord // first cleared grain, for score popups
}

// Stats are the per-run counters kept for the scoreboard.
type Stats struct {
	Pieces        int
	GrainsCleared int
	MaxChain      int
	SoftDropRows  int
	HardDrops     int
}

// StepResult is returned by Engine.Step.
type StepResult struct {
	State  State
	Quit   bool
	Ended  bool // a terminal state was entered during this step
	Locked bool // a piece locked during this step
	Clears []ClearEvent
}

// Engine is the single state aggregate of a run: field, falling piece, queue,
// score and mode state. The run loop owns it; components work on its parts.
type Engine struct {
	opts Options
	rng  *rand.Rand
	diff *config.DifficultyManager

	field *field.Field
	ctrl  *Controller
	queue *piece.Queue

	state  State
	reason EndReason
	tick   uint64

	score int
	level int
	spans int
	chain int
	stats Stats

	elapsed     time.Duration
	goalReached bool
	goalTime    time.Duration

	spawnTimer time.Duration
	stable     bool
	dirty      bool // the field changed since the last empty detection
	quit       bool

	events []ClearEvent
}

// NewEngine validates opts and starts a run in StatePlaying. The first piece
// spawns on the first tick once the spawn delay has elapsed.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	e := &Engine{opts: opts}
	e.reset(opts.Seed)
	return e, nil
}

func (e *Engine) reset(seed int64) {
	o := e.opts
	o.Seed = seed
	e.opts = o

	e.rng = rand.New(rand.NewSource(seed))
	e.diff = config.NewDifficultyManager(o.Tuning, o.Progression, o.InitialLevel, o.Relaxed)
	e.field = field.New(o.Width, o.Height)
	e.ctrl = NewController(e.field, o.Width, o.LockDelay, o.lockResetLimit())
	e.queue = piece.NewQueue(e.rng, o.Tuning.QueueLength, o.Tuning.RepeatBias)

	e.state = StatePlaying
	e.reason = EndNone
	e.tick = 0
	e.score = 0
	e.spans = 0
	e.level = e.diff.Level(0)
	e.chain = 0
	e.stats = Stats{}
	e.elapsed = 0
	e.goalReached = false
	e.goalTime = 0
	e.spawnTimer = 0
	e.stable = true
	e.dirty = true
	e.quit = false
	e.events = nil
}

// Options returns the options of the current run, including its seed.
func (e *Engine) Options() Options { return e.opts }

// State returns the run state.
func (e *Engine) State() State { return e.state }

// Field exposes the grain field for tests and tools.
func (e *Engine) Field() *field.Field { return e.field }

// Controller exposes the piece controller for tests and tools.
func (e *Engine) Controller() *Controller { return e.ctrl }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// Spans returns the number of cleared spans.
func (e *Engine) Spans() int { return e.spans }

// GoalReached reports whether a clear mode goal was met.
func (e *Engine) GoalReached() bool { return e.goalReached }

// Step advances the run by one fixed tick. Intents are applied in order
// first; while not playing only Pause (to resume), Restart and Quit apply.
func (e *Engine) Step(intents []core.Action) StepResult {
	e.events = e.events[:0]
	before := e.state
	locked := false

	for _, a := range intents {
		if e.apply(a, &locked) {
			break
		}
	}
	if e.quit {
		return e.result(before, locked)
	}
	if e.state != StatePlaying {
		return e.result(before, locked)
	}

	e.tick++
	e.elapsed += e.opts.Tick

	// Gravity and the lock delay advance together: Advance charges the tick
	// to the lock timer once the piece is grounded.
	if e.ctrl.Active() && e.ctrl.Advance(e.opts.Tick, e.gravityInterval()) {
		e.lock()
		locked = true
	}
	if e.state == StatePlaying {
		e.settle()
	}
	if e.state == StatePlaying {
		e.timers()
	}
	return e.result(before, locked)
}

func (e *Engine) result(before State, locked bool) StepResult {
	res := StepResult{
		State:  e.state,
		Quit:   e.quit,
		Ended:  e.state.Terminal() && !before.Terminal(),
		Locked: locked,
	}
	if len(e.events) > 0 {
		res.Clears = append([]ClearEvent(nil), e.events...)
	}
	return res
}

// apply handles one intent and reports whether the remaining intents of the
// tick must be dropped.
func (e *Engine) apply(a core.Action, locked *bool) bool {
	switch a {
	case core.ActionQuit:
		e.quit = true
		return true
	case core.ActionRestart:
		e.reset(e.rng.Int63())
		return true
	case core.ActionPause:
		switch e.state {
		case StatePlaying:
			e.state = StatePaused
		case StatePaused:
			e.state = StatePlaying
		}
		return false
	}

	if e.state != StatePlaying || !e.ctrl.Active() {
		return false
	}
	switch a {
	case core.ActionMoveLeft:
		e.ctrl.TryMove(-1)
	case core.ActionMoveRight:
		e.ctrl.TryMove(1)
	case core.ActionRotateCW:
		e.ctrl.TryRotate(piece.CW)
	case core.ActionRotateCCW:
		e.ctrl.TryRotate(piece.CCW)
	case core.ActionSoftDrop:
		n := e.ctrl.SoftDrop(SoftDropRows)
		e.score += n * SoftDropPoints
		e.stats.SoftDropRows += n
	case core.ActionHardDrop:
		n := e.ctrl.HardDrop()
		e.score += (n / field.GrainScale) * HardDropPoints
		e.stats.HardDrops++
		e.lock()
		*locked = true
	}
	return false
}

func (e *Engine) gravityInterval() time.Duration {
	return e.diff.GravityInterval(e.level)
}

// lock converts the falling piece to sand and starts the spawn delay.
func (e *Engine) lock() {
	_, err := e.ctrl.Lock()
	e.stats.Pieces++
	e.spawnTimer = 0
	e.stable = false
	e.dirty = true
	if err != nil {
		e.end(StateGameOver, EndLockOut)
	}
}

// settle runs the gravity automaton and the settle→detect cycle.
func (e *Engine) settle() {
	if !e.dirty {
		return
	}
	diagonal := e.opts.SandSettle
	if e.opts.NoAnimation {
		for {
			e.field.SettleToStable(diagonal)
			if !e.detect() {
				break
			}
		}
		e.stable = true
		return
	}

	e.stable = false
	for i := 0; i < e.opts.SettlePasses; i++ {
		if !e.field.Settle(diagonal) {
			e.stable = true
			break
		}
	}
	if e.stable && e.detect() {
		e.stable = false
	}
}

// detect clears qualifying spans on a stable field and applies scoring. It
// reports whether anything was cleared.
func (e *Engine) detect() bool {
	res := field.DetectAndClear(e.field)
	if res.Empty() {
		e.chain = 0
		e.dirty = false
		return false
	}

	e.chain = min(e.chain+1, field.MaxChain)
	pts := field.Score(res, e.level, e.chain)
	e.score += pts
	e.spans += len(res.Spans)
	e.level = e.diff.Level(e.spans)

	e.stats.GrainsCleared += res.GrainsCleared
	e.stats.MaxChain = max(e.stats.MaxChain, e.chain)
	e.events = append(e.events, ClearEvent{
		Tick:   e.tick,
		Spans:  len(res.Spans),
		Grains: res.GrainsCleared,
		Colors: res.Colors,
		Chain:  e.chain,
		Points: pts,
		At:     res.Spans[0].Grains[0],
	})

	if e.opts.Mode.Kind() == ModeClear && !e.goalReached && e.spans >= e.opts.Mode.Target() {
		e.goalReached = true
		e.goalTime = e.elapsed
		if e.opts.Mode.StopOnGoal() {
			e.end(StateWin, EndGoal)
		}
	}
	return true
}

// timers advances the mode timer and the spawn delay and spawns when due.
func (e *Engine) timers() {
	if e.opts.Mode.Kind() == ModeTimed && e.elapsed >= e.opts.Mode.Limit() {
		e.end(StateTimeUp, EndTimeUp)
		return
	}
	if e.ctrl.Active() {
		return
	}

	e.spawnTimer += e.opts.Tick
	if e.spawnTimer < e.opts.SpawnDelay || !e.stable {
		return
	}
	if !e.opts.Relaxed && e.field.HasOverflow() {
		e.end(StateGameOver, EndOverflow)
		return
	}
	if err := e.ctrl.Spawn(e.queue.Next()); err != nil {
		e.end(StateGameOver, EndSpawnBlocked)
	}
}

func (e *Engine) end(s State, r EndReason) {
	e.state = s
	e.reason = r
	e.ctrl.Clear()
}
