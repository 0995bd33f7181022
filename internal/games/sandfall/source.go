package sandfall

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
)

// IntentSource produces the actions applied at the start of each tick. A
// human keyboard and the autoplay bot both implement it; the engine never
// tells them apart.
type IntentSource interface {
	Intents(s Snapshot) []core.Action
}

// HumanSource queues key presses from the platform and releases them through
// key repeat, one tick at a time.
type HumanSource struct {
	tick   time.Duration
	repeat *KeyRepeat
}

// NewHumanSource creates a source for a loop that ticks every tick.
func NewHumanSource(tick time.Duration) *HumanSource {
	return &HumanSource{
		tick:   tick,
		repeat: NewKeyRepeat(),
	}
}

// Press queues a key press.
func (h *HumanSource) Press(a core.Action) {
	h.repeat.Press(a)
}

// Release ends a held key for platforms that report releases.
func (h *HumanSource) Release(a core.Action) {
	h.repeat.Release(a)
}

// Intents returns the actions due this tick.
func (h *HumanSource) Intents(Snapshot) []core.Action {
	return h.repeat.Tick(h.tick)
}

// Reset drops held keys, e.g. after a restart.
func (h *HumanSource) Reset() {
	h.repeat.Reset()
}

// Script replays a fixed list of per-tick intents. Tests and demos use it.
type Script struct {
	Frames [][]core.Action
	pos    int
}

// Intents returns the next frame, or nothing once the script is done.
func (s *Script) Intents(Snapshot) []core.Action {
	if s.pos >= len(s.Frames) {
		return nil
	}
	f := s.Frames[s.pos]
	s.pos++
	return f
}
