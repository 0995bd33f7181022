package sandfall

import (
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
)

// Key repeat defaults.
const (
	DefaultDAS          = 80 * time.Millisecond // delay before auto-repeat
	DefaultARR          = 38 * time.Millisecond // auto-repeat interval
	DefaultHoldWindow   = 600 * time.Millisecond
	DefaultReleaseAfter = 60 * time.Millisecond
)

// repeatable reports whether holding the key repeats the action.
func repeatable(a core.Action) bool {
	switch a {
	case core.ActionMoveLeft, core.ActionMoveRight, core.ActionSoftDrop,
		core.ActionRotateCW, core.ActionRotateCCW:
		return true
	}
	return false
}

type keyState struct {
	held      bool          // a second press proved the key is held down
	elapsed   time.Duration // since the key became held
	repeating bool
	repeatAcc time.Duration
	silence   time.Duration // since the last press event
}

// KeyRepeat turns key presses into a per-tick action stream with delayed
// auto-repeat. It runs on elapsed-time counters advanced by Tick.
//
// Terminals report presses and OS auto-repeat but usually no releases. A key
// counts as held once a second press arrives within ReleaseAfter of the
// previous one, at auto-repeat spacing; a slower press is another tap. A held
// key is released after ReleaseAfter without presses and an unheld one is
// forgotten after HoldWindow. Sources that do report releases call Release
// directly.
type KeyRepeat struct {
	DAS          time.Duration
	ARR          time.Duration
	HoldWindow   time.Duration
	ReleaseAfter time.Duration

	keys    map[core.Action]*keyState
	order   []core.Action // stable iteration order for determinism
	pending []core.Action
}

// NewKeyRepeat creates a KeyRepeat with the default timings.
func NewKeyRepeat() *KeyRepeat {
	return &KeyRepeat{
		DAS:          DefaultDAS,
		ARR:          DefaultARR,
		HoldWindow:   DefaultHoldWindow,
		ReleaseAfter: DefaultReleaseAfter,
		keys:         make(map[core.Action]*keyState),
	}
}

// Press records a key press. The first press of a key fires immediately.
func (k *KeyRepeat) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !repeatable(a) {
		k.pending = append(k.pending, a)
		return
	}
	st, ok := k.keys[a]
	if !ok {
		k.keys[a] = &keyState{}
		k.order = append(k.order, a)
		k.pending = append(k.pending, a)
		return
	}
	if !st.held {
		if st.silence > k.ReleaseAfter {
			// slower than auto-repeat: a fresh tap
			st.silence = 0
			k.pending = append(k.pending, a)
			return
		}
		st.held = true
		st.elapsed = 0
	}
	st.silence = 0
}

// Release forgets a key.
func (k *KeyRepeat) Release(a core.Action) {
	if _, ok := k.keys[a]; !ok {
		return
	}
	delete(k.keys, a)
	for i, x := range k.order {
		if x == a {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
}

// Held reports whether a key is currently treated as held down.
func (k *KeyRepeat) Held(a core.Action) bool {
	st, ok := k.keys[a]
	return ok && st.held
}

// Tick advances all counters by dt and returns the actions due this tick in
// press order.
func (k *KeyRepeat) Tick(dt time.Duration) []core.Action {
	var released []core.Action
	for _, a := range k.order {
		st := k.keys[a]
		st.silence += dt
		if !st.held {
			if st.silence > k.HoldWindow {
				released = append(released, a)
			}
			continue
		}
		if st.silence > k.ReleaseAfter {
			released = append(released, a)
			continue
		}

		st.elapsed += dt
		if !st.repeating {
			if st.elapsed >= k.DAS {
				st.repeating = true
				st.repeatAcc = 0
				k.pending = append(k.pending, a)
			}
			continue
		}
		st.repeatAcc += dt
		for st.repeatAcc >= k.ARR {
			st.repeatAcc -= k.ARR
			k.pending = append(k.pending, a)
		}
	}
	for _, a := range released {
		k.Release(a)
	}

	out := k.pending
	k.pending = nil
	return out
}

// Reset forgets every key and pending action.
func (k *KeyRepeat) Reset() {
	clear(k.keys)
	k.order = k.order[:0]
	k.pending = nil
}
