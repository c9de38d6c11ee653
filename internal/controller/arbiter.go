package controller

import "math"

type teleportState struct {
	pressed         bool
	lastChangeFrame int64
}

// Arbiter lets at most one hand teleport at a time. Button changes are
// resolved one tick later so presses from both hands in the same tick are
// considered together.
type Arbiter struct {
	hands  [2]*Hand
	states [2]teleportState

	pending      bool
	resolveFrame int64
}

// NewArbiter takes the hands in priority order: on equal change frames the
// first hand wins.
func NewArbiter(first, second *Hand) *Arbiter {
	return &Arbiter{hands: [2]*Hand{first, second}}
}

func (a *Arbiter) index(side Side) int {
	for i, h := range a.hands {
		if h.Side() == side {
			return i
		}
	}
	return -1
}

// OnTeleportButton records a button change made during frame.
func (a *Arbiter) OnTeleportButton(side Side, pressed bool, frame int64) {
	i := a.index(side)
	if i < 0 {
		return
	}
	a.states[i] = teleportState{pressed: pressed, lastChangeFrame: frame}
	a.pending = true
	a.resolveFrame = frame + 1
}

// Reset forgets recorded button states and any scheduled resolution.
func (a *Arbiter) Reset() {
	a.states = [2]teleportState{}
	a.pending = false
	a.resolveFrame = 0
}

// Pending reports whether a resolution is scheduled.
func (a *Arbiter) Pending() bool {
	return a.pending
}

// Tick resolves a scheduled change once frame has moved past it.
// It reports whether a resolution happened.
func (a *Arbiter) Tick(frame int64) bool {
	if !a.pending || frame < a.resolveFrame {
		return false
	}
	a.pending = false
	a.resolve()
	return true
}

func (a *Arbiter) resolve() {
	winner := -1
	earliest := int64(math.MaxInt64)
	for i, st := range a.states {
		if st.pressed && st.lastChangeFrame < earliest && !a.hands[i].Grabbing() {
			earliest = st.lastChangeFrame
			winner = i
		}
	}

	for i, h := range a.hands {
		h.BlockTeleport(winner != -1 && i != winner)
	}
}

// Holder returns the hand currently allowed to teleport, if exactly one is.
func (a *Arbiter) Holder() (Side, bool) {
	var holder Side
	count := 0
	for _, h := range a.hands {
		if h.Mode() == Game && !h.Blocked() {
			holder = h.Side()
			count++
		}
	}
	return holder, count == 1
}
