package core

import "time"

// TickGate decides when the simulation may advance, independently of how
// often frames are displayed. At most one step is granted per interval no
// matter how many frames arrive within it.
type TickGate struct {
	interval time.Duration
	last     time.Time
	primed   bool

	prevLast   time.Time
	prevPrimed bool
}

// NewTickGate constructs a gate that fires at most once per interval. A zero
// interval fires on every frame.
func NewTickGate(interval time.Duration) *TickGate {
	g := &TickGate{}
	g.SetInterval(interval)
	return g
}

// SetInterval changes the tick interval. It is safe to call from the main loop.
func (g *TickGate) SetInterval(interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	g.interval = interval
}

// Interval returns the configured tick interval.
func (g *TickGate) Interval() time.Duration { return g.interval }

// Elapsed returns the time since the last granted step.
func (g *TickGate) Elapsed(now time.Time) time.Duration {
	if !g.primed {
		return g.interval
	}
	return now.Sub(g.last)
}

// Ready reports whether a step is due at now. When it returns true the
// elapsed time is reset. The first call always fires.
func (g *TickGate) Ready(now time.Time) bool {
	if g.primed && now.Sub(g.last) < g.interval {
		return false
	}
	g.prevLast, g.prevPrimed = g.last, g.primed
	g.last = now
	g.primed = true
	return true
}

// Undo revokes the most recent grant, for a step that could not run. The
// next Ready call is judged against the grant before it.
func (g *TickGate) Undo() {
	g.last, g.primed = g.prevLast, g.prevPrimed
}

// Reset forgets the last step so the next Ready call fires.
func (g *TickGate) Reset() {
	g.primed = false
	g.last = time.Time{}
}
