package clock

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Wind strength drifts around a base value on a low-frequency noise curve,
// so the sway never looks mechanically periodic.
const (
	strengthBase  = 0.8
	strengthSwing = 0.2
	strengthFreq  = 0.1
)

// Clock is the single process-wide animation time source. One instance is
// advanced once per tick and read by every consumer, replacing per-object
// timers; all reads within a tick observe the same values. Passed explicitly
// to consumers, never a package global.
type Clock struct {
	elapsed  float64
	strength float64
	dirX     float64
	dirY     float64
	drift    opensimplex.Noise
}

func New(seed int64) *Clock {
	c := &Clock{
		dirX:  1,
		dirY:  0,
		drift: opensimplex.New(seed),
	}
	c.strength = c.strengthAt(0)
	return c
}

// Advance moves the clock forward by dt seconds. Monotonic: non-positive
// deltas are ignored.
func (c *Clock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.elapsed += dt
	c.strength = c.strengthAt(c.elapsed)
}

func (c *Clock) strengthAt(t float64) float64 {
	return strengthBase + strengthSwing*c.drift.Eval2(t*strengthFreq, 0)
}

// Sample returns the current wind phase and strength. Pure read.
func (c *Clock) Sample() (phase, strength float64) {
	return c.elapsed, c.strength
}

// Elapsed returns total advanced time in seconds.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Direction returns the wind direction unit vector.
func (c *Clock) Direction() (x, y float64) { return c.dirX, c.dirY }
