package app

import "time"

// maxStepsPerFrame bounds catch-up after a stall so a long pause does not
// fast-forward the orbits.
const maxStepsPerFrame = 5

// Clock converts frame time into a whole number of fixed simulation ticks.
type Clock struct {
	step        time.Duration
	accumulated time.Duration
}

// NewClock creates a clock ticking rate times per second.
func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = 60
	}
	return &Clock{step: time.Second / time.Duration(rate)}
}

// Advance adds dt and returns how many ticks are due.
func (c *Clock) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	c.accumulated += dt
	n := int(c.accumulated / c.step)
	c.accumulated -= time.Duration(n) * c.step
	if n > maxStepsPerFrame {
		n = maxStepsPerFrame
		c.accumulated = 0
	}
	return n
}

// Step returns the duration of one tick.
func (c *Clock) Step() time.Duration {
	return c.step
}
