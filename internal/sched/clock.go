// internal/sched/clock.go

package sched

import "fmt"

// Clock is the simulation's logical time in ticks. It only moves forward,
// and only when the engine starts a new batch of events.
type Clock struct {
	now int
}

// Now returns the current tick.
func (c *Clock) Now() int { return c.now }

// AdvanceTo moves the clock to t. Going backwards means an event was
// scheduled in the past.
func (c *Clock) AdvanceTo(t int) error {
	if t < c.now {
		return fmt.Errorf("%w: clock moving backwards from %d to %d", ErrInvariant, c.now, t)
	}
	c.now = t
	return nil
}
