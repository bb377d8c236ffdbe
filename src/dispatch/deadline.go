package dispatch

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Deadline interrupts a context if it is still suspended when the
// timeout elapses. Time-bounded operations are expressed this way
// rather than as a feature of Event or the dispatcher: the suspended
// call observes ErrOperationCancelled like any other interrupt.
type Deadline struct {
	timer *clock.Timer
}

// NewDeadline arms a timer that interrupts c after timeout. The
// interrupt is routed through Post, so it does not matter which thread
// the clock fires on.
func NewDeadline(clk clock.Clock, d *Dispatcher, c *Context, timeout time.Duration) *Deadline {
	timer := clk.AfterFunc(timeout, func() {
		d.Post(func() {
			d.Interrupt(c)
		})
	})
	return &Deadline{timer: timer}
}

// Stop disarms the deadline. Stopping after the timer fired is
// harmless: interrupting a terminated context does nothing.
func (dl *Deadline) Stop() {
	dl.timer.Stop()
}
