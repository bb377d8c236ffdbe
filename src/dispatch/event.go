package dispatch

import "github.com/eapache/queue"

// Event is a boolean signal with a FIFO queue of contexts waiting for
// it to become true. It belongs to a single dispatcher and must only
// be used from that dispatcher's thread; hand-off to other threads
// goes through a ThreadSafeQueue or Post, never through an Event.
type Event struct {
	d        *Dispatcher
	signaled bool
	waiters  *queue.Queue
}

// eventWaiter snapshots the wait the context was parked in, so Set can
// tell a live wait from an entry whose context was interrupted away.
type eventWaiter struct {
	c   *Context
	seq uint64
}

// NewEvent creates an unsignalled event bound to d.
func NewEvent(d *Dispatcher) *Event {
	return &Event{
		d:       d,
		waiters: queue.New(),
	}
}

// Get returns the current state without suspending.
func (e *Event) Get() bool {
	return e.signaled
}

// Set marks the event and resumes every waiting context, in the order
// their waits arrived.
func (e *Event) Set() {
	e.signaled = true
	for e.waiters.Length() > 0 {
		w := e.waiters.Remove().(eventWaiter)
		if w.c.status != StatusWaiting || w.c.event != e || w.c.waitSeq != w.seq {
			continue
		}
		w.c.event = nil
		w.c.outcome = nil
		w.c.status = StatusReady
		e.d.ready.Add(w.c)
	}
}

// Clear unmarks the event. Contexts already released by a prior Set
// stay released.
func (e *Event) Clear() {
	e.signaled = false
}

// Wait returns immediately if the event is set, otherwise suspends the
// calling context until the next Set. It fails with
// ErrOperationCancelled if the context is interrupted first.
func (e *Event) Wait() error {
	if e.signaled {
		return nil
	}
	c, err := e.d.beginWait()
	if err != nil {
		return err
	}
	c.status = StatusWaiting
	c.event = e
	e.waiters.Add(eventWaiter{c: c, seq: c.waitSeq})
	return e.d.park(c)
}
