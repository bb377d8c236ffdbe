package dispatch

// Status ...
type Status int32

const (
	// StatusReady ...
	StatusReady Status = iota
	// StatusRunning ...
	StatusRunning
	// StatusWaiting ...
	StatusWaiting
	// StatusTerminated ...
	StatusTerminated
)

// String ...
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusWaiting:
		return "waiting"
	case StatusTerminated:
		return "terminated"
	}
	return "unknown"
}

// Context is one logical unit of cooperative execution, multiplexed
// onto the dispatcher's OS thread. The dispatcher that spawned it owns
// it; everything else holds it purely as a handle for Interrupt.
type Context struct {
	d  *Dispatcher
	id uint64

	status Status

	// resume carries the outcome of the last suspension from the
	// dispatcher to the context goroutine. It is unbuffered: every
	// send is a direct transfer of control.
	resume chan error

	// outcome is staged by whoever moves the context to the run queue
	// and is delivered at the next resume.
	outcome error

	// wakeKey is the notifier completion key the context is parked
	// on, or zero.
	wakeKey uint64

	// event is the Event whose queue holds the context, or nil.
	event *Event

	// waitSeq increments on every suspension; event queues record it
	// so a wake-up can tell a live wait from a stale queue entry.
	waitSeq uint64

	interruptPending bool
}

// ID ...
func (c *Context) ID() uint64 {
	return c.id
}

// Status reports the context's scheduling state. Dispatcher thread
// only.
func (c *Context) Status() Status {
	return c.status
}
