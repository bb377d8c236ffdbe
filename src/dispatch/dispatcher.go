package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"
)

// Dispatcher multiplexes cooperative contexts over one OS thread,
// driving them from completion notifications. Exactly one context runs
// at a time: control moves between the scheduler loop and a context
// goroutine over unbuffered channels, so every hand-off doubles as a
// memory barrier and none of the dispatcher state needs locks.
//
// Every method except Post, Stop, Spawned and Terminated must be
// called on the dispatcher thread: before Run, after Run, or from
// inside a running context. Cross-thread work goes through Post.
type Dispatcher struct {
	logger *logrus.Entry

	notif notifier

	// ready is the FIFO run queue of *Context.
	ready *queue.Queue

	current *Context

	// yielded is signalled by a context goroutine when it hands
	// control back to the scheduler loop.
	yielded chan struct{}

	// waiters maps notifier completion keys to suspended contexts.
	waiters map[uint64]*Context

	// contexts holds every live context by id, so teardown can find
	// the ones still parked.
	contexts map[uint64]*Context

	// inbox holds functions posted from other threads; they run on the
	// dispatcher thread between contexts.
	inboxMu sync.Mutex
	inbox   []func()

	nextID  uint64
	nextKey uint64
	live    int

	stopping bool
	closing  bool
	closed   bool

	spawned    atomic.Uint64
	terminated atomic.Uint64
}

// NewDispatcher ...
func NewDispatcher(logger *logrus.Entry) (*Dispatcher, error) {
	notif, err := newNotifier()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		logger:   logger,
		notif:    notif,
		ready:    queue.New(),
		yielded:  make(chan struct{}),
		waiters:  make(map[uint64]*Context),
		contexts: make(map[uint64]*Context),
	}, nil
}

// Spawn creates a context in Ready state and appends it to the run
// queue. The entry function starts executing only once the scheduler
// picks the context up.
func (d *Dispatcher) Spawn(fn func()) *Context {
	d.nextID++
	c := &Context{
		d:      d,
		id:     d.nextID,
		status: StatusReady,
		resume: make(chan error),
	}
	d.contexts[c.id] = c
	d.live++
	d.spawned.Add(1)
	go func() {
		<-c.resume
		fn()
		d.finish(c)
	}()
	d.ready.Add(c)
	return c
}

// finish runs on the context goroutine after its entry returns. The
// scheduler is parked in runReady at that point, so touching
// dispatcher state here is still single-runner.
func (d *Dispatcher) finish(c *Context) {
	c.status = StatusTerminated
	delete(d.contexts, c.id)
	d.live--
	d.terminated.Add(1)
	d.yielded <- struct{}{}
}

// Run executes ready contexts and blocks on the completion notifier
// when none are ready. It returns once no live contexts remain or Stop
// is requested; waiting contexts are left parked for Close to resolve.
func (d *Dispatcher) Run() {
	for {
		d.drainInbox()
		d.runReady()
		if d.stopping || d.live == 0 {
			return
		}
		keys, err := d.notif.wait(true)
		if err != nil {
			d.logger.WithError(err).Error("Notifier wait failed")
			return
		}
		for _, key := range keys {
			d.complete(key, nil)
		}
	}
}

// Stop makes Run return at its next turn. Safe from any thread; from
// inside a context it takes effect at the next suspension point.
func (d *Dispatcher) Stop() {
	d.Post(func() { d.stopping = true })
}

// Post schedules fn to run on the dispatcher thread between contexts.
// It is the only sanctioned way into the dispatcher from another
// thread.
func (d *Dispatcher) Post(fn func()) {
	d.inboxMu.Lock()
	d.inbox = append(d.inbox, fn)
	d.inboxMu.Unlock()
	d.notif.notify()
}

// Yield moves the running context to the back of the run queue and
// resumes the next ready one. Completions are pumped first so I/O
// waiters queued behind a busy context still make progress.
func (d *Dispatcher) Yield() error {
	c := d.currentContext()
	if c.interruptPending || d.closing {
		c.interruptPending = false
		return ErrOperationCancelled
	}
	if keys, err := d.notif.wait(false); err == nil {
		for _, key := range keys {
			d.complete(key, nil)
		}
	}
	c.status = StatusReady
	d.ready.Add(c)
	return d.park(c)
}

// Interrupt forces a waiting context back to the run queue carrying a
// cancellation outcome. If the context is not currently waiting, the
// cancellation is latched and delivered at its next suspension.
// Dispatcher thread only; use Post from other threads.
func (d *Dispatcher) Interrupt(c *Context) {
	switch c.status {
	case StatusWaiting:
		if c.wakeKey != 0 {
			delete(d.waiters, c.wakeKey)
			c.wakeKey = 0
		}
		c.event = nil
		c.outcome = ErrOperationCancelled
		c.status = StatusReady
		d.ready.Add(c)
	case StatusTerminated:
	default:
		c.interruptPending = true
	}
}

// WaitRead suspends the running context until fd is readable.
func (d *Dispatcher) WaitRead(fd int) error {
	return d.waitIO(fd, false)
}

// WaitWrite suspends the running context until fd is writable.
func (d *Dispatcher) WaitWrite(fd int) error {
	return d.waitIO(fd, true)
}

// Close interrupts every remaining context, drains the run queue until
// all of them terminate, then releases the notifier. Call it on the
// dispatcher thread once Run has returned.
func (d *Dispatcher) Close() error {
	if d.closed {
		return nil
	}
	d.closing = true
	for d.live > 0 {
		for _, c := range d.contexts {
			if c.status == StatusWaiting {
				d.Interrupt(c)
			}
		}
		if d.ready.Length() == 0 {
			d.logger.WithField("live", d.live).Error("Contexts leaked through teardown")
			break
		}
		d.runReady()
		d.drainInbox()
	}
	d.closed = true
	return d.notif.close()
}

// Spawned reports how many contexts were created over the dispatcher's
// lifetime. Safe from any thread.
func (d *Dispatcher) Spawned() uint64 {
	return d.spawned.Load()
}

// Terminated reports how many contexts ran to completion. Safe from
// any thread.
func (d *Dispatcher) Terminated() uint64 {
	return d.terminated.Load()
}

// runReady pops and runs ready contexts until the queue empties.
func (d *Dispatcher) runReady() {
	for d.ready.Length() > 0 {
		c := d.ready.Remove().(*Context)
		if c.status != StatusReady {
			// stale entry; the context was resumed through another path
			continue
		}
		c.status = StatusRunning
		d.current = c
		outcome := c.outcome
		c.outcome = nil
		c.resume <- outcome
		<-d.yielded
		d.current = nil
		d.drainInbox()
	}
}

// park hands control back to the scheduler loop and blocks until the
// context is resumed. Context goroutine only.
func (d *Dispatcher) park(c *Context) error {
	d.yielded <- struct{}{}
	return <-c.resume
}

// beginWait validates a suspension attempt by the running context and
// delivers any latched interrupt instead of parking.
func (d *Dispatcher) beginWait() (*Context, error) {
	c := d.currentContext()
	if c.interruptPending || d.closing {
		c.interruptPending = false
		return nil, ErrOperationCancelled
	}
	c.waitSeq++
	return c, nil
}

func (d *Dispatcher) currentContext() *Context {
	c := d.current
	if c == nil {
		panic("dispatch: suspending call outside a running context")
	}
	return c
}

// complete resolves a notifier key to its parked context and stages it
// ready. Unknown keys belong to waits that were interrupted before the
// completion arrived and are dropped.
func (d *Dispatcher) complete(key uint64, outcome error) {
	c, ok := d.waiters[key]
	if !ok {
		return
	}
	delete(d.waiters, key)
	c.wakeKey = 0
	c.outcome = outcome
	c.status = StatusReady
	d.ready.Add(c)
}

func (d *Dispatcher) waitIO(fd int, write bool) error {
	c, err := d.beginWait()
	if err != nil {
		return err
	}
	d.nextKey++
	key := d.nextKey
	if write {
		err = d.notif.registerWrite(fd, key)
	} else {
		err = d.notif.registerRead(fd, key)
	}
	if err != nil {
		if err == ErrUnsupportedPlatform {
			return err
		}
		return fmt.Errorf("%w: %v", ErrResourceExhausted, err)
	}
	d.waiters[key] = c
	c.wakeKey = key
	c.status = StatusWaiting
	outcome := d.park(c)
	if outcome != nil {
		// cancelled while parked; the descriptor interest is still
		// armed and has to be dropped here
		if write {
			d.notif.deregisterWrite(fd)
		} else {
			d.notif.deregisterRead(fd)
		}
	}
	return outcome
}

func (d *Dispatcher) drainInbox() {
	d.inboxMu.Lock()
	fns := d.inbox
	d.inbox = nil
	d.inboxMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
