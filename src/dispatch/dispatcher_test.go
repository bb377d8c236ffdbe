package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/meridian-network/meridian/src/common"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	d, err := NewDispatcher(common.NewTestEntry(t, common.TestLogLevel))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return d
}

func TestSpawnRunsInOrder(t *testing.T) {
	d := newTestDispatcher(t)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		d.Spawn(func() {
			order = append(order, i)
		})
	}

	d.Run()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("bad order: %v", order)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestYieldRoundRobin(t *testing.T) {
	d := newTestDispatcher(t)

	var trace []string
	worker := func(name string) func() {
		return func() {
			for i := 0; i < 3; i++ {
				trace = append(trace, name)
				if err := d.Yield(); err != nil {
					t.Errorf("yield: %v", err)
					return
				}
			}
		}
	}

	d.Spawn(worker("a"))
	d.Spawn(worker("b"))

	d.Run()

	want := []string{"a", "b", "a", "b", "a", "b"}
	if len(trace) != len(want) {
		t.Fatalf("bad trace: %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("bad trace: %v", trace)
		}
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestInterruptWaitingContext(t *testing.T) {
	d := newTestDispatcher(t)

	event := NewEvent(d)

	var outcome error
	waiter := d.Spawn(func() {
		outcome = event.Wait()
	})

	d.Spawn(func() {
		d.Interrupt(waiter)
	})

	d.Run()

	if !errors.Is(outcome, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", outcome)
	}
	if waiter.Status() != StatusTerminated {
		t.Fatalf("bad status: %v", waiter.Status())
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestInterruptLatchedForRunningContext(t *testing.T) {
	d := newTestDispatcher(t)

	event := NewEvent(d)

	var outcome error
	var target *Context
	target = d.Spawn(func() {
		if err := d.Yield(); err != nil {
			t.Errorf("yield: %v", err)
			return
		}
		// the interrupt arrived while this context was in the run
		// queue; it must surface at the next suspension
		outcome = event.Wait()
	})

	d.Spawn(func() {
		d.Interrupt(target)
	})

	d.Run()

	if !errors.Is(outcome, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", outcome)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestStopThenCloseInterruptsWaiters(t *testing.T) {
	d := newTestDispatcher(t)

	event := NewEvent(d)

	var outcome error
	terminated := false
	d.Spawn(func() {
		outcome = event.Wait()
		terminated = true
	})

	d.Spawn(func() {
		d.Stop()
	})

	d.Run()

	if terminated {
		t.Fatal("waiter should still be parked when Run returns")
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}

	if !errors.Is(outcome, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", outcome)
	}
	if !terminated {
		t.Fatal("waiter not drained to termination")
	}
	if d.Spawned() != d.Terminated() {
		t.Fatalf("leaked contexts: spawned=%d terminated=%d", d.Spawned(), d.Terminated())
	}
}

func TestPostInterruptFromAnotherThread(t *testing.T) {
	d := newTestDispatcher(t)

	event := NewEvent(d)

	var outcome error
	waiter := d.Spawn(func() {
		outcome = event.Wait()
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		d.Post(func() {
			d.Interrupt(waiter)
		})
	}()

	d.Run()

	if !errors.Is(outcome, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", outcome)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestCloseWithoutRun(t *testing.T) {
	d := newTestDispatcher(t)

	ran := false
	d.Spawn(func() {
		ran = true
	})

	// teardown alone must drain the run queue to termination
	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !ran {
		t.Fatal("spawned context never ran")
	}
}

func TestSuspendDuringTeardownIsCancelled(t *testing.T) {
	d := newTestDispatcher(t)

	event := NewEvent(d)

	var first, second error
	d.Spawn(func() {
		first = event.Wait()
		// any further suspension during teardown resolves immediately
		second = event.Wait()
	})

	d.Spawn(func() {
		d.Stop()
	})

	d.Run()

	if err := d.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !errors.Is(first, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", first)
	}
	if !errors.Is(second, ErrOperationCancelled) {
		t.Fatalf("bad outcome: %v", second)
	}
}
