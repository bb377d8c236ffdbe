package common

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewThreadSafeQueue[int]()

	for i := 1; i <= 5; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	if q.Size() != 5 {
		t.Fatalf("bad size: %d", q.Size())
	}

	for i := 1; i <= 5; i++ {
		item, ok := q.Pop()
		if !ok || item != i {
			t.Fatalf("got %d %v, want %d", item, ok, i)
		}
	}
}

func TestQueueBlockingPop(t *testing.T) {
	q := NewThreadSafeQueue[string]()

	var wg sync.WaitGroup
	wg.Add(1)
	var item string
	var ok bool
	go func() {
		defer wg.Done()
		item, ok = q.Pop()
	}()

	q.Push("work")
	wg.Wait()

	if !ok || item != "work" {
		t.Fatalf("got %q %v", item, ok)
	}
}

func TestQueueStop(t *testing.T) {
	q := NewThreadSafeQueue[int]()

	q.Push(1)
	q.Push(2)
	q.Stop()

	if q.Push(3) {
		t.Fatal("push after stop succeeded")
	}

	// queued items drain before exhaustion is reported
	for i := 1; i <= 2; i++ {
		item, ok := q.Pop()
		if !ok || item != i {
			t.Fatalf("got %d %v, want %d", item, ok, i)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("pop after drain succeeded")
	}
}

func TestQueueStopUnblocksPop(t *testing.T) {
	q := NewThreadSafeQueue[int]()

	var wg sync.WaitGroup
	wg.Add(1)
	var ok bool
	go func() {
		defer wg.Done()
		_, ok = q.Pop()
	}()

	q.Stop()
	wg.Wait()

	if ok {
		t.Fatal("pop reported an item after stop")
	}
}
