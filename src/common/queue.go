package common

import (
	"sync"

	"github.com/eapache/queue"
)

// ThreadSafeQueue ferries work items between OS threads with FIFO
// delivery. It is the sanctioned hand-off between a dispatcher-driven
// producer and consumers on other threads; dispatcher events are not
// safe across that boundary.
type ThreadSafeQueue[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	items    *queue.Queue
	stopped  bool
}

// NewThreadSafeQueue ...
func NewThreadSafeQueue[T any]() *ThreadSafeQueue[T] {
	q := &ThreadSafeQueue[T]{items: queue.New()}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends an item. It reports false once the queue is stopped.
func (q *ThreadSafeQueue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return false
	}
	q.items.Add(item)
	q.nonEmpty.Signal()
	return true
}

// Pop blocks until an item is available or the queue is stopped and
// drained, in which case it reports false.
func (q *ThreadSafeQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 && !q.stopped {
		q.nonEmpty.Wait()
	}
	var zero T
	if q.items.Length() == 0 {
		return zero, false
	}
	return q.items.Remove().(T), true
}

// Size ...
func (q *ThreadSafeQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Stop makes further pushes fail and unblocks every Pop. Items already
// queued can still be drained.
func (q *ThreadSafeQueue[T]) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	q.nonEmpty.Broadcast()
}
