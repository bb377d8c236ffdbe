package dispatch

// EventLock turns an Event into a non-reentrant mutex: the event being
// set means "unlocked". Acquisition waits for the event and clears it;
// Release sets it again. Callers must defer Release immediately after
// acquiring so the lock is dropped on every exit path.
//
// The acquire loop is race-free only because at most one context runs
// per dispatcher at a time. The guarded event must never be shared
// across dispatchers or OS threads.
type EventLock struct {
	event *Event
}

// NewEventLock blocks until the event is set, then acquires it. It
// fails with ErrOperationCancelled if the calling context is
// interrupted while contending.
func NewEventLock(e *Event) (*EventLock, error) {
	for !e.Get() {
		if err := e.Wait(); err != nil {
			return nil, err
		}
	}
	e.Clear()
	return &EventLock{event: e}, nil
}

// Release sets the guarded event, letting the next contender in. Calls
// after the first are no-ops.
func (l *EventLock) Release() {
	if l.event == nil {
		return
	}
	l.event.Set()
	l.event = nil
}
