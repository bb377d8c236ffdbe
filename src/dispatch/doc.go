// Package dispatch implements cooperative scheduling over a single OS
// thread.
//
// A Dispatcher multiplexes contexts, spawned with Spawn, over the
// thread that calls Run. Exactly one context executes at a time and
// control only changes hands at suspension points: Yield, Event.Wait,
// WaitRead/WaitWrite and the socket operations built on them. Shared
// state touched only from contexts therefore needs no locking.
//
// When every context is suspended, the dispatcher parks in the OS
// completion notifier (epoll on Linux) until a descriptor becomes
// ready or another thread posts work with Post. Post is the only entry
// point other threads may use; Interrupt, events and all suspending
// calls belong to the dispatcher thread.
//
// Any suspended operation can be abandoned with Interrupt, which makes
// it return ErrOperationCancelled. Close tears the dispatcher down by
// interrupting everything until no contexts remain.
package dispatch
