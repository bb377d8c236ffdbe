package dispatch

import "errors"

var (
	// ErrOperationCancelled is delivered to a suspending call whose
	// context was interrupted. It is a normal release trigger, not a
	// failure of the scheduler.
	ErrOperationCancelled = errors.New("operation cancelled")

	// ErrResourceExhausted wraps an OS registration failure. It is
	// reported to the call that needed the registration; the
	// dispatcher itself keeps running.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrUnsupportedPlatform is returned where the platform notifier
	// cannot watch file descriptors.
	ErrUnsupportedPlatform = errors.New("not supported on this platform")
)
