package dispatch

// notifier is the OS completion mechanism the dispatcher blocks on.
// registerRead/registerWrite arm a one-shot interest in a descriptor;
// wait hands the key back once the descriptor is ready. notify is a
// thread-safe wakeup used by Post. Implementations live in
// notifier_linux.go and notifier_other.go.
type notifier interface {
	registerRead(fd int, key uint64) error
	registerWrite(fd int, key uint64) error
	deregisterRead(fd int) error
	deregisterWrite(fd int) error

	// wait returns the keys of completed registrations. With block set
	// it parks until at least one completion or wakeup arrives; it may
	// return no keys after a bare wakeup.
	wait(block bool) ([]uint64, error)

	// notify unblocks a concurrent wait. Safe from any thread.
	notify()

	close() error
}
