//go:build !linux

package dispatch

// chanNotifier carries cross-thread wakeups only. Descriptor
// registration is unavailable, so the socket layer surfaces
// ErrUnsupportedPlatform here; events, yields, interrupts and posted
// work still behave normally.
type chanNotifier struct {
	wake chan struct{}
}

func newNotifier() (notifier, error) {
	return &chanNotifier{wake: make(chan struct{}, 1)}, nil
}

func (n *chanNotifier) registerRead(fd int, key uint64) error {
	return ErrUnsupportedPlatform
}

func (n *chanNotifier) registerWrite(fd int, key uint64) error {
	return ErrUnsupportedPlatform
}

func (n *chanNotifier) deregisterRead(fd int) error {
	return nil
}

func (n *chanNotifier) deregisterWrite(fd int) error {
	return nil
}

func (n *chanNotifier) wait(block bool) ([]uint64, error) {
	if block {
		<-n.wake
		return nil, nil
	}
	select {
	case <-n.wake:
	default:
	}
	return nil, nil
}

func (n *chanNotifier) notify() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *chanNotifier) close() error {
	return nil
}
