//go:build linux

package dispatch

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// epollNotifier multiplexes descriptor readiness and cross-thread
// wakeups over one epoll instance. Wakeups arrive through an eventfd
// registered alongside the watched sockets, so a single epoll_wait is
// the only place the dispatcher ever blocks.
type epollNotifier struct {
	epfd   int
	wakefd int
	fds    map[int]*fdInterest
	events []unix.EpollEvent
}

// fdInterest tracks the at-most-one read and at-most-one write wait
// armed on a descriptor.
type fdInterest struct {
	readKey  uint64
	writeKey uint64
}

func newNotifier() (notifier, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(wakefd)
		unix.Close(epfd)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}
	return &epollNotifier{
		epfd:   epfd,
		wakefd: wakefd,
		fds:    make(map[int]*fdInterest),
		events: make([]unix.EpollEvent, 64),
	}, nil
}

func (n *epollNotifier) registerRead(fd int, key uint64) error {
	return n.register(fd, key, false)
}

func (n *epollNotifier) registerWrite(fd int, key uint64) error {
	return n.register(fd, key, true)
}

func (n *epollNotifier) register(fd int, key uint64, write bool) error {
	in, existing := n.fds[fd]
	if !existing {
		in = &fdInterest{}
	}
	if write {
		if in.writeKey != 0 {
			panic("dispatch: concurrent write waits on one descriptor")
		}
		in.writeKey = key
	} else {
		if in.readKey != 0 {
			panic("dispatch: concurrent read waits on one descriptor")
		}
		in.readKey = key
	}
	if err := n.arm(fd, in, existing); err != nil {
		if write {
			in.writeKey = 0
		} else {
			in.readKey = 0
		}
		return err
	}
	n.fds[fd] = in
	return nil
}

func (n *epollNotifier) deregisterRead(fd int) error {
	return n.deregister(fd, false)
}

func (n *epollNotifier) deregisterWrite(fd int) error {
	return n.deregister(fd, true)
}

func (n *epollNotifier) deregister(fd int, write bool) error {
	in, ok := n.fds[fd]
	if !ok {
		return nil
	}
	if write {
		if in.writeKey == 0 {
			return nil
		}
		in.writeKey = 0
	} else {
		if in.readKey == 0 {
			return nil
		}
		in.readKey = 0
	}
	if in.readKey == 0 && in.writeKey == 0 {
		delete(n.fds, fd)
		return unix.EpollCtl(n.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	}
	return n.arm(fd, in, true)
}

// arm applies the descriptor's current interest set to epoll.
func (n *epollNotifier) arm(fd int, in *fdInterest, existing bool) error {
	var events uint32
	if in.readKey != 0 {
		events |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if in.writeKey != 0 {
		events |= unix.EPOLLOUT
	}
	op := unix.EPOLL_CTL_ADD
	if existing {
		op = unix.EPOLL_CTL_MOD
	}
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	return unix.EpollCtl(n.epfd, op, fd, &ev)
}

func (n *epollNotifier) wait(block bool) ([]uint64, error) {
	timeout := 0
	if block {
		timeout = -1
	}
	for {
		nev, err := unix.EpollWait(n.epfd, n.events, timeout)
		if err != nil {
			if err == unix.EINTR {
				if block {
					continue
				}
				return nil, nil
			}
			return nil, fmt.Errorf("epoll_wait: %w", err)
		}
		var keys []uint64
		for i := 0; i < nev; i++ {
			ev := n.events[i]
			fd := int(ev.Fd)
			if fd == n.wakefd {
				var buf [8]byte
				unix.Read(n.wakefd, buf[:])
				continue
			}
			in, ok := n.fds[fd]
			if !ok {
				continue
			}
			if in.readKey != 0 && ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP|unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				keys = append(keys, in.readKey)
				in.readKey = 0
			}
			if in.writeKey != 0 && ev.Events&(unix.EPOLLOUT|unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				keys = append(keys, in.writeKey)
				in.writeKey = 0
			}
			if in.readKey == 0 && in.writeKey == 0 {
				delete(n.fds, fd)
				unix.EpollCtl(n.epfd, unix.EPOLL_CTL_DEL, fd, nil)
			} else {
				n.arm(fd, in, true)
			}
		}
		return keys, nil
	}
}

func (n *epollNotifier) notify() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	// EAGAIN means a wakeup is already pending, which is just as good
	unix.Write(n.wakefd, buf[:])
}

func (n *epollNotifier) close() error {
	if err := unix.Close(n.wakefd); err != nil {
		return err
	}
	return unix.Close(n.epfd)
}
