package net

import (
	"syscall"

	"github.com/meridian-network/meridian/src/dispatch"
)

const listenBacklog = 128

// TCPListener accepts inbound connections from dispatcher contexts.
type TCPListener struct {
	d  *dispatch.Dispatcher
	fd int
}

// NewTCPListener binds addr:port and starts listening. Port 0 picks an
// ephemeral port, which Port reports.
func NewTCPListener(d *dispatch.Dispatcher, addr IPv4Address, port uint16) (*TCPListener, error) {
	fd, err := sysBindListen(addr, port, listenBacklog)
	if err != nil {
		return nil, err
	}
	return &TCPListener{d: d, fd: fd}, nil
}

// Accept suspends the calling context until an inbound connection is
// ready. Connections aborted by the peer before the accept completes
// are skipped.
func (l *TCPListener) Accept() (*TCPConnection, error) {
	for {
		nfd, err := sysAccept(l.fd)
		if err == nil {
			return newTCPConnection(l.d, nfd), nil
		}
		if err == syscall.ECONNABORTED {
			continue
		}
		if err != syscall.EAGAIN {
			return nil, err
		}
		if werr := l.d.WaitRead(l.fd); werr != nil {
			return nil, werr
		}
	}
}

// Port returns the local port the listener is bound to.
func (l *TCPListener) Port() (uint16, error) {
	return sysLocalPort(l.fd)
}

// Close releases the listening socket. Further calls are no-ops.
func (l *TCPListener) Close() error {
	if l.fd < 0 {
		return nil
	}
	fd := l.fd
	l.fd = -1
	return sysClose(fd)
}
