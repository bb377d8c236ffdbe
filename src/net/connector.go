package net

import (
	"errors"
	"syscall"

	"github.com/meridian-network/meridian/src/dispatch"
)

// TCPConnector opens outbound connections from dispatcher contexts. One
// connector supports one connection attempt at a time; concurrent use
// from several contexts is a programming error.
type TCPConnector struct {
	d          *dispatch.Dispatcher
	connecting bool
}

// NewTCPConnector ...
func NewTCPConnector(d *dispatch.Dispatcher) *TCPConnector {
	return &TCPConnector{d: d}
}

// Connect suspends the calling context until the connection to
// addr:port is established or fails. A refused or timed-out attempt
// returns a *ConnectError; an interrupted attempt returns
// dispatch.ErrOperationCancelled and releases the socket.
func (tc *TCPConnector) Connect(addr IPv4Address, port uint16) (*TCPConnection, error) {
	if tc.d == nil {
		panic("net: connect on unbound connector")
	}
	if tc.connecting {
		panic("net: concurrent connect on one connector")
	}
	tc.connecting = true
	defer func() { tc.connecting = false }()

	fd, err := sysSocket()
	if err != nil {
		return nil, err
	}

	err = sysConnect(fd, addr, port)
	if err == syscall.EINPROGRESS {
		if werr := tc.d.WaitWrite(fd); werr != nil {
			sysClose(fd)
			return nil, werr
		}
		errno, serr := sysConnectErrno(fd)
		if serr != nil {
			sysClose(fd)
			return nil, serr
		}
		if errno != 0 {
			sysClose(fd)
			return nil, &ConnectError{Addr: addr, Port: port, Errno: errno}
		}
	} else if err != nil {
		sysClose(fd)
		var errno syscall.Errno
		if errors.As(err, &errno) {
			return nil, &ConnectError{Addr: addr, Port: port, Errno: errno}
		}
		return nil, err
	}

	return newTCPConnection(tc.d, fd), nil
}
