package net

import (
	"io"
	"syscall"

	"github.com/meridian-network/meridian/src/dispatch"
)

// TCPConnection is an established non-blocking stream socket bound to a
// dispatcher. Read and Write may only be called from contexts of that
// dispatcher.
type TCPConnection struct {
	d  *dispatch.Dispatcher
	fd int
}

func newTCPConnection(d *dispatch.Dispatcher, fd int) *TCPConnection {
	return &TCPConnection{d: d, fd: fd}
}

// Read fills p with at least one byte, suspending the calling context
// until data arrives. A peer that closed the stream yields io.EOF; an
// interrupted wait yields dispatch.ErrOperationCancelled with the
// connection still usable.
func (c *TCPConnection) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := sysRead(c.fd, p)
		if err == nil {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err != syscall.EAGAIN {
			return 0, err
		}
		if werr := c.d.WaitRead(c.fd); werr != nil {
			return 0, werr
		}
	}
}

// Write sends all of p, suspending whenever the socket buffer fills. On
// error it reports how much was already accepted by the kernel.
func (c *TCPConnection) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := sysWrite(c.fd, p[written:])
		if err == nil {
			written += n
			continue
		}
		if err != syscall.EAGAIN {
			return written, err
		}
		if werr := c.d.WaitWrite(c.fd); werr != nil {
			return written, werr
		}
	}
	return written, nil
}

// RemoteAddr returns the peer endpoint.
func (c *TCPConnection) RemoteAddr() (IPv4Address, uint16, error) {
	return sysPeer(c.fd)
}

// Close releases the socket. Further calls are no-ops.
func (c *TCPConnection) Close() error {
	if c.fd < 0 {
		return nil
	}
	fd := c.fd
	c.fd = -1
	return sysClose(fd)
}
