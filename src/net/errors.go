package net

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrConnectionRefused reports that the peer actively rejected the
	// connection attempt.
	ErrConnectionRefused = errors.New("net: connection refused")

	// ErrConnectionTimedOut reports that the connection attempt ran out
	// of time at the OS level.
	ErrConnectionTimedOut = errors.New("net: connection timed out")
)

// ConnectError carries the endpoint and OS error of a failed connection
// attempt. It matches ErrConnectionRefused and ErrConnectionTimedOut
// through errors.Is where the errno warrants it.
type ConnectError struct {
	Addr  IPv4Address
	Port  uint16
	Errno syscall.Errno
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s:%d: %v", e.Addr, e.Port, e.Errno)
}

func (e *ConnectError) Unwrap() error {
	return e.Errno
}

func (e *ConnectError) Is(target error) bool {
	switch target {
	case ErrConnectionRefused:
		return e.Errno == syscall.ECONNREFUSED
	case ErrConnectionTimedOut:
		return e.Errno == syscall.ETIMEDOUT
	}
	return false
}
