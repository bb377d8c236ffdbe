//go:build linux

package net

import (
	"golang.org/x/sys/unix"
)

// Raw non-blocking socket helpers. Everything here is a thin wrapper
// over x/sys/unix; suspension on EAGAIN and EINPROGRESS happens in the
// callers, which own the dispatcher relationship.

func sysSocket() (int, error) {
	return unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
}

func sysConnect(fd int, addr IPv4Address, port uint16) error {
	sa := &unix.SockaddrInet4{Port: int(port), Addr: addr.Bytes()}
	return unix.Connect(fd, sa)
}

// sysConnectErrno reads the pending error of a non-blocking connect
// after the socket reported writable.
func sysConnectErrno(fd int) (unix.Errno, error) {
	v, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return 0, err
	}
	return unix.Errno(v), nil
}

func sysRead(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func sysWrite(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func sysClose(fd int) error {
	return unix.Close(fd)
}

func sysBindListen(addr IPv4Address, port uint16, backlog int) (int, error) {
	fd, err := sysSocket()
	if err != nil {
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, err
	}
	sa := &unix.SockaddrInet4{Port: int(port), Addr: addr.Bytes()}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func sysAccept(fd int) (int, error) {
	nfd, _, err := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	return nfd, err
}

func sysLocalPort(fd int) (uint16, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return 0, err
	}
	inet4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return 0, unix.EAFNOSUPPORT
	}
	return uint16(inet4.Port), nil
}

func sysPeer(fd int) (IPv4Address, uint16, error) {
	sa, err := unix.Getpeername(fd)
	if err != nil {
		return 0, 0, err
	}
	inet4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return 0, 0, unix.EAFNOSUPPORT
	}
	a := inet4.Addr
	addr := IPv4Address(uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3]))
	return addr, uint16(inet4.Port), nil
}
