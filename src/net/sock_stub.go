//go:build !linux

package net

import (
	"syscall"

	"github.com/meridian-network/meridian/src/dispatch"
)

func sysSocket() (int, error) {
	return -1, dispatch.ErrUnsupportedPlatform
}

func sysConnect(fd int, addr IPv4Address, port uint16) error {
	return dispatch.ErrUnsupportedPlatform
}

func sysConnectErrno(fd int) (syscall.Errno, error) {
	return 0, dispatch.ErrUnsupportedPlatform
}

func sysRead(fd int, p []byte) (int, error) {
	return 0, dispatch.ErrUnsupportedPlatform
}

func sysWrite(fd int, p []byte) (int, error) {
	return 0, dispatch.ErrUnsupportedPlatform
}

func sysClose(fd int) error {
	return dispatch.ErrUnsupportedPlatform
}

func sysBindListen(addr IPv4Address, port uint16, backlog int) (int, error) {
	return -1, dispatch.ErrUnsupportedPlatform
}

func sysAccept(fd int) (int, error) {
	return -1, dispatch.ErrUnsupportedPlatform
}

func sysLocalPort(fd int) (uint16, error) {
	return 0, dispatch.ErrUnsupportedPlatform
}

func sysPeer(fd int) (IPv4Address, uint16, error) {
	return 0, 0, dispatch.ErrUnsupportedPlatform
}
