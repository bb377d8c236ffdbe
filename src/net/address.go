package net

import (
	"fmt"
	"strconv"
	"strings"
)

// IPv4Address is a host-order IPv4 address.
type IPv4Address uint32

// Loopback returns 127.0.0.1.
func Loopback() IPv4Address {
	return IPv4Address(127<<24 | 1)
}

// ParseIPv4Address parses strict dotted-decimal notation: exactly four
// octets, each 0-255, no leading zeros.
func ParseIPv4Address(s string) (IPv4Address, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid IPv4 address %q", s)
	}
	var addr uint32
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		if len(part) > 1 && part[0] == '0' {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		addr = addr<<8 | uint32(octet)
	}
	return IPv4Address(addr), nil
}

func (a IPv4Address) String() string {
	b := a.Bytes()
	return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
}

// Bytes returns the address octets in network order.
func (a IPv4Address) Bytes() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}
