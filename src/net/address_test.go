package net

import (
	"testing"
)

func TestParseIPv4Address(t *testing.T) {
	valid := map[string]IPv4Address{
		"0.0.0.0":         0,
		"127.0.0.1":       Loopback(),
		"10.0.200.1":      IPv4Address(10<<24 | 200<<8 | 1),
		"255.255.255.255": IPv4Address(0xffffffff),
	}
	for s, want := range valid {
		got, err := ParseIPv4Address(s)
		if err != nil {
			t.Fatalf("%s: err: %v", s, err)
		}
		if got != want {
			t.Fatalf("%s: got %d, want %d", s, got, want)
		}
		if got.String() != s {
			t.Fatalf("%s: round trip gave %s", s, got.String())
		}
	}

	invalid := []string{
		"",
		"1.2.3",
		"1.2.3.4.5",
		"256.0.0.1",
		"1.2.3.04",
		"01.2.3.4",
		"1.2.3.-4",
		"a.b.c.d",
		"1.2.3.4 ",
	}
	for _, s := range invalid {
		if _, err := ParseIPv4Address(s); err == nil {
			t.Fatalf("%q: expected parse error", s)
		}
	}
}

func TestIPv4AddressBytes(t *testing.T) {
	addr, err := ParseIPv4Address("192.168.1.20")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b := addr.Bytes()
	if b != [4]byte{192, 168, 1, 20} {
		t.Fatalf("bad bytes: %v", b)
	}
}
