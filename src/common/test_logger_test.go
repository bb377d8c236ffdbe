package common

import "testing"

func TestTestLoggerAdapterWrite(t *testing.T) {
	a := &testLoggerAdapter{t: t}

	n, err := a.Write(nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes for empty write, got %d", n)
	}

	n, err = a.Write([]byte("line\n"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected trailing newline trimmed, got %d bytes", n)
	}
}
