//go:build linux

package node

import (
	stdnet "net"
	"testing"
	"time"

	"github.com/meridian-network/meridian/src/common"
	"github.com/meridian-network/meridian/src/config"
	"github.com/meridian-network/meridian/src/monitor"
	"github.com/meridian-network/meridian/src/wallet"
)

func TestParseSeed(t *testing.T) {
	addr, port, err := parseSeed("127.0.0.1:8080")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if addr.String() != "127.0.0.1" || port != 8080 {
		t.Fatalf("got %s:%d", addr, port)
	}

	invalid := []string{"127.0.0.1", "meridian.io:80", "127.0.0.1:0", "127.0.0.1:99999", "127.0.0.1:x"}
	for _, seed := range invalid {
		if _, _, err := parseSeed(seed); err == nil {
			t.Fatalf("%q: expected error", seed)
		}
	}
}

// refusedEndpoint reserves an ephemeral port and releases it, so a
// connect to it is refused.
func refusedEndpoint(t *testing.T) string {
	l, err := stdnet.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	endpoint := l.Addr().String()
	l.Close()
	return endpoint
}

func TestNodeRun(t *testing.T) {
	listener, err := stdnet.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	conf := config.NewTestConfig(t, common.TestLogLevel)
	conf.SetDataDir(t.TempDir())
	conf.Store = true
	conf.NoService = true
	conf.PollInterval = 10 * time.Millisecond
	conf.ProbeTimeout = time.Second
	conf.Moniker = "node0"
	conf.Seeds = []string{listener.Addr().String(), refusedEndpoint(t)}

	backend := monitor.NewStaticBackend(wallet.Transaction{
		Hash:   "aa",
		Amount: 100,
		Height: 1,
	})

	n, err := NewNode(conf, backend)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- n.Run()
	}()

	deadline := time.After(5 * time.Second)
	for {
		stats := n.Stats()
		if stats["committed_txs"] == "1" &&
			stats["reachable_seeds"] == "1" &&
			stats["unreachable_seeds"] == "1" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("node never settled: %v", stats)
		case <-time.After(10 * time.Millisecond):
		}
	}

	n.Shutdown()
	n.Shutdown()

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("err: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
