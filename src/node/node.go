package node

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/meridian-network/meridian/src/config"
	"github.com/meridian-network/meridian/src/dispatch"
	"github.com/meridian-network/meridian/src/monitor"
	"github.com/meridian-network/meridian/src/net"
	"github.com/meridian-network/meridian/src/service"
	"github.com/meridian-network/meridian/src/store"
)

// Node wires the transaction monitor, the persistent store, the HTTP
// service and the dispatcher-driven seed probes into one process.
type Node struct {
	conf   *config.Config
	logger *logrus.Entry

	disp    *dispatch.Dispatcher
	monitor *monitor.TransactionMonitor
	store   *store.BadgerStore

	startTime time.Time

	reachable   atomic.Uint64
	unreachable atomic.Uint64
	committed   atomic.Uint64

	consumerDone chan struct{}
	shutdownOnce sync.Once
}

// NewNode ...
func NewNode(conf *config.Config, backend monitor.Backend) (*Node, error) {
	logger := conf.Logger()

	disp, err := dispatch.NewDispatcher(logger)
	if err != nil {
		return nil, err
	}

	n := &Node{
		conf:         conf,
		logger:       logger,
		disp:         disp,
		startTime:    time.Now(),
		consumerDone: make(chan struct{}),
	}

	if conf.Store {
		n.store, err = store.NewBadgerStore(conf.DatabaseDir)
		if err != nil {
			return nil, err
		}
		logger.WithField("path", conf.DatabaseDir).Debug("Opened transaction store")
	}

	n.monitor = monitor.NewTransactionMonitor(
		backend,
		clock.New(),
		conf.PollInterval,
		logger,
	)

	return n, nil
}

// Run starts the monitor, the consumer, the API service and the seed
// probes, then drives the dispatcher until Shutdown. It blocks and only
// returns once everything is drained.
func (n *Node) Run() error {
	n.logger.WithFields(logrus.Fields{
		"moniker": n.conf.Moniker,
		"seeds":   len(n.conf.Seeds),
	}).Debug("Run")

	go n.monitor.Start()
	go n.consume()

	if !n.conf.NoService {
		svc := service.NewService(n.conf.ServiceAddr, n, n.transactionStore(), n.logger)
		go svc.Serve()
	}

	// the dispatcher is bound to this thread for its whole lifetime
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for _, seed := range n.conf.Seeds {
		seed := seed
		var c *dispatch.Context
		c = n.disp.Spawn(func() {
			n.probe(c, seed)
		})
	}

	// keepalive: parks forever so the dispatcher loop survives the
	// probes and keeps serving posted work until Shutdown
	stopGate := dispatch.NewEvent(n.disp)
	n.disp.Spawn(func() {
		stopGate.Wait()
	})

	n.disp.Run()

	if err := n.disp.Close(); err != nil {
		n.logger.WithError(err).Error("Closing dispatcher")
	}

	n.monitor.Stop()
	<-n.consumerDone

	if n.store != nil {
		if err := n.store.Close(); err != nil {
			return err
		}
	}

	n.logger.Debug("Node stopped")

	return nil
}

// Shutdown stops the monitor and makes Run return. It is safe to call
// from any goroutine, multiple times.
func (n *Node) Shutdown() {
	n.shutdownOnce.Do(func() {
		n.logger.Debug("Shutdown")
		n.monitor.Stop()
		n.disp.Stop()
	})
}

// Stats implements service.StatsProvider.
func (n *Node) Stats() map[string]string {
	return map[string]string{
		"moniker":             n.conf.Moniker,
		"uptime":              time.Since(n.startTime).String(),
		"reachable_seeds":     strconv.FormatUint(n.reachable.Load(), 10),
		"unreachable_seeds":   strconv.FormatUint(n.unreachable.Load(), 10),
		"committed_txs":       strconv.FormatUint(n.committed.Load(), 10),
		"queued_txs":          strconv.Itoa(n.monitor.Queue().Size()),
		"contexts_spawned":    strconv.FormatUint(n.disp.Spawned(), 10),
		"contexts_terminated": strconv.FormatUint(n.disp.Terminated(), 10),
		"store":               strconv.FormatBool(n.store != nil),
	}
}

// transactionStore adapts the optional store for the service, which
// expects a nil interface when persistence is off.
func (n *Node) transactionStore() service.TransactionStore {
	if n.store == nil {
		return nil
	}
	return n.store
}

// consume drains monitored transactions and commits them in per-wakeup
// batches, holding the monitor's sync mutex so each batch reflects a
// settled poll.
func (n *Node) consume() {
	defer close(n.consumerDone)

	queue := n.monitor.Queue()
	for {
		tx, ok := queue.Pop()
		if !ok {
			return
		}

		batch := store.NewTransactionBatch()
		batch.Add(tx)

		// pick up whatever accumulated behind it without blocking
		for queue.Size() > 0 {
			if tx, ok = queue.Pop(); ok {
				batch.Add(tx)
			}
		}

		if n.store == nil {
			n.committed.Add(uint64(batch.Len()))
			continue
		}

		syncMu := n.monitor.SyncMutex()
		syncMu.Lock()
		err := n.store.Commit(batch)
		syncMu.Unlock()

		if err != nil {
			n.logger.WithError(err).Error("Committing transaction batch")
			continue
		}

		n.committed.Add(uint64(batch.Len()))
		n.logger.WithField("batch", batch.Len()).Debug("Committed transactions")
	}
}

// probe assesses the reachability of one seed with a time-bounded
// connection attempt. It runs as a dispatcher context.
func (n *Node) probe(c *dispatch.Context, seed string) {
	logger := n.logger.WithField("seed", seed)

	addr, port, err := parseSeed(seed)
	if err != nil {
		logger.WithError(err).Error("Parsing seed")
		n.unreachable.Add(1)
		return
	}

	deadline := dispatch.NewDeadline(clock.New(), n.disp, c, n.conf.ProbeTimeout)
	defer deadline.Stop()

	connector := net.NewTCPConnector(n.disp)
	conn, err := connector.Connect(addr, port)
	if err != nil {
		logger.WithError(err).Debug("Seed unreachable")
		n.unreachable.Add(1)
		return
	}
	conn.Close()

	logger.Debug("Seed reachable")
	n.reachable.Add(1)
}

// parseSeed splits an "address:port" seed endpoint.
func parseSeed(seed string) (net.IPv4Address, uint16, error) {
	host, portStr, found := strings.Cut(seed, ":")
	if !found {
		return 0, 0, fmt.Errorf("seed %q is not address:port", seed)
	}
	addr, err := net.ParseIPv4Address(host)
	if err != nil {
		return 0, 0, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return 0, 0, fmt.Errorf("seed %q has an invalid port", seed)
	}
	return addr, uint16(port), nil
}
