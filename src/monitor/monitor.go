package monitor

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/meridian-network/meridian/src/common"
	"github.com/meridian-network/meridian/src/wallet"
)

// Backend is the source of monitored transactions, typically a wallet
// container synchronizing against the chain.
type Backend interface {
	// Transactions returns every transaction known to the backend.
	Transactions() []wallet.Transaction
}

// TransactionMonitor polls a backend and publishes transactions it has
// not seen before onto a queue, exactly once each. Consumers drain the
// queue from their own goroutine.
type TransactionMonitor struct {
	backend  Backend
	queue    *common.ThreadSafeQueue[wallet.Transaction]
	clk      clock.Clock
	interval time.Duration
	logger   *logrus.Entry

	// syncMu serializes polling against operations that must observe a
	// settled transaction set, such as committing a batch to disk.
	syncMu sync.Mutex

	seen map[string]bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTransactionMonitor ...
func NewTransactionMonitor(
	backend Backend,
	clk clock.Clock,
	interval time.Duration,
	logger *logrus.Entry,
) *TransactionMonitor {
	return &TransactionMonitor{
		backend:  backend,
		queue:    common.NewThreadSafeQueue[wallet.Transaction](),
		clk:      clk,
		interval: interval,
		logger:   logger,
		seen:     map[string]bool{},
		stopCh:   make(chan struct{}),
	}
}

// Start polls the backend until Stop is called. It blocks and is meant
// to run on its own goroutine.
func (m *TransactionMonitor) Start() {
	m.poll()

	ticker := m.clk.Ticker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.poll()
		case <-m.stopCh:
			return
		}
	}
}

// Stop terminates the polling loop and closes the queue. Transactions
// already queued remain available to consumers; Pop reports exhaustion
// once they are drained.
func (m *TransactionMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.queue.Stop()
	})
}

// Queue returns the queue new transactions are published on.
func (m *TransactionMonitor) Queue() *common.ThreadSafeQueue[wallet.Transaction] {
	return m.queue
}

// SyncMutex exposes the lock that holds polling still. Holders see a
// stable transaction set for the duration.
func (m *TransactionMonitor) SyncMutex() *sync.Mutex {
	return &m.syncMu
}

func (m *TransactionMonitor) poll() {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	published := 0
	for _, tx := range m.backend.Transactions() {
		if m.seen[tx.Hash] {
			continue
		}
		m.seen[tx.Hash] = true
		if !m.queue.Push(tx) {
			return
		}
		published++
	}

	if published > 0 {
		m.logger.WithFields(logrus.Fields{
			"published": published,
			"queued":    m.queue.Size(),
		}).Debug("Published transactions")
	}
}

// StaticBackend serves a fixed, append-only transaction list. It is the
// backend used when transactions are fed in from the outside rather
// than discovered by chain synchronization.
type StaticBackend struct {
	mu  sync.Mutex
	txs []wallet.Transaction
}

// NewStaticBackend ...
func NewStaticBackend(txs ...wallet.Transaction) *StaticBackend {
	return &StaticBackend{txs: txs}
}

// Add appends transactions to the served list.
func (b *StaticBackend) Add(txs ...wallet.Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs = append(b.txs, txs...)
}

// Transactions implements Backend.
func (b *StaticBackend) Transactions() []wallet.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]wallet.Transaction, len(b.txs))
	copy(out, b.txs)
	return out
}
