package service

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/meridian-network/meridian/src/common"
	"github.com/meridian-network/meridian/src/version"
	"github.com/meridian-network/meridian/src/wallet"
)

// StatsProvider exposes the node counters the /stats endpoint reports.
type StatsProvider interface {
	Stats() map[string]string
}

// TransactionStore is the read side of the persisted transaction set.
type TransactionStore interface {
	GetTransaction(hash string) (wallet.Transaction, error)
	Transactions() ([]wallet.Transaction, error)
}

// Service ...
type Service struct {
	sync.Mutex

	bindAddress string
	stats       StatsProvider
	store       TransactionStore
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, stats StatsProvider, store TransactionStore, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		stats:       stats,
		store:       store,
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

// registerHandlers registers the API handlers with the DefaultServerMux of the
// http package. It is possible that another server in the same process is
// simultaneously using the DefaultServerMux. In which case, the handlers will
// be accessible from both servers. This is usefull when Meridian is used
// in-memory and expected to use the same endpoint (address:port) as the
// application's API.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering Meridian API handlers")
	http.HandleFunc("/stats", s.makeHandler(s.GetStats))
	http.HandleFunc("/version", s.makeHandler(s.GetVersion))
	http.HandleFunc("/transactions", s.makeHandler(s.GetTransactions))
	http.HandleFunc("/tx/", s.makeHandler(s.GetTransaction))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Serve calls ListenAndServe. This is a blocking call. It is not necessary to
// call Serve when Meridian is used in-memory and another server has already
// been started with the DefaultServerMux and the same address:port
// combination. Indeed, Meridian API handlers have already been registered when
// the service was instantiated.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving Meridian API")

	// Use the DefaultServerMux
	err := http.ListenAndServe(s.bindAddress, nil)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.stats.Stats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetVersion ...
func (s *Service) GetVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]string{"version": version.Version})
}

// GetTransactions ...
func (s *Service) GetTransactions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "transaction store disabled", http.StatusNotFound)
		return
	}

	txs, err := s.store.Transactions()
	if err != nil {
		s.logger.WithError(err).Error("Listing transactions")

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(txs)
}

// GetTransaction ...
func (s *Service) GetTransaction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "transaction store disabled", http.StatusNotFound)
		return
	}

	hash := strings.TrimPrefix(r.URL.Path, "/tx/")

	if err := wallet.ValidateHash(hash); err != nil {
		s.logger.WithError(err).Errorf("Parsing hash parameter %s", hash)

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	tx, err := s.store.GetTransaction(hash)
	if err != nil {
		if common.IsStore(err, common.KeyNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		s.logger.WithError(err).Errorf("Retrieving transaction %s", hash)

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(tx)
}
