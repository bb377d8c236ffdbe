package store

import (
	"github.com/dgraph-io/badger"

	cm "github.com/meridian-network/meridian/src/common"
	"github.com/meridian-network/meridian/src/wallet"
)

// BadgerStore persists monitored transactions in a badger database.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// NewBadgerStore opens, or creates, a database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	opts.Logger = nil
	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{
		db:   handle,
		path: path,
	}, nil
}

// Path returns the database directory.
func (s *BadgerStore) Path() string {
	return s.path
}

// Commit applies a write batch atomically.
func (s *BadgerStore) Commit(batch WriteBatch) error {
	inserts, err := batch.DataToInsert()
	if err != nil {
		return err
	}
	removes, err := batch.KeysToRemove()
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, kv := range inserts {
			if err := txn.Set(kv.Key, kv.Value); err != nil {
				return err
			}
		}
		for _, key := range removes {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTransaction retrieves a transaction by hash.
func (s *BadgerStore) GetTransaction(hash string) (wallet.Transaction, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(hash))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return wallet.Transaction{}, cm.NewStoreErr("transaction", cm.KeyNotFound, hash)
		}
		return wallet.Transaction{}, err
	}
	return unmarshalTransaction(raw)
}

// Transactions returns every stored transaction.
func (s *BadgerStore) Transactions() ([]wallet.Transaction, error) {
	var txs []wallet.Transaction
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(txPrefix + "_")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			tx, err := unmarshalTransaction(raw)
			if err != nil {
				return err
			}
			txs = append(txs, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// ContainsTransaction reports whether a hash is stored, without
// decoding the value.
func (s *BadgerStore) ContainsTransaction(hash string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(txKey(hash))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the database. The store is unusable afterwards.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
