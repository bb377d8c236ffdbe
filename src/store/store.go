package store

import (
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/meridian-network/meridian/src/wallet"
)

const txPrefix = "tx"

// KV pairs a key with the value to write under it.
type KV struct {
	Key   []byte
	Value []byte
}

// WriteBatch is a set of writes and deletes applied atomically by a
// store.
type WriteBatch interface {
	// DataToInsert returns the key/value pairs the batch writes.
	DataToInsert() ([]KV, error)

	// KeysToRemove returns the keys the batch deletes.
	KeysToRemove() ([][]byte, error)
}

// TransactionBatch accumulates monitored transactions for one atomic
// commit.
type TransactionBatch struct {
	inserts []wallet.Transaction
	removes []string
}

// NewTransactionBatch ...
func NewTransactionBatch() *TransactionBatch {
	return &TransactionBatch{}
}

// Add stages a transaction for writing.
func (b *TransactionBatch) Add(tx wallet.Transaction) {
	b.inserts = append(b.inserts, tx)
}

// Remove stages a transaction hash for deletion.
func (b *TransactionBatch) Remove(hash string) {
	b.removes = append(b.removes, hash)
}

// Len returns the number of staged operations.
func (b *TransactionBatch) Len() int {
	return len(b.inserts) + len(b.removes)
}

// DataToInsert implements WriteBatch.
func (b *TransactionBatch) DataToInsert() ([]KV, error) {
	kvs := make([]KV, 0, len(b.inserts))
	for _, tx := range b.inserts {
		raw, err := marshalTransaction(tx)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, KV{Key: txKey(tx.Hash), Value: raw})
	}
	return kvs, nil
}

// KeysToRemove implements WriteBatch.
func (b *TransactionBatch) KeysToRemove() ([][]byte, error) {
	keys := make([][]byte, 0, len(b.removes))
	for _, hash := range b.removes {
		keys = append(keys, txKey(hash))
	}
	return keys, nil
}

func txKey(hash string) []byte {
	return []byte(fmt.Sprintf("%s_%s", txPrefix, hash))
}

func marshalTransaction(tx wallet.Transaction) ([]byte, error) {
	b := []byte{}
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoderBytes(&b, jh)
	if err := enc.Encode(tx); err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshalTransaction(data []byte) (wallet.Transaction, error) {
	var tx wallet.Transaction
	jh := new(codec.JsonHandle)
	dec := codec.NewDecoderBytes(data, jh)
	if err := dec.Decode(&tx); err != nil {
		return wallet.Transaction{}, err
	}
	return tx, nil
}
