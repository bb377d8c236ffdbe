package wallet

import (
	"encoding/hex"
)

// Key is a raw 32-byte ed25519 key, public or private.
type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Destination pairs a recipient address with an amount in atomic units.
type Destination struct {
	Address string
	Amount  uint64
}

// FeeType expresses the three ways a transaction fee can be specified.
// Exactly one of the constructors below must be used; the zero value is
// an unspecified fee and is rejected.
type FeeType struct {
	isFixedFee   bool
	isFeePerByte bool
	isMinimumFee bool

	fixedFee   uint64
	feePerByte float64
}

// FixedFee pins the transaction fee to an absolute amount.
func FixedFee(fee uint64) FeeType {
	return FeeType{isFixedFee: true, fixedFee: fee}
}

// FeePerByte scales the fee with the size of the constructed
// transaction.
func FeePerByte(fee float64) FeeType {
	return FeeType{isFeePerByte: true, feePerByte: fee}
}

// MinimumFee uses the lowest fee the network accepts.
func MinimumFee() FeeType {
	return FeeType{isMinimumFee: true}
}

// Transaction is a monitored wallet transaction.
type Transaction struct {
	Hash      string `json:"hash"`
	Amount    int64  `json:"amount"`
	Fee       uint64 `json:"fee"`
	PaymentID string `json:"paymentID"`
	Timestamp uint64 `json:"timestamp"`
	Height    uint64 `json:"height"`
}

// Accounts is the view of a wallet container that validation needs:
// which spend keys it holds and what it can spend at a given height.
type Accounts interface {
	// HasSpendKey reports whether the container holds the given public
	// spend key.
	HasSpendKey(spendKey Key) bool

	// Balance returns the unlocked and locked balance across the given
	// spend keys, or across every account when takeFromAll is set.
	Balance(spendKeys []Key, takeFromAll bool, height uint64) (unlocked uint64, locked uint64)
}
