package config

// Currency parameters of the Meridian network. The address prefix is
// the varint tag prepended to address data before base58 encoding, so
// every address starts with the same human-readable run.
const (
	// AddressPrefix tags both standard two-key addresses and
	// integrated addresses; the two forms are told apart by length.
	AddressPrefix uint64 = 0x1e4da6

	// PaymentIDLength is the length of a hex-encoded payment ID.
	PaymentIDLength = 64

	// MinimumFee is the network fee floor for fixed-fee transactions,
	// in atomic units.
	MinimumFee uint64 = 10

	// MinimumFeePerByte is the network fee floor for fee-per-byte
	// transactions, in atomic units per byte.
	MinimumFeePerByte float64 = 1.953125
)

// MixinLimit describes the ring-size rules in force from Height onward.
type MixinLimit struct {
	Height  uint64
	Min     uint64
	Max     uint64
	Default uint64
}

// MixinLimits holds the ring-size rule bands in ascending height order.
var MixinLimits = []MixinLimit{
	{Height: 0, Min: 0, Max: 100, Default: 3},
	{Height: 440000, Min: 1, Max: 100, Default: 3},
	{Height: 620000, Min: 3, Max: 7, Default: 3},
}

// MixinAllowableRange returns the ring-size rules that apply at the
// given height.
func MixinAllowableRange(height uint64) MixinLimit {
	limit := MixinLimits[0]
	for _, l := range MixinLimits[1:] {
		if height >= l.Height {
			limit = l
		}
	}
	return limit
}
