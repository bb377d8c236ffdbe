package wallet

import (
	"bytes"
	"regexp"

	"filippo.io/edwards25519"

	"github.com/meridian-network/meridian/src/config"
)

var hexRegex = regexp.MustCompile("^[a-fA-F0-9]{64}$")

// ValidateTransaction checks every user-supplied parameter of a
// transfer before any of it reaches transaction construction.
func ValidateTransaction(
	destinations []Destination,
	mixin uint64,
	fee FeeType,
	paymentID string,
	takeFrom []string,
	changeAddress string,
	accounts Accounts,
	height uint64,
) error {
	if err := ValidateDestinations(destinations); err != nil {
		return err
	}

	// destinations are good; resolve payment IDs carried by integrated
	// addresses and make sure they do not conflict
	resolvedPaymentID, err := ValidateIntegratedAddresses(destinations, paymentID)
	if err != nil {
		return err
	}

	if err := ValidateOurAddresses(takeFrom, accounts); err != nil {
		return err
	}

	if err := ValidateAmount(destinations, fee, takeFrom, accounts, height); err != nil {
		return err
	}

	if err := ValidateMixin(mixin, height); err != nil {
		return err
	}

	if err := ValidatePaymentID(resolvedPaymentID); err != nil {
		return err
	}

	if err := ValidateOurAddresses([]string{changeAddress}, accounts); err != nil {
		return err
	}

	return nil
}

// ValidateFusionTransaction checks the parameters of a fusion, which
// moves funds within the wallet to consolidate small outputs.
func ValidateFusionTransaction(
	mixin uint64,
	takeFrom []string,
	destination string,
	accounts Accounts,
	height uint64,
	optimizeTarget *uint64,
) error {
	if err := ValidateMixin(mixin, height); err != nil {
		return err
	}

	if err := ValidateOurAddresses(takeFrom, accounts); err != nil {
		return err
	}

	if err := ValidateOurAddresses([]string{destination}, accounts); err != nil {
		return err
	}

	if err := ValidateOptimizeTarget(optimizeTarget); err != nil {
		return err
	}

	return nil
}

// ValidateIntegratedAddresses reconciles the payment IDs embedded in
// integrated destination addresses with the explicitly given one. It
// returns the payment ID the transaction must carry.
func ValidateIntegratedAddresses(destinations []Destination, paymentID string) (string, error) {
	for _, destination := range destinations {
		if len(destination.Address) != integratedAddressLength {
			continue
		}

		_, extracted, err := ExtractIntegratedAddressData(destination.Address)
		if err != nil {
			return "", err
		}

		if paymentID == "" {
			paymentID = extracted
		} else if paymentID != extracted {
			return "", NewError(ConflictingPaymentIDs)
		}
	}

	return paymentID, nil
}

// ValidateHash checks a 64-character hex hash.
func ValidateHash(hash string) error {
	if len(hash) != 64 {
		return NewError(HashWrongLength)
	}
	if !hexRegex.MatchString(hash) {
		return NewError(HashInvalid)
	}
	return nil
}

// ValidatePaymentID checks a payment ID. Empty means "none" and is
// accepted.
func ValidatePaymentID(paymentID string) error {
	if paymentID == "" {
		return nil
	}
	if len(paymentID) != config.PaymentIDLength {
		return NewError(PaymentIDWrongLength)
	}
	if !hexRegex.MatchString(paymentID) {
		return NewError(PaymentIDInvalid)
	}
	return nil
}

// ValidatePrivateKey checks that the key is a canonical scalar.
func ValidatePrivateKey(key Key) error {
	if _, err := edwards25519.NewScalar().SetCanonicalBytes(key[:]); err != nil {
		return NewError(InvalidPrivateKey)
	}
	return nil
}

// ValidatePublicKey checks that the key is the canonical encoding of a
// curve point. SetBytes reduces a y coordinate above the field order,
// so a round trip through the point is required to rule that out.
func ValidatePublicKey(key Key) error {
	p, err := new(edwards25519.Point).SetBytes(key[:])
	if err != nil || !bytes.Equal(p.Bytes(), key[:]) {
		return NewError(InvalidPublicKey)
	}
	return nil
}

// ValidateMixin checks the mixin against the ring-size rules in force
// at the given height.
func ValidateMixin(mixin uint64, height uint64) error {
	limit := config.MixinAllowableRange(height)

	if mixin < limit.Min {
		return NewErrorf(MixinTooSmall,
			"mixin %d is lower than the minimum mixin allowed (%d)", mixin, limit.Min)
	}

	if mixin > limit.Max {
		return NewErrorf(MixinTooBig,
			"mixin %d is greater than the maximum mixin allowed (%d)", mixin, limit.Max)
	}

	return nil
}

// ValidateAmount checks the fee floor and that the unlocked balance of
// the source accounts covers the transfer. A fee that is only known
// once the transaction is built (per-byte or minimum) is re-checked at
// construction time.
func ValidateAmount(
	destinations []Destination,
	fee FeeType,
	takeFrom []string,
	accounts Accounts,
	height uint64,
) error {
	if !fee.isFixedFee && !fee.isFeePerByte && !fee.isMinimumFee {
		panic("wallet: fee type not specified")
	}

	if fee.isFeePerByte && fee.feePerByte < config.MinimumFeePerByte {
		return NewError(FeeTooSmall)
	}

	spendKeys, err := addressesToSpendKeys(takeFrom)
	if err != nil {
		return err
	}

	// take from all accounts if no source addresses were specified
	unlocked, _ := accounts.Balance(spendKeys, len(takeFrom) == 0, height)

	var totalAmount uint64
	amounts := make([]uint64, 0, len(destinations)+1)

	if fee.isFixedFee {
		totalAmount += fee.fixedFee
		amounts = append(amounts, fee.fixedFee)
	}

	for _, destination := range destinations {
		totalAmount += destination.Amount
		amounts = append(amounts, destination.Amount)
	}

	if sumWillOverflow(amounts) {
		return NewError(WillOverflow)
	}

	if totalAmount > unlocked {
		return NewError(NotEnoughBalance)
	}

	return nil
}

// ValidateDestinations checks that there is at least one destination,
// every amount is non-zero and every address is well formed. Integrated
// addresses are allowed here.
func ValidateDestinations(destinations []Destination) error {
	if len(destinations) == 0 {
		return NewError(NoDestinationsGiven)
	}

	addresses := make([]string, 0, len(destinations))
	for _, destination := range destinations {
		if destination.Amount == 0 {
			return NewError(AmountIsZero)
		}
		addresses = append(addresses, destination.Address)
	}

	return ValidateAddresses(addresses, true)
}

// ValidateAddresses checks address length, prefix and key validity.
// Integrated addresses are reduced to their standard part before the
// key check.
func ValidateAddresses(addresses []string, integratedAddressesAllowed bool) error {
	for _, address := range addresses {
		if len(address) != standardAddressLength && len(address) != integratedAddressLength {
			return NewErrorf(AddressWrongLength,
				"the address given is the wrong length. It should be %d chars or %d chars, but it is %d chars",
				standardAddressLength, integratedAddressLength, len(address))
		}

		if len(address) < len(addressPrefixString) ||
			address[:len(addressPrefixString)] != addressPrefixString {
			return NewError(AddressWrongPrefix)
		}

		if len(address) == integratedAddressLength {
			if !integratedAddressesAllowed {
				return NewErrorf(AddressIsIntegrated,
					"the address given (%s) is an integrated address, but integrated addresses aren't valid for this parameter",
					address)
			}

			standard, _, err := ExtractIntegratedAddressData(address)
			if err != nil {
				return err
			}
			address = standard
		}

		if _, _, err := ParseAddress(address); err != nil {
			return err
		}
	}

	return nil
}

// ValidateOurAddresses checks that every address is a standard address
// whose spend key is held by the wallet container.
func ValidateOurAddresses(addresses []string, accounts Accounts) error {
	if err := ValidateAddresses(addresses, false); err != nil {
		return err
	}

	for _, address := range addresses {
		spendKey, _, err := ParseAddress(address)
		if err != nil {
			return err
		}

		if !accounts.HasSpendKey(spendKey) {
			return NewErrorf(AddressNotInWallet,
				"the address given (%s) does not exist in the wallet container, but it is required to exist for this operation",
				address)
		}
	}

	return nil
}

// ValidateOptimizeTarget checks that a fusion optimize target is a
// single significant digit, e.g. 20000 but not 23456.
func ValidateOptimizeTarget(optimizeTarget *uint64) error {
	if optimizeTarget == nil {
		return nil
	}

	target := *optimizeTarget
	pow := uint64(1)
	for v := target; v >= 10; v /= 10 {
		pow *= 10
	}

	if target != (target/pow)*pow {
		return NewError(AmountUgly)
	}

	return nil
}

func addressesToSpendKeys(addresses []string) ([]Key, error) {
	keys := make([]Key, 0, len(addresses))
	for _, address := range addresses {
		spendKey, _, err := ParseAddress(address)
		if err != nil {
			return nil, err
		}
		keys = append(keys, spendKey)
	}
	return keys, nil
}

// sumWillOverflow reports whether adding the amounts together would
// wrap around uint64.
func sumWillOverflow(amounts []uint64) bool {
	var sum uint64
	for _, amount := range amounts {
		if sum+amount < sum {
			return true
		}
		sum += amount
	}
	return false
}
