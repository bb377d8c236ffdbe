package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAccounts struct {
	spendKeys map[Key]bool
	unlocked  uint64
	locked    uint64
}

func newTestAccounts(unlocked uint64, keys ...Key) *testAccounts {
	a := &testAccounts{
		spendKeys: map[Key]bool{},
		unlocked:  unlocked,
	}
	for _, k := range keys {
		a.spendKeys[k] = true
	}
	return a
}

func (a *testAccounts) HasSpendKey(spendKey Key) bool {
	return a.spendKeys[spendKey]
}

func (a *testAccounts) Balance(spendKeys []Key, takeFromAll bool, height uint64) (uint64, uint64) {
	return a.unlocked, a.locked
}

func TestValidateMixin(t *testing.T) {
	// early band: 0 to 100
	require.NoError(t, ValidateMixin(0, 0))
	require.NoError(t, ValidateMixin(100, 0))
	require.Equal(t, MixinTooBig, Code(ValidateMixin(101, 0)))

	// middle band: 1 to 100
	require.Equal(t, MixinTooSmall, Code(ValidateMixin(0, 500000)))
	require.NoError(t, ValidateMixin(1, 500000))

	// late band: 3 to 7
	require.Equal(t, MixinTooSmall, Code(ValidateMixin(2, 620000)))
	require.NoError(t, ValidateMixin(3, 620000))
	require.NoError(t, ValidateMixin(7, 620000))
	require.Equal(t, MixinTooBig, Code(ValidateMixin(8, 620000)))
}

func TestValidateHash(t *testing.T) {
	require.NoError(t, ValidateHash(testPaymentID))
	require.Equal(t, HashWrongLength, Code(ValidateHash("abc")))
	require.Equal(t, HashWrongLength, Code(ValidateHash("")))
	require.Equal(t, HashInvalid, Code(ValidateHash(strings.Repeat("g", 64))))
}

func TestValidatePaymentID(t *testing.T) {
	require.NoError(t, ValidatePaymentID(""))
	require.NoError(t, ValidatePaymentID(testPaymentID))
	require.Equal(t, PaymentIDWrongLength, Code(ValidatePaymentID("abc")))
	require.Equal(t, PaymentIDInvalid, Code(ValidatePaymentID(strings.Repeat("x", 64))))
}

func TestValidateKeys(t *testing.T) {
	var small Key
	small[0] = 1
	require.NoError(t, ValidatePrivateKey(small))

	var huge Key
	for i := range huge {
		huge[i] = 0xff
	}
	require.Equal(t, InvalidPrivateKey, Code(ValidatePrivateKey(huge)))
	require.Equal(t, InvalidPublicKey, Code(ValidatePublicKey(huge)))

	// non-canonical encoding of the identity point: y = p+1, which
	// reduces to y = 1 but re-encodes differently
	var nonCanonical Key
	nonCanonical[0] = 0xee
	for i := 1; i < 31; i++ {
		nonCanonical[i] = 0xff
	}
	nonCanonical[31] = 0x7f
	require.Equal(t, InvalidPublicKey, Code(ValidatePublicKey(nonCanonical)))

	spendKey, viewKey := testKeys()
	require.NoError(t, ValidatePublicKey(spendKey))
	require.NoError(t, ValidatePublicKey(viewKey))
}

func TestValidateDestinations(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	require.Equal(t, NoDestinationsGiven, Code(ValidateDestinations(nil)))

	err := ValidateDestinations([]Destination{{Address: address, Amount: 0}})
	require.Equal(t, AmountIsZero, Code(err))

	err = ValidateDestinations([]Destination{{Address: "abc", Amount: 10}})
	require.Equal(t, AddressWrongLength, Code(err))

	require.NoError(t, ValidateDestinations([]Destination{{Address: address, Amount: 10}}))
}

func TestValidateAddressesIntegrated(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)
	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)

	require.NoError(t, ValidateAddresses([]string{integrated}, true))

	err = ValidateAddresses([]string{integrated}, false)
	require.Equal(t, AddressIsIntegrated, Code(err))
}

func TestValidateIntegratedAddresses(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)
	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)

	destinations := []Destination{
		{Address: address, Amount: 10},
		{Address: integrated, Amount: 20},
	}

	// no explicit payment ID: the embedded one wins
	resolved, err := ValidateIntegratedAddresses(destinations, "")
	require.NoError(t, err)
	require.Equal(t, testPaymentID, resolved)

	// matching explicit payment ID
	resolved, err = ValidateIntegratedAddresses(destinations, testPaymentID)
	require.NoError(t, err)
	require.Equal(t, testPaymentID, resolved)

	// conflicting explicit payment ID
	other := strings.Repeat("a", 64)
	_, err = ValidateIntegratedAddresses(destinations, other)
	require.Equal(t, ConflictingPaymentIDs, Code(err))
}

func TestValidateAmount(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)
	accounts := newTestAccounts(100, spendKey)

	destinations := []Destination{{Address: address, Amount: 50}}

	require.NoError(t, ValidateAmount(destinations, FixedFee(10), nil, accounts, 0))
	require.NoError(t, ValidateAmount(destinations, MinimumFee(), nil, accounts, 0))

	err := ValidateAmount(destinations, FixedFee(51), nil, accounts, 0)
	require.Equal(t, NotEnoughBalance, Code(err))

	err = ValidateAmount(destinations, FeePerByte(0.5), nil, accounts, 0)
	require.Equal(t, FeeTooSmall, Code(err))

	overflow := []Destination{
		{Address: address, Amount: ^uint64(0)},
		{Address: address, Amount: 1},
	}
	err = ValidateAmount(overflow, MinimumFee(), nil, accounts, 0)
	require.Equal(t, WillOverflow, Code(err))

	require.Panics(t, func() {
		ValidateAmount(destinations, FeeType{}, nil, accounts, 0)
	})
}

func TestValidateOurAddresses(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	// the view key doubles as a foreign spend key here
	foreign := EncodeAddress(viewKey, viewKey)

	accounts := newTestAccounts(0, spendKey)

	require.NoError(t, ValidateOurAddresses([]string{address}, accounts))

	err := ValidateOurAddresses([]string{foreign}, accounts)
	require.Equal(t, AddressNotInWallet, Code(err))
}

func TestValidateOptimizeTarget(t *testing.T) {
	require.NoError(t, ValidateOptimizeTarget(nil))

	for _, valid := range []uint64{0, 7, 20000, 900000000} {
		valid := valid
		require.NoError(t, ValidateOptimizeTarget(&valid))
	}

	for _, ugly := range []uint64{23456, 11, 1000001} {
		ugly := ugly
		require.Equal(t, AmountUgly, Code(ValidateOptimizeTarget(&ugly)))
	}
}

func TestValidateTransaction(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)
	accounts := newTestAccounts(1000, spendKey)

	destinations := []Destination{{Address: address, Amount: 100}}

	err := ValidateTransaction(
		destinations, 3, FixedFee(10), "", []string{address}, address, accounts, 620000)
	require.NoError(t, err)

	// bad mixin surfaces through the top-level check
	err = ValidateTransaction(
		destinations, 50, FixedFee(10), "", []string{address}, address, accounts, 620000)
	require.Equal(t, MixinTooBig, Code(err))

	// integrated change address is rejected
	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)
	err = ValidateTransaction(
		destinations, 3, FixedFee(10), "", []string{address}, integrated, accounts, 620000)
	require.Equal(t, AddressIsIntegrated, Code(err))
}

func TestValidateFusionTransaction(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)
	accounts := newTestAccounts(1000, spendKey)

	require.NoError(t, ValidateFusionTransaction(3, []string{address}, address, accounts, 620000, nil))

	target := uint64(23456)
	err := ValidateFusionTransaction(3, []string{address}, address, accounts, 620000, &target)
	require.Equal(t, AmountUgly, Code(err))
}
