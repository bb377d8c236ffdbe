package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ed25519 base point and identity, the simplest valid public keys.
func testKeys() (spendKey, viewKey Key) {
	spendKey[0] = 0x58
	for i := 1; i < 32; i++ {
		spendKey[i] = 0x66
	}
	viewKey[0] = 0x01
	return spendKey, viewKey
}

const testPaymentID = "8ca523f5e9506fd4941f78ef2a3ae115e503b795835b0bcf0fa456237dfcf3e1"

func TestAddressRoundTrip(t *testing.T) {
	spendKey, viewKey := testKeys()

	address := EncodeAddress(spendKey, viewKey)
	require.Equal(t, standardAddressLength, len(address))
	require.True(t, strings.HasPrefix(address, addressPrefixString))

	gotSpend, gotView, err := ParseAddress(address)
	require.NoError(t, err)
	require.Equal(t, spendKey, gotSpend)
	require.Equal(t, viewKey, gotView)
}

func TestParseAddressCorrupted(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	// flip one character; the checksum must catch it
	tampered := []byte(address)
	if tampered[10] == '1' {
		tampered[10] = '2'
	} else {
		tampered[10] = '1'
	}

	_, _, err := ParseAddress(string(tampered))
	require.Error(t, err)
	require.Equal(t, AddressNotBase58, Code(err))
}

func TestParseAddressRejectsIntegrated(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)

	_, _, err = ParseAddress(integrated)
	require.Error(t, err)
	require.Equal(t, AddressNotValid, Code(err))
}

func TestAddressFormsShareNetworkPrefix(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)

	require.NotEmpty(t, addressPrefixString)
	require.True(t, strings.HasPrefix(address, addressPrefixString))
	require.True(t, strings.HasPrefix(integrated, addressPrefixString))
}

func TestIntegratedAddressRoundTrip(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	integrated, err := CreateIntegratedAddress(address, testPaymentID)
	require.NoError(t, err)
	require.Equal(t, integratedAddressLength, len(integrated))
	require.True(t, strings.HasPrefix(integrated, addressPrefixString))

	standard, paymentID, err := ExtractIntegratedAddressData(integrated)
	require.NoError(t, err)
	require.Equal(t, address, standard)
	require.Equal(t, testPaymentID, paymentID)
}

func TestCreateIntegratedAddressBadPaymentID(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	_, err := CreateIntegratedAddress(address, "too-short")
	require.Equal(t, PaymentIDWrongLength, Code(err))

	_, err = CreateIntegratedAddress(address, strings.Repeat("z", 64))
	require.Equal(t, PaymentIDInvalid, Code(err))

	_, err = CreateIntegratedAddress(address, "")
	require.Equal(t, PaymentIDWrongLength, Code(err))
}

func TestExtractIntegratedAddressDataRejectsStandard(t *testing.T) {
	spendKey, viewKey := testKeys()
	address := EncodeAddress(spendKey, viewKey)

	_, _, err := ExtractIntegratedAddressData(address)
	require.Equal(t, AddressNotValid, Code(err))
}
