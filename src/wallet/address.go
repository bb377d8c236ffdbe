package wallet

import (
	"strings"

	"github.com/meridian-network/meridian/src/common"
	"github.com/meridian-network/meridian/src/config"
)

// Address lengths are derived from the actual encoding once, so they
// can never drift from the prefixes configured for the network.
var (
	standardAddressLength   int
	integratedAddressLength int

	// addressPrefixString is the run of base58 characters every
	// Meridian address starts with, standard and integrated alike.
	addressPrefixString string
)

func init() {
	var zero, full Key
	for i := range full {
		full[i] = 0xff
	}

	// Extremes of each address form. Block base58 is monotonic in the
	// leading bytes, so the prefix these four share is shared by every
	// address on the network.
	lowPID := strings.Repeat("0", config.PaymentIDLength)
	highPID := strings.Repeat("f", config.PaymentIDLength)
	samples := []string{
		EncodeAddress(zero, zero),
		EncodeAddress(full, full),
		encodeIntegrated(lowPID, zero, zero),
		encodeIntegrated(highPID, full, full),
	}

	standardAddressLength = len(samples[0])
	integratedAddressLength = len(samples[2])

	addressPrefixString = samples[0]
	for _, s := range samples[1:] {
		i := 0
		for i < len(addressPrefixString) && addressPrefixString[i] == s[i] {
			i++
		}
		addressPrefixString = addressPrefixString[:i]
	}
	if addressPrefixString == "" {
		panic("wallet: address forms share no base58 prefix")
	}
}

// EncodeAddress renders a public spend/view key pair as a standard
// Meridian address.
func EncodeAddress(spendKey, viewKey Key) string {
	data := make([]byte, 0, 64)
	data = append(data, spendKey[:]...)
	data = append(data, viewKey[:]...)
	return common.Base58EncodeAddr(config.AddressPrefix, data)
}

// ParseAddress recovers the public spend and view keys of a standard
// address. Integrated addresses are rejected; extract their standard
// part with ExtractIntegratedAddressData first.
func ParseAddress(address string) (spendKey, viewKey Key, err error) {
	tag, data, derr := common.Base58DecodeAddr(address)
	if derr != nil {
		return spendKey, viewKey, NewError(AddressNotBase58)
	}
	if tag != config.AddressPrefix {
		return spendKey, viewKey, NewError(AddressWrongPrefix)
	}
	if len(data) != 64 {
		return spendKey, viewKey, NewError(AddressNotValid)
	}
	copy(spendKey[:], data[:32])
	copy(viewKey[:], data[32:])
	if verr := ValidatePublicKey(spendKey); verr != nil {
		return spendKey, viewKey, NewError(AddressNotValid)
	}
	if verr := ValidatePublicKey(viewKey); verr != nil {
		return spendKey, viewKey, NewError(AddressNotValid)
	}
	return spendKey, viewKey, nil
}

// CreateIntegratedAddress embeds a payment ID into an address. The
// payment ID travels as its 64 hex characters, ahead of the raw keys.
func CreateIntegratedAddress(address, paymentID string) (string, error) {
	if err := ValidatePaymentID(paymentID); err != nil {
		return "", err
	}
	if paymentID == "" {
		return "", NewError(PaymentIDWrongLength)
	}
	spendKey, viewKey, err := ParseAddress(address)
	if err != nil {
		return "", err
	}
	return encodeIntegrated(paymentID, spendKey, viewKey), nil
}

func encodeIntegrated(paymentID string, spendKey, viewKey Key) string {
	data := make([]byte, 0, config.PaymentIDLength+64)
	data = append(data, paymentID...)
	data = append(data, spendKey[:]...)
	data = append(data, viewKey[:]...)
	return common.Base58EncodeAddr(config.AddressPrefix, data)
}

// ExtractIntegratedAddressData splits an integrated address into its
// standard address and payment ID.
func ExtractIntegratedAddressData(address string) (standard, paymentID string, err error) {
	tag, data, derr := common.Base58DecodeAddr(address)
	if derr != nil {
		return "", "", NewError(AddressNotBase58)
	}
	if tag != config.AddressPrefix {
		return "", "", NewError(AddressWrongPrefix)
	}
	if len(data) != config.PaymentIDLength+64 {
		return "", "", NewError(AddressNotValid)
	}

	paymentID = string(data[:config.PaymentIDLength])
	if verr := ValidatePaymentID(paymentID); verr != nil {
		return "", "", NewError(IntegratedPaymentIDInvalid)
	}

	var spendKey, viewKey Key
	copy(spendKey[:], data[config.PaymentIDLength:config.PaymentIDLength+32])
	copy(viewKey[:], data[config.PaymentIDLength+32:])
	return EncodeAddress(spendKey, viewKey), paymentID, nil
}
