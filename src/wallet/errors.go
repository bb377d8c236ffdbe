package wallet

import "fmt"

// ErrorCode identifies the reason a wallet operation was rejected.
type ErrorCode int

const (
	MixinTooSmall ErrorCode = iota + 1
	MixinTooBig
	ConflictingPaymentIDs
	HashWrongLength
	HashInvalid
	PaymentIDWrongLength
	PaymentIDInvalid
	InvalidPrivateKey
	InvalidPublicKey
	FeeTooSmall
	WillOverflow
	NotEnoughBalance
	NoDestinationsGiven
	AmountIsZero
	AddressWrongLength
	AddressWrongPrefix
	AddressIsIntegrated
	AddressNotBase58
	AddressNotValid
	AddressNotInWallet
	IntegratedPaymentIDInvalid
	AmountUgly
)

var errorMessages = map[ErrorCode]string{
	MixinTooSmall:              "mixin is below the minimum allowed at this height",
	MixinTooBig:                "mixin is above the maximum allowed at this height",
	ConflictingPaymentIDs:      "destinations carry conflicting payment IDs",
	HashWrongLength:            "hash is not 64 characters",
	HashInvalid:                "hash is not hex encoded",
	PaymentIDWrongLength:       "payment ID is not 64 characters",
	PaymentIDInvalid:           "payment ID is not hex encoded",
	InvalidPrivateKey:          "private key is not a canonical scalar",
	InvalidPublicKey:           "public key is not a valid curve point",
	FeeTooSmall:                "fee is below the network minimum",
	WillOverflow:               "transaction amounts sum beyond the representable range",
	NotEnoughBalance:           "not enough unlocked balance to cover the transaction",
	NoDestinationsGiven:        "no destinations given",
	AmountIsZero:               "destination amount is zero",
	AddressWrongLength:         "address is the wrong length",
	AddressWrongPrefix:         "address does not carry the network prefix",
	AddressIsIntegrated:        "integrated addresses are not valid for this parameter",
	AddressNotBase58:           "address is not base58 encoded",
	AddressNotValid:            "address does not decode to a valid key pair",
	AddressNotInWallet:         "address does not exist in the wallet container",
	IntegratedPaymentIDInvalid: "integrated address carries an invalid payment ID",
	AmountUgly:                 "optimize target has more than one significant digit",
}

// Error is a rejected wallet operation, carrying a machine-readable
// code and a human-readable message.
type Error struct {
	code    ErrorCode
	message string
}

// NewError returns an Error with the default message for code.
func NewError(code ErrorCode) *Error {
	return &Error{code: code, message: errorMessages[code]}
}

// NewErrorf returns an Error with a custom message.
func NewErrorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func (e *Error) Code() ErrorCode {
	return e.code
}

func (e *Error) Error() string {
	return e.message
}

// Code extracts the ErrorCode from err, or 0 when err is not a wallet
// error.
func Code(err error) ErrorCode {
	if we, ok := err.(*Error); ok {
		return we.code
	}
	return 0
}
