package common

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"

	"golang.org/x/crypto/sha3"
)

// Base58 codec in the block form cryptocurrency addresses use: input
// is cut into 8-byte chunks, each encoded as a fixed-width big-endian
// base-58 number, so the encoded length is a pure function of the
// input length. Addresses prepend a varint tag and append a 4-byte
// legacy-Keccak checksum before encoding.

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	fullBlockSize        = 8
	fullEncodedBlockSize = 11
	addrChecksumSize     = 4
)

// encodedBlockSizes[n] is the encoded width of an n-byte block.
var encodedBlockSizes = [fullBlockSize + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

var base58Reverse [256]int8

var (
	// ErrInvalidBase58 ...
	ErrInvalidBase58 = errors.New("invalid base58 string")
	// ErrChecksumMismatch ...
	ErrChecksumMismatch = errors.New("address checksum mismatch")
)

func init() {
	for i := range base58Reverse {
		base58Reverse[i] = -1
	}
	for i := 0; i < len(base58Alphabet); i++ {
		base58Reverse[base58Alphabet[i]] = int8(i)
	}
}

// Base58Encode ...
func Base58Encode(data []byte) string {
	out := make([]byte, 0, (len(data)+fullBlockSize-1)/fullBlockSize*fullEncodedBlockSize)
	for len(data) > 0 {
		n := len(data)
		if n > fullBlockSize {
			n = fullBlockSize
		}
		out = appendEncodedBlock(out, data[:n])
		data = data[n:]
	}
	return string(out)
}

// Base58Decode ...
func Base58Decode(enc string) ([]byte, error) {
	out := make([]byte, 0, len(enc)*fullBlockSize/fullEncodedBlockSize+fullBlockSize)
	for len(enc) > 0 {
		n := len(enc)
		if n > fullEncodedBlockSize {
			n = fullEncodedBlockSize
		}
		block, err := decodeBlock(enc[:n])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		enc = enc[n:]
	}
	return out, nil
}

// Base58EncodeAddr encodes varint(tag) || data with a trailing
// checksum over both.
func Base58EncodeAddr(tag uint64, data []byte) string {
	varint := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(varint, tag)
	body := make([]byte, 0, n+len(data)+addrChecksumSize)
	body = append(body, varint[:n]...)
	body = append(body, data...)
	body = append(body, addrChecksum(body)...)
	return Base58Encode(body)
}

// Base58DecodeAddr verifies the checksum and splits the tag off the
// payload.
func Base58DecodeAddr(addr string) (uint64, []byte, error) {
	raw, err := Base58Decode(addr)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) <= addrChecksumSize {
		return 0, nil, ErrInvalidBase58
	}
	body := raw[:len(raw)-addrChecksumSize]
	sum := raw[len(raw)-addrChecksumSize:]
	if !bytes.Equal(addrChecksum(body), sum) {
		return 0, nil, ErrChecksumMismatch
	}
	tag, n := binary.Uvarint(body)
	if n <= 0 {
		return 0, nil, ErrInvalidBase58
	}
	return tag, body[n:], nil
}

func appendEncodedBlock(out, block []byte) []byte {
	var num uint64
	for _, b := range block {
		num = num<<8 | uint64(b)
	}
	size := encodedBlockSizes[len(block)]
	buf := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		buf[i] = base58Alphabet[num%58]
		num /= 58
	}
	return append(out, buf...)
}

func decodeBlock(enc string) ([]byte, error) {
	size := -1
	for i, s := range encodedBlockSizes {
		if s == len(enc) {
			size = i
			break
		}
	}
	if size < 1 {
		return nil, ErrInvalidBase58
	}
	var num uint64
	for i := 0; i < len(enc); i++ {
		digit := base58Reverse[enc[i]]
		if digit < 0 {
			return nil, ErrInvalidBase58
		}
		if num > (math.MaxUint64-uint64(digit))/58 {
			return nil, ErrInvalidBase58
		}
		num = num*58 + uint64(digit)
	}
	if size < fullBlockSize && num >= uint64(1)<<(8*size) {
		return nil, ErrInvalidBase58
	}
	buf := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		buf[i] = byte(num)
		num >>= 8
	}
	return buf, nil
}

func addrChecksum(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)[:addrChecksumSize]
}
