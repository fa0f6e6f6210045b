package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/sunyihoo/ethcodec/common/hexutil"
	"golang.org/x/crypto/sha3"
)

// Lengths of hashes and addresses in bytes.
const (
	// HashLength is the expected length of the hash
	HashLength = 32
	// AddressLength is the expected length of the address
	AddressLength = 20
)

var (
	// ErrInvalidHex is returned when an address string is not 40 hex characters,
	// optionally prefixed with 0x.
	// ErrInvalidHex 在地址字符串不是 40 个十六进制字符（可带 0x 前缀）时返回。
	ErrInvalidHex = errors.New("invalid hex address")

	// ErrChecksumMismatch is returned when the mixed-case EIP-55 checksum of an
	// address does not verify.
	// ErrChecksumMismatch 在地址的 EIP-55 大小写校验和验证失败时返回。
	ErrChecksumMismatch = errors.New("address checksum mismatch")
)

// Hash represents the 32 byte Keccak256 hash of arbitrary data.
// Hash 表示任意数据的 32 字节 Keccak256 哈希。
type Hash [HashLength]byte

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// BigToHash sets byte representation of b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BigToHash(b *big.Int) Hash { return BytesToHash(b.Bytes()) }

// HexToHash sets byte representation of s to hash.
// If b is larger than len(h), b will be cropped from the left.
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Big converts a hash to a big integer.
func (h Hash) Big() *big.Int { return new(big.Int).SetBytes(h[:]) }

// Hex converts a hash to a hex string.
func (h Hash) Hex() string { return hexutil.Encode(h[:]) }

// String implements the stringer interface and is used also by the logger when
// doing full logging into a file.
func (h Hash) String() string {
	return h.Hex()
}

// TerminalString implements log.TerminalStringer, formatting a string for console
// output during logging.
// TerminalString 为终端日志输出生成缩短的哈希字符串。
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x..%x", h[:3], h[29:])
}

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Hash", input, h[:])
}

/////////// Address

// Address represents the 20 byte address of an Ethereum account.
// Address 表示以太坊账户的 20 字节地址。
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress returns Address with byte values of s.
// If s is larger than len(h), s will be cropped from the left.
// Malformed input is not reported; use NewAddressFromHex for validation.
func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

// NewAddressFromHex parses a 40 character hex string, optionally prefixed
// with 0x. When eip55 is set the string must carry a valid EIP-55 mixed-case
// checksum.
//
// NewAddressFromHex 解析 40 个字符的十六进制字符串（可带 0x 前缀）。
// 当 eip55 为 true 时，字符串必须带有有效的 EIP-55 大小写校验和。
func NewAddressFromHex(s string, eip55 bool) (Address, error) {
	var a Address
	switch len(s) {
	case 2 * AddressLength:
	case 2*AddressLength + 2:
		if !has0xPrefix(s) || s[1] == 'X' {
			return a, fmt.Errorf("%w: bad prefix in %q", ErrInvalidHex, s)
		}
		s = s[2:]
	default:
		return a, fmt.Errorf("%w: %q has length %d", ErrInvalidHex, s, len(s))
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	if eip55 && string(a.checksumHex()[2:]) != s {
		return Address{}, fmt.Errorf("%w: %s", ErrChecksumMismatch, s)
	}
	return a, nil
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// Ethereum address or not.
func IsHexAddress(s string) bool {
	_, err := NewAddressFromHex(s, false)
	return err == nil
}

// Bytes gets the string representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// Big converts an address to a big integer.
func (a Address) Big() *big.Int { return new(big.Int).SetBytes(a[:]) }

// Hex returns an EIP55-compliant hex string representation of the address.
func (a Address) Hex() string {
	return string(a.checksumHex())
}

// Lower returns the lower-case hex form of the address, with 0x prefix.
// Lower 返回小写的十六进制地址（带 0x 前缀）。
func (a Address) Lower() string {
	return hexutil.Encode(a[:])
}

// Format renders the address either checksummed or in lower case.
func (a Address) Format(eip55 bool) string {
	if eip55 {
		return a.Hex()
	}
	return a.Lower()
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.Hex()
}

// checksumHex applies the EIP-55 casing rule: a letter is upper-cased when
// the matching nibble of keccak256(lower-case hex) is 8 or more.
// checksumHex 按 EIP-55 规则生成大小写：若 keccak256(小写十六进制) 对应半字节 >= 8，则字母大写。
func (a *Address) checksumHex() []byte {
	buf := a.hex()

	sha := sha3.NewLegacyKeccak256()
	sha.Write(buf[2:])
	hash := sha.Sum(nil)
	for i := 2; i < len(buf); i++ {
		hashByte := hash[(i-2)/2]
		if i%2 == 0 {
			hashByte = hashByte >> 4
		} else {
			hashByte &= 0xf
		}
		if buf[i] > '9' && hashByte > 7 {
			buf[i] -= 32
		}
	}
	return buf[:]
}

func (a Address) hex() []byte {
	var buf [len(a)*2 + 2]byte
	copy(buf[:2], "0x")
	hex.Encode(buf[2:], a[:])
	return buf[:]
}

// SetBytes sets the address to the value of b.
// If b is larger than len(a), b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText parses a hash in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// UnprefixedAddress allows marshaling an Address without 0x prefix.
type UnprefixedAddress Address

// UnmarshalText decodes the address from hex. The 0x prefix is optional.
func (a *UnprefixedAddress) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedUnprefixedText("UnprefixedAddress", input, a[:])
}

// MarshalText encodes the address as hex.
func (a UnprefixedAddress) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(a[:])), nil
}

// has0xPrefix validates str begins with '0x' or '0X'.
func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func isHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	return strings.Trim(strings.ToLower(str), "0123456789abcdef") == ""
}
