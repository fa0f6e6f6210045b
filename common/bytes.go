// Package common contains various helper functions.
package common

import (
	"encoding/hex"
)

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x". An odd-length string is left-padded with a zero.
// Invalid characters yield nil.
// FromHex 返回十六进制字符串 s 表示的字节。s 可以带 "0x" 前缀。
func FromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return Hex2Bytes(s)
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)

	return
}

// Bytes2Hex returns the hexadecimal encoding of d.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}

// Hex2BytesFixed returns bytes of a specified fixed length flen.
func Hex2BytesFixed(str string, flen int) []byte {
	h, _ := hex.DecodeString(str)
	if len(h) == flen {
		return h
	}
	if len(h) > flen {
		return h[len(h)-flen:]
	}
	hh := make([]byte, flen)
	copy(hh[flen-len(h):flen], h)
	return hh
}

// IsHexString reports whether s is an even-length hex string, with or
// without 0x prefix.
func IsHexString(s string) bool {
	if has0xPrefix(s) {
		s = s[2:]
	}
	return isHex(s)
}

// RightPadBytes zero-pads slice to the right up to length l.
// RightPadBytes 在右侧用零填充切片到长度 l。
func RightPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}

	padded := make([]byte, l)
	copy(padded, slice)

	return padded
}

// LeftPadBytes zero-pads slice to the left up to length l.
// LeftPadBytes 在左侧用零填充切片到长度 l。
func LeftPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}

	padded := make([]byte, l)
	copy(padded[l-len(slice):], slice)

	return padded
}

// TrimLeftZeroes returns a subslice of s without leading zeroes.
// An all-zero input yields an empty slice.
func TrimLeftZeroes(s []byte) []byte {
	idx := 0
	for ; idx < len(s); idx++ {
		if s[idx] != 0 {
			break
		}
	}
	return s[idx:]
}

// TrimLeadingZeros strips leading zero bytes but never returns an empty
// slice: empty or all-zero input trims to a single zero byte. Applying it
// twice gives the same result as applying it once.
//
// TrimLeadingZeros 去除前导零字节，但结果永不为空：空输入或全零输入得到单个零字节。
func TrimLeadingZeros(s []byte) []byte {
	if trimmed := TrimLeftZeroes(s); len(trimmed) > 0 {
		return trimmed
	}
	return []byte{0}
}

// TrimRightZeroes returns a subslice of s without trailing zeroes.
func TrimRightZeroes(s []byte) []byte {
	idx := len(s)
	for ; idx > 0; idx-- {
		if s[idx-1] != 0 {
			break
		}
	}
	return s[:idx]
}
