// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/math"
	"github.com/sunyihoo/ethcodec/crypto"
)

// Encode lays out the values as an ABI tuple and returns the hex encoding
// without 0x prefix.
//
// Encode 按 ABI 元组布局编码这些值，返回不带 0x 前缀的十六进制字符串。
func Encode(values ...Value) (string, error) {
	b, err := EncodeBytes(values...)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// EncodeBytes is like Encode but returns the raw bytes.
func EncodeBytes(values ...Value) ([]byte, error) {
	return encodeTuple(values)
}

// EncodeCall prefixes the encoded arguments with the 4 byte selector of the
// given function signature, e.g. "transfer(address,uint256)". The argument
// types must match the signature.
func EncodeCall(signature string, values ...Value) ([]byte, error) {
	open, end := strings.IndexByte(signature, '('), strings.LastIndexByte(signature, ')')
	if open <= 0 || end != len(signature)-1 {
		return nil, fmt.Errorf("%w: malformed signature %q", ErrInvalidType, signature)
	}
	var params []string
	if args := signature[open+1 : end]; args != "" {
		params = strings.Split(args, ",")
	}
	if len(params) != len(values) {
		return nil, fmt.Errorf("abi: %s takes %d arguments, have %d", signature, len(params), len(values))
	}
	for i, p := range params {
		typ, err := NewType(p)
		if err != nil {
			return nil, err
		}
		if !typ.Equal(values[i].typ) {
			return nil, &EncodeError{Type: typ, Value: values[i].val, Err: fmt.Errorf("argument %d has type %s", i, values[i].typ)}
		}
	}
	args, err := encodeTuple(values)
	if err != nil {
		return nil, err
	}
	return append(crypto.Keccak256([]byte(signature))[:4], args...), nil
}

// encodeTuple implements the head/tail layout. Static values are written in
// place, dynamic ones leave an offset into the tail.
func encodeTuple(values []Value) ([]byte, error) {
	tailStart := 0
	for _, v := range values {
		tailStart += v.typ.headSize()
	}
	var head, tail []byte
	for _, v := range values {
		enc, err := v.encode()
		if err != nil {
			return nil, err
		}
		if v.typ.IsDynamic() {
			head = append(head, packNum(big.NewInt(int64(tailStart+len(tail))))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// encode returns the value's own encoding: the in-place words for static
// types, the tail content for dynamic ones.
func (v Value) encode() ([]byte, error) {
	switch v.typ.T {
	case IntTy, UintTy:
		n, ok := v.val.(*big.Int)
		if !ok {
			return nil, &EncodeError{Type: v.typ, Value: v.val, Err: fmt.Errorf("not an integer")}
		}
		word, err := math.Word256(n)
		if err != nil {
			return nil, &EncodeError{Type: v.typ, Value: v.val, Err: err}
		}
		return word[:], nil
	case BoolTy:
		if v.val.(bool) {
			return math.PaddedBigBytes(common.Big1, 32), nil
		}
		return math.PaddedBigBytes(common.Big0, 32), nil
	case AddressTy:
		addr := v.val.(common.Address)
		return common.LeftPadBytes(addr[:], 32), nil
	case FixedBytesTy:
		return common.RightPadBytes(v.val.([]byte), 32), nil
	case BytesTy:
		return packBytesSlice(v.val.([]byte)), nil
	case StringTy:
		return packBytesSlice([]byte(v.val.(string))), nil
	case SliceTy, ArrayTy:
		elems := v.val.([]Value)
		enc, err := encodeTuple(elems)
		if err != nil {
			return nil, err
		}
		// Fixed arrays of static elements are inlined; every other array is
		// dynamic and starts with its element count.
		if !v.typ.IsDynamic() {
			return enc, nil
		}
		return append(packNum(big.NewInt(int64(len(elems)))), enc...), nil
	}
	return nil, &EncodeError{Type: v.typ, Value: v.val, Err: fmt.Errorf("unknown type %d", v.typ.T)}
}

// packNum packs a non-negative integer into a 32 byte word.
func packNum(n *big.Int) []byte {
	return math.PaddedBigBytes(n, 32)
}

// packBytesSlice packs the given bytes as [L, V] as the canonical
// representation of a bytes slice.
func packBytesSlice(bytes []byte) []byte {
	length := packNum(big.NewInt(int64(len(bytes))))
	padded := (len(bytes) + 31) / 32 * 32
	return append(length, common.RightPadBytes(bytes, padded)...)
}
