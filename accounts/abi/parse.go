// Copyright 2022 The go-ethereum Authors
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
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/common/math"
	"github.com/sunyihoo/ethcodec/common/value"
)

// ParseValue converts the textual form of a value into a Value of type t.
// Integers are decimal or 0x hex with an optional minus sign, bytes are 0x
// hex, and arrays are JSON arrays whose elements follow the same rules.
//
// ParseValue 将值的文本形式转换为类型 t 的 Value，供命令行使用。
func ParseValue(t Type, s string) (Value, error) {
	switch t.T {
	case SliceTy, ArrayTy:
		var arr value.Value
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return Value{}, mismatch(t, s, "invalid JSON array: %v", err)
		}
		return fromTagged(t, arr)
	case StringTy:
		return NewValue(t, s)
	}
	return parseScalar(t, s)
}

func parseScalar(t Type, s string) (Value, error) {
	switch t.T {
	case IntTy, UintTy:
		neg := strings.HasPrefix(s, "-")
		n, ok := math.ParseBig256(strings.TrimPrefix(s, "-"))
		if !ok || s == "" || s == "-" {
			return Value{}, mismatch(t, s, "invalid integer")
		}
		if neg {
			n = new(big.Int).Neg(n)
		}
		return NewValue(t, n)
	case BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, mismatch(t, s, "invalid bool")
		}
		return NewValue(t, b)
	case AddressTy:
		return NewValue(t, s)
	case BytesTy, FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return Value{}, mismatch(t, s, "%v", err)
		}
		return NewValue(t, b)
	case StringTy:
		return NewValue(t, s)
	}
	return Value{}, mismatch(t, s, "unknown type %d", t.T)
}

// fromTagged converts an element decoded from JSON.
func fromTagged(t Type, v value.Value) (Value, error) {
	switch v.Kind() {
	case value.KindArray:
		if t.T != SliceTy && t.T != ArrayTy {
			return Value{}, mismatch(t, v, "unexpected array")
		}
		arr, _ := v.Array()
		elems := make([]Value, len(arr))
		for i, e := range arr {
			ev, err := fromTagged(*t.Elem, e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return NewValue(t, elems)
	case value.KindString:
		s, _ := v.Str()
		if t.T == StringTy {
			return NewValue(t, s)
		}
		return parseScalar(t, s)
	case value.KindInt:
		i, _ := v.Int()
		return NewValue(t, i)
	case value.KindBool:
		b, _ := v.Bool()
		return NewValue(t, b)
	}
	return Value{}, mismatch(t, v, "unsupported %s element", v.Kind())
}
