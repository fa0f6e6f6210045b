// Copyright 2024 The go-ethereum Authors
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
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/ethcodec/common"
)

func TestNewValueRanges(t *testing.T) {
	tests := []struct {
		typ string
		val interface{}
		ok  bool
	}{
		{"uint8", 255, true},
		{"uint8", 256, false},
		{"uint8", -1, false},
		{"int8", -128, true},
		{"int8", 127, true},
		{"int8", 128, false},
		{"int8", -129, false},
		{"uint40", new(big.Int).Lsh(common.Big1, 40), false},
		{"uint40", new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 40), common.Big1), true},
		{"uint256", uint256.NewInt(7), true},
		{"uint64", uint64(1<<63 + 5), true},
		{"int256", new(big.Int).Neg(new(big.Int).Lsh(common.Big1, 255)), true},
		{"uint256", "1", false},
		{"bool", 1, false},
		{"bool", true, true},
		{"string", []byte("x"), false},
		{"bytes", []byte("x"), true},
		{"bytes3", [3]byte{1, 2, 3}, true},
		{"bytes3", []byte{1, 2}, false},
		{"address", "0x9F2c4Ea0506EeAb4e4Dc634C1e1F4Be71D0d7531", true},
		{"address", "0x9F2c", false},
		{"address", common.Address{1}, true},
		{"uint8[2]", []int{1, 2}, true},
		{"uint8[2]", []int{1, 2, 3}, false},
		{"uint8[]", []int{1, 2, 3}, true},
		{"uint8[]", []int{1, 256}, false},
		{"uint8[]", 5, false},
	}
	for _, tt := range tests {
		_, err := NewValue(MustNewType(tt.typ), tt.val)
		if tt.ok {
			assert.NoError(t, err, "%s %v", tt.typ, tt.val)
		} else {
			assert.Error(t, err, "%s %v", tt.typ, tt.val)
			assert.True(t, errors.Is(err, ErrEncodingMismatch), "%s %v: %v", tt.typ, tt.val, err)
		}
	}
}

func TestEncodeErrorTagging(t *testing.T) {
	_, err := NewValue(MustNewType("uint16"), "hello")
	var encErr *EncodeError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "uint16", encErr.Type.String())
	assert.Equal(t, "hello", encErr.Value)

	// element errors keep the element type
	_, err = NewValue(MustNewType("bool[]"), []interface{}{true, "no"})
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "bool", encErr.Type.String())
	assert.Contains(t, err.Error(), "element 1")
}

func TestValueTypeMismatch(t *testing.T) {
	_, err := NewValue(MustNewType("uint16"), Uint8(1))
	assert.True(t, errors.Is(err, ErrEncodingMismatch))

	v, err := NewValue(MustNewType("uint8"), Uint8(1))
	require.NoError(t, err)
	assert.Equal(t, "uint8", v.Type().String())
}

func TestFactories(t *testing.T) {
	assert.Equal(t, "uint8", Uint8(1).Type().String())
	assert.Equal(t, "int64", Int64(-1).Type().String())
	assert.Equal(t, "address", Address(common.Address{}).Type().String())

	v, err := UintN(40, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "uint40", v.Type().String())

	_, err = UintN(12, big.NewInt(1))
	assert.True(t, errors.Is(err, ErrInvalidType))
	_, err = IntN(264, big.NewInt(1))
	assert.True(t, errors.Is(err, ErrInvalidType))
	_, err = Uint256(big.NewInt(-1))
	assert.True(t, errors.Is(err, ErrEncodingMismatch))

	fb, err := FixedBytes([]byte{0, 111, 222})
	require.NoError(t, err)
	assert.Equal(t, "bytes3", fb.Type().String())
	_, err = FixedBytes(make([]byte, 33))
	assert.True(t, errors.Is(err, ErrInvalidType))

	arr, err := FixedArray(MustNewType("bool"), Bool(true), Bool(false))
	require.NoError(t, err)
	assert.Equal(t, "bool[2]", arr.Type().String())
	_, err = FixedArray(MustNewType("bool"))
	assert.Error(t, err)

	_, err = Array(MustNewType("bool"), Bool(true), Uint8(1))
	assert.True(t, errors.Is(err, ErrEncodingMismatch))
}

func TestValueIsolation(t *testing.T) {
	b := []byte{1, 2, 3}
	v := Bytes(b)
	b[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, v.Interface())

	n := big.NewInt(5)
	iv, err := Uint256(n)
	require.NoError(t, err)
	n.SetInt64(6)
	assert.Equal(t, int64(5), iv.Interface().(*big.Int).Int64())
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		typ, in string
		want    string
	}{
		{"uint8", "255", "00000000000000000000000000000000000000000000000000000000000000ff"},
		{"int32", "-1200", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb50"},
		{"uint256", "0x0e4e1c00", "000000000000000000000000000000000000000000000000000000000e4e1c00"},
		{"bool", "true", "0000000000000000000000000000000000000000000000000000000000000001"},
		{"bytes3", "0x006fde", "006fde0000000000000000000000000000000000000000000000000000000000"},
		{"uint8[2]", `[1, "0x02"]`, "0000000000000000000000000000000000000000000000000000000000000001" +
			"0000000000000000000000000000000000000000000000000000000000000002"},
	}
	for _, tt := range tests {
		v, err := ParseValue(MustNewType(tt.typ), tt.in)
		require.NoError(t, err, "%s %s", tt.typ, tt.in)
		got, err := Encode(v)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.typ, tt.in)
	}

	for _, bad := range []struct{ typ, in string }{
		{"uint8", "256"},
		{"uint8", "abc"},
		{"uint8", "-"},
		{"bool", "yes please"},
		{"bytes", "0x0"},
		{"uint8[]", "[1,"},
		{"uint8[]", `[true]`},
	} {
		_, err := ParseValue(MustNewType(bad.typ), bad.in)
		assert.Error(t, err, "%s %s", bad.typ, bad.in)
	}
}
