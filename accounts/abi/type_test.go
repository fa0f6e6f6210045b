// Copyright 2015 The go-ethereum Authors
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegexp(t *testing.T) {
	tests := []struct {
		blob    string
		kind    byte
		size    int
		dynamic bool
	}{
		{"int", IntTy, 256, false},
		{"int8", IntTy, 8, false},
		{"int256", IntTy, 256, false},
		{"uint", UintTy, 256, false},
		{"uint40", UintTy, 40, false},
		{"bool", BoolTy, 0, false},
		{"address", AddressTy, 20, false},
		{"string", StringTy, 0, true},
		{"bytes", BytesTy, 0, true},
		{"bytes1", FixedBytesTy, 1, false},
		{"bytes32", FixedBytesTy, 32, false},
		{"uint8[]", SliceTy, 0, true},
		{"uint8[2]", ArrayTy, 2, false},
		{"string[2]", ArrayTy, 2, true},
		{"uint8[][2]", ArrayTy, 2, true},
		{"address[2][]", SliceTy, 0, true},
	}
	for _, tt := range tests {
		typ, err := NewType(tt.blob)
		require.NoError(t, err, tt.blob)
		assert.Equal(t, tt.kind, typ.T, tt.blob)
		assert.Equal(t, tt.size, typ.Size, tt.blob)
		assert.Equal(t, tt.dynamic, typ.IsDynamic(), tt.blob)
	}
}

func TestTypeCanonicalName(t *testing.T) {
	tests := map[string]string{
		"uint":          "uint256",
		"int":           "int256",
		"uint[]":        "uint256[]",
		"int[2][]":      "int256[2][]",
		"bytes4":        "bytes4",
		"address[3][2]": "address[3][2]",
	}
	for in, want := range tests {
		typ, err := NewType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, typ.String())
	}
	assert.True(t, MustNewType("uint").Equal(MustNewType("uint256")))
	assert.False(t, MustNewType("uint8").Equal(MustNewType("int8")))
}

func TestInvalidTypes(t *testing.T) {
	for _, blob := range []string{
		"", "uint7", "uint0", "uint264", "int9", "uint08",
		"bytes0", "bytes33", "bool8", "address20", "string1",
		"foo", "Uint8", "uint8[", "uint8]", "uint8[0]", "uint8[-1]", "uint8[a]",
	} {
		_, err := NewType(blob)
		require.Error(t, err, blob)
		assert.True(t, errors.Is(err, ErrInvalidType), "%q: %v", blob, err)
	}
	assert.Panics(t, func() { MustNewType("uint7") })
}

func TestTypeHeadSize(t *testing.T) {
	assert.Equal(t, 32, MustNewType("uint8").headSize())
	assert.Equal(t, 32, MustNewType("bytes").headSize())
	assert.Equal(t, 96, MustNewType("uint8[3]").headSize())
	assert.Equal(t, 192, MustNewType("uint8[3][2]").headSize())
	assert.Equal(t, 32, MustNewType("string[3]").headSize())
	assert.Equal(t, 32, MustNewType("uint8[3][]").headSize())
}
