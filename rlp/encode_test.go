// Copyright 2014 The go-ethereum Authors
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

package rlp

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipisicing elit"

type testEncoder struct {
	err error
}

func (e *testEncoder) EncodeRLP(w io.Writer) error {
	if e == nil {
		panic("EncodeRLP called on nil value")
	}
	if e.err != nil {
		return e.err
	}
	w.Write([]byte{0, 1, 0, 1, 0, 1, 0, 1, 0, 1})
	return nil
}

type encTest struct {
	val           interface{}
	output, error string
}

var encTests = []encTest{
	// booleans
	{val: true, output: "01"},
	{val: false, output: "80"},

	// integers
	{val: uint32(0), output: "80"},
	{val: uint32(127), output: "7F"},
	{val: uint32(128), output: "8180"},
	{val: uint32(256), output: "820100"},
	{val: uint32(1024), output: "820400"},
	{val: uint32(0xFFFFFF), output: "83FFFFFF"},
	{val: uint32(0xFFFFFFFF), output: "84FFFFFFFF"},
	{val: uint64(0xFFFFFFFFFF), output: "85FFFFFFFFFF"},
	{val: uint64(0xFFFFFFFFFFFFFFFF), output: "88FFFFFFFFFFFFFFFF"},
	{val: 15, output: "0F"},
	{val: -1, error: "rlp: cannot encode negative integer -1"},

	// big integers (should match uint for small values)
	{val: big.NewInt(0), output: "80"},
	{val: big.NewInt(1), output: "01"},
	{val: big.NewInt(127), output: "7F"},
	{val: big.NewInt(128), output: "8180"},
	{val: big.NewInt(0xFFFFFF), output: "83FFFFFF"},
	{
		val:    new(big.Int).SetBytes(unhex("102030405060708090A0B0C0D0E0F2")),
		output: "8F102030405060708090A0B0C0D0E0F2",
	},
	{val: big.NewInt(-1), error: "rlp: cannot encode negative big integer"},
	{val: (*big.Int)(nil), output: "80"},

	// uint256
	{val: uint256.NewInt(0), output: "80"},
	{val: uint256.NewInt(0xFFFFFF), output: "83FFFFFF"},
	{
		val:    new(uint256.Int).SetBytes(unhex("102030405060708090A0B0C0D0E0F2")),
		output: "8F102030405060708090A0B0C0D0E0F2",
	},

	// byte arrays and slices
	{val: [0]byte{}, output: "80"},
	{val: [1]byte{0}, output: "00"},
	{val: [1]byte{1}, output: "01"},
	{val: [1]byte{0x7F}, output: "7F"},
	{val: [1]byte{0x80}, output: "8180"},
	{val: [3]byte{1, 2, 3}, output: "83010203"},
	{val: []byte{}, output: "80"},
	{val: []byte{0}, output: "00"},
	{val: []byte{0x7E}, output: "7E"},
	{val: []byte{0x80}, output: "8180"},
	{val: []byte{1, 2, 3}, output: "83010203"},

	// strings
	{val: "", output: "80"},
	{val: "\x7E", output: "7E"},
	{val: "\x7F", output: "7F"},
	{val: "\x80", output: "8180"},
	{val: "dog", output: "83646F67"},
	{val: lorem, output: "B838" + strings.ToUpper(fmt.Sprintf("%x", lorem))},

	// slices
	{val: []uint{}, output: "C0"},
	{val: []uint{1, 2, 3}, output: "C3010203"},
	{val: []string{"cat", "dog"}, output: "C88363617483646F67"},
	{
		// [ [], [[]], [ [], [[]] ] ]
		val:    []interface{}{[]interface{}{}, [][]interface{}{{}}, []interface{}{[]interface{}{}, [][]interface{}{{}}}},
		output: "C7C0C1C0C3C0C1C0",
	},
	{
		val:    []string{lorem, lorem},
		output: "F874B838" + strings.ToUpper(fmt.Sprintf("%x", lorem)) + "B838" + strings.ToUpper(fmt.Sprintf("%x", lorem)),
	},

	// items
	{val: NewList(), output: "C0"},
	{val: NewString("dog"), output: "83646F67"},
	{val: NewList(NewString("cat"), NewString("dog")), output: "C88363617483646F67"},
	{val: NewUint(1024), output: "820400"},
	{val: []Item{NewUint(0), NewBytes([]byte{0})}, output: "C28000"},

	// RawValue
	{val: RawValue(unhex("01")), output: "01"},
	{val: []RawValue{unhex("01"), unhex("02")}, output: "C20102"},

	// Encoder
	{val: (*testEncoder)(nil), output: "80"},
	{val: &testEncoder{}, output: "00010001000100010001"},
	{val: &testEncoder{errors.New("test error")}, error: "test error"},

	// nil and pointers
	{val: nil, output: "80"},
	{val: (*uint)(nil), output: "80"},
	{val: (*string)(nil), output: "80"},

	// unsupported
	{val: struct{}{}, error: "rlp: type struct {} is not RLP-serializable"},
	{val: 1.5, error: "rlp: type float64 is not RLP-serializable"},
}

func unhex(str string) []byte {
	b, err := hex.DecodeString(str)
	if err != nil {
		panic(fmt.Sprintf("invalid hex string: %q", str))
	}
	return b
}

func runEncTests(t *testing.T, f func(val interface{}) ([]byte, error)) {
	for i, test := range encTests {
		output, err := f(test.val)
		if err != nil && test.error == "" {
			t.Errorf("test %d: unexpected error: %v\nvalue %#v\ntype %T", i, err, test.val, test.val)
			continue
		}
		if test.error != "" && fmt.Sprint(err) != test.error {
			t.Errorf("test %d: error mismatch\ngot   %v\nwant  %v\nvalue %#v\ntype  %T", i, err, test.error, test.val, test.val)
			continue
		}
		if err == nil && !bytes.Equal(output, unhex(test.output)) {
			t.Errorf("test %d: output mismatch:\ngot   %X\nwant  %s\nvalue %#v\ntype  %T", i, output, test.output, test.val, test.val)
		}
	}
}

func TestEncode(t *testing.T) {
	runEncTests(t, func(val interface{}) ([]byte, error) {
		b := new(bytes.Buffer)
		err := Encode(b, val)
		return b.Bytes(), err
	})
}

func TestEncodeToBytes(t *testing.T) {
	runEncTests(t, EncodeToBytes)
}

func TestEncodeItemSizes(t *testing.T) {
	items := []Item{
		NewList(),
		NewString(lorem),
		NewList(NewString(lorem), NewString(lorem)),
		NewList(NewList(), NewList(NewList()), NewBytes(make([]byte, 1000))),
	}
	for _, it := range items {
		enc := EncodeItem(it)
		assert.Equal(t, uint64(len(enc)), it.size(), it.String())
	}
}

func TestAppendUint64(t *testing.T) {
	tests := []struct {
		input  uint64
		slice  []byte
		output string
	}{
		{0, nil, "80"},
		{1, nil, "01"},
		{2, nil, "02"},
		{127, nil, "7F"},
		{128, nil, "8180"},
		{129, nil, "8181"},
		{0xFFFFFF, nil, "83FFFFFF"},
		{127, []byte{1, 2, 3}, "0102037F"},
		{0xFFFFFF, []byte{1, 2, 3}, "01020383FFFFFF"},
	}
	for _, test := range tests {
		x := AppendUint64(test.slice, test.input)
		assert.Equal(t, unhex(test.output), x, "AppendUint64(%v, %d)", test.slice, test.input)

		// Check that IntSize returns the appended size.
		length := len(x) - len(test.slice)
		assert.Equal(t, length, IntSize(test.input))
	}
}

func TestEncodeToBytesReuse(t *testing.T) {
	// encoders share pooled buffers; results must not alias each other
	a, err := EncodeToBytes("dog")
	require.NoError(t, err)
	b, err := EncodeToBytes([]string{"cat", "dog"})
	require.NoError(t, err)
	assert.Equal(t, unhex("83646f67"), a)
	assert.Equal(t, unhex("c88363617483646f67"), b)
}
