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

package hexutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"testing"
)

var errJSONEOF = errors.New("unexpected end of JSON input")

func checkError(t *testing.T, input string, got, want error) bool {
	if got == nil {
		if want != nil {
			t.Errorf("input %s: got no error, want %q", input, want)
			return false
		}
		return true
	}
	if want == nil {
		t.Errorf("input %s: unexpected error %q", input, got)
	} else if got.Error() != want.Error() {
		t.Errorf("input %s: got error %q, want %q", input, got, want)
	}
	return false
}

func referenceBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid")
	}
	return b
}

func referenceBytes(s string) []byte {
	b, err := hexDecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func hexDecodeString(s string) ([]byte, error) {
	return Decode("0x" + s)
}

var unmarshalBytesTests = []struct {
	input   string
	want    interface{}
	wantErr error
}{
	// invalid encoding
	{input: "", wantErr: errJSONEOF},
	{input: "null", wantErr: errNonString(bytesT)},
	{input: "10", wantErr: errNonString(bytesT)},
	{input: `"0"`, wantErr: wrapTypeError(ErrMissingPrefix, bytesT)},
	{input: `"0x0"`, wantErr: wrapTypeError(ErrOddLength, bytesT)},
	{input: `"0xxx"`, wantErr: wrapTypeError(ErrSyntax, bytesT)},
	{input: `"0x01zz01"`, wantErr: wrapTypeError(ErrSyntax, bytesT)},

	// valid encoding
	{input: `""`, want: referenceBytes("")},
	{input: `"0x"`, want: referenceBytes("")},
	{input: `"0x02"`, want: referenceBytes("02")},
	{input: `"0X02"`, want: referenceBytes("02")},
	{input: `"0xffffffffff"`, want: referenceBytes("ffffffffff")},
	{input: `"0x01020304ff"`, want: referenceBytes("01020304ff")},
}

func TestUnmarshalBytes(t *testing.T) {
	for _, test := range unmarshalBytesTests {
		var v Bytes
		err := json.Unmarshal([]byte(test.input), &v)
		if !checkError(t, test.input, err, test.wantErr) {
			continue
		}
		if !bytes.Equal(test.want.([]byte), v) {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, &v, test.want)
			continue
		}
	}
}

func TestMarshalBytes(t *testing.T) {
	for _, want := range []string{"0x", "0x01", "0xabffcc", "0x01020304ff"} {
		in := MustDecode(want)
		out, err := json.Marshal(Bytes(in))
		if err != nil {
			t.Errorf("%x: %v", in, err)
			continue
		}
		if string(out) != `"`+want+`"` {
			t.Errorf("%x: MarshalJSON output mismatch: got %s, want %q", in, out, want)
		}
		if s := Bytes(in).String(); s != want {
			t.Errorf("%x: String mismatch: got %q, want %q", in, s, want)
		}
	}
}

var unmarshalBigTests = []struct {
	input   string
	want    interface{}
	wantErr error
}{
	// invalid encoding
	{input: "", wantErr: errJSONEOF},
	{input: "null", wantErr: errNonString(bigT)},
	{input: "10", wantErr: errNonString(bigT)},
	{input: `"0"`, wantErr: wrapTypeError(ErrMissingPrefix, bigT)},
	{input: `"0x"`, wantErr: wrapTypeError(ErrEmptyNumber, bigT)},
	{input: `"0xx"`, wantErr: wrapTypeError(ErrSyntax, bigT)},
	{input: `"0x1zz01"`, wantErr: wrapTypeError(ErrSyntax, bigT)},
	{
		input:   `"0x10000000000000000000000000000000000000000000000000000000000000000"`,
		wantErr: wrapTypeError(ErrBig256Range, bigT),
	},

	// valid encoding
	{input: `""`, want: big.NewInt(0), wantErr: wrapTypeError(ErrEmptyString, bigT)},
	{input: `"0x0"`, want: big.NewInt(0)},
	{input: `"0x2"`, want: big.NewInt(0x2)},
	{input: `"0x2F2"`, want: big.NewInt(0x2f2)},
	{input: `"0X2F2"`, want: big.NewInt(0x2f2)},
	{input: `"0x1122aaff"`, want: big.NewInt(0x1122aaff)},
	{input: `"0xbBb"`, want: big.NewInt(0xbbb)},
	{input: `"0xfffffffff"`, want: big.NewInt(0xfffffffff)},
	// leading zero digits are tolerated
	{input: `"0x0123456"`, want: big.NewInt(0x123456)},
	{input: `"0x000abcdef"`, want: big.NewInt(0xabcdef)},
	{
		input: `"0x112233445566778899aabbccddeeff"`,
		want:  referenceBig("112233445566778899aabbccddeeff"),
	},
	{
		input: `"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"`,
		want:  referenceBig("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
	},
}

func TestUnmarshalBig(t *testing.T) {
	for _, test := range unmarshalBigTests {
		var v Big
		err := json.Unmarshal([]byte(test.input), &v)
		if !checkError(t, test.input, err, test.wantErr) {
			continue
		}
		if test.want != nil && test.want.(*big.Int).Cmp((*big.Int)(&v)) != 0 {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, (*big.Int)(&v), test.want)
			continue
		}
	}
}

func TestEncodeBigMinimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x0", "0x0"},
		{"0x00", "0x0"},
		{"0x0123456", "0x123456"},
		{"0x000abcdef", "0xabcdef"},
		{"0x1234", "0x1234"},
	}
	for _, test := range tests {
		dec, err := DecodeBig(test.in)
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if got := EncodeBig(dec); got != test.want {
			t.Errorf("%s: got %s, want %s", test.in, got, test.want)
		}
	}
	if got := EncodeBig(big.NewInt(-255)); got != "-0xff" {
		t.Errorf("negative: got %s", got)
	}
}

func TestUint64RoundTrip(t *testing.T) {
	for _, want := range []uint64{0, 1, 0x1234, 0xffffffffffffffff} {
		enc := EncodeUint64(want)
		got, err := DecodeUint64(enc)
		if err != nil {
			t.Fatalf("%d: %v", want, err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if _, err := DecodeUint64("0x10000000000000000"); err != ErrUint64Range {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range []string{"", "0x"} {
		b, err := Decode(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if len(b) != 0 {
			t.Errorf("%q: expected empty result, got %x", in, b)
		}
	}
	if _, err := Decode("abcd"); err != ErrMissingPrefix {
		t.Errorf("expected missing prefix error, got %v", err)
	}
	if _, err := Decode("0x123"); err != ErrOddLength {
		t.Errorf("expected odd length error, got %v", err)
	}
	if _, err := Decode("//()..."); err != ErrMissingPrefix {
		t.Errorf("expected missing prefix error, got %v", err)
	}
}
