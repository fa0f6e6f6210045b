// Copyright 2018 The go-ethereum Authors
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

package apitypes

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/common/value"
	"github.com/sunyihoo/ethcodec/crypto"
)

const mailJSON = `{
  "types": {
    "EIP712Domain": [
      {"name": "name", "type": "string"},
      {"name": "version", "type": "string"},
      {"name": "chainId", "type": "uint256"},
      {"name": "verifyingContract", "type": "address"}
    ],
    "Person": [
      {"name": "name", "type": "string"},
      {"name": "wallet", "type": "address"}
    ],
    "Mail": [
      {"name": "from", "type": "Person"},
      {"name": "to", "type": "Person"},
      {"name": "contents", "type": "string"}
    ]
  },
  "primaryType": "Mail",
  "domain": {
    "name": "Ether Mail",
    "version": "1",
    "chainId": 1,
    "verifyingContract": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
  },
  "message": {
    "from": {"name": "Cow", "wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"},
    "to": {"name": "Bob", "wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"},
    "contents": "Hello, Bob!"
  }
}`

func loadMail(t *testing.T) TypedData {
	t.Helper()
	var td TypedData
	require.NoError(t, json.Unmarshal([]byte(mailJSON), &td))
	return td
}

// withField returns a copy of the message with one leaf replaced.
func withField(t *testing.T, msg value.Value, path []string, v value.Value) value.Value {
	t.Helper()
	obj, ok := msg.Object()
	require.True(t, ok)
	if len(path) == 1 {
		obj[path[0]] = v
	} else {
		obj[path[0]] = withField(t, obj[path[0]], path[1:], v)
	}
	return value.Object(obj)
}

func TestMailVectors(t *testing.T) {
	td := loadMail(t)

	enc, err := td.EncodeType("Mail")
	require.NoError(t, err)
	assert.Equal(t, "Mail(Person from,Person to,string contents)Person(string name,address wallet)", enc)

	typeHash, err := td.TypeHash("Mail")
	require.NoError(t, err)
	assert.Equal(t, "0xa0cedeb2dc280ba39b857546d74f5549c3a1d7bdc2dd96bf881f76108e23dac2", typeHash.Hex())

	domain, err := td.DomainSeparator()
	require.NoError(t, err)
	assert.Equal(t, "0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f", domain.Hex())

	structHash, err := td.HashStruct("Mail", td.Message)
	require.NoError(t, err)
	assert.Equal(t, "0xc52c0ee5d84264471806290a3f2c4cecfc5490626bf912d01f240d7a274b371e", structHash.Hex())

	digest, raw, err := TypedDataAndHash(td)
	require.NoError(t, err)
	assert.Equal(t, "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2", hexutil.Encode(digest))
	assert.Equal(t, "\x19\x01"+string(domain[:])+string(structHash[:]), raw)
}

func TestEncodeDataLayout(t *testing.T) {
	td := loadMail(t)
	from, ok := td.Message.Get("from")
	require.True(t, ok)
	enc, err := td.EncodeData("Person", from)
	require.NoError(t, err)
	require.Len(t, enc, 3*32)

	typeHash, _ := td.TypeHash("Person")
	assert.Equal(t, typeHash[:], enc[:32])
	assert.Equal(t, crypto.Keccak256([]byte("Cow")), enc[32:64])
	assert.Equal(t, common.LeftPadBytes(common.FromHex("cd2a3d9f938e13cd947ec05abc7fe734df8dd826"), 32), enc[64:])
}

func TestDerivedDomainType(t *testing.T) {
	td := loadMail(t)
	want, err := td.DomainSeparator()
	require.NoError(t, err)

	delete(td.Types, "EIP712Domain")
	got, err := td.DomainSeparator()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	enc, err := td.EncodeType("EIP712Domain")
	require.NoError(t, err)
	assert.Equal(t, "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)", enc)
}

func TestDigestAvalanche(t *testing.T) {
	td := loadMail(t)
	base, _, err := TypedDataAndHash(td)
	require.NoError(t, err)

	again, _, err := TypedDataAndHash(loadMail(t))
	require.NoError(t, err)
	assert.Equal(t, base, again)

	changes := []struct {
		path []string
		val  value.Value
	}{
		{[]string{"contents"}, value.String("Hello, Bob?")},
		{[]string{"from", "name"}, value.String("Cow2")},
		{[]string{"to", "wallet"}, value.String("0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbC")},
	}
	for _, c := range changes {
		mod := loadMail(t)
		mod.Message = withField(t, mod.Message, c.path, c.val)
		digest, _, err := TypedDataAndHash(mod)
		require.NoError(t, err, strings.Join(c.path, "."))
		assert.NotEqual(t, base, digest, strings.Join(c.path, "."))
	}

	mod := loadMail(t)
	mod.Domain.ChainId.ToInt().SetInt64(5)
	digest, _, err := TypedDataAndHash(mod)
	require.NoError(t, err)
	assert.NotEqual(t, base, digest)
}

func TestDependenciesCycle(t *testing.T) {
	td := TypedData{
		Types: Types{
			"A": {{Name: "b", Type: "B"}, {Name: "n", Type: "uint8"}},
			"B": {{Name: "a", Type: "A[]"}, {Name: "c", Type: "C"}},
			"C": {{Name: "s", Type: "string"}},
		},
	}
	deps, err := td.Dependencies("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, deps)

	enc, err := td.EncodeType("B")
	require.NoError(t, err)
	assert.Equal(t, "B(A[] a,C c)A(B b,uint8 n)C(string s)", enc)

	deps, err = td.Dependencies("C[2]")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, deps)
}

func TestUnknownType(t *testing.T) {
	td := TypedData{Types: Types{"A": {{Name: "x", Type: "Missing"}}}}
	_, err := td.Dependencies("A")
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = td.EncodeType("Nope")
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = td.EncodeData("A", value.Object(map[string]value.Value{"x": value.Int(1)}))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.ErrorIs(t, td.Types.validate(), ErrUnknownType)

	mail := loadMail(t)
	mail.PrimaryType = "Letter"
	_, _, err = TypedDataAndHash(mail)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMissingField(t *testing.T) {
	td := loadMail(t)
	obj, _ := td.Message.Object()
	delete(obj, "contents")
	td.Message = value.Object(obj)

	_, _, err := TypedDataAndHash(td)
	require.ErrorIs(t, err, ErrMissingField)
	var tde *TypedDataError
	require.True(t, errors.As(err, &tde))
	assert.Equal(t, "Mail", tde.Type)
	assert.Equal(t, "contents", tde.Field)

	td = loadMail(t)
	td.Message = withField(t, td.Message, []string{"to", "wallet"}, value.Null())
	_, _, err = TypedDataAndHash(td)
	assert.ErrorIs(t, err, ErrMissingField)

	td = loadMail(t)
	td.Domain = TypedDataDomain{}
	_, _, err = TypedDataAndHash(td)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestExpectedObject(t *testing.T) {
	td := loadMail(t)
	td.Message = withField(t, td.Message, []string{"from"}, value.String("Cow"))
	_, _, err := TypedDataAndHash(td)
	assert.ErrorIs(t, err, ErrExpectedObject)
}

func TestFieldValues(t *testing.T) {
	td := TypedData{Types: Types{"T": {{Name: "v", Type: "uint40"}}}}
	hashOf := func(v value.Value) (common.Hash, error) {
		return td.HashStruct("T", value.Object(map[string]value.Value{"v": v}))
	}
	want, err := hashOf(value.Int(16))
	require.NoError(t, err)
	for _, v := range []value.Value{value.String("16"), value.String("0x10"), value.Float(16)} {
		got, err := hashOf(v)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, v := range []value.Value{
		value.String("abc"),
		value.Bool(true),
		value.Float(1.5),
		value.Int(-1),
		value.String("0x10000000000"), // 2^40
	} {
		_, err := hashOf(v)
		assert.ErrorIs(t, err, ErrInvalidFieldValue, "%#v", v)
	}
}

func TestLargeIntegerFields(t *testing.T) {
	td := TypedData{Types: Types{"T": {{Name: "amount", Type: "uint256"}}}}
	hashOf := func(msg string) (common.Hash, error) {
		var v value.Value
		require.NoError(t, json.Unmarshal([]byte(msg), &v))
		return td.HashStruct("T", v)
	}
	h1, err := hashOf(`{"amount":18446744073709551617}`)
	require.NoError(t, err)
	h2, err := hashOf(`{"amount":18446744073709551616}`)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "amounts beyond 64 bits must not round")

	h3, err := hashOf(`{"amount":"18446744073709551617"}`)
	require.NoError(t, err)
	assert.Equal(t, h1, h3)

	for _, msg := range []string{`{"amount":1e30}`, `{"amount":1.5}`, `{"amount":18446744073709551616.5}`} {
		_, err := hashOf(msg)
		assert.ErrorIs(t, err, ErrInvalidFieldValue, msg)
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e30} {
		_, err := td.HashStruct("T", value.Object(map[string]value.Value{"amount": value.Float(f)}))
		assert.ErrorIs(t, err, ErrInvalidFieldValue, "%v", f)
	}
}

func TestPrimitiveEncodings(t *testing.T) {
	tests := []struct {
		typ  string
		val  value.Value
		want []byte
	}{
		{"bool", value.Bool(true), common.LeftPadBytes([]byte{1}, 32)},
		{"int8", value.Int(-1), common.FromHex(strings.Repeat("ff", 32))},
		{"bytes4", value.String("0x01020304"), common.RightPadBytes([]byte{1, 2, 3, 4}, 32)},
		{"bytes4", value.String("ab"), common.RightPadBytes([]byte("ab"), 32)},
		{"bytes", value.String("0x0102"), crypto.Keccak256([]byte{1, 2})},
		{"bytes", value.String("hello"), crypto.Keccak256([]byte("hello"))},
		{"string", value.String(""), crypto.Keccak256(nil)},
	}
	for _, tt := range tests {
		td := TypedData{Types: Types{"T": {{Name: "v", Type: tt.typ}}}}
		enc, err := td.EncodeData("T", value.Object(map[string]value.Value{"v": tt.val}))
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.want, enc[32:], tt.typ)
	}

	td := TypedData{Types: Types{"T": {{Name: "v", Type: "bytes2"}}}}
	_, err := td.EncodeData("T", value.Object(map[string]value.Value{"v": value.String("0x010203")}))
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestInvalidTypeSuffix(t *testing.T) {
	for _, typ := range []string{"uint7", "int264", "bytes33", "bool8"} {
		td := TypedData{Types: Types{"T": {{Name: "v", Type: typ}}}}
		_, err := td.EncodeData("T", value.Object(map[string]value.Value{"v": value.Int(1)}))
		assert.ErrorIs(t, err, ErrInvalidType, typ)
		assert.ErrorIs(t, td.Types.validate(), ErrInvalidType, typ)
	}
}

func TestArrays(t *testing.T) {
	td := loadMail(t)
	td.Types["Group"] = []Type{
		{Name: "members", Type: "Person[]"},
		{Name: "ids", Type: "uint8[2]"},
	}
	from, _ := td.Message.Get("from")
	to, _ := td.Message.Get("to")
	group := value.Object(map[string]value.Value{
		"members": value.Array(from, to),
		"ids":     value.Array(value.Int(1), value.Int(2)),
	})
	enc, err := td.EncodeData("Group", group)
	require.NoError(t, err)
	require.Len(t, enc, 3*32)

	fromHash, err := td.HashStruct("Person", from)
	require.NoError(t, err)
	toHash, err := td.HashStruct("Person", to)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256(fromHash[:], toHash[:]), enc[32:64])
	assert.Equal(t, crypto.Keccak256(common.LeftPadBytes([]byte{1}, 32), common.LeftPadBytes([]byte{2}, 32)), enc[64:])

	typeEnc, err := td.EncodeType("Group")
	require.NoError(t, err)
	assert.Equal(t, "Group(Person[] members,uint8[2] ids)Person(string name,address wallet)", typeEnc)

	bad := value.Object(map[string]value.Value{
		"members": value.Array(from),
		"ids":     value.Array(value.Int(1)),
	})
	_, err = td.EncodeData("Group", bad)
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestFormat(t *testing.T) {
	td := loadMail(t)
	nvts, err := td.Format()
	require.NoError(t, err)
	require.Len(t, nvts, 2)
	out := nvts[1].Pprint(0)
	assert.Contains(t, out, "Cow")
	assert.Contains(t, out, "Hello, Bob!")
	assert.Contains(t, nvts[0].Pprint(0), "1 (0x1)")
}
