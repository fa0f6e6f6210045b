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
	"bytes"
	"math/big"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sunyihoo/ethcodec/accounts/abi"
	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/common/math"
	"github.com/sunyihoo/ethcodec/common/value"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/log"
)

var bytes32T = abi.MustNewType("bytes32")

// TypedDataAndHash is a helper function that calculates a hash for typed data conforming to EIP-712.
// This hash can then be safely used to calculate a signature.
//
// See https://eips.ethereum.org/EIPS/eip-712 for the full specification.
//
// hash = keccak256("\x19\x01" || domainSeparator || structHash)
// The pre-image is returned alongside the digest.
func TypedDataAndHash(typedData TypedData) ([]byte, string, error) {
	if err := typedData.Validate(); err != nil {
		return nil, "", err
	}
	domainSeparator, err := typedData.HashStruct(domainType, typedData.Domain.Value())
	if err != nil {
		return nil, "", err
	}
	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, "", err
	}
	rawData := string([]byte{0x19, 0x01}) + string(domainSeparator[:]) + string(typedDataHash[:])
	digest := crypto.Keccak256([]byte(rawData))
	log.Debug("Hashed typed data", "primaryType", typedData.PrimaryType, "domain", domainSeparator, "digest", hexutil.Encode(digest))
	return digest, rawData, nil
}

// DomainSeparator returns the struct hash of the EIP712Domain.
func (typedData *TypedData) DomainSeparator() (common.Hash, error) {
	return typedData.HashStruct(domainType, typedData.Domain.Value())
}

// HashStruct generates a keccak256 hash of the encoding of the provided data
// HashStruct 生成所提供数据的编码的 keccak256 哈希
func (typedData *TypedData) HashStruct(primaryType string, data value.Value) (common.Hash, error) {
	encodedData, err := typedData.EncodeData(primaryType, data)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encodedData), nil
}

// Dependencies returns the struct types reachable from primaryType, the
// type itself first and the rest in discovery order. Array suffixes are
// ignored. A referenced name that is neither a struct nor a primitive fails
// with ErrUnknownType.
//
// Dependencies 返回从 primaryType 可达的结构体类型，自身在前。
func (typedData *TypedData) Dependencies(primaryType string) ([]string, error) {
	var (
		found = mapset.NewThreadUnsafeSet[string]()
		deps  []string
		visit func(name string) error
	)
	visit = func(name string) error {
		if found.Contains(name) {
			return nil
		}
		fields, ok := typedData.fields(name)
		if !ok {
			return &TypedDataError{Kind: ErrUnknownType, Type: name}
		}
		found.Add(name)
		deps = append(deps, name)
		for _, field := range fields {
			dep := field.typeName()
			if _, ok := typedData.fields(dep); !ok && isPrimitiveName(dep) {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(strings.Split(primaryType, "[")[0]); err != nil {
		return nil, err
	}
	return deps, nil
}

// EncodeType generates the following encoding:
// `name ‖ "(" ‖ member₁ ‖ "," ‖ member₂ ‖ "," ‖ … ‖ memberₙ ")"`
//
// each member is written as `type ‖ " " ‖ name`. The referenced struct types
// follow the primary one, sorted by name.
//
// 生成类型的字符串编码 eg: TypeName(type1 name1,type2 name2,...)
func (typedData *TypedData) EncodeType(primaryType string) (string, error) {
	// Get dependencies primary first, then alphabetical
	deps, err := typedData.Dependencies(primaryType)
	if err != nil {
		return "", err
	}
	sort.Strings(deps[1:])

	var buffer strings.Builder
	for _, dep := range deps {
		fields, _ := typedData.fields(dep)
		buffer.WriteString(dep)
		buffer.WriteString("(")
		for i, obj := range fields {
			if i > 0 {
				buffer.WriteString(",")
			}
			buffer.WriteString(obj.Type)
			buffer.WriteString(" ")
			buffer.WriteString(obj.Name)
		}
		buffer.WriteString(")")
	}
	return buffer.String(), nil
}

// TypeHash creates the keccak256 hash of the type encoding.
func (typedData *TypedData) TypeHash(primaryType string) (common.Hash, error) {
	enc, err := typedData.EncodeType(primaryType)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash([]byte(enc)), nil
}

// EncodeData generates the following encoding:
// `typeHash ‖ enc(value₁) ‖ enc(value₂) ‖ … ‖ enc(valueₙ)`
//
// each encoded member is 32-byte long. Structs are replaced by their hash,
// strings, bytes and arrays by the hash of their contents.
//
// EncodeData 生成编码，每个编码成员长度为 32 字节
func (typedData *TypedData) EncodeData(primaryType string, data value.Value) ([]byte, error) {
	fields, ok := typedData.fields(primaryType)
	if !ok {
		return nil, &TypedDataError{Kind: ErrUnknownType, Type: primaryType}
	}
	typeHash, err := typedData.TypeHash(primaryType)
	if err != nil {
		return nil, err
	}
	obj, ok := data.Object()
	if !ok {
		return nil, &TypedDataError{Kind: ErrExpectedObject, Type: primaryType, Value: data}
	}
	values := []abi.Value{hashValue(typeHash)}
	for _, field := range fields {
		encValue, ok := obj[field.Name]
		if !ok || encValue.IsNull() {
			return nil, &TypedDataError{Kind: ErrMissingField, Type: primaryType, Field: field.Name}
		}
		v, err := typedData.encodeField(field.Type, encValue)
		if err != nil {
			if tde, ok := err.(*TypedDataError); ok && tde.Field == "" {
				tde.Field = field.Name
			}
			return nil, err
		}
		values = append(values, v)
	}
	return abi.EncodeBytes(values...)
}

// encodeField renders one member as a static ABI value.
func (typedData *TypedData) encodeField(encType string, encValue value.Value) (abi.Value, error) {
	if strings.HasSuffix(encType, "]") {
		return typedData.encodeArrayValue(encType, encValue)
	}
	if _, ok := typedData.fields(encType); ok {
		hash, err := typedData.HashStruct(encType, encValue)
		if err != nil {
			return abi.Value{}, err
		}
		return hashValue(hash), nil
	}
	if !isPrimitiveName(encType) {
		return abi.Value{}, &TypedDataError{Kind: ErrUnknownType, Type: encType}
	}
	return encodePrimitiveValue(encType, encValue)
}

// encodeArrayValue hashes the concatenated encodings of the elements.
func (typedData *TypedData) encodeArrayValue(encType string, encValue value.Value) (abi.Value, error) {
	i := strings.LastIndexByte(encType, '[')
	if i <= 0 {
		return abi.Value{}, &TypedDataError{Kind: ErrInvalidType, Type: encType}
	}
	elemType, suffix := encType[:i], encType[i+1:len(encType)-1]
	arrayValue, ok := encValue.Array()
	if !ok {
		return abi.Value{}, &TypedDataError{Kind: ErrInvalidFieldValue, Type: encType, Value: encValue}
	}
	if suffix != "" {
		size, err := strconv.Atoi(suffix)
		if err != nil || size <= 0 {
			return abi.Value{}, &TypedDataError{Kind: ErrInvalidType, Type: encType}
		}
		if size != len(arrayValue) {
			return abi.Value{}, &TypedDataError{Kind: ErrInvalidFieldValue, Type: encType, Value: encValue}
		}
	}
	var arrayBuffer bytes.Buffer
	for _, item := range arrayValue {
		v, err := typedData.encodeField(elemType, item)
		if err != nil {
			return abi.Value{}, err
		}
		enc, err := abi.EncodeBytes(v)
		if err != nil {
			return abi.Value{}, err
		}
		arrayBuffer.Write(enc)
	}
	return hashValue(crypto.Keccak256Hash(arrayBuffer.Bytes())), nil
}

// encodePrimitiveValue deals with the primitive values found while
// searching through the typed data.
func encodePrimitiveValue(encType string, encValue value.Value) (abi.Value, error) {
	typ, err := abi.NewType(encType)
	if err != nil {
		return abi.Value{}, &TypedDataError{Kind: ErrInvalidType, Type: encType, Err: err}
	}
	mismatch := func(err error) error {
		return &TypedDataError{Kind: ErrInvalidFieldValue, Type: encType, Value: encValue, Err: err}
	}
	var x interface{}
	switch typ.T {
	case abi.StringTy:
		s, ok := encValue.Str()
		if !ok {
			return abi.Value{}, mismatch(nil)
		}
		return hashValue(crypto.Keccak256Hash([]byte(s))), nil
	case abi.BytesTy:
		b, ok := parseBytes(encValue)
		if !ok {
			return abi.Value{}, mismatch(nil)
		}
		return hashValue(crypto.Keccak256Hash(b)), nil
	case abi.FixedBytesTy:
		b, ok := parseBytes(encValue)
		if !ok || len(b) > typ.Size {
			return abi.Value{}, mismatch(nil)
		}
		// Right-pad the bits
		x = common.RightPadBytes(b, typ.Size)
	case abi.BoolTy:
		b, ok := encValue.Bool()
		if !ok {
			return abi.Value{}, mismatch(nil)
		}
		x = b
	case abi.AddressTy:
		s, ok := encValue.Str()
		if !ok {
			return abi.Value{}, mismatch(nil)
		}
		addr, err := common.NewAddressFromHex(s, false)
		if err != nil {
			return abi.Value{}, mismatch(err)
		}
		x = addr
	case abi.IntTy, abi.UintTy:
		n, ok := parseInteger(encValue)
		if !ok {
			return abi.Value{}, mismatch(nil)
		}
		x = n
	default:
		return abi.Value{}, &TypedDataError{Kind: ErrInvalidType, Type: encType}
	}
	v, err := abi.NewValue(typ, x)
	if err != nil {
		return abi.Value{}, mismatch(err)
	}
	return v, nil
}

// parseBytes accepts 0x-prefixed hex, anything else is taken as UTF-8 text.
func parseBytes(encValue value.Value) ([]byte, bool) {
	s, ok := encValue.Str()
	if !ok {
		return nil, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode(s)
		return b, err == nil
	}
	return []byte(s), true
}

// parseInteger accepts ints, integral floats and decimal or 0x hex strings
// with an optional minus sign.
func parseInteger(encValue value.Value) (*big.Int, bool) {
	switch encValue.Kind() {
	case value.KindInt:
		i, _ := encValue.Int()
		return big.NewInt(i), true
	case value.KindFloat:
		// JSON numbers beyond int64 keep their literal; it must be a plain
		// decimal integer. Other floats must hold an int64 exactly.
		if lit, ok := encValue.Number(); ok {
			return new(big.Int).SetString(lit, 10)
		}
		f, _ := encValue.Float()
		if !(f >= -(1<<63) && f < 1<<63) || float64(int64(f)) != f {
			return nil, false
		}
		return big.NewInt(int64(f)), true
	case value.KindString:
		s, _ := encValue.Str()
		neg := strings.HasPrefix(s, "-")
		if neg {
			s = s[1:]
		}
		if s == "" {
			return nil, false
		}
		n, ok := math.ParseBig256(s)
		if !ok {
			return nil, false
		}
		if neg {
			n.Neg(n)
		}
		return n, true
	}
	return nil, false
}

func hashValue(h common.Hash) abi.Value {
	v, _ := abi.NewValue(bytes32T, h[:])
	return v
}
