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
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/ethcodec/common"
)

// ErrEncodingMismatch is matched by every *EncodeError.
var ErrEncodingMismatch = errors.New("abi: value does not match type")

// EncodeError reports a Go value that cannot be rendered as the declared type.
type EncodeError struct {
	Type  Type
	Value interface{}
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("abi: cannot use %v (%T) as %s: %v", e.Value, e.Value, e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrEncodingMismatch) hold for every EncodeError.
func (e *EncodeError) Is(target error) bool { return target == ErrEncodingMismatch }

func mismatch(t Type, v interface{}, format string, args ...interface{}) error {
	return &EncodeError{Type: t, Value: v, Err: fmt.Errorf(format, args...)}
}

// Value is a Go value bound to its Solidity type. The held value is
// normalised: *big.Int for integers, bool, common.Address, []byte for bytes
// and bytesN, string, and []Value for arrays.
//
// Value 是绑定了 Solidity 类型的 Go 值。
type Value struct {
	typ Type
	val interface{}
}

// Type returns the declared Solidity type.
func (v Value) Type() Type { return v.typ }

// Interface returns the normalised Go value.
func (v Value) Interface() interface{} { return v.val }

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.typ, v.val)
}

var (
	bigT     = reflect.TypeOf((*big.Int)(nil))
	addressT = reflect.TypeOf(common.Address{})
)

// NewValue checks x against t and wraps it. Integers may be given as any Go
// integer kind, *big.Int or *uint256.Int and must fit the declared width.
// Addresses may be common.Address or a hex string. bytes and bytesN accept
// []byte or byte arrays; bytesN requires exactly N bytes. Arrays accept
// []Value or any Go slice or array whose elements convert to the element type.
//
// NewValue 检查 x 是否符合类型 t 并将其包装为 Value。
func NewValue(t Type, x interface{}) (Value, error) {
	if v, ok := x.(Value); ok {
		if !v.typ.Equal(t) {
			return Value{}, mismatch(t, x, "value has type %s", v.typ)
		}
		return v, nil
	}
	switch t.T {
	case IntTy, UintTy:
		n, err := toBig(x)
		if err != nil {
			return Value{}, mismatch(t, x, "%v", err)
		}
		if err := checkRange(t, n); err != nil {
			return Value{}, mismatch(t, x, "%v", err)
		}
		return Value{typ: t, val: n}, nil
	case BoolTy:
		b, ok := x.(bool)
		if !ok {
			return Value{}, mismatch(t, x, "not a bool")
		}
		return Value{typ: t, val: b}, nil
	case AddressTy:
		addr, err := toAddress(x)
		if err != nil {
			return Value{}, mismatch(t, x, "%v", err)
		}
		return Value{typ: t, val: addr}, nil
	case StringTy:
		s, ok := x.(string)
		if !ok {
			return Value{}, mismatch(t, x, "not a string")
		}
		return Value{typ: t, val: s}, nil
	case BytesTy, FixedBytesTy:
		b, ok := toBytes(x)
		if !ok {
			return Value{}, mismatch(t, x, "not a byte slice or array")
		}
		if t.T == FixedBytesTy && len(b) != t.Size {
			return Value{}, mismatch(t, x, "have %d bytes, want %d", len(b), t.Size)
		}
		return Value{typ: t, val: b}, nil
	case SliceTy, ArrayTy:
		return newArray(t, x)
	}
	return Value{}, mismatch(t, x, "unknown type %d", t.T)
}

func newArray(t Type, x interface{}) (Value, error) {
	rv := reflect.ValueOf(x)
	if x == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return Value{}, mismatch(t, x, "not a slice or array")
	}
	if t.T == ArrayTy && rv.Len() != t.Size {
		return Value{}, mismatch(t, x, "have %d elements, want %d", rv.Len(), t.Size)
	}
	elems := make([]Value, rv.Len())
	for i := range elems {
		e, err := NewValue(*t.Elem, rv.Index(i).Interface())
		if err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = e
	}
	return Value{typ: t, val: elems}, nil
}

func toBig(x interface{}) (*big.Int, error) {
	switch n := x.(type) {
	case *big.Int:
		if n == nil {
			return nil, errors.New("nil integer")
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case *uint256.Int:
		if n == nil {
			return nil, errors.New("nil integer")
		}
		return n.ToBig(), nil
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, errors.New("not an integer")
}

// checkRange verifies that n fits the bit width of an integer type.
func checkRange(t Type, n *big.Int) error {
	if t.T == UintTy {
		if n.Sign() < 0 {
			return errors.New("negative value for unsigned type")
		}
		if n.BitLen() > t.Size {
			return fmt.Errorf("value exceeds %d bits", t.Size)
		}
		return nil
	}
	// signed: -2^(size-1) <= n < 2^(size-1)
	limit := new(big.Int).Lsh(common.Big1, uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return fmt.Errorf("value out of range for %d bit signed integer", t.Size)
	}
	return nil
}

func toAddress(x interface{}) (common.Address, error) {
	switch a := x.(type) {
	case common.Address:
		return a, nil
	case *common.Address:
		if a == nil {
			return common.Address{}, errors.New("nil address")
		}
		return *a, nil
	case string:
		return common.NewAddressFromHex(a, false)
	}
	if b, ok := toBytes(x); ok && len(b) == common.AddressLength {
		return common.BytesToAddress(b), nil
	}
	return common.Address{}, errors.New("not an address")
}

// toBytes accepts []byte and byte arrays of any length.
func toBytes(x interface{}) ([]byte, bool) {
	if b, ok := x.([]byte); ok {
		return common.CopyBytes(b), true
	}
	rv := reflect.ValueOf(x)
	if x == nil || rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	b := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(b), rv)
	return b, true
}

func mustValue(t Type, x interface{}) Value {
	v, err := NewValue(t, x)
	if err != nil {
		panic(err)
	}
	return v
}

// Factories for the common types. The fixed-width ones cannot fail.

func Uint8(x uint8) Value   { return mustValue(intType(false, 8), x) }
func Uint16(x uint16) Value { return mustValue(intType(false, 16), x) }
func Uint32(x uint32) Value { return mustValue(intType(false, 32), x) }
func Uint64(x uint64) Value { return mustValue(intType(false, 64), x) }
func Int8(x int8) Value     { return mustValue(intType(true, 8), x) }
func Int16(x int16) Value   { return mustValue(intType(true, 16), x) }
func Int32(x int32) Value   { return mustValue(intType(true, 32), x) }
func Int64(x int64) Value   { return mustValue(intType(true, 64), x) }
func Bool(b bool) Value     { return mustValue(Type{T: BoolTy, stringKind: "bool"}, b) }
func String(s string) Value { return mustValue(Type{T: StringTy, stringKind: "string"}, s) }
func Bytes(b []byte) Value  { return mustValue(Type{T: BytesTy, stringKind: "bytes"}, b) }

// Address wraps a 20 byte account address.
func Address(a common.Address) Value {
	return mustValue(Type{T: AddressTy, Size: 20, stringKind: "address"}, a)
}

// Uint256 wraps x as uint256.
func Uint256(x *big.Int) (Value, error) { return UintN(256, x) }

// Int256 wraps x as int256.
func Int256(x *big.Int) (Value, error) { return IntN(256, x) }

// UintN wraps x as an unsigned integer of the given bit width.
func UintN(bits int, x *big.Int) (Value, error) {
	if bits%8 != 0 || bits < 8 || bits > 256 {
		return Value{}, fmt.Errorf("%w: uint%d", ErrInvalidType, bits)
	}
	return NewValue(intType(false, bits), x)
}

// IntN wraps x as a signed integer of the given bit width.
func IntN(bits int, x *big.Int) (Value, error) {
	if bits%8 != 0 || bits < 8 || bits > 256 {
		return Value{}, fmt.Errorf("%w: int%d", ErrInvalidType, bits)
	}
	return NewValue(intType(true, bits), x)
}

// FixedBytes wraps b as bytesN with N = len(b).
func FixedBytes(b []byte) (Value, error) {
	if len(b) == 0 || len(b) > 32 {
		return Value{}, fmt.Errorf("%w: bytes%d", ErrInvalidType, len(b))
	}
	return NewValue(fixedBytesType(len(b)), b)
}

// Array wraps the elements as the unbounded array elem[].
func Array(elem Type, elems ...Value) (Value, error) {
	return NewValue(SliceOf(elem), elems)
}

// FixedArray wraps the elements as elem[len(elems)].
func FixedArray(elem Type, elems ...Value) (Value, error) {
	if len(elems) == 0 {
		return Value{}, fmt.Errorf("%w: zero length array", ErrInvalidType)
	}
	return NewValue(ArrayOf(elem, len(elems)), elems)
}
