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
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

var (
	// Common encoded values.
	// These are useful when implementing EncodeRLP.

	// EmptyString is the encoding of an empty string.
	EmptyString = []byte{0x80}
	// EmptyList is the encoding of an empty list.
	EmptyList = []byte{0xC0}
)

// Encoder is implemented by types that require custom
// encoding rules or want to encode private fields.
//
// Encoder 由需要自定义编码规则的类型实现。
type Encoder interface {
	// EncodeRLP should write the RLP encoding of its receiver to w.
	//
	// Implementations should generate valid RLP. The data written is
	// not verified at the moment, but a future version might. It is
	// recommended to write only a single value but writing multiple
	// values or no value at all is also permitted.
	EncodeRLP(io.Writer) error
}

// Encode writes the RLP encoding of val to w. Please see package-level
// documentation of encoding rules.
func Encode(w io.Writer, val interface{}) error {
	// Optimization: reuse *encBuffer when called by EncodeRLP.
	if buf, ok := w.(*encBuffer); ok {
		return buf.encode(val)
	}

	buf := getEncBuffer()
	defer encBufferPool.Put(buf)
	if err := buf.encode(val); err != nil {
		return err
	}
	return buf.writeTo(w)
}

// EncodeToBytes returns the RLP encoding of val.
// Please see package-level documentation for the encoding rules.
// EncodeToBytes 返回 val 的 RLP 编码。
func EncodeToBytes(val interface{}) ([]byte, error) {
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)

	if err := buf.encode(val); err != nil {
		return nil, err
	}
	return buf.makeBytes(), nil
}

// EncodeItem returns the canonical encoding of an Item tree. It cannot fail.
func EncodeItem(it Item) []byte {
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)

	buf.writeItem(it)
	return buf.makeBytes()
}

// encode dispatches on the dynamic type of val. The common types are
// handled without reflection.
func (buf *encBuffer) encode(val interface{}) error {
	switch v := val.(type) {
	case nil:
		buf.str = append(buf.str, 0x80)
	case Item:
		buf.writeItem(v)
	case *Item:
		if v == nil {
			buf.str = append(buf.str, 0x80)
		} else {
			buf.writeItem(*v)
		}
	case RawValue:
		buf.str = append(buf.str, v...)
	case Encoder:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			buf.str = append(buf.str, 0x80)
			return nil
		}
		return v.EncodeRLP(buf)
	case []byte:
		buf.writeBytes(v)
	case string:
		buf.writeString(v)
	case bool:
		buf.writeBool(v)
	case uint64:
		buf.writeUint64(v)
	case *big.Int:
		return buf.writeBigInt(v)
	case big.Int:
		return buf.writeBigInt(&v)
	case *uint256.Int:
		buf.writeUint256(v)
	case uint256.Int:
		buf.writeUint256(&v)
	case []Item:
		idx := buf.list()
		for _, e := range v {
			buf.writeItem(e)
		}
		buf.listEnd(idx)
	case []interface{}:
		idx := buf.list()
		for i, e := range v {
			if err := buf.encode(e); err != nil {
				return fmt.Errorf("rlp: list element %d: %w", i, err)
			}
		}
		buf.listEnd(idx)
	default:
		return buf.encodeReflect(reflect.ValueOf(val))
	}
	return nil
}

func (buf *encBuffer) encodeReflect(val reflect.Value) error {
	switch kind := val.Kind(); {
	case kind == reflect.Ptr:
		if val.IsNil() {
			buf.str = append(buf.str, 0x80)
			return nil
		}
		return buf.encode(val.Elem().Interface())
	case kind >= reflect.Uint && kind <= reflect.Uintptr:
		buf.writeUint64(val.Uint())
	case kind >= reflect.Int && kind <= reflect.Int64:
		i := val.Int()
		if i < 0 {
			return fmt.Errorf("rlp: cannot encode negative integer %d", i)
		}
		buf.writeUint64(uint64(i))
	case kind == reflect.String:
		buf.writeString(val.String())
	case kind == reflect.Bool:
		buf.writeBool(val.Bool())
	case (kind == reflect.Slice || kind == reflect.Array) && val.Type().Elem().Kind() == reflect.Uint8:
		b := make([]byte, val.Len())
		reflect.Copy(reflect.ValueOf(b), val)
		buf.writeBytes(b)
	case kind == reflect.Slice || kind == reflect.Array:
		idx := buf.list()
		for i := 0; i < val.Len(); i++ {
			if err := buf.encode(val.Index(i).Interface()); err != nil {
				return fmt.Errorf("rlp: list element %d: %w", i, err)
			}
		}
		buf.listEnd(idx)
	default:
		return fmt.Errorf("rlp: type %v is not RLP-serializable", val.Type())
	}
	return nil
}

func (buf *encBuffer) writeBigInt(i *big.Int) error {
	if i == nil {
		buf.str = append(buf.str, 0x80)
		return nil
	}
	if i.Sign() == -1 {
		return ErrNegativeBigInt
	}
	bitlen := i.BitLen()
	if bitlen <= 64 {
		buf.writeUint64(i.Uint64())
		return nil
	}
	buf.writeBytes(i.Bytes())
	return nil
}

func (buf *encBuffer) writeUint256(z *uint256.Int) {
	if z == nil {
		buf.str = append(buf.str, 0x80)
		return
	}
	bitlen := z.BitLen()
	if bitlen <= 64 {
		buf.writeUint64(z.Uint64())
		return
	}
	nBytes := byte((bitlen + 7) / 8)
	var b [33]byte
	word := z.Bytes32()
	b[0] = 0x80 + nBytes
	copy(b[1:], word[32-nBytes:])
	buf.str = append(buf.str, b[:1+nBytes]...)
}

// headsize returns the size of a list or string header
// for a value of the given size.
func headsize(size uint64) int {
	if size < 56 {
		return 1
	}
	return 1 + intsize(size)
}

// puthead writes a list or string header to buf.
// buf must be at least 9 bytes long.
func puthead(buf []byte, smalltag, largetag byte, size uint64) int {
	if size < 56 {
		buf[0] = smalltag + byte(size)
		return 1
	}
	sizesize := putint(buf[1:], size)
	buf[0] = largetag + byte(sizesize)
	return sizesize + 1
}

// putint writes i to the beginning of b in big endian byte
// order, using the least number of bytes needed to represent i.
func putint(b []byte, i uint64) (size int) {
	size = intsize(i)
	for j := size - 1; j >= 0; j-- {
		b[j] = byte(i)
		i >>= 8
	}
	return size
}

// intsize computes the minimum number of bytes required to store i.
func intsize(i uint64) (size int) {
	for size = 1; ; size++ {
		if i >>= 8; i == 0 {
			return size
		}
	}
}
