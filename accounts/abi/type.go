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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	AddressTy
	FixedBytesTy
	BytesTy
)

// ErrInvalidType is returned for malformed Solidity type names.
var ErrInvalidType = errors.New("abi: invalid type")

// Type is the description of a Solidity type.
// Type 描述一个 Solidity 类型。
type Type struct {
	Elem *Type // element type of arrays
	Size int   // bit width of integers, length of bytesN and fixed arrays
	T    byte  // Our own type checking

	stringKind string // canonical type name
}

var (
	// typeRegex parses the abi sub types
	typeRegex = regexp.MustCompile("^([a-z]+)([0-9]*)$")

	// sliceSizeRegex grab the slice size
	sliceSizeRegex = regexp.MustCompile("^\\[([0-9]*)\\]$")
)

// NewType parses a Solidity type name such as "uint256", "bytes4",
// "address[]" or "string[2][]". The aliases "uint" and "int" stand for the
// 256 bit types.
//
// NewType 解析 Solidity 类型名，例如 "uint256"、"bytes4"、"address[]"。
func NewType(t string) (typ Type, err error) {
	// check that array brackets are equal if they exist
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidType, t)
	}

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	if i := strings.LastIndex(t, "["); i != -1 {
		embeddedType, err := NewType(t[:i])
		if err != nil {
			return Type{}, err
		}
		m := sliceSizeRegex.FindStringSubmatch(t[i:])
		if m == nil {
			return Type{}, fmt.Errorf("%w: invalid formatting of array type %q", ErrInvalidType, t)
		}
		if m[1] == "" {
			return SliceOf(embeddedType), nil
		}
		size, err := strconv.Atoi(m[1])
		if err != nil || size == 0 {
			return Type{}, fmt.Errorf("%w: invalid array size in %q", ErrInvalidType, t)
		}
		return ArrayOf(embeddedType, size), nil
	}

	parsed := typeRegex.FindStringSubmatch(t)
	if parsed == nil {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	var varSize int
	if parsed[2] != "" {
		if parsed[2][0] == '0' {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, t)
		}
		if varSize, err = strconv.Atoi(parsed[2]); err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, t)
		}
	}

	switch varType := parsed[1]; varType {
	case "int", "uint":
		if parsed[2] == "" {
			varSize = 256
		}
		if varSize%8 != 0 || varSize < 8 || varSize > 256 {
			return Type{}, fmt.Errorf("%w: unsupported integer width %d in %q", ErrInvalidType, varSize, t)
		}
		return intType(varType == "int", varSize), nil
	case "bytes":
		if parsed[2] == "" {
			return Type{T: BytesTy, stringKind: "bytes"}, nil
		}
		if varSize > 32 {
			return Type{}, fmt.Errorf("%w: unsupported arg type: %s", ErrInvalidType, t)
		}
		return fixedBytesType(varSize), nil
	}
	if parsed[2] != "" {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	switch parsed[1] {
	case "bool":
		return Type{T: BoolTy, stringKind: "bool"}, nil
	case "address":
		return Type{T: AddressTy, Size: 20, stringKind: "address"}, nil
	case "string":
		return Type{T: StringTy, stringKind: "string"}, nil
	}
	return Type{}, fmt.Errorf("%w: unsupported arg type: %s", ErrInvalidType, t)
}

// MustNewType is like NewType but panics on malformed input.
func MustNewType(t string) Type {
	typ, err := NewType(t)
	if err != nil {
		panic(err)
	}
	return typ
}

func intType(signed bool, bits int) Type {
	if signed {
		return Type{T: IntTy, Size: bits, stringKind: "int" + strconv.Itoa(bits)}
	}
	return Type{T: UintTy, Size: bits, stringKind: "uint" + strconv.Itoa(bits)}
}

func fixedBytesType(size int) Type {
	return Type{T: FixedBytesTy, Size: size, stringKind: "bytes" + strconv.Itoa(size)}
}

// SliceOf returns the unbounded array type T[].
func SliceOf(elem Type) Type {
	return Type{T: SliceTy, Elem: &elem, stringKind: elem.stringKind + "[]"}
}

// ArrayOf returns the fixed-length array type T[size].
func ArrayOf(elem Type, size int) Type {
	return Type{T: ArrayTy, Elem: &elem, Size: size, stringKind: elem.stringKind + "[" + strconv.Itoa(size) + "]"}
}

// String implements Stringer.
func (t Type) String() (out string) {
	return t.stringKind
}

// Equal reports whether both describe the same Solidity type.
func (t Type) Equal(o Type) bool {
	return t.stringKind == o.stringKind
}

// IsDynamic reports whether values of the type are placed in the tail.
// string, bytes and T[] are dynamic, as is T[k] for dynamic T.
//
// IsDynamic 报告该类型的值是否放在尾部（动态类型）。
func (t Type) IsDynamic() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && t.Elem.IsDynamic())
}

// requiresLengthPrefix returns whether the type requires any sort of length
// prefixing.
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// headSize returns the size that this type occupies in the head. Static
// types are encoded in-place, dynamic types only leave a 32 byte offset.
func (t Type) headSize() int {
	if t.T == ArrayTy && !t.Elem.IsDynamic() {
		return t.Size * t.Elem.headSize()
	}
	return 32
}
