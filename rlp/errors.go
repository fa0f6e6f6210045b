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

package rlp

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every decoding failure matches exactly one of these through
// errors.Is.
var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("rlp: empty input")

	// ErrMalformedLength is returned when a declared length disagrees with the
	// bytes that are actually present, or a length prefix is not canonical.
	// ErrMalformedLength 在声明长度与实际字节不一致或长度前缀不规范时返回。
	ErrMalformedLength = errors.New("rlp: malformed length")

	// ErrLengthTooLong is returned when a decoded length exceeds the
	// addressable range.
	ErrLengthTooLong = errors.New("rlp: input too long")

	// ErrTooDeep is returned when lists nest deeper than MaxDepth.
	ErrTooDeep = errors.New("rlp: nesting exceeds maximum depth")
)

// Refinements of ErrMalformedLength.
var (
	ErrCanonInt         = &kindError{ErrMalformedLength, "rlp: non-canonical integer format"}
	ErrCanonSize        = &kindError{ErrMalformedLength, "rlp: non-canonical size information"}
	ErrElemTooLarge     = &kindError{ErrMalformedLength, "rlp: element is larger than containing list"}
	ErrValueTooLarge    = &kindError{ErrMalformedLength, "rlp: value size exceeds available input length"}
	ErrMoreThanOneValue = &kindError{ErrMalformedLength, "rlp: input contains more than one value"}
)

var (
	ErrExpectedString = errors.New("rlp: expected String or Byte")
	ErrExpectedList   = errors.New("rlp: expected List")
	ErrNegativeBigInt = errors.New("rlp: cannot encode negative big integer")

	errUintOverflow = errors.New("rlp: uint overflow")
)

// kindError is a specific failure that also matches its broader kind.
type kindError struct {
	kind error
	msg  string
}

func (err *kindError) Error() string { return err.msg }
func (err *kindError) Unwrap() error { return err.kind }

// decodeError records where inside the input tree decoding failed.
type decodeError struct {
	err  error
	path []int // list indices from the outermost list inwards
}

func (err *decodeError) Error() string {
	if len(err.path) == 0 {
		return err.err.Error()
	}
	idx := make([]string, len(err.path))
	for i, p := range err.path {
		idx[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%v (at list index %s)", err.err, strings.Join(idx, "."))
}

func (err *decodeError) Unwrap() error { return err.err }

func wrapPath(err error, path []int) error {
	if len(path) == 0 {
		return err
	}
	var derr *decodeError
	if errors.As(err, &derr) {
		return err
	}
	return &decodeError{err: err, path: append([]int(nil), path...)}
}
