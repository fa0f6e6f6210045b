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

import "errors"

// MaxDepth is the deepest list nesting Decode accepts. The outermost list is
// at depth one.
const MaxDepth = 1024

// Decode parses b as exactly one RLP value. Leftover bytes after the value,
// truncated headers and every non-canonical form are rejected, so a
// successful result always re-encodes to b.
//
// Decode 将 b 解析为恰好一个 RLP 值。剩余字节、截断的头部以及任何非规范编码都会被拒绝。
func Decode(b []byte) (Item, error) {
	return DecodeDepth(b, MaxDepth)
}

// DecodeDepth is like Decode, but rejects lists nested more than maxDepth
// levels with ErrTooDeep. A maxDepth outside 1..MaxDepth means MaxDepth.
func DecodeDepth(b []byte, maxDepth int) (Item, error) {
	if len(b) == 0 {
		return Item{}, ErrEmptyInput
	}
	if maxDepth < 1 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	it, rest, err := decodeItem(b, maxDepth, 0, nil)
	if err != nil {
		return Item{}, err
	}
	if len(rest) > 0 {
		return Item{}, ErrMoreThanOneValue
	}
	return it, nil
}

// DecodeList parses b as a single RLP list and returns its elements.
func DecodeList(b []byte) ([]Item, error) {
	it, err := Decode(b)
	if err != nil {
		return nil, err
	}
	elems, ok := it.List()
	if !ok {
		return nil, ErrExpectedList
	}
	return elems, nil
}

// decodeItem decodes the value at the start of b and returns it together
// with the unconsumed bytes. depth is the number of enclosing lists and path
// their element indices, used for error context.
func decodeItem(b []byte, maxDepth, depth int, path []int) (Item, []byte, error) {
	k, content, rest, err := Split(b)
	if err != nil {
		if depth > 0 && errors.Is(err, ErrValueTooLarge) {
			err = ErrElemTooLarge
		}
		return Item{}, b, wrapPath(err, path)
	}
	if k != List {
		return Item{bytes: append([]byte{}, content...)}, rest, nil
	}
	if depth >= maxDepth {
		return Item{}, b, wrapPath(ErrTooDeep, path)
	}

	elems := make([]Item, 0, 4)
	for i := 0; len(content) > 0; i++ {
		var elem Item
		elem, content, err = decodeItem(content, maxDepth, depth+1, append(path, i))
		if err != nil {
			return Item{}, b, err
		}
		elems = append(elems, elem)
	}
	return Item{list: true, elems: elems}, rest, nil
}
