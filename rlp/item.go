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
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
)

// Item is a node of an RLP tree: either a byte string or a list of Items.
// The zero Item is the empty byte string. Items are immutable; constructors
// and accessors copy where needed.
//
// Item 是 RLP 树的节点：字节串或 Item 列表。零值为空字节串。
type Item struct {
	list  bool
	bytes []byte
	elems []Item
}

// NewBytes returns a byte string item holding a copy of b.
func NewBytes(b []byte) Item {
	return Item{bytes: append([]byte{}, b...)}
}

// NewString returns a byte string item holding the UTF-8 bytes of s.
func NewString(s string) Item {
	return Item{bytes: []byte(s)}
}

// NewUint returns the minimal big-endian byte string for x. Zero is the
// empty string.
func NewUint(x uint64) Item {
	if x == 0 {
		return Item{bytes: []byte{}}
	}
	var buf [8]byte
	n := putint(buf[:], x)
	return Item{bytes: append([]byte{}, buf[:n]...)}
}

// NewBig returns the minimal big-endian byte string for a non-negative x.
// A nil x is treated as zero.
func NewBig(x *big.Int) (Item, error) {
	if x == nil {
		return Item{bytes: []byte{}}, nil
	}
	if x.Sign() < 0 {
		return Item{}, ErrNegativeBigInt
	}
	return Item{bytes: x.Bytes()}, nil
}

// NewList returns a list item. With no arguments it is the empty list.
func NewList(elems ...Item) Item {
	return Item{list: true, elems: append([]Item{}, elems...)}
}

// IsList reports whether the item is a list.
func (it Item) IsList() bool { return it.list }

// Bytes returns the content of a byte string item.
func (it Item) Bytes() ([]byte, bool) {
	if it.list {
		return nil, false
	}
	return append([]byte{}, it.bytes...), true
}

// List returns the elements of a list item.
func (it Item) List() ([]Item, bool) {
	if !it.list {
		return nil, false
	}
	return append([]Item{}, it.elems...), true
}

// Len returns the number of bytes or elements.
func (it Item) Len() int {
	if it.list {
		return len(it.elems)
	}
	return len(it.bytes)
}

// Uint interprets a byte string as a big-endian unsigned integer. It reports
// false for lists and for strings longer than eight bytes instead of
// truncating. The empty string is zero.
//
// Uint 将字节串解释为大端无符号整数；超过 8 字节时返回 false 而不是截断。
func (it Item) Uint() (uint64, bool) {
	if it.list || len(it.bytes) > 8 {
		return 0, false
	}
	var x uint64
	for _, b := range it.bytes {
		x = x<<8 | uint64(b)
	}
	return x, true
}

// BigInt interprets a byte string as a big-endian unsigned integer of any size.
func (it Item) BigInt() (*big.Int, bool) {
	if it.list {
		return nil, false
	}
	return new(big.Int).SetBytes(it.bytes), true
}

// Equal reports whether two trees have the same shape and content.
func (it Item) Equal(other Item) bool {
	if it.list != other.list {
		return false
	}
	if !it.list {
		return bytes.Equal(it.bytes, other.bytes)
	}
	if len(it.elems) != len(other.elems) {
		return false
	}
	for i := range it.elems {
		if !it.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// String renders the tree with hex byte strings, e.g. [646f67, []].
func (it Item) String() string {
	var sb strings.Builder
	it.format(&sb)
	return sb.String()
}

func (it Item) format(sb *strings.Builder) {
	if !it.list {
		sb.WriteString(hex.EncodeToString(it.bytes))
		return
	}
	sb.WriteByte('[')
	for i, e := range it.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		e.format(sb)
	}
	sb.WriteByte(']')
}

// size returns the length of the item's RLP encoding.
func (it Item) size() uint64 {
	if !it.list {
		return BytesSize(it.bytes)
	}
	var content uint64
	for _, e := range it.elems {
		content += e.size()
	}
	return ListSize(content)
}
