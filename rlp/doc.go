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

/*
Package rlp implements the RLP serialization format.

The purpose of RLP (Recursive Linear Prefix) is to encode arbitrarily nested arrays of
binary data, and RLP is the main encoding method used to serialize objects in Ethereum.
The only purpose of RLP is to encode structure; encoding specific atomic data types (eg.
strings, ints, floats) is left up to higher-order protocols.

RLP 的唯一目的是编码结构；特定原子数据类型的编码留给更高层协议。

# Items

A decoded value is an Item: either a byte string or a list of Items. Decode
parses exactly one Item and rejects every non-canonical encoding, so that
Encode(Decode(b)) == b whenever Decode succeeds.

# Encoding Rules

EncodeToBytes converts Go values to Items using the following type-dependent rules:

To encode an Item, its own byte string or list form is used.

If the type implements the Encoder interface, Encode calls EncodeRLP. It does not
call EncodeRLP on nil pointer values.

To encode a pointer, the value being pointed to is encoded. A nil pointer encodes as
the empty string.

A Go string or byte slice or byte array is encoded as an RLP string.

An unsigned integer is encoded as an RLP string with the big-endian bytes of the value
and no leading zero bytes. Zero encodes as the empty string. The same rule applies to
*big.Int and *uint256.Int; negative big integers are rejected.

Boolean values are encoded as the unsigned integers zero (false) and one (true).

Any other slice or array is encoded as a list of its elements.

# Depth

Decoding fails with ErrTooDeep when lists are nested more than MaxDepth levels.

解码时列表嵌套超过 MaxDepth 层将返回 ErrTooDeep，防止恶意输入耗尽调用栈。
*/
package rlp
