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

// Package abi implements the Solidity contract ABI encoding of typed values.
//
// Values are always paired with their Solidity type: they are built with
// NewValue or one of the typed factories, which check the Go value against
// the declared type, so encoding never has to guess.
//
// abi 包实现了 Solidity 合约 ABI 的类型化值编码。值始终与其 Solidity 类型绑定。
//
// Static types (integers, bool, address, bytesN and fixed arrays of static
// types) occupy their own 32 byte words inline. Dynamic types (string,
// bytes, T[] and fixed arrays of dynamic types) are referenced from the head
// by an offset and their content is appended to the tail.
package abi
