// Copyright 2017 The go-ethereum Authors
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

// Package accounts holds the account model and message hashing shared by signers.
package accounts

import (
	"errors"
	"fmt"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/crypto"
)

// ErrUnknownAccount is returned for any requested operation for which no backend
// provides the specified account.
// ErrUnknownAccount 在没有后端提供指定账户时返回。
var ErrUnknownAccount = errors.New("unknown account")

// Slip44CoinType is the hardened SLIP-44 coin type registered for Ether.
const Slip44CoinType uint32 = 0x8000003c

// Account represents an Ethereum account.
// Account 代表一个以太坊账户。
type Account struct {
	Address common.Address `json:"address"` // Ethereum account address derived from the key
}

// TextHash is a helper function that calculates a hash for the given message that can be
// safely used to calculate a signature from.
// TextHash 是一个辅助函数，用于计算给定消息的哈希值，该哈希值可以安全地用于计算签名。
//
// The hash is calculated as
//
//	keccak256("\x19Ethereum Signed Message:\n"${message length}${message}).
//
// This gives context to the signed message and prevents signing of transactions.
func TextHash(data []byte) []byte {
	hash, _ := TextAndHash(data)
	return hash
}

// TextAndHash is a helper function that calculates a hash for the given message that can be
// safely used to calculate a signature from. It also returns the prefixed message.
//
// The hash is calculated as
//
//	keccak256("\x19Ethereum Signed Message:\n"${message length}${message}).
func TextAndHash(data []byte) ([]byte, string) {
	msg := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)
	return crypto.Keccak256([]byte(msg)), msg
}
