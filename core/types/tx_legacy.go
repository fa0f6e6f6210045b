// Copyright 2021 The go-ethereum Authors
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

package types

import (
	"math/big"

	"github.com/sunyihoo/ethcodec/common"
)

// LegacyTx is the transaction data of the original Ethereum transactions.
// Fields that have not been filled in yet are nil; nonce, gas price and gas
// must be set before the transaction can be encoded.
//
// LegacyTx 是原始以太坊交易的交易数据。未填写的字段为 nil；编码前必须设置 nonce、gasPrice 和 gas。
type LegacyTx struct {
	Nonce    *uint64         // nonce of sender account 发送者账户的 nonce
	GasPrice *big.Int        // wei per gas 每单位 Gas 的价格（单位 Wei）
	Gas      *uint64         // gas limit Gas 限制
	To       *common.Address // nil means contract creation；nil 表示合约创建
	Value    *big.Int        // wei amount, nil is zero
	Data     []byte          // contract invocation input data 合约调用的输入数据或合约字节码
}

// copy creates a deep copy of the transaction data.
// copy 创建交易数据的深拷贝。
func (tx *LegacyTx) copy() *LegacyTx {
	cpy := &LegacyTx{
		To:   copyAddressPtr(tx.To),
		Data: common.CopyBytes(tx.Data),
	}
	if tx.Nonce != nil {
		n := *tx.Nonce
		cpy.Nonce = &n
	}
	if tx.Gas != nil {
		g := *tx.Gas
		cpy.Gas = &g
	}
	if tx.GasPrice != nil {
		cpy.GasPrice = new(big.Int).Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value = new(big.Int).Set(tx.Value)
	}
	return cpy
}

// copyAddressPtr copies an address.
func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}
