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
	"encoding/json"
	"errors"
	"math/big"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
)

var errVRSIncomplete = errors.New("signature needs all of 'v', 'r' and 's'")

// txJSON is the JSON representation of transactions.
// txJSON 是交易的 JSON 表示形式。
type txJSON struct {
	ChainID  *hexutil.Big    `json:"chainId,omitempty"`
	Nonce    *hexutil.Uint64 `json:"nonce"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.Uint64 `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Input    *hexutil.Bytes  `json:"input"`
	Data     *hexutil.Bytes  `json:"data,omitempty"` // alias of input, decoding only
	V        *hexutil.Big    `json:"v,omitempty"`
	R        *hexutil.Big    `json:"r,omitempty"`
	S        *hexutil.Big    `json:"s,omitempty"`

	// Only used for encoding:
	Hash *common.Hash `json:"hash,omitempty"`
}

// MarshalJSON marshals as JSON. Signed transactions carry their hash and,
// when replay-protected, their chain id.
// MarshalJSON 将交易序列化为 JSON。
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	itx := tx.inner
	enc.Nonce = (*hexutil.Uint64)(itx.Nonce)
	enc.To = tx.To()
	enc.Gas = (*hexutil.Uint64)(itx.Gas)
	enc.GasPrice = (*hexutil.Big)(itx.GasPrice)
	enc.Value = (*hexutil.Big)(itx.Value)
	enc.Input = (*hexutil.Bytes)(&itx.Data)
	if tx.Signed() {
		hash := tx.Hash()
		enc.Hash = &hash
		enc.V = (*hexutil.Big)(tx.v)
		enc.R = (*hexutil.Big)(tx.r)
		enc.S = (*hexutil.Big)(tx.s)
		if tx.Protected() {
			enc.ChainID = (*hexutil.Big)(tx.ChainId())
		}
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. Any of nonce, gasPrice and gas may be
// absent; the result is then an incomplete transaction that can be filled in
// before it is encoded. A recipient or input data is always required.
//
// UnmarshalJSON 从 JSON 反序列化交易。nonce、gasPrice 和 gas 可以缺省。
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	var itx LegacyTx
	if dec.Nonce != nil {
		n := uint64(*dec.Nonce)
		itx.Nonce = &n
	}
	if dec.Gas != nil {
		g := uint64(*dec.Gas)
		itx.Gas = &g
	}
	itx.To = dec.To
	itx.GasPrice = (*big.Int)(dec.GasPrice)
	itx.Value = (*big.Int)(dec.Value)
	switch {
	case dec.Input != nil:
		itx.Data = *dec.Input
	case dec.Data != nil:
		itx.Data = *dec.Data
	}
	parsed, err := NewTx(&itx)
	if err != nil {
		return err
	}
	var v, r, s *big.Int
	switch {
	case dec.V == nil && dec.R == nil && dec.S == nil:
	case dec.V != nil && dec.R != nil && dec.S != nil:
		v, r, s = (*big.Int)(dec.V), (*big.Int)(dec.R), (*big.Int)(dec.S)
	default:
		return errVRSIncomplete
	}
	tx.setDecoded(parsed.inner, v, r, s)
	return nil
}
