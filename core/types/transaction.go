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

package types

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/rlp"
)

var (
	// ErrInvalidTransaction is returned for a transaction that has neither a
	// recipient nor input data, or that lacks nonce, gas price or gas when it
	// is encoded.
	// ErrInvalidTransaction 在交易既无接收者也无数据，或编码时缺少 nonce/gasPrice/gas 时返回。
	ErrInvalidTransaction = errors.New("invalid transaction")

	ErrInvalidSig     = errors.New("invalid transaction v, r, s values")
	ErrInvalidChainId = errors.New("invalid chain id for signer")
	ErrUnsigned       = errors.New("transaction is not signed")

	errNegativeChainId = errors.New("negative chain id")
)

// legacyFieldCount is the number of list elements of an encoded legacy transaction.
const legacyFieldCount = 9

// Transaction is an Ethereum legacy transaction, optionally carrying a signature.
// Transaction 是以太坊传统交易，可以携带签名。
type Transaction struct {
	inner   *LegacyTx
	v, r, s *big.Int // signature values, nil while unsigned

	// caches
	hash atomic.Pointer[common.Hash]
	from atomic.Pointer[sigCache]
}

// NewTx creates a new unsigned transaction. A transaction needs a recipient
// or non-empty input data.
//
// NewTx 创建一个新的未签名交易。交易必须有接收者或非空的输入数据。
func NewTx(inner *LegacyTx) (*Transaction, error) {
	if inner == nil || (inner.To == nil && len(inner.Data) == 0) {
		return nil, fmt.Errorf("%w: no recipient and no data", ErrInvalidTransaction)
	}
	return &Transaction{inner: inner.copy()}, nil
}

// Nonce returns the sender account nonce of the transaction, zero when unset.
func (tx *Transaction) Nonce() uint64 {
	if tx.inner.Nonce == nil {
		return 0
	}
	return *tx.inner.Nonce
}

// Gas returns the gas limit of the transaction, zero when unset.
func (tx *Transaction) Gas() uint64 {
	if tx.inner.Gas == nil {
		return 0
	}
	return *tx.inner.Gas
}

// GasPrice returns the gas price of the transaction.
func (tx *Transaction) GasPrice() *big.Int { return bigOrZero(tx.inner.GasPrice) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return bigOrZero(tx.inner.Value) }

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.inner.Data) }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
// 对于合约创建交易，To 返回 nil。
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.To)
}

// Signed reports whether a signature has been attached.
func (tx *Transaction) Signed() bool {
	return tx.v != nil
}

// RawSignatureValues returns the V, R, S signature values of the transaction.
// The return values should not be modified by the caller.
// The return values may be nil or zero, if the transaction is unsigned.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.v, tx.r, tx.s
}

// RLPItem returns the nine element list
// [nonce, gasPrice, gas, to, value, data, v, r, s]. A signed transaction
// uses its signature values. An unsigned one uses v = chainID and r = s = 0,
// the EIP-155 signing payload.
//
// RLPItem 返回九元素列表。已签名交易使用其签名值；未签名交易使用 v = chainID、r = s = 0（EIP-155 签名载荷）。
func (tx *Transaction) RLPItem(chainID *big.Int) (rlp.Item, error) {
	if tx.Signed() {
		return tx.item(tx.v, tx.r, tx.s)
	}
	if chainID != nil && chainID.Sign() < 0 {
		return rlp.Item{}, errNegativeChainId
	}
	return tx.item(chainID, common.Big0, common.Big0)
}

// Missing returns the names of the fields that must be filled in before the
// transaction can be encoded or signed.
func (tx *Transaction) Missing() []string {
	var missing []string
	if tx.inner.Nonce == nil {
		missing = append(missing, "nonce")
	}
	if tx.inner.GasPrice == nil {
		missing = append(missing, "gasPrice")
	}
	if tx.inner.Gas == nil {
		missing = append(missing, "gas")
	}
	return missing
}

func (tx *Transaction) item(v, r, s *big.Int) (rlp.Item, error) {
	if missing := tx.Missing(); len(missing) > 0 {
		return rlp.Item{}, fmt.Errorf("%w: missing %s", ErrInvalidTransaction, strings.Join(missing, ", "))
	}
	gasPrice, err := rlp.NewBig(tx.inner.GasPrice)
	if err != nil {
		return rlp.Item{}, fmt.Errorf("gas price: %w", err)
	}
	elems := make([]rlp.Item, 0, legacyFieldCount)
	elems = append(elems, rlp.NewUint(*tx.inner.Nonce), gasPrice, rlp.NewUint(*tx.inner.Gas))
	if tx.inner.To != nil {
		elems = append(elems, rlp.NewBytes(tx.inner.To[:]))
	} else {
		elems = append(elems, rlp.NewBytes(nil))
	}
	value, err := rlp.NewBig(tx.inner.Value)
	if err != nil {
		return rlp.Item{}, fmt.Errorf("value: %w", err)
	}
	elems = append(elems, value, rlp.NewBytes(tx.inner.Data))
	for _, x := range []*big.Int{v, r, s} {
		it, err := rlp.NewBig(x)
		if err != nil {
			return rlp.Item{}, err
		}
		elems = append(elems, it)
	}
	return rlp.NewList(elems...), nil
}

// EncodeRLP implements rlp.Encoder. Unsigned transactions are written with
// chain id zero.
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	it, err := tx.RLPItem(nil)
	if err != nil {
		return err
	}
	return rlp.Encode(w, it)
}

// MarshalBinary returns the canonical encoding of the transaction.
// MarshalBinary 返回交易的规范编码。
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	it, err := tx.RLPItem(nil)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeItem(it), nil
}

// UnmarshalBinary decodes the canonical encoding of a signed transaction.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	dec, err := DecodeTransaction(b)
	if err != nil {
		return err
	}
	tx.setDecoded(dec.inner, dec.v, dec.r, dec.s)
	return nil
}

// Hash returns the transaction hash, the keccak256 of its encoding. A
// transaction that is still missing nonce, gas price or gas has no encoding
// and hashes to the zero hash.
//
// Hash 返回交易哈希；缺少必填字段的交易返回零哈希。
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	it, err := tx.RLPItem(nil)
	if err != nil {
		return common.Hash{}
	}
	h := rlpHash(it)
	tx.hash.Store(&h)
	return h
}

// DecodeTransaction parses the RLP encoding of a signed legacy transaction.
// Every integer field must be canonical, the recipient must be empty or 20
// bytes long, and r and s must not both be zero.
//
// DecodeTransaction 解析已签名传统交易的 RLP 编码。
func DecodeTransaction(b []byte) (*Transaction, error) {
	elems, err := rlp.DecodeList(b)
	if err != nil {
		return nil, err
	}
	if len(elems) != legacyFieldCount {
		return nil, fmt.Errorf("%w: have %d fields, want %d", ErrInvalidTransaction, len(elems), legacyFieldCount)
	}
	var (
		inner LegacyTx
		sig   [3]*big.Int
	)
	nonce, err := decodeUint(elems[0], "nonce")
	if err != nil {
		return nil, err
	}
	gas, err := decodeUint(elems[2], "gas")
	if err != nil {
		return nil, err
	}
	inner.Nonce, inner.Gas = &nonce, &gas
	if inner.GasPrice, err = decodeBig(elems[1], "gas price"); err != nil {
		return nil, err
	}
	to, ok := elems[3].Bytes()
	switch {
	case !ok:
		return nil, fmt.Errorf("to: %w", rlp.ErrExpectedString)
	case len(to) == common.AddressLength:
		addr := common.BytesToAddress(to)
		inner.To = &addr
	case len(to) != 0:
		return nil, fmt.Errorf("%w: recipient has %d bytes", ErrInvalidTransaction, len(to))
	}
	if inner.Value, err = decodeBig(elems[4], "value"); err != nil {
		return nil, err
	}
	if inner.Data, ok = elems[5].Bytes(); !ok {
		return nil, fmt.Errorf("data: %w", rlp.ErrExpectedString)
	}
	for i, name := range []string{"v", "r", "s"} {
		if sig[i], err = decodeBig(elems[6+i], name); err != nil {
			return nil, err
		}
	}
	if sig[1].Sign() == 0 && sig[2].Sign() == 0 {
		return nil, ErrUnsigned
	}
	if inner.To == nil && len(inner.Data) == 0 {
		return nil, fmt.Errorf("%w: no recipient and no data", ErrInvalidTransaction)
	}
	tx := new(Transaction)
	tx.setDecoded(&inner, sig[0], sig[1], sig[2])
	return tx, nil
}

func (tx *Transaction) setDecoded(inner *LegacyTx, v, r, s *big.Int) {
	tx.inner = inner
	tx.v, tx.r, tx.s = v, r, s
	tx.hash.Store(nil)
	tx.from.Store(nil)
}

func decodeUint(it rlp.Item, field string) (uint64, error) {
	b, ok := it.Bytes()
	if !ok {
		return 0, fmt.Errorf("%s: %w", field, rlp.ErrExpectedString)
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, fmt.Errorf("%s: %w", field, rlp.ErrCanonInt)
	}
	x, ok := it.Uint()
	if !ok {
		return 0, fmt.Errorf("%s: %w: value exceeds 64 bits", field, ErrInvalidTransaction)
	}
	return x, nil
}

func decodeBig(it rlp.Item, field string) (*big.Int, error) {
	b, ok := it.Bytes()
	if !ok {
		return nil, fmt.Errorf("%s: %w", field, rlp.ErrExpectedString)
	}
	if len(b) > 0 && b[0] == 0 {
		return nil, fmt.Errorf("%s: %w", field, rlp.ErrCanonInt)
	}
	return new(big.Int).SetBytes(b), nil
}

func bigOrZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}
