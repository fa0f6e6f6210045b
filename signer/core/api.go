// Copyright 2018 The go-ethereum Authors
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

// Package core implements signing providers for transactions, personal
// messages and EIP-712 typed data.
package core

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/sunyihoo/ethcodec/accounts"
	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/core/types"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/signer/core/apitypes"
)

var (
	// ErrAccountNotFound is returned when the signer holds no key for the
	// requested account.
	ErrAccountNotFound = accounts.ErrUnknownAccount

	// ErrNoAccounts is returned by Accounts when nothing can be listed.
	ErrNoAccounts = errors.New("no accounts available")

	// ErrMissingField is returned when a mandatory transaction field is unset.
	// ErrMissingField 在交易缺少必填字段时返回。
	ErrMissingField = errors.New("mandatory field missing")

	// ErrCancelled is returned when the request was denied by the UI or its
	// context ended before it was signed.
	// ErrCancelled 在请求被 UI 拒绝或其上下文在签名前结束时返回。
	ErrCancelled = errors.New("request cancelled")
)

// SignProvider is the account-facing surface of a signer: it lists the
// accounts it controls and produces signatures for transactions, personal
// messages and typed data.
//
// SignProvider 是签名器面向账户的接口：列出其控制的账户，并为交易、个人消息和类型化数据生成签名。
type SignProvider interface {
	// Accounts returns the addresses available on the given network.
	Accounts(ctx context.Context, networkID uint64) ([]common.Address, error)

	// SignTx signs tx as account for the given chain and returns the canonical
	// encoding of the signed transaction.
	SignTx(ctx context.Context, account common.Address, tx *types.Transaction, networkID, chainID uint64) ([]byte, error)

	// SignData signs the EIP-191 personal message hash of data. The signature
	// is [R || S || V] with V being 27 or 28.
	SignData(ctx context.Context, account common.Address, data []byte, networkID uint64) ([]byte, error)

	// SignTypedData signs the EIP-712 digest of typedData. The signature is
	// [R || S || V] with V being 27 or 28.
	SignTypedData(ctx context.Context, account common.Address, typedData apitypes.TypedData, networkID uint64) ([]byte, error)
}

// UIClientAPI specifies what method a UI needs to implement to be able to be used as a
// UI for the signer
//
// UIClientAPI 指定了 UI 需要实现的方法，以便用作签名器的 UI
type UIClientAPI interface {
	// ApproveTx prompt the user for confirmation to request to sign Transaction
	ApproveTx(request *SignTxRequest) (SignTxResponse, error)
	// ApproveSignData prompt the user for confirmation to request to sign data
	ApproveSignData(request *SignDataRequest) (SignDataResponse, error)
	// ApproveListing prompt the user for confirmation to list accounts
	// the list of accounts to list can be modified by the UI
	ApproveListing(request *ListRequest) (ListResponse, error)
}

// Metadata about a request
// 请求的元数据
type Metadata struct {
	Remote    string `json:"remote"`
	Scheme    string `json:"scheme"`
	UserAgent string `json:"User-Agent"`
	Origin    string `json:"Origin"`
	NetworkID uint64 `json:"networkId"`
}

type metadataKey struct{}

// WithMetadata returns a copy of ctx carrying m.
func WithMetadata(ctx context.Context, m Metadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, m)
}

// MetadataFromContext extracts Metadata from a given context.Context
func MetadataFromContext(ctx context.Context) Metadata {
	if m, ok := ctx.Value(metadataKey{}).(Metadata); ok {
		return m
	}
	return Metadata{Remote: "NA", Scheme: "NA"}
}

// String implements Stringer interface
func (m Metadata) String() string {
	s, err := json.Marshal(m)
	if err == nil {
		return string(s)
	}
	return err.Error()
}

// types for the requests/response types between signer and UI
// 签名器与 UI 之间请求和响应类型的定义
type (
	// SignTxRequest contains info about a Transaction to sign
	SignTxRequest struct {
		From        common.Address     `json:"from"`
		Transaction *types.Transaction `json:"transaction"`
		ChainID     uint64             `json:"chainId"`
		Meta        Metadata           `json:"meta"`
	}
	// SignTxResponse result from SignTxRequest
	SignTxResponse struct {
		// The UI may make changes to the TX. A nil transaction keeps the request's.
		Transaction *types.Transaction `json:"transaction"`
		Approved    bool               `json:"approved"`
	}
	SignDataRequest struct {
		ContentType string                    `json:"content_type"`
		Address     common.Address            `json:"address"`
		Rawdata     []byte                    `json:"raw_data"`
		Messages    []*apitypes.NameValueType `json:"messages"`
		Hash        hexutil.Bytes             `json:"hash"`
		Meta        Metadata                  `json:"meta"`
	}
	SignDataResponse struct {
		Approved bool `json:"approved"`
	}
	ListRequest struct {
		Accounts []accounts.Account `json:"accounts"`
		Meta     Metadata           `json:"meta"`
	}
	ListResponse struct {
		Accounts []accounts.Account `json:"accounts"`
	}
)

// KeyStoreSigner is a SignProvider over in-memory secp256k1 keys. Requests
// are passed to the UI for approval when one is configured.
//
// KeyStoreSigner 是基于内存中 secp256k1 密钥的 SignProvider。配置了 UI 时请求需经 UI 批准。
type KeyStoreSigner struct {
	UI UIClientAPI // nil approves everything

	mu    sync.RWMutex
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

// NewKeyStoreSigner creates a signer holding the given keys.
func NewKeyStoreSigner(ui UIClientAPI, keys ...*ecdsa.PrivateKey) *KeyStoreSigner {
	ks := &KeyStoreSigner{UI: ui, keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for _, key := range keys {
		ks.Add(key)
	}
	return ks
}

// Add stores key and returns its address. Adding a key twice is a no-op.
func (ks *KeyStoreSigner) Add(key *ecdsa.PrivateKey) common.Address {
	addr := crypto.PubkeyToAddress(key.PublicKey)

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if _, ok := ks.keys[addr]; !ok {
		ks.keys[addr] = key
		ks.order = append(ks.order, addr)
	}
	return addr
}

func (ks *KeyStoreSigner) key(addr common.Address) (*ecdsa.PrivateKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	key, ok := ks.keys[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrAccountNotFound, addr)
	}
	return key, nil
}

// Accounts returns the addresses of the held keys in insertion order. The
// UI may narrow the list.
func (ks *KeyStoreSigner) Accounts(ctx context.Context, networkID uint64) ([]common.Address, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	ks.mu.RLock()
	list := make([]accounts.Account, len(ks.order))
	for i, addr := range ks.order {
		list[i] = accounts.Account{Address: addr}
	}
	ks.mu.RUnlock()

	if ks.UI != nil {
		meta := MetadataFromContext(ctx)
		meta.NetworkID = networkID
		resp, err := ks.UI.ApproveListing(&ListRequest{Accounts: list, Meta: meta})
		if err != nil {
			return nil, err
		}
		list = resp.Accounts
	}
	if len(list) == 0 {
		return nil, ErrNoAccounts
	}
	addrs := make([]common.Address, len(list))
	for i, acc := range list {
		addrs[i] = acc.Address
	}
	log.Debug("Listed accounts", "network", networkID, "count", len(addrs))
	return addrs, nil
}

// SignTx signs a legacy transaction with EIP-155 replay protection and
// returns its canonical encoding.
//
// SignTx 使用 EIP-155 重放保护签名传统交易，并返回其规范编码。
func (ks *KeyStoreSigner) SignTx(ctx context.Context, account common.Address, tx *types.Transaction, networkID, chainID uint64) ([]byte, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction", ErrMissingField)
	}
	if missing := tx.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	meta := MetadataFromContext(ctx)
	meta.NetworkID = networkID
	req := &SignTxRequest{From: account, Transaction: tx, ChainID: chainID, Meta: meta}

	// We make the request prior to looking up if we actually have the account, to prevent
	// account-enumeration via the API
	// 先处理请求，然后再检查是否有对应的账户，以防止通过 API 枚举账户
	if ks.UI != nil {
		resp, err := ks.UI.ApproveTx(req)
		if err != nil {
			return nil, err
		}
		if !resp.Approved {
			return nil, ErrCancelled
		}
		if resp.Transaction != nil {
			if missing := resp.Transaction.Missing(); len(missing) > 0 {
				return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
			}
			logDiff(tx, resp.Transaction)
			tx = resp.Transaction
		}
	}
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	key, err := ks.key(account)
	if err != nil {
		return nil, err
	}
	signed, err := types.SignTx(tx, types.NewEIP155Signer(new(big.Int).SetUint64(chainID)), key)
	if err != nil {
		return nil, err
	}
	log.Debug("Signed transaction", "from", account, "hash", signed.Hash(), "chainid", chainID, "network", networkID, "meta", meta)
	return signed.MarshalBinary()
}

// logDiff logs each difference between the requested and the UI-modified
// transaction. It returns true if anything changed.
func logDiff(original, modified *types.Transaction) bool {
	modified0 := false
	if t0, t1 := original.To(), modified.To(); (t0 == nil) != (t1 == nil) || (t0 != nil && *t0 != *t1) {
		modified0 = true
		log.Info("Recipient-account changed by UI", "was", t0, "is", t1)
	}
	if g0, g1 := original.Gas(), modified.Gas(); g0 != g1 {
		modified0 = true
		log.Info("Gas changed by UI", "was", g0, "is", g1)
	}
	if a, b := original.GasPrice(), modified.GasPrice(); a.Cmp(b) != 0 {
		modified0 = true
		log.Info("GasPrice changed by UI", "was", a, "is", b)
	}
	if v0, v1 := original.Value(), modified.Value(); v0.Cmp(v1) != 0 {
		modified0 = true
		log.Info("Value changed by UI", "was", v0, "is", v1)
	}
	if d0, d1 := original.Data(), modified.Data(); !bytes.Equal(d0, d1) {
		modified0 = true
		log.Info("Data changed by UI", "was", hexutil.Bytes(d0), "is", hexutil.Bytes(d1))
	}
	if n0, n1 := original.Nonce(), modified.Nonce(); n0 != n1 {
		modified0 = true
		log.Info("Nonce changed by UI", "was", n0, "is", n1)
	}
	return modified0
}

// cancelled maps a finished context onto ErrCancelled.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
