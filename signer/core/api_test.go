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

package core

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/sunyihoo/ethcodec/accounts"
	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/core/types"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headlessUI is a test UI that records requests and answers them with a
// fixed decision.
type headlessUI struct {
	approve  bool
	modifyTx func(*types.Transaction) *types.Transaction
	listing  func([]accounts.Account) []accounts.Account

	txRequests   []*SignTxRequest
	dataRequests []*SignDataRequest
}

func (ui *headlessUI) ApproveTx(req *SignTxRequest) (SignTxResponse, error) {
	ui.txRequests = append(ui.txRequests, req)
	resp := SignTxResponse{Approved: ui.approve}
	if ui.modifyTx != nil {
		resp.Transaction = ui.modifyTx(req.Transaction)
	}
	return resp, nil
}

func (ui *headlessUI) ApproveSignData(req *SignDataRequest) (SignDataResponse, error) {
	ui.dataRequests = append(ui.dataRequests, req)
	return SignDataResponse{Approved: ui.approve}, nil
}

func (ui *headlessUI) ApproveListing(req *ListRequest) (ListResponse, error) {
	if ui.listing != nil {
		return ListResponse{Accounts: ui.listing(req.Accounts)}, nil
	}
	return ListResponse{Accounts: req.Accounts}, nil
}

var cowAddr = common.HexToAddress("0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826")

func cowKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte("cow")))
	require.NoError(t, err)
	return key
}

func otherKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(t, err)
	return key
}

func unsignedTx(t *testing.T) *types.Transaction {
	t.Helper()
	var (
		nonce = uint64(3)
		gas   = uint64(21000)
		to    = common.HexToAddress("0xf5745ddac99ee7b70518a9035c00cfd63c490b1d")
	)
	tx, err := types.NewTx(&types.LegacyTx{
		Nonce:    &nonce,
		GasPrice: big.NewInt(21_000_000_000),
		Gas:      &gas,
		To:       &to,
		Value:    big.NewInt(1),
	})
	require.NoError(t, err)
	return tx
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()

	_, err := NewKeyStoreSigner(nil).Accounts(ctx, 1)
	assert.ErrorIs(t, err, ErrNoAccounts)

	other := otherKey(t)
	ks := NewKeyStoreSigner(nil, cowKey(t), other)
	assert.Equal(t, cowAddr, ks.Add(cowKey(t)), "re-adding returns the same address")

	addrs, err := ks.Accounts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{cowAddr, crypto.PubkeyToAddress(other.PublicKey)}, addrs)

	ks.UI = &headlessUI{listing: func([]accounts.Account) []accounts.Account { return nil }}
	_, err = ks.Accounts(ctx, 1)
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestSignTx(t *testing.T) {
	ui := &headlessUI{approve: true}
	ks := NewKeyStoreSigner(ui, cowKey(t))
	ctx := WithMetadata(context.Background(), Metadata{Origin: "test"})

	raw, err := ks.SignTx(ctx, cowAddr, unsignedTx(t), 1, 128)
	require.NoError(t, err)

	signed, err := types.DecodeTransaction(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(128), signed.ChainId().Int64())
	from, err := signed.Sender(big.NewInt(128))
	require.NoError(t, err)
	assert.Equal(t, cowAddr, from)

	require.Len(t, ui.txRequests, 1)
	req := ui.txRequests[0]
	assert.Equal(t, cowAddr, req.From)
	assert.Equal(t, uint64(128), req.ChainID)
	assert.Equal(t, uint64(1), req.Meta.NetworkID)
	assert.Equal(t, "test", req.Meta.Origin)
}

func TestSignTxModifiedByUI(t *testing.T) {
	ui := &headlessUI{
		approve: true,
		modifyTx: func(tx *types.Transaction) *types.Transaction {
			var (
				nonce = tx.Nonce()
				gas   = uint64(50000)
			)
			mod, err := types.NewTx(&types.LegacyTx{
				Nonce: &nonce, GasPrice: tx.GasPrice(), Gas: &gas, To: tx.To(), Value: tx.Value(),
			})
			require.NoError(t, err)
			return mod
		},
	}
	ks := NewKeyStoreSigner(ui, cowKey(t))
	raw, err := ks.SignTx(context.Background(), cowAddr, unsignedTx(t), 1, 1)
	require.NoError(t, err)

	signed, err := types.DecodeTransaction(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(50000), signed.Gas())
}

func TestSignTxErrors(t *testing.T) {
	ctx := context.Background()
	ks := NewKeyStoreSigner(nil, cowKey(t))

	to := common.HexToAddress("0x01")
	incomplete, err := types.NewTx(&types.LegacyTx{To: &to})
	require.NoError(t, err)
	_, err = ks.SignTx(ctx, cowAddr, incomplete, 1, 1)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorContains(t, err, "nonce, gasPrice, gas")

	_, err = ks.SignTx(ctx, cowAddr, nil, 1, 1)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = ks.SignTx(ctx, common.HexToAddress("0x02"), unsignedTx(t), 1, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	denied := NewKeyStoreSigner(&headlessUI{approve: false}, cowKey(t))
	_, err = denied.SignTx(ctx, cowAddr, unsignedTx(t), 1, 1)
	assert.ErrorIs(t, err, ErrCancelled)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ks.SignTx(cctx, cowAddr, unsignedTx(t), 1, 1)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSignData(t *testing.T) {
	ui := &headlessUI{approve: true}
	ks := NewKeyStoreSigner(ui, cowKey(t))
	msg := []byte("hello world")

	sig, err := ks.SignData(context.Background(), cowAddr, msg, 1)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	addr, err := EcRecover(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, cowAddr, addr)
	assert.Contains(t, []byte{27, 28}, sig[64], "EcRecover must not modify the signature")

	require.Len(t, ui.dataRequests, 1)
	req := ui.dataRequests[0]
	assert.Equal(t, apitypes.MimetypeTextPlain, req.ContentType)
	assert.Equal(t, hexutil.Bytes(accounts.TextHash(msg)), req.Hash)

	_, err = ks.SignData(context.Background(), common.HexToAddress("0x02"), msg, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	denied := NewKeyStoreSigner(&headlessUI{approve: false}, cowKey(t))
	_, err = denied.SignData(context.Background(), cowAddr, msg, 1)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestEcRecoverErrors(t *testing.T) {
	_, err := EcRecover([]byte("x"), make([]byte, 64))
	assert.Error(t, err)

	sig := make([]byte, 65)
	sig[64] = 1
	_, err = EcRecover([]byte("x"), sig)
	assert.Error(t, err)
}

const mailJSON = `{
  "types": {
    "EIP712Domain": [
      {"name": "name", "type": "string"},
      {"name": "version", "type": "string"},
      {"name": "chainId", "type": "uint256"},
      {"name": "verifyingContract", "type": "address"}
    ],
    "Person": [
      {"name": "name", "type": "string"},
      {"name": "wallet", "type": "address"}
    ],
    "Mail": [
      {"name": "from", "type": "Person"},
      {"name": "to", "type": "Person"},
      {"name": "contents", "type": "string"}
    ]
  },
  "primaryType": "Mail",
  "domain": {
    "name": "Ether Mail",
    "version": "1",
    "chainId": 1,
    "verifyingContract": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
  },
  "message": {
    "from": {"name": "Cow", "wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"},
    "to": {"name": "Bob", "wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"},
    "contents": "Hello, Bob!"
  }
}`

func TestSignTypedData(t *testing.T) {
	var td apitypes.TypedData
	require.NoError(t, json.Unmarshal([]byte(mailJSON), &td))

	ui := &headlessUI{approve: true}
	ks := NewKeyStoreSigner(ui, cowKey(t))
	sig, err := ks.SignTypedData(context.Background(), cowAddr, td, 1)
	require.NoError(t, err)

	addr, err := EcRecoverTyped(td, sig)
	require.NoError(t, err)
	assert.Equal(t, cowAddr, addr)

	require.Len(t, ui.dataRequests, 1)
	req := ui.dataRequests[0]
	assert.Equal(t, apitypes.MimetypeTypedData, req.ContentType)
	assert.Equal(t, "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2", req.Hash.String())
	assert.NotEmpty(t, req.Messages)
	assert.Equal(t, cowAddr, req.Address)

	td.PrimaryType = "Letter"
	_, err = ks.SignTypedData(context.Background(), cowAddr, td, 1)
	assert.ErrorIs(t, err, apitypes.ErrUnknownType)
}

// The signature published with the EIP-712 Mail example.
func TestEcRecoverTypedReference(t *testing.T) {
	var td apitypes.TypedData
	require.NoError(t, json.Unmarshal([]byte(mailJSON), &td))

	sig := hexutil.MustDecode("0x4355c47d63924e8a72e509b65029052eb6c299d53a04e167c5775fd466751c9d07299936d304c153f6443dfa05f40ff007d72911b6f72307f996231605b915621c")
	addr, err := EcRecoverTyped(td, sig)
	require.NoError(t, err)
	assert.Equal(t, cowAddr, addr)
}
