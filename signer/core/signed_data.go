// Copyright 2019 The go-ethereum Authors
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
	"errors"

	"github.com/sunyihoo/ethcodec/accounts"
	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/signer/core/apitypes"
)

// sign takes a request and creates a signature from it.
//
// Note, the produced signature conforms to the secp256k1 curve R, S and V values,
// where the V value will be 27 or 28 for legacy reasons.
//
// sign 接收一个请求并生成签名，V 值为 27 或 28。
func (ks *KeyStoreSigner) sign(ctx context.Context, req *SignDataRequest) ([]byte, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	// We make the request prior to looking up if we actually have the account, to prevent
	// account-enumeration via the API
	if ks.UI != nil {
		res, err := ks.UI.ApproveSignData(req)
		if err != nil {
			return nil, err
		}
		if !res.Approved {
			return nil, ErrCancelled
		}
	}
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	key, err := ks.key(req.Address)
	if err != nil {
		return nil, err
	}
	signature, err := crypto.Sign(req.Hash, key)
	if err != nil {
		return nil, err
	}
	signature[crypto.RecoveryIDOffset] += 27 // Transform V from 0/1 to 27/28 according to the yellow paper
	log.Debug("Signed data", "type", req.ContentType, "address", req.Address, "hash", req.Hash, "network", req.Meta.NetworkID)
	return signature, nil
}

// SignData signs keccak256("\x19Ethereum Signed Message:\n" + len(data) + data).
// SignData 对 EIP-191 个人消息哈希签名。
func (ks *KeyStoreSigner) SignData(ctx context.Context, account common.Address, data []byte, networkID uint64) ([]byte, error) {
	hash, msg := accounts.TextAndHash(data)
	meta := MetadataFromContext(ctx)
	meta.NetworkID = networkID
	req := &SignDataRequest{
		ContentType: apitypes.TextPlain.Mime,
		Address:     account,
		Rawdata:     []byte(msg),
		Messages: []*apitypes.NameValueType{{
			Name:  "message",
			Typ:   apitypes.MimetypeTextPlain,
			Value: string(data),
		}},
		Hash: hash,
		Meta: meta,
	}
	return ks.sign(ctx, req)
}

// SignTypedData signs EIP-712 conformant typed data
// hash = keccak256("\x19${byteVersion}${domainSeparator}${hashStruct(message)}")
//
// SignTypedData 签名符合 EIP-712 的类型化数据
func (ks *KeyStoreSigner) SignTypedData(ctx context.Context, account common.Address, typedData apitypes.TypedData, networkID uint64) ([]byte, error) {
	req, err := typedDataRequest(typedData)
	if err != nil {
		return nil, err
	}
	req.Address = account
	req.Meta = MetadataFromContext(ctx)
	req.Meta.NetworkID = networkID
	return ks.sign(ctx, req)
}

// typedDataRequest tries to convert the data into a SignDataRequest.
// typedDataRequest 尝试将数据转换为 SignDataRequest。
func typedDataRequest(typedData apitypes.TypedData) (*SignDataRequest, error) {
	sighash, rawData, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, err
	}
	messages, err := typedData.Format()
	if err != nil {
		return nil, err
	}
	return &SignDataRequest{
		ContentType: apitypes.DataTyped.Mime,
		Rawdata:     []byte(rawData),
		Messages:    messages,
		Hash:        sighash,
	}, nil
}

// EcRecover recovers the address associated with the given sig.
// Only compatible with `text/plain`
//
// Note, this function is compatible with eth_sign. As such it recovers
// the address of:
// hash = keccak256("\x19Ethereum Signed Message:\n${message length}${message}")
// addr = ecrecover(hash, signature)
//
// Note, the signature must conform to the secp256k1 curve R, S and V values, where
// the V value must be 27 or 28 for legacy reasons.
//
// EcRecover 恢复与给定签名关联的地址，仅兼容 `text/plain`。
func EcRecover(data hexutil.Bytes, sig hexutil.Bytes) (common.Address, error) {
	return recoverHash(accounts.TextHash(data), sig)
}

// EcRecoverTyped recovers the address that signed the EIP-712 digest of typedData.
func EcRecoverTyped(typedData apitypes.TypedData, sig hexutil.Bytes) (common.Address, error) {
	sighash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Address{}, err
	}
	return recoverHash(sighash, sig)
}

func recoverHash(hash []byte, sig hexutil.Bytes) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errors.New("signature must be 65 bytes long")
	}
	if sig[crypto.RecoveryIDOffset] != 27 && sig[crypto.RecoveryIDOffset] != 28 {
		return common.Address{}, errors.New("invalid Ethereum signature (V is not 27 or 28)")
	}
	plain := common.CopyBytes(sig)
	plain[crypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	rpk, err := crypto.SigToPub(hash, plain)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*rpk), nil
}
