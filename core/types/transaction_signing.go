// Copyright 2016 The go-ethereum Authors
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
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/rlp"
)

// sigCache is used to cache the derived sender and contains
// the signer used to derive it.
//
// sigCache 用于缓存派生的发送者，并包含用于派生的签名者。
type sigCache struct {
	signer Signer
	from   common.Address
}

// SignTx signs the transaction using the given signer and private key.
// SignTx 使用给定的签名者和私钥对交易签名。
func SignTx(tx *Transaction, s Signer, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h, err := s.Hash(tx)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.withSignature(s, sig)
}

// Sender returns the address derived from the signature (V, R, S) using secp256k1
// elliptic curve and an error if it failed deriving or upon an incorrect
// signature.
//
// Sender may cache the address, allowing it to be used regardless of
// signing method. The cache is invalidated if the cached signer does
// not match the signer used in the current call.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if sc := tx.from.Load(); sc != nil {
		// If the signer used to derive from in a previous
		// call is not the same as used current, invalidate
		// the cache.
		if sc.signer.Equal(signer) {
			return sc.from, nil
		}
	}
	addr, err := signer.Sender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&sigCache{signer: signer, from: addr})
	return addr, nil
}

// Signer encapsulates transaction signature handling. The name of this type is slightly
// misleading because Signers don't actually sign, they're just for validating and
// processing of signatures.
//
// Signer 封装了交易签名处理。Signer 实际上并不签名，仅用于验证和处理签名。
type Signer interface {
	// Sender returns the sender address of the transaction.
	Sender(tx *Transaction) (common.Address, error)

	// SignatureValues returns the raw R, S, V values corresponding to the
	// given signature.
	SignatureValues(sig []byte) (r, s, v *big.Int, err error)
	ChainID() *big.Int

	// Hash returns 'signature hash', i.e. the transaction hash that is signed by the
	// private key. This hash does not uniquely identify the transaction.
	// 返回"签名哈希"，即由私钥签名的交易哈希。此哈希并不能唯一标识交易。
	Hash(tx *Transaction) (common.Hash, error)

	// Equal returns true if the given signer is the same as the receiver.
	Equal(Signer) bool
}

// EIP155Signer implements Signer using the EIP-155 rules. This accepts transactions which
// are replay-protected as well as unprotected homestead transactions.
//
// EIP155Signer 使用 EIP-155 规则实现了 Signer 接口。它接受受重放保护的交易以及不受保护的 Homestead 交易。
type EIP155Signer struct {
	chainId, chainIdMul *big.Int
}

// NewEIP155Signer returns a signer for the given chain. A nil chain id is zero.
// V = ChainID * 2 + 35 或 36。
func NewEIP155Signer(chainId *big.Int) EIP155Signer {
	if chainId == nil {
		chainId = new(big.Int)
	}
	return EIP155Signer{
		chainId:    chainId,
		chainIdMul: new(big.Int).Mul(chainId, big.NewInt(2)),
	}
}

func (s EIP155Signer) ChainID() *big.Int {
	return s.chainId
}

func (s EIP155Signer) Equal(s2 Signer) bool {
	eip155, ok := s2.(EIP155Signer)
	return ok && eip155.chainId.Cmp(s.chainId) == 0
}

var (
	big8  = big.NewInt(8)
	big35 = big.NewInt(35)
)

func (s EIP155Signer) Sender(tx *Transaction) (common.Address, error) {
	if !tx.Signed() {
		return common.Address{}, ErrUnsigned
	}
	if !tx.Protected() {
		return HomesteadSigner{}.Sender(tx)
	}
	if tx.v.Cmp(big35) < 0 {
		return common.Address{}, ErrInvalidSig
	}
	if chainID := tx.ChainId(); chainID.Cmp(s.chainId) != 0 {
		return common.Address{}, fmt.Errorf("%w: have %d want %d", ErrInvalidChainId, chainID, s.chainId)
	}
	h, err := s.Hash(tx)
	if err != nil {
		return common.Address{}, err
	}
	V, R, S := tx.RawSignatureValues()
	V = new(big.Int).Sub(V, s.chainIdMul)
	V.Sub(V, big8)
	return recoverPlain(h, R, S, V, true)
}

// SignatureValues returns signature values. This signature
// needs to be in the [R || S || V] format where V is 0 or 1.
func (s EIP155Signer) SignatureValues(sig []byte) (R, S, V *big.Int, err error) {
	R, S, V, err = decodeSignature(sig)
	if err != nil {
		return nil, nil, nil, err
	}
	V = big.NewInt(int64(sig[crypto.RecoveryIDOffset] + 35))
	V.Add(V, s.chainIdMul)
	return R, S, V, nil
}

// Hash returns the hash to be signed by the sender.
// It does not uniquely identify the transaction.
func (s EIP155Signer) Hash(tx *Transaction) (common.Hash, error) {
	it, err := tx.item(s.chainId, common.Big0, common.Big0)
	if err != nil {
		return common.Hash{}, err
	}
	return rlpHash(it), nil
}

// HomesteadSigner implements Signer interface using the
// homestead rules. Its signing payload is the six transaction fields
// without any chain id.
//
// HomesteadSigner 使用 Homestead 规则实现了 Signer 接口，签名载荷为不含链 ID 的六个字段。
type HomesteadSigner struct{}

func (hs HomesteadSigner) ChainID() *big.Int {
	return nil
}

func (hs HomesteadSigner) Equal(s2 Signer) bool {
	_, ok := s2.(HomesteadSigner)
	return ok
}

// SignatureValues returns signature values. This signature
// needs to be in the [R || S || V] format where V is 0 or 1.
func (hs HomesteadSigner) SignatureValues(sig []byte) (r, s, v *big.Int, err error) {
	return decodeSignature(sig)
}

func (hs HomesteadSigner) Hash(tx *Transaction) (common.Hash, error) {
	it, err := tx.item(nil, nil, nil)
	if err != nil {
		return common.Hash{}, err
	}
	elems, _ := it.List()
	return rlpHash(rlp.NewList(elems[:6]...)), nil
}

func (hs HomesteadSigner) Sender(tx *Transaction) (common.Address, error) {
	if !tx.Signed() {
		return common.Address{}, ErrUnsigned
	}
	h, err := hs.Hash(tx)
	if err != nil {
		return common.Address{}, err
	}
	v, r, s := tx.RawSignatureValues()
	return recoverPlain(h, r, s, v, true)
}

// SigningHash returns the EIP-155 hash that a sender signs for the given
// chain: the keccak256 of the unsigned nine field encoding.
//
// SigningHash 返回给定链上发送者需要签名的 EIP-155 哈希。
func (tx *Transaction) SigningHash(chainID *big.Int) (common.Hash, error) {
	if chainID != nil && chainID.Sign() < 0 {
		return common.Hash{}, errNegativeChainId
	}
	return NewEIP155Signer(chainID).Hash(tx)
}

// WithSignature returns a new transaction with the given [R || S || V]
// signature attached, where V is the 0/1 recovery id. The stored v is
// 35 + 2*chainID + recid.
//
// WithSignature 返回附带签名的新交易，存储的 v = 35 + 2*chainID + recid。
func (tx *Transaction) WithSignature(chainID *big.Int, sig []byte) (*Transaction, error) {
	if chainID != nil && chainID.Sign() < 0 {
		return nil, errNegativeChainId
	}
	return tx.withSignature(NewEIP155Signer(chainID), sig)
}

func (tx *Transaction) withSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(sig)
	if err != nil {
		return nil, err
	}
	cpy := &Transaction{inner: tx.inner.copy(), v: v, r: r, s: s}
	return cpy, nil
}

// Sender recovers the address that signed the transaction for the given
// chain.
// Sender 为给定链恢复签署交易的地址。
func (tx *Transaction) Sender(chainID *big.Int) (common.Address, error) {
	return Sender(NewEIP155Signer(chainID), tx)
}

// Protected says whether the transaction is replay-protected.
// Protected 判断交易是否受重放保护。
func (tx *Transaction) Protected() bool {
	return tx.v != nil && isProtectedV(tx.v)
}

// ChainId returns the EIP155 chain ID of the transaction. The return value will always be
// non-nil. For unprotected transactions, the return value is zero.
func (tx *Transaction) ChainId() *big.Int {
	if tx.v == nil {
		return new(big.Int)
	}
	return deriveChainId(tx.v)
}

func isProtectedV(V *big.Int) bool {
	if V.BitLen() <= 8 {
		v := V.Uint64()
		return v != 27 && v != 28
	}
	// anything not 27 or 28 is considered protected
	return true
}

func decodeSignature(sig []byte) (r, s, v *big.Int, err error) {
	if len(sig) != crypto.SignatureLength {
		return nil, nil, nil, fmt.Errorf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength)
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return nil, nil, nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSig, sig[crypto.RecoveryIDOffset])
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64] + 27})
	return r, s, v, nil
}

func recoverPlain(sighash common.Hash, R, S, Vb *big.Int, homestead bool) (common.Address, error) {
	if Vb.BitLen() > 8 {
		return common.Address{}, ErrInvalidSig
	}
	V := byte(Vb.Uint64() - 27)
	if !crypto.ValidateSignatureValues(V, R, S, homestead) {
		return common.Address{}, ErrInvalidSig
	}
	// encode the signature in uncompressed format
	r, s := R.Bytes(), S.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = V
	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.New("invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// deriveChainId derives the chain id from the given v parameter
// deriveChainId 从给定的 v 参数中推导出链 ID
func deriveChainId(v *big.Int) *big.Int {
	if v.BitLen() <= 64 {
		v := v.Uint64()
		if v == 27 || v == 28 {
			return new(big.Int)
		}
		return new(big.Int).SetUint64((v - 35) / 2)
	}
	vCopy := new(big.Int).Sub(v, big35)
	return vCopy.Rsh(vCopy, 1)
}
