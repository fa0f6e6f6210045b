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

package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

var (
	errInvalidSignature = errors.New("invalid signature length")
	errInvalidPrivKey   = errors.New("invalid private key")
)

// Ecrecover returns the uncompressed public key that created the given signature.
// Ecrecover 返回生成该签名的未压缩公钥（65 字节，0x04 前缀）。
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := recoverPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// recoverPub moves the recovery id to the front, where decred expects it as
// 27 + recid.
func recoverPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, errInvalidSignature
	}
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(hash))
	}
	compact := make([]byte, SignatureLength)
	compact[0] = sig[RecoveryIDOffset] + 27
	copy(compact[1:], sig[:RecoveryIDOffset])

	pub, _, err := decred_ecdsa.RecoverCompact(compact, hash)
	return pub, err
}

// SigToPub returns the public key that created the given signature.
func SigToPub(hash, sig []byte) (*ecdsa.PublicKey, error) {
	pub, err := recoverPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return &ecdsa.PublicKey{Curve: S256(), X: pub.X(), Y: pub.Y()}, nil
}

// Sign calculates an ECDSA signature over a 32 byte digest.
//
// The digest must not be chosen by an adversary; hash the payload first.
// The produced signature is in the [R || S || V] format where V is 0 or 1.
//
// Sign 对 32 字节摘要计算 ECDSA 签名，输出格式为 [R || S || V]，V 为 0 或 1。
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(hash))
	}
	if prv.Curve != S256() {
		return nil, errors.New("private key curve is not secp256k1")
	}
	var priv secp256k1.PrivateKey
	if overflow := priv.Key.SetByteSlice(prv.D.Bytes()); overflow || priv.Key.IsZero() {
		return nil, errInvalidPrivKey
	}
	defer priv.Zero()

	// decred emits [27+V || R || S]
	sig := decred_ecdsa.SignCompact(&priv, hash, false)
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = v
	return sig, nil
}

// VerifySignature checks that the given public key created signature over hash.
// The public key may be compressed (33 bytes) or uncompressed (65 bytes) and
// the signature must be the 64 byte [R || S] form. High-S signatures are
// rejected.
func VerifySignature(pubkey, hash, signature []byte) bool {
	if len(signature) != 64 {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) || s.SetByteSlice(signature[32:]) {
		return false
	}
	if s.IsOverHalfOrder() {
		return false
	}
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	return decred_ecdsa.NewSignature(&r, &s).Verify(hash, key)
}

// CompressPubkey encodes a public key to the 33-byte compressed format.
func CompressPubkey(pubkey *ecdsa.PublicKey) []byte {
	var x, y secp256k1.FieldVal
	x.SetByteSlice(pubkey.X.Bytes())
	y.SetByteSlice(pubkey.Y.Bytes())
	return secp256k1.NewPublicKey(&x, &y).SerializeCompressed()
}

// S256 returns an instance of the secp256k1 curve.
func S256() EllipticCurve {
	return btCurve{secp256k1.S256()}
}

type btCurve struct {
	*secp256k1.KoblitzCurve
}

// Marshal converts a point given as (x, y) into the 65 byte uncompressed form.
func (curve btCurve) Marshal(x, y *big.Int) []byte {
	byteLen := (curve.Params().BitSize + 7) / 8

	ret := make([]byte, 1+2*byteLen)
	ret[0] = 4 // uncompressed point

	x.FillBytes(ret[1 : 1+byteLen])
	y.FillBytes(ret[1+byteLen : 1+2*byteLen])
	return ret
}

// Unmarshal converts a point, serialised by Marshal, into an x, y pair. On
// error, x = nil.
func (curve btCurve) Unmarshal(data []byte) (x, y *big.Int) {
	byteLen := (curve.Params().BitSize + 7) / 8
	if len(data) != 1+2*byteLen || data[0] != 4 {
		return nil, nil
	}
	x = new(big.Int).SetBytes(data[1 : 1+byteLen])
	y = new(big.Int).SetBytes(data[1+byteLen:])
	return
}
