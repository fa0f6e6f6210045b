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

package crypto

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
)

var (
	testAddrHex = "0x970E8128AB834E8EAC17Ab8E3812F010678CF791"
	testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
)

func TestKeccak256Empty(t *testing.T) {
	want := hexutil.MustDecode("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	assert.Equal(t, want, Keccak256(nil))
	assert.Equal(t, common.BytesToHash(want), Keccak256Hash())
	assert.Equal(t, common.BytesToHash(want), HashData(NewKeccakState(), nil))
}

func TestKeccak256Chunks(t *testing.T) {
	whole := Keccak256([]byte("hello world"))
	split := Keccak256([]byte("hello"), []byte(" "), []byte("world"))
	assert.Equal(t, whole, split)
}

func TestToECDSAErrors(t *testing.T) {
	_, err := HexToECDSA("0000000000000000000000000000000000000000000000000000000000000000")
	assert.Error(t, err, "zero key")
	_, err = HexToECDSA("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	assert.Error(t, err, "key above curve order")
	_, err = HexToECDSA("zz9c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032")
	assert.Error(t, err)
	_, err = ToECDSA([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestPubkeyToAddress(t *testing.T) {
	key, err := HexToECDSA(testPrivHex)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddrHex), PubkeyToAddress(key.PublicKey))

	prefixed, err := HexToECDSA("0x" + testPrivHex)
	require.NoError(t, err)
	assert.Equal(t, FromECDSA(key), FromECDSA(prefixed))
}

func TestSignAndRecover(t *testing.T) {
	key, err := HexToECDSA(testPrivHex)
	require.NoError(t, err)
	addr := common.HexToAddress(testAddrHex)

	msg := Keccak256([]byte("foo"))
	sig, err := Sign(msg, key)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	assert.True(t, sig[RecoveryIDOffset] == 0 || sig[RecoveryIDOffset] == 1)

	recovered, err := Ecrecover(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, FromECDSAPub(&key.PublicKey), recovered)

	pub, err := SigToPub(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, addr, PubkeyToAddress(*pub))

	assert.True(t, VerifySignature(recovered, msg, sig[:64]))
	assert.True(t, VerifySignature(CompressPubkey(pub), msg, sig[:64]))

	// a different digest recovers a different key
	other, err := Ecrecover(Keccak256([]byte("bar")), sig)
	if err == nil {
		assert.False(t, bytes.Equal(recovered, other))
	}
}

func TestSignInvalidDigest(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	_, err = Sign([]byte{1, 2, 3}, key)
	assert.Error(t, err)
	_, err = Ecrecover(make([]byte, 32), make([]byte, 10))
	assert.Error(t, err)
}

func TestUnmarshalPubkey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	enc := FromECDSAPub(&key.PublicKey)
	require.Len(t, enc, 65)

	pub, err := UnmarshalPubkey(enc)
	require.NoError(t, err)
	assert.Equal(t, 0, pub.X.Cmp(key.PublicKey.X))
	assert.Equal(t, 0, pub.Y.Cmp(key.PublicKey.Y))

	_, err = UnmarshalPubkey(enc[:64])
	assert.Equal(t, errInvalidPubkey, err)
}

func TestValidateSignatureValues(t *testing.T) {
	one, zero := common.Big1, common.Big0
	assert.True(t, ValidateSignatureValues(0, one, one, true))
	assert.True(t, ValidateSignatureValues(1, one, one, true))
	assert.False(t, ValidateSignatureValues(2, one, one, true))
	assert.False(t, ValidateSignatureValues(0, zero, one, true))
	assert.False(t, ValidateSignatureValues(0, one, zero, true))
	assert.False(t, ValidateSignatureValues(0, one, secp256k1N, false))
	upper := new(big.Int).Add(secp256k1halfN, one)
	assert.False(t, ValidateSignatureValues(0, one, upper, true))
	assert.True(t, ValidateSignatureValues(0, one, upper, false))
}

func TestLoadECDSA(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		// good
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\r"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\r\n"},
		// bad
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n\n\n",
			err:   "key file too long, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdefX",
			err:   "invalid character 'X' at end of key file",
		},
	}
	for _, test := range tests {
		file := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(file, []byte(test.input), 0600))
		_, err := LoadECDSA(file)
		if test.err == "" {
			assert.NoError(t, err, "input %q", test.input)
		} else {
			assert.EqualError(t, err, test.err, "input %q", test.input)
		}
	}
}

func TestSaveECDSA(t *testing.T) {
	file := filepath.Join(t.TempDir(), "key")
	key, err := HexToECDSA(testPrivHex)
	require.NoError(t, err)
	require.NoError(t, SaveECDSA(file, key))

	loaded, err := LoadECDSA(file)
	require.NoError(t, err)
	assert.Equal(t, testAddrHex, PubkeyToAddress(loaded.PublicKey).Hex())
}
