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

package accounts

import (
	"testing"

	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/stretchr/testify/assert"
)

func TestTextHash(t *testing.T) {
	hash := TextHash([]byte("Hello Joe"))
	want := hexutil.MustDecode("0xa080337ae51c4e064c189e113edd0ba391df9206e2f49db658bb32cf2911730b")
	assert.Equal(t, want, hash)
}

func TestTextAndHash(t *testing.T) {
	hash, msg := TextAndHash([]byte("abc"))
	assert.Equal(t, "\x19Ethereum Signed Message:\n3abc", msg)
	assert.Equal(t, crypto.Keccak256([]byte(msg)), hash)

	hash, msg = TextAndHash(nil)
	assert.Equal(t, "\x19Ethereum Signed Message:\n0", msg)
	assert.Len(t, hash, 32)
}
