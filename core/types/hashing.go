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
	"sync"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/rlp"
)

// hasherPool holds LegacyKeccak256 hashers for rlpHash.
// hasherPool 保存用于 rlpHash 的 LegacyKeccak256 哈希器。
var hasherPool = sync.Pool{
	New: func() interface{} { return crypto.NewKeccakState() },
}

// rlpHash encodes it and hashes the encoded bytes.
// rlpHash 对 it 进行编码并对编码后的字节进行哈希。
func rlpHash(it rlp.Item) (h common.Hash) {
	sha := hasherPool.Get().(crypto.KeccakState)
	defer hasherPool.Put(sha)
	sha.Reset()
	sha.Write(rlp.EncodeItem(it))
	sha.Read(h[:])
	return h
}
