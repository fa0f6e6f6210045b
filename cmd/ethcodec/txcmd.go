// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/core/types"
	"github.com/sunyihoo/ethcodec/internal/flags"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/rlp"
	"github.com/urfave/cli/v2"
)

var (
	nonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Sender nonce, overrides the transaction's",
		Category: flags.CodecCategory,
	}
	gasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit, overrides the transaction's",
		Category: flags.CodecCategory,
	}
	gasPriceFlag = &flags.BigFlag{
		Name:     "gasprice",
		Usage:    "Gas price in wei, overrides the transaction's",
		Category: flags.CodecCategory,
	}

	txCommand = &cli.Command{
		Name:  "tx",
		Usage: "Legacy (EIP-155) transactions",
		Description: `
Transactions are given as JSON objects with the fields nonce, gasPrice, gas,
to, value and input (or data), using 0x hex quantities, e.g.

    {"nonce":"0x9","gasPrice":"0x4a817c800","gas":"0x5208",
     "to":"0x3535353535353535353535353535353535353535","value":"0xde0b6b3a7640000"}

The chain id comes from --chainid or the configuration file.`,
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Print the EIP-155 signing payload and its hash",
				ArgsUsage: "<json|->",
				Flags:     []cli.Flag{nonceFlag, gasFlag, gasPriceFlag},
				Action:    txEncode,
			},
			{
				Name:      "sign",
				Usage:     "Sign a transaction and print its raw encoding",
				ArgsUsage: "<json|->",
				Flags:     []cli.Flag{keyFileFlag, nonceFlag, gasFlag, gasPriceFlag},
				Action:    txSign,
			},
			{
				Name:      "decode",
				Usage:     "Decode a raw signed transaction",
				ArgsUsage: "<hex|->",
				Action:    txDecode,
			},
		},
	}
)

type txEncodeResult struct {
	ChainID     hexutil.Uint64 `json:"chainId"`
	Payload     hexutil.Bytes  `json:"payload"`
	SigningHash common.Hash    `json:"signingHash"`
}

type txSignResult struct {
	Raw  hexutil.Bytes  `json:"raw"`
	Hash common.Hash    `json:"hash"`
	From common.Address `json:"from"`
}

// readTx parses the JSON transaction argument and applies the field
// override flags. Signature fields of the input are dropped.
func readTx(ctx *cli.Context) (*types.Transaction, error) {
	input, err := readInput(ctx, 0, "transaction JSON")
	if err != nil {
		return nil, err
	}
	tx := new(types.Transaction)
	if err := json.Unmarshal([]byte(input), tx); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}
	var (
		missing = tx.Missing()
		itx     = types.LegacyTx{To: tx.To(), Value: tx.Value(), Data: tx.Data()}
	)
	if !slices.Contains(missing, "nonce") {
		nonce := tx.Nonce()
		itx.Nonce = &nonce
	}
	if !slices.Contains(missing, "gas") {
		gas := tx.Gas()
		itx.Gas = &gas
	}
	if !slices.Contains(missing, "gasPrice") {
		itx.GasPrice = tx.GasPrice()
	}
	if ctx.IsSet(nonceFlag.Name) {
		nonce := ctx.Uint64(nonceFlag.Name)
		itx.Nonce = &nonce
	}
	if ctx.IsSet(gasFlag.Name) {
		gas := ctx.Uint64(gasFlag.Name)
		itx.Gas = &gas
	}
	if ctx.IsSet(gasPriceFlag.Name) {
		itx.GasPrice = flags.GlobalBig(ctx, gasPriceFlag.Name)
	}
	return types.NewTx(&itx)
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}

func txEncode(ctx *cli.Context) error {
	tx, err := readTx(ctx)
	if err != nil {
		return err
	}
	chainID := currentConfig(ctx).Codec.ChainID
	item, err := tx.RLPItem(new(big.Int).SetUint64(chainID))
	if err != nil {
		return err
	}
	hash, err := tx.SigningHash(new(big.Int).SetUint64(chainID))
	if err != nil {
		return err
	}
	return writeJSON(ctx, txEncodeResult{
		ChainID:     hexutil.Uint64(chainID),
		Payload:     rlp.EncodeItem(item),
		SigningHash: hash,
	})
}

func txSign(ctx *cli.Context) error {
	tx, err := readTx(ctx)
	if err != nil {
		return err
	}
	chainID := currentConfig(ctx).Codec.ChainID
	signer, reqctx, account, err := newSigner(ctx, chainID)
	if err != nil {
		return err
	}
	raw, err := signer.SignTx(reqctx, account, tx, chainID, chainID)
	if err != nil {
		return err
	}
	signed, err := types.DecodeTransaction(raw)
	if err != nil {
		return err
	}
	return writeJSON(ctx, txSignResult{Raw: raw, Hash: signed.Hash(), From: account})
}

func txDecode(ctx *cli.Context) error {
	input, err := readInput(ctx, 0, "hex")
	if err != nil {
		return err
	}
	raw, err := decodeHexArg(input)
	if err != nil {
		return err
	}
	tx, err := types.DecodeTransaction(raw)
	if err != nil {
		return err
	}
	from, err := tx.Sender(tx.ChainId())
	if err != nil {
		return err
	}
	log.Debug("Decoded transaction", "hash", tx.Hash(), "from", from, "protected", tx.Protected())

	enc, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(enc, &fields); err != nil {
		return err
	}
	if fields["from"], err = json.Marshal(from); err != nil {
		return err
	}
	return writeJSON(ctx, fields)
}
