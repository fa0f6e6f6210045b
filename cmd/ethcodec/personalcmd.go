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
	"fmt"

	"github.com/sunyihoo/ethcodec/accounts"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/signer/core"
	"github.com/urfave/cli/v2"
)

var personalCommand = &cli.Command{
	Name:  "personal",
	Usage: "EIP-191 personal messages (eth_sign)",
	Description: `
Messages are taken as UTF-8 text and hashed as
keccak256("\x19Ethereum Signed Message:\n" + len(message) + message).`,
	Subcommands: []*cli.Command{
		{
			Name:      "hash",
			Usage:     "Compute the personal message hash",
			ArgsUsage: "<message|->",
			Action:    personalHash,
		},
		{
			Name:      "sign",
			Usage:     "Sign a personal message",
			ArgsUsage: "<message|->",
			Flags:     []cli.Flag{keyFileFlag},
			Action:    personalSign,
		},
		{
			Name:      "recover",
			Usage:     "Recover the address that signed a personal message",
			ArgsUsage: "<message|-> <signature>",
			Action:    personalRecover,
		},
	},
}

func personalHash(ctx *cli.Context) error {
	msg, err := readInput(ctx, 0, "message")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(accounts.TextHash([]byte(msg))))
	return err
}

func personalSign(ctx *cli.Context) error {
	msg, err := readInput(ctx, 0, "message")
	if err != nil {
		return err
	}
	chainID := currentConfig(ctx).Codec.ChainID
	signer, reqctx, account, err := newSigner(ctx, chainID)
	if err != nil {
		return err
	}
	sig, err := signer.SignData(reqctx, account, []byte(msg), chainID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(sig))
	return err
}

func personalRecover(ctx *cli.Context) error {
	msg, err := readInput(ctx, 0, "message")
	if err != nil {
		return err
	}
	if ctx.NArg() < 2 {
		return fmt.Errorf("missing signature argument")
	}
	sig, err := decodeHexArg(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	addr, err := core.EcRecover([]byte(msg), sig)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, addr.Hex())
	return err
}
