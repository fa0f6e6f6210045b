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
	"os"

	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/internal/flags"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/signer/core"
	"github.com/sunyihoo/ethcodec/signer/core/apitypes"
	"github.com/urfave/cli/v2"
)

var (
	preimageFlag = &cli.BoolFlag{
		Name:     "preimage",
		Usage:    "Also print the encoded type, domain separator and digest pre-image",
		Category: flags.CodecCategory,
	}

	eip712Command = &cli.Command{
		Name:  "eip712",
		Usage: "EIP-712 typed structured data",
		Subcommands: []*cli.Command{
			{
				Name:      "hash",
				Usage:     "Compute the signing digest of typed data",
				ArgsUsage: "<file|->",
				Flags:     []cli.Flag{preimageFlag},
				Action:    eip712Hash,
			},
			{
				Name:      "sign",
				Usage:     "Sign typed data",
				ArgsUsage: "<file|->",
				Flags:     []cli.Flag{keyFileFlag},
				Action:    eip712Sign,
			},
			{
				Name:      "recover",
				Usage:     "Recover the address that signed typed data",
				ArgsUsage: "<file|-> <signature>",
				Action:    eip712Recover,
			},
		},
	}
)

// readTypedData loads a typed data document from the file named by the
// first argument, or from standard input for "-".
func readTypedData(ctx *cli.Context) (apitypes.TypedData, error) {
	var (
		td   apitypes.TypedData
		data []byte
	)
	if ctx.NArg() == 0 {
		return td, fmt.Errorf("missing typed data file argument")
	}
	if file := ctx.Args().First(); file == "-" {
		input, err := readInput(ctx, 0, "typed data")
		if err != nil {
			return td, err
		}
		data = []byte(input)
	} else {
		var err error
		if data, err = os.ReadFile(file); err != nil {
			return td, err
		}
	}
	if err := json.Unmarshal(data, &td); err != nil {
		return td, fmt.Errorf("invalid typed data: %w", err)
	}
	return td, nil
}

func eip712Hash(ctx *cli.Context) error {
	td, err := readTypedData(ctx)
	if err != nil {
		return err
	}
	digest, preimage, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	if ctx.Bool(preimageFlag.Name) {
		encType, err := td.EncodeType(td.PrimaryType)
		if err != nil {
			return err
		}
		separator, err := td.DomainSeparator()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "type:      %s\n", encType)
		fmt.Fprintf(w, "domain:    %s\n", separator.Hex())
		fmt.Fprintf(w, "preimage:  %s\n", hexutil.Encode([]byte(preimage)))
		fmt.Fprintf(w, "digest:    ")
	}
	_, err = fmt.Fprintln(w, hexutil.Encode(digest))
	return err
}

func eip712Sign(ctx *cli.Context) error {
	td, err := readTypedData(ctx)
	if err != nil {
		return err
	}
	chainID := currentConfig(ctx).Codec.ChainID
	if td.Domain.ChainId != nil {
		chainID = td.Domain.ChainId.ToInt().Uint64()
	}
	signer, reqctx, account, err := newSigner(ctx, chainID)
	if err != nil {
		return err
	}
	sig, err := signer.SignTypedData(reqctx, account, td, chainID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(sig))
	return err
}

func eip712Recover(ctx *cli.Context) error {
	td, err := readTypedData(ctx)
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
	addr, err := core.EcRecoverTyped(td, sig)
	if err != nil {
		return err
	}
	log.Debug("Recovered typed data signer", "type", td.PrimaryType, "address", addr)
	_, err = fmt.Fprintln(ctx.App.Writer, addr.Hex())
	return err
}
