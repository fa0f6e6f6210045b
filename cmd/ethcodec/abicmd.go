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
	"strings"

	"github.com/sunyihoo/ethcodec/accounts/abi"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/urfave/cli/v2"
)

var abiCommand = &cli.Command{
	Name:  "abi",
	Usage: "Solidity contract ABI encoding",
	Subcommands: []*cli.Command{
		{
			Name:      "encode",
			Usage:     "ABI-encode a list of typed values",
			ArgsUsage: "<type> <value> [<type> <value> ...]",
			Action:    abiEncode,
			Description: `
Encodes the values as an ABI tuple. Integers are decimal or 0x hex, bytes are
0x hex and arrays are JSON arrays, e.g.

    ethcodec abi encode uint256 1 'address[]' '["0x00000000000000000000000000000000000000a1"]'`,
		},
		{
			Name:      "call",
			Usage:     "Encode a contract call: selector followed by the arguments",
			ArgsUsage: "<signature> [<value> ...]",
			Action:    abiCall,
			Description: `
Encodes a function call. The argument types are taken from the signature, e.g.

    ethcodec abi call 'transfer(address,uint256)' 0x00000000000000000000000000000000000000a1 1000`,
		},
	},
}

func abiEncode(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args)%2 != 0 {
		return fmt.Errorf("expected <type> <value> pairs, have %d arguments", len(args))
	}
	values := make([]abi.Value, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		v, err := parseTypedArg(args[i], args[i+1])
		if err != nil {
			return fmt.Errorf("argument %d: %w", i/2, err)
		}
		values = append(values, v)
	}
	enc, err := abi.EncodeBytes(values...)
	if err != nil {
		return err
	}
	log.Debug("Encoded ABI tuple", "values", len(values), "size", len(enc))
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(enc))
	return err
}

func abiCall(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing function signature")
	}
	signature := strings.ReplaceAll(ctx.Args().First(), " ", "")
	types, err := signatureTypes(signature)
	if err != nil {
		return err
	}
	args := ctx.Args().Tail()
	if len(args) != len(types) {
		return fmt.Errorf("%s takes %d arguments, have %d", signature, len(types), len(args))
	}
	values := make([]abi.Value, len(args))
	for i, arg := range args {
		if values[i], err = parseTypedArg(types[i], arg); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	enc, err := abi.EncodeCall(signature, values...)
	if err != nil {
		return err
	}
	log.Debug("Encoded ABI call", "signature", signature, "size", len(enc))
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(enc))
	return err
}

func parseTypedArg(typ, arg string) (abi.Value, error) {
	t, err := abi.NewType(typ)
	if err != nil {
		return abi.Value{}, err
	}
	return abi.ParseValue(t, arg)
}

// signatureTypes returns the parameter type names of a function signature
// such as "transfer(address,uint256)".
func signatureTypes(signature string) ([]string, error) {
	open, end := strings.IndexByte(signature, '('), strings.LastIndexByte(signature, ')')
	if open <= 0 || end != len(signature)-1 {
		return nil, fmt.Errorf("malformed function signature %q", signature)
	}
	params := signature[open+1 : end]
	if params == "" {
		return nil, nil
	}
	return strings.Split(params, ","), nil
}
