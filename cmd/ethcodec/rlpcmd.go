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
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/ethcodec/common/hexutil"
	"github.com/sunyihoo/ethcodec/common/value"
	"github.com/sunyihoo/ethcodec/internal/flags"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/rlp"
	"github.com/urfave/cli/v2"
)

var (
	dumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "Print the decoded item tree in go-spew format",
		Category: flags.CodecCategory,
	}

	rlpCommand = &cli.Command{
		Name:  "rlp",
		Usage: "Recursive Length Prefix encoding",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode a JSON value as RLP",
				ArgsUsage: "<json|->",
				Action:    rlpEncode,
				Description: `
Encodes a JSON document as RLP and prints the result as 0x-prefixed hex.
Strings starting with 0x are hex byte strings, all other strings are UTF-8
text. Non-negative integers and booleans encode as big-endian integers,
null as the empty string and arrays as lists.`,
			},
			{
				Name:      "decode",
				Usage:     "Decode RLP into JSON",
				ArgsUsage: "<hex|->",
				Flags:     []cli.Flag{dumpFlag},
				Action:    rlpDecode,
				Description: `
Decodes a single canonical RLP value. Byte strings are printed as 0x hex and
lists as JSON arrays, the form accepted by 'rlp encode'.`,
			},
		},
	}
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func rlpEncode(ctx *cli.Context) error {
	input, err := readInput(ctx, 0, "JSON")
	if err != nil {
		return err
	}
	var v value.Value
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}
	item, err := itemFromValue(v)
	if err != nil {
		return err
	}
	enc := rlp.EncodeItem(item)
	log.Debug("Encoded RLP", "size", len(enc))
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(enc))
	return err
}

func rlpDecode(ctx *cli.Context) error {
	input, err := readInput(ctx, 0, "hex")
	if err != nil {
		return err
	}
	b, err := decodeHexArg(input)
	if err != nil {
		return err
	}
	item, err := rlp.DecodeDepth(b, currentConfig(ctx).Codec.MaxDepth)
	if err != nil {
		log.Debug("Rejected RLP input", "size", len(b), "err", err)
		return err
	}
	if ctx.Bool(dumpFlag.Name) {
		spewConfig.Fdump(ctx.App.Writer, item)
		return nil
	}
	out, err := json.Marshal(itemToValue(item))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}

// decodeHexArg decodes a hex argument with or without 0x prefix.
func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// itemFromValue converts a JSON value into an RLP item.
func itemFromValue(v value.Value) (rlp.Item, error) {
	switch v.Kind() {
	case value.KindNull:
		return rlp.NewBytes(nil), nil
	case value.KindBool:
		if b, _ := v.Bool(); b {
			return rlp.NewUint(1), nil
		}
		return rlp.NewUint(0), nil
	case value.KindInt:
		i, _ := v.Int()
		if i < 0 {
			return rlp.Item{}, fmt.Errorf("cannot encode negative integer %d", i)
		}
		return rlp.NewUint(uint64(i)), nil
	case value.KindFloat:
		f, _ := v.Float()
		return rlp.Item{}, fmt.Errorf("cannot encode number %v, use a 0x hex string for large integers", f)
	case value.KindString:
		s, _ := v.Str()
		if !strings.HasPrefix(s, "0x") {
			return rlp.NewString(s), nil
		}
		b, err := hexutil.Decode(s)
		if err != nil {
			return rlp.Item{}, fmt.Errorf("invalid hex string %q: %w", s, err)
		}
		return rlp.NewBytes(b), nil
	case value.KindArray:
		arr, _ := v.Array()
		elems := make([]rlp.Item, len(arr))
		for i, e := range arr {
			it, err := itemFromValue(e)
			if err != nil {
				return rlp.Item{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = it
		}
		return rlp.NewList(elems...), nil
	}
	return rlp.Item{}, fmt.Errorf("cannot encode JSON %s as RLP", v.Kind())
}

// itemToValue is the inverse of itemFromValue for byte strings and lists.
func itemToValue(it rlp.Item) value.Value {
	if elems, ok := it.List(); ok {
		arr := make([]value.Value, len(elems))
		for i, e := range elems {
			arr[i] = itemToValue(e)
		}
		return value.Array(arr...)
	}
	b, _ := it.Bytes()
	return value.FromData(b)
}
