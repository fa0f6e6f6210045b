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
	"context"
	"fmt"
	"strings"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/crypto"
	"github.com/sunyihoo/ethcodec/internal/flags"
	"github.com/sunyihoo/ethcodec/internal/version"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/sunyihoo/ethcodec/signer/core"
	"github.com/urfave/cli/v2"
)

var keyFileFlag = &flags.PathFlag{
	Name:     "keyfile",
	Usage:    "File holding the hex-encoded secp256k1 private key to sign with",
	Category: flags.SigningCategory,
	Required: true,
}

// commandFlags are the flags of all subcommands, used for env var handling.
var commandFlags = []cli.Flag{
	dumpFlag,
	preimageFlag,
	keyFileFlag,
	nonceFlag,
	gasFlag,
	gasPriceFlag,
}

// auditUI approves every request after logging it. The command line itself
// is the user's consent, the log keeps a record of what was signed.
type auditUI struct{}

func (auditUI) ApproveTx(req *core.SignTxRequest) (core.SignTxResponse, error) {
	tx := req.Transaction
	log.Info("Signing transaction", "from", req.From, "to", tx.To(), "nonce", tx.Nonce(),
		"value", tx.Value(), "gas", tx.Gas(), "gasprice", tx.GasPrice(), "chainid", req.ChainID)
	return core.SignTxResponse{Approved: true}, nil
}

func (auditUI) ApproveSignData(req *core.SignDataRequest) (core.SignDataResponse, error) {
	log.Info("Signing data", "type", req.ContentType, "address", req.Address, "hash", req.Hash)
	if log.Root().Enabled(context.Background(), log.LevelDebug) {
		var sb strings.Builder
		for _, m := range req.Messages {
			sb.WriteString(m.Pprint(1))
		}
		log.Debug("Sign data request content", "content", sb.String())
	}
	return core.SignDataResponse{Approved: true}, nil
}

func (auditUI) ApproveListing(req *core.ListRequest) (core.ListResponse, error) {
	return core.ListResponse{Accounts: req.Accounts}, nil
}

// newSigner loads the key named by --keyfile into a sign provider and
// returns it with the request context and the account to sign as.
func newSigner(ctx *cli.Context, networkID uint64) (core.SignProvider, context.Context, common.Address, error) {
	key, err := crypto.LoadECDSA(ctx.String(keyFileFlag.Name))
	if err != nil {
		return nil, nil, common.Address{}, fmt.Errorf("failed to load key: %w", err)
	}
	var (
		signer core.SignProvider = core.NewKeyStoreSigner(auditUI{}, key)
		reqctx                   = core.WithMetadata(ctx.Context, core.Metadata{
			Remote:    "NA",
			Scheme:    "cli",
			UserAgent: clientIdentifier + "/" + version.WithMeta,
			Origin:    "NA",
		})
	)
	accounts, err := signer.Accounts(reqctx, networkID)
	if err != nil {
		return nil, nil, common.Address{}, err
	}
	return signer, reqctx, accounts[0], nil
}
