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

// ethcodec is a command-line tool for the Ethereum wire encodings: RLP, the
// contract ABI, EIP-712 typed data and legacy transactions.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sunyihoo/ethcodec/internal/flags"
	"github.com/sunyihoo/ethcodec/log"
	"github.com/urfave/cli/v2"
)

const (
	clientIdentifier = "ethcodec" // Client identifier reported in signing request metadata
	envPrefix        = "ETHCODEC"
)

var app = flags.NewApp("the Ethereum codec command line interface")

var (
	configFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:     "chainid",
		Usage:    "Chain id used for EIP-155 transaction signing",
		Value:    defaultConfig.Codec.ChainID,
		Category: flags.CodecCategory,
	}
	maxDepthFlag = &cli.IntFlag{
		Name:     "rlp.maxdepth",
		Usage:    "Maximum list nesting accepted when decoding RLP",
		Value:    defaultConfig.Codec.MaxDepth,
		Category: flags.CodecCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value:    defaultConfig.Log.Verbosity,
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (terminal|logfmt|json)",
		Value:    defaultConfig.Log.Format,
		Category: flags.LoggingCategory,
	}
)

var globalFlags = []cli.Flag{
	configFileFlag,
	chainIDFlag,
	maxDepthFlag,
	verbosityFlag,
	logFormatFlag,
}

func init() {
	app.Flags = globalFlags
	app.Commands = []*cli.Command{
		rlpCommand,
		abiCommand,
		eip712Command,
		personalCommand,
		txCommand,
		dumpConfigCommand,
	}
	flags.AutoEnvVars(flags.Merge(globalFlags, commandFlags), envPrefix)
	app.Before = before
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// before loads the configuration, installs the log handler and reports
// stray environment variables. It runs ahead of every command.
func before(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	ctx.App.Metadata = map[string]interface{}{configKey: cfg}
	if err := setupLogging(ctx.App.ErrWriter, cfg.Log); err != nil {
		return err
	}
	flags.CheckEnvVars(ctx, flags.Merge(globalFlags, commandFlags), envPrefix)
	log.Debug("Loaded configuration", "chainid", cfg.Codec.ChainID, "maxdepth", cfg.Codec.MaxDepth)
	return nil
}

func setupLogging(w io.Writer, cfg logConfig) error {
	if w == nil {
		w = os.Stderr
	}
	handler, err := log.NewHandler(w, cfg.Format, log.FromVerbosity(cfg.Verbosity))
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// readInput returns the n-th positional argument. The argument "-" reads the
// whole standard input instead.
func readInput(ctx *cli.Context, n int, what string) (string, error) {
	if ctx.NArg() <= n {
		return "", fmt.Errorf("missing %s argument", what)
	}
	arg := ctx.Args().Get(n)
	if arg != "-" {
		return arg, nil
	}
	in := ctx.App.Reader
	if in == nil {
		in = os.Stdin
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
