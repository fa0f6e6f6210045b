// Copyright 2017 The go-ethereum Authors
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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/ethcodec/rlp"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int
	Format    string
}

type codecConfig struct {
	ChainID  uint64 // default chain for transaction signing payloads
	MaxDepth int    // RLP list nesting ceiling
}

type ethcodecConfig struct {
	Log   logConfig
	Codec codecConfig
}

var defaultConfig = ethcodecConfig{
	Log: logConfig{
		Verbosity: 3,
		Format:    "terminal",
	},
	Codec: codecConfig{
		ChainID:  1,
		MaxDepth: rlp.MaxDepth,
	},
}

func loadConfig(file string, cfg *ethcodecConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the configuration: defaults, then the config file,
// then the command line flags.
//
// loadBaseConfig 依次应用默认值、配置文件和命令行标志。
func loadBaseConfig(ctx *cli.Context) (ethcodecConfig, error) {
	cfg := defaultConfig

	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Log.Format = ctx.String(logFormatFlag.Name)
	}
	if ctx.IsSet(chainIDFlag.Name) {
		cfg.Codec.ChainID = ctx.Uint64(chainIDFlag.Name)
	}
	if ctx.IsSet(maxDepthFlag.Name) {
		cfg.Codec.MaxDepth = ctx.Int(maxDepthFlag.Name)
	}
	if cfg.Codec.MaxDepth < 1 || cfg.Codec.MaxDepth > rlp.MaxDepth {
		return cfg, fmt.Errorf("RLP max depth %d out of range [1, %d]", cfg.Codec.MaxDepth, rlp.MaxDepth)
	}
	return cfg, nil
}

// currentConfig returns the configuration loaded for this run.
func currentConfig(ctx *cli.Context) ethcodecConfig {
	if cfg, ok := ctx.App.Metadata[configKey].(ethcodecConfig); ok {
		return cfg
	}
	return defaultConfig
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := currentConfig(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
