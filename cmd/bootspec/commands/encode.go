// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec/generation"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/codec"
)

type encodeParams struct {
	configParams
	HexOutput bool   `json:"hex"      flag:"hex,x"      desc:"write hex instead of raw CBOR"`
	Compress  string `json:"compress" flag:"compress,z" desc:"wrap the CBOR in a frame: zstd or lz4"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert a JSON bootspec document to canonical CBOR",
		Description: `Read a JSON (or JSONC) bootspec document and write it as Core
Deterministic CBOR on stdout. Equal documents always produce identical
bytes. With --compress zstd or --compress lz4, the CBOR is wrapped in
a frame of that format. Every command that reads CBOR detects and
unwraps either frame.

Documents from unsupported schema versions are re-encoded as-is.`,
		Usage: "bootspec encode [--hex] [--compress zstd|lz4] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode to a file",
				Command:     "bootspec encode boot.json > boot.cbor",
			},
			{
				Description: "Inspect the encoding",
				Command:     "bootspec encode --hex boot.json",
			},
			{
				Description: "Write a compressed cache entry",
				Command:     "bootspec encode -z lz4 boot.json > boot.cbor.lz4",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			env, err := newEnvironment(params.configParams, "encode")
			if err != nil {
				return err
			}
			return env.encode(args, params)
		},
	}
}

func (e *environment) encode(args []string, params encodeParams) error {
	compression, err := codec.ParseCompression(params.Compress)
	if err != nil {
		return fmt.Errorf("--compress: %w", err)
	}

	decoded, err := e.readGeneration(args, documentParams{})
	if err != nil {
		return err
	}

	data, err := generation.EncodeCBOR[v1.Extensions](decoded)
	if err != nil {
		return err
	}

	data, err = codec.Compress(data, compression)
	if err != nil {
		return err
	}

	if params.HexOutput {
		_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(data))
		return err
	}
	_, err = e.stdout.Write(data)
	return err
}
