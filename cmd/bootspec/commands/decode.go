// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec/generation"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/codec"
)

type decodeParams struct {
	configParams
	HexInput bool `json:"hex" flag:"hex,x" desc:"input is hex-encoded CBOR"`
	Compact  bool `json:"compact" flag:"compact,c" desc:"compact output (no indentation)"`
	Diagnose bool `json:"diagnose" flag:"diagnose" desc:"print CBOR diagnostic notation instead of JSON"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a CBOR bootspec document to JSON",
		Description: `Read a CBOR bootspec document and write it as JSON on stdout,
pretty-printed unless -c is given. Input compressed by
"bootspec encode --compress" (zstd or lz4) is detected and
decompressed.

Documents from unsupported schema versions pass through unchanged.
With --diagnose the input is printed in CBOR diagnostic notation
(RFC 8949 section 8) without interpreting it as a bootspec document.`,
		Usage: "bootspec decode [--hex] [-c] [--diagnose] [file]",
		Examples: []cli.Example{
			{
				Description: "Round-trip a document",
				Command:     "bootspec encode boot.json | bootspec decode",
			},
			{
				Description: "Decode hex",
				Command:     "echo 'a2...' | bootspec decode --hex",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			env, err := newEnvironment(params.configParams, "decode")
			if err != nil {
				return err
			}
			return env.decode(args, params)
		},
	}
}

func (e *environment) decode(args []string, params decodeParams) error {
	data, err := readInput(args, e.stdin, params.HexInput)
	if err != nil {
		return err
	}
	data, err = codec.Decompress(data)
	if err != nil {
		return err
	}
	if err := codec.Wellformed(data); err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}
	if params.Diagnose {
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("diagnose CBOR: %w", err)
		}
		_, err = fmt.Fprintln(e.stdout, notation)
		return err
	}

	decoded, err := e.decodeDocument(data, true)
	if err != nil {
		return err
	}

	output, err := generation.Encode[v1.Extensions](decoded)
	if err != nil {
		return err
	}
	if !params.Compact {
		var indented bytes.Buffer
		if err := json.Indent(&indented, output, "", "  "); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		output = indented.Bytes()
	}
	return cli.Highlight(e.stdout, append(output, '\n'), "json")
}
