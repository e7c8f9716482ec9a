// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec"
)

type digestParams struct {
	documentParams
	Verify string `json:"verify" flag:"verify" desc:"expected digest; exit 1 if the document does not match"`
}

func digestCommand() *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the content digest of a bootspec document",
		Description: `Resolve a bootspec document and print the BLAKE3 digest of its
canonical CBOR encoding as 64 hex characters.

The digest depends only on the document's content: reordering keys,
adding whitespace, or converting between JSON and CBOR does not change
it. Use --verify to compare against a known digest.`,
		Usage: "bootspec digest [--verify hex] [--cbor] [file]",
		Examples: []cli.Example{
			{
				Description: "Fingerprint the running system",
				Command:     "bootspec digest /run/current-system/boot.json",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			env, err := newEnvironment(params.configParams, "digest")
			if err != nil {
				return err
			}
			return env.digest(args, params)
		},
	}
}

func (e *environment) digest(args []string, params digestParams) error {
	var expected bootspec.Hash
	if params.Verify != "" {
		var err error
		expected, err = bootspec.ParseHash(params.Verify)
		if err != nil {
			return fmt.Errorf("--verify: %w", err)
		}
	}

	resolved, err := e.readRecord(args, params.documentParams)
	if err != nil {
		return err
	}
	hash, err := bootspec.Digest(resolved)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, hash)
	if params.Verify != "" && hash != expected {
		fmt.Fprintf(e.stdout, "mismatch: expected %s\n", expected)
		return &cli.ExitError{Code: 1}
	}
	return nil
}
