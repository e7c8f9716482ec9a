// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
)

// Root returns the top-level "bootspec" command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "bootspec",
		Summary: "Inspect, validate and convert bootspec documents",
		Description: `Inspect, validate and convert bootspec documents.

A bootspec document (boot.json) describes one NixOS system generation:
the kernel, initrd, init and kernel parameters a bootloader needs, plus
named specialisations and tool-specific extensions.

Documents are JSON (comments and trailing commas are accepted) or
Core Deterministic CBOR. Documents written against a newer schema than
this tool supports are reported as unsupported generations.`,
		Subcommands: []*cli.Command{
			validateCommand(),
			showCommand(),
			encodeCommand(),
			decodeCommand(),
			digestCommand(),
			schemaCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Validate the running system's bootspec",
				Command:     "bootspec validate /run/current-system/boot.json",
			},
			{
				Description: "Show a generation as highlighted JSON",
				Command:     "bootspec show --json /nix/var/nix/profiles/system/boot.json",
			},
			{
				Description: "Round-trip through CBOR",
				Command:     "bootspec encode boot.json | bootspec decode",
			},
		},
	}
}
