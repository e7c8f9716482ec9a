// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec"
	"github.com/nikstur/bootspec-1/lib/bootspec/generation"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
)

type validateParams struct {
	documentParams
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check a bootspec document against the schema and policy",
		Description: `Decode a bootspec document, resolve it to the current schema, and
check it. Every required field must be present, every path must be
absolute, and each specialisation must itself be valid.

The policy section of the config file adds deployment rules: the set
of accepted systems, and whether every path must lie in the Nix store.

Prints "valid" and exits 0 on success. Prints "invalid: <reason>" and
exits 1 when the document is well-formed but fails validation or
policy, or was written for an unsupported schema version.`,
		Usage: "bootspec validate [--config path] [--cbor] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate the running system",
				Command:     "bootspec validate /run/current-system/boot.json",
			},
			{
				Description: "Validate against production policy",
				Command:     "bootspec validate --config /etc/bootspec.yaml result/boot.json",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			env, err := newEnvironment(params.configParams, "validate")
			if err != nil {
				return err
			}
			return env.validate(args, params)
		},
	}
}

func (e *environment) validate(args []string, params validateParams) error {
	decoded, err := e.readGeneration(args, params.documentParams)
	if err != nil {
		return err
	}

	if err := e.check(decoded); err != nil {
		fmt.Fprintf(e.stdout, "invalid: %v\n", err)
		return &cli.ExitError{Code: 1}
	}

	fmt.Fprintln(e.stdout, "valid")
	return nil
}

// check resolves the document and applies schema validation and the
// configured policy.
func (e *environment) check(decoded generation.Generation[v1.Extensions]) error {
	resolved, err := e.resolve(decoded)
	if err != nil {
		return err
	}
	if err := resolved.Validate(); err != nil {
		return err
	}
	if err := bootspec.CheckPolicy(resolved, e.config.BootspecPolicy()); err != nil {
		return err
	}
	e.logger.Debug("bootspec document is valid",
		"label", resolved.Bootspec.Label,
		"specialisations", len(resolved.Specialisations),
	)
	return nil
}
