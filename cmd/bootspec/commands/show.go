// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec"
)

type showParams struct {
	documentParams
	cli.JSONOutput
	Specialisation string `json:"specialisation" flag:"specialisation,s" desc:"show the specialisation whose name best matches this query"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print the boot entry a bootspec document describes",
		Description: `Resolve a bootspec document to the current schema and print its
fields: label, kernel, init, initrd, system, toplevel, kernel
parameters, specialisations and extension keys.

With --specialisation, prints one specialisation instead of the whole
document. The query is matched fuzzily against specialisation names:
an exact name always wins, otherwise the single best match is used.

With --json, prints the resolved document as JSON instead, syntax
highlighted when stdout is a terminal.`,
		Usage: "bootspec show [--json] [--cbor] [-s query] [file]",
		Examples: []cli.Example{
			{
				Description: "Summarize the running system",
				Command:     "bootspec show /run/current-system/boot.json",
			},
			{
				Description: "Show the no-gpu specialisation",
				Command:     "bootspec show -s gpu /run/current-system/boot.json",
			},
			{
				Description: "Print a CBOR document as JSON",
				Command:     "bootspec show --json --cbor boot.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			env, err := newEnvironment(params.configParams, "show")
			if err != nil {
				return err
			}
			return env.show(args, params)
		},
	}
}

func (e *environment) show(args []string, params showParams) error {
	resolved, err := e.readRecord(args, params.documentParams)
	if err != nil {
		return err
	}

	if params.Specialisation != "" {
		name, selected, err := bootspec.SelectSpecialisation(resolved, params.Specialisation)
		if err != nil {
			return err
		}
		e.logger.Debug("selected specialisation",
			"query", params.Specialisation,
			"specialisation", name.String(),
		)
		resolved = selected
	}

	if done, err := params.EmitJSON(e.stdout, resolved); done {
		return err
	}
	return writeSummary(e.stdout, resolved, "")
}

// writeSummary prints the record as an aligned key/value table, then
// each specialisation in name order, indented under its name.
func writeSummary(w io.Writer, resolved record, indent string) error {
	boot := resolved.Bootspec
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(key, value string) {
		fmt.Fprintf(tw, "%s%s:\t%s\n", indent, key, value)
	}

	row("Label", boot.Label)
	row("System", boot.System)
	row("Kernel", boot.Kernel)
	row("Kernel params", strings.Join(boot.KernelParams, " "))
	row("Init", boot.Init)
	if boot.Initrd != "" {
		row("Initrd", boot.Initrd)
	}
	if boot.InitrdSecrets != "" {
		row("Initrd secrets", boot.InitrdSecrets)
	}
	row("Toplevel", boot.Toplevel.String())
	if keys := extensionKeys(resolved); len(keys) > 0 {
		row("Extensions", strings.Join(keys, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range resolved.SpecialisationNames() {
		fmt.Fprintf(w, "%sSpecialisation %s:\n", indent, name)
		if err := writeSummary(w, resolved.Specialisations[name], indent+"  "); err != nil {
			return err
		}
	}
	return nil
}

func extensionKeys(resolved record) []string {
	keys := make([]string, 0, len(resolved.Extensions))
	for key := range resolved.Extensions {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
