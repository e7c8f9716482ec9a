// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/nikstur/bootspec-1/cmd/bootspec/cli"
	"github.com/nikstur/bootspec-1/lib/bootspec"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/termdoc"
)

type schemaParams struct {
	cli.JSONOutput
	Describe bool `json:"describe" flag:"describe,d" desc:"print the document format reference"`
}

// schemaInfo describes the schema this build reads and writes.
type schemaInfo struct {
	Version           uint64 `json:"version"`
	Filename          string `json:"filename"`
	DocumentKey       string `json:"document_key"`
	SpecialisationKey string `json:"specialisation_key"`
}

func currentSchema() schemaInfo {
	return schemaInfo{
		Version:           bootspec.SchemaVersion,
		Filename:          bootspec.JSONFilename,
		DocumentKey:       bootspec.DocumentKey,
		SpecialisationKey: v1.SpecialisationKey,
	}
}

func schemaCommand() *cli.Command {
	var params schemaParams

	return &cli.Command{
		Name:    "schema",
		Summary: "Print the bootspec schema version this tool supports",
		Description: `Print the schema version this tool reads and writes, the
conventional filename, and the top-level document keys.

With --describe, prints the reference for the document format instead,
styled for the terminal.`,
		Usage:  "bootspec schema [--json | --describe]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("schema takes no arguments, got %q", args[0])
			}
			return writeSchema(os.Stdout, params)
		},
	}
}

func writeSchema(w io.Writer, params schemaParams) error {
	if params.Describe {
		_, err := io.WriteString(w, termdoc.Render(v1.Reference, termdoc.Options{
			Width:   cli.TerminalWidth(w),
			Profile: cli.ColorProfile(w),
		}))
		return err
	}

	info := currentSchema()
	if done, err := params.EmitJSON(w, info); done {
		return err
	}
	_, err := fmt.Fprintf(w, "version:         %d\nfilename:        %s\ndocument key:    %s\nspecialisations: %s\n",
		info.Version, info.Filename, info.DocumentKey, info.SpecialisationKey)
	return err
}
