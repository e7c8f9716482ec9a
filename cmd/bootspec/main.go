// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command bootspec inspects, validates and converts NixOS bootspec
// documents.
package main

import (
	"fmt"
	"os"

	"github.com/nikstur/bootspec-1/cmd/bootspec/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like validate) return an
		// error with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
