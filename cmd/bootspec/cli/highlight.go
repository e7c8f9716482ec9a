// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// defaultTerminalWidth is used when the terminal size is unknown.
const defaultTerminalWidth = 80

// ColorProfile returns the color capability of w, honoring NO_COLOR
// and CLICOLOR_FORCE. Anything that is not a terminal gets
// termenv.Ascii.
func ColorProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// TerminalWidth returns the column count of w when it is a terminal,
// or a default width otherwise.
func TerminalWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTerminalWidth
}

// Highlight writes source to w, syntax-highlighted as language when w
// supports color. Any other writer receives the bytes unchanged, so
// pipes and files stay machine-readable.
func Highlight(w io.Writer, source []byte, language string) error {
	formatter := formatterFor(ColorProfile(w))
	if formatter == "" {
		_, err := w.Write(source)
		return err
	}

	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, string(source), language, formatter, "monokai"); err != nil {
		// Fall back to plain output rather than failing the command.
		_, err := w.Write(source)
		return err
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

// formatterFor maps a color profile to a chroma terminal formatter, or
// "" for no color.
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
