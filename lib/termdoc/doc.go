// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package termdoc renders Markdown reference documents as styled
// terminal text.
//
// Documents are parsed with goldmark (GFM tables and strikethrough
// enabled) and walked directly: inline content accumulates per block
// and is word-wrapped to the configured width when the block closes,
// so hard-wrapped source text reflows at any terminal width. Styling
// goes through a lipgloss renderer pinned to the caller's color
// profile; with [termenv.Ascii] the output is plain text, which is what
// pipes and tests receive. Fenced code blocks are highlighted with
// chroma.
package termdoc
