// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termdoc

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// columnSeparator is placed between table columns.
const columnSeparator = "  "

// minimumColumnWidth is the narrowest a shrunken column may become.
const minimumColumnWidth = 3

func (r *markdownRenderer) renderTable(table *extast.Table) {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			header = r.collectTableRow(child)
		case extast.KindTableRow:
			rows = append(rows, r.collectTableRow(child))
		}
	}

	columnCount := len(header)
	if columnCount == 0 && len(rows) > 0 {
		columnCount = len(rows[0])
	}
	if columnCount == 0 {
		return
	}

	widths := make([]int, columnCount)
	for _, row := range append([][]string{header}, rows...) {
		for index, cell := range row {
			if index < columnCount {
				widths[index] = max(widths[index], lipgloss.Width(cell))
			}
		}
	}
	r.fitColumns(widths)

	r.ensureBlankLine()
	if len(header) > 0 {
		bold := r.newStyle().Bold(true).Foreground(r.options.Theme.Text)
		r.writeOutput(r.consumeLinePrefix() + r.formatTableRow(header, widths, table.Alignments, bold))
		r.ensureNewline()

		rules := make([]string, len(widths))
		for index, width := range widths {
			rules[index] = strings.Repeat("─", width)
		}
		border := r.newStyle().Foreground(r.options.Theme.Border)
		r.writeOutput(r.linePrefix + border.Render(strings.Join(rules, columnSeparator)))
		r.ensureNewline()
	}
	for _, row := range rows {
		r.writeOutput(r.linePrefix + r.formatTableRow(row, widths, table.Alignments, r.newStyle()))
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

// fitColumns narrows the widest column, one cell at a time, until the
// table fits the available space or every column is at the minimum.
func (r *markdownRenderer) fitColumns(widths []int) {
	total := len(columnSeparator) * (len(widths) - 1)
	for _, width := range widths {
		total += width
	}

	for available := r.currentWidth(); total > available; total-- {
		widest := 0
		for index, width := range widths {
			if width > widths[widest] {
				widest = index
			}
		}
		if widths[widest] <= minimumColumnWidth {
			return
		}
		widths[widest]--
	}
}

func (r *markdownRenderer) collectTableRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, r.renderInlineContent(cell))
		}
	}
	return cells
}

func (r *markdownRenderer) formatTableRow(cells []string, widths []int, alignments []extast.Alignment, style lipgloss.Style) string {
	parts := make([]string, len(widths))
	for index, width := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		if lipgloss.Width(cell) > width {
			cell = ansi.Truncate(cell, width, "…")
		}
		padding := max(width-lipgloss.Width(cell), 0)

		var alignment extast.Alignment
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			left := padding / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", padding-left)
		default:
			cell += strings.Repeat(" ", padding)
		}
		parts[index] = cell
	}
	return strings.TrimRight(style.Render(strings.Join(parts, columnSeparator)), " ")
}
