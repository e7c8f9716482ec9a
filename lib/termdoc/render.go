// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termdoc

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// minimumWidth bounds wrapping so deeply nested content stays legible.
const minimumWidth = 20

// wrapBreakpoints are the characters ansi.Wrap may break after, in
// addition to spaces.
const wrapBreakpoints = " ,.;-+|/"

// Theme holds the colors used for rendering.
type Theme struct {
	Heading lipgloss.Color
	Text    lipgloss.Color
	Faint   lipgloss.Color
	Border  lipgloss.Color

	// CodeStyle is the chroma style name for fenced code blocks.
	CodeStyle string
}

// DefaultTheme matches the palette of 256-color terminals with a dark
// background.
var DefaultTheme = Theme{
	Heading:   lipgloss.Color("75"),
	Text:      lipgloss.Color("252"),
	Faint:     lipgloss.Color("245"),
	Border:    lipgloss.Color("240"),
	CodeStyle: "monokai",
}

// Options configures [Render].
type Options struct {
	// Width is the wrap column. Values below a small minimum are
	// raised to it.
	Width int

	// Profile selects the escape sequences emitted. The zero value is
	// termenv.TrueColor; termenv.Ascii produces plain text.
	Profile termenv.Profile

	Theme Theme
}

// The goldmark parser configuration never changes and is safe to
// share; Parse creates per-call state.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// Render converts Markdown source to terminal text.
func Render(source string, options Options) string {
	if source == "" {
		return ""
	}
	if options.Theme == (Theme{}) {
		options.Theme = DefaultTheme
	}

	input := []byte(source)
	document := parser().Parser().Parse(text.NewReader(input))

	// SetColorProfile pins the profile; otherwise lipgloss re-detects
	// from the environment.
	lipRenderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(options.Profile))
	lipRenderer.SetColorProfile(options.Profile)

	renderer := &markdownRenderer{
		source:      input,
		options:     options,
		lipRenderer: lipRenderer,
	}
	_ = ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n") + "\n"
}

type markdownRenderer struct {
	source      []byte
	options     Options
	lipRenderer *lipgloss.Renderer

	output strings.Builder

	// inline collects styled fragments of the current paragraph,
	// heading or list item text until the block closes.
	inline strings.Builder

	prefixStack     []string
	linePrefix      string
	linePrefixWidth int

	// pendingBullet replaces linePrefix for the next emitted line.
	pendingBullet string

	// Counters rather than booleans so nested emphasis unwinds.
	boldCount          int
	italicCount        int
	strikethroughCount int

	listStack []listState

	trailingNewlines int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (r *markdownRenderer) newStyle() lipgloss.Style {
	return r.lipRenderer.NewStyle()
}

func (r *markdownRenderer) currentWidth() int {
	return max(r.options.Width-r.linePrefixWidth, minimumWidth)
}

func (r *markdownRenderer) pushPrefix(prefix string) {
	r.prefixStack = append(r.prefixStack, prefix)
	r.linePrefix += prefix
	r.linePrefixWidth += len(prefix)
}

func (r *markdownRenderer) popPrefix() {
	if len(r.prefixStack) == 0 {
		return
	}
	top := r.prefixStack[len(r.prefixStack)-1]
	r.prefixStack = r.prefixStack[:len(r.prefixStack)-1]
	r.linePrefix = r.linePrefix[:len(r.linePrefix)-len(top)]
	r.linePrefixWidth -= len(top)
}

func (r *markdownRenderer) inTightList() bool {
	return len(r.listStack) > 0 && r.listStack[len(r.listStack)-1].tight
}

// writeOutput appends s, tracking trailing newlines for blank line
// management.
func (r *markdownRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	r.output.WriteString(s)

	trimmed := strings.TrimRight(s, "\n")
	newlines := len(s) - len(trimmed)
	if trimmed == "" {
		r.trailingNewlines += newlines
	} else {
		r.trailingNewlines = newlines
	}
}

func (r *markdownRenderer) ensureNewline() {
	if r.output.Len() > 0 && r.trailingNewlines < 1 {
		r.writeOutput("\n")
	}
}

func (r *markdownRenderer) ensureBlankLine() {
	if r.output.Len() == 0 {
		return
	}
	for r.trailingNewlines < 2 {
		r.writeOutput("\n")
	}
}

func (r *markdownRenderer) consumeLinePrefix() string {
	if r.pendingBullet != "" {
		bullet := r.pendingBullet
		r.pendingBullet = ""
		return bullet
	}
	return r.linePrefix
}

// applyPrefixes prefixes each line of content; the first line takes
// the pending bullet if one is set.
func (r *markdownRenderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = r.consumeLinePrefix() + line
		} else {
			lines[index] = r.linePrefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func (r *markdownRenderer) flushInline() string {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return ""
	}
	return r.applyPrefixes(ansi.Wrap(content, r.currentWidth(), wrapBreakpoints))
}

func (r *markdownRenderer) styledText(content string) string {
	style := r.newStyle().Foreground(r.options.Theme.Text)
	if r.boldCount > 0 {
		style = style.Bold(true)
	}
	if r.italicCount > 0 {
		style = style.Italic(true)
	}
	if r.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// renderInlineContent renders a node's children to a string without
// disturbing the caller's inline buffer or style counters.
func (r *markdownRenderer) renderInlineContent(node ast.Node) string {
	saved := r.inline.String()
	savedBold, savedItalic, savedStrike := r.boldCount, r.italicCount, r.strikethroughCount

	r.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		_ = ast.Walk(child, r.walk)
	}
	result := r.inline.String()

	r.inline.Reset()
	r.inline.WriteString(saved)
	r.boldCount, r.italicCount, r.strikethroughCount = savedBold, savedItalic, savedStrike
	return result
}

// highlightCode colors code with chroma when the profile allows it.
func (r *markdownRenderer) highlightCode(code, language string) string {
	faint := r.newStyle().Foreground(r.options.Theme.Faint)
	if language == "" || r.options.Profile == termenv.Ascii {
		return faint.Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, formatterFor(r.options.Profile), r.options.Theme.CodeStyle); err != nil {
		return faint.Render(code)
	}
	return buffer.String()
}

// formatterFor maps a termenv profile to a chroma terminal formatter.
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	default:
		return "terminal16"
	}
}

func (r *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		if flushed := r.flushInline(); flushed != "" {
			r.writeOutput(flushed)
			r.ensureNewline()
			if !r.inTightList() {
				r.ensureBlankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
		} else {
			r.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			r.renderCodeBlock(node)
		}
		return ast.WalkSkipChildren, nil

	case ast.KindBlockquote:
		if entering {
			r.pushPrefix("│ ")
		} else {
			r.popPrefix()
			r.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			r.enterList(node.(*ast.List))
		} else {
			r.leaveList()
		}

	case ast.KindListItem:
		if entering {
			r.enterListItem()
		} else {
			r.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := r.newStyle().Foreground(r.options.Theme.Border).Render(strings.Repeat("─", r.currentWidth()))
			r.ensureBlankLine()
			r.writeOutput(r.applyPrefixes(rule))
			r.ensureNewline()
			r.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			r.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			r.boldCount += delta
		} else {
			r.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			r.renderCodeSpan(node)
		}
		return ast.WalkSkipChildren, nil

	case ast.KindLink:
		if entering {
			r.renderLink(node.(*ast.Link))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.newStyle().Foreground(r.options.Theme.Faint).Render(url))
		}

	case extast.KindStrikethrough:
		if entering {
			r.strikethroughCount++
		} else {
			r.strikethroughCount--
		}

	case extast.KindTable:
		if entering {
			r.renderTable(node.(*extast.Table))
		}
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (r *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// The heading style replaces the body style styledText applied.
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}

	style := r.newStyle().Bold(true).Foreground(r.options.Theme.Text)
	if heading.Level <= 2 {
		style = style.Foreground(r.options.Theme.Heading)
	}
	if heading.Level == 1 {
		content = strings.ToUpper(content)
	}

	r.ensureBlankLine()
	r.writeOutput(r.applyPrefixes(ansi.Wrap(style.Render(content), r.currentWidth(), wrapBreakpoints)))
	r.ensureNewline()
	r.ensureBlankLine()
}

func (r *markdownRenderer) renderCodeBlock(node ast.Node) {
	var language string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		language = string(fenced.Language(r.source))
	}

	var code strings.Builder
	lines := node.Lines()
	for index := range lines.Len() {
		segment := lines.At(index)
		code.Write(segment.Value(r.source))
	}

	highlighted := r.highlightCode(strings.TrimRight(code.String(), "\n"), language)
	r.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		r.writeOutput(r.consumeLinePrefix() + "    " + line)
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

func (r *markdownRenderer) enterList(list *ast.List) {
	start := 0
	if list.IsOrdered() {
		start = list.Start
	}
	r.listStack = append(r.listStack, listState{
		ordered: list.IsOrdered(),
		counter: start,
		tight:   list.IsTight,
	})
}

func (r *markdownRenderer) leaveList() {
	if len(r.listStack) > 0 {
		r.listStack = r.listStack[:len(r.listStack)-1]
	}
	if !r.inTightList() {
		r.ensureBlankLine()
	}
}

func (r *markdownRenderer) enterListItem() {
	if len(r.listStack) == 0 {
		return
	}
	top := &r.listStack[len(r.listStack)-1]

	bullet := "- "
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	}

	// The bullet replaces the whole prefix on the item's first line.
	r.pendingBullet = r.linePrefix + bullet
	r.pushPrefix(strings.Repeat(" ", len(bullet)))
}

func (r *markdownRenderer) leaveListItem() {
	r.popPrefix()
	if r.inTightList() {
		r.ensureNewline()
	} else {
		r.ensureBlankLine()
	}
}

func (r *markdownRenderer) handleText(node *ast.Text) {
	r.inline.WriteString(r.styledText(string(node.Segment.Value(r.source))))

	// Soft breaks become spaces so hard-wrapped source reflows.
	if node.SoftLineBreak() {
		r.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		r.inline.WriteString("\n")
	}
}

func (r *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch value := child.(type) {
		case *ast.Text:
			code.Write(value.Segment.Value(r.source))
		case *ast.String:
			code.Write(value.Value)
		}
	}
	r.inline.WriteString(r.newStyle().Foreground(r.options.Theme.Faint).Render(code.String()))
}

func (r *markdownRenderer) renderLink(link *ast.Link) {
	r.inline.WriteString(r.renderInlineContent(link))
	if destination := string(link.Destination); destination != "" {
		r.inline.WriteString(" " + r.newStyle().Foreground(r.options.Theme.Faint).Render("("+destination+")"))
	}
}
