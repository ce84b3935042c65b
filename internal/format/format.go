// Package format renders content lines for terminal display, with an
// optional right-aligned line-number gutter, tab expansion, and wrapping to
// the detected terminal width.
package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Defaults used when a Formatter field is left zero.
const (
	DefaultTabWidth    = 8
	DefaultGutterWidth = 6
)

// gutterSep separates the line-number gutter from the content.
const gutterSep = "  "

// WidthFunc reports the display width available for output.
// A return of 0 or less means the width is unknown and no wrapping occurs.
type WidthFunc func() int

// Formatter renders content lines. The zero value is usable: no line
// numbers, default tab stops, unbounded width.
type Formatter struct {
	// ShowNumbers enables the line-number gutter.
	ShowNumbers bool
	// TabWidth is the tab-stop width used when expanding tabs.
	TabWidth int
	// GutterWidth is the width of the line-number column.
	GutterWidth int
	// Width supplies the terminal width; nil means unbounded.
	Width WidthFunc
}

// New returns a Formatter that probes the terminal once per line via width.
func New(showNumbers bool, tabWidth int, width WidthFunc) *Formatter {
	return &Formatter{
		ShowNumbers: showNumbers,
		TabWidth:    tabWidth,
		Width:       width,
	}
}

// Format renders a single content line, returning one output line per wrap
// chunk. With numbers disabled the line is returned verbatim.
func (f *Formatter) Format(text string, num int) []string {
	if !f.ShowNumbers {
		return []string{text}
	}

	tabWidth := f.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	gutter := f.GutterWidth
	if gutter <= 0 {
		gutter = DefaultGutterWidth
	}

	expanded := ExpandTabs(text, tabWidth)

	avail := 0
	if f.Width != nil {
		if w := f.Width(); w > 0 {
			avail = w - gutter - len(gutterSep)
		}
	}

	chunks := splitCells(expanded, avail)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i == 0 {
			out = append(out, fmt.Sprintf("%*d%s%s", gutter, num, gutterSep, chunk))
		} else {
			out = append(out, strings.Repeat(" ", gutter)+gutterSep+chunk)
		}
	}
	return out
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// tabWidth, measured in display cells, so gutter-prefixed output keeps the
// original indentation.
func ExpandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	col := 0
	for _, r := range text {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// splitCells breaks text into chunks of at most avail display cells.
// avail <= 0 disables splitting. A wide rune never straddles a boundary.
func splitCells(text string, avail int) []string {
	if avail <= 0 || runewidth.StringWidth(text) <= avail {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	cells := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if cells+w > avail && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			cells = 0
		}
		cur.WriteRune(r)
		cells += w
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
