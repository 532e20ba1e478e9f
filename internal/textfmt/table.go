// Package textfmt lays out plain-text columns for terminal output.
package textfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align selects how a cell is justified within its column.
type Align int

const (
	Left Align = iota
	Right
)

// Column is one fixed-width column of a Layout.
type Column struct {
	Width int
	Align Align
}

// Pad justifies value within the column. Values at or beyond the column
// width are returned unchanged.
func (c Column) Pad(value string) string {
	gap := c.Width - Width(value)
	if gap <= 0 {
		return value
	}
	if c.Align == Right {
		return strings.Repeat(" ", gap) + value
	}
	return value + strings.Repeat(" ", gap)
}

// Layout is an ordered set of columns. Cells are joined by one space and a
// left-aligned final column is never padded, so lines carry no trailing blanks.
type Layout []Column

// Fit sizes a layout to the widest cell of every column across lines.
// aligns[i] justifies column i; columns past the end of aligns are Left.
func Fit(aligns []Align, lines ...[]string) Layout {
	var layout Layout
	for _, cells := range lines {
		for i, cell := range cells {
			for len(layout) <= i {
				col := Column{}
				if n := len(layout); n < len(aligns) {
					col.Align = aligns[n]
				}
				layout = append(layout, col)
			}
			if w := Width(cell); w > layout[i].Width {
				layout[i].Width = w
			}
		}
	}
	return layout
}

// Line renders cells into the layout. Missing cells are blank and cells past
// the last column are dropped.
func (l Layout) Line(cells []string) string {
	var b strings.Builder
	last := len(l) - 1
	for i, col := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == last && col.Align == Left {
			b.WriteString(cell)
			continue
		}
		b.WriteString(col.Pad(cell))
	}
	return b.String()
}

// Table renders an optional header line followed by rows, with every column
// sized to its widest cell.
func Table(headers []string, rows [][]string, aligns []Align) []string {
	lines := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, headers)
	}
	lines = append(lines, rows...)

	layout := Fit(aligns, lines...)
	if len(layout) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, cells := range lines {
		out[i] = layout.Line(cells)
	}
	return out
}

// Width returns the terminal cell width of value.
func Width(value string) int {
	return runewidth.StringWidth(value)
}
