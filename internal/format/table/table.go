// Package table lays out rows of cells in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column configures one column of a table. A positive MaxWidth truncates
// longer cells with an ellipsis.
type Column struct {
	Align    Alignment
	MaxWidth int
}

// Format returns the rows padded so that every column is as wide as its
// widest cell, with gap spaces between columns. Cells may carry ANSI styling;
// widths are measured in terminal cells. Trailing padding is dropped from the
// last column.
func Format(rows [][]string, columns []Column, gap int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			if c < len(columns) && columns[c].MaxWidth > 0 && ansi.StringWidth(cell) > columns[c].MaxWidth {
				cell = truncate.StringWithTail(cell, uint(columns[c].MaxWidth), "…")
			}
			cells[i][c] = cell
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	if gap < 0 {
		gap = 0
	}
	sep := strings.Repeat(" ", gap)
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(sep)
			}
			pad := widths[c] - ansi.StringWidth(cell)
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < colCount-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = b.String()
	}
	return out
}
