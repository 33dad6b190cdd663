package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[0m"

// placeCentered draws fg over the middle of bg.
func (m *Model) placeCentered(fg, bg string) string {
	width := m.width
	if width <= 0 {
		width = lipgloss.Width(bg)
	}
	x := (width - lipgloss.Width(fg)) / 2
	y := (lipgloss.Height(bg) - lipgloss.Height(fg)) / 2
	return placeOverlay(x, y, fg, bg)
}

// placeOverlay draws fg over bg with its top-left corner at column x, row y.
// The background stays visible on both sides of each overlay row.
func placeOverlay(x, y int, fg, bg string) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}
	for i, fgLine := range fgLines {
		row := y + i
		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(fgLine), "")
		bgLines[row] = left + resetStyle + fgLine + resetStyle + right
	}
	return strings.Join(bgLines, "\n")
}

// padBlock pads every line of s to width cells so a box drawn around it has
// straight edges.
func padBlock(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if pad := width - ansi.StringWidth(line); pad > 0 {
			lines[i] = line + strings.Repeat(" ", pad)
		}
	}
	return strings.Join(lines, "\n")
}
