package table

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"Source", "alpha"},
		{"Category", "tools"},
		{"Icon", "x"},
	}
	got := Format(rows, nil, 1)
	assert.Equal(t, []string{
		"Source   alpha",
		"Category tools",
		"Icon     x",
	}, got)
}

func TestFormatRightAlignAndTruncate(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"b", "100"}, {"c", "a-very-long-value"}}
	got := Format(rows, []Column{{}, {Align: AlignRight, MaxWidth: 6}}, 2)
	assert.Equal(t, "a       1", got[0])
	assert.Equal(t, "b     100", got[1])
	assert.Equal(t, 9, ansi.StringWidth(got[2]))
	assert.Contains(t, got[2], "…")
}

func TestFormatMeasuresStyledCells(t *testing.T) {
	bold := lipgloss.NewStyle().Bold(true)
	rows := [][]string{{bold.Render("Name"), "x"}, {"Folder", "y"}}
	got := Format(rows, nil, 1)
	assert.Equal(t, "Name   x", ansi.Strip(got[0]))
	assert.Equal(t, "Folder y", ansi.Strip(got[1]))
}

func TestFormatEmpty(t *testing.T) {
	assert.Nil(t, Format(nil, nil, 1))
}
