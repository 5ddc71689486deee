package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth matches the tab stops Emacs uses for org buffers
const DefaultTabWidth = 8

// ExpandTabs replaces tab characters with spaces respecting display column width
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += runeWidth(ru)
	}
	return builder.String()
}

// Indent returns the display column of the first non-blank character of line
func Indent(line string) int {
	line = ExpandTabs(line, DefaultTabWidth)
	column := 0
	for _, ru := range line {
		if ru != ' ' {
			break
		}
		column++
	}
	return column
}

// DisplayWidth reports the printable width of text accounting for wide runes
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += runeWidth(ru)
	}
	return width
}

// PadRight pads text with spaces up to the given display width
func PadRight(text string, width int) string {
	if w := DisplayWidth(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

func runeWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}
