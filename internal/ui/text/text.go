// Package text wraps and truncates strings by display width.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Wrap breaks s into lines no wider than width display columns. Words
// longer than a line are truncated. The result always has at least one
// line.
func Wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if w > width {
			word = runewidth.Truncate(word, width, Ellipsis)
			w = runewidth.StringWidth(word)
		}
		switch {
		case curW == 0:
		case curW+1+w > width:
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		default:
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += w
	}
	if curW > 0 || len(lines) == 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Truncate shortens s to width display columns.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, Ellipsis)
}

// Width returns the display width of s, which must not contain escape
// sequences.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width display columns.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
