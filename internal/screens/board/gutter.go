package board

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/geometry"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

type gutterCell struct {
	r     rune
	color string
}

// glyphs for one connector style.
type glyphs struct {
	vertical, horizontal rune
}

var (
	solidGlyphs  = glyphs{vertical: '│', horizontal: '─'}
	dottedGlyphs = glyphs{vertical: '┆', horizontal: '┄'}
)

// renderGutter draws connectors into a gutterWidth-wide strip for each of
// n board lines. Spines and branches are positioned from the geometry
// engine's pixel coordinates.
func renderGutter(conns []geometry.Connector, n int) []string {
	cells := make([][]gutterCell, n)
	for i := range cells {
		cells[i] = make([]gutterCell, gutterWidth)
	}
	set := func(line, col int, r rune, color string) {
		if line < 0 || line >= n || col < 0 || col >= gutterWidth {
			return
		}
		cells[line][col] = gutterCell{r: r, color: color}
	}

	for _, c := range conns {
		g := solidGlyphs
		if c.Style == links.StyleDotted {
			g = dottedGlyphs
		}
		col := min(int(c.SpineX/cellW), gutterWidth-2)
		top, bottom := pixelLine(c.SpineY1), pixelLine(c.SpineY2)
		for l := top; l <= bottom; l++ {
			set(l, col, g.vertical, c.Color)
		}
		for _, b := range c.Branches {
			line := pixelLine(b.Y)
			corner := '├'
			switch line {
			case top:
				corner = '╭'
			case bottom:
				corner = '╰'
			}
			set(line, col, corner, c.Color)
			for x := col + 1; x < gutterWidth; x++ {
				set(line, x, g.horizontal, c.Color)
			}
		}
	}

	out := make([]string, n)
	for i, row := range cells {
		var sb strings.Builder
		for _, cell := range row {
			if cell.r == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(theme.LinkColor(cell.color)).Render(string(cell.r)))
		}
		out[i] = sb.String()
	}
	return out
}

// pixelLine converts a vertical centre in pixels to a board line.
func pixelLine(y float64) int {
	return int((y - cellH/2) / cellH)
}
