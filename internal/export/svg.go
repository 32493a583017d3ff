package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/abhisek/pyqtrack/internal/geometry"
	"github.com/abhisek/pyqtrack/internal/links"
)

// WriteSVG renders b as a standalone SVG document.
func WriteSVG(w io.Writer, b Board) error {
	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(px(b.Width), px(b.Height))
	canvas.Title("PYQ tracker")
	canvas.Rect(0, 0, px(b.Width), px(b.Height), "fill:"+colorBackground)

	font := fmt.Sprintf("font-family:monospace;font-size:%dpx", px(b.FontSize))
	canvas.Text(gutter, px(margin+b.FontSize), progressLine(b.Progress), font+";fill:"+colorMuted)

	for _, sec := range b.Sections {
		svgSection(canvas, sec, b, font)
	}
	for _, c := range b.Connectors {
		svgConnector(canvas, c)
	}
	canvas.End()
	return cw.err
}

func svgSection(canvas *svg.SVG, sec Section, b Board, font string) {
	r := sec.Rect
	canvas.Roundrect(px(r.X), px(r.Y), px(r.W), px(r.H), 6, 6,
		fmt.Sprintf("fill:%s;stroke:%s", colorCard, colorBorder))
	canvas.Rect(px(r.X), px(r.Y), titleWidth, px(r.H), "fill:"+colorTitleStrip)

	cx, cy := px(r.X+titleWidth/2), px(r.Y+r.H/2)
	canvas.Gtransform(fmt.Sprintf("rotate(-90 %d %d)", cx, cy))
	canvas.Text(cx, cy, sec.Title, font+";font-weight:bold;text-anchor:middle;dominant-baseline:middle;fill:"+colorTitleText)
	canvas.Gend()

	for _, card := range sec.Cards {
		canvas.Text(px(r.X+titleWidth+titleGap), px(card.Y+b.FontSize), "Q"+card.Number,
			font+";font-weight:bold;fill:"+colorText)
		for _, row := range card.Rows {
			fill, text := colorCard, colorText
			if row.Sub.IsDone {
				fill, text = colorDone, colorDoneText
			}
			rr := row.Rect
			canvas.Rect(px(rr.X), px(rr.Y), px(rr.W), px(rr.H), fmt.Sprintf("fill:%s;stroke:%s", fill, colorBorder))
			for i, line := range rowLines(row) {
				canvas.Text(px(rr.X+rowPadding), px(rr.Y+rowPadding+b.FontSize+float64(i)*b.LineHeight), line, font+";fill:"+text)
			}
		}
	}
}

func svgConnector(canvas *svg.SVG, c geometry.Connector) {
	st := fmt.Sprintf("stroke:%s;stroke-width:2;fill:none", c.Color)
	if c.Style == links.StyleDotted {
		st += fmt.Sprintf(";stroke-dasharray:%g %g", dotPattern[0], dotPattern[1])
	}
	canvas.Line(px(c.SpineX), px(c.SpineY1), px(c.SpineX), px(c.SpineY2), st)
	for _, br := range c.Branches {
		canvas.Line(px(c.SpineX), px(br.Y), px(br.TX), px(br.Y), st)
		canvas.Circle(px(br.TX), px(br.Y), 3, "fill:"+c.Color)
	}
}

// rowLines prefixes the first wrapped line with the checkbox and appends
// the frequency badge to the last.
func rowLines(row Row) []string {
	out := make([]string, len(row.Lines))
	copy(out, row.Lines)
	out[0] = checkbox(row.Sub.IsDone) + " " + out[0]
	if row.Badge != "" {
		out[len(out)-1] += " " + row.Badge
	}
	return out
}

func px(v float64) int { return int(math.Round(v)) }

// errWriter remembers the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.err = err
	return n, err
}
