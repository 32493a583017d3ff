package export

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/abhisek/pyqtrack/internal/links"
)

// WritePNG rasterises b. Emoji badges are not in the embedded font, so
// rows carry a textual "xN" frequency marker instead.
func WritePNG(w io.Writer, b Board) error {
	dc := gg.NewContext(px(b.Width), px(b.Height))
	dc.SetHexColor(colorBackground)
	dc.Clear()

	if err := dc.LoadFontFaceFromBytes(gomono.TTF, b.FontSize); err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	dc.SetHexColor(colorMuted)
	dc.DrawString(progressLine(b.Progress), gutter, margin+b.FontSize)

	for _, sec := range b.Sections {
		pngSection(dc, sec, b)
	}

	dc.SetLineWidth(2)
	for _, c := range b.Connectors {
		dc.SetHexColor(c.Color)
		if c.Style == links.StyleDotted {
			dc.SetDash(dotPattern[0], dotPattern[1])
		} else {
			dc.SetDash()
		}
		dc.DrawLine(c.SpineX, c.SpineY1, c.SpineX, c.SpineY2)
		dc.Stroke()
		for _, br := range c.Branches {
			dc.DrawLine(c.SpineX, br.Y, br.TX, br.Y)
			dc.Stroke()
		}
		dc.SetDash()
		for _, br := range c.Branches {
			dc.DrawCircle(br.TX, br.Y, 3)
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func pngSection(dc *gg.Context, sec Section, b Board) {
	r := sec.Rect
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 6)
	dc.SetHexColor(colorCard)
	dc.FillPreserve()
	dc.SetHexColor(colorBorder)
	dc.Stroke()

	dc.DrawRectangle(r.X, r.Y, titleWidth, r.H)
	dc.SetHexColor(colorTitleStrip)
	dc.Fill()

	cx, cy := r.X+titleWidth/2, r.Y+r.H/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), cx, cy)
	dc.SetHexColor(colorTitleText)
	dc.DrawStringAnchored(sec.Title, cx, cy, 0.5, 0.35)
	dc.Pop()

	for _, card := range sec.Cards {
		dc.SetHexColor(colorText)
		dc.DrawString("Q"+card.Number, r.X+titleWidth+titleGap, card.Y+b.FontSize)
		for _, row := range card.Rows {
			rr := row.Rect
			fill, text := colorCard, colorText
			if row.Sub.IsDone {
				fill, text = colorDone, colorDoneText
			}
			dc.DrawRectangle(rr.X, rr.Y, rr.W, rr.H)
			dc.SetHexColor(fill)
			dc.FillPreserve()
			dc.SetHexColor(colorBorder)
			dc.Stroke()

			dc.SetHexColor(text)
			for i, line := range pngLines(row) {
				dc.DrawString(line, rr.X+rowPadding, rr.Y+rowPadding+b.FontSize+float64(i)*b.LineHeight)
			}
		}
	}
}

func pngLines(row Row) []string {
	plain := row
	plain.Badge = ""
	lines := rowLines(plain)
	if row.Badge != "" {
		lines[len(lines)-1] += fmt.Sprintf(" x%d", row.Freq)
	}
	return lines
}
