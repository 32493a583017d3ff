// Package export renders the tracker outside the terminal UI: the JSON
// record, SVG and PNG boards with link connectors, and markdown.
package export

import (
	"github.com/abhisek/pyqtrack/internal/geometry"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/text"
)

// Board metrics in pixels.
const (
	gutter      = 56 // room left of the cards for connector spines
	columnGap   = 32
	titleWidth  = 40
	titleGap    = 12
	rowPadding  = 6
	margin      = 16
	glyphAspect = 0.6 // monospace advance width per point of font size
)

// Row is one laid-out sub-question.
type Row struct {
	Sub   tracker.SubQuestion
	Rect  geometry.Rect
	Lines []string
	Freq  int    // semesters spanned by the row's link component
	Badge string // FrequencyBadge(Freq), empty when frequency is hidden
}

// Card is one laid-out question.
type Card struct {
	Number string
	Y      float64 // baseline area of the "Q" header
	Rows   []Row
}

// Section is one semester card.
type Section struct {
	Title string
	Rect  geometry.Rect
	Cards []Card
}

// Board is a full pixel layout of the tracker plus its connectors.
type Board struct {
	Width, Height float64
	FontSize      float64
	LineHeight    float64
	Sections      []Section
	Connectors    []geometry.Connector
	Progress      tracker.Progress
}

// Layout places every semester, question and sub-question using the
// display settings and computes the link connectors for the result.
func Layout(tree tracker.Tree, edges []links.LinkEdge, s settings.Settings) Board {
	s = s.Sanitize()
	font := float64(s.FontSize)
	lineH := font * 1.5
	pad, gap := settings.SpacingFor(s.CardPadding, true).Pixels()
	cardW := float64(s.CardWidth)

	cols := 1
	if s.TwoColumnLayout {
		cols = 2
	}

	var freq map[string]int
	if s.ShowFrequency {
		freq = tree.Frequency(edges)
	}

	b := Board{
		Width:      gutter + float64(cols)*cardW + float64(cols-1)*columnGap + margin,
		FontSize:   font,
		LineHeight: lineH,
		Progress:   tree.Progress(),
	}

	rowX := titleWidth + titleGap + pad
	rowW := cardW - rowX - pad
	wrapCols := max(int(rowW/(font*glyphAspect)), 8)

	rects := make(map[string]geometry.Rect)
	top := float64(margin) + lineH // header line holds the progress summary
	rowBottom := top
	for i, sem := range tree {
		col := i % cols
		if col == 0 {
			top = rowBottom
		}
		x := gutter + float64(col)*(cardW+columnGap)
		y := top + pad

		sec := Section{Title: sem.Title}
		for qi, q := range sem.Questions {
			if qi > 0 {
				y += gap
			}
			card := Card{Number: q.Number, Y: y}
			y += lineH
			for _, sq := range q.SubQuestions {
				lines := text.Wrap(sq.Label+" "+sq.Text+marksSuffix(sq.Marks), wrapCols)
				r := geometry.Rect{X: x + rowX, Y: y, W: rowW, H: float64(len(lines))*lineH + 2*rowPadding}
				rects[sq.ID] = r
				card.Rows = append(card.Rows, Row{
					Sub:   sq,
					Rect:  r,
					Lines: lines,
					Freq:  freq[sq.ID],
					Badge: tracker.FrequencyBadge(freq[sq.ID]),
				})
				y += r.H
			}
			sec.Cards = append(sec.Cards, card)
		}
		y += pad
		sec.Rect = geometry.Rect{X: x, Y: top, W: cardW, H: max(y-top, 2*pad+lineH)}
		b.Sections = append(b.Sections, sec)
		rowBottom = max(rowBottom, top+sec.Rect.H+columnGap)
	}

	b.Height = rowBottom + margin
	b.Connectors = geometry.Compute(edges, rects, geometry.Point{})
	return b
}

func marksSuffix(marks string) string {
	if marks == "" {
		return ""
	}
	return " [" + marks + "]"
}
