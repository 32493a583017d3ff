package board

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/geometry"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/text"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Cell metrics used to express terminal positions in the geometry
// engine's pixel space.
const (
	cellW = 8
	cellH = 16

	gutterWidth = 6 // columns left of the cards reserved for connectors
	columnGap   = 2
	stripWidth  = 3 // vertical semester title strip
	minCardCols = 30
)

// gridRow is one sub-question as laid out on screen.
type gridRow struct {
	ID    string
	Top   int // first line
	Lines int
	Col   int // left column of the section, gutter excluded
}

// grid is the board rendered to lines, without the gutter.
type grid struct {
	Lines []string
	Rows  []gridRow // cursor order
	Rects map[string]geometry.Rect
}

// gridInput is everything buildGrid reads.
type gridInput struct {
	Tree     tracker.Tree
	Links    []links.LinkEdge
	Settings settings.Settings
	Width    int // available columns including the gutter

	Cursor  string
	Anchor  string
	Visible map[string]bool // nil shows every row
}

// rowRender is a sub-question row before styling.
type rowRender struct {
	id    string
	lines []string // plain text, each no wider than the content width
	dot   string   // link colour of the trailing marker, if any
}

// section is one semester card before it is placed on the board.
type section struct {
	title string
	lines []string // styled, all of the same display width
	rows  []gridRow
}

func buildGrid(in gridInput) grid {
	s := in.Settings.Sanitize()
	cols := 1
	if s.TwoColumnLayout {
		cols = 2
	}
	avail := max(in.Width-gutterWidth, minCardCols)
	cardCols := min(s.CardColumns(), avail)
	if cols == 2 {
		cardCols = max(min(s.CardColumns(), (avail-columnGap)/2), minCardCols)
	}

	var freq map[string]int
	if s.ShowFrequency {
		freq = in.Tree.Frequency(in.Links)
	}

	var sections []section
	for _, sem := range in.Tree {
		sec, ok := renderSection(sem, in, s, cardCols, freq)
		if ok {
			sections = append(sections, sec)
		}
	}

	g := grid{Rects: make(map[string]geometry.Rect)}
	for i := 0; i < len(sections); i += cols {
		top := len(g.Lines)
		band := sections[i:min(i+cols, len(sections))]
		height := 0
		for _, sec := range band {
			height = max(height, len(sec.lines))
		}
		for l := range height {
			var sb strings.Builder
			for c, sec := range band {
				if c > 0 {
					sb.WriteString(strings.Repeat(" ", columnGap))
				}
				if l < len(sec.lines) {
					sb.WriteString(sec.lines[l])
				} else {
					sb.WriteString(strings.Repeat(" ", cardCols))
				}
			}
			g.Lines = append(g.Lines, sb.String())
		}
		// Rows are appended column by column so the cursor walks a whole
		// semester before moving to the next.
		for c, sec := range band {
			colX := c * (cardCols + columnGap)
			for _, r := range sec.rows {
				r.Top += top
				r.Col = colX
				g.Rows = append(g.Rows, r)
				g.Rects[r.ID] = geometry.Rect{
					X: float64((gutterWidth + colX) * cellW),
					Y: float64(r.Top * cellH),
					W: float64(cardCols * cellW),
					H: float64(r.Lines * cellH),
				}
			}
		}
		g.Lines = append(g.Lines, "")
	}
	return g
}

func renderSection(sem tracker.SemesterGroup, in gridInput, s settings.Settings, width int, freq map[string]int) (section, bool) {
	padX, padY, gap := settings.SpacingFor(s.CardPadding, true).Cells()
	padX = max(padX, 1)
	inner := width - 2 - stripWidth - 2*padX
	singleLine := s.FontSize <= 13

	type block struct {
		header string
		rows   []rowRender
	}
	var blocks []block
	for _, q := range sem.Questions {
		var rows []rowRender
		for _, sq := range q.SubQuestions {
			if in.Visible != nil && !in.Visible[sq.ID] {
				continue
			}
			rows = append(rows, rowRender{id: sq.ID, lines: rowText(sq, in, freq, inner, singleLine), dot: linkDot(in.Links, sq.ID)})
		}
		if len(rows) > 0 {
			blocks = append(blocks, block{header: "Q" + q.Number, rows: rows})
		}
	}
	if len(blocks) == 0 {
		return section{}, false
	}

	// Plain content lines first, then frame them.
	type contentLine struct {
		text  string
		style lipgloss.Style
		dot   string
	}
	var content []contentLine
	var rows []gridRow
	blank := contentLine{style: lipgloss.NewStyle()}
	for range padY {
		content = append(content, blank)
	}
	for bi, b := range blocks {
		if bi > 0 {
			for range gap {
				content = append(content, blank)
			}
		}
		content = append(content, contentLine{text: b.header, style: theme.QuestionNumber})
		for _, r := range b.rows {
			style := rowStyle(in.Tree, r.id, in)
			rows = append(rows, gridRow{ID: r.id, Top: len(content) + 1, Lines: len(r.lines)})
			for i, l := range r.lines {
				cl := contentLine{text: l, style: style}
				if i == len(r.lines)-1 {
					cl.dot = r.dot
				}
				content = append(content, cl)
			}
		}
	}
	for range padY {
		content = append(content, blank)
	}

	border := lipgloss.NewStyle().Foreground(theme.Border)
	strip := verticalTitle(sem.Title, len(content))
	pad := strings.Repeat(" ", padX)

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, border.Render("╭"+strings.Repeat("─", width-2)+"╮"))
	for i, c := range content {
		body := renderBody(pad+text.PadRight(text.Truncate(c.text, inner), inner)+pad, c.style, c.dot)
		lines = append(lines, border.Render("│")+theme.TitleStrip.Render(strip[i])+body+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", width-2)+"╯"))

	return section{title: sem.Title, lines: lines, rows: rows}, true
}

// renderBody styles a content line, giving a trailing link marker its
// link's colour.
func renderBody(line string, style lipgloss.Style, dot string) string {
	i := strings.LastIndex(line, linkMarker)
	if dot == "" || i < 0 {
		return style.Render(line)
	}
	return style.Render(line[:i]) +
		style.Foreground(theme.LinkColor(dot)).Render(linkMarker) +
		style.Render(line[i+len(linkMarker):])
}

// linkDot returns the colour of the first link touching id.
func linkDot(edges []links.LinkEdge, id string) string {
	if in := links.Involving(edges, id); len(in) > 0 {
		return in[0].Visual.Color
	}
	return ""
}

const linkMarker = "●"

// rowText lays out a sub-question as plain lines of at most width
// columns: a two-column marker, the checkbox, label, text, marks, badge
// and a link dot.
func rowText(sq tracker.SubQuestion, in gridInput, freq map[string]int, width int, singleLine bool) []string {
	marker := "  "
	switch sq.ID {
	case in.Anchor:
		marker = "◆ "
	case in.Cursor:
		marker = "▸ "
	}
	box := "[ ] "
	if sq.IsDone {
		box = "[✓] "
	}
	head := marker + box + sq.Label + " "
	body := sq.Text
	if sq.Marks != "" {
		body += " [" + sq.Marks + "]"
	}
	if badge := tracker.FrequencyBadge(freq[sq.ID]); badge != "" {
		body += " " + badge
	}
	if len(links.Involving(in.Links, sq.ID)) > 0 {
		body += " " + linkMarker
	}

	indent := text.Width(head)
	avail := max(width-indent, 8)
	if singleLine {
		return []string{head + text.Truncate(body, avail)}
	}
	wrapped := text.Wrap(body, avail)
	out := make([]string, len(wrapped))
	out[0] = head + wrapped[0]
	for i := 1; i < len(wrapped); i++ {
		out[i] = strings.Repeat(" ", indent) + wrapped[i]
	}
	return out
}

func rowStyle(tree tracker.Tree, id string, in gridInput) lipgloss.Style {
	style := theme.Body
	if sq, ok := tree.Find(id); ok && sq.IsDone {
		style = theme.Done
	}
	switch id {
	case in.Anchor:
		style = theme.Pending
	case in.Cursor:
		style = style.Inherit(theme.Cursor).Background(theme.CursorBg)
	}
	return style
}

// verticalTitle spreads title over n strip cells, centred vertically.
func verticalTitle(title string, n int) []string {
	runes := []rune(title)
	if len(runes) > n {
		runes = runes[:n]
	}
	cells := make([]string, n)
	start := (n - len(runes)) / 2
	for i := range cells {
		ch := " "
		if j := i - start; j >= 0 && j < len(runes) {
			ch = string(runes[j])
		}
		cells[i] = text.PadRight(" "+ch, stripWidth)
	}
	return cells
}
