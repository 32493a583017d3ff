// Package theme holds the colours and styles shared by every screen. The
// dark palette is active until the terminal reports a light background.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/links"
)

// Palette is one set of colours the styles are built from.
type Palette struct {
	Primary, Secondary, Accent color.Color
	Success, Error             color.Color
	Text, TextDim              color.Color
	Base, Surface, Border      color.Color
	CursorBg                   color.Color
}

var Dark = Palette{
	Primary:   lipgloss.Color("#3B82F6"),
	Secondary: lipgloss.Color("#14B8A6"),
	Accent:    lipgloss.Color("#F59E0B"),
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Base:      lipgloss.Color("#0F172A"),
	Surface:   lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
	CursorBg:  lipgloss.Color("#273549"),
}

var Light = Palette{
	Primary:   lipgloss.Color("#1D4ED8"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#B45309"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	Base:      lipgloss.Color("#F8FAFC"),
	Surface:   lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
	CursorBg:  lipgloss.Color("#DBEAFE"),
}

// Current palette colours, for styles built outside this package.
var (
	Primary, Secondary, Accent color.Color
	Success, Error             color.Color
	Text, TextDim              color.Color
	Base, Surface, Border      color.Color
	CursorBg                   color.Color
)

var (
	Title, Subtitle, Body, Hint lipgloss.Style

	Dialog, TitleStrip lipgloss.Style

	Cursor, Done, Pending, QuestionNumber lipgloss.Style

	Selected, Unselected lipgloss.Style
	Notice, Warning      lipgloss.Style
	Badge                lipgloss.Style

	ProgressFilled, ProgressEmpty                lipgloss.Style
	ButtonActive, ButtonInactive, ButtonDisabled lipgloss.Style
)

func init() { Use(Dark) }

// For picks the palette matching the terminal background.
func For(darkBackground bool) Palette {
	if darkBackground {
		return Dark
	}
	return Light
}

// Use rebuilds every style from p. Call it from the update loop only.
func Use(p Palette) {
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	Base, Surface, Border = p.Base, p.Surface, p.Border
	CursorBg = p.CursorBg

	plain := lipgloss.NewStyle()
	bold := plain.Bold(true)

	Title = bold.Foreground(p.Primary).Align(lipgloss.Center)
	Subtitle = plain.Foreground(p.TextDim).Align(lipgloss.Center)
	Body = plain.Foreground(p.Text)
	Hint = plain.Foreground(p.TextDim).Italic(true)

	Dialog = plain.Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 3)
	TitleStrip = bold.Background(p.Border).Foreground(p.Text)

	Cursor = bold.Background(p.CursorBg)
	Done = plain.Foreground(p.Success).Strikethrough(true)
	Pending = bold.Foreground(p.Accent)
	QuestionNumber = bold.Foreground(p.Primary)

	Selected = bold.Foreground(p.Primary)
	Unselected = plain.Foreground(p.Text)
	Notice = plain.Foreground(p.Base).Background(p.Accent).Padding(0, 1)
	Warning = bold.Foreground(p.Error)
	Badge = plain.Foreground(p.Base).Background(p.Secondary).Padding(0, 1)

	ProgressFilled = plain.Background(p.Secondary)
	ProgressEmpty = plain.Background(p.Border)

	button := plain.Padding(0, 2)
	ButtonActive = button.Bold(true).Background(p.Primary).Foreground(p.Text)
	ButtonInactive = button.Background(p.Surface).Foreground(p.TextDim)
	ButtonDisabled = button.Background(p.Surface).Foreground(p.Border)
}

// LinkColor returns the terminal colour for a link's hex value. Malformed
// values get the default link colour.
func LinkColor(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		hex = links.DefaultColor
	}
	return lipgloss.Color(hex)
}
