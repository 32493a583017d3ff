// Package linkdialog confirms a completed link gesture by choosing the
// connector style and colour.
package linkdialog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/components"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

var styles = []links.Style{links.StyleSolid, links.StyleDotted}

// LinkScreen asks for the style and colour of a new link.
type LinkScreen struct {
	from, to string // display names of the endpoints
	style    components.Choice
	color    components.Choice
	row      int
}

var (
	_ screen.Screen        = (*LinkScreen)(nil)
	_ screen.EscapeHandler = (*LinkScreen)(nil)
)

// New creates the dialog for pair, naming its endpoints from tree.
func New(tree tracker.Tree, pair links.Pair) *LinkScreen {
	colors := make([]components.Option, len(links.Palette))
	for i, c := range links.Palette {
		colors[i] = components.Option{Label: c.Name, Color: theme.LinkColor(c.Value)}
	}
	s := &LinkScreen{
		from:  describe(tree, pair.From),
		to:    describe(tree, pair.To),
		style: components.NewChoice("Style", []components.Option{{Label: "Solid (sync)"}, {Label: "Dotted (related)"}}),
		color: components.NewChoice("Colour", colors),
	}
	s.style.Focused = true
	return s
}

func (s *LinkScreen) ID() screen.ID { return screen.Link }

func (s *LinkScreen) Init() tea.Cmd { return nil }

func (s *LinkScreen) Title() string { return "Link" }

func (s *LinkScreen) HandlesEscape() bool { return true }

// KeyHints returns the key binding hints for the footer.
func (s *LinkScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "↑↓", Description: "Row"},
		{Key: "Enter", Description: "Link"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Selection returns the chosen style and colour value.
func (s *LinkScreen) Selection() (links.Style, string) {
	return styles[s.style.Selected], links.Palette[s.color.Selected].Value
}

func (s *LinkScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, screen.Dispatch(state.CancelLink{})
	case "enter":
		style, color := s.Selection()
		return s, screen.Dispatch(state.ConfirmLink{Style: style, Color: color})
	case "up", "k", "down", "j", "tab", "shift+tab":
		s.row = 1 - s.row
		s.style.Focused = s.row == 0
		s.color.Focused = s.row == 1
		return s, nil
	}
	s.style, _ = s.style.Update(msg)
	s.color, _ = s.color.Update(msg)
	return s, nil
}

func (s *LinkScreen) View(width, height int) string {
	style, color := s.Selection()
	preview := strings.Repeat("─", 12)
	if style == links.StyleDotted {
		preview = strings.Repeat("┄", 12)
	}
	preview = lipgloss.NewStyle().Foreground(theme.LinkColor(color)).Render(preview)

	note := "Completing either question completes the other."
	if style == links.StyleDotted {
		note = "Shown as related. Completion stays independent."
	}

	body := strings.Join([]string{
		theme.Title.Render("Link questions"),
		"",
		fmt.Sprintf("%s  %s  %s", theme.QuestionNumber.Render(s.from), preview, theme.QuestionNumber.Render(s.to)),
		"",
		s.style.View(),
		s.color.View(),
		"",
		theme.Hint.Render(note),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Dialog.Render(body))
}

func describe(tree tracker.Tree, id string) string {
	ref, ok := tree.Locate(id)
	if !ok {
		return id
	}
	sem := tree[ref.Semester]
	q := sem.Questions[ref.Question]
	return fmt.Sprintf("%s Q%s%s", sem.Title, q.Number, q.SubQuestions[ref.Sub].Label)
}
