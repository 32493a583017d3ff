package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

const searchLimit = 80

// Search is a one-line filter box. It starts blurred.
type Search struct {
	in textinput.Model
}

// NewSearch returns an empty, blurred search box.
func NewSearch(placeholder string) Search {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = searchLimit
	in.Blur()
	return Search{in: in}
}

func (s *Search) Focus() tea.Cmd { return s.in.Focus() }
func (s *Search) Blur()          { s.in.Blur() }

// Clear empties the box and blurs it.
func (s *Search) Clear() {
	s.in.Reset()
	s.in.Blur()
}

// Query is the trimmed text typed so far.
func (s Search) Query() string {
	return strings.TrimSpace(s.in.Value())
}

func (s *Search) SetWidth(w int) {
	s.in.SetWidth(w)
}

func (s Search) Update(msg tea.Msg) (Search, tea.Cmd) {
	var cmd tea.Cmd
	s.in, cmd = s.in.Update(msg)
	return s, cmd
}

// View styles the prompt at render time so it follows palette changes.
func (s Search) View() string {
	s.in.Prompt = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("/ ")
	return s.in.View()
}
