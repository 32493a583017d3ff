package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Action is one button of a Buttons row. Enabled may be nil.
type Action struct {
	Label   string
	Press   func() tea.Cmd
	Enabled func() bool
}

func (a Action) enabled() bool {
	return a.Enabled == nil || a.Enabled()
}

// Buttons is a horizontal row of actions. Focus is the focused index, or
// -1 when the row does not have focus.
type Buttons struct {
	actions []Action
	Focus   int
}

func NewButtons(actions ...Action) Buttons {
	return Buttons{actions: actions, Focus: -1}
}

func (b Buttons) Len() int { return len(b.actions) }

// Update presses the focused action on enter or space and moves focus
// with left and right.
func (b Buttons) Update(msg tea.Msg) (Buttons, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || b.Focus < 0 || b.Focus >= len(b.actions) {
		return b, nil
	}
	switch kp.String() {
	case "left", "h":
		b.Focus = max(b.Focus-1, 0)
	case "right", "l":
		b.Focus = min(b.Focus+1, len(b.actions)-1)
	case "enter", "space":
		if a := b.actions[b.Focus]; a.Press != nil && a.enabled() {
			return b, a.Press()
		}
	}
	return b, nil
}

func (b Buttons) View() string {
	cells := make([]string, 0, 2*len(b.actions))
	for i, a := range b.actions {
		if i > 0 {
			cells = append(cells, "  ")
		}
		switch {
		case !a.enabled():
			cells = append(cells, theme.ButtonDisabled.Render(a.Label))
		case i == b.Focus:
			cells = append(cells, theme.ButtonActive.Render("▸ "+a.Label))
		default:
			cells = append(cells, theme.ButtonInactive.Render(a.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}
