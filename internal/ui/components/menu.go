package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/ui/text"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// MenuItem is one row of a Menu. Value, when set, renders the current
// setting in a column after the labels. Left and right call Adjust, or
// Action for rows without one, so toggles flip from either key.
type MenuItem struct {
	Label  string
	Value  func() string
	Adjust func(delta int) tea.Cmd
	Action func() tea.Cmd
}

var menuKeys = struct {
	up, down, left, right, press key.Binding
}{
	up:    key.NewBinding(key.WithKeys("up", "k")),
	down:  key.NewBinding(key.WithKeys("down", "j")),
	left:  key.NewBinding(key.WithKeys("left", "h", "-")),
	right: key.NewBinding(key.WithKeys("right", "l", "+", "=")),
	press: key.NewBinding(key.WithKeys("enter", "space")),
}

// Menu is a vertical list with a wrapping cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	n := len(m.Items)
	item := m.Items[m.Selected]
	switch {
	case key.Matches(kp, menuKeys.up):
		m.Selected = (m.Selected + n - 1) % n
	case key.Matches(kp, menuKeys.down):
		m.Selected = (m.Selected + 1) % n
	case key.Matches(kp, menuKeys.left):
		return m, item.step(-1)
	case key.Matches(kp, menuKeys.right):
		return m, item.step(1)
	case key.Matches(kp, menuKeys.press):
		if item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (it MenuItem) step(delta int) tea.Cmd {
	switch {
	case it.Adjust != nil:
		return it.Adjust(delta)
	case it.Action != nil && it.Value != nil:
		return it.Action()
	}
	return nil
}

func (m Menu) View() string {
	width := 0
	for _, it := range m.Items {
		width = max(width, text.Width(it.Label))
	}
	var b strings.Builder
	for i, it := range m.Items {
		line := it.Label
		if it.Value != nil {
			line = text.PadRight(it.Label, width+3) + it.Value()
		}
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
