package components

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Option is one entry of a Choice.
type Option struct {
	Label string
	Color color.Color // optional swatch
}

// Choice is a horizontal single-select row.
type Choice struct {
	Label    string
	Options  []Option
	Selected int
	Focused  bool
}

// NewChoice creates a choice with the first option selected.
func NewChoice(label string, options []Option) Choice {
	return Choice{Label: label, Options: options}
}

// Update moves the selection with left/right (h/l) and number keys.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.Focused || len(c.Options) == 0 {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l":
		c.Selected = (c.Selected + 1) % len(c.Options)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '1'); n < len(c.Options) {
				c.Selected = n
			}
		}
	}
	return c, nil
}

// View renders the label and the options on one line.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(8)
	if c.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	parts := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		text := opt.Label
		if opt.Color != nil {
			text = lipgloss.NewStyle().Foreground(opt.Color).Render("●") + " " + text
		}
		if i == c.Selected {
			parts = append(parts, theme.Selected.Render("["+text+"]"))
		} else {
			parts = append(parts, theme.Unselected.Render(" "+text+" "))
		}
	}
	return labelStyle.Render(c.Label) + strings.Join(parts, " ")
}

// Value returns the selected option's label.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected].Label
}
