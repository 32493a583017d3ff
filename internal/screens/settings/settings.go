// Package settings is the display preferences screen.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/router"
	"github.com/abhisek/pyqtrack/internal/screen"
	prefs "github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/ui/components"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Source provides the current settings.
type Source interface {
	State() state.State
}

// SettingsScreen adjusts card width, font size, padding and the two
// display toggles. Every change is applied and saved immediately.
type SettingsScreen struct {
	src  Source
	menu components.Menu
}

var _ screen.Screen = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(src Source) *SettingsScreen {
	s := &SettingsScreen{src: src}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:  "Card width",
			Value:  func() string { c := s.current(); return fmt.Sprintf("◂ %dpx ▸  %d columns", c.CardWidth, c.CardColumns()) },
			Adjust: s.adjust(prefs.FieldCardWidth),
		},
		{
			Label:  "Font size",
			Value:  func() string { return fmt.Sprintf("◂ %dpx ▸  %s", s.current().FontSize, fontNote(s.current().FontSize)) },
			Adjust: s.adjust(prefs.FieldFontSize),
		},
		{
			Label:  "Card padding",
			Value:  func() string { return fmt.Sprintf("◂ %d ▸", s.current().CardPadding) },
			Adjust: s.adjust(prefs.FieldCardPadding),
		},
		{
			Label:  "Frequency badges",
			Value:  func() string { return onOff(s.current().ShowFrequency) },
			Action: s.toggle(func(c *prefs.Settings) { c.ShowFrequency = !c.ShowFrequency }),
		},
		{
			Label:  "Two columns",
			Value:  func() string { return onOff(s.current().TwoColumnLayout) },
			Action: s.toggle(func(c *prefs.Settings) { c.TwoColumnLayout = !c.TwoColumnLayout }),
		},
		{
			Label: "Restore defaults",
			Action: func() tea.Cmd {
				return screen.Dispatch(state.SetSettings{Settings: prefs.Defaults()})
			},
		},
	})
	return s
}

func (s *SettingsScreen) ID() screen.ID { return screen.Settings }

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) Title() string { return "Settings" }

// KeyHints returns the key binding hints for the footer.
func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "q" {
		return s, router.Back
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) View(width, height int) string {
	body := strings.Join([]string{
		theme.Title.Render("Display settings"),
		"",
		s.menu.View(),
		theme.Hint.Render("Changes are saved as you make them."),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Dialog.Render(body))
}

func (s *SettingsScreen) current() prefs.Settings {
	return s.src.State().Settings
}

func (s *SettingsScreen) adjust(f prefs.Field) func(int) tea.Cmd {
	return func(delta int) tea.Cmd {
		cur := s.current()
		next := cur.Adjust(f, delta)
		if next == cur {
			return nil
		}
		return screen.Dispatch(state.SetSettings{Settings: next})
	}
}

func (s *SettingsScreen) toggle(fn func(*prefs.Settings)) func() tea.Cmd {
	return func() tea.Cmd {
		next := s.current()
		fn(&next)
		return screen.Dispatch(state.SetSettings{Settings: next})
	}
}

func onOff(v bool) string {
	if v {
		return theme.Selected.Render("on")
	}
	return theme.Hint.Render("off")
}

// fontNote describes how the board renders a font size in a terminal.
func fontNote(size int) string {
	switch {
	case size <= 13:
		return "rows truncated to one line"
	case size >= 20:
		return "bold rows"
	}
	return ""
}
