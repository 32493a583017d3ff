// Package importer is the overlay where raw question-paper text is pasted
// and sent for extraction.
package importer

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/ui/components"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Source is the session the importer reads and extracts through.
type Source interface {
	State() state.State
	Dispatch(a state.Action) state.State
	Extract(ctx context.Context, raw string) state.Action
}

// ImportScreen collects raw text for extraction.
type ImportScreen struct {
	ctx context.Context
	src Source

	input   textarea.Model
	buttons components.Buttons
	spinner spinner.Model
}

var (
	_ screen.Screen        = (*ImportScreen)(nil)
	_ screen.EscapeHandler = (*ImportScreen)(nil)
)

// New creates an ImportScreen. ctx bounds extraction calls.
func New(ctx context.Context, src Source) *ImportScreen {
	ta := textarea.New()
	ta.Placeholder = "Paste previous-year question papers here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	s := &ImportScreen{
		ctx:     ctx,
		src:     src,
		input:   ta,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
	s.buttons = components.NewButtons(
		components.Action{
			Label:   "Extract",
			Press:   s.submit,
			Enabled: func() bool { return s.src.State().CanSubmit(s.input.Value()) },
		},
		components.Action{
			Label:   "Load sample",
			Press:   func() tea.Cmd { return screen.Dispatch(state.LoadSample{}) },
			Enabled: func() bool { return !s.src.State().Loading },
		},
	)
	return s
}

func (s *ImportScreen) ID() screen.ID { return screen.Import }

func (s *ImportScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ImportScreen) Title() string {
	return "Import"
}

// HandlesEscape closes the overlay through the reducer, which keeps it
// open while there is nothing to go back to.
func (s *ImportScreen) HandlesEscape() bool { return true }

// KeyHints returns the key binding hints for the footer.
func (s *ImportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Extract"},
		{Key: "Tab", Description: "Buttons"},
		{Key: "Esc", Description: "Close"},
	}
}

// Value returns the pasted text.
func (s *ImportScreen) Value() string {
	return s.input.Value()
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.src.State().Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, screen.Dispatch(state.ShowImport{Show: false})
		case "ctrl+s":
			return s, s.submit()
		case "tab":
			s.cycleFocus(1)
			return s, nil
		case "shift+tab":
			s.cycleFocus(-1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.buttons.Focus >= 0 {
		s.buttons, cmd = s.buttons.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit starts an extraction of the pasted text. Loading is set before
// the command is returned so a repeated ctrl+s in the same frame is
// refused. The extraction runs off the update loop and its outcome
// arrives as an action.
func (s *ImportScreen) submit() tea.Cmd {
	raw := s.input.Value()
	if !s.src.State().CanSubmit(raw) {
		return nil
	}
	s.src.Dispatch(state.ExtractStarted{})

	ctx, src := s.ctx, s.src
	return tea.Batch(
		func() tea.Msg { return screen.ActionMsg{Action: src.Extract(ctx, raw)} },
		s.spinner.Tick,
	)
}

// cycleFocus steps through the text area and then each button. Focus
// index -1 on the button row means the text area has it.
func (s *ImportScreen) cycleFocus(step int) {
	n := s.buttons.Len() + 1
	pos := (s.buttons.Focus + 1 + step + n) % n
	s.buttons.Focus = pos - 1
	if pos == 0 {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

func (s *ImportScreen) View(width, height int) string {
	st := s.src.State()

	boxWidth := min(width-4, 100)
	s.input.SetWidth(boxWidth - 8)
	s.input.SetHeight(max(height-12, 4))

	heading := theme.Title.Width(boxWidth - 8).Render("Import question papers")
	hint := theme.Hint.Render("Semester headings, question numbers and sub-parts are picked up automatically.")

	status := ""
	switch {
	case st.Loading:
		status = s.spinner.View() + " Extracting questions..."
	case len(st.Data) == 0:
		status = theme.Hint.Render("No questions yet. Extract your own or load the sample set.")
	}

	parts := []string{heading, hint, "", s.input.View(), "", s.buttons.View()}
	if status != "" {
		parts = append(parts, "", status)
	}
	box := theme.Dialog.Width(boxWidth).Render(strings.Join(parts, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
