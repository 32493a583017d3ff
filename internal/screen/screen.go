// Package screen defines the contract between the root model and the
// screens it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
)

// ID names a kind of screen.
type ID string

const (
	Board    ID = "board"
	Import   ID = "import"
	Link     ID = "link"
	Settings ID = "settings"
	Stats    ID = "stats"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// ID identifies the kind of screen for state-driven navigation.
	ID() ID

	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle esc themselves
// instead of being popped by the root model.
type EscapeHandler interface {
	HandlesEscape() bool
}

// ActionMsg carries a reducer action to the root model, which dispatches
// it to the session whichever screen is active when it arrives.
type ActionMsg struct {
	Action state.Action
}

// Dispatch returns a command that delivers a as an ActionMsg.
func Dispatch(a state.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}

// OpenMsg asks the root model to push the screen registered for ID.
type OpenMsg struct {
	ID ID
}

// Open returns a command that delivers an OpenMsg for id.
func Open(id ID) tea.Cmd {
	return func() tea.Msg { return OpenMsg{ID: id} }
}
