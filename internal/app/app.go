// Package app is the root Bubble Tea model. It owns the screen stack and
// the session, applies the actions screens dispatch, and keeps the import
// overlay and link dialog in step with the session state.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/router"
	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/screens/board"
	"github.com/abhisek/pyqtrack/internal/screens/importer"
	"github.com/abhisek/pyqtrack/internal/screens/linkdialog"
	"github.com/abhisek/pyqtrack/internal/screens/settings"
	"github.com/abhisek/pyqtrack/internal/screens/stats"
	"github.com/abhisek/pyqtrack/internal/session"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Session *session.Session
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	sess   *session.Session
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the board at the bottom of the
// stack.
func newAppModel(ctx context.Context, sess *session.Session) AppModel {
	return AppModel{
		ctx:    ctx,
		sess:   sess,
		router: router.New(board.New(sess)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tea.RequestBackgroundColor, m.sync())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BackgroundColorMsg:
		theme.Use(theme.For(msg.IsDark()))
		return m, nil

	case screen.ActionMsg:
		return m, m.dispatch(msg.Action)

	case screen.OpenMsg:
		if s := m.newScreen(msg.ID); s != nil {
			return m, m.router.Push(s)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+z":
			return m, m.dispatch(state.Undo{})
		case "ctrl+shift+z", "ctrl+Z", "ctrl+y":
			return m, m.dispatch(state.Redo{})
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// dispatch applies a to the session and reconciles the overlays.
func (m AppModel) dispatch(a state.Action) tea.Cmd {
	m.sess.Dispatch(a)
	return m.sync()
}

// sync pushes or removes the import overlay and the link dialog so the
// stack reflects ShowInput and Proposal.
func (m AppModel) sync() tea.Cmd {
	st := m.sess.State()
	var cmds []tea.Cmd

	switch {
	case st.Proposal != nil && !m.router.Contains(screen.Link):
		cmds = append(cmds, m.router.Push(linkdialog.New(st.Data, *st.Proposal)))
	case st.Proposal == nil:
		m.router.Remove(screen.Link)
	}

	switch {
	case st.ShowInput && !m.router.Contains(screen.Import):
		cmds = append(cmds, m.router.Push(importer.New(m.ctx, m.sess)))
	case !st.ShowInput:
		m.router.Remove(screen.Import)
	}

	return tea.Batch(cmds...)
}

func (m AppModel) newScreen(id screen.ID) screen.Screen {
	switch id {
	case screen.Settings:
		return settings.New(m.sess)
	case screen.Stats:
		return stats.New(m.sess)
	}
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	st := m.sess.State()
	active := m.router.Active()

	f := layout.Frame{Progress: st.Progress(), Status: status(st)}
	if active != nil {
		f.Title = active.Title()
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		f.Hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		f.Hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	f.Hints = append(f.Hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	return f.Render(m.width, m.height, m.router.View)
}

// status lists the header flags for st.
func status(st state.State) []string {
	var out []string
	if st.Loading {
		out = append(out, "extracting")
	}
	if st.Pending.Active() {
		out = append(out, "linking")
	}
	if past, _ := st.History.Depth(); past > 0 {
		out = append(out, fmt.Sprintf("undo %d", past))
	}
	return out
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts.Session), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
