// Package router keeps the stack of screens. The board sits at the bottom
// and is never removed; settings, stats and the overlays stack above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/screen"
)

// PopScreenMsg asks the router to drop the top screen.
type PopScreenMsg struct{}

// Back is the command screens return to close themselves.
func Back() tea.Msg { return PopScreenMsg{} }

// Router is a screen stack with a fixed base.
type Router struct {
	stack []screen.Screen
}

// New returns a router whose base screen is base.
func New(base screen.Screen) *Router {
	return &Router{stack: []screen.Screen{base}}
}

// Push puts s on top and runs its Init. A screen with the same ID that is
// already stacked above the base is dropped first, so reopening a screen
// brings a fresh copy to the top instead of stacking duplicates.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.Remove(s.ID())
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen. The base stays.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Remove drops every non-base screen with the given ID and reports
// whether any was removed.
func (r *Router) Remove(id screen.ID) bool {
	kept := r.stack[:1]
	for _, s := range r.stack[1:] {
		if s.ID() != id {
			kept = append(kept, s)
		}
	}
	removed := len(kept) != len(r.stack)
	clear(r.stack[len(kept):])
	r.stack = kept
	return removed
}

// Contains reports whether a screen with the given ID is stacked.
func (r *Router) Contains(id screen.ID) bool {
	for _, s := range r.stack {
		if s.ID() == id {
			return true
		}
	}
	return false
}

// Active is the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth counts stacked screens, base included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles PopScreenMsg and forwards everything else to the top
// screen only.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(PopScreenMsg); ok {
		r.Pop()
		return nil
	}
	top := len(r.stack) - 1
	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	return cmd
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
