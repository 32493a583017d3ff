package board

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/pyqtrack/internal/ui/layout"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextSem  key.Binding
	PrevSem  key.Binding
	Toggle   key.Binding
	Link     key.Binding
	Copy     key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Search   key.Binding
	Columns  key.Binding
	Freq     key.Binding
	Import   key.Binding
	Settings key.Binding
	Stats    key.Binding
	Reset    key.Binding
	Dismiss  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
	Top:      key.NewBinding(key.WithKeys("home", "g")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G")),
	NextSem:  key.NewBinding(key.WithKeys("tab")),
	PrevSem:  key.NewBinding(key.WithKeys("shift+tab")),
	Toggle:   key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("Space", "Done")),
	Link:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "Link")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Copy")),
	Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "Undo")),
	Redo:     key.NewBinding(key.WithKeys("U")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Find")),
	Columns:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Columns")),
	Freq:     key.NewBinding(key.WithKeys("f")),
	Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "Import")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Settings")),
	Stats:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Stats")),
	Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "Reset")),
	Dismiss:  key.NewBinding(key.WithKeys("x")),
}

// hints converts the bindings that carry help text into footer hints.
func (k keyMap) hints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{k.Up, k.Toggle, k.Link, k.Copy, k.Undo, k.Search, k.Columns, k.Import, k.Settings, k.Stats, k.Reset} {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
