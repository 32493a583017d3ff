// Package board is the main tracker screen: semester cards with their
// sub-questions, link connectors in a left gutter, and the keys that
// toggle, link and copy rows.
package board

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/geometry"
	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/components"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/text"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

const pageRows = 10

// Source is the session the board reads from. Mutations go through
// screen.Dispatch so the root model applies them.
type Source interface {
	State() state.State
	Copy(id string) (string, error)
}

// BoardScreen renders the tracker.
type BoardScreen struct {
	src Source

	cursor string

	searching bool
	search    components.Search
	query     string

	confirmReset bool
	flash        string

	vp viewport.Model
}

var (
	_ screen.Screen        = (*BoardScreen)(nil)
	_ screen.EscapeHandler = (*BoardScreen)(nil)
)

// New creates a BoardScreen over src.
func New(src Source) *BoardScreen {
	return &BoardScreen{
		src:    src,
		search: components.NewSearch("filter questions"),
		vp:     viewport.New(),
	}
}

func (b *BoardScreen) ID() screen.ID { return screen.Board }

func (b *BoardScreen) Init() tea.Cmd {
	return nil
}

func (b *BoardScreen) Title() string {
	return "Board"
}

// HandlesEscape is always true: esc cancels a search or a link gesture
// and the board is never popped.
func (b *BoardScreen) HandlesEscape() bool { return true }

// KeyHints returns the key binding hints for the footer.
func (b *BoardScreen) KeyHints() []layout.KeyHint {
	if b.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Keep filter"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return keys.hints()
}

// Cursor returns the id of the highlighted sub-question.
func (b *BoardScreen) Cursor() string {
	b.ensureCursor()
	return b.cursor
}

func (b *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return b, nil
	}
	if b.searching {
		return b, b.updateSearch(kp)
	}
	if b.confirmReset {
		b.confirmReset = false
		if kp.String() == "y" || kp.String() == "Y" {
			b.flash = "Tracker reset"
			return b, screen.Dispatch(state.Reset{})
		}
		b.flash = "Reset cancelled"
		return b, nil
	}

	b.flash = ""
	b.ensureCursor()
	st := b.src.State()

	switch {
	case kp.String() == "esc":
		if _, ok := st.Pending.Anchor(); ok {
			return b, screen.Dispatch(state.CancelLink{})
		}
		if b.query != "" {
			b.query = ""
			b.search.Clear()
		}
	case key.Matches(kp, keys.Up):
		b.move(-1)
	case key.Matches(kp, keys.Down):
		b.move(1)
	case key.Matches(kp, keys.PageUp):
		b.move(-pageRows)
	case key.Matches(kp, keys.PageDown):
		b.move(pageRows)
	case key.Matches(kp, keys.Top):
		b.move(-len(b.visibleIDs()))
	case key.Matches(kp, keys.Bottom):
		b.move(len(b.visibleIDs()))
	case key.Matches(kp, keys.NextSem):
		b.jumpSemester(1)
	case key.Matches(kp, keys.PrevSem):
		b.jumpSemester(-1)
	case key.Matches(kp, keys.Toggle):
		if b.cursor != "" {
			return b, screen.Dispatch(state.ToggleDone{ID: b.cursor})
		}
	case key.Matches(kp, keys.Link):
		if b.cursor != "" {
			return b, screen.Dispatch(state.LinkGesture{ID: b.cursor})
		}
	case key.Matches(kp, keys.Copy):
		return b, b.copy()
	case key.Matches(kp, keys.Undo):
		return b, screen.Dispatch(state.Undo{})
	case key.Matches(kp, keys.Redo):
		return b, screen.Dispatch(state.Redo{})
	case key.Matches(kp, keys.Search):
		b.searching = true
		return b, b.search.Focus()
	case key.Matches(kp, keys.Columns):
		s := st.Settings
		s.TwoColumnLayout = !s.TwoColumnLayout
		return b, screen.Dispatch(state.SetSettings{Settings: s})
	case key.Matches(kp, keys.Freq):
		s := st.Settings
		s.ShowFrequency = !s.ShowFrequency
		return b, screen.Dispatch(state.SetSettings{Settings: s})
	case key.Matches(kp, keys.Import):
		return b, screen.Dispatch(state.ShowImport{Show: true})
	case key.Matches(kp, keys.Settings):
		return b, screen.Open(screen.Settings)
	case key.Matches(kp, keys.Stats):
		return b, screen.Open(screen.Stats)
	case key.Matches(kp, keys.Reset):
		b.confirmReset = true
	case key.Matches(kp, keys.Dismiss):
		if st.Notice != "" {
			return b, screen.Dispatch(state.DismissNotice{})
		}
	}
	return b, nil
}

func (b *BoardScreen) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		b.searching = false
		b.query = ""
		b.search.Clear()
		return nil
	case "enter":
		b.searching = false
		b.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.query = b.search.Query()
	b.ensureCursor()
	return cmd
}

// copy writes the cursor row to the system clipboard, falling back to the
// terminal's clipboard escape sequence when that fails.
func (b *BoardScreen) copy() tea.Cmd {
	if b.cursor == "" {
		return nil
	}
	copied, err := b.src.Copy(b.cursor)
	if copied == "" {
		b.flash = "Nothing to copy"
		return nil
	}
	b.flash = "Copied: " + copied
	if err != nil {
		return tea.SetClipboard(copied)
	}
	return nil
}

func (b *BoardScreen) View(width, height int) string {
	st := b.src.State()
	b.ensureCursor()

	var top []string
	if st.Notice != "" {
		top = append(top, theme.Notice.Render(st.Notice)+theme.Hint.Render("  x to dismiss"))
	}
	if anchor, ok := st.Pending.Anchor(); ok {
		top = append(top, theme.Pending.Render(fmt.Sprintf("Linking from %s: pick another row with l, esc cancels", b.describe(st.Data, anchor))))
	}
	if b.confirmReset {
		top = append(top, theme.Warning.Render("Reset clears every question and link. Press y to confirm."))
	}
	if b.searching || b.query != "" {
		b.search.SetWidth(max(width-4, 10))
		top = append(top, b.search.View())
	}
	if b.flash != "" {
		top = append(top, theme.Hint.Render(text.Truncate(b.flash, width)))
	}

	if len(st.Data) == 0 {
		top = append(top, "", theme.Subtitle.Width(width).Render("No questions loaded. Press i to import."))
		return strings.Join(top, "\n")
	}

	anchor, _ := st.Pending.Anchor()
	g := buildGrid(gridInput{
		Tree:     st.Data,
		Links:    st.Links,
		Settings: st.Settings,
		Width:    width,
		Cursor:   b.cursor,
		Anchor:   anchor,
		Visible:  b.visible(),
	})
	if len(g.Rows) == 0 {
		top = append(top, "", theme.Subtitle.Width(width).Render("No matches."))
		return strings.Join(top, "\n")
	}

	conns := geometry.Compute(st.Links, g.Rects, geometry.Point{})
	gutter := renderGutter(conns, len(g.Lines))
	lines := make([]string, len(g.Lines))
	for i, l := range g.Lines {
		lines[i] = gutter[i] + l
	}

	bodyHeight := max(height-len(top), 1)
	b.vp.SetWidth(width)
	b.vp.SetHeight(bodyHeight)
	b.vp.SetContentLines(lines)
	b.scrollTo(g, bodyHeight)

	return strings.Join(append(top, b.vp.View()), "\n")
}

// scrollTo keeps the cursor row and its question header in view.
func (b *BoardScreen) scrollTo(g grid, height int) {
	for _, r := range g.Rows {
		if r.ID != b.cursor {
			continue
		}
		off := b.vp.YOffset()
		first, last := max(r.Top-1, 0), r.Top+r.Lines-1
		if first < off {
			off = first
		}
		if last >= off+height {
			off = last - height + 1
		}
		b.vp.SetYOffset(off)
		return
	}
}

func (b *BoardScreen) describe(tree tracker.Tree, id string) string {
	ref, ok := tree.Locate(id)
	if !ok {
		return id
	}
	sem := tree[ref.Semester]
	q := sem.Questions[ref.Question]
	return fmt.Sprintf("%s Q%s%s", sem.Title, q.Number, q.SubQuestions[ref.Sub].Label)
}

// visible returns the search filter, nil when no query is set.
func (b *BoardScreen) visible() map[string]bool {
	if b.query == "" {
		return nil
	}
	return newSearchIndex(b.src.State().Data).filter(b.query)
}

// visibleIDs returns the navigable rows in display order.
func (b *BoardScreen) visibleIDs() []string {
	filter := b.visible()
	var ids []string
	b.src.State().Data.Walk(func(_ tracker.Ref, sq tracker.SubQuestion) {
		if filter == nil || filter[sq.ID] {
			ids = append(ids, sq.ID)
		}
	})
	return ids
}

// ensureCursor moves the cursor to the first visible row when its row is
// gone or filtered out.
func (b *BoardScreen) ensureCursor() {
	ids := b.visibleIDs()
	for _, id := range ids {
		if id == b.cursor {
			return
		}
	}
	b.cursor = ""
	if len(ids) > 0 {
		b.cursor = ids[0]
	}
}

func (b *BoardScreen) move(delta int) {
	ids := b.visibleIDs()
	if len(ids) == 0 {
		return
	}
	i := indexOf(ids, b.cursor)
	b.cursor = ids[max(0, min(i+delta, len(ids)-1))]
}

// jumpSemester moves to the first row of the next or previous semester
// that has visible rows.
func (b *BoardScreen) jumpSemester(dir int) {
	tree := b.src.State().Data
	ids := b.visibleIDs()
	if len(ids) == 0 {
		return
	}
	semOf := func(id string) int {
		ref, _ := tree.Locate(id)
		return ref.Semester
	}
	i := indexOf(ids, b.cursor)
	cur := semOf(b.cursor)
	if dir > 0 {
		for j := i + 1; j < len(ids); j++ {
			if semOf(ids[j]) != cur {
				b.cursor = ids[j]
				return
			}
		}
		return
	}
	j := i
	for j >= 0 && semOf(ids[j]) == cur {
		j--
	}
	if j < 0 {
		return
	}
	prev := semOf(ids[j])
	for j > 0 && semOf(ids[j-1]) == prev {
		j--
	}
	b.cursor = ids[j]
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}
