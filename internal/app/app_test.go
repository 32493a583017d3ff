package app

import (
	"context"
	"image/color"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/session"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

func newModel(snap state.Snapshot) AppModel {
	sess := session.New(state.New(snap, settings.Defaults()), session.Options{})
	m := newAppModel(context.Background(), sess)
	m.Init()
	return m
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func activeID(m AppModel) screen.ID {
	return m.router.Active().ID()
}

func TestApp_EmptyStartsOnImport(t *testing.T) {
	m := newModel(state.Snapshot{})
	if activeID(m) != screen.Import {
		t.Errorf("active = %q, want import", activeID(m))
	}
}

func TestApp_LoadedStartsOnBoard(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	if activeID(m) != screen.Board || m.router.Depth() != 1 {
		t.Errorf("active = %q depth %d", activeID(m), m.router.Depth())
	}
}

func TestApp_LoadSampleClosesImport(t *testing.T) {
	m := newModel(state.Snapshot{})
	m, _ = update(t, m, screen.ActionMsg{Action: state.LoadSample{}})
	if activeID(m) != screen.Board {
		t.Errorf("active = %q, want board", activeID(m))
	}
	if m.sess.State().Progress().Total == 0 {
		t.Error("sample not loaded")
	}
}

func TestApp_EscOnEmptyImportStays(t *testing.T) {
	m := newModel(state.Snapshot{})
	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("import should dispatch its own close")
	}
	m, _ = update(t, m, cmd())
	if activeID(m) != screen.Import {
		t.Errorf("import must stay open without data, active = %q", activeID(m))
	}
}

func TestApp_UndoRedoKeys(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, screen.ActionMsg{Action: state.ToggleDone{ID: "sq-1a"}})
	if m.sess.State().Progress().Done != 1 {
		t.Fatal("toggle did not apply")
	}

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl})
	if m.sess.State().Progress().Done != 0 {
		t.Error("ctrl+z should undo")
	}
	m, _ = update(t, m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl | tea.ModShift})
	if m.sess.State().Progress().Done != 1 {
		t.Error("ctrl+shift+z should redo")
	}
	m, _ = update(t, m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl})
	m, _ = update(t, m, tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl})
	if m.sess.State().Progress().Done != 1 {
		t.Error("ctrl+y should redo")
	}
}

func TestApp_UndoIgnoredWhileExtracting(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, screen.ActionMsg{Action: state.ToggleDone{ID: "sq-1a"}})
	m, _ = update(t, m, screen.ActionMsg{Action: state.ExtractStarted{}})

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl})
	if m.sess.State().Progress().Done != 1 {
		t.Error("ctrl+z must not undo while an extraction is running")
	}
	m, _ = update(t, m, screen.ActionMsg{Action: state.Reset{}})
	if m.sess.State().Progress().Total == 0 {
		t.Error("reset must not clear the board while an extraction is running")
	}
}

func TestApp_LinkDialogFollowsProposal(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, screen.ActionMsg{Action: state.LinkGesture{ID: "sq-1a"}})
	m, _ = update(t, m, screen.ActionMsg{Action: state.LinkGesture{ID: "sq-3a"}})
	if activeID(m) != screen.Link {
		t.Fatalf("active = %q, want link dialog", activeID(m))
	}

	m, _ = update(t, m, screen.ActionMsg{Action: state.ConfirmLink{}})
	if activeID(m) != screen.Board {
		t.Errorf("active = %q after confirm", activeID(m))
	}
	if len(m.sess.State().Links) != 1 {
		t.Errorf("links = %d", len(m.sess.State().Links))
	}
}

func TestApp_OpenAndPopScreens(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	for _, id := range []screen.ID{screen.Settings, screen.Stats} {
		m, _ = update(t, m, screen.OpenMsg{ID: id})
		if activeID(m) != id {
			t.Fatalf("active = %q, want %q", activeID(m), id)
		}
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
		if cmd == nil {
			t.Fatal("esc should pop")
		}
		m, _ = update(t, m, cmd())
		if activeID(m) != screen.Board {
			t.Errorf("active = %q after esc", activeID(m))
		}
	}
}

func TestApp_EscOnBoardDoesNotPop(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d", m.router.Depth())
	}
}

func TestApp_View(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
	if !strings.Contains(m.render(), "PYQ Tracker") {
		t.Error("header missing")
	}
}

func TestApp_ViewTooSmall(t *testing.T) {
	m := newModel(state.Snapshot{Data: tracker.Sample()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	if m.render() == "" {
		t.Error("expected a size message")
	}
}

func TestStatusFlags(t *testing.T) {
	st := state.New(state.Snapshot{Data: tracker.Sample()}, settings.Defaults())
	if got := status(st); len(got) != 0 {
		t.Fatalf("fresh state flags = %v", got)
	}

	first := tracker.Sample()[0].Questions[0].SubQuestions[0].ID
	st = state.Reduce(st, state.ToggleDone{ID: first})
	st = state.Reduce(st, state.LinkGesture{ID: first})
	st.Loading = true

	got := strings.Join(status(st), ",")
	if got != "extracting,linking,undo 1" {
		t.Errorf("flags = %q", got)
	}
}

func TestApp_LightBackgroundSwitchesPalette(t *testing.T) {
	t.Cleanup(func() { theme.Use(theme.Dark) })
	m := newModel(state.Snapshot{Data: tracker.Sample()})

	update(t, m, tea.BackgroundColorMsg{Color: color.White})
	if theme.Text != theme.Light.Text {
		t.Error("light terminal should use the light palette")
	}
	update(t, m, tea.BackgroundColorMsg{Color: color.Black})
	if theme.Text != theme.Dark.Text {
		t.Error("dark terminal should use the dark palette")
	}
}
