package state

import (
	"strings"

	"github.com/abhisek/pyqtrack/internal/completion"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Reduce applies an action to the state.
func Reduce(s State, a Action) State {
	if s.Loading && blockedWhileLoading(a) {
		return s
	}
	switch a := a.(type) {
	case ToggleDone:
		next, ok := completion.Toggle(s.Data, s.Links, a.ID)
		if !ok {
			return s
		}
		return commit(s, Snapshot{Data: next, Links: s.Links})

	case LinkGesture:
		var pair *links.Pair
		s.Pending, pair = s.Pending.Toggle(a.ID)
		if pair != nil {
			s.Proposal = pair
		}
		return s

	case ConfirmLink:
		if s.Proposal == nil {
			return s
		}
		edge := links.New(s.Proposal.From, s.Proposal.To, a.Style, a.Color)
		s.Proposal = nil
		return commit(s, Snapshot{Data: s.Data, Links: links.Append(s.Links, edge)})

	case CancelLink:
		s.Pending = links.Pending{}
		s.Proposal = nil
		return s

	case Undo:
		h, snap, ok := s.History.Undo(s.Snapshot)
		if !ok {
			return s
		}
		s.History = h
		return setSnapshot(s, snap)

	case Redo:
		h, snap, ok := s.History.Redo(s.Snapshot)
		if !ok {
			return s
		}
		s.History = h
		return setSnapshot(s, snap)

	case Reset:
		s = commit(s, Snapshot{})
		s.Pending = links.Pending{}
		s.Proposal = nil
		s.ShowInput = true
		s.Notice = ""
		return s

	case ExtractStarted:
		s.Loading = true
		s.Notice = ""
		return s

	case Extracted:
		s = commit(s, Snapshot{Data: a.Data})
		s.Loading = false
		s.ShowInput = false
		return s

	case ExtractFailed:
		s = commit(s, Snapshot{Data: tracker.Sample()})
		s.Loading = false
		s.ShowInput = false
		s.Notice = NoticeSampleFallback
		return s

	case LoadSample:
		s = commit(s, Snapshot{Data: tracker.Sample()})
		s.ShowInput = false
		return s

	case Load:
		s = commit(s, a.Snapshot)
		s.ShowInput = len(a.Snapshot.Data) == 0
		return s

	case ShowImport:
		if !a.Show && len(s.Data) == 0 {
			return s
		}
		s.ShowInput = a.Show
		return s

	case SetSettings:
		next := a.Settings.Sanitize()
		if next != s.Settings {
			s.Settings = next
			s.SettingsRevision++
		}
		return s

	case DismissNotice:
		s.Notice = ""
		return s
	}
	return s
}

// blockedWhileLoading reports whether a would change the snapshot or start
// a link while an extraction is in flight. The extraction outcome is the
// only snapshot change allowed until Loading clears.
func blockedWhileLoading(a Action) bool {
	switch a.(type) {
	case ToggleDone, LinkGesture, ConfirmLink, Undo, Redo, Reset, LoadSample, Load, ExtractStarted:
		return true
	}
	return false
}

// commit records the current snapshot in history and makes next current.
func commit(s State, next Snapshot) State {
	var snap Snapshot
	s.History, snap = s.History.Commit(s.Snapshot, next)
	return setSnapshot(s, snap)
}

func setSnapshot(s State, snap Snapshot) State {
	s.Snapshot = snap
	s.Revision++
	return s
}

func hasText(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
