// Package state is the tracker's application state and the reducer that
// applies user actions to it. Reduce is pure: persistence, clipboard and
// extraction calls are performed by the caller based on the returned state.
package state

import (
	"github.com/abhisek/pyqtrack/internal/history"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// NoticeSampleFallback is shown when extraction fails and the sample
// dataset is loaded in its place.
const NoticeSampleFallback = "API unavailable. Showing sample data instead."

// Snapshot is the undoable part of the state and the shape of the
// persisted primary record.
type Snapshot struct {
	Data  tracker.Tree     `json:"data"`
	Links []links.LinkEdge `json:"links"`
}

// Empty reports whether the snapshot has no semesters and no links.
func (s Snapshot) Empty() bool {
	return len(s.Data) == 0 && len(s.Links) == 0
}

// State is everything the board needs to render.
type State struct {
	Snapshot

	History history.Stack[Snapshot]

	// Pending is the first endpoint of an in-progress link gesture.
	Pending links.Pending
	// Proposal is a completed gesture awaiting style and colour.
	Proposal *links.Pair

	ShowInput bool
	Loading   bool
	Notice    string

	Settings settings.Settings

	// Revision increases whenever Snapshot changes. SettingsRevision does
	// the same for Settings.
	Revision         uint64
	SettingsRevision uint64
}

// New returns the initial state for a loaded snapshot. The input overlay
// is open when there is no data.
func New(snap Snapshot, s settings.Settings) State {
	return State{
		Snapshot:  snap,
		ShowInput: len(snap.Data) == 0,
		Settings:  s.Sanitize(),
	}
}

// Progress returns the done/total count of the current tree.
func (s State) Progress() tracker.Progress {
	return s.Data.Progress()
}

// ShouldPersist reports whether the primary record should be written. An
// empty tracker with the input overlay closed is never saved, so an
// untouched launch does not overwrite stored data.
func (s State) ShouldPersist() bool {
	return !(s.Empty() && !s.ShowInput)
}

// Changed reports which persisted records differ between prev and s.
func (s State) Changed(prev State) (primary, prefs bool) {
	primary = s.Revision != prev.Revision || s.ShowInput != prev.ShowInput
	prefs = s.SettingsRevision != prev.SettingsRevision
	return primary, prefs
}

// CanSubmit reports whether an extraction may start for raw.
func (s State) CanSubmit(raw string) bool {
	return !s.Loading && hasText(raw)
}

// Frequency returns the semester count per linked sub-question.
func (s State) Frequency() map[string]int {
	return s.Data.Frequency(s.Links)
}
