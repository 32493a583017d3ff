package state

import (
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Action is a user or system event applied by Reduce.
type Action interface {
	isAction()
}

type (
	// ToggleDone flips a sub-question and its synced group.
	ToggleDone struct{ ID string }

	// LinkGesture selects a sub-question as a link endpoint.
	LinkGesture struct{ ID string }

	// ConfirmLink creates the proposed link.
	ConfirmLink struct {
		Style links.Style
		Color string
	}

	// CancelLink drops the pending anchor and any proposal.
	CancelLink struct{}

	Undo struct{}
	Redo struct{}

	// Reset clears data and links and reopens the input overlay.
	Reset struct{}

	// ExtractStarted marks an extraction call in flight.
	ExtractStarted struct{}

	// Extracted delivers a successfully extracted tree.
	Extracted struct{ Data tracker.Tree }

	// ExtractFailed loads the sample dataset in place of a failed
	// extraction.
	ExtractFailed struct{ Err error }

	LoadSample struct{}

	// Load replaces data and links with a previously exported record.
	Load struct{ Snapshot Snapshot }

	// ShowImport opens or closes the input overlay. Closing is refused
	// while there is no data.
	ShowImport struct{ Show bool }

	SetSettings struct{ Settings settings.Settings }

	DismissNotice struct{}
)

func (ToggleDone) isAction()     {}
func (LinkGesture) isAction()    {}
func (ConfirmLink) isAction()    {}
func (CancelLink) isAction()     {}
func (Undo) isAction()           {}
func (Redo) isAction()           {}
func (Reset) isAction()          {}
func (ExtractStarted) isAction() {}
func (Extracted) isAction()      {}
func (ExtractFailed) isAction()  {}
func (LoadSample) isAction()     {}
func (Load) isAction()           {}
func (ShowImport) isAction()     {}
func (SetSettings) isAction()    {}
func (DismissNotice) isAction()  {}
