// Package session runs one tracker session: it owns the application state,
// applies actions through the reducer and performs the side effects the
// reducer leaves to its caller (persistence, clipboard and extraction).
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/store"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// CopyPrefix is prepended to sub-question text copied to the clipboard.
const CopyPrefix = "next q - "

// saveTimeout bounds a single record write.
const saveTimeout = 5 * time.Second

// Records persists the primary and settings records. *store.RecordRepo
// implements it.
type Records interface {
	Primary(ctx context.Context) (store.PrimaryRecord, error)
	SavePrimary(ctx context.Context, rec store.PrimaryRecord) error
	ClearPrimary(ctx context.Context) error
	Settings(ctx context.Context) (settings.Settings, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
}

// Extractor turns raw pasted text into a question tree.
type Extractor interface {
	Parse(ctx context.Context, raw string) (tracker.Tree, error)
}

// ClipboardFunc writes text to the system clipboard.
type ClipboardFunc func(text string) error

// Options configures a Session. Every field is optional: without Records
// nothing is persisted, and without an Extractor every extraction fails
// over to the sample dataset.
type Options struct {
	Records   Records
	Extractor Extractor
	Clipboard ClipboardFunc
	Logger    *slog.Logger
}

// Session is not safe for concurrent use; the TUI calls it from its
// update loop only.
type Session struct {
	state     state.State
	records   Records
	extractor Extractor
	clipboard ClipboardFunc
	logger    *slog.Logger
}

// New starts a session from an already loaded state.
func New(initial state.State, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		state:     initial,
		records:   opts.Records,
		extractor: opts.Extractor,
		clipboard: opts.Clipboard,
		logger:    logger.With("component", "session"),
	}
}

// Open loads the persisted records and starts a session. Unreadable
// records are logged and treated as absent.
func Open(ctx context.Context, opts Options) *Session {
	s := New(state.New(state.Snapshot{}, settings.Defaults()), opts)
	if opts.Records == nil {
		return s
	}
	rec, err := opts.Records.Primary(ctx)
	if err != nil {
		s.logger.Warn("discarding unreadable tracker record", "err", err)
	}
	prefs, err := opts.Records.Settings(ctx)
	if err != nil {
		s.logger.Warn("discarding unreadable settings", "err", err)
	}
	s.state = state.New(state.Snapshot{Data: rec.Data, Links: rec.Links}, prefs)
	s.logger.Debug("session opened",
		"semesters", len(rec.Data), "links", len(rec.Links), "show_input", s.state.ShowInput)
	return s
}

// State returns the current state.
func (s *Session) State() state.State {
	return s.state
}

// Dispatch applies a to the state and persists whichever records changed.
// Persistence errors are logged; the in-memory state is authoritative.
func (s *Session) Dispatch(a state.Action) state.State {
	prev := s.state
	s.state = state.Reduce(prev, a)

	primary, prefs := s.state.Changed(prev)
	if _, ok := a.(state.Reset); ok && primary {
		s.clearPrimary()
	}
	if primary && s.state.ShouldPersist() {
		s.savePrimary()
	}
	if prefs {
		s.saveSettings()
	}
	return s.state
}

// Extract runs the extraction for raw and returns the action that
// delivers its outcome. It blocks for the duration of the LLM call and
// must not be called from the update loop.
func (s *Session) Extract(ctx context.Context, raw string) state.Action {
	if s.extractor == nil {
		return state.ExtractFailed{Err: errors.New("no extractor configured")}
	}
	start := time.Now()
	tree, err := s.extractor.Parse(ctx, raw)
	if err != nil {
		s.logger.Warn("extraction failed, loading sample data", "err", err, "elapsed", time.Since(start))
		return state.ExtractFailed{Err: err}
	}
	s.logger.Info("extraction finished",
		"semesters", len(tree), "sub_questions", tree.Progress().Total, "elapsed", time.Since(start))
	return state.Extracted{Data: tree}
}

// CopyText returns the clipboard text for a sub-question.
func (s *Session) CopyText(id string) (string, bool) {
	sq, ok := s.state.Data.Find(id)
	if !ok {
		return "", false
	}
	return CopyPrefix + sq.Text, true
}

// Copy writes the sub-question's clipboard text. The returned text is
// valid even when the clipboard write fails, so callers can fall back to
// another mechanism.
func (s *Session) Copy(id string) (string, error) {
	text, ok := s.CopyText(id)
	if !ok {
		return "", fmt.Errorf("sub-question %q not found", id)
	}
	if s.clipboard == nil {
		return text, errors.New("no clipboard available")
	}
	if err := s.clipboard(text); err != nil {
		s.logger.Warn("clipboard write failed", "err", err)
		return text, fmt.Errorf("write clipboard: %w", err)
	}
	return text, nil
}

func (s *Session) savePrimary() {
	if s.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	rec := store.PrimaryRecord{Data: s.state.Data, Links: s.state.Links}
	if err := s.records.SavePrimary(ctx, rec); err != nil {
		s.logger.Error("saving tracker failed", "err", err)
	}
}

func (s *Session) clearPrimary() {
	if s.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.records.ClearPrimary(ctx); err != nil {
		s.logger.Error("clearing tracker failed", "err", err)
	}
}

func (s *Session) saveSettings() {
	if s.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.records.SaveSettings(ctx, s.state.Settings); err != nil {
		s.logger.Error("saving settings failed", "err", err)
	}
}
