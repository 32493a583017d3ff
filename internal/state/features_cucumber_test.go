//go:build cucumber

package state

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// TestStateFeatures runs the linked-completion scenarios via godog.
func TestStateFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "linked-completion",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("features")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires step definitions for the state feature tests.
func InitializeScenario(ctx *godog.ScenarioContext) {
	w := &world{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w.s = State{}
		return ctx, nil
	})

	ctx.Step(`^the sample tracker$`, w.sampleTracker)
	ctx.Step(`^an empty tracker$`, w.emptyTracker)
	ctx.Step(`^a (solid|dotted) link from "([^"]+)" to "([^"]+)"$`, w.linkFromTo)
	ctx.Step(`^I toggle "([^"]+)"$`, w.toggle)
	ctx.Step(`^I undo$`, w.undo)
	ctx.Step(`^I redo$`, w.redo)
	ctx.Step(`^extraction fails$`, w.extractionFails)
	ctx.Step(`^"([^"]+)", "([^"]+)" and "([^"]+)" are done$`, w.threeDone)
	ctx.Step(`^"([^"]+)" is done$`, w.isDone)
	ctx.Step(`^"([^"]+)" is not done$`, w.isNotDone)
	ctx.Step(`^progress is (\d+) of (\d+)$`, w.progressIs)
	ctx.Step(`^the notice reads "([^"]+)"$`, w.noticeReads)
}

// world holds the reducer state for one scenario.
type world struct {
	s State
}

func (w *world) sampleTracker() error {
	w.s = New(Snapshot{Data: tracker.Sample()}, settings.Defaults())
	return nil
}

func (w *world) emptyTracker() error {
	w.s = New(Snapshot{}, settings.Defaults())
	return nil
}

func (w *world) linkFromTo(style, from, to string) error {
	w.s = Reduce(w.s, LinkGesture{ID: from})
	w.s = Reduce(w.s, LinkGesture{ID: to})
	w.s = Reduce(w.s, ConfirmLink{Style: links.Style(style)})
	if w.s.Proposal != nil {
		return errors.New("link was not created")
	}
	return nil
}

func (w *world) toggle(id string) error {
	w.s = Reduce(w.s, ToggleDone{ID: id})
	return nil
}

func (w *world) undo() error {
	w.s = Reduce(w.s, Undo{})
	return nil
}

func (w *world) redo() error {
	w.s = Reduce(w.s, Redo{})
	return nil
}

func (w *world) extractionFails() error {
	w.s = Reduce(w.s, ExtractStarted{})
	w.s = Reduce(w.s, ExtractFailed{Err: errors.New("upstream unavailable")})
	return nil
}

func (w *world) threeDone(a, b, c string) error {
	for _, id := range []string{a, b, c} {
		if err := w.isDone(id); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) isDone(id string) error {
	sq, ok := w.s.Data.Find(id)
	if !ok {
		return fmt.Errorf("%s not found", id)
	}
	if !sq.IsDone {
		return fmt.Errorf("%s is not done", id)
	}
	return nil
}

func (w *world) isNotDone(id string) error {
	sq, ok := w.s.Data.Find(id)
	if !ok {
		return fmt.Errorf("%s not found", id)
	}
	if sq.IsDone {
		return fmt.Errorf("%s is done", id)
	}
	return nil
}

func (w *world) progressIs(done, total int) error {
	p := w.s.Progress()
	if p.Done != done || p.Total != total {
		return fmt.Errorf("progress = %d/%d, want %d/%d", p.Done, p.Total, done, total)
	}
	return nil
}

func (w *world) noticeReads(want string) error {
	if w.s.Notice != want {
		return fmt.Errorf("notice = %q, want %q", w.s.Notice, want)
	}
	return nil
}
