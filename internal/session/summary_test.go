package session

import (
	"slices"
	"testing"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

func TestBuildSummary(t *testing.T) {
	tree := tracker.Sample().SetDone(map[string]bool{"sq-1a": true, "sq-3a": true, "sq-4b": true}, true)
	edges := []links.LinkEdge{
		links.New("sq-1a", "sq-3a", links.StyleSolid, links.DefaultColor),
		links.New("sq-2b", "sq-4b", links.StyleDotted, links.DefaultColor),
		links.New("sq-1b", "gone", links.StyleSolid, links.DefaultColor),
	}

	sum := BuildSummary(tree, edges)

	if sum.Progress != (tracker.Progress{Done: 3, Total: 8}) {
		t.Errorf("progress = %+v", sum.Progress)
	}
	if len(sum.Semesters) != 2 {
		t.Fatalf("semesters = %d", len(sum.Semesters))
	}
	if s := sum.Semesters[0]; s.Title != "S25" || s.Done != 1 || s.Total != 4 || s.Questions != 2 {
		t.Errorf("S25 = %+v", s)
	}
	if s := sum.Semesters[1]; s.Done != 2 {
		t.Errorf("W24 done = %d, want 2", s.Done)
	}
	if sum.Links != 3 || sum.SyncedLinks != 2 || sum.DottedLinks != 1 {
		t.Errorf("links = %d/%d/%d", sum.Links, sum.SyncedLinks, sum.DottedLinks)
	}
	if sum.DanglingLinks != 1 {
		t.Errorf("dangling = %d, want 1", sum.DanglingLinks)
	}
	if sum.Groups != 3 {
		t.Errorf("groups = %d, want 3", sum.Groups)
	}
	// sq-1a, sq-3a, sq-2b and sq-4b each span two semesters.
	if sum.Repeated[2] != 4 {
		t.Errorf("repeated = %v", sum.Repeated)
	}
	if got := sum.RepeatedSpans(); !slices.Equal(got, []int{2}) {
		t.Errorf("spans = %v", got)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	sum := BuildSummary(nil, nil)
	if sum.Progress.Total != 0 || sum.Groups != 0 || len(sum.RepeatedSpans()) != 0 {
		t.Errorf("summary = %+v", sum)
	}
}
