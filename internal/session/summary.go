package session

import (
	"slices"

	"github.com/abhisek/pyqtrack/internal/connectivity"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// SemesterResult is the progress of one semester.
type SemesterResult struct {
	Title     string
	Questions int
	tracker.Progress
}

// Summary holds the figures shown by the stats screen and command.
type Summary struct {
	Progress  tracker.Progress
	Semesters []SemesterResult

	Links         int
	SyncedLinks   int
	DottedLinks   int
	DanglingLinks int // at least one endpoint missing from the tree
	Groups        int // link components with two or more members

	// Repeated counts sub-questions by the number of semesters their link
	// component spans. Only spans of two or more are present.
	Repeated map[int]int
}

// BuildSummary computes the summary for a tree and its links.
func BuildSummary(tree tracker.Tree, edges []links.LinkEdge) Summary {
	sum := Summary{
		Progress: tree.Progress(),
		Links:    len(edges),
		Repeated: make(map[int]int),
	}
	for _, sem := range tree {
		var p tracker.Progress
		for _, q := range sem.Questions {
			for _, sq := range q.SubQuestions {
				p.Total++
				if sq.IsDone {
					p.Done++
				}
			}
		}
		sum.Semesters = append(sum.Semesters, SemesterResult{
			Title:     sem.Title,
			Questions: len(sem.Questions),
			Progress:  p,
		})
	}

	ids := tree.IDs()
	for _, e := range edges {
		if e.Sync {
			sum.SyncedLinks++
		} else {
			sum.DottedLinks++
		}
		if !ids[e.From] || !ids[e.To] {
			sum.DanglingLinks++
		}
	}
	for _, comp := range connectivity.Components(edges) {
		if len(comp) >= 2 {
			sum.Groups++
		}
	}
	for _, n := range tree.Frequency(edges) {
		if n >= 2 {
			sum.Repeated[n]++
		}
	}
	return sum
}

// RepeatedSpans returns the keys of Repeated in descending order.
func (s Summary) RepeatedSpans() []int {
	spans := make([]int, 0, len(s.Repeated))
	for n := range s.Repeated {
		spans = append(spans, n)
	}
	slices.Sort(spans)
	slices.Reverse(spans)
	return spans
}
