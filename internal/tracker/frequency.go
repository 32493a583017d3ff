package tracker

import (
	"github.com/abhisek/pyqtrack/internal/connectivity"
	"github.com/abhisek/pyqtrack/internal/links"
)

// Frequency returns, for every linked sub-question, how many distinct
// semesters its link component spans. Unlinked sub-questions are absent
// and should be treated as 1. Links to ids missing from the tree are
// ignored.
func (t Tree) Frequency(edges []links.LinkEdge) map[string]int {
	semesterOf := make(map[string]int)
	t.Walk(func(ref Ref, sq SubQuestion) { semesterOf[sq.ID] = ref.Semester })

	out := make(map[string]int)
	for _, comp := range connectivity.Components(edges) {
		semesters := make(map[int]struct{})
		for id := range comp {
			if s, ok := semesterOf[id]; ok {
				semesters[s] = struct{}{}
			}
		}
		for id := range comp {
			if _, ok := semesterOf[id]; ok {
				out[id] = len(semesters)
			}
		}
	}
	return out
}

// FrequencyBadge returns the badge shown for a frequency, or "" below 2.
func FrequencyBadge(n int) string {
	switch {
	case n >= 4:
		return "🔥"
	case n == 3:
		return "⚡"
	case n == 2:
		return "⭐"
	default:
		return ""
	}
}
