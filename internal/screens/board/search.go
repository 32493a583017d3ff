package board

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/abhisek/pyqtrack/internal/tracker"
)

// searchIndex is the haystack for fuzzy row filtering: one entry per
// sub-question naming its semester, question, label and text.
type searchIndex struct {
	ids     []string
	entries []string
}

func newSearchIndex(tree tracker.Tree) searchIndex {
	var idx searchIndex
	for _, sem := range tree {
		for _, q := range sem.Questions {
			for _, sq := range q.SubQuestions {
				idx.ids = append(idx.ids, sq.ID)
				idx.entries = append(idx.entries,
					strings.Join([]string{sem.Title, "Q" + q.Number + sq.Label, sq.Text}, " "))
			}
		}
	}
	return idx
}

// Len implements fuzzy.Source.
func (s searchIndex) Len() int { return len(s.entries) }

// String implements fuzzy.Source.
func (s searchIndex) String(i int) string { return s.entries[i] }

// filter returns the ids matching query, or nil when query is blank.
func (s searchIndex) filter(query string) map[string]bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	visible := make(map[string]bool)
	for _, m := range fuzzy.FindFrom(query, s) {
		visible[s.ids[m.Index]] = true
	}
	return visible
}
