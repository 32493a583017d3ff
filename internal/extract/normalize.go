package extract

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/pyqtrack/internal/tracker"
)

func newUUID() string { return uuid.NewString() }

// normalize converts model output into a tree: ids are made unique
// across the whole tree, marks lose their brackets and nothing is done.
func (e *Extractor) normalize(out rawOutput) tracker.Tree {
	seen := make(map[string]bool)
	id := func(candidate string) string {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || seen[candidate] {
			candidate = e.newID()
		}
		seen[candidate] = true
		return candidate
	}

	tree := make(tracker.Tree, 0, len(out.Semesters))
	for _, rs := range out.Semesters {
		sem := tracker.SemesterGroup{
			ID:        id(rs.ID),
			Title:     strings.TrimSpace(rs.Title),
			Questions: make([]tracker.Question, 0, len(rs.Questions)),
		}
		for _, rq := range rs.Questions {
			q := tracker.Question{
				ID:           id(rq.ID),
				Number:       strings.TrimSpace(rq.Number),
				SubQuestions: make([]tracker.SubQuestion, 0, len(rq.SubQuestions)),
			}
			for _, rsq := range rq.SubQuestions {
				q.SubQuestions = append(q.SubQuestions, tracker.SubQuestion{
					ID:    id(rsq.ID),
					Label: strings.TrimSpace(rsq.Label),
					Text:  strings.TrimSpace(rsq.Text),
					Marks: normalizeMarks(rsq.Marks),
				})
			}
			sem.Questions = append(sem.Questions, q)
		}
		tree = append(tree, sem)
	}
	return tree
}

// normalizeMarks strips surrounding brackets and a trailing "marks" word:
// "(7)", "[7]" and "7 marks" all become "7".
func normalizeMarks(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()[]{} ")
	for _, suffix := range []string{"marks", "mark", "m"} {
		cut := len(s) - len(suffix)
		if cut >= 0 && strings.EqualFold(s[cut:], suffix) {
			trimmed := strings.TrimSpace(s[:cut])
			if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return trimmed
			}
		}
	}
	return strings.TrimSpace(s)
}
