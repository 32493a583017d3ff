// Package tracker holds the semester → question → sub-question hierarchy
// and the read-only aggregations over it.
package tracker

import (
	"fmt"
	"slices"
)

// Find returns the sub-question with the given id.
func (t Tree) Find(id string) (SubQuestion, bool) {
	ref, ok := t.Locate(id)
	if !ok {
		return SubQuestion{}, false
	}
	return t.At(ref), true
}

// Locate returns the position of the sub-question with the given id.
func (t Tree) Locate(id string) (Ref, bool) {
	for si, sem := range t {
		for qi, q := range sem.Questions {
			for i, sq := range q.SubQuestions {
				if sq.ID == id {
					return Ref{Semester: si, Question: qi, Sub: i}, true
				}
			}
		}
	}
	return Ref{}, false
}

// At returns the sub-question at ref. ref must come from Locate or Walk.
func (t Tree) At(ref Ref) SubQuestion {
	return t[ref.Semester].Questions[ref.Question].SubQuestions[ref.Sub]
}

// Walk calls fn for every sub-question in display order.
func (t Tree) Walk(fn func(ref Ref, sq SubQuestion)) {
	for si, sem := range t {
		for qi, q := range sem.Questions {
			for i, sq := range q.SubQuestions {
				fn(Ref{Semester: si, Question: qi, Sub: i}, sq)
			}
		}
	}
}

// AllSubQuestions returns every sub-question flattened in display order.
func (t Tree) AllSubQuestions() []SubQuestion {
	var out []SubQuestion
	t.Walk(func(_ Ref, sq SubQuestion) { out = append(out, sq) })
	return out
}

// Progress counts done and total sub-questions. It is recomputed on every
// call.
func (t Tree) Progress() Progress {
	var p Progress
	t.Walk(func(_ Ref, sq SubQuestion) {
		p.Total++
		if sq.IsDone {
			p.Done++
		}
	})
	return p
}

// SetDone returns a new tree where every sub-question in ids has IsDone set
// to done. Semesters and questions without a change share their
// sub-question slices with t; t itself is never modified.
func (t Tree) SetDone(ids map[string]bool, done bool) Tree {
	out := make(Tree, len(t))
	for si, sem := range t {
		out[si] = sem
		var questions []Question
		for qi, q := range sem.Questions {
			var subs []SubQuestion
			for i, sq := range q.SubQuestions {
				if !ids[sq.ID] || sq.IsDone == done {
					continue
				}
				if subs == nil {
					subs = slices.Clone(q.SubQuestions)
				}
				subs[i].IsDone = done
			}
			if subs == nil {
				continue
			}
			if questions == nil {
				questions = slices.Clone(sem.Questions)
			}
			questions[qi].SubQuestions = subs
		}
		if questions != nil {
			out[si].Questions = questions
		}
	}
	return out
}

// IDs returns the set of sub-question ids in the tree.
func (t Tree) IDs() map[string]bool {
	ids := make(map[string]bool)
	t.Walk(func(_ Ref, sq SubQuestion) { ids[sq.ID] = true })
	return ids
}

// Validate checks that sub-question identifiers are non-empty and unique
// across the whole tree.
func (t Tree) Validate() error {
	seen := make(map[string]Ref)
	var err error
	t.Walk(func(ref Ref, sq SubQuestion) {
		if err != nil {
			return
		}
		if sq.ID == "" {
			err = fmt.Errorf("sub-question %s in %q question %s has no id",
				sq.Label, t[ref.Semester].Title, t[ref.Semester].Questions[ref.Question].Number)
			return
		}
		if prev, dup := seen[sq.ID]; dup {
			err = fmt.Errorf("duplicate sub-question id %q (%q and %q)",
				sq.ID, t[prev.Semester].Title, t[ref.Semester].Title)
			return
		}
		seen[sq.ID] = ref
	})
	return err
}
