// Package history implements the bounded undo/redo stack.
package history

import "slices"

// MaxDepth is the number of past snapshots kept. The oldest is evicted
// when a commit would exceed it.
const MaxDepth = 50

// Stack holds past and future snapshots of S. The zero value is an empty
// stack. Stack is a value type: every method returns a new Stack and never
// writes into slices it shares with the receiver.
type Stack[S any] struct {
	past   []S
	future []S
}

// Commit records current as the newest past snapshot, discards the future
// and returns next as the new present.
func (s Stack[S]) Commit(current, next S) (Stack[S], S) {
	past := make([]S, 0, min(len(s.past)+1, MaxDepth))
	if len(s.past) >= MaxDepth {
		past = append(past, s.past[len(s.past)-MaxDepth+1:]...)
	} else {
		past = append(past, s.past...)
	}
	past = append(past, current)
	return Stack[S]{past: past}, next
}

// Undo pops the newest past snapshot and pushes current onto the future.
// It reports false and returns current unchanged when there is nothing to
// undo.
func (s Stack[S]) Undo(current S) (Stack[S], S, bool) {
	if len(s.past) == 0 {
		return s, current, false
	}
	prev := s.past[len(s.past)-1]
	return Stack[S]{
		past:   slices.Clone(s.past[:len(s.past)-1]),
		future: prepend(s.future, current),
	}, prev, true
}

// Redo pops the nearest future snapshot and pushes current onto the past.
func (s Stack[S]) Redo(current S) (Stack[S], S, bool) {
	if len(s.future) == 0 {
		return s, current, false
	}
	next := s.future[0]
	past := append(slices.Clone(s.past), current)
	if len(past) > MaxDepth {
		past = past[len(past)-MaxDepth:]
	}
	return Stack[S]{
		past:   past,
		future: slices.Clone(s.future[1:]),
	}, next, true
}

// CanUndo reports whether a past snapshot is available.
func (s Stack[S]) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether an undone snapshot can be restored.
func (s Stack[S]) CanRedo() bool { return len(s.future) > 0 }

// Depth returns the number of undoable and redoable steps.
func (s Stack[S]) Depth() (past, future int) {
	return len(s.past), len(s.future)
}

func prepend[S any](xs []S, x S) []S {
	out := make([]S, 0, len(xs)+1)
	out = append(out, x)
	return append(out, xs...)
}
