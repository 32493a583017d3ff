package history

import "testing"

func TestUndoRedo_RestoresSnapshots(t *testing.T) {
	var h Stack[int]
	cur := 0
	h, cur = h.Commit(cur, 1)
	h, cur = h.Commit(cur, 2)

	h, cur, ok := h.Undo(cur)
	if !ok || cur != 1 {
		t.Fatalf("undo = %d, %v; want 1, true", cur, ok)
	}
	h, cur, ok = h.Undo(cur)
	if !ok || cur != 0 {
		t.Fatalf("undo = %d, %v; want 0, true", cur, ok)
	}
	if h.CanUndo() {
		t.Error("CanUndo should be false at the bottom")
	}

	h, cur, ok = h.Redo(cur)
	if !ok || cur != 1 {
		t.Fatalf("redo = %d, %v; want 1, true", cur, ok)
	}
	h, cur, _ = h.Redo(cur)
	if cur != 2 {
		t.Fatalf("redo = %d, want 2", cur)
	}
	if h.CanRedo() {
		t.Error("CanRedo should be false at the top")
	}
}

func TestCommit_ClearsFuture(t *testing.T) {
	var h Stack[string]
	cur := "a"
	h, cur = h.Commit(cur, "b")
	h, cur, _ = h.Undo(cur)
	if !h.CanRedo() {
		t.Fatal("expected a redo step")
	}
	h, cur = h.Commit(cur, "c")
	if h.CanRedo() {
		t.Error("new edit must clear redo")
	}
	if _, got, ok := h.Redo(cur); ok || got != "c" {
		t.Errorf("redo after edit = %q, %v", got, ok)
	}
}

func TestEmptyStack_NoOp(t *testing.T) {
	var h Stack[int]
	if _, cur, ok := h.Undo(7); ok || cur != 7 {
		t.Errorf("undo on empty = %d, %v", cur, ok)
	}
	if _, cur, ok := h.Redo(7); ok || cur != 7 {
		t.Errorf("redo on empty = %d, %v", cur, ok)
	}
}

func TestCommit_BoundedDepth(t *testing.T) {
	var h Stack[int]
	cur := 0
	for i := 1; i <= 60; i++ {
		h, cur = h.Commit(cur, i)
	}
	past, _ := h.Depth()
	if past != MaxDepth {
		t.Fatalf("depth = %d, want %d", past, MaxDepth)
	}
	// The 50 newest pre-edit snapshots are 10..59.
	for i := 0; i < MaxDepth; i++ {
		h, cur, _ = h.Undo(cur)
	}
	if cur != 10 {
		t.Errorf("oldest reachable = %d, want 10", cur)
	}
	if h.CanUndo() {
		t.Error("undo past the bound should be impossible")
	}
}

func TestRedo_KeepsBound(t *testing.T) {
	var h Stack[int]
	cur := 0
	for i := 1; i <= MaxDepth; i++ {
		h, cur = h.Commit(cur, i)
	}
	h, cur, _ = h.Undo(cur)
	h, cur, _ = h.Redo(cur)
	if past, future := h.Depth(); past != MaxDepth || future != 0 {
		t.Errorf("depth = %d/%d", past, future)
	}
	if cur != MaxDepth {
		t.Errorf("cur = %d", cur)
	}
}

func TestStack_ValueSemantics(t *testing.T) {
	var h Stack[int]
	cur := 0
	h, cur = h.Commit(cur, 1)
	h, cur = h.Commit(cur, 2)

	saved := h
	h2, _, _ := h.Undo(cur)
	_, _ = h2.Commit(1, 99)

	if p, f := saved.Depth(); p != 2 || f != 0 {
		t.Errorf("saved stack changed: %d/%d", p, f)
	}
	_, back, _ := saved.Undo(cur)
	if back != 1 {
		t.Errorf("saved undo = %d, want 1", back)
	}
}
