// Package completion propagates done-state changes across synchronised
// links.
package completion

import (
	"github.com/abhisek/pyqtrack/internal/connectivity"
	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Group returns the propagation group of id: every sub-question id
// reachable from it over sync edges, id included. Dotted edges are
// ignored. Each node is visited once, so cycles are safe.
func Group(edges []links.LinkEdge, id string) map[string]bool {
	adj := connectivity.BuildAdjacency(links.SyncOnly(edges))
	comp := connectivity.Reachable(adj, id)

	group := make(map[string]bool, len(comp))
	for member := range comp {
		group[member] = true
	}
	return group
}

// Toggle flips the done-state of id and of every member of its propagation
// group to the negation of id's current state. It returns the new tree and
// true, or t unchanged and false when id is not in the tree. Group members
// absent from the tree are skipped.
func Toggle(t tracker.Tree, edges []links.LinkEdge, id string) (tracker.Tree, bool) {
	sq, ok := t.Find(id)
	if !ok {
		return t, false
	}
	return t.SetDone(Group(edges, id), !sq.IsDone), true
}
