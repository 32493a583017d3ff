// Package connectivity partitions the nodes of an undirected edge set into
// connected components.
package connectivity

import (
	"slices"
	"strings"
)

// Edge is anything that joins two node identifiers. Direction is ignored.
type Edge interface {
	Endpoints() (from, to string)
}

// Component is a set of node identifiers.
type Component map[string]struct{}

// Has reports whether id belongs to the component.
func (c Component) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// IDs returns the members in sorted order.
func (c Component) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Key returns the sorted, comma-joined member list. It is stable for a
// given membership and is used as the component identity.
func (c Component) Key() string {
	return strings.Join(c.IDs(), ",")
}

// Adjacency maps each node to the set of its neighbours.
type Adjacency map[string]map[string]struct{}

// BuildAdjacency builds an undirected adjacency mapping from edges.
// A self-link registers the node with itself as its only neighbour.
func BuildAdjacency[E Edge](edges []E) Adjacency {
	adj := make(Adjacency)
	for _, e := range edges {
		from, to := e.Endpoints()
		adj.link(from, to)
		adj.link(to, from)
	}
	return adj
}

func (a Adjacency) link(from, to string) {
	if _, ok := a[from]; !ok {
		a[from] = make(map[string]struct{})
	}
	a[from][to] = struct{}{}
}

// Reachable returns every node reachable from start, start included.
// A node absent from adj yields the singleton {start}.
func Reachable(adj Adjacency, start string) Component {
	group := Component{}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if group.Has(cur) {
			continue
		}
		group[cur] = struct{}{}
		for n := range adj[cur] {
			if !group.Has(n) {
				stack = append(stack, n)
			}
		}
	}
	return group
}

// Components partitions every node mentioned in edges into connected
// components. Nodes without edges do not appear. The order of the returned
// slice is unspecified.
func Components[E Edge](edges []E) []Component {
	adj := BuildAdjacency(edges)
	visited := make(map[string]struct{}, len(adj))

	var out []Component
	for node := range adj {
		if _, ok := visited[node]; ok {
			continue
		}
		comp := Reachable(adj, node)
		for id := range comp {
			visited[id] = struct{}{}
		}
		out = append(out, comp)
	}
	return out
}
