package connectivity

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

type pair struct{ a, b string }

func (p pair) Endpoints() (string, string) { return p.a, p.b }

func keys(comps []Component) []string {
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Key()
	}
	slices.Sort(out)
	return out
}

func TestComponents_Empty(t *testing.T) {
	if got := Components([]pair(nil)); len(got) != 0 {
		t.Fatalf("expected no components, got %v", got)
	}
}

func TestComponents_Chain(t *testing.T) {
	got := keys(Components([]pair{{"a", "b"}, {"b", "c"}, {"x", "y"}}))
	want := []string{"a,b,c", "x,y"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComponents_Cycle(t *testing.T) {
	got := keys(Components([]pair{{"a", "b"}, {"b", "c"}, {"c", "a"}}))
	if !slices.Equal(got, []string{"a,b,c"}) {
		t.Errorf("got %v", got)
	}
}

func TestComponents_SelfLink(t *testing.T) {
	got := Components([]pair{{"a", "a"}})
	if len(got) != 1 || len(got[0]) != 1 || !got[0].Has("a") {
		t.Fatalf("expected singleton {a}, got %v", got)
	}
}

func TestComponents_DirectionIgnored(t *testing.T) {
	got := keys(Components([]pair{{"b", "a"}, {"c", "b"}}))
	if !slices.Equal(got, []string{"a,b,c"}) {
		t.Errorf("got %v", got)
	}
}

func TestReachable_UnknownNode(t *testing.T) {
	adj := BuildAdjacency([]pair{{"a", "b"}})
	got := Reachable(adj, "z")
	if len(got) != 1 || !got.Has("z") {
		t.Errorf("expected singleton {z}, got %v", got)
	}
}

func TestReachable_LongChainNoRecursion(t *testing.T) {
	const n = 200_000
	edges := make([]pair, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, pair{strconv.Itoa(i), strconv.Itoa(i + 1)})
	}
	got := Reachable(BuildAdjacency(edges), "0")
	if len(got) != n+1 {
		t.Errorf("reachable = %d, want %d", len(got), n+1)
	}
}

// randomEdges builds a random edge set over a small node space so that
// components of every size appear, including self-links.
func randomEdges(r *rand.Rand, nodes, edges int) []pair {
	out := make([]pair, edges)
	for i := range out {
		out[i] = pair{
			a: fmt.Sprintf("n%d", r.IntN(nodes)),
			b: fmt.Sprintf("n%d", r.IntN(nodes)),
		}
	}
	return out
}

func TestComponents_Partition(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		edges := randomEdges(r, 1+r.IntN(40), r.IntN(60))

		mentioned := map[string]bool{}
		for _, e := range edges {
			mentioned[e.a] = true
			mentioned[e.b] = true
		}

		seen := map[string]int{}
		for _, c := range Components(edges) {
			for id := range c {
				seen[id]++
			}
		}

		if len(seen) != len(mentioned) {
			t.Fatalf("trial %d: partition covers %d nodes, edges mention %d", trial, len(seen), len(mentioned))
		}
		for id, n := range seen {
			if n != 1 {
				t.Fatalf("trial %d: node %s appears in %d components", trial, id, n)
			}
			if !mentioned[id] {
				t.Fatalf("trial %d: node %s not mentioned by any edge", trial, id)
			}
		}
	}
}

func TestComponents_MatchesGonum(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 100; trial++ {
		edges := randomEdges(r, 1+r.IntN(30), r.IntN(45))

		g := simple.NewUndirectedGraph()
		for _, e := range edges {
			a, b := nodeID(e.a), nodeID(e.b)
			if a == b {
				if g.Node(a) == nil {
					g.AddNode(simple.Node(a))
				}
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
		}

		var want []string
		for _, cc := range topo.ConnectedComponents(g) {
			ids := make([]string, 0, len(cc))
			for _, n := range cc {
				ids = append(ids, fmt.Sprintf("n%d", n.ID()))
			}
			slices.Sort(ids)
			want = append(want, strings.Join(ids, ","))
		}
		slices.Sort(want)

		got := keys(Components(edges))
		if !slices.Equal(got, want) {
			t.Fatalf("trial %d: got %v, gonum %v", trial, got, want)
		}
	}
}

func nodeID(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimPrefix(s, "n"), 10, 64)
	return n
}
