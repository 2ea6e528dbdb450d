package kernel

import "sort"

// pslgEdge is an unordered vertex pair.
type pslgEdge struct {
	Lo, Hi uint32
}

func makePSLGEdge(a, b uint32) pslgEdge {
	if a < b {
		return pslgEdge{a, b}
	}
	return pslgEdge{b, a}
}

// PSLG is the set of vertex pairs that must appear as edges of the final
// triangulation. It is stored sorted so membership tests are O(log n).
type PSLG struct {
	edges []pslgEdge // kept sorted
}

func newPSLG() *PSLG { return &PSLG{} }

// Add records (a, b) as a required constraint edge. No-op if already
// present.
func (g *PSLG) Add(a, b uint32) {
	e := makePSLGEdge(a, b)
	i := g.search(e)
	if i < len(g.edges) && g.edges[i] == e {
		return
	}
	g.edges = append(g.edges, pslgEdge{})
	copy(g.edges[i+1:], g.edges[i:])
	g.edges[i] = e
}

// Has reports whether (a, b) (in either order) is a constraint edge.
func (g *PSLG) Has(a, b uint32) bool {
	e := makePSLGEdge(a, b)
	i := g.search(e)
	return i < len(g.edges) && g.edges[i] == e
}

func (g *PSLG) search(e pslgEdge) int {
	return sort.Search(len(g.edges), func(i int) bool {
		if g.edges[i].Lo != e.Lo {
			return g.edges[i].Lo >= e.Lo
		}
		return g.edges[i].Hi >= e.Hi
	})
}

// Len returns the number of constraint edges.
func (g *PSLG) Len() int { return len(g.edges) }

// All calls fn for every constraint edge.
func (g *PSLG) All(fn func(a, b uint32)) {
	for _, e := range g.edges {
		fn(e.Lo, e.Hi)
	}
}
