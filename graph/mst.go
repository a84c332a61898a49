// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package graph

import (
	"sort"
)

// MinimumSpanningTree returns the Euclidean minimum spanning tree of the
// graph's points, computed with Kruskal's algorithm over the complete graph.
// Equal weights are ordered by endpoint coordinates, then by indices, so the
// result does not depend on insertion order.
func (g *Graph) MinimumSpanningTree() *Graph {
	tree := New(g.points)
	uf := newUnionFind(tree)
	for _, e := range g.candidates() {
		if !uf.union(e.U, e.V) {
			continue
		}
		// Candidates are distinct, in range and not self-loops.
		_, _ = tree.AddEdge(e.U, e.V)
		if tree.NumEdges() == tree.NumVertices()-1 {
			break
		}
	}
	return tree
}

// candidates returns every vertex pair sorted by weight with deterministic
// tie-breaking.
func (g *Graph) candidates() []Edge {
	n := g.NumVertices()
	out := make([]Edge, 0, n*(n-1)/2)
	for u := range n {
		for v := u + 1; v < n; v++ {
			out = append(out, Edge{U: u, V: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return g.lessEdge(out[i], out[j])
	})
	return out
}

func (g *Graph) lessEdge(a, b Edge) bool {
	wa, wb := g.Weight(a.U, a.V), g.Weight(b.U, b.V)
	if wa != wb {
		return wa < wb
	}
	a0, a1 := g.lexEndpoints(a)
	b0, b1 := g.lexEndpoints(b)
	for _, c := range [][2]int{{a0, b0}, {a1, b1}} {
		p, q := g.points[c[0]], g.points[c[1]]
		if p.X != q.X {
			return p.X < q.X
		}
		if p.Y != q.Y {
			return p.Y < q.Y
		}
	}
	if a.U != b.U {
		return a.U < b.U
	}
	return a.V < b.V
}

// lexEndpoints orders the endpoints of e by coordinates.
func (g *Graph) lexEndpoints(e Edge) (int, int) {
	p, q := g.points[e.U], g.points[e.V]
	if q.X < p.X || (q.X == p.X && q.Y < p.Y) {
		return e.V, e.U
	}
	return e.U, e.V
}

type unionFind struct {
	parent VertexMap[int]
	rank   VertexMap[int]
}

func newUnionFind(g *Graph) *unionFind {
	uf := &unionFind{
		parent: NewVertexMap(g, 0),
		rank:   NewVertexMap(g, 0),
	}
	for v := range uf.parent.Len() {
		uf.parent.Set(v, v)
	}
	return uf
}

func (uf *unionFind) find(v int) int {
	for uf.parent.Get(v) != v {
		// Path halving.
		uf.parent.Set(v, uf.parent.Get(uf.parent.Get(v)))
		v = uf.parent.Get(v)
	}
	return v
}

// union merges the sets of u and v and reports whether they were disjoint.
func (uf *unionFind) union(u, v int) bool {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return false
	}
	switch {
	case uf.rank.Get(ru) < uf.rank.Get(rv):
		uf.parent.Set(ru, rv)
	case uf.rank.Get(ru) > uf.rank.Get(rv):
		uf.parent.Set(rv, ru)
	default:
		uf.parent.Set(rv, ru)
		uf.rank.Set(ru, uf.rank.Get(ru)+1)
	}
	return true
}
