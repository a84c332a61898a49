// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package graph implements undirected Euclidean graphs over a fixed point set
// with minimum spanning trees and greedy spanners.
package graph

import (
	"math"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is an undirected edge with U < V.
type Edge struct {
	U, V int
}

// NewEdge returns the edge between u and v with its endpoints ordered.
func NewEdge(u, v int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Graph is an undirected graph whose vertices are points and whose edge
// weights are Euclidean lengths.
type Graph struct {
	points []r2.Point
	adj    [][]int
	// NOTE: Insertion order.
	edges   []Edge
	weights EdgeMap[float64]

	wg *simple.WeightedUndirectedGraph
}

func New(points []r2.Point) *Graph {
	g := &Graph{
		points:  append([]r2.Point(nil), points...),
		adj:     make([][]int, len(points)),
		weights: NewEdgeMap[float64](),
		wg:      simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
	}
	for i := range points {
		g.wg.AddNode(simple.Node(i))
	}
	return g
}

func (g *Graph) NumVertices() int {
	return len(g.points)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

func (g *Graph) Point(v int) r2.Point {
	return g.points[v]
}

func (g *Graph) Points() []r2.Point {
	return g.points
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Neighbors returns the vertices adjacent to v in insertion order.
func (g *Graph) Neighbors(v int) []int {
	return g.adj[v]
}

// Weight returns the Euclidean length of the segment u-v, whether or not the
// edge is present.
func (g *Graph) Weight(u, v int) float64 {
	if w, ok := g.weights.Get(u, v); ok {
		return w
	}
	return g.points[u].Sub(g.points[v]).Norm()
}

// AddEdge inserts the edge u-v. It reports false without error when the edge
// already exists; self-loops and out of range vertices are errors.
func (g *Graph) AddEdge(u, v int) (bool, error) {
	n := g.NumVertices()
	if u < 0 || u >= n || v < 0 || v >= n {
		return false, errors.Wrapf(numeric.ErrPrecondition,
			"graph: edge %d-%d out of range [0 %d)", u, v, n)
	}
	if u == v {
		return false, errors.Wrapf(numeric.ErrPrecondition, "graph: self-loop at %d", u)
	}
	if g.HasEdge(u, v) {
		return false, nil
	}

	w := g.points[u].Sub(g.points[v]).Norm()
	g.edges = append(g.edges, NewEdge(u, v))
	g.weights.Set(u, v, w)
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.wg.SetWeightedEdge(g.wg.NewWeightedEdge(simple.Node(u), simple.Node(v), w))
	return true, nil
}

func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.weights.Get(u, v)
	return ok
}

func (g *Graph) MakeComplete() {
	for u := range g.NumVertices() {
		for v := u + 1; v < g.NumVertices(); v++ {
			// Endpoints are in range and distinct.
			_, _ = g.AddEdge(u, v)
		}
	}
}

func (g *Graph) TotalLength() float64 {
	total := 0.0
	for _, e := range g.edges {
		total += g.Weight(e.U, e.V)
	}
	return total
}

// ShortestPathLength returns the length of the shortest path from u to v,
// +Inf when v is unreachable.
func (g *Graph) ShortestPathLength(u, v int) float64 {
	if u == v {
		return 0
	}
	return path.DijkstraFrom(simple.Node(u), g.wg).WeightTo(int64(v))
}

// distancesFrom returns the shortest path lengths from u to every vertex.
func (g *Graph) distancesFrom(u int) []float64 {
	sp := path.DijkstraFrom(simple.Node(u), g.wg)
	out := make([]float64, g.NumVertices())
	for v := range out {
		out[v] = sp.WeightTo(int64(v))
	}
	out[u] = 0
	return out
}
