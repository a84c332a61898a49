// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package graph

import (
	"math"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ratioTolerance absorbs rounding between path sums computed in different
// orders.
const ratioTolerance = 1e-9

// GreedySpanner returns the greedy t-spanner of points: candidate edges are
// taken by increasing length and added only when the graph built so far has
// no path between the endpoints of length at most t times the edge length.
func GreedySpanner(points []r2.Point, t float64) (*Graph, error) {
	if !(t >= 1) || math.IsInf(t, 1) {
		return nil, errors.Wrapf(numeric.ErrPrecondition, "graph: spanner ratio must be in [1, +Inf), got %v", t)
	}
	g := New(points)
	for _, e := range g.candidates() {
		if g.ShortestPathLength(e.U, e.V) <= t*g.Weight(e.U, e.V) {
			continue
		}
		if _, err := g.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Pair is a vertex pair whose graph distance exceeds the allowed ratio.
type Pair struct {
	U, V  int
	Ratio float64
}

type SpannerReport struct {
	IsSpanner bool
	// MaxRatio is the largest graph distance over Euclidean distance among
	// all vertex pairs, +Inf if the graph is disconnected.
	MaxRatio float64
	Failures []Pair
}

// VerifySpanner checks every vertex pair for graph distance at most t times
// the Euclidean distance.
func (g *Graph) VerifySpanner(t float64) SpannerReport {
	report := SpannerReport{MaxRatio: 1}
	for u := range g.NumVertices() {
		dist := g.distancesFrom(u)
		for v := u + 1; v < g.NumVertices(); v++ {
			euclid := g.Weight(u, v)
			var ratio float64
			switch {
			case euclid > 0:
				ratio = dist[v] / euclid
			case dist[v] == 0:
				ratio = 1
			default:
				ratio = math.Inf(1)
			}
			report.MaxRatio = math.Max(report.MaxRatio, ratio)
			if ratio > t*(1+ratioTolerance) {
				report.Failures = append(report.Failures, Pair{U: u, V: v, Ratio: ratio})
			}
		}
	}
	report.IsSpanner = len(report.Failures) == 0
	return report
}
