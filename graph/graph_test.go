// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package graph

import (
	"fmt"
	"math"
	"testing"

	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/utils"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

var collinear = []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}}

func TestAddEdge(t *testing.T) {
	g := New(utils.GenerateRandomPoints(4, 0))

	added, err := g.AddEdge(0, 1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AddEdge(1, 0)
	require.NoError(t, err)
	assert.False(t, added, "duplicate edge re-added")
	assert.Equal(t, 1, g.NumEdges())

	_, err = g.AddEdge(2, 2)
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
	_, err = g.AddEdge(0, 4)
	assert.ErrorIs(t, err, numeric.ErrPrecondition)

	assert.True(t, g.HasEdge(1, 0))
	assert.False(t, g.HasEdge(0, 2))
	assert.Equal(t, []int{1}, g.Neighbors(0))
	assert.Equal(t, []Edge{{U: 0, V: 1}}, g.Edges())
}

func TestMakeComplete(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 12} {
		g := New(utils.GenerateRandomPoints(n, 1))
		_, _ = g.AddEdge(0, min(1, n-1))
		g.MakeComplete()
		assert.Equal(t, n*(n-1)/2, g.NumEdges(), "n = %d", n)
	}
}

func TestShortestPathLength(t *testing.T) {
	g := New(collinear)
	assert.True(t, math.IsInf(g.ShortestPathLength(0, 1), 1))
	assert.Zero(t, g.ShortestPathLength(1, 1))

	_, _ = g.AddEdge(0, 2)
	_, _ = g.AddEdge(2, 1)
	assert.InDelta(t, 2, g.ShortestPathLength(0, 1), 1e-12)
	assert.InDelta(t, 2, g.TotalLength(), 1e-12)
}

func TestMinimumSpanningTree(t *testing.T) {
	points := utils.GenerateRandomPoints(40, 3)
	g := New(points)
	mst := g.MinimumSpanningTree()
	require.Equal(t, len(points)-1, mst.NumEdges())

	complete := New(points)
	complete.MakeComplete()
	dst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	want := path.Kruskal(dst, complete.wg)
	assert.InDelta(t, want, mst.TotalLength(), 1e-9)

	// Every vertex is reached.
	report := mst.VerifySpanner(math.Inf(1))
	assert.False(t, math.IsInf(report.MaxRatio, 1))
}

func TestMinimumSpanningTree_TieBreak(t *testing.T) {
	// Unit square: four edges of length 1, any three form an MST.
	square := []r2.Point{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	mst := New(square).MinimumSpanningTree()
	// Sides ordered by their lexicographically smaller endpoint: (0,0)-(0,1),
	// (0,0)-(1,0), then (0,1)-(1,1).
	assert.Equal(t, []Edge{{U: 1, V: 3}, {U: 1, V: 2}, {U: 0, V: 3}}, mst.Edges())

	reordered := []r2.Point{square[3], square[2], square[1], square[0]}
	got := New(reordered).MinimumSpanningTree()
	assert.InDelta(t, 3, got.TotalLength(), 1e-12)
	assert.True(t, got.HasEdge(2, 0))
	assert.True(t, got.HasEdge(2, 1))
	assert.True(t, got.HasEdge(0, 3))
}

func TestGreedySpanner(t *testing.T) {
	t.Run("t=1 is complete", func(t *testing.T) {
		points := utils.GenerateRandomPoints(12, 7)
		g, err := GreedySpanner(points, 1)
		require.NoError(t, err)
		assert.Equal(t, 12*11/2, g.NumEdges())
	})

	t.Run("large t on collinear points is a path", func(t *testing.T) {
		g, err := GreedySpanner(collinear, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, g.NumEdges())
		assert.True(t, g.HasEdge(0, 2))
		assert.True(t, g.HasEdge(2, 1))
		assert.False(t, g.HasEdge(0, 1))
	})

	t.Run("invalid ratio", func(t *testing.T) {
		for _, ratio := range []float64{0.99, 0, -1, math.NaN(), math.Inf(1)} {
			_, err := GreedySpanner(collinear, ratio)
			assert.ErrorIs(t, err, numeric.ErrPrecondition, "t = %v", ratio)
		}
	})
}

func TestVerifySpanner(t *testing.T) {
	points := utils.GenerateRandomPoints(25, 11)
	for _, ratio := range []float64{1, 1.1, 1.5, 2, 3, 5, 10} {
		t.Run(fmt.Sprintf("t=%v", ratio), func(t *testing.T) {
			g, err := GreedySpanner(points, ratio)
			require.NoError(t, err)
			report := g.VerifySpanner(ratio)
			assert.True(t, report.IsSpanner)
			assert.Empty(t, report.Failures)
			assert.LessOrEqual(t, report.MaxRatio, ratio*(1+ratioTolerance))
		})
	}
}

func TestVerifySpanner_Failures(t *testing.T) {
	g := New(collinear)
	_, _ = g.AddEdge(0, 1)
	report := g.VerifySpanner(2)
	assert.False(t, report.IsSpanner)
	assert.True(t, math.IsInf(report.MaxRatio, 1))
	require.Len(t, report.Failures, 2)
	assert.Equal(t, Pair{U: 0, V: 2, Ratio: math.Inf(1)}, report.Failures[0])
}

func TestVertexMap(t *testing.T) {
	g := New(collinear)
	m := NewVertexMap(g, "x")
	m.Set(1, "y")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, "x", m.Get(0))
	assert.Equal(t, "y", m.Get(1))
}

func TestEdgeMap(t *testing.T) {
	m := NewEdgeMap[int]()
	m.Set(2, 1, 7)
	got, ok := m.Get(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 7, got)
	_, ok = m.Get(0, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func BenchmarkGreedySpanner(b *testing.B) {
	points := utils.GenerateRandomPoints(60, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := GreedySpanner(points, 1.5); err != nil {
			b.Fatalf("GreedySpanner(...) error = %v, want nil", err)
		}
	}
}
