// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulator

import (
	"testing"

	"github.com/2dChan/r2geom/dcel"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/2dChan/r2geom/r2delaunay"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygon_Fixtures(t *testing.T) {
	for _, name := range []string{"comb", "ushape", "collinear", "star", "spiral"} {
		t.Run(name, func(t *testing.T) {
			p := loadFixture(t, name)
			for _, in := range []polygon.Polygon{p, p.Reverse()} {
				dt, err := Polygon(in)
				require.NoError(t, err)
				assertCovers(t, in, dt)
			}
		})
	}
}

func TestPolygon_Triangle(t *testing.T) {
	p := mustPolygon(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1})
	dt, err := Polygon(p)
	require.NoError(t, err)
	assert.Equal(t, 1, dt.NumTriangles())
	assert.InDelta(t, 0.5, dt.Area(), numeric.DefaultEps)
}

func TestPolygon_NotSimple(t *testing.T) {
	bowtie := mustPolygon(t,
		r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}, r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 2})
	_, err := Polygon(bowtie)
	assert.ErrorIs(t, err, ErrNotSimple)
}

func TestPolygon_InvalidInput(t *testing.T) {
	_, err := Polygon(polygon.Polygon{})
	assert.Error(t, err)
}

func TestLeftmost_TieBreak(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 2}}
	assert.Equal(t, 3, leftmost(points, []int{0, 1, 2, 3, 4}))
}

func TestSplitAt(t *testing.T) {
	a, b := splitAt([]int{10, 11, 12, 13, 14, 15}, 4, 1)
	assert.Equal(t, []int{14, 15, 10, 11}, a)
	assert.Equal(t, []int{11, 12, 13, 14}, b)
}

func TestFace(t *testing.T) {
	d, err := dcel.New(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 2}))
	require.NoError(t, err)

	dt, err := Face(d, d.InnerFaces()[0])
	require.NoError(t, err)
	assert.Equal(t, 2, dt.NumTriangles())
	assert.InDelta(t, 8, dt.Area(), numeric.DefaultEps)

	_, err = Face(d, dcel.OuterFace)
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
}

func TestFace_Holes(t *testing.T) {
	box := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 4})
	island := []line.Segment{
		{A: r2.Point{X: 1, Y: 1}, B: r2.Point{X: 2, Y: 1}},
		{A: r2.Point{X: 2, Y: 1}, B: r2.Point{X: 2, Y: 2}},
		{A: r2.Point{X: 2, Y: 2}, B: r2.Point{X: 1, Y: 2}},
		{A: r2.Point{X: 1, Y: 2}, B: r2.Point{X: 1, Y: 1}},
	}
	d, err := dcel.FromSegments(island, box)
	require.NoError(t, err)

	outer := d.GetContainingFace(r2.Point{X: 3, Y: 3})
	_, err = Face(d, outer)
	assert.ErrorIs(t, err, ErrHoles)

	inner := d.GetContainingFace(r2.Point{X: 1.5, Y: 1.5})
	dt, err := Face(d, inner)
	require.NoError(t, err)
	assert.InDelta(t, 1, dt.Area(), numeric.DefaultEps)
}

func TestDCEL(t *testing.T) {
	box := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2})
	diagonals := []line.Segment{
		{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 2, Y: 2}},
		{A: r2.Point{X: 0, Y: 2}, B: r2.Point{X: 2, Y: 0}},
	}
	d, err := dcel.FromSegments(diagonals, box)
	require.NoError(t, err)

	dt, err := DCEL(d)
	require.NoError(t, err)
	require.NoError(t, dt.Validate())
	assert.Equal(t, 4, dt.NumTriangles())
	assert.InDelta(t, 4, dt.Area(), numeric.DefaultEps)

	shared := 0
	for e := range 3 * dt.NumTriangles() {
		if _, ok := dt.Edge(e).Twin(); ok {
			shared++
		}
	}
	// Four spokes from the centre, each seen from both sides.
	assert.Equal(t, 8, shared)
}

func BenchmarkPolygon(b *testing.B) {
	points := make([]r2.Point, 0, 200)
	for i := range 100 {
		x := float64(i)
		points = append(points, r2.Point{X: x, Y: float64(i%2) * 10})
	}
	for i := 99; i >= 0; i-- {
		points = append(points, r2.Point{X: float64(i), Y: -5})
	}
	p, err := polygon.New(points)
	if err != nil {
		b.Fatalf("polygon.New(...) error = %v, want nil", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := Polygon(p); err != nil {
			b.Fatalf("Polygon(...) error = %v, want nil", err)
		}
	}
}

func assertCovers(t *testing.T, p polygon.Polygon, dt *r2delaunay.Triangulation) {
	t.Helper()
	require.Equal(t, p.Len()-2, dt.NumTriangles())
	assert.InDelta(t, p.Area(), dt.Area(), 1e-9)

	seen := make(map[int]bool)
	for i, tri := range dt.Triangles() {
		a, b, c := dt.TriangleVertices(i)
		assert.LessOrEqual(t, numeric.Det2D(a, b, c), 0.0, "triangle %d %v is not clockwise", i, tri)
		for _, v := range tri {
			seen[v] = true
		}
	}
	assert.Len(t, seen, p.Len())
}

func mustPolygon(t *testing.T, points ...r2.Point) polygon.Polygon {
	t.Helper()
	p, err := polygon.New(points)
	require.NoError(t, err)
	return p
}
