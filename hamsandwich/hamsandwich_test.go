// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hamsandwich

import (
	"testing"

	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	left   = []r2.Point{{X: -10, Y: 0.5}, {X: -10, Y: -0.5}}
	center = []r2.Point{{X: 0, Y: 0.5}, {X: 0, Y: -0.5}}
	right  = []r2.Point{{X: 10, Y: 0.5}, {X: 10, Y: -0.5}}
)

func TestDuality(t *testing.T) {
	for _, p := range []r2.Point{{X: 0, Y: 0}, {X: 2, Y: -3}, {X: -1.5, Y: 4}} {
		l := PointToLine(p)
		got, err := LineToPoint(l)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := LineToPoint(line.Vertical(1))
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
}

func TestDuality_PreservesAbove(t *testing.T) {
	cut := line.FromSlope(0.5, 1)
	dual, err := LineToPoint(cut)
	require.NoError(t, err)
	for _, p := range []r2.Point{{X: 0, Y: 3}, {X: 2, Y: 1}, {X: -4, Y: -1.5}, {X: 1, Y: 1}} {
		assert.Equal(t, cut.PointAbove(p), PointToLine(p).PointAbove(dual), "point %v", p)
	}
}

func TestFindCutLines_ThreeSets(t *testing.T) {
	lines, err := FindCutLines(left, center, right)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.GreaterOrEqual(t, l.Slope(), -1.0)
	assert.LessOrEqual(t, l.Slope(), 1.0)
	assert.GreaterOrEqual(t, l.HeightAtYAxis(), -2.0)
	assert.LessOrEqual(t, l.HeightAtYAxis(), 2.0)
	for _, set := range [][]r2.Point{left, center, right} {
		assertBisects(t, l, set)
	}
}

func TestFindCutLines_TwoSets(t *testing.T) {
	lines, err := FindCutLines(left, right)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	// The common region is symmetric about the origin.
	assert.InDelta(t, 0, lines[0].Slope(), 1e-6)
	assert.InDelta(t, 0, lines[0].HeightAtYAxis(), 1e-6)
}

func TestFindCutLines_OneSet(t *testing.T) {
	set := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 1}, {X: 4, Y: 3}}
	lines, err := FindCutLines(set)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assertBisects(t, l, set)
	}
}

func TestFindCutLines_Errors(t *testing.T) {
	tests := []struct {
		name string
		sets [][]r2.Point
		want error
	}{
		{"no sets", nil, numeric.ErrPrecondition},
		{"too many sets", [][]r2.Point{left, center, right, left}, ErrTooManySets},
		{"empty set", [][]r2.Point{left, {}}, numeric.ErrPrecondition},
		{"repeated point", [][]r2.Point{{{X: 1, Y: 1}, {X: 1, Y: 1}}}, numeric.ErrPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindCutLines(tt.sets...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMiddleRegion(t *testing.T) {
	set := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 1}, {X: 4, Y: 3}}
	r, err := MiddleRegion(set)
	require.NoError(t, err)
	require.NoError(t, r.validate())
	assert.Greater(t, r.Area(), 0.0)

	// Two parallel duals leave a single strip.
	r, err = MiddleRegion(center)
	require.NoError(t, err)
	assert.Len(t, r, 1)
}

func TestCutLinesFromRegions(t *testing.T) {
	regions := make([]Region, 0, 3)
	for _, set := range [][]r2.Point{left, center, right} {
		r, err := MiddleRegion(set)
		require.NoError(t, err)
		regions = append(regions, r)
	}
	lines, err := CutLinesFromRegions(regions...)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assertBisects(t, lines[0], center)
}

func TestCutLinesFromRegions_Precondition(t *testing.T) {
	a := mustPolygon(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 0, Y: 1})
	gap := mustPolygon(t, r2.Point{X: 2, Y: 0}, r2.Point{X: 3, Y: 0}, r2.Point{X: 3, Y: 1}, r2.Point{X: 2, Y: 1})
	notch := mustPolygon(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}, r2.Point{X: 0, Y: 2})

	_, err := CutLinesFromRegions(Region{a, gap})
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
	_, err = CutLinesFromRegions(Region{notch})
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
	_, err = CutLinesFromRegions(Region{})
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
}

func TestMerge(t *testing.T) {
	a := Region{
		mustPolygon(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 2, Y: 2}, r2.Point{X: 0, Y: 2}),
		mustPolygon(t, r2.Point{X: 2, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 4, Y: 2}, r2.Point{X: 2, Y: 2}),
	}
	b := Region{
		mustPolygon(t, r2.Point{X: 1, Y: 1}, r2.Point{X: 3, Y: 1}, r2.Point{X: 3, Y: 3}, r2.Point{X: 1, Y: 3}),
	}
	got := merge(a, b)
	require.Len(t, got, 2)
	assert.InDelta(t, 2, got.Area(), 1e-9)
	assert.Less(t, got[0].BoundingBox().Hi().X, got[1].BoundingBox().Hi().X)
}

func TestMerge_VerticesOnEdges(t *testing.T) {
	// The middle faces of left and center meet the strip of right only where
	// their corners touch its boundary lines.
	quad := mustPolygon(t, r2.Point{X: 0, Y: 0.5}, r2.Point{X: -0.1, Y: 0.5}, r2.Point{X: 0, Y: -0.5}, r2.Point{X: 0.1, Y: -0.5})
	strip := mustPolygon(t, r2.Point{X: 1, Y: 9.5}, r2.Point{X: 1, Y: 10.5}, r2.Point{X: -1, Y: -9.5}, r2.Point{X: -1, Y: -10.5})

	got := merge(Region{quad}, Region{strip})
	require.Len(t, got, 1)
	assert.InDelta(t, 0.05, got.Area(), 1e-9)
	c := chebyshevCenter(got[0])
	assert.InDelta(t, 0, c.X, 1e-6)
	assert.InDelta(t, 0, c.Y, 1e-6)
}

func TestChebyshev(t *testing.T) {
	tests := []struct {
		name       string
		points     []r2.Point
		wantCenter r2.Point
		wantRadius float64
	}{
		{"square", []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, r2.Point{X: 1, Y: 1}, 1},
		{"right triangle", []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 4, Y: 0}}, r2.Point{X: 1, Y: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, err := chebyshev(mustPolygon(t, tt.points...))
			require.NoError(t, err)
			assert.InDelta(t, tt.wantRadius, r, 1e-9)
			assert.InDelta(t, tt.wantCenter.X, c.X, 1e-9)
			assert.InDelta(t, tt.wantCenter.Y, c.Y, 1e-9)
		})
	}
}

func TestMiddleRegion_Stuck(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Error(t, invariant.Recover(r))
	}()
	bounds := r2.RectFromPoints(r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1})
	// A line above the box puts the middle level outside every face.
	_, _ = middleRegion([]line.Line{line.FromSlope(0, 5)}, bounds)
}

func assertBisects(t *testing.T, l line.Line, set []r2.Point) {
	t.Helper()
	above, below := 0, 0
	for _, p := range set {
		require.False(t, l.PointOnLine(p), "line %v passes through %v", l, p)
		if l.PointAbove(p) {
			above++
		} else {
			below++
		}
	}
	assert.Equal(t, len(set)/2, below, "line %v", l)
	assert.Equal(t, len(set)-len(set)/2, above, "line %v", l)
}

func mustPolygon(t *testing.T, points ...r2.Point) polygon.Polygon {
	t.Helper()
	p, err := polygon.New(points)
	require.NoError(t, err)
	return p
}
