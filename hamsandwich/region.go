// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hamsandwich

import (
	"sort"

	"github.com/2dChan/r2geom/dcel"
	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// maxWalkSteps is the least number of faces the middle face walk may visit
// before it is treated as stuck. Larger arrangements raise the cap to their
// number of vertices.
const maxWalkSteps = 100

// Region is a sequence of convex faces ordered along x.
type Region []polygon.Polygon

// MiddleRegion returns the faces of the dual arrangement of set lying below
// exactly half of its dual lines, rounded down.
func MiddleRegion(set []r2.Point) (r Region, err error) {
	if len(set) == 0 {
		return nil, errors.Wrap(numeric.ErrPrecondition, "hamsandwich: empty set")
	}
	if err := checkSet(set); err != nil {
		return nil, err
	}
	lines := make([]line.Line, len(set))
	for i, p := range set {
		lines[i] = PointToLine(p)
	}
	bounds, err := arrangementBounds(lines)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, invariant.Recover(rec)
		}
	}()
	return middleRegion(lines, bounds)
}

// Area returns the total area of the faces.
func (r Region) Area() float64 {
	return polygon.TotalArea([]polygon.Polygon(r))
}

// validate checks that the faces are convex and that consecutive faces meet
// exactly at a shared x coordinate.
func (r Region) validate() error {
	if len(r) == 0 {
		return errors.Wrap(numeric.ErrPrecondition, "empty region")
	}
	for i, f := range r {
		if !f.IsConvex() {
			return errors.Wrapf(numeric.ErrPrecondition, "face %d is not convex", i)
		}
		if i == 0 {
			continue
		}
		prev, cur := r[i-1].BoundingBox().Hi().X, f.BoundingBox().Lo().X
		if !numeric.EqualsEps(prev, cur) {
			return errors.Wrapf(numeric.ErrPrecondition,
				"faces %d and %d are not consecutive along x: %v != %v", i-1, i, prev, cur)
		}
	}
	return nil
}

// middleRegion sweeps bounds from left to right. Between two consecutive
// vertices of the arrangement the middle level stays in one face, so one
// sample per gap finds every middle face.
func middleRegion(lines []line.Line, bounds r2.Rect) (Region, error) {
	d, err := dcel.FromLines(lines, bounds)
	if err != nil {
		return nil, err
	}
	events := crossings(lines, bounds)
	limit := max(maxWalkSteps, len(events)+1)

	lo, hi := bounds.Lo().X, bounds.Hi().X
	var region Region
	last := dcel.NoFace
	for x, steps := lo, 0; x < hi-numeric.DefaultEps; steps++ {
		if steps >= limit {
			invariant.Fatalf("hamsandwich: middle face walk exceeded %d steps at x = %v", limit, x)
		}
		sx := (x + nextEvent(events, x, hi)) / 2
		f := d.GetContainingFace(r2.Point{X: sx, Y: levelMid(lines, sx, bounds)})
		if f == dcel.OuterFace || f == last {
			invariant.Fatalf("hamsandwich: middle face walk stuck in face %d at x = %v", f, sx)
		}
		poly, err := d.FacePolygon(f)
		if err != nil {
			return nil, err
		}
		region = append(region, poly)
		last = f
		x = d.FaceBoundingBox(f).Hi().X
	}
	return region, nil
}

// levelMid returns a y strictly between the two dual lines around the middle
// level at x.
func levelMid(lines []line.Line, x float64, bounds r2.Rect) float64 {
	values := make([]float64, len(lines))
	for i, l := range lines {
		values[i], _ = l.Y(x)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	k := len(lines) / 2
	upper := bounds.Hi().Y
	if k > 0 {
		upper = values[k-1]
	}
	return (upper + values[k]) / 2
}

// crossings returns the sorted distinct x coordinates of the arrangement
// vertices strictly inside bounds.
func crossings(lines []line.Line, bounds r2.Rect) []float64 {
	lo, hi := bounds.Lo().X, bounds.Hi().X
	var xs []float64
	for i, l := range lines {
		for _, o := range lines[i+1:] {
			if line.Parallel(l, o) {
				continue
			}
			p, err := line.Intersect(l, o)
			if err != nil || p.X <= lo || p.X >= hi {
				continue
			}
			xs = append(xs, p.X)
		}
	}
	sort.Float64s(xs)

	out := xs[:0]
	for _, x := range xs {
		if len(out) > 0 && numeric.EqualsEps(out[len(out)-1], x) {
			continue
		}
		out = append(out, x)
	}
	return out
}

// nextEvent returns the first event right of x, or hi.
func nextEvent(events []float64, x, hi float64) float64 {
	i := sort.SearchFloat64s(events, x+numeric.DefaultEps)
	if i < len(events) {
		return events[i]
	}
	return hi
}

// merge intersects two regions face by face. Both are ordered along x, so a
// two pointer sweep meets every overlapping pair once.
func merge(a, b Region) Region {
	var out Region
	for i, j := 0, 0; i < len(a) && j < len(b); {
		for _, piece := range polygon.Intersection(a[i], b[j]) {
			if piece.Area() > numeric.DefaultEps {
				out = append(out, piece.Outer)
			}
		}
		ai, bj := a[i].BoundingBox().Hi().X, b[j].BoundingBox().Hi().X
		switch {
		case numeric.EqualsEps(ai, bj):
			i++
			j++
		case ai < bj:
			i++
		default:
			j++
		}
	}
	return out
}

// checkSet rejects repeated points, whose dual lines coincide.
func checkSet(set []r2.Point) error {
	seen := make(map[r2.Point]int, len(set))
	for i, p := range set {
		if !numeric.IsFinite(p) {
			return errors.Wrapf(numeric.ErrInvalidGeometry, "hamsandwich: non-finite point %v", p)
		}
		if j, ok := seen[p]; ok {
			return errors.Wrapf(numeric.ErrPrecondition, "hamsandwich: points %d and %d coincide", j, i)
		}
		seen[p] = i
	}
	return nil
}
