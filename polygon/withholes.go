// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygon

import (
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// WithHoles is an outer ring with zero or more holes. Holes lie inside the
// outer ring and do not overlap each other.
type WithHoles struct {
	Outer Polygon
	Holes []Polygon
}

// NewWithHoles validates holes against outer and against each other.
// Outer is stored counter-clockwise and holes clockwise.
func NewWithHoles(outer Polygon, holes ...Polygon) (WithHoles, error) {
	if outer.Len() == 0 {
		return WithHoles{}, errors.Wrap(numeric.ErrInvalidGeometry, "polygon: empty outer ring")
	}
	w := WithHoles{Outer: outer.CounterClockwise()}
	for i, h := range holes {
		if !outer.ContainsPolygon(h) {
			return WithHoles{}, errors.Wrapf(numeric.ErrInvalidGeometry,
				"polygon: hole %d is not inside the outer ring", i)
		}
		for j, o := range holes[:i] {
			if overlaps(h, o) {
				return WithHoles{}, errors.Wrapf(numeric.ErrInvalidGeometry,
					"polygon: holes %d and %d overlap", j, i)
			}
		}
		w.Holes = append(w.Holes, h.Clockwise())
	}
	return w, nil
}

// overlaps reports whether a and b share interior area. Touching along the
// boundary does not count.
func overlaps(a, b Polygon) bool {
	for _, q := range a.points {
		if b.Locate(q) == Inside {
			return true
		}
	}
	for _, q := range b.points {
		if a.Locate(q) == Inside {
			return true
		}
	}
	for _, e := range a.Edges() {
		for _, f := range b.Edges() {
			x, ok := e.Intersect(f)
			if !ok {
				continue
			}
			if !numeric.PointsEqual(x, e.A) && !numeric.PointsEqual(x, e.B) &&
				!numeric.PointsEqual(x, f.A) && !numeric.PointsEqual(x, f.B) {
				return true
			}
		}
	}
	return false
}

// Area is the outer area minus the hole areas.
func (w WithHoles) Area() float64 {
	a := w.Outer.Area()
	for _, h := range w.Holes {
		a -= h.Area()
	}
	return a
}

// Locate classifies p against the region. Hole boundaries are boundaries of
// the region, hole interiors are outside.
func (w WithHoles) Locate(p r2.Point) Location {
	loc := w.Outer.Locate(p)
	if loc != Inside {
		return loc
	}
	for _, h := range w.Holes {
		switch h.Locate(p) {
		case Inside:
			return Outside
		case OnBoundary:
			return OnBoundary
		}
	}
	return Inside
}

func (w WithHoles) Contains(p r2.Point) bool {
	return w.Locate(p) != Outside
}

// Vertices returns the outer ring followed by every hole.
func (w WithHoles) Vertices() []r2.Point {
	out := w.Outer.Vertices()
	for _, h := range w.Holes {
		out = append(out, h.points...)
	}
	return out
}

func (w WithHoles) BoundingBox() r2.Rect {
	return w.Outer.BoundingBox()
}

func (w WithHoles) Rings() []Polygon {
	out := []Polygon{w.Outer.CounterClockwise()}
	for _, h := range w.Holes {
		out = append(out, h.Clockwise())
	}
	return out
}
