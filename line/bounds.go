// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package line

import (
	"math"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// BoundingBox returns the smallest rectangle containing every point.
func BoundingBox(points []r2.Point) (r2.Rect, error) {
	if len(points) == 0 {
		return r2.EmptyRect(), errors.Wrap(numeric.ErrInvalidGeometry, "line: bounding box of zero points")
	}
	return r2.RectFromPoints(points...), nil
}

// SegmentsBoundingBox returns the smallest rectangle containing every
// segment endpoint.
func SegmentsBoundingBox(segments []Segment) (r2.Rect, error) {
	points := make([]r2.Point, 0, 2*len(segments))
	for _, s := range segments {
		points = append(points, s.A, s.B)
	}
	return BoundingBox(points)
}

// BoundingBoxFromLines returns a rectangle containing every pairwise
// intersection of lines and the point where each line crosses the y axis
// (or the x axis, for verticals), expanded by margin on every side.
func BoundingBoxFromLines(lines []Line, margin float64) (r2.Rect, error) {
	if len(lines) == 0 {
		return r2.EmptyRect(), errors.Wrap(numeric.ErrInvalidGeometry, "line: bounding box of zero lines")
	}

	var points []r2.Point
	for i, l := range lines {
		if l.IsVertical() {
			points = append(points, r2.Point{X: l.p1.X, Y: 0})
		} else {
			points = append(points, r2.Point{X: 0, Y: l.height})
		}
		for _, o := range lines[i+1:] {
			if Parallel(l, o) {
				continue
			}
			p, err := Intersect(l, o)
			if err != nil {
				continue
			}
			points = append(points, p)
		}
	}

	rect := r2.RectFromPoints(points...)
	if margin < 0 {
		margin = 0
	}
	return rect.ExpandedByMargin(margin), nil
}

// ClipToRect returns the part of l inside rect.
func ClipToRect(l Line, rect r2.Rect) (Segment, bool) {
	lo, hi := rect.Lo(), rect.Hi()
	if l.IsVertical() {
		x := l.p1.X
		if x < lo.X || x > hi.X {
			return Segment{}, false
		}
		return Segment{A: r2.Point{X: x, Y: hi.Y}, B: r2.Point{X: x, Y: lo.Y}}, true
	}

	// Liang-Barsky on the parametrisation x = t.
	tMin, tMax := lo.X, hi.X
	yAt := func(x float64) float64 { return l.slope*x + l.height }
	if !numeric.EqualsEps(l.slope, 0) {
		ta := (lo.Y - l.height) / l.slope
		tb := (hi.Y - l.height) / l.slope
		tMin = math.Max(tMin, math.Min(ta, tb))
		tMax = math.Min(tMax, math.Max(ta, tb))
	} else if l.height < lo.Y || l.height > hi.Y {
		return Segment{}, false
	}
	if tMin > tMax {
		return Segment{}, false
	}

	a := r2.Point{X: tMin, Y: clamp(yAt(tMin), lo.Y, hi.Y)}
	b := r2.Point{X: tMax, Y: clamp(yAt(tMax), lo.Y, hi.Y)}
	if numeric.PointsEqual(a, b) {
		return Segment{}, false
	}
	return Segment{A: a, B: b}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
