// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package polygon implements simple polygons, polygons with holes, sets of
// disjoint polygons and the boolean operations between them.
//
// Orientation follows the sign of the shoelace sum: a polygon is clockwise
// iff its signed area is negative.
package polygon

import (
	"math"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Location classifies a point against a closed region.
type Location int

const (
	Outside Location = iota
	Inside
	OnBoundary
)

func (l Location) String() string {
	switch l {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case OnBoundary:
		return "on boundary"
	}
	return "unknown"
}

// Shape is the capability set shared by Polygon, WithHoles and Multi.
type Shape interface {
	Area() float64
	// Contains reports whether p lies in the closed region.
	Contains(p r2.Point) bool
	Vertices() []r2.Point
	BoundingBox() r2.Rect
	// Rings returns every boundary ring, outer rings counter-clockwise and
	// holes clockwise.
	Rings() []Polygon
}

// Polygon is a closed ring of at least three vertices. The first vertex is
// not repeated at the end.
type Polygon struct {
	points []r2.Point
}

// New copies points into a polygon. A trailing copy of the first vertex is
// dropped.
func New(points []r2.Point) (Polygon, error) {
	n := len(points)
	if n > 1 && numeric.PointsEqual(points[0], points[n-1]) {
		n--
	}
	if n < 3 {
		return Polygon{}, errors.Wrapf(numeric.ErrInvalidGeometry,
			"polygon: need at least 3 vertices, got %d", n)
	}
	for i, p := range points[:n] {
		if !numeric.IsFinite(p) {
			return Polygon{}, errors.Wrapf(numeric.ErrInvalidGeometry,
				"polygon: vertex %d is not finite: %v", i, p)
		}
	}
	pts := make([]r2.Point, n)
	copy(pts, points[:n])
	return Polygon{points: pts}, nil
}

// Vertices returns a copy of the vertex ring.
func (p Polygon) Vertices() []r2.Point {
	out := make([]r2.Point, len(p.points))
	copy(out, p.points)
	return out
}

func (p Polygon) Len() int {
	return len(p.points)
}

// Vertex returns the vertex at i, wrapping around in both directions.
func (p Polygon) Vertex(i int) r2.Point {
	return p.points[numeric.Mod(i, len(p.points))]
}

// Edges returns the boundary segments, edge i running from vertex i to
// vertex i+1.
func (p Polygon) Edges() []line.Segment {
	n := len(p.points)
	out := make([]line.Segment, n)
	for i := range n {
		out[i] = line.Segment{A: p.points[i], B: p.points[(i+1)%n]}
	}
	return out
}

// SignedArea returns the shoelace area, negative for clockwise rings.
func (p Polygon) SignedArea() float64 {
	var sum float64
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

func (p Polygon) IsClockwise() bool {
	return p.SignedArea() < 0
}

// Reverse returns the polygon with the opposite winding.
func (p Polygon) Reverse() Polygon {
	n := len(p.points)
	pts := make([]r2.Point, n)
	for i, q := range p.points {
		pts[n-1-i] = q
	}
	return Polygon{points: pts}
}

func (p Polygon) Clockwise() Polygon {
	if p.IsClockwise() {
		return p
	}
	return p.Reverse()
}

func (p Polygon) CounterClockwise() Polygon {
	if p.IsClockwise() {
		return p.Reverse()
	}
	return p
}

// IsConvex reports whether every turn of the ring has the same direction.
// Collinear vertices are ignored.
func (p Polygon) IsConvex() bool {
	n := len(p.points)
	sign := 0
	for i := range n {
		o := numeric.Orient2D(p.points[i], p.points[(i+1)%n], p.points[(i+2)%n])
		if o == 0 {
			continue
		}
		if sign == 0 {
			sign = o
		} else if o != sign {
			return false
		}
	}
	return sign != 0
}

// IsSimple reports whether the ring has no repeated vertices, no fold-backs
// and no crossings between its edges.
func (p Polygon) IsSimple() bool {
	n := len(p.points)
	for i := range n {
		for j := i + 1; j < n; j++ {
			if numeric.PointsEqual(p.points[i], p.points[j]) {
				return false
			}
		}
	}

	edges := p.Edges()
	for i := range n {
		// Consecutive edges may only meet at their shared vertex.
		a, b, c := p.points[i], p.points[(i+1)%n], p.points[(i+2)%n]
		if numeric.Orient2D(a, b, c) == 0 && b.Sub(a).Dot(c.Sub(b)) < 0 {
			return false
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if _, ok := edges[i].Intersect(edges[j]); ok {
				return false
			}
			// Collinear overlaps are not reported by Intersect.
			if edges[i].ContainsPoint(edges[j].A) || edges[i].ContainsPoint(edges[j].B) ||
				edges[j].ContainsPoint(edges[i].A) || edges[j].ContainsPoint(edges[i].B) {
				return false
			}
		}
	}
	return true
}

// Centroid returns the area centroid. Degenerate rings fall back to the
// vertex mean.
func (p Polygon) Centroid() r2.Point {
	area := p.SignedArea()
	if numeric.EqualsEps(area, 0) {
		var c r2.Point
		for _, q := range p.points {
			c = c.Add(q)
		}
		return c.Mul(1 / float64(len(p.points)))
	}

	var cx, cy float64
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return r2.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

func (p Polygon) BoundingBox() r2.Rect {
	return r2.RectFromPoints(p.points...)
}

// Locate classifies q against the closed polygon. Points within DefaultEps
// of an edge are on the boundary; the rest are decided by even-odd ray
// crossing.
func (p Polygon) Locate(q r2.Point) Location {
	n := len(p.points)
	inside := false
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		if (line.Segment{A: a, B: b}).ContainsPoint(q) {
			return OnBoundary
		}
		if (a.Y > q.Y) != (b.Y > q.Y) {
			x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if q.X < x {
				inside = !inside
			}
		}
	}
	if inside {
		return Inside
	}
	return Outside
}

// Contains reports whether q is inside p or on its boundary.
func (p Polygon) Contains(q r2.Point) bool {
	return p.Locate(q) != Outside
}

func (p Polygon) Rings() []Polygon {
	return []Polygon{p.CounterClockwise()}
}

// ContainsPolygon reports whether every vertex of o lies in the closed
// region of p and no edges cross.
func (p Polygon) ContainsPolygon(o Polygon) bool {
	for _, q := range o.points {
		if p.Locate(q) == Outside {
			return false
		}
	}
	for _, e := range p.Edges() {
		for _, f := range o.Edges() {
			x, ok := e.Intersect(f)
			if !ok {
				continue
			}
			if !numeric.PointsEqual(x, f.A) && !numeric.PointsEqual(x, f.B) &&
				!numeric.PointsEqual(x, e.A) && !numeric.PointsEqual(x, e.B) {
				return false
			}
		}
	}
	return true
}
