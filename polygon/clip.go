// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygon

import (
	"math"
	"sort"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/ctessum/polyclip-go"
	"github.com/golang/geo/r2"
)

// Union returns the area covered by a or b.
func Union(a, b Shape) []WithHoles {
	return construct(a, b, polyclip.UNION)
}

// Intersection returns the area shared by a and b.
func Intersection(a, b Shape) []WithHoles {
	return construct(a, b, polyclip.INTERSECTION)
}

// Difference returns the area of a not covered by b.
func Difference(a, b Shape) []WithHoles {
	return construct(a, b, polyclip.DIFFERENCE)
}

// XOr returns the area covered by exactly one of a and b.
func XOr(a, b Shape) []WithHoles {
	return construct(a, b, polyclip.XOR)
}

func construct(a, b Shape, op polyclip.Op) []WithHoles {
	ra, rb := a.Rings(), b.Rings()
	subject := toPolyclip(ra, vertices(rb))
	clipping := toPolyclip(rb, vertices(ra))
	return assemble(subject.Construct(op, clipping))
}

// toPolyclip converts rings, splitting their edges at every point of at
// lying on them. polyclip drops the contact where a vertex of one operand
// only touches an edge of the other.
func toPolyclip(rings []Polygon, at []r2.Point) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(rings))
	for _, r := range rings {
		pts := splitEdges(r.points, at)
		c := make(polyclip.Contour, len(pts))
		for i, p := range pts {
			c[i] = polyclip.Point(p)
		}
		out = append(out, c)
	}
	return out
}

func vertices(rings []Polygon) []r2.Point {
	var out []r2.Point
	for _, r := range rings {
		out = append(out, r.points...)
	}
	return out
}

// splitEdges inserts every point of at lying strictly inside an edge of the
// closed ring pts, ordered along the edge.
func splitEdges(pts, at []r2.Point) []r2.Point {
	n := len(pts)
	out := make([]r2.Point, 0, n)
	for i := range n {
		seg := line.Segment{A: pts[i], B: pts[(i+1)%n]}
		out = append(out, seg.A)

		var on []r2.Point
		for _, p := range at {
			if numeric.PointsEqual(p, seg.A) || numeric.PointsEqual(p, seg.B) || !seg.ContainsPoint(p) {
				continue
			}
			on = append(on, p)
		}
		sort.Slice(on, func(i, j int) bool {
			return seg.Param(on[i]) < seg.Param(on[j])
		})
		for _, p := range on {
			if !numeric.PointsEqual(out[len(out)-1], p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// assemble turns the unordered contours of a clipping result back into
// polygons with holes. A contour nested inside an even number of others is
// an outer ring, an odd number makes it a hole of its nearest enclosing
// outer ring.
func assemble(result polyclip.Polygon) []WithHoles {
	var rings []Polygon
	for _, c := range result {
		pts := make([]r2.Point, len(c))
		for i, p := range c {
			pts[i] = r2.Point(p)
		}
		pts = dropDuplicates(pts)
		r, err := New(pts)
		if err != nil || r.Area() < numeric.DefaultEps {
			continue
		}
		rings = append(rings, r)
	}

	// Larger rings first so parents precede their children.
	sort.SliceStable(rings, func(i, j int) bool {
		return rings[i].Area() > rings[j].Area()
	})

	depth := make([]int, len(rings))
	parent := make([]int, len(rings))
	for i := range rings {
		parent[i] = -1
		for j := range i {
			if !ringInside(rings[i], rings[j]) {
				continue
			}
			depth[i]++
			// Later enclosing rings are smaller, so the last one is the nearest.
			parent[i] = j
		}
	}

	var out []WithHoles
	index := make(map[int]int)
	for i, r := range rings {
		if depth[i]%2 == 0 {
			index[i] = len(out)
			out = append(out, WithHoles{Outer: r.CounterClockwise()})
		}
	}
	for i, r := range rings {
		if depth[i]%2 == 1 {
			k, ok := index[parent[i]]
			if !ok {
				continue
			}
			out[k].Holes = append(out[k].Holes, r.Clockwise())
		}
	}
	return out
}

// ringInside reports whether inner is nested in outer. Contours of a
// clipping result never cross, so one vertex or edge midpoint strictly on
// either side decides.
func ringInside(inner, outer Polygon) bool {
	if inner.Area() >= outer.Area() {
		return false
	}
	n := len(inner.points)
	for i := range n {
		for _, q := range []r2.Point{inner.points[i], inner.points[i].Add(inner.points[(i+1)%n]).Mul(0.5)} {
			switch outer.Locate(q) {
			case Inside:
				return true
			case Outside:
				return false
			}
		}
	}
	return false
}

// dropDuplicates removes consecutive repeated vertices, wrapping around.
func dropDuplicates(pts []r2.Point) []r2.Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) > 0 && numeric.PointsEqual(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && numeric.PointsEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// TotalArea sums the areas of shapes.
func TotalArea[S Shape](shapes []S) float64 {
	var a float64
	for _, s := range shapes {
		a += s.Area()
	}
	return math.Abs(a)
}
