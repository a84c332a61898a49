// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package line

import (
	"math"
	"sort"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
)

// Segment is a finite line between A and B.
type Segment struct {
	A, B r2.Point
}

func (s Segment) Line() Line {
	return New(s.A, s.B)
}

func (s Segment) Length() float64 {
	return s.B.Sub(s.A).Norm()
}

func (s Segment) Midpoint() r2.Point {
	return s.A.Add(s.B).Mul(0.5)
}

func (s Segment) Reverse() Segment {
	return Segment{A: s.B, B: s.A}
}

func (s Segment) BoundingBox() r2.Rect {
	return r2.RectFromPoints(s.A, s.B)
}

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool {
	return numeric.PointsEqual(s.A, s.B)
}

// DistanceToPoint returns the distance from p to the closest point of s.
func (s Segment) DistanceToPoint(p r2.Point) float64 {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(s.A).Norm()
	}
	t := math.Max(0, math.Min(1, p.Sub(s.A).Dot(d)/l2))
	return p.Sub(s.A.Add(d.Mul(t))).Norm()
}

// ContainsPoint reports whether p lies on s, endpoints included.
func (s Segment) ContainsPoint(p r2.Point) bool {
	return s.DistanceToPoint(p) < numeric.DefaultEps
}

// Param returns the parameter t with p = A + t(B-A) for the projection of p.
func (s Segment) Param(p r2.Point) float64 {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0
	}
	return p.Sub(s.A).Dot(d) / l2
}

// Intersect returns the single point shared by s and o. Parallel segments,
// including overlapping collinear ones, report no intersection.
func (s Segment) Intersect(o Segment) (r2.Point, bool) {
	r := s.B.Sub(s.A)
	q := o.B.Sub(o.A)
	denom := r.Cross(q)
	if math.Abs(denom) < numeric.DefaultEps*math.Max(1, r.Norm()*q.Norm()) {
		return r2.Point{}, false
	}

	ao := o.A.Sub(s.A)
	t := ao.Cross(q) / denom
	u := ao.Cross(r) / denom

	tEps := numeric.DefaultEps / math.Max(r.Norm(), numeric.DefaultEps)
	uEps := numeric.DefaultEps / math.Max(q.Norm(), numeric.DefaultEps)
	if t < -tEps || t > 1+tEps || u < -uEps || u > 1+uEps {
		return r2.Point{}, false
	}
	return s.A.Add(r.Mul(math.Max(0, math.Min(1, t)))), true
}

// IntersectLine returns the point where l crosses s.
func (s Segment) IntersectLine(l Line) (r2.Point, bool) {
	p1, p2 := l.Points()
	r := s.B.Sub(s.A)
	q := p2.Sub(p1)
	denom := r.Cross(q)
	if math.Abs(denom) < numeric.DefaultEps*math.Max(1, r.Norm()*q.Norm()) {
		return r2.Point{}, false
	}
	t := p1.Sub(s.A).Cross(q) / denom
	tEps := numeric.DefaultEps / math.Max(r.Norm(), numeric.DefaultEps)
	if t < -tEps || t > 1+tEps {
		return r2.Point{}, false
	}
	return s.A.Add(r.Mul(math.Max(0, math.Min(1, t)))), true
}

// IntersectMany intersects s with every segment of others and returns the
// intersection points ordered by distance from s.A.
func (s Segment) IntersectMany(others []Segment) []r2.Point {
	var hits []r2.Point
	for _, o := range others {
		if p, ok := s.Intersect(o); ok {
			hits = append(hits, p)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Sub(s.A).Norm() < hits[j].Sub(s.A).Norm()
	})
	return hits
}
