// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package visibility computes the region of a polygon seen from a point.
package visibility

import (
	"math"
	"sort"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// angleEps groups vertices lying on the same ray from the viewpoint.
const angleEps = 1e-10

type side int

const (
	sideNone side = iota
	sideMinus
	sidePlus
	sideBoth
)

// ray is one sweep direction shared by all vertices at the same angle.
type ray struct {
	angle float64
	dir   r2.Point
}

// Vision returns the part of p visible from x as a counter-clockwise simple
// polygon. x must lie strictly inside p; points on the boundary or in a hole
// return ErrPrecondition.
func Vision(p polygon.WithHoles, x r2.Point) (polygon.Polygon, error) {
	if p.Outer.Len() < 3 {
		return polygon.Polygon{}, errors.Wrap(numeric.ErrInvalidGeometry, "visibility: empty polygon")
	}
	if loc := p.Locate(x); loc != polygon.Inside {
		return polygon.Polygon{}, errors.Wrapf(numeric.ErrPrecondition,
			"visibility: viewpoint %v is %v the polygon", x, loc)
	}

	var segments []line.Segment
	for _, ring := range append([]polygon.Polygon{p.Outer}, p.Holes...) {
		segments = append(segments, ring.Edges()...)
	}
	ix := line.NewIndex(segments)

	box := p.BoundingBox().AddPoint(x)
	reach := 2*box.Size().Norm() + 1

	var out []r2.Point
	for _, r := range sweep(p.Vertices(), x) {
		minus, plus, err := cast(ix, x, r, reach)
		if err != nil {
			return polygon.Polygon{}, err
		}
		out = append(out, minus, plus)
	}

	out = clean(out)
	if len(out) < 3 {
		return polygon.Polygon{}, errors.Wrapf(numeric.ErrInvalidGeometry,
			"visibility: degenerate region seen from %v", x)
	}
	vis, err := polygon.New(out)
	if err != nil {
		return polygon.Polygon{}, err
	}
	return vis.CounterClockwise(), nil
}

// VisionOf is Vision for a polygon without holes.
func VisionOf(p polygon.Polygon, x r2.Point) (polygon.Polygon, error) {
	w, err := polygon.NewWithHoles(p)
	if err != nil {
		return polygon.Polygon{}, err
	}
	return Vision(w, x)
}

// sweep returns one ray per distinct vertex angle around x, in
// counter-clockwise order.
func sweep(vertices []r2.Point, x r2.Point) []ray {
	rays := make([]ray, 0, len(vertices))
	for _, v := range vertices {
		d := v.Sub(x)
		rays = append(rays, ray{angle: math.Atan2(d.Y, d.X), dir: d.Normalize()})
	}
	sort.Slice(rays, func(i, j int) bool {
		return rays[i].angle < rays[j].angle
	})

	out := rays[:0]
	for _, r := range rays {
		if n := len(out); n > 0 && r.angle-out[n-1].angle < angleEps {
			continue
		}
		out = append(out, r)
	}
	return out
}

// cast shoots r from x and returns the nearest boundary point just before and
// just after the ray in counter-clockwise order. The two differ when the ray
// grazes a vertex and continues behind it.
func cast(ix *line.Index, x r2.Point, r ray, reach float64) (minus, plus r2.Point, err error) {
	s := line.Segment{A: x, B: x.Add(r.dir.Mul(reach))}
	var haveMinus, havePlus bool
	for _, h := range ix.Intersections(s) {
		if h.Dist < numeric.DefaultEps {
			continue
		}
		sd := hitSide(ix.Segment(h.Segment), h.Point, x, r.dir)
		if !haveMinus && (sd == sideMinus || sd == sideBoth) {
			minus, haveMinus = h.Point, true
		}
		if !havePlus && (sd == sidePlus || sd == sideBoth) {
			plus, havePlus = h.Point, true
		}
		if haveMinus && havePlus {
			return minus, plus, nil
		}
	}
	return r2.Point{}, r2.Point{}, errors.Wrapf(numeric.ErrInvalidGeometry,
		"visibility: ray at angle %v leaves the polygon", r.angle)
}

// hitSide reports on which sides of the ray the segment continues from the
// hit point h.
func hitSide(seg line.Segment, h, x, dir r2.Point) side {
	var other r2.Point
	switch {
	case numeric.PointsEqual(h, seg.A):
		other = seg.B
	case numeric.PointsEqual(h, seg.B):
		other = seg.A
	default:
		return sideBoth
	}
	switch c := dir.Cross(other.Sub(x)); {
	case c > numeric.DefaultEps:
		return sidePlus
	case c < -numeric.DefaultEps:
		return sideMinus
	}
	return sideNone
}

// clean drops repeated and collinear points of the closed ring pts. Every
// pass removes repeats before it tests turns, since a repeated point makes
// any turn through it look collinear.
func clean(pts []r2.Point) []r2.Point {
	for changed := true; changed; {
		pts = dedup(pts)
		if len(pts) < 3 {
			return pts
		}
		changed = false
		n := len(pts)
		kept := make([]r2.Point, 0, n)
		for i := range n {
			prev := pts[numeric.Mod(i-1, n)]
			if len(kept) > 0 {
				prev = kept[len(kept)-1]
			}
			cur, next := pts[i], pts[(i+1)%n]
			if numeric.Orient2D(prev, cur, next) == 0 {
				changed = true
				continue
			}
			kept = append(kept, cur)
		}
		pts = kept
	}
	return pts
}

// dedup collapses runs of equal points, including a run wrapping around the
// end of the ring.
func dedup(pts []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || !numeric.PointsEqual(out[len(out)-1], p) {
			out = append(out, p)
		}
	}
	for len(out) > 1 && numeric.PointsEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}
