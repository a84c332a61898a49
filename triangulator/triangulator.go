// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package triangulator triangulates simple polygons and DCEL faces by ear
// clipping.
package triangulator

import (
	"github.com/2dChan/r2geom/dcel"
	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/2dChan/r2geom/r2delaunay"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	ErrNotSimple = errors.New("triangulator: polygon is not simple")
	// ErrHoles is returned for faces with islands. Triangulate the face and
	// each island face separately instead.
	ErrHoles = errors.New("triangulator: face has holes")
)

// Polygon triangulates the simple polygon p into p.Len()-2 clockwise
// triangles over the vertices of p.
func Polygon(p polygon.Polygon, setters ...r2delaunay.Option) (*r2delaunay.Triangulation, error) {
	points := p.Vertices()
	tris, err := earClip(points)
	if err != nil {
		return nil, err
	}
	return r2delaunay.FromTriangles(points, tris, setters...)
}

// Face triangulates an inner face of d. Triangle indices refer to DCEL
// vertex handles.
func Face(d *dcel.DCEL, f dcel.FaceID, setters ...r2delaunay.Option) (*r2delaunay.Triangulation, error) {
	return Faces(d, []dcel.FaceID{f}, setters...)
}

// Faces triangulates several inner faces of d into one triangulation over
// all DCEL vertices, so triangles of adjacent faces are linked as twins.
func Faces(d *dcel.DCEL, faces []dcel.FaceID, setters ...r2delaunay.Option) (*r2delaunay.Triangulation, error) {
	var tris [][3]int
	for _, f := range faces {
		ft, err := faceTriangles(d, f)
		if err != nil {
			return nil, err
		}
		tris = append(tris, ft...)
	}
	vertices := make([]r2.Point, d.NumVertices())
	for i, v := range d.Vertices() {
		vertices[i] = v.Point
	}
	return r2delaunay.FromTriangles(vertices, tris, setters...)
}

// DCEL triangulates every inner face of d.
func DCEL(d *dcel.DCEL, setters ...r2delaunay.Option) (*r2delaunay.Triangulation, error) {
	return Faces(d, d.InnerFaces(), setters...)
}

func faceTriangles(d *dcel.DCEL, f dcel.FaceID) ([][3]int, error) {
	shape, err := d.FaceShape(f)
	if err != nil {
		return nil, err
	}
	if len(shape.Holes) > 0 {
		return nil, errors.Wrapf(ErrHoles, "triangulator: face %d has %d holes", f, len(shape.Holes))
	}
	cycle, err := d.Cycle(d.Face(f).Outer)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(cycle))
	points := make([]r2.Point, len(cycle))
	for i, e := range cycle {
		v := d.Edge(e).From
		ids[i] = int(v)
		points[i] = d.Point(v)
	}

	local, err := earClip(points)
	if err != nil {
		return nil, errors.WithMessagef(err, "triangulator: face %d", f)
	}
	out := make([][3]int, len(local))
	for i, tri := range local {
		out[i] = [3]int{ids[tri[0]], ids[tri[1]], ids[tri[2]]}
	}
	return out, nil
}

// earClip returns len(points)-2 clockwise index triangles covering the
// simple polygon points.
func earClip(points []r2.Point) (tris [][3]int, err error) {
	p, err := polygon.New(points)
	if err != nil {
		return nil, err
	}
	if len(points) != p.Len() {
		// polygon.New dropped a closing duplicate.
		points = points[:p.Len()]
	}
	if !p.IsSimple() {
		return nil, errors.Wrapf(ErrNotSimple, "triangulator: %d vertices", p.Len())
	}

	defer func() {
		if r := recover(); r != nil {
			tris, err = nil, invariant.Recover(r)
		}
	}()

	piece := make([]int, len(points))
	for i := range piece {
		piece[i] = i
	}
	if !p.IsClockwise() {
		for i, j := 0, len(piece)-1; i < j; i, j = i+1, j-1 {
			piece[i], piece[j] = piece[j], piece[i]
		}
	}

	tris = make([][3]int, 0, len(points)-2)
	work := [][]int{piece}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if len(cur) < 3 {
			invariant.Fatalf("triangulator: piece with %d vertices", len(cur))
		}
		if len(cur) == 3 {
			tris = append(tris, [3]int{cur[0], cur[1], cur[2]})
			continue
		}

		i := leftmost(points, cur)
		n := len(cur)
		prev, v, next := cur[numeric.Mod(i-1, n)], cur[i], cur[(i+1)%n]

		w := farthestInside(points, cur, prev, v, next)
		if w < 0 {
			tris = append(tris, [3]int{prev, v, next})
			rest := make([]int, 0, n-1)
			rest = append(rest, cur[:i]...)
			rest = append(rest, cur[i+1:]...)
			work = append(work, rest)
			continue
		}
		a, b := splitAt(cur, i, w)
		work = append(work, a, b)
	}
	return tris, nil
}

// leftmost returns the position in piece of the vertex with minimal x,
// breaking ties by minimal y.
func leftmost(points []r2.Point, piece []int) int {
	best := 0
	for i := 1; i < len(piece); i++ {
		p, q := points[piece[i]], points[piece[best]]
		if p.X < q.X || (p.X == q.X && p.Y < q.Y) {
			best = i
		}
	}
	return best
}

// farthestInside returns the position in piece of the vertex inside the
// closed triangle (prev, v, next) farthest from the line prev-next, or -1.
func farthestInside(points []r2.Point, piece []int, prev, v, next int) int {
	a, b, c := points[prev], points[v], points[next]
	best, bestDist := -1, -1.0
	for i, idx := range piece {
		if idx == prev || idx == v || idx == next {
			continue
		}
		q := points[idx]
		if numeric.PointsEqual(q, a) || numeric.PointsEqual(q, b) || numeric.PointsEqual(q, c) {
			continue
		}
		if numeric.Orient2D(a, b, q) > 0 || numeric.Orient2D(b, c, q) > 0 || numeric.Orient2D(c, a, q) > 0 {
			continue
		}
		if d := -numeric.Det2D(c, a, q); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// splitAt cuts piece along the diagonal between positions i and j.
func splitAt(piece []int, i, j int) ([]int, []int) {
	n := len(piece)
	var a, b []int
	for k := i; ; k = (k + 1) % n {
		a = append(a, piece[k])
		if k == j {
			break
		}
	}
	for k := j; ; k = (k + 1) % n {
		b = append(b, piece[k])
		if k == i {
			break
		}
	}
	return a, b
}
