// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/pkg/errors"
)

// LiftedTriangles returns the lower faces of the convex hull of the vertices
// lifted onto the paraboloid z = x² + y², as clockwise index triples. For
// points in general position they are exactly the Delaunay triangles.
func (t *Triangulation) LiftedTriangles() ([][3]int, error) {
	if len(t.Vertices) < 3 {
		return nil, errors.Wrapf(numeric.ErrPrecondition,
			"r2delaunay: lifting needs at least 3 vertices, got %d", len(t.Vertices))
	}
	lifted := make([]r3.Vector, len(t.Vertices))
	for i, p := range t.Vertices {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, t.opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("r2delaunay: inconsistent number of indices returned from QuickHull")
	}

	var centroid r3.Vector
	for _, v := range lifted {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1 / float64(len(lifted)))

	var out [][3]int
	for i := 0; i < len(ch.Indices); i += 3 {
		tri := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		pa, pb, pc := lifted[tri[0]], lifted[tri[1]], lifted[tri[2]]
		norm := pb.Sub(pa).Cross(pc.Sub(pa))
		if norm.Dot(pa.Sub(centroid)) < 0 {
			norm = norm.Mul(-1)
		}
		if norm.Z >= -t.opts.Eps {
			continue
		}
		a, b, c := t.Vertices[tri[0]], t.Vertices[tri[1]], t.Vertices[tri[2]]
		if numeric.Det2D(a, b, c) > 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		out = append(out, tri)
	}
	return out, nil
}

// ConvexHull returns the indices of the hull vertices in counter-clockwise
// order, taken from the boundary of the lifted lower hull.
func (t *Triangulation) ConvexHull() ([]int, error) {
	tris, err := t.LiftedTriangles()
	if err != nil {
		return nil, err
	}
	if len(tris) == 0 {
		return nil, errors.Wrap(numeric.ErrInvalidGeometry, "r2delaunay: vertices are collinear")
	}

	type edge struct{ from, to int }
	directed := make(map[edge]bool, 3*len(tris))
	for _, tr := range tris {
		for j := range 3 {
			directed[edge{tr[j], tr[(j+1)%3]}] = true
		}
	}
	// Boundary edges of clockwise triangles run clockwise around the hull.
	next := make(map[int]int)
	for e := range directed {
		if !directed[edge{e.to, e.from}] {
			next[e.to] = e.from
		}
	}

	start := -1
	for v := range next {
		if start < 0 || v < start {
			start = v
		}
	}
	hull := []int{start}
	for v := next[start]; v != start; v = next[v] {
		if len(hull) > len(next) {
			return nil, errors.New("r2delaunay: hull boundary does not close")
		}
		hull = append(hull, v)
	}
	return hull, nil
}
