// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Triangle is a view of one triangle. It is invalidated by AddVertex, Flip
// and RemoveInitialTriangle.
type Triangle struct {
	idx int
	t   *Triangulation
}

func (tr Triangle) Index() int {
	return tr.idx
}

// Vertices returns the vertex indices in clockwise order.
func (tr Triangle) Vertices() [3]int {
	return tr.t.tris[tr.idx].v
}

// Points returns the corners in clockwise order.
func (tr Triangle) Points() [3]r2.Point {
	a, b, c := tr.t.TriangleVertices(tr.idx)
	return [3]r2.Point{a, b, c}
}

// Inside reports whether p lies strictly inside the triangle.
func (tr Triangle) Inside(p r2.Point) bool {
	return tr.t.inside(tr.idx, p)
}

// InsideCircumcircle reports whether p lies strictly inside the
// circumcircle.
func (tr Triangle) InsideCircumcircle(p r2.Point) bool {
	a, b, c := tr.t.TriangleVertices(tr.idx)
	return numeric.InsideCircle(a, b, c, p)
}

// Circumcenter returns the cached circumcenter, or ErrInvalidGeometry for a
// degenerate triangle.
func (tr Triangle) Circumcenter() (r2.Point, error) {
	c := tr.t.tris[tr.idx]
	if !c.hasCenter {
		return r2.Point{}, errors.Wrapf(numeric.ErrInvalidGeometry,
			"r2delaunay: triangle %d has no circumcenter", tr.idx)
	}
	return c.center, nil
}

// Edge returns edge i, running from vertex i to vertex i+1.
func (tr Triangle) Edge(i int) Edge {
	return Edge{id: 3*tr.idx + numeric.Mod(i, 3), t: tr.t}
}

// Neighbor returns the triangle across edge i, if any.
func (tr Triangle) Neighbor(i int) (Triangle, bool) {
	tw, ok := tr.Edge(i).Twin()
	if !ok {
		return Triangle{}, false
	}
	return tw.Triangle(), true
}

// IsInitial reports whether the triangle touches a bootstrap vertex.
func (tr Triangle) IsInitial() bool {
	for _, v := range tr.t.tris[tr.idx].v {
		if tr.t.IsInitialVertex(v) {
			return true
		}
	}
	return false
}

// Edge is a view of one directed triangle edge.
type Edge struct {
	id int
	t  *Triangulation
}

func (e Edge) ID() int {
	return e.id
}

func (e Edge) From() int {
	return e.t.tris[e.id/3].v[e.id%3]
}

func (e Edge) To() int {
	return e.t.tris[e.id/3].v[(e.id%3+1)%3]
}

// Opposite returns the vertex of the owning triangle not on e.
func (e Edge) Opposite() int {
	return e.t.tris[e.id/3].v[(e.id%3+2)%3]
}

// Twin returns the same edge seen from the neighbouring triangle.
func (e Edge) Twin() (Edge, bool) {
	tw := e.t.tris[e.id/3].twin[e.id%3]
	if tw == noTwin {
		return Edge{}, false
	}
	return Edge{id: tw, t: e.t}, true
}

func (e Edge) Triangle() Triangle {
	return Triangle{idx: e.id / 3, t: e.t}
}

func (e Edge) Segment() line.Segment {
	return line.Segment{A: e.t.Vertices[e.From()], B: e.t.Vertices[e.To()]}
}
