// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"math"

	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewTriangulation computes the Delaunay triangulation of points by
// incremental insertion into a bootstrap triangle enclosing all of them.
// Points that cannot be inserted (duplicates, points on an existing edge,
// non-finite input) are skipped and logged, so Vertices may be shorter than
// points.
func NewTriangulation(points []r2.Point, setters ...Option) (dt *Triangulation, err error) {
	if len(points) < 3 {
		return nil, errors.Wrapf(numeric.ErrPrecondition,
			"r2delaunay: insufficient vertices for triangulation (minimum 3 required, got %d)", len(points))
	}
	finite := make([]r2.Point, 0, len(points))
	for _, p := range points {
		if numeric.IsFinite(p) {
			finite = append(finite, p)
		}
	}
	box, err := line.BoundingBox(finite)
	if err != nil {
		return nil, errors.Wrap(numeric.ErrInvalidGeometry, "r2delaunay: no finite vertices")
	}

	dt, err = New(bootstrapTriangle(box), setters...)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			dt, err = nil, invariant.Recover(r)
		}
	}()
	for _, p := range points {
		dt.AddVertex(p)
	}
	dt.RemoveInitialTriangle()
	if dt.NumTriangles() == 0 {
		return nil, errors.Wrap(numeric.ErrInvalidGeometry,
			"r2delaunay: all vertices are collinear")
	}
	return dt, nil
}

// bootstrapTriangle returns a clockwise triangle far enough around box that
// its vertices never fall inside the circumcircle of a triangle of real
// points that belongs to the final triangulation.
func bootstrapTriangle(box r2.Rect) [3]r2.Point {
	c := box.Center()
	size := box.Size()
	m := math.Max(size.X, size.Y)
	if m == 0 {
		m = 1
	}
	return [3]r2.Point{
		{X: c.X - 97*m, Y: c.Y - 61*m},
		{X: c.X + 3*m, Y: c.Y + 107*m},
		{X: c.X + 101*m, Y: c.Y - 67*m},
	}
}

// AddVertex inserts p into the triangle strictly containing it and restores
// the Delaunay property by flipping. It returns false, logging a warning,
// when no triangle strictly contains p.
func (t *Triangulation) AddVertex(p r2.Point) bool {
	log := t.opts.Logger.WithFields(logrus.Fields{"x": p.X, "y": p.Y})
	if !numeric.IsFinite(p) {
		log.Warn("r2delaunay: skipping non-finite vertex")
		return false
	}
	tri := t.locate(p)
	if tri < 0 {
		log.Warn("r2delaunay: no triangle strictly contains vertex, skipping")
		return false
	}

	t.Vertices = append(t.Vertices, p)
	edges := t.split(tri, len(t.Vertices)-1)
	t.legalize(edges[:])
	t.invalidate()
	return true
}

// locate returns the triangle strictly containing p, or -1.
func (t *Triangulation) locate(p r2.Point) int {
	for i := range t.tris {
		if t.inside(i, p) {
			return i
		}
	}
	return -1
}

// inside uses the sign of each edge test up to rounding error, so only
// points on an edge or a vertex are rejected, at any scale.
func (t *Triangulation) inside(i int, p r2.Point) bool {
	a, b, c := t.TriangleVertices(i)
	return numeric.OrientSign(a, b, p) < 0 && numeric.OrientSign(b, c, p) < 0 && numeric.OrientSign(c, a, p) < 0
}

// split replaces triangle i = [a, b, c] by [a, b, x], [b, c, x] and
// [c, a, x] and returns the edges opposite x.
func (t *Triangulation) split(i, x int) [3]int {
	old := t.tris[i]
	a, b, c := old.v[0], old.v[1], old.v[2]
	t0, t1, t2 := i, len(t.tris), len(t.tris)+1

	t.tris[t0] = t.newTriangle([3]int{a, b, x}, [3]int{old.twin[0], 3*t1 + 2, 3*t2 + 1})
	t.tris = append(t.tris,
		t.newTriangle([3]int{b, c, x}, [3]int{old.twin[1], 3*t2 + 2, 3*t0 + 1}),
		t.newTriangle([3]int{c, a, x}, [3]int{old.twin[2], 3*t0 + 2, 3*t1 + 1}),
	)
	t.relink(old.twin[1], 3*t1)
	t.relink(old.twin[2], 3*t2)
	return [3]int{3 * t0, 3 * t1, 3 * t2}
}

// relink points the twin of outer edge e at id.
func (t *Triangulation) relink(e, id int) {
	if e != noTwin {
		t.tris[e/3].twin[e%3] = id
	}
}

// legalize flips every illegal edge reachable from the stack.
func (t *Triangulation) legalize(stack []int) {
	limit := 16*len(t.tris) + 64
	for steps := 0; len(stack) > 0; steps++ {
		if steps > limit {
			invariant.Fatalf("r2delaunay: legalization did not converge after %d flips", steps)
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !t.illegal(e) {
			continue
		}
		ti, ui := e/3, t.tris[e/3].twin[e%3]/3
		t.flip(e)
		stack = append(stack, 3*ti+1, 3*ui)
	}
}

// illegal reports whether the vertex across edge e lies inside the
// circumcircle of the triangle owning e. The in-circle test is relative to
// the size of the triangles, so small triangles flip like large ones.
func (t *Triangulation) illegal(e int) bool {
	tr := t.tris[e/3]
	u := tr.twin[e%3]
	if u == noTwin {
		return false
	}
	y := t.tris[u/3].v[(u%3+2)%3]
	a, b, c := t.TriangleVertices(e / 3)
	return numeric.InsideCircle(a, b, c, t.Vertices[y])
}

// Flip replaces the two triangles sharing edge e by the two triangles using
// the other diagonal of their quadrilateral. The edge must have a twin and
// the quadrilateral must be strictly convex.
func (t *Triangulation) Flip(e int) error {
	if e < 0 || e >= 3*len(t.tris) {
		return errors.Errorf("r2delaunay: edge %d out of range", e)
	}
	u := t.tris[e/3].twin[e%3]
	if u == noTwin {
		return errors.Wrapf(numeric.ErrPrecondition, "r2delaunay: edge %d has no twin", e)
	}
	tr, ur := t.tris[e/3], t.tris[u/3]
	i, j := e%3, u%3
	a, b, x := tr.v[i], tr.v[(i+1)%3], tr.v[(i+2)%3]
	y := ur.v[(j+2)%3]
	pa, pb, px, py := t.Vertices[a], t.Vertices[b], t.Vertices[x], t.Vertices[y]
	if numeric.OrientSign(px, pa, py) >= 0 || numeric.OrientSign(py, pb, px) >= 0 {
		return errors.Wrapf(numeric.ErrPrecondition,
			"r2delaunay: quadrilateral around edge %d is not convex", e)
	}
	t.flip(e)
	t.invalidate()
	return nil
}

// flip rewrites T = [a, b, x] and its neighbour U = [b, a, y] across edge
// e = a->b into T = [x, a, y] and U = [y, b, x].
func (t *Triangulation) flip(e int) {
	ti, i := e/3, e%3
	u := t.tris[ti].twin[i]
	if u == noTwin {
		invariant.Fatalf("r2delaunay: flipping edge %d without twin", e)
	}
	ui, j := u/3, u%3
	tr, ur := t.tris[ti], t.tris[ui]
	if ur.twin[j] != e {
		invariant.Fatalf("r2delaunay: edge %d and twin %d are not linked", e, u)
	}

	a, b, x := tr.v[i], tr.v[(i+1)%3], tr.v[(i+2)%3]
	y := ur.v[(j+2)%3]
	tBX, tXA := tr.twin[(i+1)%3], tr.twin[(i+2)%3]
	tAY, tYB := ur.twin[(j+1)%3], ur.twin[(j+2)%3]

	t.tris[ti] = t.newTriangle([3]int{x, a, y}, [3]int{tXA, tAY, 3*ui + 2})
	t.tris[ui] = t.newTriangle([3]int{y, b, x}, [3]int{tYB, tBX, 3*ti + 2})
	t.relink(tXA, 3*ti)
	t.relink(tAY, 3*ti+1)
	t.relink(tYB, 3*ui)
	t.relink(tBX, 3*ui+1)
}

// RemoveInitialTriangle drops every triangle touching a bootstrap vertex and
// then the bootstrap vertices themselves. Vertex and triangle indices are
// compacted.
func (t *Triangulation) RemoveInitialTriangle() {
	if len(t.initial) == 0 {
		return
	}

	triMap := make([]int, len(t.tris))
	kept := t.tris[:0:0]
	for i, tr := range t.tris {
		if t.initial[tr.v[0]] || t.initial[tr.v[1]] || t.initial[tr.v[2]] {
			triMap[i] = -1
			continue
		}
		triMap[i] = len(kept)
		kept = append(kept, tr)
	}

	vertMap := make([]int, len(t.Vertices))
	vertices := make([]r2.Point, 0, len(t.Vertices)-len(t.initial))
	for i, p := range t.Vertices {
		if t.initial[i] {
			vertMap[i] = -1
			continue
		}
		vertMap[i] = len(vertices)
		vertices = append(vertices, p)
	}

	for k := range kept {
		for j := range 3 {
			kept[k].v[j] = vertMap[kept[k].v[j]]
			if tw := kept[k].twin[j]; tw != noTwin {
				if nt := triMap[tw/3]; nt >= 0 {
					kept[k].twin[j] = 3*nt + tw%3
				} else {
					kept[k].twin[j] = noTwin
				}
			}
		}
	}

	t.tris = kept
	t.Vertices = vertices
	t.initial = nil
	t.invalidate()
}

// IsValid reports whether every interior edge is locally Delaunay.
func (t *Triangulation) IsValid() bool {
	for e := range 3 * len(t.tris) {
		if t.illegal(e) {
			return false
		}
	}
	return true
}

// Validate checks vertex indices, clockwise orientation and twin links of
// every triangle. It does not check the Delaunay property; see IsValid.
func (t *Triangulation) Validate() error {
	for i, tr := range t.tris {
		for j := range 3 {
			if v := tr.v[j]; v < 0 || v >= len(t.Vertices) {
				return errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: triangle %d vertex %d out of range", i, v)
			}
		}
		a, b, c := t.TriangleVertices(i)
		if numeric.Det2D(a, b, c) > 0 {
			return errors.Wrapf(numeric.ErrInvalidGeometry,
				"r2delaunay: triangle %d is counter-clockwise", i)
		}
		for j := range 3 {
			u := tr.twin[j]
			if u == noTwin {
				continue
			}
			if u < 0 || u >= 3*len(t.tris) {
				return errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: edge %d twin %d out of range", 3*i+j, u)
			}
			ur := t.tris[u/3]
			if ur.twin[u%3] != 3*i+j {
				return errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: twin of twin of edge %d is %d", 3*i+j, ur.twin[u%3])
			}
			if ur.v[u%3] != tr.v[(j+1)%3] || ur.v[(u%3+1)%3] != tr.v[j] {
				return errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: edge %d and twin %d do not mirror", 3*i+j, u)
			}
		}
	}
	return nil
}
