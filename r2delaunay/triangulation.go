// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay implements planar triangulations and incremental
// Delaunay triangulation by edge flipping.
//
// Triangles are stored clockwise. Edge i of a triangle runs from its vertex i
// to vertex i+1 and is identified by 3*triangle+i.
package r2delaunay

import (
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultEps = numeric.DefaultEps
	noTwin     = -1
)

type Options struct {
	Eps    float64
	Logger logrus.FieldLogger
}

type Option func(*Options) error

func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return errors.Errorf("r2delaunay: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithLogger sets the logger skipped insertions are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("r2delaunay: nil logger")
		}
		o.Logger = l
		return nil
	}
}

func buildOptions(setters []Option) (Options, error) {
	opts := Options{
		Eps:    defaultEps,
		Logger: logrus.StandardLogger(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

type triangle struct {
	v    [3]int
	twin [3]int
	// center is the cached circumcenter, valid when hasCenter is set.
	center    r2.Point
	hasCenter bool
}

// Triangulation is a set of clockwise triangles over Vertices with twin links
// between triangles sharing an edge.
type Triangulation struct {
	opts Options

	Vertices []r2.Point
	tris     []triangle
	// initial marks the bootstrap vertices of an incremental construction.
	initial map[int]bool

	incidentIndices []int
	incidentOffsets []int
}

// New returns a triangulation holding the single triangle initial. Its
// vertices are marked as bootstrap vertices and are stripped again by
// RemoveInitialTriangle.
func New(initial [3]r2.Point, setters ...Option) (*Triangulation, error) {
	opts, err := buildOptions(setters)
	if err != nil {
		return nil, err
	}
	if numeric.Orient2D(initial[0], initial[1], initial[2]) == 0 {
		return nil, errors.Wrapf(numeric.ErrInvalidGeometry,
			"r2delaunay: degenerate initial triangle %v", initial)
	}
	t := &Triangulation{
		opts:     opts,
		Vertices: []r2.Point{initial[0], initial[1], initial[2]},
		initial:  map[int]bool{0: true, 1: true, 2: true},
	}
	t.tris = append(t.tris, t.newTriangle([3]int{0, 1, 2}, [3]int{noTwin, noTwin, noTwin}))
	t.normalize(0)
	return t, nil
}

// FromTriangles builds a triangulation from index triples into vertices.
// Triangles are reoriented clockwise and twins are linked through shared
// edges.
func FromTriangles(vertices []r2.Point, triangles [][3]int, setters ...Option) (*Triangulation, error) {
	opts, err := buildOptions(setters)
	if err != nil {
		return nil, err
	}
	t := &Triangulation{
		opts:     opts,
		Vertices: append([]r2.Point(nil), vertices...),
		tris:     make([]triangle, 0, len(triangles)),
	}
	for i, tri := range triangles {
		for _, v := range tri {
			if v < 0 || v >= len(vertices) {
				return nil, errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: triangle %d vertex %d out of range", i, v)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, errors.Wrapf(numeric.ErrInvalidGeometry,
				"r2delaunay: triangle %d %v is not a closed 3-cycle", i, tri)
		}
		t.tris = append(t.tris, t.newTriangle(tri, [3]int{noTwin, noTwin, noTwin}))
		t.normalize(i)
	}
	if err := t.linkTwins(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Triangulation) newTriangle(v [3]int, twin [3]int) triangle {
	tr := triangle{v: v, twin: twin}
	c, err := numeric.Circumcenter(t.Vertices[v[0]], t.Vertices[v[1]], t.Vertices[v[2]])
	if err == nil {
		tr.center, tr.hasCenter = c, true
	}
	return tr
}

// normalize makes triangle i clockwise. Collinear triangles are left as
// they are.
func (t *Triangulation) normalize(i int) {
	tr := &t.tris[i]
	a, b, c := t.Vertices[tr.v[0]], t.Vertices[tr.v[1]], t.Vertices[tr.v[2]]
	if numeric.Det2D(a, b, c) > 0 {
		tr.v[1], tr.v[2] = tr.v[2], tr.v[1]
	}
}

// linkTwins pairs every directed edge with its reverse. An edge used twice
// in the same direction means the triangles overlap.
func (t *Triangulation) linkTwins() error {
	type key struct{ from, to int }
	edges := make(map[key]int, 3*len(t.tris))
	for i := range t.tris {
		for j := range 3 {
			k := key{t.tris[i].v[j], t.tris[i].v[(j+1)%3]}
			if prev, ok := edges[k]; ok {
				return errors.Wrapf(numeric.ErrInvalidGeometry,
					"r2delaunay: edge %d->%d used by triangles %d and %d", k.from, k.to, prev/3, i)
			}
			edges[k] = 3*i + j
		}
	}
	for k, e := range edges {
		if tw, ok := edges[key{k.to, k.from}]; ok {
			t.tris[e/3].twin[e%3] = tw
		} else {
			t.tris[e/3].twin[e%3] = noTwin
		}
	}
	t.invalidate()
	return nil
}

func (t *Triangulation) invalidate() {
	t.incidentIndices = nil
	t.incidentOffsets = nil
}

func (t *Triangulation) NumTriangles() int {
	return len(t.tris)
}

func (t *Triangulation) NumVertices() int {
	return len(t.Vertices)
}

func (t *Triangulation) Triangle(i int) Triangle {
	if i < 0 || i >= len(t.tris) {
		panic("Triangle: index out of range")
	}
	return Triangle{idx: i, t: t}
}

func (t *Triangulation) Triangles() [][3]int {
	out := make([][3]int, len(t.tris))
	for i, tr := range t.tris {
		out[i] = tr.v
	}
	return out
}

// TriangleVertices returns the three corners of triangle i in clockwise
// order.
func (t *Triangulation) TriangleVertices(i int) (r2.Point, r2.Point, r2.Point) {
	if i < 0 || i >= len(t.tris) {
		panic("TriangleVertices: index out of range")
	}
	v := t.tris[i].v
	return t.Vertices[v[0]], t.Vertices[v[1]], t.Vertices[v[2]]
}

func (t *Triangulation) Edge(id int) Edge {
	if id < 0 || id >= 3*len(t.tris) {
		panic("Edge: id out of range")
	}
	return Edge{id: id, t: t}
}

func (t *Triangulation) IsInitialVertex(v int) bool {
	return t.initial[v]
}

// Mesh returns a flat vertex array and an index array with three indices
// per triangle.
func (t *Triangulation) Mesh() ([]r2.Point, []int) {
	vertices := append([]r2.Point(nil), t.Vertices...)
	indices := make([]int, 0, 3*len(t.tris))
	for _, tr := range t.tris {
		indices = append(indices, tr.v[0], tr.v[1], tr.v[2])
	}
	return vertices, indices
}

func (t *Triangulation) Area() float64 {
	var a float64
	for i := range t.tris {
		p, q, r := t.TriangleVertices(i)
		a -= numeric.Det2D(p, q, r) / 2
	}
	return a
}
