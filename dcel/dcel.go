// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package dcel implements a doubly connected edge list for planar
// subdivisions.
//
// Vertices, half-edges and faces live in arenas owned by the DCEL and refer
// to each other through typed indices. Every half-edge has its face on the
// left, so bounded faces are walked counter-clockwise and the boundaries of
// islands clockwise. Faces are rebuilt lazily after mutations; face 0 is
// always the unbounded outer face.
package dcel

import (
	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

type (
	VertexID int
	EdgeID   int
	FaceID   int
)

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1

	// OuterFace is the handle of the unbounded face.
	OuterFace FaceID = 0
)

var (
	// ErrNotOnEdge is returned when a split point does not lie on the edge.
	ErrNotOnEdge = errors.New("dcel: point not on edge")
	// ErrCorrupt reports broken Next, Prev or Twin links.
	ErrCorrupt = errors.New("dcel: corrupt structure")
)

type Vertex struct {
	Point r2.Point
	// Leaving is one of the half-edges starting at the vertex, NoEdge for
	// isolated vertices.
	Leaving EdgeID
}

type HalfEdge struct {
	From, To         VertexID
	Twin, Next, Prev EdgeID
	Face             FaceID
}

type Face struct {
	// Outer is one half-edge of the outer boundary, NoEdge for the outer
	// face.
	Outer EdgeID
	// Inner holds one half-edge per island boundary inside the face.
	Inner []EdgeID
}

type Options struct {
	Eps float64
}

type Option func(*Options) error

// WithEps sets the distance under which two points are the same vertex.
func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return errors.Errorf("dcel: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

type DCEL struct {
	opts Options

	vertices []Vertex
	edges    []HalfEdge
	faces    []Face

	dirty     bool
	faceBoxes []r2.Rect
	faceArea  []float64
	facePolys []polygon.Polygon
	faceIndex *rtreego.Rtree
}

// NewEmpty returns a DCEL with no vertices and only the outer face.
func NewEmpty(setters ...Option) (*DCEL, error) {
	opts := Options{Eps: numeric.DefaultEps}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	return &DCEL{
		opts:  opts,
		faces: []Face{{Outer: NoEdge}},
		dirty: true,
	}, nil
}

// New returns a DCEL holding the boundary of bounds: four vertices, four
// edges, one inner face and the outer face.
func New(bounds r2.Rect, setters ...Option) (*DCEL, error) {
	if bounds.IsEmpty() || !numeric.IsFinite(bounds.Lo()) || !numeric.IsFinite(bounds.Hi()) {
		return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "dcel: invalid bounds %v", bounds)
	}
	size := bounds.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "dcel: degenerate bounds %v", bounds)
	}

	d, err := NewEmpty(setters...)
	if err != nil {
		return nil, err
	}
	var corners [4]VertexID
	for i, p := range bounds.Vertices() {
		corners[i] = d.AddVertex(p)
	}
	for i := range corners {
		if _, err := d.AddEdge(corners[i], corners[(i+1)%4]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// FromSegments returns the subdivision of bounds induced by segments.
// Crossing segments are split at their intersections.
func FromSegments(segments []line.Segment, bounds r2.Rect, setters ...Option) (*DCEL, error) {
	d, err := New(bounds, setters...)
	if err != nil {
		return nil, err
	}
	for i, s := range segments {
		if err := d.InsertSegment(s); err != nil {
			return nil, errors.Wrapf(err, "dcel: segment %d", i)
		}
	}
	return d, nil
}

// FromLines returns the arrangement of lines clipped to bounds.
func FromLines(lines []line.Line, bounds r2.Rect, setters ...Option) (*DCEL, error) {
	d, err := New(bounds, setters...)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		s, ok := line.ClipToRect(l, bounds)
		if !ok {
			continue
		}
		if err := d.InsertSegment(s); err != nil {
			return nil, errors.Wrapf(err, "dcel: line %d (%v)", i, l)
		}
	}
	return d, nil
}

func (d *DCEL) Eps() float64 {
	return d.opts.Eps
}

func (d *DCEL) NumVertices() int {
	return len(d.vertices)
}

// NumEdges returns the number of undirected edges.
func (d *DCEL) NumEdges() int {
	return len(d.edges) / 2
}

func (d *DCEL) NumHalfEdges() int {
	return len(d.edges)
}

// NumFaces returns the number of faces including the outer face.
func (d *DCEL) NumFaces() int {
	d.ensureFaces()
	return len(d.faces)
}

// Vertices returns the vertex arena. It must not be modified.
func (d *DCEL) Vertices() []Vertex {
	return d.vertices
}

// Edges returns the half-edge arena. It must not be modified.
func (d *DCEL) Edges() []HalfEdge {
	d.ensureFaces()
	return d.edges
}

// Faces returns the face arena, outer face first. It must not be modified.
func (d *DCEL) Faces() []Face {
	d.ensureFaces()
	return d.faces
}

func (d *DCEL) InnerFaces() []FaceID {
	d.ensureFaces()
	out := make([]FaceID, 0, len(d.faces)-1)
	for f := 1; f < len(d.faces); f++ {
		out = append(out, FaceID(f))
	}
	return out
}

func (d *DCEL) OuterFace() FaceID {
	return OuterFace
}

func (d *DCEL) Vertex(v VertexID) Vertex {
	if v < 0 || int(v) >= len(d.vertices) {
		panic("Vertex: id out of range")
	}
	return d.vertices[v]
}

func (d *DCEL) Point(v VertexID) r2.Point {
	return d.Vertex(v).Point
}

func (d *DCEL) Edge(e EdgeID) HalfEdge {
	if e < 0 || int(e) >= len(d.edges) {
		panic("Edge: id out of range")
	}
	d.ensureFaces()
	return d.edges[e]
}

func (d *DCEL) Segment(e EdgeID) line.Segment {
	he := d.Edge(e)
	return line.Segment{A: d.vertices[he.From].Point, B: d.vertices[he.To].Point}
}

func (d *DCEL) Face(f FaceID) Face {
	d.ensureFaces()
	if f < 0 || int(f) >= len(d.faces) {
		panic("Face: id out of range")
	}
	return d.faces[f]
}

// BoundingBox returns the box around every vertex, empty when there are
// none.
func (d *DCEL) BoundingBox() r2.Rect {
	box := r2.EmptyRect()
	for _, v := range d.vertices {
		box = box.AddPoint(v.Point)
	}
	return box
}

// OutgoingEdges returns the half-edges leaving v in clockwise order,
// starting at its Leaving edge.
func (d *DCEL) OutgoingEdges(v VertexID) []EdgeID {
	start := d.Vertex(v).Leaving
	if start == NoEdge {
		return nil
	}
	var out []EdgeID
	e := start
	for range len(d.edges) + 1 {
		out = append(out, e)
		e = d.edges[d.edges[e].Twin].Next
		if e == start {
			return out
		}
	}
	invariant.Wrap(ErrCorrupt, "dcel: rotation around vertex %d does not close", v)
	return nil
}
