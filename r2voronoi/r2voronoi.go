// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2voronoi implements planar Voronoi diagrams as the dual of a
// Delaunay triangulation.
package r2voronoi

import (
	"github.com/2dChan/r2geom/dcel"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/r2delaunay"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultEps = numeric.DefaultEps
)

type DiagramOptions struct {
	Eps    float64
	Logger logrus.FieldLogger
}

type DiagramOption func(*DiagramOptions) error

func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 {
			return errors.Errorf("r2voronoi: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) DiagramOption {
	return func(o *DiagramOptions) error {
		if l == nil {
			return errors.New("r2voronoi: nil logger")
		}
		o.Logger = l
		return nil
	}
}

// Diagram is the Voronoi diagram of Sites. Vertices holds one circumcenter
// per Delaunay triangle; the bounded part of the diagram is also available
// as a DCEL.
type Diagram struct {
	opts DiagramOptions

	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sorted CCW per cell.
	CellVertices []int
	// NOTE: Sorted CCW per cell.
	CellNeighbors []int
	CellOffsets   []int

	bounded []bool
	dcel    *dcel.DCEL
	handles []dcel.VertexID
}

// NewDiagram triangulates sites and builds their Voronoi diagram. Sites the
// triangulation skips (duplicates, non-finite points) get no cell.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts, err := buildOptions(setters)
	if err != nil {
		return nil, err
	}
	dt, err := r2delaunay.NewTriangulation(sites,
		r2delaunay.WithEps(opts.Eps), r2delaunay.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	return build(dt, opts)
}

// FromTriangulation builds the Voronoi diagram dual to dt, which must be
// Delaunay.
func FromTriangulation(dt *r2delaunay.Triangulation, setters ...DiagramOption) (*Diagram, error) {
	opts, err := buildOptions(setters)
	if err != nil {
		return nil, err
	}
	return build(dt, opts)
}

func buildOptions(setters []DiagramOption) (DiagramOptions, error) {
	opts := DiagramOptions{
		Eps:    defaultEps,
		Logger: logrus.StandardLogger(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return DiagramOptions{}, err
		}
	}
	return opts, nil
}

func build(dt *r2delaunay.Triangulation, opts DiagramOptions) (*Diagram, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	if !dt.IsValid() {
		return nil, errors.Wrap(numeric.ErrInvalidGeometry, "r2voronoi: triangulation is not Delaunay")
	}

	numTriangles := dt.NumTriangles()
	numVertices := dt.NumVertices()
	vd := &Diagram{
		opts:          opts,
		Sites:         append([]r2.Point(nil), dt.Vertices...),
		Vertices:      make([]r2.Point, numTriangles),
		CellOffsets:   make([]int, numVertices+1),
		CellVertices:  make([]int, 0, 3*numTriangles),
		CellNeighbors: make([]int, 0, 3*numTriangles),
		bounded:       make([]bool, numVertices),
		handles:       make([]dcel.VertexID, numTriangles),
	}

	tris := dt.Triangles()
	for vIdx := range numVertices {
		it := dt.IncidentTriangles(vIdx)
		for _, tIdx := range it {
			vd.CellVertices = append(vd.CellVertices, tIdx)
			vd.CellNeighbors = append(vd.CellNeighbors, r2delaunay.NextVertex(tris[tIdx], vIdx))
		}
		vd.CellOffsets[vIdx+1] = len(vd.CellVertices)
		// The fan around an inner site closes on itself.
		if n := len(it); n >= 3 {
			vd.bounded[vIdx] = r2delaunay.PrevVertex(tris[it[0]], vIdx) == r2delaunay.NextVertex(tris[it[n-1]], vIdx)
		}
	}

	d, err := dcel.NewEmpty(dcel.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}
	for i := range numTriangles {
		vd.handles[i] = dcel.NoVertex
		tri := dt.Triangle(i)
		if tri.IsInitial() {
			continue
		}
		c, err := tri.Circumcenter()
		if err != nil {
			opts.Logger.WithField("triangle", i).Warn("r2voronoi: skipping degenerate triangle")
			continue
		}
		vd.Vertices[i] = c
		vd.handles[i] = d.AddVertex(c)
	}

	parent := make([]int, d.NumVertices())
	for i := range parent {
		parent[i] = i
	}
	components := len(parent)

	visited := make(map[int]bool, 3*numTriangles)
	for e := range 3 * numTriangles {
		if visited[e] {
			continue
		}
		tw, ok := dt.Edge(e).Twin()
		if !ok {
			continue
		}
		visited[e], visited[tw.ID()] = true, true

		v1, v2 := vd.handles[e/3], vd.handles[tw.Triangle().Index()]
		if v1 == dcel.NoVertex || v2 == dcel.NoVertex || v1 == v2 {
			// Cocircular neighbours share their circumcenter.
			continue
		}
		if _, err := d.AddEdge(v1, v2); err != nil {
			return nil, errors.WithMessage(err, "r2voronoi: add edge")
		}
		if ra, rb := find(parent, int(v1)), find(parent, int(v2)); ra != rb {
			parent[ra] = rb
			components--
		}
	}

	if err := checkPlanar(d, components); err != nil {
		return nil, err
	}
	vd.dcel = d
	return vd, nil
}

// checkPlanar validates d and checks Euler's formula for a plane graph with
// the given number of connected components: V - E + F = 1 + C, with the
// outer face counted once.
func checkPlanar(d *dcel.DCEL, components int) error {
	if err := d.Validate(); err != nil {
		return errors.WithMessage(err, "r2voronoi: diagram")
	}
	if euler := d.NumVertices() - d.NumEdges() + d.NumFaces(); euler != 1+components {
		return errors.Wrapf(numeric.ErrInvalidGeometry,
			"r2voronoi: diagram is not planar: V - E + F = %d with %d components", euler, components)
	}
	return nil
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, errors.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

// DCEL returns the bounded part of the diagram: one vertex per distinct
// circumcenter and one edge per interior Delaunay edge.
func (vd *Diagram) DCEL() *dcel.DCEL {
	return vd.dcel
}

// Relax performs steps rounds of Lloyd relaxation, moving every site with a
// bounded cell to the centroid of its cell and rebuilding the diagram.
func (vd *Diagram) Relax(steps int) error {
	if steps < 0 {
		return errors.Wrapf(numeric.ErrPrecondition, "r2voronoi: negative relax steps %d", steps)
	}
	for range steps {
		sites := make([]r2.Point, vd.NumCells())
		for i := range sites {
			c := Cell{idx: i, d: vd}
			sites[i] = c.Site()
			if p, err := c.Polygon(); err == nil {
				sites[i] = p.Centroid()
			}
		}
		nd, err := NewDiagram(sites, WithEps(vd.opts.Eps), WithLogger(vd.opts.Logger))
		if err != nil {
			return err
		}
		*vd = *nd
	}
	return nil
}
