// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"github.com/2dChan/r2geom/dcel"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

func (c Cell) SiteIndex() int {
	return c.idx
}

func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order. A cell on the hull has one more neighbor
// than it lists.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// IsBounded reports whether the site is surrounded by triangles, i.e. does
// not lie on the convex hull.
func (c Cell) IsBounded() bool {
	return c.d.bounded[c.idx]
}

// Polygon returns the cell as a counter-clockwise polygon. Unbounded cells
// return ErrPrecondition.
func (c Cell) Polygon() (polygon.Polygon, error) {
	if !c.IsBounded() {
		return polygon.Polygon{}, errors.Wrapf(numeric.ErrPrecondition,
			"r2voronoi: cell %d is unbounded", c.idx)
	}
	pts := make([]r2.Point, 0, c.NumVertices())
	for _, t := range c.VertexIndices() {
		pts = append(pts, c.d.Vertices[t])
	}
	return polygon.New(pts)
}

// Face returns the DCEL face of a bounded cell.
func (c Cell) Face() (dcel.FaceID, error) {
	if !c.IsBounded() {
		return dcel.NoFace, errors.Wrapf(numeric.ErrPrecondition,
			"r2voronoi: cell %d is unbounded", c.idx)
	}
	return c.d.dcel.GetContainingFace(c.Site()), nil
}
