// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"math"
	"sort"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// AddVertex returns the vertex at p, creating an isolated one when no vertex
// lies within eps.
func (d *DCEL) AddVertex(p r2.Point) VertexID {
	if v := d.FindVertex(p); v != NoVertex {
		return v
	}
	d.vertices = append(d.vertices, Vertex{Point: p, Leaving: NoEdge})
	return VertexID(len(d.vertices) - 1)
}

// FindVertex returns the vertex within eps of p, or NoVertex.
func (d *DCEL) FindVertex(p r2.Point) VertexID {
	for i, v := range d.vertices {
		if numeric.PointsEqualWithin(v.Point, p, d.opts.Eps) {
			return VertexID(i)
		}
	}
	return NoVertex
}

// FindEdge returns the half-edge from v1 to v2, or NoEdge.
func (d *DCEL) FindEdge(v1, v2 VertexID) EdgeID {
	for _, e := range d.OutgoingEdges(v1) {
		if d.edges[e].To == v2 {
			return e
		}
	}
	return NoEdge
}

// AddEdge connects v1 and v2 with a pair of twin half-edges and returns the
// one running from v1 to v2. The new edges are spliced into the rotation
// around both endpoints by angle. If the edge already exists it is returned
// unchanged.
func (d *DCEL) AddEdge(v1, v2 VertexID) (EdgeID, error) {
	if v1 < 0 || int(v1) >= len(d.vertices) || v2 < 0 || int(v2) >= len(d.vertices) {
		return NoEdge, errors.Errorf("dcel: vertex out of range: %d, %d", v1, v2)
	}
	if v1 == v2 {
		return NoEdge, errors.Wrapf(numeric.ErrPrecondition, "dcel: self-loop at vertex %d", v1)
	}
	if e := d.FindEdge(v1, v2); e != NoEdge {
		return e, nil
	}

	p1, p2 := d.vertices[v1].Point, d.vertices[v2].Point
	cw1, ccw1 := d.rotationNeighbours(v1, p2.Sub(p1))
	cw2, ccw2 := d.rotationNeighbours(v2, p1.Sub(p2))

	e1 := EdgeID(len(d.edges))
	e2 := e1 + 1
	d.edges = append(d.edges,
		HalfEdge{From: v1, To: v2, Twin: e2, Next: e2, Prev: e2, Face: NoFace},
		HalfEdge{From: v2, To: v1, Twin: e1, Next: e1, Prev: e1, Face: NoFace},
	)
	d.splice(v1, e1, e2, cw1, ccw1)
	d.splice(v2, e2, e1, cw2, ccw2)
	d.dirty = true
	return e1, nil
}

// rotationNeighbours returns the outgoing edges of v immediately clockwise
// and counter-clockwise from direction dir.
func (d *DCEL) rotationNeighbours(v VertexID, dir r2.Point) (cw, ccw EdgeID) {
	out := d.OutgoingEdges(v)
	if len(out) == 0 {
		return NoEdge, NoEdge
	}
	base := math.Atan2(dir.Y, dir.X)
	minCW, maxCW := math.Inf(1), math.Inf(-1)
	for _, e := range out {
		q := d.vertices[d.edges[e].To].Point.Sub(d.vertices[v].Point)
		a := numeric.ModFloat(base-math.Atan2(q.Y, q.X), 2*math.Pi)
		if a < minCW {
			minCW, cw = a, e
		}
		if a > maxCW {
			maxCW, ccw = a, e
		}
	}
	return cw, ccw
}

// splice links the new half-edge out (leaving v) and its twin in (entering
// v) between the neighbours found by rotationNeighbours.
func (d *DCEL) splice(v VertexID, out, in, cw, ccw EdgeID) {
	if cw == NoEdge {
		d.edges[in].Next = out
		d.edges[out].Prev = in
		d.vertices[v].Leaving = out
		return
	}
	d.edges[in].Next = cw
	d.edges[cw].Prev = in

	pred := d.edges[ccw].Twin
	d.edges[pred].Next = out
	d.edges[out].Prev = pred
}

// AddVertexInEdge splits the undirected edge of e at p and returns the new
// vertex. If p coincides with an endpoint that endpoint is returned and
// nothing changes.
func (d *DCEL) AddVertexInEdge(e EdgeID, p r2.Point) (VertexID, error) {
	if e < 0 || int(e) >= len(d.edges) {
		return NoVertex, errors.Errorf("dcel: edge %d out of range", e)
	}
	t := d.edges[e].Twin
	if t < 0 || int(t) >= len(d.edges) || d.edges[t].Twin != e ||
		d.edges[t].From != d.edges[e].To || d.edges[t].To != d.edges[e].From {
		return NoVertex, errors.Wrapf(ErrCorrupt, "dcel: edge %d has inconsistent twin %d", e, t)
	}

	// Every undirected edge keeps exactly one half-edge at an even index.
	if e%2 == 1 {
		e, t = t, e
	}

	a, b := d.edges[e].From, d.edges[e].To
	seg := line.Segment{A: d.vertices[a].Point, B: d.vertices[b].Point}
	if seg.DistanceToPoint(p) >= d.opts.Eps {
		return NoVertex, errors.Wrapf(ErrNotOnEdge, "dcel: %v is not on edge %d (%v)", p, e, seg)
	}
	if numeric.PointsEqualWithin(seg.A, p, d.opts.Eps) {
		return a, nil
	}
	if numeric.PointsEqualWithin(seg.B, p, d.opts.Eps) {
		return b, nil
	}
	if other := d.FindVertex(p); other != NoVertex && d.vertices[other].Leaving != NoEdge {
		return NoVertex, errors.Wrapf(ErrCorrupt,
			"dcel: vertex %d at %v already lies on edge %d", other, p, e)
	}

	v := d.AddVertex(p)
	ne, nt := d.edges[e].Next, d.edges[t].Next

	e2 := EdgeID(len(d.edges))
	t2 := e2 + 1
	d.edges = append(d.edges,
		HalfEdge{From: v, To: b, Twin: t, Next: ne, Prev: e, Face: d.edges[e].Face},
		HalfEdge{From: v, To: a, Twin: e, Next: nt, Prev: t, Face: d.edges[t].Face},
	)
	d.edges[e].To = v
	d.edges[e].Next = e2
	d.edges[d.edges[e2].Next].Prev = e2

	d.edges[t].To = v
	d.edges[t].Next = t2
	d.edges[d.edges[t2].Next].Prev = t2

	d.edges[e].Twin = t2
	d.edges[t].Twin = e2

	d.vertices[v].Leaving = e2
	d.dirty = true
	return v, nil
}

// InsertSegment adds s to the subdivision, splitting existing edges where s
// crosses or touches them and reusing vertices s passes through.
func (d *DCEL) InsertSegment(s line.Segment) error {
	if s.IsDegenerate() {
		return errors.Wrapf(numeric.ErrInvalidGeometry, "dcel: degenerate segment %v", s)
	}

	type stop struct {
		v VertexID
		t float64
	}
	var stops []stop

	// Endpoints lying inside existing edges split them first.
	for _, p := range []r2.Point{s.A, s.B} {
		v, err := d.vertexAt(p)
		if err != nil {
			return err
		}
		stops = append(stops, stop{v: v, t: s.Param(p)})
	}

	for e := 0; e < len(d.edges); e += 2 {
		other := line.Segment{A: d.vertices[d.edges[e].From].Point, B: d.vertices[d.edges[e].To].Point}
		p, ok := s.Intersect(other)
		if !ok {
			continue
		}
		v, err := d.AddVertexInEdge(EdgeID(e), p)
		if err != nil {
			return err
		}
		stops = append(stops, stop{v: v, t: s.Param(p)})
	}

	// Vertices on s, including the ends of collinear edges.
	for i, v := range d.vertices {
		if s.DistanceToPoint(v.Point) < d.opts.Eps {
			stops = append(stops, stop{v: VertexID(i), t: s.Param(v.Point)})
		}
	}

	sort.SliceStable(stops, func(i, j int) bool { return stops[i].t < stops[j].t })
	prev := NoVertex
	for _, st := range stops {
		if st.v == prev {
			continue
		}
		if prev != NoVertex {
			if _, err := d.AddEdge(prev, st.v); err != nil {
				return err
			}
		}
		prev = st.v
	}
	return nil
}

// vertexAt returns the vertex at p, splitting the edge p lies on if any.
func (d *DCEL) vertexAt(p r2.Point) (VertexID, error) {
	if v := d.FindVertex(p); v != NoVertex {
		return v, nil
	}
	for e := 0; e < len(d.edges); e += 2 {
		seg := line.Segment{A: d.vertices[d.edges[e].From].Point, B: d.vertices[d.edges[e].To].Point}
		if seg.DistanceToPoint(p) < d.opts.Eps {
			return d.AddVertexInEdge(EdgeID(e), p)
		}
	}
	return d.AddVertex(p), nil
}
