// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"math"

	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

type indexedFace struct {
	id   FaceID
	rect rtreego.Rect
}

func (f *indexedFace) Bounds() rtreego.Rect {
	return f.rect
}

// Cycle returns the half-edges reached by following Next from e, e first.
func (d *DCEL) Cycle(e EdgeID) ([]EdgeID, error) {
	if e < 0 || int(e) >= len(d.edges) {
		return nil, errors.Errorf("dcel: edge %d out of range", e)
	}
	out := []EdgeID{e}
	for cur := d.edges[e].Next; cur != e; cur = d.edges[cur].Next {
		if cur < 0 || int(cur) >= len(d.edges) || len(out) > len(d.edges) {
			return nil, errors.Wrapf(ErrCorrupt, "dcel: cycle from edge %d does not close", e)
		}
		out = append(out, cur)
	}
	return out, nil
}

func (d *DCEL) cyclePoints(cycle []EdgeID) []r2.Point {
	pts := make([]r2.Point, len(cycle))
	for i, e := range cycle {
		pts[i] = d.vertices[d.edges[e].From].Point
	}
	return pts
}

// ensureFaces rebuilds the face arena from the Next cycles if the structure
// changed since the last rebuild.
func (d *DCEL) ensureFaces() {
	if !d.dirty {
		return
	}
	d.dirty = false

	d.faces = []Face{{Outer: NoEdge}}
	d.faceBoxes = []r2.Rect{r2.EmptyRect()}
	d.faceArea = []float64{math.Inf(1)}
	for i := range d.edges {
		d.edges[i].Face = NoFace
	}

	type component struct {
		start EdgeID
		cycle []EdgeID
	}
	var components []component
	d.facePolys = []polygon.Polygon{{}}
	for i := range d.edges {
		if d.edges[i].Face != NoFace {
			continue
		}
		cycle, err := d.Cycle(EdgeID(i))
		if err != nil {
			invariant.Wrap(err, "dcel: rebuild faces")
		}
		// Mark the cycle as visited; components are reassigned below.
		for _, e := range cycle {
			d.edges[e].Face = OuterFace
		}

		pts := d.cyclePoints(cycle)
		p, err := polygon.New(pts)
		if err != nil || p.SignedArea() <= 0 {
			components = append(components, component{start: EdgeID(i), cycle: cycle})
			continue
		}
		f := FaceID(len(d.faces))
		for _, e := range cycle {
			d.edges[e].Face = f
		}
		d.faces = append(d.faces, Face{Outer: EdgeID(i)})
		d.faceBoxes = append(d.faceBoxes, p.BoundingBox())
		d.faceArea = append(d.faceArea, p.Area())
		d.facePolys = append(d.facePolys, p)
	}

	objs := make([]rtreego.Spatial, 0, len(d.faces)-1)
	for f := 1; f < len(d.faces); f++ {
		objs = append(objs, &indexedFace{id: FaceID(f), rect: toRtreeRect(d.faceBoxes[f])})
	}
	d.faceIndex = rtreego.NewTree(2, 8, 16, objs...)

	for _, c := range components {
		f := OuterFace
		for _, e := range c.cycle {
			if g := d.smallestFace(d.vertices[d.edges[e].From].Point, true); g != OuterFace {
				f = g
				break
			}
		}
		for _, e := range c.cycle {
			d.edges[e].Face = f
		}
		d.faces[f].Inner = append(d.faces[f].Inner, c.start)
	}
}

// smallestFace returns the inner face of least area whose outer boundary
// contains p, or the outer face. With strict set, boundary points do not
// count.
func (d *DCEL) smallestFace(p r2.Point, strict bool) FaceID {
	best := OuterFace
	bestArea := math.Inf(1)
	for _, obj := range d.faceIndex.SearchIntersect(toRtreeRect(r2.RectFromPoints(p))) {
		f := obj.(*indexedFace).id
		loc := d.facePolys[f].Locate(p)
		if loc == polygon.Outside || (strict && loc == polygon.OnBoundary) {
			continue
		}
		if d.faceArea[f] < bestArea || (d.faceArea[f] == bestArea && f < best) {
			best, bestArea = f, d.faceArea[f]
		}
	}
	return best
}

// GetContainingFace returns the face containing p. Points on an edge are
// assigned to the smaller of the faces it bounds; points outside every
// bounded face belong to the outer face.
func (d *DCEL) GetContainingFace(p r2.Point) FaceID {
	d.ensureFaces()
	return d.smallestFace(p, false)
}

// FacePolygon returns the outer boundary of an inner face, counter-clockwise.
func (d *DCEL) FacePolygon(f FaceID) (polygon.Polygon, error) {
	d.ensureFaces()
	if f <= OuterFace || int(f) >= len(d.faces) {
		return polygon.Polygon{}, errors.Wrapf(numeric.ErrPrecondition,
			"dcel: face %d has no outer boundary", f)
	}
	return d.facePolys[f], nil
}

// FaceShape returns an inner face together with the islands inside it as
// holes.
func (d *DCEL) FaceShape(f FaceID) (polygon.WithHoles, error) {
	outer, err := d.FacePolygon(f)
	if err != nil {
		return polygon.WithHoles{}, err
	}
	w := polygon.WithHoles{Outer: outer}
	for _, e := range d.faces[f].Inner {
		cycle, err := d.Cycle(e)
		if err != nil {
			return polygon.WithHoles{}, err
		}
		h, err := polygon.New(d.cyclePoints(cycle))
		if err != nil || numeric.EqualsEps(h.Area(), 0) {
			// Dangling trees enclose no area.
			continue
		}
		w.Holes = append(w.Holes, h.Clockwise())
	}
	return w, nil
}

// FaceBoundingBox returns the box of the outer boundary of f.
func (d *DCEL) FaceBoundingBox(f FaceID) r2.Rect {
	d.ensureFaces()
	return d.faceBoxes[f]
}

// FaceArea returns the area enclosed by the outer boundary of f, +Inf for
// the outer face.
func (d *DCEL) FaceArea(f FaceID) float64 {
	d.ensureFaces()
	return d.faceArea[f]
}

func toRtreeRect(r r2.Rect) rtreego.Rect {
	lo := r.Lo()
	size := r.Size()
	w := math.Max(size.X, numeric.DefaultEps)
	h := math.Max(size.Y, numeric.DefaultEps)
	rect, err := rtreego.NewRect(rtreego.Point{lo.X - numeric.DefaultEps, lo.Y - numeric.DefaultEps},
		[]float64{w + 2*numeric.DefaultEps, h + 2*numeric.DefaultEps})
	if err != nil {
		panic(err)
	}
	return rect
}
