// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package line

import (
	"math"
	"sort"

	"github.com/2dChan/r2geom/numeric"
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
)

const (
	rtreeMinChildren = 8
	rtreeMaxChildren = 16
)

// Hit is an intersection found through an Index.
type Hit struct {
	Point   r2.Point
	Segment int
	// Dist is the distance from the query origin to Point.
	Dist float64
}

type indexedSegment struct {
	idx  int
	rect rtreego.Rect
}

func (s *indexedSegment) Bounds() rtreego.Rect {
	return s.rect
}

// Index is an R-tree over a fixed set of segments used as a broad phase for
// intersection queries.
type Index struct {
	segments []Segment
	tree     *rtreego.Rtree
}

// NewIndex builds an index over segments. The slice is not copied.
func NewIndex(segments []Segment) *Index {
	objs := make([]rtreego.Spatial, 0, len(segments))
	for i, s := range segments {
		objs = append(objs, &indexedSegment{idx: i, rect: toRtreeRect(s.BoundingBox())})
	}
	return &Index{
		segments: segments,
		tree:     rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, objs...),
	}
}

func (ix *Index) Len() int {
	return len(ix.segments)
}

func (ix *Index) Segment(i int) Segment {
	return ix.segments[i]
}

// Candidates returns the indices of segments whose bounding boxes meet rect.
func (ix *Index) Candidates(rect r2.Rect) []int {
	found := ix.tree.SearchIntersect(toRtreeRect(rect))
	out := make([]int, 0, len(found))
	for _, obj := range found {
		out = append(out, obj.(*indexedSegment).idx)
	}
	sort.Ints(out)
	return out
}

// Intersections returns every indexed segment crossing s, ordered by
// distance from s.A.
func (ix *Index) Intersections(s Segment) []Hit {
	var hits []Hit
	for _, i := range ix.Candidates(s.BoundingBox()) {
		if p, ok := s.Intersect(ix.segments[i]); ok {
			hits = append(hits, Hit{Point: p, Segment: i, Dist: p.Sub(s.A).Norm()})
		}
	}
	sortHits(hits)
	return hits
}

// Near returns the indices of segments passing within eps of p.
func (ix *Index) Near(p r2.Point, eps float64) []int {
	rect := r2.RectFromPoints(p).ExpandedByMargin(eps)
	var out []int
	for _, i := range ix.Candidates(rect) {
		if ix.segments[i].DistanceToPoint(p) < eps {
			out = append(out, i)
		}
	}
	return out
}

func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Dist != hits[j].Dist {
			return hits[i].Dist < hits[j].Dist
		}
		return hits[i].Segment < hits[j].Segment
	})
}

// toRtreeRect converts r to an rtreego rectangle. rtreego rejects zero side
// lengths, so degenerate sides are padded.
func toRtreeRect(r r2.Rect) rtreego.Rect {
	lo := r.Lo()
	size := r.Size()
	w := math.Max(size.X, numeric.DefaultEps)
	h := math.Max(size.Y, numeric.DefaultEps)
	rect, err := rtreego.NewRect(rtreego.Point{lo.X - w*0.5e-3, lo.Y - h*0.5e-3}, []float64{w * 1.001, h * 1.001})
	if err != nil {
		// Unreachable: both lengths are positive.
		panic(err)
	}
	return rect
}
