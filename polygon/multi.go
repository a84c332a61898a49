// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package polygon

import (
	"github.com/golang/geo/r2"
)

// Multi is a set of pairwise non-overlapping polygons.
type Multi struct {
	members []WithHoles
}

// NewMulti returns a set holding members. They are assumed not to overlap.
func NewMulti(members ...WithHoles) *Multi {
	m := &Multi{}
	m.members = append(m.members, members...)
	return m
}

func (m *Multi) Members() []WithHoles {
	return m.members
}

func (m *Multi) Len() int {
	return len(m.members)
}

func (m *Multi) Add(p WithHoles) {
	m.members = append(m.members, p)
}

// CutOut removes the area of s from every member.
func (m *Multi) CutOut(s Shape) {
	var members []WithHoles
	box := s.BoundingBox()
	for _, w := range m.members {
		if !box.Intersects(w.BoundingBox()) {
			members = append(members, w)
			continue
		}
		members = append(members, Difference(w, s)...)
	}
	m.members = members
}

// AddDisjoint adds p so that its overlap with existing members is counted
// once.
func (m *Multi) AddDisjoint(p WithHoles) {
	m.CutOut(p)
	m.Add(p)
}

func (m *Multi) Area() float64 {
	return TotalArea(m.members)
}

func (m *Multi) Locate(p r2.Point) Location {
	loc := Outside
	for _, w := range m.members {
		switch w.Locate(p) {
		case Inside:
			return Inside
		case OnBoundary:
			loc = OnBoundary
		}
	}
	return loc
}

func (m *Multi) Contains(p r2.Point) bool {
	return m.Locate(p) != Outside
}

func (m *Multi) Vertices() []r2.Point {
	var out []r2.Point
	for _, w := range m.members {
		out = append(out, w.Vertices()...)
	}
	return out
}

func (m *Multi) BoundingBox() r2.Rect {
	box := r2.EmptyRect()
	for _, w := range m.members {
		box = box.Union(w.BoundingBox())
	}
	return box
}

func (m *Multi) Rings() []Polygon {
	var out []Polygon
	for _, w := range m.members {
		out = append(out, w.Rings()...)
	}
	return out
}
