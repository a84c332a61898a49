// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

// IncidentTriangles returns the triangles around vertex vIdx sorted
// counter-clockwise. For a vertex on the hull the order starts at the
// triangle with no clockwise neighbour. The slice is shared; do not modify.
func (t *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx >= len(t.Vertices) {
		panic("IncidentTriangles: vIdx out of range")
	}
	t.ensureIncident()
	start := t.incidentOffsets[vIdx]
	end := t.incidentOffsets[vIdx+1]
	return t.incidentIndices[start:end]
}

func (t *Triangulation) ensureIncident() {
	if t.incidentOffsets != nil {
		return
	}
	numVertices := len(t.Vertices)
	t.incidentOffsets = make([]int, numVertices+1)
	t.incidentIndices = make([]int, 3*len(t.tris))

	for _, tr := range t.tris {
		for _, v := range tr.v {
			t.incidentOffsets[v+1]++
		}
	}
	for i := range numVertices {
		t.incidentOffsets[i+1] += t.incidentOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, t.incidentOffsets[:numVertices])
	for i, tr := range t.tris {
		for _, v := range tr.v {
			t.incidentIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	tris := t.Triangles()
	for i := range numVertices {
		incident := t.incidentIndices[t.incidentOffsets[i]:t.incidentOffsets[i+1]]
		sortIncidentTriangleIndicesCCW(i, incident, tris)
	}
}

// sortIncidentTriangleIndicesCCW chains the clockwise triangles around vIdx
// so that each one shares its clockwise side with the previous one.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	if n == 0 {
		return
	}

	// A hull vertex has exactly one triangle whose clockwise side is not the
	// counter-clockwise side of another one. It must come first.
	for i := range n {
		prv := PrevVertex(tris[incidentTris[i]], vIdx)
		first := true
		for j := range n {
			if j != i && NextVertex(tris[incidentTris[j]], vIdx) == prv {
				first = false
				break
			}
		}
		if first {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		nxt := NextVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			prv := PrevVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
