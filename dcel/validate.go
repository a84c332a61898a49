// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dcel

import (
	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/pkg/errors"
)

// Validate checks the structural invariants: twins pair up, Next and Prev
// are inverse, every Next cycle closes within one face, vertices point at
// edges leaving them and there is exactly one outer face.
func (d *DCEL) Validate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = invariant.Recover(r)
		}
	}()
	d.ensureFaces()

	n := EdgeID(len(d.edges))
	inRange := func(e EdgeID) bool { return e >= 0 && e < n }
	for i, he := range d.edges {
		e := EdgeID(i)
		if !inRange(he.Twin) || !inRange(he.Next) || !inRange(he.Prev) {
			return errors.Wrapf(ErrCorrupt, "dcel: edge %d has a dangling link", e)
		}
		tw := d.edges[he.Twin]
		if tw.Twin != e {
			return errors.Wrapf(ErrCorrupt, "dcel: twin of twin of edge %d is %d", e, tw.Twin)
		}
		if tw.From != he.To || tw.To != he.From {
			return errors.Wrapf(ErrCorrupt, "dcel: edge %d and twin %d do not mirror", e, he.Twin)
		}
		if d.edges[he.Next].Prev != e || d.edges[he.Prev].Next != e {
			return errors.Wrapf(ErrCorrupt, "dcel: next/prev of edge %d are not inverse", e)
		}
		if d.edges[he.Next].From != he.To {
			return errors.Wrapf(ErrCorrupt, "dcel: edge %d ends at %d but next starts at %d",
				e, he.To, d.edges[he.Next].From)
		}
		if d.edges[he.Next].Face != he.Face {
			return errors.Wrapf(ErrCorrupt, "dcel: edge %d and its next lie in different faces", e)
		}
		if he.From == he.To {
			return errors.Wrapf(ErrCorrupt, "dcel: edge %d is a self-loop", e)
		}
	}

	for i, v := range d.vertices {
		if v.Leaving == NoEdge {
			continue
		}
		if !inRange(v.Leaving) || d.edges[v.Leaving].From != VertexID(i) {
			return errors.Wrapf(ErrCorrupt, "dcel: vertex %d leaving edge %d does not start there",
				i, v.Leaving)
		}
	}

	if len(d.faces) == 0 || d.faces[OuterFace].Outer != NoEdge {
		return errors.Wrap(ErrCorrupt, "dcel: missing outer face")
	}
	for f := 1; f < len(d.faces); f++ {
		if d.faces[f].Outer == NoEdge {
			return errors.Wrapf(ErrCorrupt, "dcel: inner face %d has no outer boundary", f)
		}
	}
	return nil
}
