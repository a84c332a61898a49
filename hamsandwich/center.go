// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hamsandwich

import (
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const simplexTol = 1e-10

// chebyshevCenter returns the point of p farthest from its boundary, so the
// dual line keeps the greatest minimum separation from every point of the
// sets. Faces the solver rejects fall back to their centroid.
func chebyshevCenter(p polygon.Polygon) r2.Point {
	c, _, err := chebyshev(p)
	if err != nil {
		logrus.WithError(err).WithField("vertices", p.Len()).Debug("hamsandwich: using centroid of face")
		return p.Centroid()
	}
	return c
}

// chebyshev solves
//
//	max r  s.t.  n_i . c + r <= n_i . v_i
//
// over the outward unit normals n_i of the convex polygon p, returning the
// centre and radius of its largest inscribed circle.
//
// The problem is shifted to the centroid so that the slack basis is
// feasible, and the free centre is split into positive and negative parts.
// Variables are [cx+, cy+, cx-, cy-, r, s_0, ..., s_m-1].
func chebyshev(p polygon.Polygon) (r2.Point, float64, error) {
	p = p.CounterClockwise()
	o := p.Centroid()
	edges := p.Edges()
	m := len(edges)
	nv := 5 + m

	a := mat.NewDense(m, nv, nil)
	b := make([]float64, m)
	for i, e := range edges {
		d := e.B.Sub(e.A)
		l := d.Norm()
		if l == 0 {
			return r2.Point{}, 0, errors.Wrapf(numeric.ErrInvalidGeometry, "hamsandwich: zero length edge %d", i)
		}
		n := r2.Point{X: d.Y / l, Y: -d.X / l}
		a.Set(i, 0, n.X)
		a.Set(i, 1, n.Y)
		a.Set(i, 2, -n.X)
		a.Set(i, 3, -n.Y)
		a.Set(i, 4, 1)
		a.Set(i, 5+i, 1)
		b[i] = n.Dot(e.A.Sub(o))
		if b[i] < -numeric.DefaultEps {
			return r2.Point{}, 0, errors.Wrap(numeric.ErrPrecondition, "hamsandwich: face is not convex")
		}
		b[i] = max(b[i], 0)
	}

	c := make([]float64, nv)
	c[4] = -1
	basic := make([]int, m)
	for i := range basic {
		basic[i] = 5 + i
	}
	_, x, err := lp.Simplex(c, a, b, simplexTol, basic)
	if err != nil {
		return r2.Point{}, 0, errors.Wrap(err, "hamsandwich: chebyshev centre")
	}
	return r2.Point{X: x[0] - x[2], Y: x[1] - x[3]}.Add(o), x[4], nil
}
